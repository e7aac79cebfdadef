//go:generate mockgen -source=../price_cache.go    -destination=./mock_price_cache.go    -package=mocks
//go:generate mockgen -source=../snapshot.go       -destination=./mock_snapshot.go       -package=mocks
//go:generate mockgen -source=../validator.go      -destination=./mock_validator.go      -package=mocks
//go:generate mockgen -source=../logger.go         -destination=./mock_logger.go         -package=mocks
//go:generate mockgen -source=../price_service.go  -destination=./mock_price_service.go  -package=mocks

package mocks
