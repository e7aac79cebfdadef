package ports

import (
	"context"

	"github.com/Gunvolt24/pricecache/internal/domain"
)

// ObservationValidator — проверка наблюдения до применения к кэшу.
// Ошибка должна оборачивать validate.ErrInvalidObservation.
type ObservationValidator interface {
	Validate(ctx context.Context, obs *domain.Observation) error
}
