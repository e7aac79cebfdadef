package usecase

import (
	"context"
	"time"

	"github.com/Gunvolt24/pricecache/internal/domain"
	"github.com/Gunvolt24/pricecache/internal/ports"
	"github.com/Gunvolt24/pricecache/pkg/pricetier"
	"github.com/Gunvolt24/pricecache/pkg/validate"
)

// Проверка, что PriceService удовлетворяет интерфейсу PriceQueryService.
var _ ports.PriceQueryService = (*PriceService)(nil)

// PriceService — прикладная логика работы с ценами (без знаний о транспорте).
type PriceService struct {
	cache     ports.PriceCache
	resolver  *Resolver
	fetchers  ports.FetcherFactory
	validator ports.ObservationValidator
	log       ports.Logger
}

// NewPriceService — DI-конструктор.
func NewPriceService(
	cache ports.PriceCache,
	fetchers ports.FetcherFactory,
	validator ports.ObservationValidator,
	log ports.Logger,
) *PriceService {
	return &PriceService{
		cache:     cache,
		resolver:  NewResolver(cache, fetchers, log),
		fetchers:  fetchers,
		validator: validator,
		log:       log,
	}
}

// Quote — немедленная цена с классификацией. false — цены пока нет.
// Составные ключи не ищутся удалённо: только то, что посчитал Resolve.
func (s *PriceService) Quote(ctx context.Context, key string, maxAge time.Duration) (domain.Quote, bool) {
	var (
		price float64
		ok    bool
	)
	if domain.IsComposite(key) {
		price, ok = s.cache.Fresh(key, maxAge)
	} else {
		price, ok = s.cache.GetOrRefresh(ctx, key, s.fetchers(key), maxAge)
	}
	if !ok {
		return domain.Quote{Key: key}, false
	}
	return NewQuote(key, price), true
}

// QuoteComposite — агрегат составного предмета с классификацией.
func (s *PriceService) QuoteComposite(
	ctx context.Context,
	compositeKey string,
	candidates []string,
	maxAge time.Duration,
) domain.Quote {
	return NewQuote(compositeKey, s.resolver.Resolve(ctx, compositeKey, candidates, maxAge))
}

// Stats — размер кэша и число поисков в полёте.
func (s *PriceService) Stats() (entries, pending int) {
	return s.cache.Stats()
}

// ObserveFromMessage — применить наблюдение, пришедшее из Kafka (raw JSON).
// Шаги:
//  1. строгий парсинг JSON (DisallowUnknownFields);
//  2. доменная валидация (вернёт validate.ErrInvalidObservation при проблемах);
//  3. монотонная запись в кэш (старое наблюдение игнорируется).
func (s *PriceService) ObserveFromMessage(ctx context.Context, raw []byte) error {
	obs, err := validate.ObservationFromJSON(ctx, s.validator, raw)
	if err != nil {
		return err
	}
	if s.cache.Observe(ctx, obs.Key, obs.Price, time.UnixMilli(obs.ObservedAt)) {
		s.log.Debugf(ctx, "observation applied key=%s price=%.2f", obs.Key, obs.Price)
	}
	return nil
}

// NewQuote — цена вместе с результатом классификатора.
func NewQuote(key string, price float64) domain.Quote {
	display, tier := pricetier.Classify(price)
	return domain.Quote{
		Key:     key,
		Price:   price,
		Display: display,
		Tier:    tier.String(),
		Color:   tier.Color(),
	}
}
