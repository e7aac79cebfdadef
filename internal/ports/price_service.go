package ports

import (
	"context"
	"time"

	"github.com/Gunvolt24/pricecache/internal/domain"
)

// PriceQueryService — сервис чтения цен для транспортного слоя.
type PriceQueryService interface {
	// Quote — цена с классификацией; false, если цены пока нет (поиск запланирован).
	Quote(ctx context.Context, key string, maxAge time.Duration) (domain.Quote, bool)
	// QuoteComposite — максимальная известная цена среди кандидатов составного предмета.
	QuoteComposite(ctx context.Context, compositeKey string, candidates []string, maxAge time.Duration) domain.Quote
	// Stats — размер кэша и число поисков в полёте.
	Stats() (entries, pending int)
}
