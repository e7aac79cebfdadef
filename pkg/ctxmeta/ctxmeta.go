// Пакет ctxmeta — нейтральный слой для метаданных, которые прокидываются через
// context.Context: request_id HTTP-запроса и ключ цены фоновой задачи.
// HTTP-слой, кэш и логгер зависят от него, но не друг от друга.
package ctxmeta

import "context"

type ctxKey string

const (
	// Ключи контекста (неэкспортируемый тип — чтобы избежать коллизий).
	KeyRequestID ctxKey = "request_id"
	KeyPriceKey  ctxKey = "price_key"
)

// WithRequestID кладёт request_id в контекст (если пусто — ничего не делает).
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return withString(ctx, KeyRequestID, requestID)
}

// RequestIDFromContext достаёт request_id из контекста.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	return stringFrom(ctx, KeyRequestID)
}

// WithPriceKey кладёт ключ цены, над которым работает задача.
func WithPriceKey(ctx context.Context, key string) context.Context {
	return withString(ctx, KeyPriceKey, key)
}

// PriceKeyFromContext достаёт ключ цены из контекста.
func PriceKeyFromContext(ctx context.Context) (string, bool) {
	return stringFrom(ctx, KeyPriceKey)
}

func withString(ctx context.Context, key ctxKey, v string) context.Context {
	if ctx == nil || v == "" {
		return ctx
	}
	return context.WithValue(ctx, key, v)
}

func stringFrom(ctx context.Context, key ctxKey) (string, bool) {
	if ctx == nil {
		return "", false
	}
	if v, ok := ctx.Value(key).(string); ok && v != "" {
		return v, true
	}
	return "", false
}
