package ports

import "context"

// MessageConsumer — источник наблюдений цен (Kafka). Run блокирует до отмены ctx
// или фатальной ошибки; Close прерывает чтение и освобождает соединения.
type MessageConsumer interface {
	Run(ctx context.Context) error
	Close() error
}
