package ports

import "context"

// MessageConsumer - фоновый потребитель событий (Kafka).
type MessageConsumer interface {
	Run(ctx context.Context) error
	Close() error
}
