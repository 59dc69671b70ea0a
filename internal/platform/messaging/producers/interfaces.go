package producers

import (
	"context"

	"github.com/segmentio/kafka-go"
)

// MessagePublisher pushes bridge transactions onto the primary topic.
// The key decides partition placement, so all installments of one
// agreement take the same partition.
type MessagePublisher interface {
	Publish(ctx context.Context, key string, value interface{}) error
	Close() error
}

// DeadLetterPublisher parks messages the dispatcher can never process,
// together with the reason they were rejected
type DeadLetterPublisher interface {
	PublishToDLQ(ctx context.Context, key string, originalMessageValue []byte, reason string) error
	Close() error
}

// KafkaWriter is the slice of kafka.Writer the producers use, split out
// so tests can substitute the broker
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}
