package components

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/debtdesk-ledger/internal/dispatcher/service"
	"github.com/debtdesk-ledger/internal/domain/transaction"
)

const dedupeKeyPrefix = "ledger:txn:"

// DuplicateCheckerImpl tracks recently dispatched transactions in Redis.
// The store write itself is an idempotent upsert; the cache only saves
// the round trip when Kafka redelivers a message.
type DuplicateCheckerImpl struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func NewDuplicateChecker(client *redis.Client, ttl time.Duration, logger *slog.Logger) service.DuplicateChecker {
	return &DuplicateCheckerImpl{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

// SeenRecently reports whether the transaction was dispatched within the TTL window
func (d *DuplicateCheckerImpl) SeenRecently(ctx context.Context, txn *transaction.Transaction) (bool, error) {
	_, err := d.client.Get(ctx, dedupeKeyPrefix+txn.ID.String()).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// MarkSeen records the transaction as dispatched for the TTL window
func (d *DuplicateCheckerImpl) MarkSeen(ctx context.Context, txn *transaction.Transaction) error {
	return d.client.Set(ctx, dedupeKeyPrefix+txn.ID.String(), "1", d.ttl).Err()
}
