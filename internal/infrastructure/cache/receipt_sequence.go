package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	appsales "github.com/phf/backend/internal/application/sales"
	"github.com/phf/backend/internal/infrastructure/config"
)

const (
	receiptPrefix = "RCP"
	// Counters for past days keep no value once the day is over
	receiptKeyTTL = 48 * time.Hour
)

func receiptKey(day string) string {
	return "receipt:seq:" + day
}

func formatReceiptNumber(day string, seq int64) string {
	return fmt.Sprintf("%s-%s-%04d", receiptPrefix, day, seq)
}

// RedisReceiptSequence issues receipt numbers from a per-day Redis
// counter, so concurrent registers never draw the same number.
type RedisReceiptSequence struct {
	client *redis.Client
}

// NewRedisReceiptSequence creates a Redis-backed receipt sequence and
// verifies the connection.
func NewRedisReceiptSequence(cfg config.RedisConfig) (*RedisReceiptSequence, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisReceiptSequence{client: client}, nil
}

// Next returns the next receipt number for the sale date
func (s *RedisReceiptSequence) Next(ctx context.Context, soldAt time.Time) (string, error) {
	day := soldAt.UTC().Format("20060102")
	key := receiptKey(day)

	seq, err := s.client.Incr(ctx, key).Result()
	if err != nil {
		return "", fmt.Errorf("failed to increment receipt sequence: %w", err)
	}
	if seq == 1 {
		// Best effort; an unexpired counter only wastes a key
		s.client.Expire(ctx, key, receiptKeyTTL)
	}

	return formatReceiptNumber(day, seq), nil
}

// Close releases the Redis connection
func (s *RedisReceiptSequence) Close() error {
	return s.client.Close()
}

// InMemoryReceiptSequence issues receipt numbers from an in-process
// counter. Suitable for single-instance deployments and tests; numbers
// are not unique across processes.
type InMemoryReceiptSequence struct {
	mu       sync.Mutex
	counters map[string]int64
}

// NewInMemoryReceiptSequence creates an in-memory receipt sequence
func NewInMemoryReceiptSequence() *InMemoryReceiptSequence {
	return &InMemoryReceiptSequence{counters: make(map[string]int64)}
}

// Next returns the next receipt number for the sale date
func (s *InMemoryReceiptSequence) Next(_ context.Context, soldAt time.Time) (string, error) {
	day := soldAt.UTC().Format("20060102")

	s.mu.Lock()
	defer s.mu.Unlock()
	s.counters[day]++
	return formatReceiptNumber(day, s.counters[day]), nil
}

// NewReceiptSequence creates the receipt number generator for the given
// configuration: Redis when enabled and reachable, otherwise the
// in-process fallback with a warning.
func NewReceiptSequence(cfg config.RedisConfig, logger *zap.Logger) appsales.ReceiptNumberGenerator {
	if cfg.Enabled {
		seq, err := NewRedisReceiptSequence(cfg)
		if err == nil {
			logger.Info("using Redis receipt sequence", zap.String("addr", cfg.Addr()))
			return seq
		}
		logger.Warn("Redis unavailable, falling back to in-memory receipt sequence. "+
			"Receipt numbers will not be unique across instances.",
			zap.Error(err),
		)
	}
	return NewInMemoryReceiptSequence()
}

var _ appsales.ReceiptNumberGenerator = (*RedisReceiptSequence)(nil)
var _ appsales.ReceiptNumberGenerator = (*InMemoryReceiptSequence)(nil)
