package cache

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/phf/backend/internal/infrastructure/config"
)

func TestInMemoryReceiptSequence(t *testing.T) {
	seq := NewInMemoryReceiptSequence()
	ctx := context.Background()
	soldAt := time.Date(2025, 6, 20, 15, 0, 0, 0, time.UTC)

	t.Run("numbers increment within a day", func(t *testing.T) {
		first, err := seq.Next(ctx, soldAt)
		require.NoError(t, err)
		second, err := seq.Next(ctx, soldAt)
		require.NoError(t, err)

		assert.Equal(t, "RCP-20250620-0001", first)
		assert.Equal(t, "RCP-20250620-0002", second)
	})

	t.Run("counter restarts on a new day", func(t *testing.T) {
		nextDay, err := seq.Next(ctx, soldAt.AddDate(0, 0, 1))
		require.NoError(t, err)
		assert.Equal(t, "RCP-20250621-0001", nextDay)
	})

	t.Run("date is taken in UTC", func(t *testing.T) {
		// 23:30 UTC-2 is already the next day in UTC
		zone := time.FixedZone("UTC-2", -2*60*60)
		late := time.Date(2025, 6, 21, 23, 30, 0, 0, zone)

		number, err := seq.Next(ctx, late)
		require.NoError(t, err)
		assert.Equal(t, "RCP-20250622-0001", number)
	})
}

func TestInMemoryReceiptSequenceConcurrent(t *testing.T) {
	seq := NewInMemoryReceiptSequence()
	soldAt := time.Date(2025, 6, 20, 15, 0, 0, 0, time.UTC)

	const workers = 20
	var wg sync.WaitGroup
	results := make(chan string, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			number, err := seq.Next(context.Background(), soldAt)
			require.NoError(t, err)
			results <- number
		}()
	}
	wg.Wait()
	close(results)

	seen := make(map[string]bool)
	for number := range results {
		assert.False(t, seen[number], "receipt number %s drawn twice", number)
		seen[number] = true
	}
	assert.Len(t, seen, workers)
}

func TestFormatReceiptNumber(t *testing.T) {
	assert.Equal(t, "RCP-20250620-0007", formatReceiptNumber("20250620", 7))
	// Sequences past four digits keep growing rather than wrapping
	assert.Equal(t, "RCP-20250620-12345", formatReceiptNumber("20250620", 12345))
}

func TestNewReceiptSequenceFallback(t *testing.T) {
	t.Run("disabled Redis uses in-memory", func(t *testing.T) {
		gen := NewReceiptSequence(config.RedisConfig{Enabled: false}, zap.NewNop())
		_, ok := gen.(*InMemoryReceiptSequence)
		assert.True(t, ok)
	})

	t.Run("unreachable Redis falls back to in-memory", func(t *testing.T) {
		cfg := config.RedisConfig{
			Enabled: true,
			Host:    "127.0.0.1",
			Port:    1, // nothing listens here
		}
		gen := NewReceiptSequence(cfg, zap.NewNop())
		_, ok := gen.(*InMemoryReceiptSequence)
		assert.True(t, ok)

		number, err := gen.Next(context.Background(), time.Date(2025, 6, 20, 10, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("RCP-%s-0001", "20250620"), number)
	})
}
