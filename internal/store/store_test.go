package store

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"unlock_bot/internal/models"
)

func TestMemory_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	metrics := &models.PositionMetrics{Balance: 1000, PositionSize: 5000, Quantity: 50, RiskAmount: 250, RiskPercentage: 25}
	payloads := map[models.SecretID]models.SecretPayload{
		1: models.PlainText{Body: "hello"},
		2: models.LegacyTrade{UserID: "42", Symbol: "xmr", Entry: "150", StopLoss: "140", Status: "Active"},
		3: models.EnhancedTrade{UserID: "42", Symbol: "btc", Entry: 100, StopLoss: 95, OrderType: models.OrderBuy, TraderMetrics: metrics, UserMetrics: metrics},
		4: models.RawPayload{Fields: map[string]any{"foo": "bar"}},
	}

	for id, p := range payloads {
		s.Put(ctx, id, p)
	}
	for id, want := range payloads {
		got, ok := s.Get(ctx, id)
		require.True(t, ok, "id %d", id)
		assert.Equal(t, want, got)
	}

	_, ok := s.Get(ctx, 999)
	assert.False(t, ok)
	assert.Equal(t, 4, s.Len())
}

func TestMemory_LastWriteWins(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	s.Put(ctx, 7, models.PlainText{Body: "first"})
	s.Put(ctx, 7, models.PlainText{Body: "second"})

	got, ok := s.Get(ctx, 7)
	require.True(t, ok)
	assert.Equal(t, models.PlainText{Body: "second"}, got)
	assert.Equal(t, 1, s.Len())
}

func TestMemory_GetDoesNotEvict(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()
	s.Put(ctx, 1, models.PlainText{Body: "stay"})

	for i := 0; i < 100; i++ {
		_, ok := s.Get(ctx, 1)
		require.True(t, ok)
	}
	assert.Equal(t, 1, s.Len())
}

func TestMemory_Concurrent(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(id models.SecretID) {
			defer wg.Done()
			s.Put(ctx, id, models.LegacyTrade{Symbol: "btc", Entry: id.String(), StopLoss: id.String()})
		}(models.SecretID(i))
		go func(id models.SecretID) {
			defer wg.Done()
			if p, ok := s.Get(ctx, id); ok {
				lt := p.(models.LegacyTrade)
				assert.Equal(t, lt.Entry, lt.StopLoss)
			}
		}(models.SecretID(i))
	}
	wg.Wait()
	assert.Equal(t, 50, s.Len())
}
