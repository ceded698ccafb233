package unlock

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"unlock_bot/internal/models"
)

func TestController_Reveal(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, models.UnlockConfig{}, ThrottleConfig{})
	f.store.Put(ctx, 1, models.PlainText{Body: "hidden"})

	resp, err := f.controller.Reveal(ctx, 1, member)
	require.NoError(t, err)
	assert.True(t, resp.Ephemeral)
	require.Len(t, resp.Documents, 1)
	assert.Equal(t, "hidden", resp.Documents[0].Description)
	assert.Equal(t, "Unlocked by alice", resp.Documents[0].Footer)

	resp, err = f.controller.Reveal(ctx, 2, member)
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.True(t, resp.Ephemeral)
	assert.Equal(t, msgNotFound, resp.Content)
	assert.Empty(t, resp.Documents)
}

func TestController_DeniedLeavesEntry(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, allowedR9, ThrottleConfig{})
	payload := models.LegacyTrade{UserID: "42", Symbol: "btc", Entry: "1", StopLoss: "2"}
	f.store.Put(ctx, 77, payload)

	denied := &fakeInteraction{viewer: noRole}
	f.controller.Press(ctx, denied, 77)

	resp := denied.last()
	assert.True(t, resp.Ephemeral)
	assert.Equal(t, msgDenied, resp.Content)
	assert.Empty(t, resp.Documents)

	got, ok := f.store.Get(ctx, 77)
	require.True(t, ok)
	assert.Equal(t, payload, got)

	allowed := &fakeInteraction{viewer: member}
	f.controller.Press(ctx, allowed, 77)
	resp = allowed.last()
	assert.Equal(t, "42", resp.MentionUserID)
	require.Len(t, resp.Documents, 1)

	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.reveals.WithLabelValues(outcomeDenied)))
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.reveals.WithLabelValues(outcomeRendered)))
}

func TestController_DeniedDoesNotLeakExistence(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, allowedR9, ThrottleConfig{})
	f.store.Put(ctx, 1, models.PlainText{Body: "x"})

	existing, _ := f.controller.Reveal(ctx, 1, bareUser)
	missing, _ := f.controller.Reveal(ctx, 2, bareUser)
	assert.Equal(t, existing, missing)
}

func TestController_PressIsRepeatable(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, models.UnlockConfig{}, ThrottleConfig{})
	f.store.Put(ctx, 5, models.PlainText{Body: "again"})

	in := &fakeInteraction{viewer: member}
	for i := 0; i < 3; i++ {
		f.controller.Press(ctx, in, 5)
	}

	require.Len(t, in.responses, 3)
	for _, r := range in.responses {
		assert.Equal(t, "again", r.Documents[0].Description)
	}
	assert.Equal(t, 1, f.store.Len())

	require.Len(t, f.journal.events, 3)
	for _, e := range f.journal.events {
		assert.Equal(t, models.AuditReveal, e.Action)
		assert.Equal(t, outcomeRendered, e.Outcome)
		assert.Equal(t, models.KindPlainText, e.Kind)
		assert.NotEmpty(t, e.RequestID)
	}
}

func TestController_PressNotFound(t *testing.T) {
	f := newFixture(t, models.UnlockConfig{}, ThrottleConfig{})
	in := &fakeInteraction{viewer: bareUser}

	f.controller.Press(context.Background(), in, 404)

	assert.Equal(t, msgNotFound, in.last().Content)
	assert.Equal(t, outcomeNotFound, f.journal.events[0].Outcome)
}
