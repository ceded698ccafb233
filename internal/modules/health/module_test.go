package health

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"unlock_bot/internal/models"
	"unlock_bot/internal/modules/health/service"
	"unlock_bot/internal/store"
)

func TestMux(t *testing.T) {
	state := service.NewState()
	secrets := store.NewMemory()
	secrets.Put(context.Background(), 1, models.PlainText{Body: "x"})

	reg := prometheus.NewRegistry()
	counter := prometheus.NewCounter(prometheus.CounterOpts{Name: "test_total", Help: "test"})
	reg.MustRegister(counter)
	counter.Inc()

	mux := NewMux(state, secrets, reg)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	state.SetConnected("discord", true)
	state.TouchInteraction(time.Unix(1700000000, 0))

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body healthResponse
	require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Ready)
	assert.Equal(t, []string{"discord"}, body.Adapters)
	assert.Equal(t, 1, body.StoredSecrets)
	assert.Equal(t, int64(1700000000), body.LastInteractionUnix)

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, rec.Body.String(), "test_total 1")
}

func TestState_ReadyFollowsAdapters(t *testing.T) {
	s := service.NewState()
	assert.False(t, s.Ready())

	s.SetConnected("telegram", true)
	s.SetConnected("discord", false)
	assert.True(t, s.Ready())
	assert.Equal(t, []string{"telegram"}, s.Connected())

	s.SetConnected("telegram", false)
	assert.False(t, s.Ready())
}
