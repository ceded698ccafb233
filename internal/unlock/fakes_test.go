package unlock

import (
	"context"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"unlock_bot/internal/models"
	"unlock_bot/internal/render"
	"unlock_bot/internal/store"
)

type fakeInteraction struct {
	id        models.SecretID
	viewer    models.Viewer
	postedID  models.SecretID
	postedErr error
	attachErr error

	mu        sync.Mutex
	responses []models.Response
	attached  []models.Control
}

func (f *fakeInteraction) ID() models.SecretID    { return f.id }
func (f *fakeInteraction) Platform() string       { return "test" }
func (f *fakeInteraction) Invoker() models.Viewer { return f.viewer }

func (f *fakeInteraction) Respond(_ context.Context, resp models.Response) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses = append(f.responses, resp)
	return nil
}

func (f *fakeInteraction) PostedMessageID(context.Context) (models.SecretID, error) {
	return f.postedID, f.postedErr
}

func (f *fakeInteraction) AttachControls(_ context.Context, controls []models.Control) error {
	if f.attachErr != nil {
		return f.attachErr
	}
	f.attached = append(f.attached, controls...)
	return nil
}

func (f *fakeInteraction) last() models.Response {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.responses[len(f.responses)-1]
}

type fakeJournal struct {
	mu     sync.Mutex
	events []models.AuditEvent
}

func (j *fakeJournal) Record(e models.AuditEvent) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.events = append(j.events, e)
}

type fixture struct {
	store      *store.Memory
	journal    *fakeJournal
	metrics    *Metrics
	controller *Controller
	commands   *Commands
}

func newFixture(t *testing.T, cfg models.UnlockConfig, throttle ThrottleConfig) *fixture {
	t.Helper()

	st := store.NewMemory()
	j := &fakeJournal{}
	m := NewMetrics(prometheus.NewRegistry())
	log := zap.NewNop()

	return &fixture{
		store:      st,
		journal:    j,
		metrics:    m,
		controller: NewController(st, render.NewRenderer(), cfg, j, m, log),
		commands:   NewCommands(st, j, m, NewThrottle(throttle), log),
	}
}

var (
	member    = models.Viewer{UserID: "100", DisplayName: "alice", Member: true, RoleIDs: []models.RoleID{5, 9}}
	noRole    = models.Viewer{UserID: "101", DisplayName: "bob", Member: true, RoleIDs: []models.RoleID{5}}
	bareUser  = models.Viewer{UserID: "102", DisplayName: "carol"}
	allowedR9 = models.UnlockConfig{AllowedRoleID: 9}
)
