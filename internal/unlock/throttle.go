package unlock

import (
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

// limiterIdleTTL: лимитер неактивного пользователя выкидывается из кэша.
const limiterIdleTTL = 10 * time.Minute

type ThrottleConfig struct {
	Rate  float64 // commands per second per user, <= 0 disables
	Burst int
}

// Throttle limits how fast a single user can create locked messages.
// Reveal presses are never throttled.
type Throttle struct {
	cfg ThrottleConfig

	mu       sync.Mutex
	limiters *cache.Cache // userID -> *rate.Limiter
}

func NewThrottle(cfg ThrottleConfig) *Throttle {
	if cfg.Burst <= 0 {
		cfg.Burst = 1
	}
	return &Throttle{
		cfg:      cfg,
		limiters: cache.New(limiterIdleTTL, limiterIdleTTL),
	}
}

// Allow reports whether userID may run another command now.
func (t *Throttle) Allow(userID string) bool {
	if t == nil || t.cfg.Rate <= 0 {
		return true
	}

	t.mu.Lock()
	var l *rate.Limiter
	if v, ok := t.limiters.Get(userID); ok {
		l = v.(*rate.Limiter)
	} else {
		l = rate.NewLimiter(rate.Limit(t.cfg.Rate), t.cfg.Burst)
	}
	// продлеваем TTL на каждом обращении
	t.limiters.Set(userID, l, cache.DefaultExpiration)
	t.mu.Unlock()

	return l.Allow()
}

// tracked is the number of users with a live limiter.
func (t *Throttle) tracked() int { return t.limiters.ItemCount() }
