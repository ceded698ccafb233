package service

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

type State struct {
	startedAt time.Time

	mu       sync.RWMutex
	adapters map[string]bool // платформа -> подключена ли

	lastInteractionUnix atomic.Int64 // unix seconds
}

func NewState() *State {
	return &State{
		startedAt: time.Now(),
		adapters:  make(map[string]bool),
	}
}

// SetConnected records a platform adapter's connection state.
func (s *State) SetConnected(platform string, v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.adapters[platform] = v
}

// Ready: хотя бы один адаптер подключён.
func (s *State) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, ok := range s.adapters {
		if ok {
			return true
		}
	}
	return false
}

func (s *State) Connected() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.adapters))
	for name, ok := range s.adapters {
		if ok {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

func (s *State) TouchInteraction(t time.Time) { s.lastInteractionUnix.Store(t.Unix()) }
func (s *State) LastInteraction() time.Time {
	u := s.lastInteractionUnix.Load()
	if u == 0 {
		return time.Time{}
	}
	return time.Unix(u, 0)
}

func (s *State) Uptime() time.Duration { return time.Since(s.startedAt) }
