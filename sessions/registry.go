// Package sessions keeps every guest shopper in memory, keyed by the
// session id carried in the guest token.
package sessions

import (
	"context"
	"sync"
	"time"

	"github.com/Bishesh-P/coffee-alpico-sub000/checkout"
	"go.uber.org/zap"
)

type Registry struct {
	mu       sync.Mutex
	shoppers map[string]*checkout.Shopper
	ttl      time.Duration
	now      func() time.Time
	log      *zap.Logger
}

func NewRegistry(ttl time.Duration, log *zap.Logger) *Registry {
	if log == nil {
		log = zap.NewNop()
	}
	return &Registry{
		shoppers: make(map[string]*checkout.Shopper),
		ttl:      ttl,
		now:      time.Now,
		log:      log,
	}
}

// Get returns the shopper for id, creating an empty one on first use.
func (r *Registry) Get(id string) *checkout.Shopper {
	now := r.now()

	r.mu.Lock()
	sh, ok := r.shoppers[id]
	if !ok {
		sh = checkout.NewShopper(id, now)
		r.shoppers[id] = sh
	}
	r.mu.Unlock()

	sh.Touch(now)
	return sh
}

// Len is the number of live shoppers.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.shoppers)
}

// Sweep drops shoppers idle for longer than the TTL and reports how many
// were removed.
func (r *Registry) Sweep() int {
	cutoff := r.now().Add(-r.ttl)

	r.mu.Lock()
	defer r.mu.Unlock()
	removed := 0
	for id, sh := range r.shoppers {
		if sh.IdleSince().Before(cutoff) {
			delete(r.shoppers, id)
			removed++
		}
	}
	return removed
}

// RunJanitor sweeps on every tick until ctx is cancelled.
func (r *Registry) RunJanitor(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	r.log.Info("session janitor started", zap.Duration("every", every), zap.Duration("ttl", r.ttl))
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Sweep(); n > 0 {
				r.log.Info("expired idle sessions", zap.Int("removed", n), zap.Int("live", r.Len()))
			}
		}
	}
}
