package leetcode

import (
	"context"
	"sync"
	"time"
)

// requestGate spaces requests out by a minimum interval. It is the
// only piece of state fetch workers share, every request takes a
// slot before hitting the network.
type requestGate struct {
	mu       sync.Mutex
	next     time.Time
	interval time.Duration
}

func newRequestGate(interval time.Duration) *requestGate {
	return &requestGate{interval: interval}
}

func (g *requestGate) wait(ctx context.Context) error {
	g.mu.Lock()
	now := time.Now()
	at := g.next
	if at.Before(now) {
		at = now
	}
	g.next = at.Add(g.interval)
	g.mu.Unlock()

	delay := at.Sub(now)
	if delay <= 0 {
		return nil
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
