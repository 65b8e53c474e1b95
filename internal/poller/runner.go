// internal/poller/runner.go
package poller

import (
	"context"
	"time"
)

// Run performs one cycle immediately, then one per Interval, and emits
// each PollResult on out. With Interval 0 it returns after the first
// cycle. No overlap. No retries within a cycle.
func (p *Poller) Run(ctx context.Context, out chan<- PollResult) {
	if !p.emit(ctx, out, p.PollOnce()) || p.cfg.Interval == 0 {
		return
	}

	ticker := time.NewTicker(p.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !p.emit(ctx, out, p.PollOnce()) {
				return
			}
		}
	}
}

func (p *Poller) emit(ctx context.Context, out chan<- PollResult, res PollResult) bool {
	select {
	case <-ctx.Done():
		return false
	case out <- res:
		return true
	}
}
