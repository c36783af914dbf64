// internal/sim/pacer.go

package sim

import (
	"context"
	"time"
)

// pacer holds a simulation to wall-clock speed so a run can be watched live.
// A zero interval disables pacing.
type pacer struct {
	ticker *time.Ticker
}

func newPacer(interval time.Duration) *pacer {
	if interval <= 0 {
		return &pacer{}
	}
	return &pacer{ticker: time.NewTicker(interval)}
}

// wait blocks until the next wall-clock tick or until ctx is done.
func (p *pacer) wait(ctx context.Context) error {
	if p.ticker == nil {
		return ctx.Err()
	}
	select {
	case <-p.ticker.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// stop releases the underlying ticker.
func (p *pacer) stop() {
	if p.ticker != nil {
		p.ticker.Stop()
	}
}
