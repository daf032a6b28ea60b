package core

import (
	"context"
	"time"
)

// FixedStep paces generation streaming at a steady ticks-per-second rate.
type FixedStep struct {
	step time.Duration
	next time.Time
	now  func() time.Time
}

// NewFixedStep constructs a FixedStep controller targeting the given TPS.
// A non-positive rate disables pacing.
func NewFixedStep(tps int) *FixedStep {
	fs := &FixedStep{now: time.Now}
	fs.SetTPS(tps)
	return fs
}

// SetTPS changes the tick rate.
func (f *FixedStep) SetTPS(tps int) {
	if tps <= 0 {
		f.step = 0
		return
	}
	f.step = time.Second / time.Duration(tps)
}

// Step returns the interval between ticks.
func (f *FixedStep) Step() time.Duration { return f.step }

// Wait blocks until the next tick is due or ctx is done. The first call
// returns immediately.
func (f *FixedStep) Wait(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	now := f.now()
	if f.step == 0 || f.next.IsZero() {
		f.next = now.Add(f.step)
		return nil
	}
	delay := f.next.Sub(now)
	if delay <= 0 {
		f.next = now.Add(f.step)
		return nil
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
	}
	f.next = f.next.Add(f.step)
	return nil
}
