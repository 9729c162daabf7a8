package locks

import (
	"time"
)

// Timeout is a mutable "time remaining" cursor consumed by blocking lock
// operations. The budget is deducted by [Word.Wait] as time is spent, so a
// single cursor bounds an entire retry loop rather than each individual
// wait.
//
// A cursor with no remaining budget never blocks; the zero value is such a
// cursor, making `new(Timeout)` a ready-to-use non-blocking probe.
//
// A Timeout is not safe for concurrent use; it belongs to the one call
// chain that is spending it.
type Timeout struct {
	remaining time.Duration
	unlimited bool
}

// NewTimeout returns a cursor with the given budget.
// A non-positive budget means "do not block".
func NewTimeout(d time.Duration) *Timeout {
	if d < 0 {
		d = 0
	}
	return &Timeout{remaining: d}
}

// Unlimited returns a cursor that never reports exhaustion.
// Operations given this cursor block until they succeed.
func Unlimited() *Timeout {
	return &Timeout{unlimited: true}
}

// Remaining reports the budget left. It is meaningless for unlimited
// cursors.
func (t *Timeout) Remaining() time.Duration {
	return t.remaining
}

// IsUnlimited reports whether the cursor never expires.
func (t *Timeout) IsUnlimited() bool {
	return t.unlimited
}

// Expired reports whether the budget is exhausted.
func (t *Timeout) Expired() bool {
	return !t.unlimited && t.remaining <= 0
}

// consume deducts elapsed time from the budget, flooring at zero.
func (t *Timeout) consume(elapsed time.Duration) {
	if t.unlimited {
		return
	}
	if elapsed >= t.remaining {
		t.remaining = 0
		return
	}
	t.remaining -= elapsed
}

// exhaust zeroes the budget after a confirmed timeout so caller retry
// loops terminate even if the measured elapsed time rounded down.
func (t *Timeout) exhaust() {
	if !t.unlimited {
		t.remaining = 0
	}
}
