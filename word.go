package locks

import (
	"sync/atomic"
)

// Word is a 32-bit futex word: an atomic integer that goroutines can block
// on until its value changes. It is the wait/wake primitive that FlagLock
// and TicketLock are built from, exposed so callers can build their own
// word-based primitives.
//
// Wakes are delivered in whatever order the runtime resumes the parked
// goroutines; there is no priority ordering among waiters.
//
// The zero value is ready to use. A Word must not be copied after first
// use, and must not be freed for reuse while any goroutine waits on it.
type Word struct {
	v atomic.Uint32
}

// Load returns the current value of the word.
func (w *Word) Load() uint32 {
	return w.v.Load()
}

// Store sets the value of the word. It does not wake waiters.
func (w *Word) Store(val uint32) {
	w.v.Store(val)
}

// Add atomically adds delta to the word and returns the new value.
func (w *Word) Add(delta uint32) uint32 {
	return w.v.Add(delta)
}

// CompareAndSwap executes the compare-and-swap operation for the word.
func (w *Word) CompareAndSwap(old, new uint32) bool {
	return w.v.CompareAndSwap(old, new)
}

// Swap atomically stores val and returns the previous value.
func (w *Word) Swap(val uint32) uint32 {
	return w.v.Swap(val)
}

// Wait blocks the calling goroutine while the word still holds expected,
// until another goroutine calls WakeAll on the same word or the cursor's
// budget runs out. If the word no longer holds expected at registration
// time, Wait returns immediately.
//
// Time spent waiting is deducted from t. Wait returns false only when the
// budget expired before a wake was delivered; spurious early returns are
// possible and callers are expected to re-check the word in a loop.
func (w *Word) Wait(t *Timeout, expected uint32) bool {
	if t.Expired() {
		return false
	}

	s := waitShardOf(w)
	s.mu.lock()
	if w.v.Load() != expected {
		// Value already moved on; waiting now could miss the wake.
		s.mu.unlock()
		return true
	}
	wt := &waiter{word: w}
	if !t.IsUnlimited() {
		wt.ready = make(chan struct{})
	}
	s.enqueue(wt)
	s.mu.unlock()

	if debugLocks {
		debugLog("hitting slow path wait for %p (expected %d)", w, expected)
	}

	if t.IsUnlimited() {
		wt.sema.Acquire()
		return true
	}

	start := waitClock.Now()
	timer := waitClock.NewTimer(t.Remaining())
	defer timer.Stop()
	select {
	case <-wt.ready:
		t.consume(waitClock.Since(start))
		return true
	case <-timer.Chan():
		t.consume(waitClock.Since(start))
		if s.remove(wt) {
			t.exhaust()
			return false
		}
		// A wake was already in flight when the timer fired; it has
		// dequeued us, so the close is guaranteed to arrive.
		<-wt.ready
		return true
	}
}

// WakeAll wakes every goroutine currently blocked in Wait on this word.
func (w *Word) WakeAll() {
	s := waitShardOf(w)
	s.mu.lock()
	woken := s.takeAll(w)
	s.mu.unlock()

	if debugLocks && woken != nil {
		debugLog("hitting slow path wake for %p", w)
	}
	for wt := woken; wt != nil; {
		next := wt.next
		wt.wake()
		wt = next
	}
}
