package locks

import (
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
)

func TestWordWaitValueAlreadyChanged(t *testing.T) {
	var w Word
	w.Store(1)
	// Expected value no longer matches, must not block.
	if !w.Wait(Unlimited(), 0) {
		t.Fatal("Wait reported timeout without a budget")
	}
}

func TestWordWaitZeroBudget(t *testing.T) {
	var w Word
	if w.Wait(new(Timeout), 0) {
		t.Fatal("zero-budget Wait on a matching word reported a wake")
	}
}

func TestWordWakeAll(t *testing.T) {
	var w Word
	const n = 8
	var wg sync.WaitGroup
	wg.Add(n)
	for range n {
		go func() {
			defer wg.Done()
			for w.Load() == 0 {
				w.Wait(&forever, 0)
			}
		}()
	}
	// Publish the change before waking: already-parked waiters get the
	// wake, late arrivals see the new value at registration and never
	// park on the stale one.
	time.Sleep(10 * time.Millisecond)
	w.Store(1)
	w.WakeAll()
	wg.Wait()
}

func TestWordWaitTimeoutExhaustsCursor(t *testing.T) {
	var w Word
	to := NewTimeout(20 * time.Millisecond)
	start := time.Now()
	if w.Wait(to, 0) {
		t.Fatal("Wait reported a wake that never happened")
	}
	if elapsed := time.Since(start); elapsed < 10*time.Millisecond {
		t.Fatalf("Wait returned after %v, before the budget was spent", elapsed)
	}
	if !to.Expired() {
		t.Fatalf("cursor still has %v after timeout", to.Remaining())
	}
}

func TestWordWaitFakeClock(t *testing.T) {
	fc := clockwork.NewFakeClock()
	saved := waitClock
	waitClock = fc
	defer func() { waitClock = saved }()

	var w Word
	to := NewTimeout(time.Second)
	done := make(chan bool)
	go func() {
		done <- w.Wait(to, 0)
	}()

	fc.BlockUntil(1)
	fc.Advance(time.Second)
	if woken := <-done; woken {
		t.Fatal("expected timeout, got wake")
	}
	if !to.Expired() {
		t.Fatalf("cursor still has %v after fake-clock timeout", to.Remaining())
	}
}

func TestWordWakeBeatsTimer(t *testing.T) {
	fc := clockwork.NewFakeClock()
	saved := waitClock
	waitClock = fc
	defer func() { waitClock = saved }()

	var w Word
	done := make(chan bool)
	go func() {
		done <- w.Wait(NewTimeout(time.Minute), 0)
	}()

	fc.BlockUntil(1)
	w.Store(1)
	w.WakeAll()
	if woken := <-done; !woken {
		t.Fatal("expected wake, got timeout")
	}
}
