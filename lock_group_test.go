package locks

import (
	"sync"
	"testing"
	"time"
)

func TestLockGroupBasic(t *testing.T) {
	var g LockGroup[string]
	const n = 100
	var wg sync.WaitGroup
	wg.Add(n)
	counter := 0
	for range n {
		go func() {
			defer wg.Done()
			g.Lock("k")
			counter++
			g.Unlock("k")
		}()
	}
	wg.Wait()
	if counter != n {
		t.Fatalf("counter = %d, want %d", counter, n)
	}
}

func TestLockGroupIndependentKeys(t *testing.T) {
	var g LockGroup[int]
	g.Lock(1)
	if !g.TryLockFor(2, new(Timeout)) {
		t.Fatal("key 2 blocked by a lock on key 1")
	}
	g.Unlock(2)
	g.Unlock(1)
}

func TestLockGroupTryLockFor(t *testing.T) {
	var g LockGroup[string]
	g.Lock("k")
	if g.TryLockFor("k", NewTimeout(10*time.Millisecond)) {
		t.Fatal("TryLockFor acquired a held key")
	}
	g.Unlock("k")
	if !g.TryLockFor("k", new(Timeout)) {
		t.Fatal("TryLockFor failed on a free key")
	}
	g.Unlock("k")
}

func TestLockGroupEvictsIdleEntries(t *testing.T) {
	var g LockGroup[string]
	g.Lock("k")
	g.Unlock("k")
	if _, ok := g.m.Load("k"); ok {
		t.Fatal("entry for an idle key was not evicted")
	}

	// A failed timed acquire must also drop its reference.
	g.Lock("held")
	g.TryLockFor("held", new(Timeout))
	g.Unlock("held")
	if _, ok := g.m.Load("held"); ok {
		t.Fatal("entry leaked after a failed TryLockFor")
	}
}

func TestLockGroupUnlockUnknownKey(t *testing.T) {
	var g LockGroup[string]
	g.Unlock("never-locked") // must not panic
}
