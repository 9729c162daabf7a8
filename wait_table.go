package locks

import (
	"sync/atomic"
	"unsafe"

	"github.com/jonboulle/clockwork"

	"github.com/waitword/locks/internal/opt"
)

// waitClock supplies timers for timed waits. Swappable so tests can drive
// timeouts with a fake clock.
var waitClock clockwork.Clock = clockwork.NewRealClock()

// waiter is one parked goroutine in the wait table. Untimed waiters park
// on a runtime semaphore; timed waiters park on a channel raced against a
// timer. Each waiter is woken at most once: it is unlinked from its shard
// before wake is called.
type waiter struct {
	word  *Word
	next  *waiter
	ready chan struct{} // non-nil only for timed waits
	sema  opt.Sema
}

func (wt *waiter) wake() {
	if wt.ready != nil {
		close(wt.ready)
	} else {
		wt.sema.Release()
	}
}

// spinMutex is a tiny spin lock guarding one wait-table shard. Critical
// sections are a few pointer writes, so spinning with the adaptive delay
// beats parking.
type spinMutex struct {
	v atomic.Uint32
}

func (m *spinMutex) lock() {
	if m.v.CompareAndSwap(0, 1) {
		return
	}
	var spins int
	for {
		if m.v.Load() == 0 && m.v.CompareAndSwap(0, 1) {
			return
		}
		delay(&spins)
	}
}

func (m *spinMutex) unlock() {
	m.v.Store(0)
}

const waitShardCount = 64 // power of 2

// waitShard is one bucket of the global wait table: a FIFO list of waiters
// whose words hash here. Padded out to a cache line so shards don't false
// share.
type waitShard struct {
	mu   spinMutex
	head *waiter
	tail *waiter
	_    [(opt.CacheLineSize_ - unsafe.Sizeof(struct {
		mu   spinMutex
		head *waiter
		tail *waiter
	}{})%opt.CacheLineSize_) % opt.CacheLineSize_]byte
}

var waitTable [waitShardCount]waitShard

func waitShardOf(w *Word) *waitShard {
	h := uintptr(unsafe.Pointer(w))
	// Drop alignment bits so neighbouring words spread across shards.
	return &waitTable[(h>>3)&(waitShardCount-1)]
}

// enqueue appends wt in arrival order. Caller holds mu.
func (s *waitShard) enqueue(wt *waiter) {
	if s.tail == nil {
		s.head = wt
		s.tail = wt
		return
	}
	s.tail.next = wt
	s.tail = wt
}

// remove unlinks wt if it is still queued and reports whether it was.
// A false return means a wake already claimed this waiter.
func (s *waitShard) remove(wt *waiter) bool {
	s.mu.lock()
	defer s.mu.unlock()
	var prev *waiter
	for cur := s.head; cur != nil; prev, cur = cur, cur.next {
		if cur != wt {
			continue
		}
		if prev == nil {
			s.head = cur.next
		} else {
			prev.next = cur.next
		}
		if s.tail == cur {
			s.tail = prev
		}
		cur.next = nil
		return true
	}
	return false
}

// takeAll unlinks every waiter parked on word and returns them as a list,
// preserving arrival order. Caller holds mu; the returned waiters are no
// longer reachable from the shard, so waking them outside the lock is
// safe.
func (s *waitShard) takeAll(word *Word) *waiter {
	var taken, takenTail *waiter
	var prev *waiter
	for cur := s.head; cur != nil; {
		next := cur.next
		if cur.word != word {
			prev = cur
			cur = next
			continue
		}
		if prev == nil {
			s.head = next
		} else {
			prev.next = next
		}
		if s.tail == cur {
			s.tail = prev
		}
		cur.next = nil
		if takenTail == nil {
			taken = cur
		} else {
			takenTail.next = cur
		}
		takenTail = cur
		cur = next
	}
	return taken
}
