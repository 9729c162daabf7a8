package locks

import (
	"sync/atomic"
)

// forever is shared by internal unbounded waits. Wait never mutates an
// unlimited cursor, so sharing one is safe.
var forever = Timeout{unlimited: true}

// TicketLock is a fair, FIFO (First-In-First-Out) blocking lock.
//
// Unlike FlagLock, which lets any woken waiter win the reacquire race,
// TicketLock guarantees that goroutines acquire the lock in the exact
// order they called Lock().
//
// Implementation:
// It uses the classic "ticket" algorithm over a futex word.
//   - Lock(): takes a ticket number, then waits on `current` until it
//     equals the ticket.
//   - Unlock(): increments `current` and wakes the waiters so the next
//     ticket holder can proceed.
//
// Trade-offs:
//   - Pros: strict arrival-order fairness, preventing starvation.
//   - Cons: no TryLock. A ticket, once taken, cannot be discarded without
//     breaking the ordering for later arrivals, so there is no way to
//     give up. Counter wraparound after 2^32 acquisitions held under
//     continuous contention can confuse the waiter check in Unlock; this
//     is a known limitation inherited from the classic algorithm.
//
// Like FlagLock, nothing checks that the unlocking goroutine is the one
// that locked. The zero value is an unlocked TicketLock.
type TicketLock struct {
	_ noCopy
	// current is the ticket now being served; waiters block on it.
	current Word
	// next is the next ticket to hand out.
	next atomic.Uint32
}

// Lock acquires the lock. Blocks until every earlier arrival has been
// served, with no bound on the wait.
func (l *TicketLock) Lock() {
	ticket := l.next.Add(1) - 1
	for {
		snapshot := l.current.Load()
		if snapshot == ticket {
			return
		}
		l.current.Wait(&forever, snapshot)
	}
}

// Unlock releases the lock, admitting the next ticket holder.
//
// Note: this does not check that the lock is held by the calling
// goroutine.
func (l *TicketLock) Unlock() {
	snapshot := l.current.Add(1)
	if l.next.Load() > snapshot {
		l.current.WakeAll()
	}
}
