package locks

// Flag word states. The word only ever holds one of these three values,
// and the upgrade to flagLockedWithWaiters only happens while the lock is
// held.
const (
	flagUnlocked uint32 = iota
	flagLocked
	flagLockedWithWaiters
)

// FlagLock is a mutex built on a single futex [Word] with an explicit
// "waiters present" state.
//
// Implementation:
// The three-state word distinguishes "contended but nobody parked yet"
// from "contended with parked waiters", so Unlock only pays for a wake
// when a waiter may actually be parked, without ever losing a wake to a
// waiter that arrived mid-race.
//
// Trade-offs:
//   - Pros: one word of state, single-CAS fast path, bounded (timed)
//     acquisition via TryLockFor.
//   - Cons: no ordering guarantee among waiters; wake order is whatever
//     the runtime delivers. A low-priority holder can therefore delay a
//     high-priority waiter (priority inversion). This is an accepted
//     limitation, not a bug; use TicketLock when fairness matters.
//
// Nothing checks that the goroutine calling Unlock is the one that called
// Lock; ownership is advisory. Mutual exclusion under mutual distrust
// needs a trusted arbiter, which this package does not provide.
//
// The zero value is an unlocked FlagLock.
type FlagLock struct {
	_    noCopy
	flag Word
}

// TryLockFor attempts to acquire the lock, blocking until the cursor's
// budget is spent. Returns true if the lock was acquired.
//
// Timeout expiry is an ordinary outcome, not a fault: a false return
// means only that the budget ran out first.
func (l *FlagLock) TryLockFor(t *Timeout) bool {
	if l.flag.CompareAndSwap(flagUnlocked, flagLocked) {
		return true
	}
	for !t.Expired() {
		old := l.flag.Load()
		if old == flagLocked {
			// Contended but nobody parked yet. Best-effort upgrade;
			// losing this race is fine, the next load resolves it.
			if l.flag.CompareAndSwap(flagLocked, flagLockedWithWaiters) {
				old = flagLockedWithWaiters
			} else {
				old = l.flag.Load()
			}
		}
		if old != flagUnlocked {
			l.flag.Wait(t, old)
		}
		// Acquire into the with-waiters state even if we might be alone:
		// the eventual unlock then always wakes, so a waiter that parked
		// between our wake and this CAS can never be missed.
		if l.flag.CompareAndSwap(flagUnlocked, flagLockedWithWaiters) {
			return true
		}
	}
	return false
}

// TryLock attempts to acquire the lock without blocking.
// Returns true if the lock was acquired.
func (l *FlagLock) TryLock() bool {
	return l.TryLockFor(new(Timeout))
}

// Lock acquires the lock. Blocks until the lock is available.
func (l *FlagLock) Lock() {
	l.TryLockFor(Unlimited())
}

// Unlock releases the lock and wakes all waiters if any are parked.
//
// Note: this does not check that the lock is held by the calling
// goroutine. Releasing an unheld FlagLock is a contract violation,
// detected only in debug builds.
func (l *FlagLock) Unlock() {
	old := l.flag.Swap(flagUnlocked)
	if debugLocks {
		lockAssert(old != flagUnlocked, "double-unlocking %p", l)
	}
	if old == flagLockedWithWaiters {
		l.flag.WakeAll()
	}
}
