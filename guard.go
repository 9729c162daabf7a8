package locks

// Guard is a scoped owner of a lock: it acquires on construction and
// releases on Release, giving deterministic cleanup on every exit path
// when paired with defer:
//
//	g := locks.NewGuard(&mu)
//	defer g.Release()
//
// The ownership flag is the sole source of truth for whether a release is
// still owed; Release after an explicit Unlock, or on a moved-from guard,
// does nothing.
//
// A Guard is not safe for concurrent use: it tracks ownership for one
// call chain.
type Guard[L Lockable] struct {
	lk    L
	owned bool
}

// NewGuard acquires lk and returns a guard that owns it. Blocks for as
// long as the lock's Lock does.
func NewGuard[L Lockable](lk L) *Guard[L] {
	lk.Lock()
	return &Guard[L]{lk: lk, owned: true}
}

// NewDeferredGuard returns a guard over lk without acquiring it, for use
// with a later Lock or TryLockGuard call.
func NewDeferredGuard[L Lockable](lk L) *Guard[L] {
	return &Guard[L]{lk: lk}
}

// Lock reacquires the wrapped lock. The guard must not currently own it.
func (g *Guard[L]) Lock() {
	if debugLocks {
		lockAssert(!g.owned, "locking a guard that already owns its lock")
	}
	g.lk.Lock()
	g.owned = true
}

// Unlock releases the wrapped lock. The guard must currently own it.
// Unlike Release, Unlock on a non-owning guard is a contract violation,
// detected only in debug builds.
func (g *Guard[L]) Unlock() {
	if debugLocks {
		lockAssert(g.owned, "unlocking a guard that does not own its lock")
	}
	g.lk.Unlock()
	g.owned = false
}

// Release releases the wrapped lock if the guard still owns it. It is
// idempotent, and the intended defer target.
func (g *Guard[L]) Release() {
	if g.owned {
		g.lk.Unlock()
		g.owned = false
	}
}

// Move transfers ownership to a new guard. The source is left without a
// lock and not owning, so its Release becomes a no-op; the destination
// inherits exactly the ownership state the source had.
func (g *Guard[L]) Move() *Guard[L] {
	moved := &Guard[L]{lk: g.lk, owned: g.owned}
	var zero L
	g.lk = zero
	g.owned = false
	return moved
}

// Owned reports whether the guard currently owns its lock.
func (g *Guard[L]) Owned() bool {
	return g.owned
}

// TryLockGuard attempts a timed acquire through g. The guard must not
// currently own its lock. The ownership flag is set to the underlying
// result, which is returned.
//
// It is a free function constrained on [TryLockable] so that timed
// acquisition through a guard over a lock type without TryLockFor fails
// to compile rather than failing at runtime.
func TryLockGuard[L TryLockable](g *Guard[L], t *Timeout) bool {
	if debugLocks {
		lockAssert(!g.owned, "locking a guard that already owns its lock")
	}
	g.owned = g.lk.TryLockFor(t)
	return g.owned
}
