package locks

// Lockable is the minimal locking contract: unconditional acquire and
// release. Generic code written against it works with any lock type in
// this package.
type Lockable interface {
	Lock()
	Unlock()
}

// TryLockable is a Lockable that also supports acquisition bounded by a
// [Timeout] cursor. Lock types that cannot safely abandon an acquisition
// attempt (TicketLock) do not satisfy it, so code requiring a timed
// acquire is rejected for them at compile time.
type TryLockable interface {
	Lockable
	TryLockFor(t *Timeout) bool
}

var (
	_ TryLockable = (*NoLock)(nil)
	_ TryLockable = (*FlagLock)(nil)
	_ Lockable    = (*TicketLock)(nil)
)
