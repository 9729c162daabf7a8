package locks

// NoLock satisfies the locking contracts without performing any locking.
// It is intended for lock-parameterized data structures, for
// instantiations that do not require exclusion.
type NoLock struct{}

// TryLockFor always succeeds immediately, regardless of the cursor.
func (NoLock) TryLockFor(*Timeout) bool {
	return true
}

// TryLock always succeeds.
func (NoLock) TryLock() bool {
	return true
}

// Lock always succeeds immediately.
func (NoLock) Lock() {}

// Unlock does nothing.
func (NoLock) Unlock() {}
