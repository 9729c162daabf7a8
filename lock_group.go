package locks

import (
	"github.com/llxisdsh/pb"
)

// LockGroup allows locking on arbitrary keys (string, int, struct, etc.).
// It dynamically manages a set of FlagLocks associated with values.
//
// Features:
//   - Infinite keys: no need to pre-allocate locks.
//   - Auto-cleanup: a lock is removed from memory once nobody holds or
//     waits for it.
//   - Timed acquisition: TryLockFor bounds the wait per key.
//
// Usage:
//
//	var group LockGroup[string]
//	group.Lock("user-123")
//	// Critical section for user-123
//	group.Unlock("user-123")
//
// Implementation Note:
// It uses reference counting to safely delete entries.
type LockGroup[K comparable] struct {
	_ noCopy
	m pb.MapOf[K, *lockGroupEntry]
}

type lockGroupEntry struct {
	mu  FlagLock
	ref int32
}

// ref pins the entry for key k, creating it if needed.
func (g *LockGroup[K]) refEntry(k K) *lockGroupEntry {
	var ge *lockGroupEntry
	g.m.ProcessEntry(k,
		func(l *pb.EntryOf[K, *lockGroupEntry]) (*pb.EntryOf[K, *lockGroupEntry], *lockGroupEntry, bool) {
			if l != nil {
				ge = l.Value
				ge.ref++
				return l, ge, true
			}
			ge = &lockGroupEntry{ref: 1}
			return &pb.EntryOf[K, *lockGroupEntry]{Value: ge}, ge, false
		},
	)
	return ge
}

// unref drops one pin and evicts the entry when the last pin goes.
func (g *LockGroup[K]) unrefEntry(k K) {
	g.m.ProcessEntry(k,
		func(l *pb.EntryOf[K, *lockGroupEntry]) (*pb.EntryOf[K, *lockGroupEntry], *lockGroupEntry, bool) {
			if l == nil {
				return nil, nil, false
			}
			l.Value.ref--
			if l.Value.ref <= 0 {
				return nil, nil, true
			}
			return l, l.Value, true
		},
	)
}

// Lock acquires the lock for key k, blocking until it is available.
func (g *LockGroup[K]) Lock(k K) {
	g.refEntry(k).mu.Lock()
}

// TryLockFor attempts to acquire the lock for key k within the cursor's
// budget. Returns true if the lock was acquired.
func (g *LockGroup[K]) TryLockFor(k K, t *Timeout) bool {
	ge := g.refEntry(k)
	if ge.mu.TryLockFor(t) {
		return true
	}
	g.unrefEntry(k)
	return false
}

// Unlock releases the lock for key k.
func (g *LockGroup[K]) Unlock(k K) {
	ge, ok := g.m.Load(k)
	if !ok {
		return
	}
	ge.mu.Unlock()
	g.unrefEntry(k)
}
