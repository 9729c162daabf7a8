//go:build !locks_debug

package locks

// debugLocks gates the assert/trace facility. It is off by default so the
// correctness-critical fast paths carry no checking cost; build with
// -tags locks_debug to enable.
const debugLocks = false

func debugLog(string, ...any) {}

func lockAssert(bool, string, ...any) {}
