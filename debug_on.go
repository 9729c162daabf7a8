//go:build locks_debug

package locks

import (
	"os"

	"github.com/rs/zerolog"
)

const debugLocks = true

var debugLogger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
	With().Timestamp().Str("component", "locking").Logger()

// debugLog records slow-path wait/wake events. Only ever reached behind
// the debugLocks constant, so release builds compile it out entirely.
func debugLog(format string, args ...any) {
	debugLogger.Debug().Msgf(format, args...)
}

// lockAssert panics when a locking contract is violated (double unlock,
// guard ownership misuse). Violations are programmer errors, not
// recoverable conditions.
func lockAssert(cond bool, format string, args ...any) {
	if !cond {
		debugLogger.Panic().Msgf(format, args...)
	}
}
