package locks

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestTimeoutZeroValue(t *testing.T) {
	var to Timeout
	require.True(t, to.Expired())
	require.False(t, to.IsUnlimited())
	require.Zero(t, to.Remaining())
}

func TestTimeoutNegativeBudget(t *testing.T) {
	to := NewTimeout(-time.Second)
	require.True(t, to.Expired())
	require.Zero(t, to.Remaining())
}

func TestTimeoutUnlimited(t *testing.T) {
	to := Unlimited()
	require.True(t, to.IsUnlimited())
	require.False(t, to.Expired())
	to.consume(time.Hour)
	require.False(t, to.Expired())
}

func TestTimeoutConsume(t *testing.T) {
	to := NewTimeout(100 * time.Millisecond)
	to.consume(40 * time.Millisecond)
	require.Equal(t, 60*time.Millisecond, to.Remaining())
	require.False(t, to.Expired())
	to.consume(time.Second)
	require.Zero(t, to.Remaining())
	require.True(t, to.Expired())
}

func TestTimeoutExhaust(t *testing.T) {
	to := NewTimeout(time.Second)
	to.exhaust()
	require.True(t, to.Expired())

	un := Unlimited()
	un.exhaust()
	require.False(t, un.Expired())
}

func TestTimeoutProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		budget := rapid.Int64Range(0, int64(time.Minute)).Draw(t, "budget")
		steps := rapid.SliceOfN(
			rapid.Int64Range(0, int64(time.Second)), 0, 200,
		).Draw(t, "steps")

		to := NewTimeout(time.Duration(budget))
		var spent int64
		for _, s := range steps {
			to.consume(time.Duration(s))
			spent += s
			if to.Remaining() < 0 {
				t.Fatalf("remaining went negative: %v", to.Remaining())
			}
			if got, want := to.Expired(), spent >= budget; got != want {
				t.Fatalf("Expired() = %v after spending %d of %d", got, spent, budget)
			}
		}
	})
}
