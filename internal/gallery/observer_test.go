package gallery

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestObserverFiresOncePerTarget(t *testing.T) {
	var calls []int
	o := NewObserver(func(id int) bool {
		calls = append(calls, id)
		return true
	})

	require.False(t, o.Reveal(3), "nothing attached")
	o.Observe(12)
	require.False(t, o.Reveal(11))
	require.True(t, o.Reveal(12))
	require.False(t, o.Reveal(12))

	// re-observing the same element keeps it fired
	o.Observe(12)
	require.False(t, o.Reveal(12))

	o.Observe(24)
	require.False(t, o.Reveal(12))
	require.True(t, o.Reveal(24))
	require.Equal(t, []int{12, 24}, calls)
}

func TestObserverDisconnect(t *testing.T) {
	o := NewObserver(func(int) bool { return true })
	o.Observe(5)
	o.Disconnect()
	_, ok := o.Target()
	require.False(t, ok)
	require.False(t, o.Reveal(5))
}

func TestObserverReportsCallbackResult(t *testing.T) {
	o := NewObserver(func(int) bool { return false })
	o.Observe(1)
	require.False(t, o.Reveal(1))

	o = NewObserver(nil)
	o.Observe(1)
	require.False(t, o.Reveal(1))
}
