package inquiry

import (
	"context"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/require"
)

func TestStoreGetCreatesOncePerSession(t *testing.T) {
	mock := clock.NewMock()
	created := 0
	s := NewStore(func() *Widget {
		created++
		return NewWidget(&recordingHandoff{}, WithClock(mock))
	}, time.Hour, mock)

	a := s.Get("sess-a")
	require.Same(t, a, s.Get("sess-a"))
	b := s.Get("sess-b")
	require.NotSame(t, a, b)
	require.Equal(t, 2, created)
	require.Equal(t, 2, s.Len())

	_, ok := s.Peek("sess-c")
	require.False(t, ok)
}

func TestStoreSweepClosesIdleWidgets(t *testing.T) {
	mock := clock.NewMock()
	s := NewStore(func() *Widget { return NewWidget(&recordingHandoff{}, WithClock(mock)) }, time.Hour, mock)
	idle := s.Get("idle")
	mock.Add(50 * time.Minute)
	s.Get("active")
	mock.Add(20 * time.Minute)

	require.Equal(t, 1, s.Sweep())
	_, ok := s.Peek("idle")
	require.False(t, ok)
	_, err := idle.Submit(context.Background(), "hello")
	require.ErrorIs(t, err, ErrClosed)
}

func TestStoreDelete(t *testing.T) {
	s := NewStore(func() *Widget { return NewWidget(&recordingHandoff{}) }, 0, nil)
	w := s.Get("x")
	s.Delete("x")
	require.Zero(t, s.Len())
	_, err := w.Submit(context.Background(), "hello")
	require.ErrorIs(t, err, ErrClosed)
}

func TestStoreCloseClosesAll(t *testing.T) {
	s := NewStore(func() *Widget { return NewWidget(&recordingHandoff{}) }, 0, nil)
	a, b := s.Get("a"), s.Get("b")
	s.Close()
	require.Zero(t, s.Len())
	for _, w := range []*Widget{a, b} {
		_, err := w.Submit(context.Background(), "hello")
		require.ErrorIs(t, err, ErrClosed)
	}
}
