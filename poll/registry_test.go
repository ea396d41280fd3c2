package poll

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRegistry(t *testing.T) {
	t.Run("register and resolve", func(t *testing.T) {
		registry := NewRegistry()
		p := NewPollable(nil)

		h, err := registry.Register(p)
		require.NoError(t, err)
		require.NotZero(t, h)

		got, err := registry.Resolve(h)
		require.NoError(t, err)
		require.Same(t, Pollable(p), got)
		require.Equal(t, 1, registry.Len())
	})

	t.Run("resolve unknown handle", func(t *testing.T) {
		registry := NewRegistry()
		_, err := registry.Resolve(42)
		require.ErrorIs(t, err, ErrInvalidHandle)
	})

	t.Run("resolve after dispose fails", func(t *testing.T) {
		registry := NewRegistry()
		h, err := registry.Register(NewPollable(nil))
		require.NoError(t, err)

		require.NoError(t, registry.Dispose(h))
		_, err = registry.Resolve(h)
		require.ErrorIs(t, err, ErrInvalidHandle)
		require.Zero(t, registry.Len())
	})

	t.Run("dispose is strict, not idempotent", func(t *testing.T) {
		registry := NewRegistry()
		h, err := registry.Register(NewPollable(nil))
		require.NoError(t, err)

		require.NoError(t, registry.Dispose(h))
		require.ErrorIs(t, registry.Dispose(h), ErrInvalidHandle)
		require.ErrorIs(t, registry.Dispose(9999), ErrInvalidHandle)
	})

	t.Run("dispose closes the pollable", func(t *testing.T) {
		registry := NewRegistry()
		closed := false
		h, err := registry.Register(NewPollable(func() { closed = true }))
		require.NoError(t, err)

		require.NoError(t, registry.Dispose(h))
		require.True(t, closed)
	})

	t.Run("handles are distinct while live", func(t *testing.T) {
		registry := NewRegistry()
		seen := make(map[Handle]bool)
		for i := 0; i < 50; i++ {
			h, err := registry.Register(NewPollable(nil))
			require.NoError(t, err)
			require.False(t, seen[h])
			seen[h] = true
		}
	})

	t.Run("ready mirrors the source state", func(t *testing.T) {
		registry := NewRegistry()
		p := NewPollable(nil)
		h, err := registry.Register(p)
		require.NoError(t, err)

		ready, err := registry.Ready(h)
		require.NoError(t, err)
		require.False(t, ready)

		p.SetReady()
		ready, err = registry.Ready(h)
		require.NoError(t, err)
		require.True(t, ready)

		_, err = registry.Ready(h + 1)
		require.ErrorIs(t, err, ErrInvalidHandle)
	})

	t.Run("block waits for readiness", func(t *testing.T) {
		registry := NewRegistry()
		p := NewPollable(nil)
		h, err := registry.Register(p)
		require.NoError(t, err)

		go func() {
			time.Sleep(10 * time.Millisecond)
			p.SetReady()
		}()

		start := time.Now()
		require.NoError(t, registry.Block(h))
		require.GreaterOrEqual(t, time.Since(start), 5*time.Millisecond)

		require.ErrorIs(t, registry.Block(9999), ErrInvalidHandle)
	})

	t.Run("stats count activity", func(t *testing.T) {
		registry := NewRegistry()
		h, err := registry.Register(NewReadyPollable())
		require.NoError(t, err)

		_, err = registry.PollOneoff([]Handle{h})
		require.NoError(t, err)
		require.NoError(t, registry.Dispose(h))

		stats := registry.Stats()
		require.Equal(t, uint64(1), stats.Registered.Load())
		require.Equal(t, uint64(1), stats.Disposed.Load())
		require.Equal(t, uint64(1), stats.Polls.Load())
		require.Zero(t, stats.Suspensions.Load(), "ready source must not suspend")
	})
}
