//go:build unix

package poll

import (
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func TestFDReadiness(t *testing.T) {
	t.Run("pipe read end unready until written", func(t *testing.T) {
		r, w, err := os.Pipe()
		require.NoError(t, err)
		defer r.Close()
		defer w.Close()

		p := NewFD(int(r.Fd()), DirectionRead)
		require.False(t, p.IsReady())

		_, err = w.Write([]byte("x"))
		require.NoError(t, err)
		require.True(t, p.IsReady())
	})

	t.Run("pipe write end ready while buffer has room", func(t *testing.T) {
		r, w, err := os.Pipe()
		require.NoError(t, err)
		defer r.Close()
		defer w.Close()

		require.True(t, NewFD(int(w.Fd()), DirectionWrite).IsReady())
	})

	t.Run("closed peer counts as actionable", func(t *testing.T) {
		r, w, err := os.Pipe()
		require.NoError(t, err)
		defer r.Close()
		require.NoError(t, w.Close())

		// Hangup must not stall a scan; the reader observes EOF.
		require.True(t, NewFD(int(r.Fd()), DirectionRead).IsReady())
	})
}

func TestPollOneoffFDs(t *testing.T) {
	t.Run("blocks until descriptor becomes readable", func(t *testing.T) {
		r, w, err := os.Pipe()
		require.NoError(t, err)
		defer r.Close()
		defer w.Close()

		registry := NewRegistry()
		h, err := registry.Register(NewFD(int(r.Fd()), DirectionRead))
		require.NoError(t, err)

		go func() {
			time.Sleep(10 * time.Millisecond)
			_, _ = w.Write([]byte("x"))
		}()

		start := time.Now()
		ready, err := registry.PollOneoff([]Handle{h})
		require.NoError(t, err)
		require.GreaterOrEqual(t, time.Since(start), 5*time.Millisecond)
		require.Equal(t, []bool{true}, ready)
	})

	t.Run("mixed descriptor and event wait", func(t *testing.T) {
		r, w, err := os.Pipe()
		require.NoError(t, err)
		defer r.Close()
		defer w.Close()

		registry := NewRegistry()
		hFD, err := registry.Register(NewFD(int(r.Fd()), DirectionRead))
		require.NoError(t, err)
		event := NewPollable(nil)
		hEvent, err := registry.Register(event)
		require.NoError(t, err)

		// The event fires while the scan is parked in the descriptor wait;
		// the wake pipe must carry it out.
		go func() {
			time.Sleep(10 * time.Millisecond)
			event.SetReady()
		}()

		ready, err := registry.PollOneoff([]Handle{hFD, hEvent})
		require.NoError(t, err)
		require.Equal(t, []bool{false, true}, ready)
	})

	t.Run("mixed wait woken by the descriptor", func(t *testing.T) {
		r, w, err := os.Pipe()
		require.NoError(t, err)
		defer r.Close()
		defer w.Close()

		registry := NewRegistry()
		hFD, err := registry.Register(NewFD(int(r.Fd()), DirectionRead))
		require.NoError(t, err)
		hEvent, err := registry.Register(NewPollable(nil))
		require.NoError(t, err)

		go func() {
			time.Sleep(10 * time.Millisecond)
			_, _ = w.Write([]byte("x"))
		}()

		ready, err := registry.PollOneoff([]Handle{hFD, hEvent})
		require.NoError(t, err)
		require.Equal(t, []bool{true, false}, ready)
	})

	t.Run("socket pair readable after peer write", func(t *testing.T) {
		fds, err := unix.Socketpair(unix.AF_UNIX, unix.SOCK_STREAM, 0)
		require.NoError(t, err)
		defer unix.Close(fds[0])
		defer unix.Close(fds[1])

		_, err = unix.Write(fds[0], []byte("ping"))
		require.NoError(t, err)

		registry := NewRegistry()
		hRead, err := registry.Register(NewFD(fds[1], DirectionRead))
		require.NoError(t, err)
		hWrite, err := registry.Register(NewFD(fds[1], DirectionWrite))
		require.NoError(t, err)

		ready, err := registry.PollOneoff([]Handle{hRead, hWrite})
		require.NoError(t, err)
		require.True(t, ready[0], "readable side must be reported ready")
	})
}

func TestProcessExit(t *testing.T) {
	t.Run("ready once the process terminates", func(t *testing.T) {
		cmd := exec.Command("sleep", "0.1")
		require.NoError(t, cmd.Start())

		registry := NewRegistry()
		h, err := registry.Register(NewProcessExit(cmd.Process))
		require.NoError(t, err)
		hIdle, err := registry.Register(NewPollable(nil))
		require.NoError(t, err)

		start := time.Now()
		ready, err := registry.PollOneoff([]Handle{h, hIdle})
		require.NoError(t, err)
		require.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)
		require.Equal(t, []bool{true, false}, ready)
	})

	t.Run("signaled process counts as exited", func(t *testing.T) {
		cmd := exec.Command("sleep", "60")
		require.NoError(t, cmd.Start())

		registry := NewRegistry()
		h, err := registry.Register(NewProcessExit(cmd.Process))
		require.NoError(t, err)

		go func() {
			time.Sleep(10 * time.Millisecond)
			_ = cmd.Process.Kill()
		}()

		ready, err := registry.PollOneoff([]Handle{h})
		require.NoError(t, err)
		require.Equal(t, []bool{true}, ready)
	})
}
