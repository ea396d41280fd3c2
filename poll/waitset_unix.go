//go:build unix

package poll

import (
	"fmt"

	"golang.org/x/sys/unix"
)

type pollFd = unix.PollFd

const (
	pollEventRead  = unix.POLLIN | unix.POLLPRI
	pollEventWrite = unix.POLLOUT
	pollEventError = unix.POLLERR | unix.POLLHUP | unix.POLLNVAL
)

// fdReady performs a zero-timeout poll of a single descriptor.
func fdReady(fd int, dir Direction) bool {
	var events int16 = pollEventRead
	if dir == DirectionWrite {
		events = pollEventWrite
	}
	fds := []pollFd{{Fd: int32(fd), Events: events}}
	for {
		n, err := unix.Poll(fds, 0)
		if err == unix.EINTR {
			continue
		}
		if err != nil || n == 0 {
			return false
		}
		return fds[0].Revents&(events|pollEventError) != 0
	}
}

// pollBlock waits on fds with no timeout, retrying interrupted calls.
func pollBlock(fds []pollFd) error {
	for {
		_, err := unix.Poll(fds, -1)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return fmt.Errorf("%w: poll: %v", ErrWaitFailed, err)
		}
		return nil
	}
}

// waitMixed bridges channel sources into the descriptor wait through a wake
// pipe: one helper goroutine selects over the channels and writes a byte to
// the pipe, whose read end sits in the descriptor set alongside the real
// descriptors. The done channel releases the helper when a descriptor wins
// the race, so neither the goroutine nor the pipe outlives the call.
func (w *WaitSet) waitMixed() error {
	var pipe [2]int
	if err := unix.Pipe(pipe[:]); err != nil {
		return fmt.Errorf("%w: pipe: %v", ErrWaitFailed, err)
	}

	done := make(chan struct{})
	finished := make(chan struct{})
	go func() {
		defer close(finished)
		if selectReady(w.channels, done) {
			var b [1]byte
			_, _ = unix.Write(pipe[1], b[:])
		}
	}()

	fds := make([]pollFd, 0, len(w.fds)+1)
	fds = append(fds, w.fds...)
	fds = append(fds, pollFd{Fd: int32(pipe[0]), Events: unix.POLLIN})
	err := pollBlock(fds)

	// The helper must be drained before the pipe closes: the descriptor
	// numbers could otherwise be reused under a pending write.
	close(done)
	<-finished
	unix.Close(pipe[1])
	unix.Close(pipe[0])
	return err
}
