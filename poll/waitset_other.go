//go:build !unix

package poll

import "time"

// pollFd mirrors the unix poll descriptor on platforms where no native
// readiness syscall is wired up.
type pollFd struct {
	Fd      int32
	Events  int16
	Revents int16
}

const (
	pollEventRead  = 0x1
	pollEventWrite = 0x4
	pollEventError = 0x8
)

// retryInterval paces the fallback re-scan where descriptor readiness
// cannot be waited on natively.
const retryInterval = 100 * time.Millisecond

// fdReady cannot inspect descriptor state here; descriptors read as
// unready and the caller's scan loop retries on a bounded interval.
func fdReady(fd int, dir Direction) bool {
	return false
}

// pollBlock sleeps one interval so the caller's re-scan loop keeps making
// progress instead of spinning.
func pollBlock(fds []pollFd) error {
	time.Sleep(retryInterval)
	return nil
}

// waitMixed waits on the channel sources with the retry interval as an
// upper bound, standing in for the descriptors that cannot be waited on.
func (w *WaitSet) waitMixed() error {
	done := make(chan struct{})
	timer := time.AfterFunc(retryInterval, func() { close(done) })
	defer timer.Stop()
	selectReady(w.channels, done)
	return nil
}
