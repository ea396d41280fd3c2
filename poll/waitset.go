package poll

import "reflect"

// WaitSet accumulates the wait primitives contributed by the sources of one
// oneoff scan: channels for event-like sources, descriptors for I/O
// sources. A WaitSet is built, waited on once, then discarded.
type WaitSet struct {
	fds      []pollFd
	channels []<-chan struct{}
}

// AddChannel contributes a channel whose close signals readiness.
func (w *WaitSet) AddChannel(ch <-chan struct{}) {
	w.channels = append(w.channels, ch)
}

// AddFD contributes a descriptor to wait on in the given direction.
func (w *WaitSet) AddFD(fd int, dir Direction) {
	var events int16 = pollEventRead
	if dir == DirectionWrite {
		events = pollEventWrite
	}
	w.fds = append(w.fds, pollFd{Fd: int32(fd), Events: events})
}

// Wait blocks until at least one contribution is actionable. A return is a
// wakeup hint only; the caller re-checks every source. Platform failures
// are reported as ErrWaitFailed. An empty set returns immediately.
func (w *WaitSet) Wait() error {
	switch {
	case len(w.channels) == 0 && len(w.fds) == 0:
		return nil
	case len(w.fds) == 0:
		selectReady(w.channels, nil)
		return nil
	case len(w.channels) == 0:
		return pollBlock(w.fds)
	default:
		return w.waitMixed()
	}
}

// selectReady blocks until one of chans is closed, or done is closed. It
// reports whether the wakeup came from chans rather than done.
func selectReady(chans []<-chan struct{}, done <-chan struct{}) bool {
	cases := make([]reflect.SelectCase, 0, len(chans)+1)
	for _, ch := range chans {
		cases = append(cases, reflect.SelectCase{
			Dir:  reflect.SelectRecv,
			Chan: reflect.ValueOf(ch),
		})
	}
	if done != nil {
		cases = append(cases, reflect.SelectCase{
			Dir:  reflect.SelectRecv,
			Chan: reflect.ValueOf(done),
		})
	}
	chosen, _, _ := reflect.Select(cases)
	return done == nil || chosen < len(chans)
}
