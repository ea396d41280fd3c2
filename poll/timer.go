package poll

import (
	"sync"
	"time"
)

// NewTimer returns a pollable that becomes ready once d has elapsed. A
// non-positive duration yields an already-ready pollable. Close stops the
// pending timer and releases its goroutine.
func NewTimer(d time.Duration) *ChannelPollable {
	if d <= 0 {
		return NewReadyPollable()
	}

	timer := time.NewTimer(d)
	stop := make(chan struct{})
	var once sync.Once
	p := NewPollable(func() {
		timer.Stop()
		once.Do(func() { close(stop) })
	})

	go func() {
		select {
		case <-timer.C:
			p.SetReady()
		case <-stop:
		}
	}()

	return p
}

// NewDeadline returns a pollable that becomes ready at instant t. Instants
// in the past yield an already-ready pollable.
func NewDeadline(t time.Time) *ChannelPollable {
	return NewTimer(time.Until(t))
}
