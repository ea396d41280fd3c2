// Package poll implements a single-shot readiness multiplexer over
// heterogeneous waitable sources: manual events, timer deadlines, file
// descriptor readiness and process exit.
//
// Sources implement the Pollable capability, a Registry maps opaque handles
// to live sources, and PollOneoff performs one blocking linear scan across a
// handle list. The scan is intentionally linear per call; callers needing a
// scalable persistent registration should use an event loop instead.
package poll

import "sync"

// Pollable is the capability every waitable source exposes to the
// multiplexer.
type Pollable interface {
	// IsReady reports, without blocking and without side effects, whether
	// the source is ready.
	IsReady() bool
	// Register contributes this source's wait primitive (a channel or a
	// file descriptor) to a WaitSet being assembled for one blocking scan.
	Register(set *WaitSet)
	// Close releases resources tied to the source, such as a pending
	// timer. It does not make the source ready.
	Close()
}

// ChannelPollable implements Pollable over a channel whose close marks
// readiness. It doubles as the manual-event source: the owner calls
// SetReady, and observing the state never consumes it (level triggered).
type ChannelPollable struct {
	mu        sync.Mutex
	readyChan chan struct{}
	cancel    func()
}

// NewPollable creates an unready ChannelPollable. cancel, if non-nil, runs
// on Close.
func NewPollable(cancel func()) *ChannelPollable {
	return &ChannelPollable{
		readyChan: make(chan struct{}),
		cancel:    cancel,
	}
}

// NewReadyPollable creates a ChannelPollable already in the ready state.
func NewReadyPollable() *ChannelPollable {
	ch := make(chan struct{})
	close(ch)
	return &ChannelPollable{readyChan: ch}
}

// IsReady checks readiness without blocking.
func (p *ChannelPollable) IsReady() bool {
	p.mu.Lock()
	ch := p.readyChan
	p.mu.Unlock()

	select {
	case <-ch:
		return true
	default:
		return false
	}
}

// Block waits until the pollable becomes ready.
func (p *ChannelPollable) Block() {
	p.mu.Lock()
	ch := p.readyChan
	p.mu.Unlock()

	<-ch
}

// SetReady marks the pollable ready. Idempotent.
func (p *ChannelPollable) SetReady() {
	p.mu.Lock()
	defer p.mu.Unlock()

	select {
	case <-p.readyChan:
		// Already closed.
	default:
		close(p.readyChan)
	}
}

// Reset re-arms the pollable to the unready state so it can be observed
// again. A no-op if it is already unready.
func (p *ChannelPollable) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()

	select {
	case <-p.readyChan:
		p.readyChan = make(chan struct{})
	default:
	}
}

// Channel returns the current internal channel. The returned channel is
// invalidated by Reset; it is meant for one select.
func (p *ChannelPollable) Channel() <-chan struct{} {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.readyChan
}

// Register contributes the readiness channel to the wait set.
func (p *ChannelPollable) Register(set *WaitSet) {
	set.AddChannel(p.Channel())
}

// Close runs the cancel function associated with this pollable, if any.
func (p *ChannelPollable) Close() {
	if p.cancel != nil {
		p.cancel()
	}
}
