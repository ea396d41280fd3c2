package poll

import "go.uber.org/atomic"

// Stats counts registry and multiplexer activity, cumulative over the
// registry's lifetime.
type Stats struct {
	Registered  atomic.Uint64
	Disposed    atomic.Uint64
	Polls       atomic.Uint64
	Suspensions atomic.Uint64
}
