package poll

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/foxxorcat/pollmux/resource"
)

// Handle names one live pollable in a Registry. Handles are opaque,
// process-local, unique while live, and may be reused after disposal.
type Handle uint32

// Registry owns the mapping from handles to live pollables. It stores
// sources built elsewhere; it never manufactures one.
//
// A registry expects a single logical execution context: registering or
// disposing from multiple goroutines needs external coordination by the
// caller. The internal lock only keeps the table itself coherent.
type Registry struct {
	table *resource.Table[Pollable]
	stats Stats
}

// NewRegistry creates an empty registry. Disposal closes the pollable.
func NewRegistry() *Registry {
	return &Registry{
		table: resource.NewTable[Pollable](func(p Pollable) { p.Close() }),
	}
}

// Register stores p and returns a fresh or recycled handle. Exhaustion of
// the identifier space is the only failure mode.
func (r *Registry) Register(p Pollable) (Handle, error) {
	id, err := r.table.Add(p)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrResourceExhausted, err)
	}
	r.stats.Registered.Inc()
	return Handle(id), nil
}

// Resolve returns the live pollable named by h, or ErrInvalidHandle if the
// handle is unknown or was disposed.
func (r *Registry) Resolve(h Handle) (Pollable, error) {
	p, ok := r.table.Get(uint32(h))
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrInvalidHandle, h)
	}
	return p, nil
}

// Dispose removes h, closing its pollable, and makes the handle invalid
// immediately. Disposing an unknown or already-disposed handle is an
// error, not a no-op.
//
// Disposing a handle that sits in an in-flight PollOneoff list is a caller
// error with undefined behavior.
func (r *Registry) Dispose(h Handle) error {
	if !r.table.Remove(uint32(h)) {
		return fmt.Errorf("%w: %d", ErrInvalidHandle, h)
	}
	r.stats.Disposed.Inc()
	log.Debug().Uint32("handle", uint32(h)).Msg("pollable disposed")
	return nil
}

// Ready reports whether h's pollable is ready, without blocking.
func (r *Registry) Ready(h Handle) (bool, error) {
	p, err := r.Resolve(h)
	if err != nil {
		return false, err
	}
	return p.IsReady(), nil
}

// Block suspends the caller until the pollable named by h is ready.
func (r *Registry) Block(h Handle) error {
	p, err := r.Resolve(h)
	if err != nil {
		return err
	}
	for !p.IsReady() {
		set := new(WaitSet)
		p.Register(set)
		if err := set.Wait(); err != nil {
			return err
		}
	}
	return nil
}

// Len reports the number of live handles.
func (r *Registry) Len() int {
	return r.table.Len()
}

// Stats exposes the registry's activity counters.
func (r *Registry) Stats() *Stats {
	return &r.stats
}
