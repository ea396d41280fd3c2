// Package host exposes a poll registry to wasm guests as a wazero host
// module. The surface is thin translation only: handles and readiness
// flags cross the boundary as integers, a readiness flag is one byte per
// entry (0 = not ready, 1 = ready).
package host

import (
	"context"
	"encoding/binary"
	"errors"
	"math"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"

	"github.com/foxxorcat/pollmux/poll"
)

// ModuleName is the import namespace guests use.
const ModuleName = "pollmux"

// Errno values returned to the guest.
const (
	ErrnoSuccess   uint32 = 0
	ErrnoBadHandle uint32 = 8  // invalid or disposed handle
	ErrnoFault     uint32 = 21 // guest pointer out of range
	ErrnoIO        uint32 = 29 // blocking wait failed
)

// Module binds one registry to the host function surface.
type Module struct {
	reg *poll.Registry
}

// New wraps a registry for instantiation.
func New(reg *poll.Registry) *Module {
	return &Module{reg: reg}
}

// Instantiate exports the module's functions into the runtime.
func (m *Module) Instantiate(ctx context.Context, r wazero.Runtime) error {
	builder := r.NewHostModuleBuilder(ModuleName)
	builder.NewFunctionBuilder().WithFunc(m.dropPollable).Export("drop-pollable")
	builder.NewFunctionBuilder().WithFunc(m.pollOneoff).Export("poll-oneoff")
	builder.NewFunctionBuilder().WithFunc(m.pollableReady).Export("pollable-ready")
	builder.NewFunctionBuilder().WithFunc(m.pollableBlock).Export("pollable-block")
	_, err := builder.Instantiate(ctx)
	return err
}

// dropPollable disposes a handle. Dropping an invalid handle is an error
// per the registry contract, never a silent no-op.
func (m *Module) dropPollable(_ context.Context, handle uint32) uint32 {
	if err := m.reg.Dispose(poll.Handle(handle)); err != nil {
		return ErrnoBadHandle
	}
	return ErrnoSuccess
}

// pollableReady is the non-blocking check. An invalid handle reads as
// ready so a buggy guest notices immediately instead of blocking forever.
func (m *Module) pollableReady(_ context.Context, handle uint32) uint32 {
	ready, err := m.reg.Ready(poll.Handle(handle))
	if err != nil || ready {
		return 1
	}
	return 0
}

// pollableBlock suspends until the single handle is ready.
func (m *Module) pollableBlock(_ context.Context, handle uint32) uint32 {
	if err := m.reg.Block(poll.Handle(handle)); err != nil {
		if errors.Is(err, poll.ErrInvalidHandle) {
			return ErrnoBadHandle
		}
		return ErrnoIO
	}
	return ErrnoSuccess
}

// pollOneoff reads nhandles little-endian u32 handles at handlesPtr, waits
// for the first readiness, and writes one flag byte per entry at outPtr.
func (m *Module) pollOneoff(_ context.Context, mod api.Module, handlesPtr, nhandles, outPtr uint32) uint32 {
	return m.pollOneoffAt(mod.Memory(), handlesPtr, nhandles, outPtr)
}

// guestMemory is the slice of api.Memory the translation needs, narrowed
// so it can be faked in tests.
type guestMemory interface {
	Read(offset, byteCount uint32) ([]byte, bool)
	WriteByte(offset uint32, v byte) bool
}

func (m *Module) pollOneoffAt(mem guestMemory, handlesPtr, nhandles, outPtr uint32) uint32 {
	// Guest-controlled sizes must not wrap the range arithmetic, and one
	// ranged read bounds-checks the whole handle list before anything is
	// allocated for it.
	if nhandles > math.MaxUint32/4 {
		return ErrnoFault
	}
	raw, ok := mem.Read(handlesPtr, nhandles*4)
	if !ok {
		return ErrnoFault
	}

	handles := make([]poll.Handle, nhandles)
	for i := range handles {
		handles[i] = poll.Handle(binary.LittleEndian.Uint32(raw[i*4:]))
	}

	ready, err := m.reg.PollOneoff(handles)
	if err != nil {
		if errors.Is(err, poll.ErrInvalidHandle) {
			return ErrnoBadHandle
		}
		return ErrnoIO
	}

	for i, r := range ready {
		var flag byte
		if r {
			flag = 1
		}
		if !mem.WriteByte(outPtr+uint32(i), flag) {
			return ErrnoFault
		}
	}
	return ErrnoSuccess
}
