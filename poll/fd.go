package poll

// Direction selects which readiness condition of a descriptor to wait for.
type Direction uint8

const (
	DirectionRead Direction = iota
	DirectionWrite
)

// FD is a pollable over a file descriptor's readiness in one direction,
// per the platform's own readiness notion. The descriptor remains owned by
// the caller; Close does not close it.
//
// Descriptor readiness needs a native poller and is only available on unix
// builds. Elsewhere an FD always reads as unready and a scan containing
// one falls back to bounded retries, so it only completes through its
// other sources.
type FD struct {
	fd  int
	dir Direction
}

// NewFD wraps an open descriptor.
func NewFD(fd int, dir Direction) *FD {
	return &FD{fd: fd, dir: dir}
}

// IsReady reports whether the descriptor is immediately actionable in the
// requested direction. Error and hangup conditions count as actionable so
// a failed descriptor surfaces through the next read or write instead of
// stalling a scan.
func (p *FD) IsReady() bool {
	return fdReady(p.fd, p.dir)
}

// Register contributes the descriptor to the wait set.
func (p *FD) Register(set *WaitSet) {
	set.AddFD(p.fd, p.dir)
}

// Close is a no-op: descriptor lifetime belongs to the caller.
func (p *FD) Close() {}
