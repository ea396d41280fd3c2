package poll

import "os"

// NewProcessExit returns a pollable that becomes ready when proc
// terminates, whatever the exit status (including death by signal).
//
// The pollable consumes the wait status: callers must not also Wait on the
// same process. Close does not abandon the wait; the watching goroutine is
// only released once the process exits.
func NewProcessExit(proc *os.Process) *ChannelPollable {
	p := NewPollable(nil)
	go func() {
		_, _ = proc.Wait()
		p.SetReady()
	}()
	return p
}
