package poll

import "errors"

var (
	// ErrInvalidHandle reports a handle that is unknown or already
	// disposed. It is returned synchronously and never retried.
	ErrInvalidHandle = errors.New("poll: invalid handle")

	// ErrResourceExhausted reports that no handle identifier is free. It
	// fails the registration attempt, not the registry.
	ErrResourceExhausted = errors.New("poll: handle space exhausted")

	// ErrWaitFailed reports a platform-level failure of the blocking wait
	// mechanism. The whole call fails; no partial readiness is returned.
	ErrWaitFailed = errors.New("poll: wait failed")
)
