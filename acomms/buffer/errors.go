package buffer

import "errors"

// Sentinel errors returned by this package. Callers should test with
// errors.Is, since several are wrapped with extra context (a sub-buffer
// name, a field that failed validation) via fmt.Errorf("%w: ...").
var (
	// ErrEmptyBuffer is returned by SubBuffer.Top and SubBuffer.Pop when
	// called on an empty sub-buffer.
	ErrEmptyBuffer = errors.New("buffer: sub-buffer is empty")

	// ErrNothingAvailable is returned by DynamicBuffer.Top when every
	// sub-buffer is either empty or in blackout.
	ErrNothingAvailable = errors.New("buffer: nothing available to send")

	// ErrUnknownSubBuffer is returned by DynamicBuffer.Push and
	// DynamicBuffer.Erase when the named sub-buffer was never created.
	ErrUnknownSubBuffer = errors.New("buffer: unknown sub-buffer")

	// ErrInvalidConfig is returned at Create/merge time when ttl <= 0,
	// max_queue < 1, or value_base <= 0.
	ErrInvalidConfig = errors.New("buffer: invalid configuration")
)
