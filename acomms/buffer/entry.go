package buffer

import "time"

// Entry is a single (enqueue-time, value) pair resident in a SubBuffer.
type Entry[T comparable] struct {
	Time  time.Time
	Value T
}

func (e Entry[T]) equal(t time.Time, v T) bool {
	return e.Time.Equal(t) && e.Value == v
}

// NamedEntry is an Entry tagged with the name of the sub-buffer that held
// it. DynamicBuffer's Push, Top, Erase and Expire operate in terms of
// NamedEntry so that a caller holding only the triple can still erase or
// re-inject it.
type NamedEntry[T comparable] struct {
	Name  string
	Time  time.Time
	Value T
}
