package buffer

import (
	"fmt"
	"math"
	"time"
)

// SubBuffer holds one logical channel's ordered sequence of entries of
// payload type T, along with the single effective configuration that
// applies to it (possibly merged from several requested configurations,
// see mergeConfig).
//
// Entries are stored so that index 0 is always the "top" element: Push
// prepends when cfg.NewestFirst is true (so the newest entry is at index
// 0) and appends otherwise (so the oldest entry, inserted first, stays at
// index 0). Capacity eviction on Push always drops from the tail, which is
// the far end from top in either orientation.
type SubBuffer[T comparable] struct {
	cfg        Config
	mergeCount int
	entries    []Entry[T]
	createdAt  time.Time
	lastAccess time.Time
	clock      Clock
}

// NewSubBuffer creates a sub-buffer with the given configuration. clock
// may be nil, in which case a *SystemClock is used.
func NewSubBuffer[T comparable](cfg Config, clock Clock) (*SubBuffer[T], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if clock == nil {
		clock = NewSystemClock()
	}
	now := clock.Now()
	return &SubBuffer[T]{
		cfg:        cfg,
		mergeCount: 1,
		createdAt:  now,
		lastAccess: now,
		clock:      clock,
	}, nil
}

// mergeConfig folds newCfg into the sub-buffer's effective configuration
// per the field-wise merge rule, then trims any entries that exceed the
// merged max_queue, returning the entries evicted by that trim. Because
// max_queue merges as the maximum, a merge never lowers capacity, so the
// trim evicts nothing.
func (s *SubBuffer[T]) mergeConfig(newCfg Config) ([]Entry[T], error) {
	if err := newCfg.Validate(); err != nil {
		return nil, err
	}
	s.cfg = mergeWeighted(s.cfg, s.mergeCount, newCfg, 1)
	s.mergeCount++
	return s.trimToCapacity(), nil
}

// trimToCapacity drops entries from the tail until size <= max_queue,
// returning the dropped entries in the order they were dropped.
func (s *SubBuffer[T]) trimToCapacity() []Entry[T] {
	var evicted []Entry[T]
	for len(s.entries) > s.cfg.MaxQueue {
		last := len(s.entries) - 1
		evicted = append(evicted, s.entries[last])
		s.entries = s.entries[:last]
	}
	return evicted
}

// Push inserts value with the current clock time as its enqueue time. It
// returns any entries evicted to keep size() <= cfg.MaxQueue (zero or
// one).
func (s *SubBuffer[T]) Push(value T) []Entry[T] {
	return s.PushAt(s.clock.Now(), value)
}

// PushAt inserts value with an explicit enqueue time, for deterministic
// replay in tests. It returns any entries evicted to keep within
// max_queue.
func (s *SubBuffer[T]) PushAt(t time.Time, value T) []Entry[T] {
	entry := Entry[T]{Time: t, Value: value}
	if s.cfg.NewestFirst {
		s.entries = append([]Entry[T]{entry}, s.entries...)
	} else {
		s.entries = append(s.entries, entry)
	}
	return s.trimToCapacity()
}

// Top returns the selected entry - the newest if cfg.NewestFirst, else the
// oldest - without removing it, and resets last_access to now. Calling
// TopValue again immediately after therefore reads back to zero elapsed
// urgency.
func (s *SubBuffer[T]) Top() (Entry[T], error) {
	if s.Empty() {
		return Entry[T]{}, ErrEmptyBuffer
	}
	top := s.entries[0]
	s.lastAccess = s.clock.Now()
	return top, nil
}

// TopValue reads the current priority without mutating last_access. An
// empty sub-buffer has priority negative infinity so it never wins
// arbitration against a non-empty peer.
func (s *SubBuffer[T]) TopValue() float64 {
	if s.Empty() {
		return math.Inf(-1)
	}
	elapsed := s.clock.Now().Sub(s.lastAccess)
	warped := float64(elapsed) * s.clock.WarpFactor()
	return s.cfg.ValueBase * warped / float64(s.cfg.TTL)
}

// Pop removes the element Top would return.
func (s *SubBuffer[T]) Pop() (Entry[T], error) {
	if s.Empty() {
		return Entry[T]{}, ErrEmptyBuffer
	}
	top := s.entries[0]
	s.entries = s.entries[1:]
	return top, nil
}

// Erase removes the first entry equal to (t, value) in storage order,
// reporting whether one was found.
func (s *SubBuffer[T]) Erase(t time.Time, value T) bool {
	for i, e := range s.entries {
		if e.equal(t, value) {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return true
		}
	}
	return false
}

// Expire removes and returns every entry whose age exceeds cfg.TTL, in
// storage order.
func (s *SubBuffer[T]) Expire() []Entry[T] {
	if len(s.entries) == 0 {
		return nil
	}
	now := s.clock.Now()
	kept := s.entries[:0:0]
	var expired []Entry[T]
	for _, e := range s.entries {
		if now.Sub(e.Time) > s.cfg.TTL {
			expired = append(expired, e)
		} else {
			kept = append(kept, e)
		}
	}
	s.entries = kept
	return expired
}

// Size returns the current number of resident entries.
func (s *SubBuffer[T]) Size() int { return len(s.entries) }

// Empty reports whether the sub-buffer holds no entries.
func (s *SubBuffer[T]) Empty() bool { return len(s.entries) == 0 }

// Cfg returns the sub-buffer's current effective configuration.
func (s *SubBuffer[T]) Cfg() Config { return s.cfg }

// LastAccess returns the instant of the most recent Top call, or the
// sub-buffer's creation instant if Top has never been called.
func (s *SubBuffer[T]) LastAccess() time.Time { return s.lastAccess }

// CreatedAt returns the sub-buffer's creation instant.
func (s *SubBuffer[T]) CreatedAt() time.Time { return s.createdAt }

func (s *SubBuffer[T]) String() string {
	return fmt.Sprintf("SubBuffer(size=%d, cfg=%+v)", s.Size(), s.cfg)
}
