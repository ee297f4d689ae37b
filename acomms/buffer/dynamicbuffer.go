package buffer

import (
	"fmt"
	"math"
	"time"
)

// priorityEpsilon is the tolerance used when comparing two sub-buffers'
// TopValue results for the purposes of tie-breaking in DynamicBuffer.Top.
const priorityEpsilon = 1e-9

// DynamicBuffer is a named collection of SubBuffer[T] instances, arbitrated
// by priority on every Top call. See the package doc for the overall
// design.
type DynamicBuffer[T comparable] struct {
	clock Clock
	order []string
	subs  map[string]*SubBuffer[T]
}

// NewDynamic creates an empty DynamicBuffer. clock may be nil, in which
// case a *SystemClock shared by every sub-buffer it creates is used.
func NewDynamic[T comparable](clock Clock) *DynamicBuffer[T] {
	if clock == nil {
		clock = NewSystemClock()
	}
	return &DynamicBuffer[T]{
		clock: clock,
		subs:  make(map[string]*SubBuffer[T]),
	}
}

// Create creates the named sub-buffer if it does not yet exist, or merges
// cfgs into its existing effective configuration otherwise (see Config's
// field-wise merge rule). Existing entries survive the merge: max_queue
// merges as the maximum, so capacity never shrinks and nothing is evicted.
func (d *DynamicBuffer[T]) Create(name string, cfgs ...Config) error {
	if len(cfgs) == 0 {
		cfgs = []Config{NewConfig()}
	}

	sub, exists := d.subs[name]
	if !exists {
		first := cfgs[0]
		var err error
		sub, err = NewSubBuffer[T](first, d.clock)
		if err != nil {
			return err
		}
		d.subs[name] = sub
		d.order = append(d.order, name)
		cfgs = cfgs[1:]
	}

	for _, cfg := range cfgs {
		if _, err := sub.mergeConfig(cfg); err != nil {
			return err
		}
	}
	return nil
}

// Push forwards value to the named sub-buffer's Push, tagging any evicted
// entries with name. It fails with ErrUnknownSubBuffer if name was never
// created.
func (d *DynamicBuffer[T]) Push(name string, value T) ([]NamedEntry[T], error) {
	sub, ok := d.subs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSubBuffer, name)
	}
	return namedEntries(name, sub.Push(value)), nil
}

// PushAt forwards (t, value) to the named sub-buffer's PushAt.
func (d *DynamicBuffer[T]) PushAt(name string, t time.Time, value T) ([]NamedEntry[T], error) {
	sub, ok := d.subs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSubBuffer, name)
	}
	return namedEntries(name, sub.PushAt(t, value)), nil
}

func namedEntries[T comparable](name string, entries []Entry[T]) []NamedEntry[T] {
	if len(entries) == 0 {
		return nil
	}
	out := make([]NamedEntry[T], len(entries))
	for i, e := range entries {
		out[i] = NamedEntry[T]{Name: name, Time: e.Time, Value: e.Value}
	}
	return out
}

// Top selects the eligible sub-buffer with the greatest TopValue,
// skipping any in blackout (now - last_access < blackout_time) or empty.
// Ties within priorityEpsilon are broken first by earliest last_access,
// then by lexicographic name. The winning sub-buffer's last_access is
// updated as a side effect, exactly as calling its own Top would do.
// ErrNothingAvailable is returned if no sub-buffer is eligible.
func (d *DynamicBuffer[T]) Top() (NamedEntry[T], error) {
	name, ok := d.selectTop()
	if !ok {
		return NamedEntry[T]{}, ErrNothingAvailable
	}
	sub := d.subs[name]
	entry, err := sub.Top()
	if err != nil {
		return NamedEntry[T]{}, err
	}
	return NamedEntry[T]{Name: name, Time: entry.Time, Value: entry.Value}, nil
}

func (d *DynamicBuffer[T]) selectTop() (string, bool) {
	now := d.clock.Now()
	var (
		bestName  string
		bestValue = math.Inf(-1)
		bestAccess time.Time
		found     bool
	)
	for _, name := range d.order {
		sub := d.subs[name]
		if sub.Empty() {
			continue
		}
		if sub.cfg.BlackoutTime > 0 && now.Sub(sub.LastAccess()) < sub.cfg.BlackoutTime {
			continue
		}
		value := sub.TopValue()
		if !found {
			bestName, bestValue, bestAccess, found = name, value, sub.LastAccess(), true
			continue
		}
		switch {
		case value > bestValue+priorityEpsilon:
			bestName, bestValue, bestAccess = name, value, sub.LastAccess()
		case value < bestValue-priorityEpsilon:
			// strictly worse, skip
		default:
			// within epsilon: earliest last_access wins, then name order
			access := sub.LastAccess()
			if access.Before(bestAccess) || (access.Equal(bestAccess) && name < bestName) {
				bestName, bestValue, bestAccess = name, value, access
			}
		}
	}
	return bestName, found
}

// Erase forwards to the named sub-buffer's Erase. It fails with
// ErrUnknownSubBuffer if the name was never created.
func (d *DynamicBuffer[T]) Erase(ne NamedEntry[T]) (bool, error) {
	sub, ok := d.subs[ne.Name]
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrUnknownSubBuffer, ne.Name)
	}
	return sub.Erase(ne.Time, ne.Value), nil
}

// Expire concatenates each sub-buffer's Expire result, tagged with its
// name, in sub-buffer creation order; within one sub-buffer the order is
// storage order.
func (d *DynamicBuffer[T]) Expire() []NamedEntry[T] {
	var all []NamedEntry[T]
	for _, name := range d.order {
		expired := d.subs[name].Expire()
		all = append(all, namedEntries(name, expired)...)
	}
	return all
}

// Size returns the sum of every sub-buffer's Size.
func (d *DynamicBuffer[T]) Size() int {
	total := 0
	for _, name := range d.order {
		total += d.subs[name].Size()
	}
	return total
}

// Empty reports whether every sub-buffer is empty. A DynamicBuffer with no
// sub-buffers at all is considered empty.
func (d *DynamicBuffer[T]) Empty() bool {
	for _, name := range d.order {
		if !d.subs[name].Empty() {
			return false
		}
	}
	return true
}

// SubBuffer returns the named sub-buffer and whether it exists, for
// callers (and tests) that need direct access to its accessors such as
// Cfg or LastAccess.
func (d *DynamicBuffer[T]) SubBuffer(name string) (*SubBuffer[T], bool) {
	sub, ok := d.subs[name]
	return sub, ok
}

// Names returns the sub-buffer names in creation order.
func (d *DynamicBuffer[T]) Names() []string {
	out := make([]string, len(d.order))
	copy(out, d.order)
	return out
}
