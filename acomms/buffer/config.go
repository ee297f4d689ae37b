package buffer

import (
	"fmt"
	"time"
)

// DefaultTTL is the sub-buffer entry lifetime used when no WithTTL option
// is supplied.
const DefaultTTL = 1800 * time.Second

// Config is a sub-buffer's configuration. See NewConfig for the
// recognized options and their defaults.
type Config struct {
	AckRequired  bool
	BlackoutTime time.Duration
	MaxQueue     int
	NewestFirst  bool
	TTL          time.Duration
	ValueBase    float64
}

// ConfigOption configures a Config built by NewConfig.
type ConfigOption func(*Config)

// WithAckRequired sets whether the transport must acknowledge before erase.
func WithAckRequired(v bool) ConfigOption { return func(c *Config) { c.AckRequired = v } }

// WithBlackoutTime sets the minimum wall interval between successive
// selections of this sub-buffer.
func WithBlackoutTime(d time.Duration) ConfigOption {
	return func(c *Config) { c.BlackoutTime = d }
}

// WithMaxQueue sets the sub-buffer capacity.
func WithMaxQueue(n int) ConfigOption { return func(c *Config) { c.MaxQueue = n } }

// WithNewestFirst sets the storage order and eviction direction.
func WithNewestFirst(v bool) ConfigOption { return func(c *Config) { c.NewestFirst = v } }

// WithTTL sets the entry lifetime from enqueue.
func WithTTL(d time.Duration) ConfigOption { return func(c *Config) { c.TTL = d } }

// WithValueBase sets the priority scale constant.
func WithValueBase(v float64) ConfigOption { return func(c *Config) { c.ValueBase = v } }

// NewConfig builds a Config starting from the documented defaults
// (ack_required=false, blackout_time=0, max_queue=1, newest_first=true,
// ttl=1800s, value_base=1.0) and applying opts in order.
func NewConfig(opts ...ConfigOption) Config {
	cfg := Config{
		AckRequired:  false,
		BlackoutTime: 0,
		MaxQueue:     1,
		NewestFirst:  true,
		TTL:          DefaultTTL,
		ValueBase:    1.0,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// Validate reports ErrInvalidConfig if ttl <= 0, max_queue < 1, or
// value_base <= 0.
func (c Config) Validate() error {
	if c.TTL <= 0 {
		return fmt.Errorf("%w: ttl must be > 0, got %s", ErrInvalidConfig, c.TTL)
	}
	if c.MaxQueue < 1 {
		return fmt.Errorf("%w: max_queue must be >= 1, got %d", ErrInvalidConfig, c.MaxQueue)
	}
	if c.ValueBase <= 0 {
		return fmt.Errorf("%w: value_base must be > 0, got %g", ErrInvalidConfig, c.ValueBase)
	}
	return nil
}

// mergeWeighted combines two configurations field-wise, where a and b each
// carry the multiplicity (number of configurations folded into them)
// that the averaged fields (ttl, value_base) are weighted by. The
// boolean/min/max fields are unaffected by weight.
func mergeWeighted(a Config, aWeight int, b Config, bWeight int) Config {
	totalWeight := float64(aWeight + bWeight)
	merged := Config{
		AckRequired:  a.AckRequired || b.AckRequired,
		NewestFirst:  a.NewestFirst && b.NewestFirst,
		BlackoutTime: minDuration(a.BlackoutTime, b.BlackoutTime),
		MaxQueue:     maxInt(a.MaxQueue, b.MaxQueue),
		TTL: time.Duration((float64(a.TTL)*float64(aWeight) +
			float64(b.TTL)*float64(bWeight)) / totalWeight),
		ValueBase: (a.ValueBase*float64(aWeight) + b.ValueBase*float64(bWeight)) / totalWeight,
	}
	return merged
}

func minDuration(a, b time.Duration) time.Duration {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
