package buffer

import (
	"testing"
	"time"
)

func TestConfig_Defaults(t *testing.T) {
	cfg := NewConfig()
	assertTrue(t, !cfg.AckRequired, "default ack_required")
	assertEqual(t, cfg.BlackoutTime, time.Duration(0), "default blackout_time")
	assertEqual(t, cfg.MaxQueue, 1, "default max_queue")
	assertTrue(t, cfg.NewestFirst, "default newest_first")
	assertEqual(t, cfg.TTL, DefaultTTL, "default ttl")
	assertEqual(t, cfg.ValueBase, 1.0, "default value_base")
}

func TestConfig_Validate(t *testing.T) {
	t.Run("rejects non-positive ttl", func(t *testing.T) {
		err := NewConfig(WithTTL(0)).Validate()
		assertErrorIs(t, err, ErrInvalidConfig, "ttl=0")
	})
	t.Run("rejects max_queue below 1", func(t *testing.T) {
		err := NewConfig(WithMaxQueue(0)).Validate()
		assertErrorIs(t, err, ErrInvalidConfig, "max_queue=0")
	})
	t.Run("rejects non-positive value_base", func(t *testing.T) {
		err := NewConfig(WithValueBase(0)).Validate()
		assertErrorIs(t, err, ErrInvalidConfig, "value_base=0")
	})
	t.Run("accepts defaults", func(t *testing.T) {
		assertNoError(t, NewConfig().Validate(), "defaults")
	})
}

// TestConfig_Echo mirrors the "single configuration" seed scenario: the
// stored configuration equals the supplied one exactly.
func TestConfig_Echo(t *testing.T) {
	db := NewDynamic[string](nil)
	cfg := NewConfig(
		WithAckRequired(false),
		WithTTL(2000*time.Millisecond),
		WithValueBase(10),
		WithMaxQueue(5),
	)
	assertNoError(t, db.Create("X", cfg), "create")

	sub, ok := db.SubBuffer("X")
	assertTrue(t, ok, "sub-buffer exists")
	assertEqual(t, sub.Cfg(), cfg, "stored config should equal input bit-for-bit")
}

// TestConfig_Merge mirrors the "two-cfg merge" seed scenario.
func TestConfig_Merge(t *testing.T) {
	cfg1 := NewConfig(
		WithAckRequired(false),
		WithTTL(2000*time.Millisecond),
		WithValueBase(10),
		WithMaxQueue(5),
	)
	cfg2 := NewConfig(
		WithAckRequired(true),
		WithTTL(3000*time.Millisecond),
		WithValueBase(20),
		WithMaxQueue(10),
		WithNewestFirst(false),
	)

	db := NewDynamic[string](nil)
	assertNoError(t, db.Create("X", cfg1, cfg2), "create with two configs")

	sub, _ := db.SubBuffer("X")
	got := sub.Cfg()

	want := Config{
		AckRequired:  true,
		BlackoutTime: 0,
		MaxQueue:     10,
		NewestFirst:  false,
		TTL:          2500 * time.Millisecond,
		ValueBase:    15,
	}
	assertEqual(t, got, want, "merged config")
}

// TestConfig_MergeIdempotent checks property P5: merge(c, c) == c.
func TestConfig_MergeIdempotent(t *testing.T) {
	cfg := NewConfig(WithTTL(5*time.Second), WithValueBase(7), WithMaxQueue(3))
	merged := mergeWeighted(cfg, 1, cfg, 1)
	assertEqual(t, merged, cfg, "merge(c, c) should equal c")
}

// TestConfig_MergeSequentialVsBatched checks that folding two configs one
// Create call at a time produces the same effective config as supplying
// them together in one variadic call (the merge depends on the supplied
// configurations and their multiplicity, not on how they are grouped into
// Create calls).
func TestConfig_MergeSequentialVsBatched(t *testing.T) {
	cfgA := NewConfig(WithTTL(2*time.Second), WithValueBase(10))
	cfgB := NewConfig(WithTTL(4*time.Second), WithValueBase(30))

	sequential := NewDynamic[string](nil)
	assertNoError(t, sequential.Create("X", cfgA), "create A")
	assertNoError(t, sequential.Create("X", cfgB), "merge B")

	batched := NewDynamic[string](nil)
	assertNoError(t, batched.Create("X", cfgA, cfgB), "create batched")

	seqSub, _ := sequential.SubBuffer("X")
	batchSub, _ := batched.SubBuffer("X")
	assertEqual(t, seqSub.Cfg(), batchSub.Cfg(), "sequential vs batched merge")
}
