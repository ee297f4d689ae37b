/*
Package buffer implements the Dynamic Buffer: a multi-queue, priority-aware,
TTL-bounded outbound message store used by a constrained, lossy-link driver to
decide which message to send next.

The package is built with Go Generics: a SubBuffer[T] holds entries of a
single payload type T and a DynamicBuffer[T] arbitrates across a named
collection of SubBuffer[T] instances. T must be comparable, since erase is
equality-based.

Key Features:

  - Per-sub-buffer configuration, merged field-wise when a sub-buffer is
    created more than once under the same name (see Config and
    DynamicBuffer.Create).

  - A continuous, time-varying priority function, evaluated on demand rather
    than cached, so that a message approaching its TTL becomes steadily more
    urgent relative to its neighbours.

  - Fair arbitration across sub-buffers: the DynamicBuffer picks the highest
    priority sub-buffer on each Top call, breaking ties by least-recent
    access and then by name, so no sub-buffer is starved by a persistently
    higher-valued neighbour.

  - Newest-first or oldest-first ordering per sub-buffer, bounded capacity
    with eviction, and TTL expiry.

Example: Basic Usage

	db := buffer.NewDynamic[string](nil)
	db.Create("telemetry", buffer.NewConfig(
		buffer.WithTTL(30*time.Second),
		buffer.WithMaxQueue(10),
	))

	db.Push("telemetry", "depth=12.3m")

	next, err := db.Top()
	if err != nil {
		// no eligible sub-buffer
	}
	db.Erase(next)

Example: Merged Configuration

	db.Create("status", buffer.NewConfig(buffer.WithTTL(2*time.Second), buffer.WithValueBase(10)))
	// A second subscriber to the same channel wants acks and a longer TTL.
	db.Create("status", buffer.NewConfig(
		buffer.WithAckRequired(true),
		buffer.WithTTL(3*time.Second),
		buffer.WithValueBase(20),
	))
	// Effective config is the field-wise merge of both requests.
*/
package buffer
