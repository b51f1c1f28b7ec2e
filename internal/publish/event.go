// Package publish implements the node's typed publish/subscribe event bus.
// Producers of lifecycle notifications (peer handshakes, wire traffic,
// blocks, pending transactions, sync progress) publish events; consumers
// subscribe per event category with optional filtering and auto-retirement.
// Handler execution is delegated to a caller-supplied Executor, so the bus
// itself never blocks on delivery.
package publish

// Category identifies an event kind and keys the subscription registry.
// Every event kind declares a distinct, statically known category; two
// events share a category iff they are the same declared kind.
type Category string

// Event is an immutable tagged payload. The bus never inspects or mutates
// anything beyond the category tag.
type Event interface {
	Category() Category
}

// Single marks event kinds whose first publish unconditionally clears every
// subscriber of their category, ending delivery until someone re-subscribes.
// It is a property of the kind, declared by embedding SingleFire.
type Single interface {
	Event
	singleFire()
}

// SingleFire is embedded by single-fire event kinds.
type SingleFire struct{}

func (SingleFire) singleFire() {}
