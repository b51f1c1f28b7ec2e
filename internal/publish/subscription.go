package publish

import (
	"reflect"
	"sync"
)

// Subscriber is the registry's view of a subscription. The only
// implementation is *Subscription; the indirection keeps the Publisher free
// of type parameters.
type Subscriber interface {
	// EventCategory returns the category this subscription listens to.
	EventCategory() Category

	handlerID() subID
	matches(Event) bool
	retires(Event) bool
	deliver(Event)
}

// subID is the subscription identity used for deduplication: the handler's
// code pointer plus an optional owner tag. Closures created from the same
// literal share a code pointer, so handlers registered on behalf of
// different owners need the tag to stay distinct.
type subID struct {
	fn    uintptr
	owner any
}

// Subscription binds one event kind to a handler, with an optional delivery
// predicate and an optional retirement rule. Build one with To and refine it
// fluently; refinement is safe even after registration while publishes are
// in flight.
//
// Two subscriptions are considered equal when they share a category and a
// handler: identity is the handler's code pointer, so registering the same
// function for the same kind twice is a no-op. Predicates are deliberately
// not part of the identity.
type Subscription[E Event] struct {
	category Category
	id       subID
	handler  func(E)

	mu        sync.RWMutex
	condition func(E) bool
	retireIf  func(E) bool
}

// To creates a subscription of handler to the event kind E.
func To[E Event](handler func(E)) *Subscription[E] {
	var kind E
	return &Subscription[E]{
		category: kind.Category(),
		id:       subID{fn: reflect.ValueOf(handler).Pointer()},
		handler:  handler,
	}
}

// Owned tags the subscription identity with its owner, so that handlers
// built from the same closure literal on behalf of different owners are not
// treated as duplicates of each other. The owner must be comparable. Call
// before registering the subscription.
func (s *Subscription[E]) Owned(owner any) *Subscription[E] {
	s.id.owner = owner
	return s
}

// Conditionally restricts delivery to events accepted by condition.
// The condition must not call back into the Publisher.
func (s *Subscription[E]) Conditionally(condition func(E) bool) *Subscription[E] {
	s.mu.Lock()
	s.condition = condition
	s.mu.Unlock()
	return s
}

// UnsubscribeAfter retires this subscription once condition accepts a
// published event of its category. The rule is evaluated on every publish,
// whether or not the delivery predicate matched, and must not call back
// into the Publisher.
func (s *Subscription[E]) UnsubscribeAfter(condition func(E) bool) *Subscription[E] {
	s.mu.Lock()
	s.retireIf = condition
	s.mu.Unlock()
	return s
}

// Oneshot delivers only events accepted by condition and retires the
// subscription after the first such event.
func (s *Subscription[E]) Oneshot(condition func(E) bool) *Subscription[E] {
	return s.Conditionally(condition).UnsubscribeAfter(condition)
}

// EventCategory implements Subscriber.
func (s *Subscription[E]) EventCategory() Category { return s.category }

func (s *Subscription[E]) handlerID() subID { return s.id }

func (s *Subscription[E]) matches(e Event) bool {
	ev, ok := e.(E)
	if !ok {
		return false
	}
	s.mu.RLock()
	condition := s.condition
	s.mu.RUnlock()
	return condition == nil || condition(ev)
}

func (s *Subscription[E]) retires(e Event) bool {
	ev, ok := e.(E)
	if !ok {
		return false
	}
	s.mu.RLock()
	retireIf := s.retireIf
	s.mu.RUnlock()
	return retireIf != nil && retireIf(ev)
}

func (s *Subscription[E]) deliver(e Event) {
	if ev, ok := e.(E); ok {
		s.handler(ev)
	}
}
