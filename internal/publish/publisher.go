package publish

import (
	"sync"

	"github.com/runtofuture/ethereumj/internal/logging"
)

// Stats receives a callback for every publish. Implementations must be
// cheap and must not call back into the Publisher.
type Stats interface {
	// Published reports a publish of category c that matched `matched`
	// subscribers (possibly zero).
	Published(c Category, matched int)
}

// Publisher is the event bus. It owns the category registry and may be used
// from any number of goroutines; delivery is delegated to the injected
// Executor and never runs under the registry lock.
type Publisher struct {
	executor Executor
	stats    Stats
	log      logging.Logger

	mu            sync.RWMutex
	subscriptions map[Category][]Subscriber
}

// NewPublisher creates a bus that hands dispatch tasks to executor.
func NewPublisher(executor Executor) *Publisher {
	return &Publisher{
		executor:      executor,
		log:           logging.WithComponent("events"),
		subscriptions: make(map[Category][]Subscriber),
	}
}

// WithStats attaches a metrics hook. Call before the bus is shared between
// goroutines.
func (p *Publisher) WithStats(stats Stats) *Publisher {
	p.stats = stats
	return p
}

// Subscribe registers the subscription under its category. Registering a
// duplicate (same category, same handler) is a logged no-op.
func (p *Publisher) Subscribe(sub Subscriber) *Publisher {
	c := sub.EventCategory()
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, existing := range p.subscriptions[c] {
		if existing.handlerID() == sub.handlerID() {
			p.log.Warnf("Subscription to %s already exists, ignoring duplicate", c)
			return p
		}
	}
	p.subscriptions[c] = append(p.subscriptions[c], sub)
	return p
}

// SubscribeTo creates a subscription of handler to the event kind E,
// registers it, and returns it so the caller can still refine it (attach a
// predicate or retirement rule) afterwards.
func SubscribeTo[E Event](p *Publisher, handler func(E)) *Subscription[E] {
	sub := To(handler)
	p.Subscribe(sub)
	return sub
}

// Unsubscribe removes the subscription (or any subscription equal to it)
// from its category. Unknown subscriptions are a no-op.
func (p *Publisher) Unsubscribe(sub Subscriber) *Publisher {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.removeLocked(sub.EventCategory(), sub.handlerID())
	return p
}

// removeLocked drops every subscriber with the given identity from the
// category bucket, deleting the bucket when it empties. Callers hold p.mu.
func (p *Publisher) removeLocked(c Category, id subID) {
	bucket, ok := p.subscriptions[c]
	if !ok {
		return
	}
	kept := make([]Subscriber, 0, len(bucket))
	for _, s := range bucket {
		if s.handlerID() != id {
			kept = append(kept, s)
		}
	}
	if len(kept) == 0 {
		delete(p.subscriptions, c)
	} else {
		p.subscriptions[c] = kept
	}
}

// Publish delivers the event to the subscribers of its category. The
// registry work — matching, retirement, single-fire cleanup — happens
// atomically for the category; the actual handler invocations are handed to
// the Executor as one DispatchTask and never block this call.
func (p *Publisher) Publish(e Event) *Publisher {
	c := e.Category()

	p.mu.Lock()
	bucket := p.subscriptions[c]
	if len(bucket) == 0 {
		p.mu.Unlock()
		if p.stats != nil {
			p.stats.Published(c, 0)
		}
		return p
	}

	var matching []Subscriber
	for _, s := range bucket {
		if s.matches(e) {
			matching = append(matching, s)
		}
	}

	// Retirement is independent of matching: a subscription can retire on
	// an event its own predicate rejected.
	kept := make([]Subscriber, 0, len(bucket))
	retired := 0
	for _, s := range bucket {
		if s.retires(e) {
			retired++
		} else {
			kept = append(kept, s)
		}
	}

	if _, single := e.(Single); single {
		delete(p.subscriptions, c)
	} else if len(kept) == 0 {
		delete(p.subscriptions, c)
	} else {
		p.subscriptions[c] = kept
	}
	p.mu.Unlock()

	if retired > 0 {
		p.log.Debugf("Retired %d subscriber(s) of %s", retired, c)
	}
	if p.stats != nil {
		p.stats.Published(c, len(matching))
	}
	if len(matching) > 0 {
		p.executor.Execute(&DispatchTask{event: e, subscriptions: matching, log: p.log})
	}
	return p
}

// SubscribersCount returns the number of subscriptions registered for the
// category.
func (p *Publisher) SubscribersCount(c Category) int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.subscriptions[c])
}

// SubscribersTotal returns the number of subscriptions across all
// categories.
func (p *Publisher) SubscribersTotal() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	total := 0
	for _, bucket := range p.subscriptions {
		total += len(bucket)
	}
	return total
}
