package publish_test

import (
	"sync"
	"testing"

	"github.com/runtofuture/ethereumj/internal/publish"
)

type fooEvent struct{ N int }

func (fooEvent) Category() publish.Category { return "test.foo" }

type barEvent struct {
	publish.SingleFire
	S string
}

func (barEvent) Category() publish.Category { return "test.bar" }

func newInlineBus() *publish.Publisher {
	return publish.NewPublisher(publish.CallerRuns{})
}

func TestDeliveryToAllSubscribers(t *testing.T) {
	bus := newInlineBus()
	var order []string
	bus.
		Subscribe(publish.To(func(e fooEvent) { order = append(order, "A") })).
		Subscribe(publish.To(func(e fooEvent) { order = append(order, "B") }))

	bus.Publish(fooEvent{N: 1})

	if len(order) != 2 || order[0] != "A" || order[1] != "B" {
		t.Fatalf("expected registration-order delivery A,B; got %v", order)
	}
}

func TestDuplicateSubscribeIsNoop(t *testing.T) {
	bus := newInlineBus()
	calls := 0
	handler := func(e fooEvent) { calls++ }

	bus.Subscribe(publish.To(handler))
	bus.Subscribe(publish.To(handler))

	if got := bus.SubscribersCount("test.foo"); got != 1 {
		t.Fatalf("expected 1 subscriber after duplicate subscribe, got %d", got)
	}
	bus.Publish(fooEvent{N: 1})
	if calls != 1 {
		t.Fatalf("expected exactly one delivery, got %d", calls)
	}
}

func TestPredicateFiltering(t *testing.T) {
	bus := newInlineBus()
	var got []int
	bus.Subscribe(publish.To(func(e fooEvent) { got = append(got, e.N) }).
		Conditionally(func(e fooEvent) bool { return e.N%2 == 0 }))

	for n := 1; n <= 4; n++ {
		bus.Publish(fooEvent{N: n})
	}
	if len(got) != 2 || got[0] != 2 || got[1] != 4 {
		t.Fatalf("expected only matching payloads 2,4; got %v", got)
	}
}

func TestSingleFireExhaustsCategory(t *testing.T) {
	bus := newInlineBus()
	var got []string
	bus.Subscribe(publish.To(func(e barEvent) { got = append(got, e.S) }))

	bus.Publish(barEvent{S: "x"})
	if len(got) != 1 || got[0] != "x" {
		t.Fatalf("expected first publish delivered, got %v", got)
	}
	if n := bus.SubscribersCount("test.bar"); n != 0 {
		t.Fatalf("expected category cleared after single-fire publish, have %d", n)
	}

	bus.Publish(barEvent{S: "y"})
	if len(got) != 1 {
		t.Fatalf("expected no delivery after category cleared, got %v", got)
	}
}

func TestSingleFireClearsNonMatchingSubscribers(t *testing.T) {
	bus := newInlineBus()
	calls := 0
	bus.Subscribe(publish.To(func(e barEvent) { calls++ }).
		Conditionally(func(e barEvent) bool { return false }))

	bus.Publish(barEvent{S: "x"})

	if calls != 0 {
		t.Fatalf("predicate rejected the event, expected no delivery")
	}
	if n := bus.SubscribersCount("test.bar"); n != 0 {
		t.Fatalf("single-fire publish must clear the bucket even with no match, have %d", n)
	}
}

func TestRetirementIndependentOfMatching(t *testing.T) {
	bus := newInlineBus()
	calls := 0
	bus.Subscribe(publish.To(func(e fooEvent) { calls++ }).
		Conditionally(func(e fooEvent) bool { return false }).
		UnsubscribeAfter(func(e fooEvent) bool { return e.N == 7 }))

	bus.Publish(fooEvent{N: 7})

	if calls != 0 {
		t.Fatalf("handler must not fire for a rejected event, got %d calls", calls)
	}
	if n := bus.SubscribersCount("test.foo"); n != 0 {
		t.Fatalf("subscription should have retired without delivery, have %d", n)
	}
}

func TestOneshot(t *testing.T) {
	bus := newInlineBus()
	var got []int
	bus.Subscribe(publish.To(func(e fooEvent) { got = append(got, e.N) }).
		Oneshot(func(e fooEvent) bool { return e.N > 10 }))

	bus.Publish(fooEvent{N: 5})  // rejected, stays subscribed
	bus.Publish(fooEvent{N: 11}) // delivered, retires
	bus.Publish(fooEvent{N: 12}) // gone

	if len(got) != 1 || got[0] != 11 {
		t.Fatalf("expected single delivery of 11, got %v", got)
	}
	if n := bus.SubscribersCount("test.foo"); n != 0 {
		t.Fatalf("oneshot subscription should be gone, have %d", n)
	}
}

func TestSelfUnsubscribeDuringDispatch(t *testing.T) {
	bus := newInlineBus()
	var order []string
	var subA *publish.Subscription[fooEvent]
	subA = publish.To(func(e fooEvent) {
		order = append(order, "A")
		bus.Unsubscribe(subA)
	})
	bus.Subscribe(subA)
	bus.Subscribe(publish.To(func(e fooEvent) { order = append(order, "B") }))

	bus.Publish(fooEvent{N: 1})
	if len(order) != 2 || order[1] != "B" {
		t.Fatalf("B was snapshotted and must still be delivered; got %v", order)
	}

	bus.Publish(fooEvent{N: 2})
	if len(order) != 3 || order[2] != "B" {
		t.Fatalf("only B should remain subscribed; got %v", order)
	}
}

func TestUnsubscribeUnknownIsNoop(t *testing.T) {
	bus := newInlineBus()
	sub := publish.To(func(e fooEvent) {})
	bus.Unsubscribe(sub) // never registered
	if n := bus.SubscribersTotal(); n != 0 {
		t.Fatalf("expected empty registry, have %d", n)
	}
}

func TestCategoryCleanup(t *testing.T) {
	bus := newInlineBus()
	calls := 0
	sub := publish.SubscribeTo(bus, func(e fooEvent) { calls++ })

	bus.Unsubscribe(sub)
	if n := bus.SubscribersCount("test.foo"); n != 0 {
		t.Fatalf("expected count 0 after last unsubscribe, have %d", n)
	}
	bus.Publish(fooEvent{N: 1})
	if calls != 0 {
		t.Fatalf("publish on an empty category must be a no-op")
	}
}

func TestRefineAfterRegistration(t *testing.T) {
	bus := newInlineBus()
	var got []int
	sub := publish.SubscribeTo(bus, func(e fooEvent) { got = append(got, e.N) })

	bus.Publish(fooEvent{N: 1})
	sub.Conditionally(func(e fooEvent) bool { return e.N >= 10 })
	bus.Publish(fooEvent{N: 2})
	bus.Publish(fooEvent{N: 10})

	want := []int{1, 10}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestPanicIsolatedPerHandler(t *testing.T) {
	bus := newInlineBus()
	delivered := false
	bus.Subscribe(publish.To(func(e fooEvent) { panic("boom") }))
	bus.Subscribe(publish.To(func(e fooEvent) { delivered = true }))

	bus.Publish(fooEvent{N: 1}) // must not propagate the panic
	if !delivered {
		t.Fatalf("second subscriber must still receive the event after a panic")
	}
}

func TestSubscribersTotal(t *testing.T) {
	bus := newInlineBus()
	bus.
		Subscribe(publish.To(func(e fooEvent) {})).
		Subscribe(publish.To(func(e barEvent) {}))
	if n := bus.SubscribersTotal(); n != 2 {
		t.Fatalf("expected 2 total subscribers, have %d", n)
	}
}

func TestConcurrentPublishSubscribeUnsubscribe(t *testing.T) {
	bus := publish.NewPublisher(publish.CallerRuns{})
	var wg sync.WaitGroup

	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				sub := publish.SubscribeTo(bus, func(e fooEvent) {})
				bus.Publish(fooEvent{N: j})
				bus.Unsubscribe(sub)
			}
		}()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		for j := 0; j < 200; j++ {
			bus.Publish(barEvent{S: "s"})
			bus.SubscribersTotal()
			bus.SubscribersCount("test.foo")
		}
	}()
	wg.Wait()
}
