package publish

import (
	"fmt"
	"runtime/debug"

	"github.com/runtofuture/ethereumj/internal/logging"
)

// Task is an opaque unit of work handed to an Executor.
type Task interface {
	Run()
}

// DispatchTask delivers one event to the subscribers that matched it at
// publish time. The snapshot is immutable: subscribe/unsubscribe after the
// task was built cannot affect it, which also makes self-unsubscription from
// inside a handler safe.
type DispatchTask struct {
	event         Event
	subscriptions []Subscriber
	log           logging.Logger
}

// Run invokes each matched handler in registration order. A panicking
// handler is logged and isolated so the rest of the snapshot still gets the
// event.
func (t *DispatchTask) Run() {
	for _, sub := range t.subscriptions {
		t.invoke(sub)
	}
}

func (t *DispatchTask) invoke(sub Subscriber) {
	defer func() {
		if r := recover(); r != nil {
			t.log.Errorf("Subscriber of %s panicked: %v\n%s", t.event.Category(), r, debug.Stack())
		}
	}()
	sub.deliver(t.event)
}

// Event returns the event being dispatched.
func (t *DispatchTask) Event() Event { return t.event }

// Size returns the number of subscribers in the snapshot.
func (t *DispatchTask) Size() int { return len(t.subscriptions) }

func (t *DispatchTask) String() string {
	return fmt.Sprintf("%s: consumed by %d subscriber(s)", t.event.Category(), len(t.subscriptions))
}
