package listener_test

import (
	"testing"

	"github.com/runtofuture/ethereumj/internal/core"
	"github.com/runtofuture/ethereumj/internal/listener"
	"github.com/runtofuture/ethereumj/internal/p2p"
	"github.com/runtofuture/ethereumj/internal/publish"
	"github.com/runtofuture/ethereumj/internal/publish/event"
)

type recordingListener struct {
	listener.Base

	traces    []string
	blocks    []*core.BlockSummary
	syncState core.SyncState
	syncDone  bool
	peerGone  string
}

func (r *recordingListener) Trace(output string) { r.traces = append(r.traces, output) }

func (r *recordingListener) OnBlock(summary *core.BlockSummary) {
	r.blocks = append(r.blocks, summary)
}

func (r *recordingListener) OnSyncDone(state core.SyncState) {
	r.syncDone = true
	r.syncState = state
}

func (r *recordingListener) OnPeerDisconnect(host string, port int) { r.peerGone = host }

func TestSubscribeRoutesEventsToCallbacks(t *testing.T) {
	bus := publish.NewPublisher(publish.CallerRuns{})
	rec := &recordingListener{}
	listener.Subscribe(bus, rec)

	summary := &core.BlockSummary{Block: &core.Block{Number: 42}}
	bus.
		Publish(event.Trace{Output: "hello"}).
		Publish(event.BlockAdded{Summary: summary}).
		Publish(event.PeerDisconnected{Host: "10.0.0.1", Port: 30303}).
		Publish(event.SyncDone{State: core.SyncComplete})

	if len(rec.traces) != 1 || rec.traces[0] != "hello" {
		t.Fatalf("trace callback not routed: %v", rec.traces)
	}
	if len(rec.blocks) != 1 || rec.blocks[0].Block.Number != 42 {
		t.Fatalf("block callback not routed: %v", rec.blocks)
	}
	if rec.peerGone != "10.0.0.1" {
		t.Fatalf("peer disconnect callback not routed: %q", rec.peerGone)
	}
	if !rec.syncDone || rec.syncState != core.SyncComplete {
		t.Fatalf("sync done callback not routed")
	}
}

func TestSyncDoneRemainsSingleFireThroughAdapter(t *testing.T) {
	bus := publish.NewPublisher(publish.CallerRuns{})
	rec := &recordingListener{}
	listener.Subscribe(bus, rec)

	bus.Publish(event.SyncDone{State: core.SyncUnsecure})
	rec.syncDone = false
	bus.Publish(event.SyncDone{State: core.SyncComplete})

	if rec.syncDone {
		t.Fatalf("second SyncDone publish must not reach the listener")
	}
}

func TestAsListenerPublishes(t *testing.T) {
	bus := publish.NewPublisher(publish.CallerRuns{})
	var gotTrace string
	var gotPeer *p2p.Node
	publish.SubscribeTo(bus, func(e event.Trace) { gotTrace = e.Output })
	publish.SubscribeTo(bus, func(e event.NodeDiscovered) { gotPeer = e.Node })

	l := listener.AsListener(bus)
	l.Trace("via adapter")
	l.OnNodeDiscovered(&p2p.Node{ID: "abc", Host: "127.0.0.1", Port: 30303})

	if gotTrace != "via adapter" {
		t.Fatalf("Trace was not published: %q", gotTrace)
	}
	if gotPeer == nil || gotPeer.ID != "abc" {
		t.Fatalf("NodeDiscovered was not published: %v", gotPeer)
	}
}

func TestTwoListenersBothReceive(t *testing.T) {
	bus := publish.NewPublisher(publish.CallerRuns{})
	first := &recordingListener{}
	second := &recordingListener{}
	listener.Subscribe(bus, first)
	listener.Subscribe(bus, second)

	bus.Publish(event.Trace{Output: "fanout"})

	if len(first.traces) != 1 || len(second.traces) != 1 {
		t.Fatalf("both listeners must receive the event: %v / %v", first.traces, second.traces)
	}
}

func TestSubscribeSameListenerTwiceDeduplicates(t *testing.T) {
	bus := publish.NewPublisher(publish.CallerRuns{})
	rec := &recordingListener{}
	listener.Subscribe(bus, rec)
	before := bus.SubscribersTotal()
	listener.Subscribe(bus, rec)

	if after := bus.SubscribersTotal(); after != before {
		t.Fatalf("re-subscribing the same listener must dedupe: %d -> %d", before, after)
	}
}
