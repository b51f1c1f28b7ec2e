// Package listener provides the legacy fixed-method listener surface as a
// thin translation layer over the publish bus. It exists for embedders that
// predate per-event subscriptions; new code should subscribe directly.
package listener

import (
	"github.com/runtofuture/ethereumj/internal/core"
	"github.com/runtofuture/ethereumj/internal/p2p"
	"github.com/runtofuture/ethereumj/internal/p2p/message"
	"github.com/runtofuture/ethereumj/internal/publish"
	"github.com/runtofuture/ethereumj/internal/publish/event"
)

// Listener is the legacy callback set. Every method corresponds to exactly
// one event kind.
type Listener interface {
	Trace(output string)
	OnNodeDiscovered(node *p2p.Node)
	OnHandshakePeer(ch *p2p.Channel, hello *p2p.Hello)
	OnEthStatusUpdated(ch *p2p.Channel, status *p2p.Status)
	OnRecvMessage(ch *p2p.Channel, msg message.Message)
	OnSendMessage(ch *p2p.Channel, msg message.Message)
	OnBlock(summary *core.BlockSummary)
	OnBestBlock(summary *core.BlockSummary, best bool)
	OnPeerDisconnect(host string, port int)
	OnPendingTransactionsReceived(txs []*core.Transaction)
	OnPendingStateChanged(state *core.PendingState)
	OnPendingTransactionUpdate(block *core.Block, receipt *core.TransactionReceipt, status core.PendingTransactionStatus)
	OnSyncDone(state core.SyncState)
	OnNoConnections()
	OnVMTraceCreated(txHash, trace string)
	OnTransactionExecuted(summary *core.TransactionExecutionSummary)
	OnPeerAddedToSyncPool(ch *p2p.Channel)
}

// Subscribe registers one bus subscription per listener callback. Each
// subscription is tagged with the listener as its owner, so subscribing the
// same listener twice deduplicates per callback while distinct listeners
// coexist.
func Subscribe(p *publish.Publisher, l Listener) {
	p.
		Subscribe(publish.To(func(e event.Trace) { l.Trace(e.Output) }).Owned(l)).
		Subscribe(publish.To(func(e event.NodeDiscovered) { l.OnNodeDiscovered(e.Node) }).Owned(l)).
		Subscribe(publish.To(func(e event.PeerHandshaked) { l.OnHandshakePeer(e.Channel, e.Hello) }).Owned(l)).
		Subscribe(publish.To(func(e event.EthStatusUpdated) { l.OnEthStatusUpdated(e.Channel, e.Status) }).Owned(l)).
		Subscribe(publish.To(func(e event.MessageReceived) { l.OnRecvMessage(e.Channel, e.Message) }).Owned(l)).
		Subscribe(publish.To(func(e event.MessageSent) { l.OnSendMessage(e.Channel, e.Message) }).Owned(l)).
		Subscribe(publish.To(func(e event.BlockAdded) { l.OnBlock(e.Summary) }).Owned(l)).
		Subscribe(publish.To(func(e event.BestBlockAdded) { l.OnBestBlock(e.Summary, e.Best) }).Owned(l)).
		Subscribe(publish.To(func(e event.PeerDisconnected) { l.OnPeerDisconnect(e.Host, e.Port) }).Owned(l)).
		Subscribe(publish.To(func(e event.PendingTransactionsReceived) {
			l.OnPendingTransactionsReceived(e.Transactions)
		}).Owned(l)).
		Subscribe(publish.To(func(e event.PendingStateChanged) { l.OnPendingStateChanged(e.State) }).Owned(l)).
		Subscribe(publish.To(func(e event.PendingTransactionUpdated) {
			l.OnPendingTransactionUpdate(e.Block, e.Receipt, e.Status)
		}).Owned(l)).
		Subscribe(publish.To(func(e event.SyncDone) { l.OnSyncDone(e.State) }).Owned(l)).
		Subscribe(publish.To(func(e event.NoConnections) { l.OnNoConnections() }).Owned(l)).
		Subscribe(publish.To(func(e event.VMTraceCreated) { l.OnVMTraceCreated(e.TxHash, e.Trace) }).Owned(l)).
		Subscribe(publish.To(func(e event.TransactionExecuted) { l.OnTransactionExecuted(e.Summary) }).Owned(l)).
		Subscribe(publish.To(func(e event.PeerAddedToSyncPool) { l.OnPeerAddedToSyncPool(e.Channel) }).Owned(l))
}

// AsListener returns a Listener whose every callback publishes the
// corresponding event on the bus. It is the reverse adapter for producers
// still coded against the legacy interface.
func AsListener(p *publish.Publisher) Listener {
	return &publishingListener{bus: p}
}

type publishingListener struct {
	bus *publish.Publisher
}

func (pl *publishingListener) Trace(output string) {
	pl.bus.Publish(event.Trace{Output: output})
}

func (pl *publishingListener) OnNodeDiscovered(node *p2p.Node) {
	pl.bus.Publish(event.NodeDiscovered{Node: node})
}

func (pl *publishingListener) OnHandshakePeer(ch *p2p.Channel, hello *p2p.Hello) {
	pl.bus.Publish(event.PeerHandshaked{Channel: ch, Hello: hello})
}

func (pl *publishingListener) OnEthStatusUpdated(ch *p2p.Channel, status *p2p.Status) {
	pl.bus.Publish(event.EthStatusUpdated{Channel: ch, Status: status})
}

func (pl *publishingListener) OnRecvMessage(ch *p2p.Channel, msg message.Message) {
	pl.bus.Publish(event.MessageReceived{Channel: ch, Message: msg})
}

func (pl *publishingListener) OnSendMessage(ch *p2p.Channel, msg message.Message) {
	pl.bus.Publish(event.MessageSent{Channel: ch, Message: msg})
}

func (pl *publishingListener) OnBlock(summary *core.BlockSummary) {
	pl.bus.Publish(event.BlockAdded{Summary: summary})
}

func (pl *publishingListener) OnBestBlock(summary *core.BlockSummary, best bool) {
	pl.bus.Publish(event.BestBlockAdded{Summary: summary, Best: best})
}

func (pl *publishingListener) OnPeerDisconnect(host string, port int) {
	pl.bus.Publish(event.PeerDisconnected{Host: host, Port: port})
}

func (pl *publishingListener) OnPendingTransactionsReceived(txs []*core.Transaction) {
	pl.bus.Publish(event.PendingTransactionsReceived{Transactions: txs})
}

func (pl *publishingListener) OnPendingStateChanged(state *core.PendingState) {
	pl.bus.Publish(event.PendingStateChanged{State: state})
}

func (pl *publishingListener) OnPendingTransactionUpdate(block *core.Block, receipt *core.TransactionReceipt, status core.PendingTransactionStatus) {
	pl.bus.Publish(event.PendingTransactionUpdated{Block: block, Receipt: receipt, Status: status})
}

func (pl *publishingListener) OnSyncDone(state core.SyncState) {
	pl.bus.Publish(event.SyncDone{State: state})
}

func (pl *publishingListener) OnNoConnections() {
	pl.bus.Publish(event.NoConnections{})
}

func (pl *publishingListener) OnVMTraceCreated(txHash, trace string) {
	pl.bus.Publish(event.VMTraceCreated{TxHash: txHash, Trace: trace})
}

func (pl *publishingListener) OnTransactionExecuted(summary *core.TransactionExecutionSummary) {
	pl.bus.Publish(event.TransactionExecuted{Summary: summary})
}

func (pl *publishingListener) OnPeerAddedToSyncPool(ch *p2p.Channel) {
	pl.bus.Publish(event.PeerAddedToSyncPool{Channel: ch})
}
