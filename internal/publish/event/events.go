// Package event declares the node lifecycle event kinds carried by the
// publish bus. Each kind is a value struct with a distinct category tag;
// the payload fields are opaque to the bus.
package event

import (
	"github.com/runtofuture/ethereumj/internal/core"
	"github.com/runtofuture/ethereumj/internal/p2p"
	"github.com/runtofuture/ethereumj/internal/p2p/message"
	"github.com/runtofuture/ethereumj/internal/publish"
)

const (
	CategoryTrace                   publish.Category = "trace"
	CategoryNodeDiscovered          publish.Category = "node.discovered"
	CategoryPeerHandshaked          publish.Category = "peer.handshaked"
	CategoryEthStatusUpdated        publish.Category = "peer.status.updated"
	CategoryMessageReceived         publish.Category = "message.received"
	CategoryMessageSent             publish.Category = "message.sent"
	CategoryBlockAdded              publish.Category = "block.added"
	CategoryBestBlockAdded          publish.Category = "block.best.added"
	CategoryPeerDisconnected        publish.Category = "peer.disconnected"
	CategoryPendingTxsReceived      publish.Category = "pending.transactions.received"
	CategoryPendingStateChanged     publish.Category = "pending.state.changed"
	CategoryPendingTxUpdated        publish.Category = "pending.transaction.updated"
	CategorySyncDone                publish.Category = "sync.done"
	CategoryNoConnections           publish.Category = "connections.none"
	CategoryVMTraceCreated          publish.Category = "vm.trace.created"
	CategoryTransactionExecuted     publish.Category = "transaction.executed"
	CategoryPeerAddedToSyncPool     publish.Category = "sync.pool.peer.added"
)

// Trace carries free-form diagnostic output.
type Trace struct {
	Output string
}

func (Trace) Category() publish.Category { return CategoryTrace }

// NodeDiscovered fires when the discovery layer learns about a new node.
type NodeDiscovered struct {
	Node *p2p.Node
}

func (NodeDiscovered) Category() publish.Category { return CategoryNodeDiscovered }

// PeerHandshaked fires once the p2p handshake with a peer completes.
type PeerHandshaked struct {
	Channel *p2p.Channel
	Hello   *p2p.Hello
}

func (PeerHandshaked) Category() publish.Category { return CategoryPeerHandshaked }

// EthStatusUpdated fires when a peer announces its chain status.
type EthStatusUpdated struct {
	Channel *p2p.Channel
	Status  *p2p.Status
}

func (EthStatusUpdated) Category() publish.Category { return CategoryEthStatusUpdated }

// MessageReceived fires for every decoded inbound wire message.
type MessageReceived struct {
	Channel *p2p.Channel
	Message message.Message
}

func (MessageReceived) Category() publish.Category { return CategoryMessageReceived }

// MessageSent fires for every outbound wire message.
type MessageSent struct {
	Channel *p2p.Channel
	Message message.Message
}

func (MessageSent) Category() publish.Category { return CategoryMessageSent }

// BlockAdded fires when a block has been imported.
type BlockAdded struct {
	Summary *core.BlockSummary
}

func (BlockAdded) Category() publish.Category { return CategoryBlockAdded }

// BestBlockAdded fires when an imported block was evaluated against the
// current chain head; Best reports whether it became the new head.
type BestBlockAdded struct {
	Summary *core.BlockSummary
	Best    bool
}

func (BestBlockAdded) Category() publish.Category { return CategoryBestBlockAdded }

// PeerDisconnected fires when a peer connection is torn down.
type PeerDisconnected struct {
	Host string
	Port int
}

func (PeerDisconnected) Category() publish.Category { return CategoryPeerDisconnected }

// PendingTransactionsReceived fires when new transactions enter the pending
// set.
type PendingTransactionsReceived struct {
	Transactions []*core.Transaction
}

func (PendingTransactionsReceived) Category() publish.Category { return CategoryPendingTxsReceived }

// PendingStateChanged fires after the pending state was rebuilt.
type PendingStateChanged struct {
	State *core.PendingState
}

func (PendingStateChanged) Category() publish.Category { return CategoryPendingStateChanged }

// PendingTransactionUpdated fires when the status of a pending transaction
// changes. Block is the block that triggered the update, when there is one.
type PendingTransactionUpdated struct {
	Block   *core.Block
	Receipt *core.TransactionReceipt
	Status  core.PendingTransactionStatus
}

func (PendingTransactionUpdated) Category() publish.Category { return CategoryPendingTxUpdated }

// SyncDone fires once when initial sync reaches the given state. It is
// single-fire: the first publish clears all subscribers of the category.
type SyncDone struct {
	publish.SingleFire
	State core.SyncState
}

func (SyncDone) Category() publish.Category { return CategorySyncDone }

// NoConnections fires when the node has lost its last peer connection.
type NoConnections struct{}

func (NoConnections) Category() publish.Category { return CategoryNoConnections }

// VMTraceCreated fires when VM execution produced a trace for a transaction.
type VMTraceCreated struct {
	TxHash string
	Trace  string
}

func (VMTraceCreated) Category() publish.Category { return CategoryVMTraceCreated }

// TransactionExecuted fires after a transaction finished executing.
type TransactionExecuted struct {
	Summary *core.TransactionExecutionSummary
}

func (TransactionExecuted) Category() publish.Category { return CategoryTransactionExecuted }

// PeerAddedToSyncPool fires when a peer qualifies for the sync pool.
type PeerAddedToSyncPool struct {
	Channel *p2p.Channel
}

func (PeerAddedToSyncPool) Category() publish.Category { return CategoryPeerAddedToSyncPool }
