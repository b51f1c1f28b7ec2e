package listener

import (
	"github.com/runtofuture/ethereumj/internal/core"
	"github.com/runtofuture/ethereumj/internal/p2p"
	"github.com/runtofuture/ethereumj/internal/p2p/message"
)

// Base is a no-op Listener. Embed it to implement only the callbacks you
// care about.
type Base struct{}

func (Base) Trace(string)                                      {}
func (Base) OnNodeDiscovered(*p2p.Node)                        {}
func (Base) OnHandshakePeer(*p2p.Channel, *p2p.Hello)          {}
func (Base) OnEthStatusUpdated(*p2p.Channel, *p2p.Status)      {}
func (Base) OnRecvMessage(*p2p.Channel, message.Message)       {}
func (Base) OnSendMessage(*p2p.Channel, message.Message)       {}
func (Base) OnBlock(*core.BlockSummary)                        {}
func (Base) OnBestBlock(*core.BlockSummary, bool)              {}
func (Base) OnPeerDisconnect(string, int)                      {}
func (Base) OnPendingTransactionsReceived([]*core.Transaction) {}
func (Base) OnPendingStateChanged(*core.PendingState)          {}
func (Base) OnPendingTransactionUpdate(*core.Block, *core.TransactionReceipt, core.PendingTransactionStatus) {
}
func (Base) OnSyncDone(core.SyncState)                               {}
func (Base) OnNoConnections()                                        {}
func (Base) OnVMTraceCreated(string, string)                         {}
func (Base) OnTransactionExecuted(*core.TransactionExecutionSummary) {}
func (Base) OnPeerAddedToSyncPool(*p2p.Channel)                      {}
