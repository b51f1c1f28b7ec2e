package core

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// Block is the minimal view of a chain block carried through events.
// Payload values are opaque to the event bus; only subscribers look inside.
type Block struct {
	Number     uint64
	Hash       common.Hash
	ParentHash common.Hash
	Coinbase   common.Address
	Timestamp  int64

	Transactions []*Transaction
}

func (b *Block) String() string {
	if b == nil {
		return "block[nil]"
	}
	return fmt.Sprintf("block[#%d %s txs=%d]", b.Number, b.Hash.TerminalString(), len(b.Transactions))
}

// Transaction carries enough of a pending/executed transaction for
// consumers of the pending-state events.
type Transaction struct {
	Hash     common.Hash
	Nonce    uint64
	From     common.Address
	To       *common.Address // nil for contract creation
	Value    uint64
	GasLimit uint64
	Data     []byte
}

func (tx *Transaction) String() string {
	if tx == nil {
		return "tx[nil]"
	}
	return fmt.Sprintf("tx[%s nonce=%d]", tx.Hash.TerminalString(), tx.Nonce)
}

// TransactionReceipt is the post-execution record for a single transaction.
type TransactionReceipt struct {
	TxHash            common.Hash
	GasUsed           uint64
	CumulativeGasUsed uint64
	Error             string
}

// Successful reports whether the transaction executed without error.
func (r *TransactionReceipt) Successful() bool { return r != nil && r.Error == "" }

// TransactionExecutionSummary aggregates the outcome of executing one
// transaction, published once execution finishes.
type TransactionExecutionSummary struct {
	TxHash  common.Hash
	GasUsed uint64
	Failed  bool
}

// BlockSummary bundles a block with its execution artifacts. It is the
// payload of the block lifecycle events.
type BlockSummary struct {
	Block    *Block
	Receipts []*TransactionReceipt
}

func (s *BlockSummary) String() string {
	if s == nil || s.Block == nil {
		return "summary[nil]"
	}
	return fmt.Sprintf("summary[%s receipts=%d]", s.Block, len(s.Receipts))
}

// PendingState is a snapshot of the not-yet-mined transaction set.
type PendingState struct {
	Transactions []*Transaction
}

// PendingTransactionStatus tracks a pending transaction through its lifetime.
type PendingTransactionStatus int

const (
	PendingNew PendingTransactionStatus = iota
	PendingQueued
	PendingIncluded
	PendingDropped
)

func (s PendingTransactionStatus) String() string {
	switch s {
	case PendingNew:
		return "new"
	case PendingQueued:
		return "queued"
	case PendingIncluded:
		return "included"
	case PendingDropped:
		return "dropped"
	}
	return fmt.Sprintf("unknown(%d)", int(s))
}

// SyncState describes how far initial sync has progressed when SyncDone fires.
type SyncState int

const (
	SyncUnsecure SyncState = iota
	SyncSecure
	SyncComplete
)

func (s SyncState) String() string {
	switch s {
	case SyncUnsecure:
		return "unsecure"
	case SyncSecure:
		return "secure"
	case SyncComplete:
		return "complete"
	}
	return fmt.Sprintf("unknown(%d)", int(s))
}
