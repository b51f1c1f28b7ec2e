// Package message implements the wire encoding shared by all peer-to-peer
// protocol messages: an RLP list whose first element is the command byte,
// followed by the message fields in fixed order.
package message

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/rlp"
)

// ErrBadCommand is returned when the leading command byte of an encoded
// message does not match the kind being decoded. Callers must treat the
// message as malformed.
var ErrBadCommand = errors.New("unexpected command byte")

// Command is the single-byte identifier leading every encoded message.
type Command byte

const (
	Hello           Command = 0x00
	Disconnect      Command = 0x01
	Ping            Command = 0x02
	Pong            Command = 0x03
	GetPeers        Command = 0x10
	Peers           Command = 0x11
	Transactions    Command = 0x12
	Blocks          Command = 0x13
	GetChain        Command = 0x14
	NotInChain      Command = 0x15
	GetTransactions Command = 0x16
	GetBlockHashes  Command = 0x17
	BlockHashes     Command = 0x18
	GetBlocks       Command = 0x19
)

func (c Command) String() string {
	switch c {
	case Hello:
		return "HELLO"
	case Disconnect:
		return "DISCONNECT"
	case Ping:
		return "PING"
	case Pong:
		return "PONG"
	case GetPeers:
		return "GET_PEERS"
	case Peers:
		return "PEERS"
	case Transactions:
		return "TRANSACTIONS"
	case Blocks:
		return "BLOCKS"
	case GetChain:
		return "GET_CHAIN"
	case NotInChain:
		return "NOT_IN_CHAIN"
	case GetTransactions:
		return "GET_TRANSACTIONS"
	case GetBlockHashes:
		return "GET_BLOCK_HASHES"
	case BlockHashes:
		return "BLOCK_HASHES"
	case GetBlocks:
		return "GET_BLOCKS"
	}
	return fmt.Sprintf("UNKNOWN(0x%02x)", byte(c))
}

// Message is the contract every wire message kind satisfies. Encoded bytes
// are produced eagerly on typed construction and retained verbatim when a
// message is wrapped from raw bytes.
type Message interface {
	// Encoded returns the full RLP encoding, command byte included.
	Encoded() []byte
	// Command returns the kind identifier of this message.
	Command() Command
	fmt.Stringer
}

// mustEncode encodes a fixed-shape wire payload. The payload structs in this
// package contain only RLP-encodable field types, so failure means a
// programming error.
func mustEncode(payload interface{}) []byte {
	enc, err := rlp.EncodeToBytes(payload)
	if err != nil {
		panic(fmt.Sprintf("message: encode %T: %v", payload, err))
	}
	return enc
}

// checkCommand verifies the decoded command byte against the expected kind.
func checkCommand(got byte, want Command) error {
	if Command(got) != want {
		return fmt.Errorf("%w: got 0x%02x, want %s", ErrBadCommand, got, want)
	}
	return nil
}
