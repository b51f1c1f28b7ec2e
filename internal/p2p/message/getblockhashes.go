package message

import (
	"fmt"
	"sync"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rlp"
)

// getBlockHashesWire is the on-wire shape: [command, hash, maxHashes].
type getBlockHashesWire struct {
	Cmd       uint8
	Hash      []byte
	MaxHashes uint32
}

// GetBlockHashesMessage asks a peer for up to MaxHashes block hashes,
// walking backwards from the block whose hash is Hash. The peer may return
// fewer.
//
// A message built from typed fields encodes immediately; a message wrapped
// from raw bytes defers decoding until the first field access, so relays
// that only forward bytes never pay for a parse.
type GetBlockHashesMessage struct {
	encoded []byte

	once      sync.Once
	parseErr  error
	hash      []byte
	maxHashes uint32
}

// NewGetBlockHashesMessage builds the message from typed fields and encodes
// it eagerly.
func NewGetBlockHashesMessage(hash []byte, maxHashes uint32) *GetBlockHashesMessage {
	m := &GetBlockHashesMessage{
		hash:      hash,
		maxHashes: maxHashes,
	}
	m.encoded = mustEncode(&getBlockHashesWire{Cmd: uint8(GetBlockHashes), Hash: hash, MaxHashes: maxHashes})
	m.once.Do(func() {}) // fields are authoritative, never re-parse
	return m
}

// WrapGetBlockHashesMessage wraps raw wire bytes without decoding them.
// Decoding happens on first field access and its outcome is cached.
func WrapGetBlockHashesMessage(encoded []byte) *GetBlockHashesMessage {
	return &GetBlockHashesMessage{encoded: encoded}
}

func (m *GetBlockHashesMessage) parse() error {
	m.once.Do(func() {
		var wire getBlockHashesWire
		if err := rlp.DecodeBytes(m.encoded, &wire); err != nil {
			m.parseErr = fmt.Errorf("decode GET_BLOCK_HASHES: %w", err)
			return
		}
		if err := checkCommand(wire.Cmd, GetBlockHashes); err != nil {
			m.parseErr = err
			return
		}
		m.hash = wire.Hash
		m.maxHashes = wire.MaxHashes
	})
	return m.parseErr
}

// Hash returns the starting block hash, decoding the message if needed.
func (m *GetBlockHashesMessage) Hash() ([]byte, error) {
	if err := m.parse(); err != nil {
		return nil, err
	}
	return m.hash, nil
}

// MaxHashes returns the requested hash count, decoding the message if needed.
func (m *GetBlockHashesMessage) MaxHashes() (uint32, error) {
	if err := m.parse(); err != nil {
		return 0, err
	}
	return m.maxHashes, nil
}

func (m *GetBlockHashesMessage) Encoded() []byte  { return m.encoded }
func (m *GetBlockHashesMessage) Command() Command { return GetBlockHashes }

func (m *GetBlockHashesMessage) String() string {
	if err := m.parse(); err != nil {
		return fmt.Sprintf("[%s invalid: %v]", GetBlockHashes, err)
	}
	return fmt.Sprintf("[%s hash=%s maxHashes=%d]", GetBlockHashes, hexutil.Encode(m.hash), m.maxHashes)
}
