package message

import (
	"fmt"
	"sync"

	"github.com/ethereum/go-ethereum/rlp"
)

// blockHashesWire is the on-wire shape: [command, hash...]. The hash list is
// the open tail of the outer list rather than a nested one.
type blockHashesWire struct {
	Cmd    uint8
	Hashes [][]byte `rlp:"tail"`
}

// BlockHashesMessage answers a GetBlockHashesMessage with the located block
// hashes, newest first. Same lazy-parse contract as the request side.
type BlockHashesMessage struct {
	encoded []byte

	once     sync.Once
	parseErr error
	hashes   [][]byte
}

// NewBlockHashesMessage builds the message from typed fields and encodes it
// eagerly.
func NewBlockHashesMessage(hashes [][]byte) *BlockHashesMessage {
	m := &BlockHashesMessage{hashes: hashes}
	m.encoded = mustEncode(&blockHashesWire{Cmd: uint8(BlockHashes), Hashes: hashes})
	m.once.Do(func() {})
	return m
}

// WrapBlockHashesMessage wraps raw wire bytes without decoding them.
func WrapBlockHashesMessage(encoded []byte) *BlockHashesMessage {
	return &BlockHashesMessage{encoded: encoded}
}

func (m *BlockHashesMessage) parse() error {
	m.once.Do(func() {
		var wire blockHashesWire
		if err := rlp.DecodeBytes(m.encoded, &wire); err != nil {
			m.parseErr = fmt.Errorf("decode BLOCK_HASHES: %w", err)
			return
		}
		if err := checkCommand(wire.Cmd, BlockHashes); err != nil {
			m.parseErr = err
			return
		}
		m.hashes = wire.Hashes
	})
	return m.parseErr
}

// Hashes returns the carried block hashes, decoding the message if needed.
func (m *BlockHashesMessage) Hashes() ([][]byte, error) {
	if err := m.parse(); err != nil {
		return nil, err
	}
	return m.hashes, nil
}

func (m *BlockHashesMessage) Encoded() []byte  { return m.encoded }
func (m *BlockHashesMessage) Command() Command { return BlockHashes }

func (m *BlockHashesMessage) String() string {
	if err := m.parse(); err != nil {
		return fmt.Sprintf("[%s invalid: %v]", BlockHashes, err)
	}
	return fmt.Sprintf("[%s count=%d]", BlockHashes, len(m.hashes))
}
