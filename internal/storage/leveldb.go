package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/util"

	"github.com/runtofuture/ethereumj/internal/core"
)

// ErrNotFound is returned when a requested block summary is absent.
var ErrNotFound = errors.New("block summary not found")

type LevelDBStore struct{ db *leveldb.DB }

func NewLevelDB(path string) (*LevelDBStore, error) {
	p := filepath.Clean(path)
	db, err := leveldb.OpenFile(p, nil)
	if err != nil {
		return nil, err
	}
	return &LevelDBStore{db: db}, nil
}

func (s *LevelDBStore) Close() error { return s.db.Close() }

func keySummary(number uint64) []byte { return []byte(fmt.Sprintf("blk:summary:%020d", number)) }

func (s *LevelDBStore) SaveSummary(summary *core.BlockSummary) error {
	b, err := json.Marshal(summary)
	if err != nil {
		return err
	}
	return s.db.Put(keySummary(summary.Block.Number), b, nil)
}

func (s *LevelDBStore) GetSummary(number uint64) (*core.BlockSummary, error) {
	data, err := s.db.Get(keySummary(number), nil)
	if err == leveldb.ErrNotFound {
		return nil, fmt.Errorf("%w: block %d", ErrNotFound, number)
	}
	if err != nil {
		return nil, err
	}
	var summary core.BlockSummary
	if err := json.Unmarshal(data, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

func (s *LevelDBStore) LatestSummary() (*core.BlockSummary, error) {
	it := s.db.NewIterator(util.BytesPrefix([]byte("blk:summary:")), nil)
	defer it.Release()
	var last *core.BlockSummary
	for it.Next() {
		// keys are zero-padded, so the last one is the highest block
		var summary core.BlockSummary
		if err := json.Unmarshal(it.Value(), &summary); err != nil {
			continue
		}
		last = &summary
	}
	if err := it.Error(); err != nil {
		return nil, err
	}
	return last, nil
}
