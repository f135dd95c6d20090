package state

import (
	"fmt"

	"github.com/syndtr/goleveldb/leveldb"

	"github.com/tos-network/tokencore/common"
)

// LevelDBStateDB is a persistent StateDB backed by goleveldb. Keys are the
// 52-byte concatenation of owner address and slot hash; values are the raw
// 32-byte words. Zero words are stored as deletions so that state stays
// canonical regardless of write order.
type LevelDBStateDB struct {
	db *leveldb.DB
}

// OpenLevelDB opens (creating if necessary) a leveldb-backed state at path.
func OpenLevelDB(path string) (*LevelDBStateDB, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("open state database: %w", err)
	}
	return &LevelDBStateDB{db: db}, nil
}

// Close releases the underlying database handle.
func (l *LevelDBStateDB) Close() error {
	return l.db.Close()
}

func stateKey(owner common.Address, slot common.Hash) []byte {
	key := make([]byte, 0, common.AddressLength+common.HashLength)
	key = append(key, owner[:]...)
	key = append(key, slot[:]...)
	return key
}

func (l *LevelDBStateDB) GetState(owner common.Address, slot common.Hash) common.Hash {
	raw, err := l.db.Get(stateKey(owner, slot), nil)
	if err != nil {
		// Missing keys read as the zero word, like any other backend miss.
		return common.Hash{}
	}
	return common.BytesToHash(raw)
}

func (l *LevelDBStateDB) SetState(owner common.Address, slot common.Hash, value common.Hash) {
	key := stateKey(owner, slot)
	if value == (common.Hash{}) {
		l.db.Delete(key, nil)
		return
	}
	l.db.Put(key, value.Bytes(), nil)
}
