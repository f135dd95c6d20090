package state

import (
	"github.com/tos-network/tokencore/common"
)

// MemoryStateDB is an ephemeral StateDB backed by nested maps. It is the
// reference implementation used throughout the test suite.
type MemoryStateDB struct {
	slots map[common.Address]map[common.Hash]common.Hash
}

// NewMemory returns an empty in-memory state.
func NewMemory() *MemoryStateDB {
	return &MemoryStateDB{slots: make(map[common.Address]map[common.Hash]common.Hash)}
}

func (m *MemoryStateDB) GetState(owner common.Address, slot common.Hash) common.Hash {
	return m.slots[owner][slot]
}

func (m *MemoryStateDB) SetState(owner common.Address, slot common.Hash, value common.Hash) {
	bucket, ok := m.slots[owner]
	if !ok {
		bucket = make(map[common.Hash]common.Hash)
		m.slots[owner] = bucket
	}
	if value == (common.Hash{}) {
		delete(bucket, slot)
		return
	}
	bucket[slot] = value
}

// Copy returns a deep copy of the state, useful for determinism tests that
// replay the same transaction against identical starting state.
func (m *MemoryStateDB) Copy() *MemoryStateDB {
	out := NewMemory()
	for owner, bucket := range m.slots {
		dst := make(map[common.Hash]common.Hash, len(bucket))
		for slot, value := range bucket {
			dst[slot] = value
		}
		out.slots[owner] = dst
	}
	return out
}
