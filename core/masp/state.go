package masp

import (
	"encoding/binary"

	"github.com/tos-network/tokencore/common"
	"github.com/tos-network/tokencore/crypto"
	"github.com/tos-network/tokencore/params"
	"github.com/tos-network/tokencore/state"
)

// Pool state lives in storage slots owned by params.MaspAddress: one uint64
// balance word per asset, one marker word per spent nullifier, and the
// commitment tree accumulator (see tree.go).

func poolBalanceSlot(asset AssetType) common.Hash {
	return crypto.Keccak256Hash([]byte("masp.pool.balance"), asset[:])
}

func nullifierSlot(nf common.Hash) common.Hash {
	return crypto.Keccak256Hash([]byte("masp.pool.nullifier"), nf.Bytes())
}

func readUint64(db state.StateDB, slot common.Hash) uint64 {
	raw := db.GetState(params.MaspAddress, slot)
	return binary.BigEndian.Uint64(raw[24:])
}

func writeUint64(db state.StateDB, slot common.Hash, n uint64) {
	var word common.Hash
	binary.BigEndian.PutUint64(word[24:], n)
	db.SetState(params.MaspAddress, slot, word)
}

// PoolBalance returns the pool's aggregate shielded value for asset.
func PoolBalance(db state.StateDB, asset AssetType) uint64 {
	return readUint64(db, poolBalanceSlot(asset))
}

func setPoolBalance(db state.StateDB, asset AssetType, value uint64) {
	writeUint64(db, poolBalanceSlot(asset), value)
}

// IsSpent reports whether nullifier nf has been recorded as spent.
func IsSpent(db state.StateDB, nf common.Hash) bool {
	return db.GetState(params.MaspAddress, nullifierSlot(nf))[31] != 0
}

func markSpent(db state.StateDB, nf common.Hash) {
	var word common.Hash
	word[31] = 1
	db.SetState(params.MaspAddress, nullifierSlot(nf), word)
}
