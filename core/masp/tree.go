package masp

import (
	"math"

	"github.com/tos-network/tokencore/common"
	"github.com/tos-network/tokencore/crypto"
	"github.com/tos-network/tokencore/params"
	"github.com/tos-network/tokencore/state"
)

var (
	treeSizeSlot = crypto.Keccak256Hash([]byte("masp.tree.size"))
	treeRootSlot = crypto.Keccak256Hash([]byte("masp.tree.root"))
)

// TreeState is the stored note commitment tree accumulator: an append-only
// hash chain over every note commitment ever created, plus its size.
type TreeState struct {
	Size uint64
	Root common.Hash
}

// ReadTree returns the current commitment tree accumulator.
func ReadTree(db state.StateDB) TreeState {
	return TreeState{
		Size: readUint64(db, treeSizeSlot),
		Root: db.GetState(params.MaspAddress, treeRootSlot),
	}
}

func writeTree(db state.StateDB, ts TreeState) {
	writeUint64(db, treeSizeSlot, ts.Size)
	db.SetState(params.MaspAddress, treeRootSlot, ts.Root)
}

// UpdateCommitmentTree appends every note commitment created by tx to the
// accumulator. A zero commitment marks a malformed output and fails the whole
// update before anything is written.
func UpdateCommitmentTree(db state.StateDB, tx *Transaction) error {
	if tx.SaplingBundle == nil || len(tx.SaplingBundle.Outputs) == 0 {
		return nil
	}
	ts := ReadTree(db)
	for _, output := range tx.SaplingBundle.Outputs {
		if output.Commitment == (common.Hash{}) {
			return ErrMissingCommitment
		}
		if ts.Size == math.MaxUint64 {
			return ErrValueOverflow
		}
		ts.Root = crypto.Keccak256Hash(ts.Root.Bytes(), output.Commitment.Bytes())
		ts.Size++
	}
	writeTree(db, ts)
	return nil
}
