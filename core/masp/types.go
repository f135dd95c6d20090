// Package masp implements the shielded pool adapter: the data model of a
// shielded transaction, its pool-side state transition, and the note
// commitment tree accumulator.
package masp

import (
	"bytes"
	"sort"

	"github.com/tos-network/tokencore/common"
)

const (
	// AssetTypeSize is the byte width of a shielded asset identifier.
	AssetTypeSize = 32

	// EphemeralKeySize is the byte width of an output's ephemeral key.
	EphemeralKeySize = 32
)

// AssetType identifies an asset inside the shielded pool. Transparent tokens
// map into this space via AssetOf.
type AssetType [AssetTypeSize]byte

// TransparentTx is one entry of a shielded transaction's transparent bundle:
// a value movement between the pool and a transparent-pool address (taddr).
type TransparentTx struct {
	Asset   AssetType
	Value   uint64
	Address common.Address // taddr, see TransparentAddress
}

// TransparentBundle is the transparent leg of a shielded transaction. Vin
// entries move value into the pool and carry the taddrs that authorize the
// movement; Vout entries move value back out.
type TransparentBundle struct {
	Vin  []TransparentTx
	Vout []TransparentTx
}

// SpendDescription consumes a previously created note. Only the nullifier is
// material to pool state; proof data has been verified before this subsystem
// runs.
type SpendDescription struct {
	Nullifier common.Hash
	Anchor    common.Hash
}

// OutputDescription creates a new note, identified on-chain solely by its
// commitment.
type OutputDescription struct {
	Commitment    common.Hash
	EphemeralKey  [EphemeralKeySize]byte
	EncCiphertext []byte
}

// ValueDelta is the net per-asset value flowing from the shielded pool into
// the transaction's transparent value pool. Positive means unshielding,
// negative means shielding.
type ValueDelta struct {
	Asset AssetType
	Value int64
}

// SaplingBundle is the shielded leg: note spends, note outputs and the claimed
// per-asset value balance.
type SaplingBundle struct {
	Spends       []SpendDescription
	Outputs      []OutputDescription
	ValueBalance []ValueDelta
}

// Transaction is a shielded transaction payload carried as a section of the
// enclosing ledger transaction and resolved by content id.
type Transaction struct {
	TransparentBundle *TransparentBundle
	SaplingBundle     *SaplingBundle
}

// VinAddresses returns the deduplicated taddrs listed as authorizing inputs of
// the transparent bundle, in canonical order. A payload without a transparent
// bundle has none.
func (t *Transaction) VinAddresses() []common.Address {
	if t.TransparentBundle == nil {
		return nil
	}
	seen := make(map[common.Address]struct{}, len(t.TransparentBundle.Vin))
	var out []common.Address
	for _, vin := range t.TransparentBundle.Vin {
		if _, ok := seen[vin.Address]; ok {
			continue
		}
		seen[vin.Address] = struct{}{}
		out = append(out, vin.Address)
	}
	common.SortAddresses(out)
	return out
}

func sortAssets(assets []AssetType) {
	sort.Slice(assets, func(i, j int) bool {
		return bytes.Compare(assets[i][:], assets[j][:]) < 0
	})
}
