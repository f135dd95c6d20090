package masp

import (
	"fmt"
	"math"

	"github.com/tos-network/tokencore/common"
	"github.com/tos-network/tokencore/state"
)

// HandleTx validates and applies the pool-side effects of a shielded
// transaction: nullifier recording for spends and per-asset pool balance
// updates for the transparent bundle. Proof verification has already happened
// upstream; this is the bookkeeping half of the state transition.
//
// Nothing is written unless the whole payload validates, so a failed call
// leaves pool state untouched.
func HandleTx(db state.StateDB, tx *Transaction) error {
	if tx.TransparentBundle == nil && tx.SaplingBundle == nil {
		return ErrEmptyTransaction
	}

	vinSums, err := sumTransparent(transparentVin(tx))
	if err != nil {
		return err
	}
	voutSums, err := sumTransparent(transparentVout(tx))
	if err != nil {
		return err
	}
	if err := checkValueBalance(tx, vinSums, voutSums); err != nil {
		return err
	}

	nullifiers, err := collectNullifiers(db, tx)
	if err != nil {
		return err
	}

	// Stage pool balance updates per asset before writing any of them.
	assets := sortedAssets(assetKeys(vinSums), assetKeys(voutSums))
	balances := make(map[AssetType]uint64, len(assets))
	for _, asset := range assets {
		balance := PoolBalance(db, asset)
		vin := vinSums[asset]
		if vin > math.MaxUint64-balance {
			return fmt.Errorf("%w: pool balance for asset %x", ErrValueOverflow, asset[:4])
		}
		balance += vin
		vout := voutSums[asset]
		if vout > balance {
			return fmt.Errorf("%w: asset %x", ErrPoolInsufficient, asset[:4])
		}
		balances[asset] = balance - vout
	}

	for _, asset := range assets {
		setPoolBalance(db, asset, balances[asset])
	}
	for _, nf := range nullifiers {
		markSpent(db, nf)
	}
	return nil
}

func transparentVin(tx *Transaction) []TransparentTx {
	if tx.TransparentBundle == nil {
		return nil
	}
	return tx.TransparentBundle.Vin
}

func transparentVout(tx *Transaction) []TransparentTx {
	if tx.TransparentBundle == nil {
		return nil
	}
	return tx.TransparentBundle.Vout
}

func sumTransparent(txs []TransparentTx) (map[AssetType]uint64, error) {
	sums := make(map[AssetType]uint64)
	for _, tx := range txs {
		if tx.Value > math.MaxUint64-sums[tx.Asset] {
			return nil, fmt.Errorf("%w: transparent bundle sum for asset %x", ErrValueOverflow, tx.Asset[:4])
		}
		sums[tx.Asset] += tx.Value
	}
	return sums, nil
}

// checkValueBalance enforces per-asset value conservation between the
// transparent bundle and the sapling bundle's claimed value balance:
//
//	sum(vin) + valueBalance == sum(vout)
//
// where valueBalance is the net value flowing out of the shielded notes.
// Assets absent from the value balance must have vin == vout.
func checkValueBalance(tx *Transaction, vinSums, voutSums map[AssetType]uint64) error {
	deltas := make(map[AssetType]int64)
	if tx.SaplingBundle != nil {
		for _, delta := range tx.SaplingBundle.ValueBalance {
			sum, ok := addInt64(deltas[delta.Asset], delta.Value)
			if !ok {
				// The claimed value balance is attacker-supplied; a wrapped
				// sum must never pass as balanced.
				return fmt.Errorf("%w: value balance for asset %x", ErrValueOverflow, delta.Asset[:4])
			}
			deltas[delta.Asset] = sum
		}
	}
	for _, asset := range sortedAssets(assetKeys(vinSums), assetKeys(voutSums), assetKeys(deltas)) {
		vin, vout, delta := vinSums[asset], voutSums[asset], deltas[asset]
		var balanced bool
		switch {
		case delta >= 0:
			balanced = vin <= math.MaxUint64-uint64(delta) && vin+uint64(delta) == vout
		default:
			magnitude := uint64(-delta)
			balanced = vout <= math.MaxUint64-magnitude && vin == vout+magnitude
		}
		if !balanced {
			return fmt.Errorf("%w: asset %x vin=%d vout=%d delta=%d", ErrValueImbalance, asset[:4], vin, vout, delta)
		}
	}
	return nil
}

// collectNullifiers gathers the payload's spend nullifiers, rejecting both
// replays against recorded state and duplicates within the payload itself.
func collectNullifiers(db state.StateDB, tx *Transaction) ([]common.Hash, error) {
	if tx.SaplingBundle == nil {
		return nil, nil
	}
	seen := make(map[common.Hash]struct{}, len(tx.SaplingBundle.Spends))
	out := make([]common.Hash, 0, len(tx.SaplingBundle.Spends))
	for _, spend := range tx.SaplingBundle.Spends {
		if _, dup := seen[spend.Nullifier]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDoubleSpend, spend.Nullifier)
		}
		if IsSpent(db, spend.Nullifier) {
			return nil, fmt.Errorf("%w: %s", ErrDoubleSpend, spend.Nullifier)
		}
		seen[spend.Nullifier] = struct{}{}
		out = append(out, spend.Nullifier)
	}
	return out, nil
}

// addInt64 returns a+b, reporting false if the sum wraps.
func addInt64(a, b int64) (int64, bool) {
	sum := a + b
	if (b > 0 && sum < a) || (b < 0 && sum > a) {
		return 0, false
	}
	return sum, true
}

// assetKeys returns the key set of a per-asset map.
func assetKeys[V any](m map[AssetType]V) []AssetType {
	out := make([]AssetType, 0, len(m))
	for asset := range m {
		out = append(out, asset)
	}
	return out
}

// sortedAssets merges the given key sets into one canonically ordered slice,
// so that state writes and error reporting are deterministic.
func sortedAssets(lists ...[]AssetType) []AssetType {
	seen := make(map[AssetType]struct{})
	var out []AssetType
	for _, list := range lists {
		for _, asset := range list {
			if _, ok := seen[asset]; ok {
				continue
			}
			seen[asset] = struct{}{}
			out = append(out, asset)
		}
	}
	sortAssets(out)
	return out
}
