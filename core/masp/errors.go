package masp

import "errors"

var (
	// ErrEmptyTransaction indicates a payload with neither a transparent nor a
	// sapling bundle.
	ErrEmptyTransaction = errors.New("masp: transaction has no bundles")

	// ErrDoubleSpend indicates a spend whose nullifier was already recorded.
	ErrDoubleSpend = errors.New("masp: nullifier already spent")

	// ErrPoolInsufficient indicates a vout that exceeds the pool's balance for
	// its asset.
	ErrPoolInsufficient = errors.New("masp: insufficient pool balance")

	// ErrValueImbalance indicates transparent and sapling value flows that do
	// not cancel out per asset.
	ErrValueImbalance = errors.New("masp: value balance mismatch")

	// ErrValueOverflow indicates bundle value sums exceeding the amount width.
	ErrValueOverflow = errors.New("masp: value overflow")

	// ErrMissingCommitment indicates an output description with a zero note
	// commitment.
	ErrMissingCommitment = errors.New("masp: output missing note commitment")
)
