// Package token implements the transfer execution core of the ledger: the
// transparent multi-party transfer applier, the shielded transfer applier with
// its cross-pool authorization reconciliation, and the orchestrator that
// sequences both inside one transaction.
package token

import (
	"fmt"
	"sort"

	"github.com/holiman/uint256"

	"github.com/tos-network/tokencore/common"
)

// AccountToken is the (account, token) pair that keys balances, event entries
// and canonical processing order.
type AccountToken struct {
	Account common.Address
	Token   common.Address
}

// Cmp orders pairs by account then token.
func (k AccountToken) Cmp(other AccountToken) int {
	if c := k.Account.Cmp(other.Account); c != 0 {
		return c
	}
	return k.Token.Cmp(other.Token)
}

// TransferLeg is one debit or credit of a transparent transfer.
type TransferLeg struct {
	Account common.Address
	Token   common.Address
	Amount  *uint256.Int
}

// Transfer is the transaction-level transfer descriptor: an optional
// transparent multi-leg payload plus an optional reference to a shielded
// section embedded in the transaction body. Either part may be absent.
type Transfer struct {
	Sources []TransferLeg
	Targets []TransferLeg

	// ShieldedSectionRef is the content id of the masp section carrying the
	// shielded leg, if any.
	ShieldedSectionRef *common.Hash
}

// TransparentTransfersRef is the canonical form of the transparent part:
// duplicate (account, token) legs summed and entries sorted by account then
// token, so independent executions process and report legs identically.
type TransparentTransfersRef struct {
	Sources []TransferLeg
	Targets []TransferLeg
}

// TransparentPart canonicalizes the descriptor's transparent legs. Returns
// nil when the descriptor has no transparent part, and ErrAmountOverflow when
// summing duplicate legs overflows.
func (t *Transfer) TransparentPart() (*TransparentTransfersRef, error) {
	if len(t.Sources) == 0 && len(t.Targets) == 0 {
		return nil, nil
	}
	sources, err := canonicalLegs(t.Sources)
	if err != nil {
		return nil, err
	}
	targets, err := canonicalLegs(t.Targets)
	if err != nil {
		return nil, err
	}
	return &TransparentTransfersRef{Sources: sources, Targets: targets}, nil
}

// canonicalLegs sums duplicate (account, token) pairs and sorts the result.
// Zero-amount legs are kept: they still register verifiers and appear in
// events.
func canonicalLegs(legs []TransferLeg) ([]TransferLeg, error) {
	sums := make(map[AccountToken]*uint256.Int, len(legs))
	for _, leg := range legs {
		key := AccountToken{Account: leg.Account, Token: leg.Token}
		amount := leg.Amount
		if amount == nil {
			amount = uint256.NewInt(0)
		}
		sum, ok := sums[key]
		if !ok {
			sums[key] = new(uint256.Int).Set(amount)
			continue
		}
		if _, overflow := sum.AddOverflow(sum, amount); overflow {
			return nil, fmt.Errorf("%w: summing legs of %s/%s", ErrAmountOverflow, key.Account, key.Token)
		}
	}
	out := make([]TransferLeg, 0, len(sums))
	for key, amount := range sums {
		out = append(out, TransferLeg{Account: key.Account, Token: key.Token, Amount: amount})
	}
	sortLegs(out)
	return out, nil
}

func sortAccountTokens(keys []AccountToken) {
	sort.Slice(keys, func(i, j int) bool { return keys[i].Cmp(keys[j]) < 0 })
}

func sortLegs(legs []TransferLeg) {
	sort.Slice(legs, func(i, j int) bool {
		ki := AccountToken{Account: legs[i].Account, Token: legs[i].Token}
		kj := AccountToken{Account: legs[j].Account, Token: legs[j].Token}
		return ki.Cmp(kj) < 0
	})
}
