package token

import (
	"fmt"

	mapset "github.com/deckarep/golang-set"
	"github.com/holiman/uint256"

	"github.com/tos-network/tokencore/common"
	"github.com/tos-network/tokencore/crypto"
	"github.com/tos-network/tokencore/params"
	"github.com/tos-network/tokencore/state"
)

// Transparent balances are 32-byte big-endian words in storage slots owned by
// params.MultitokenAddress, one slot per (token, account) pair.

func balanceSlot(token, account common.Address) common.Hash {
	key := append(token.Bytes(), account.Bytes()...)
	key = append(key, []byte("balance")...)
	return crypto.Keccak256Hash(key)
}

// ReadBalance returns account's balance of token.
func ReadBalance(db state.StateDB, token, account common.Address) *uint256.Int {
	word := db.GetState(params.MultitokenAddress, balanceSlot(token, account))
	return new(uint256.Int).SetBytes(word.Bytes())
}

func setBalance(db state.StateDB, token, account common.Address, balance *uint256.Int) {
	db.SetState(params.MultitokenAddress, balanceSlot(token, account), common.Hash(balance.Bytes32()))
}

// Credit mints amount of token to account, used for genesis allocations and
// protocol-level issuance. Fails if the resulting balance would overflow.
func Credit(db state.StateDB, token, account common.Address, amount *uint256.Int) error {
	balance := ReadBalance(db, token, account)
	if _, overflow := balance.AddOverflow(balance, amount); overflow {
		return fmt.Errorf("%w: crediting %d of token %s to %s", ErrAmountOverflow, amount.ToBig(), token, account)
	}
	setBalance(db, token, account, balance)
	return nil
}

// MultiTransfer atomically applies the canonical debits and credits of
// transfers: every source leg is deducted and every target leg added, or, if
// any source has insufficient balance or any credit would overflow, nothing is
// written at all.
//
// Returns the set of accounts that had at least one balance actually reduced.
func MultiTransfer(db state.StateDB, transfers *TransparentTransfersRef) (mapset.Set, error) {
	initial := make(map[AccountToken]*uint256.Int, len(transfers.Sources)+len(transfers.Targets))
	staged := make(map[AccountToken]*uint256.Int, len(transfers.Sources)+len(transfers.Targets))
	pending := func(key AccountToken) *uint256.Int {
		if balance, ok := staged[key]; ok {
			return balance
		}
		balance := ReadBalance(db, key.Token, key.Account)
		initial[key] = new(uint256.Int).Set(balance)
		staged[key] = balance
		return balance
	}

	for _, leg := range transfers.Sources {
		key := AccountToken{Account: leg.Account, Token: leg.Token}
		balance := pending(key)
		if _, underflow := balance.SubOverflow(balance, leg.Amount); underflow {
			return nil, fmt.Errorf("%w: %s has less than %d of token %s", ErrInsufficientBalance, leg.Account, leg.Amount.ToBig(), leg.Token)
		}
	}
	for _, leg := range transfers.Targets {
		key := AccountToken{Account: leg.Account, Token: leg.Token}
		balance := pending(key)
		if _, overflow := balance.AddOverflow(balance, leg.Amount); overflow {
			return nil, fmt.Errorf("%w: crediting %d of token %s to %s", ErrAmountOverflow, leg.Amount.ToBig(), leg.Token, leg.Account)
		}
	}

	// An account counts as debited only if some balance ends up strictly
	// below where it started, netting out legs that cancel.
	debited := mapset.NewThreadUnsafeSet()
	for _, key := range sortedKeys(staged) {
		if staged[key].Lt(initial[key]) {
			debited.Add(key.Account)
		}
		setBalance(db, key.Token, key.Account, staged[key])
	}
	return debited, nil
}

func sortedKeys(staged map[AccountToken]*uint256.Int) []AccountToken {
	keys := make([]AccountToken, 0, len(staged))
	for key := range staged {
		keys = append(keys, key)
	}
	sortAccountTokens(keys)
	return keys
}
