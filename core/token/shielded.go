package token

import (
	"fmt"

	mapset "github.com/deckarep/golang-set"

	"github.com/tos-network/tokencore/common"
	"github.com/tos-network/tokencore/core/masp"
	"github.com/tos-network/tokencore/core/types"
	"github.com/tos-network/tokencore/state"
)

// ApplyShieldedTransfer resolves the shielded payload referenced by
// sectionRef inside tx, applies it to pool state, updates the note commitment
// tree, and reconciles the payload's authorizing transparent addresses
// against the accounts already debited by the transparent leg.
//
// The reconciliation is the security-critical step: every vin address of the
// payload must be the taddr of an account that was actually debited in this
// same transaction, otherwise shielded funds could move without the matching
// transparent debit.
func ApplyShieldedTransfer(db state.StateDB, env Env, sectionRef common.Hash, debitedAccounts mapset.Set, tx *types.Tx) error {
	shielded := tx.MaspSection(sectionRef)
	if shielded == nil {
		// Unresolvable reference means a malformed or tampered transaction,
		// not an economic rejection. The tree can no longer be trusted for
		// this transaction.
		env.SetCommitmentSentinel()
		return fmt.Errorf("%w: %s", ErrMissingShieldedSection, sectionRef)
	}
	if err := masp.HandleTx(db, shielded); err != nil {
		return fmt.Errorf("encountered error while handling masp transaction: %w", err)
	}
	if err := masp.UpdateCommitmentTree(db, shielded); err != nil {
		return fmt.Errorf("failed to update the masp commitment tree: %w", err)
	}

	if err := env.PushAction(MaspSectionRefAction(sectionRef)); err != nil {
		return err
	}

	// Extract the accounts backing the masp part of the transfer and push the
	// corresponding authorizer actions.
	vinAddresses := shielded.VinAddresses()
	vinSet := make(map[common.Address]struct{}, len(vinAddresses))
	for _, taddr := range vinAddresses {
		vinSet[taddr] = struct{}{}
	}
	var authorizers []common.Address
	for _, account := range sortedAccounts(debitedAccounts) {
		if _, ok := vinSet[masp.TransparentAddress(account)]; ok {
			authorizers = append(authorizers, account)
		}
	}
	if len(authorizers) != len(vinAddresses) {
		return ErrAuthorizationMismatch
	}

	for _, authorizer := range authorizers {
		if err := env.PushAction(MaspAuthorizerAction(authorizer)); err != nil {
			return err
		}
	}
	return nil
}

// sortedAccounts flattens an address set into canonical order.
func sortedAccounts(set mapset.Set) []common.Address {
	if set == nil {
		return nil
	}
	out := make([]common.Address, 0, set.Cardinality())
	for _, elem := range set.ToSlice() {
		out = append(out, elem.(common.Address))
	}
	common.SortAddresses(out)
	return out
}
