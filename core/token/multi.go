package token

import (
	"fmt"

	mapset "github.com/deckarep/golang-set"

	"github.com/tos-network/tokencore/core/types"
	"github.com/tos-network/tokencore/state"
)

// ApplyMultiTransfer applies a full Transfer descriptor: the transparent
// multi-leg part first, if present, then the shielded leg, threading the
// transparent leg's debited-accounts set into the shielded reconciliation.
//
// The ledger mutation of the transparent part is atomic on its own, but a
// subsequent shielded failure is not rolled back here; discarding all writes
// of a failed transaction is the enclosing execution environment's job.
func ApplyMultiTransfer(db state.StateDB, env Env, transfers *Transfer, tx *types.Tx) error {
	debitedAccounts := mapset.NewThreadUnsafeSet()

	transparent, err := transfers.TransparentPart()
	if err != nil {
		return fmt.Errorf("transparent token transfer failed: %w", err)
	}
	if transparent != nil {
		debitedAccounts, err = ApplyTransparentTransfers(db, env, transparent)
		if err != nil {
			return fmt.Errorf("transparent token transfer failed: %w", err)
		}
	}

	if transfers.ShieldedSectionRef != nil {
		if err := ApplyShieldedTransfer(db, env, *transfers.ShieldedSectionRef, debitedAccounts, tx); err != nil {
			return fmt.Errorf("shielded token transfer failed: %w", err)
		}
	}
	return nil
}
