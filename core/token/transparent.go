package token

import (
	mapset "github.com/deckarep/golang-set"
	"github.com/holiman/uint256"

	"github.com/tos-network/tokencore/common"
	"github.com/tos-network/tokencore/params"
	"github.com/tos-network/tokencore/state"
)

// ApplyTransfer applies a transparent transfer between exactly one source and
// one destination for one token: the degenerate single-pair case provided for
// direct use outside a full Transfer descriptor.
func ApplyTransfer(db state.StateDB, env Env, src, dest, token common.Address, amount *uint256.Int) error {
	// The tx must be authorized by the source and destination addresses.
	if err := env.InsertVerifier(src); err != nil {
		return err
	}
	if err := env.InsertVerifier(dest); err != nil {
		return err
	}
	if params.IsInternal(token) {
		// Internal tokens do not have validity predicates of their own;
		// their validation is routed through the multitoken authority, but
		// the token address still has to verify the transfer.
		if err := env.InsertVerifier(token); err != nil {
			return err
		}
	}

	transfers := &TransparentTransfersRef{
		Sources: []TransferLeg{{Account: src, Token: token, Amount: amount}},
		Targets: []TransferLeg{{Account: dest, Token: token, Amount: amount}},
	}
	if _, err := MultiTransfer(db, transfers); err != nil {
		return err
	}

	env.Emit(&TokenEvent{
		Descriptor: "transfer",
		Level:      EventLevelTx,
		Operation: &SingleTransferOp{
			Source:            src,
			Target:            dest,
			Token:             token,
			Amount:            new(uint256.Int).Set(amount),
			SourcePostBalance: ReadBalance(db, token, src),
			TargetPostBalance: ReadBalance(db, token, dest),
		},
	})
	return nil
}

// ApplyTransparentTransfers transfers tokens from sources to targets and
// emits one multi-transfer event. Returns an error if any source has
// insufficient balance or if any credit would overflow (which can only happen
// if the total supply does not fit the amount width). Returns the set of
// debited accounts.
func ApplyTransparentTransfers(db state.StateDB, env Env, transfers *TransparentTransfersRef) (mapset.Set, error) {
	debited, err := MultiTransfer(db, transfers)
	if err != nil {
		return nil, err
	}

	evtSources := make([]BalanceEntry, 0, len(transfers.Sources))
	evtTargets := make([]BalanceEntry, 0, len(transfers.Targets))
	postBalances := make(map[AccountToken]*uint256.Int, len(transfers.Sources)+len(transfers.Targets))

	for _, leg := range transfers.Sources {
		// The tx must be authorized by the involved address; internal tokens
		// additionally route through the multitoken authority.
		if err := env.InsertVerifier(leg.Account); err != nil {
			return nil, err
		}
		if params.IsInternal(leg.Token) {
			if err := env.InsertVerifier(leg.Token); err != nil {
				return nil, err
			}
		}
		evtSources = append(evtSources, BalanceEntry{Account: leg.Account, Token: leg.Token, Amount: leg.Amount})
		key := AccountToken{Account: leg.Account, Token: leg.Token}
		postBalances[key] = ReadBalance(db, leg.Token, leg.Account)
	}

	for _, leg := range transfers.Targets {
		if err := env.InsertVerifier(leg.Account); err != nil {
			return nil, err
		}
		if params.IsInternal(leg.Token) {
			if err := env.InsertVerifier(leg.Token); err != nil {
				return nil, err
			}
		}
		evtTargets = append(evtTargets, BalanceEntry{Account: leg.Account, Token: leg.Token, Amount: leg.Amount})
		key := AccountToken{Account: leg.Account, Token: leg.Token}
		postBalances[key] = ReadBalance(db, leg.Token, leg.Account)
	}

	env.Emit(&TokenEvent{
		Descriptor: "multi-transfer",
		Level:      EventLevelTx,
		Operation: &MultiTransferOp{
			Sources:      evtSources,
			Targets:      evtTargets,
			PostBalances: balanceEntries(postBalances),
		},
	})
	return debited, nil
}

// balanceEntries flattens a post-balance map into a canonically ordered list.
func balanceEntries(balances map[AccountToken]*uint256.Int) []BalanceEntry {
	keys := make([]AccountToken, 0, len(balances))
	for key := range balances {
		keys = append(keys, key)
	}
	sortAccountTokens(keys)
	out := make([]BalanceEntry, 0, len(keys))
	for _, key := range keys {
		out = append(out, BalanceEntry{Account: key.Account, Token: key.Token, Amount: balances[key]})
	}
	return out
}
