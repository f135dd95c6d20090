package token

import (
	"errors"
	"testing"

	"github.com/tos-network/tokencore/common"
	"github.com/tos-network/tokencore/core/masp"
	"github.com/tos-network/tokencore/core/types"
	"github.com/tos-network/tokencore/crypto"
)

// shieldingPayload builds a shielded payload whose transparent inputs are the
// taddrs of accounts, each contributing value, and one note output absorbing
// the total.
func shieldingPayload(token common.Address, contributions map[common.Address]uint64) *masp.Transaction {
	asset := masp.AssetOf(token)
	var vin []masp.TransparentTx
	var total int64
	accounts := make([]common.Address, 0, len(contributions))
	for account := range contributions {
		accounts = append(accounts, account)
	}
	common.SortAddresses(accounts)
	for _, account := range accounts {
		value := contributions[account]
		vin = append(vin, masp.TransparentTx{
			Asset:   asset,
			Value:   value,
			Address: masp.TransparentAddress(account),
		})
		total += int64(value)
	}
	return &masp.Transaction{
		TransparentBundle: &masp.TransparentBundle{Vin: vin},
		SaplingBundle: &masp.SaplingBundle{
			Outputs:      []masp.OutputDescription{{Commitment: crypto.Keccak256Hash([]byte("note"))}},
			ValueBalance: []masp.ValueDelta{{Asset: asset, Value: -total}},
		},
	}
}

// applyShieldedSetup debits accounts transparently into the pool, then runs
// the shielded leg with the given payload.
func applyShieldedSetup(t *testing.T, payload *masp.Transaction, contributions map[common.Address]uint64, token common.Address) (*TxEnv, error) {
	t.Helper()
	db := newTestState(t)
	env := NewTxEnv()

	var sources []TransferLeg
	var total uint64
	for account, value := range contributions {
		fund(db, token, account, value)
		sources = append(sources, leg(account, token, value))
		total += value
	}
	transfer := &Transfer{
		Sources: sources,
		Targets: []TransferLeg{leg(newAddr("pool-target"), token, total)},
	}
	transparent, err := transfer.TransparentPart()
	if err != nil {
		t.Fatalf("TransparentPart: %v", err)
	}
	debited, err := ApplyTransparentTransfers(db, env, transparent)
	if err != nil {
		t.Fatalf("ApplyTransparentTransfers: %v", err)
	}

	tx := &types.Tx{}
	ref := tx.AddMaspSection(payload)
	return env, ApplyShieldedTransfer(db, env, ref, debited, tx)
}

func TestApplyShieldedTransferRecordsAuthorizers(t *testing.T) {
	tkn := newAddr("tkn")
	alice, bob := newAddr("alice"), newAddr("bob")
	contributions := map[common.Address]uint64{alice: 20, bob: 10}

	env, err := applyShieldedSetup(t, shieldingPayload(tkn, contributions), contributions, tkn)
	if err != nil {
		t.Fatalf("ApplyShieldedTransfer: %v", err)
	}

	actions := env.Actions()
	if len(actions) != 3 {
		t.Fatalf("expected 3 actions, got %d", len(actions))
	}
	if actions[0].Kind != ActionMaspSectionRef {
		t.Fatalf("first action must reference the section, got %s", actions[0].Kind)
	}
	got := map[common.Address]bool{}
	for _, action := range actions[1:] {
		if action.Kind != ActionMaspAuthorizer {
			t.Fatalf("unexpected action kind %s", action.Kind)
		}
		got[action.Authorizer] = true
	}
	if !got[alice] || !got[bob] {
		t.Fatalf("missing authorizer actions: %v", got)
	}
}

func TestApplyShieldedTransferAuthorizationMismatch(t *testing.T) {
	tkn := newAddr("tkn")
	alice, bob, mallory := newAddr("alice"), newAddr("bob"), newAddr("mallory")
	contributions := map[common.Address]uint64{alice: 20, bob: 10}

	// The payload claims Mallory as an extra authorizing input, but the
	// transparent leg never debits her.
	payload := shieldingPayload(tkn, map[common.Address]uint64{alice: 20, bob: 10, mallory: 0})
	env, err := applyShieldedSetup(t, payload, contributions, tkn)
	if !errors.Is(err, ErrAuthorizationMismatch) {
		t.Fatalf("expected authorization mismatch, got %v", err)
	}
	for _, action := range env.Actions() {
		if action.Kind == ActionMaspAuthorizer {
			t.Fatal("no authorizer action may be recorded on mismatch")
		}
	}
	if env.CommitmentSentinel() {
		t.Fatal("authorization mismatch must not poison the sentinel")
	}
}

func TestApplyShieldedTransferForeignVin(t *testing.T) {
	tkn := newAddr("tkn")
	alice := newAddr("alice")
	contributions := map[common.Address]uint64{alice: 20}

	// A single vin address that belongs to nobody in the debited set.
	payload := shieldingPayload(tkn, map[common.Address]uint64{newAddr("stranger"): 20})
	_, err := applyShieldedSetup(t, payload, contributions, tkn)
	if !errors.Is(err, ErrAuthorizationMismatch) {
		t.Fatalf("expected authorization mismatch, got %v", err)
	}
}

func TestApplyShieldedTransferMissingSection(t *testing.T) {
	db := newTestState(t)
	env := NewTxEnv()
	tx := &types.Tx{}
	ref := crypto.Keccak256Hash([]byte("no such section"))

	err := ApplyShieldedTransfer(db, env, ref, nil, tx)
	if !errors.Is(err, ErrMissingShieldedSection) {
		t.Fatalf("expected missing section error, got %v", err)
	}
	if !env.CommitmentSentinel() {
		t.Fatal("missing section must poison the commitment tree sentinel")
	}
	if len(env.Actions()) != 0 {
		t.Fatal("no action may be recorded for an unresolved section")
	}
}

func TestApplyShieldedTransferUpdatesPoolState(t *testing.T) {
	db := newTestState(t)
	env := NewTxEnv()
	tkn := newAddr("tkn")
	alice := newAddr("alice")
	fund(db, tkn, alice, 30)

	payload := shieldingPayload(tkn, map[common.Address]uint64{alice: 30})
	transfer := &Transfer{
		Sources: []TransferLeg{leg(alice, tkn, 30)},
		Targets: []TransferLeg{leg(newAddr("pool-target"), tkn, 30)},
	}
	transparent, err := transfer.TransparentPart()
	if err != nil {
		t.Fatalf("TransparentPart: %v", err)
	}
	debited, err := ApplyTransparentTransfers(db, env, transparent)
	if err != nil {
		t.Fatalf("ApplyTransparentTransfers: %v", err)
	}
	tx := &types.Tx{}
	ref := tx.AddMaspSection(payload)
	if err := ApplyShieldedTransfer(db, env, ref, debited, tx); err != nil {
		t.Fatalf("ApplyShieldedTransfer: %v", err)
	}

	if got := masp.PoolBalance(db, masp.AssetOf(tkn)); got != 30 {
		t.Fatalf("pool balance: got %d want 30", got)
	}
	if ts := masp.ReadTree(db); ts.Size != 1 {
		t.Fatalf("commitment tree size: got %d want 1", ts.Size)
	}
}
