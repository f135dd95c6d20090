package token

import (
	"github.com/tos-network/tokencore/common"
)

// Env provides the transaction-scoped services the transfer core writes to:
// the verifier registry, the event emitter, the action write-log and the
// commitment tree sentinel. Everything accumulated here is discarded or
// persisted wholesale by the enclosing execution environment when the
// transaction settles.
type Env interface {
	// InsertVerifier registers an address whose validity predicate must
	// approve the transaction. Idempotent.
	InsertVerifier(addr common.Address) error

	// Emit appends a token event.
	Emit(event *TokenEvent)

	// PushAction appends an entry to the transaction's action write-log.
	PushAction(action Action) error

	// SetCommitmentSentinel poisons the commitment tree for this transaction.
	// Irreversible for the transaction's duration.
	SetCommitmentSentinel()
}

// TxEnv is the canonical Env used during block execution. Not safe for
// concurrent use; one instance serves exactly one transaction.
type TxEnv struct {
	verifiers map[common.Address]struct{}
	events    []*TokenEvent
	actions   []Action
	sentinel  bool
}

// NewTxEnv returns an empty transaction environment.
func NewTxEnv() *TxEnv {
	return &TxEnv{verifiers: make(map[common.Address]struct{})}
}

func (e *TxEnv) InsertVerifier(addr common.Address) error {
	e.verifiers[addr] = struct{}{}
	return nil
}

func (e *TxEnv) Emit(event *TokenEvent) {
	e.events = append(e.events, event)
}

func (e *TxEnv) PushAction(action Action) error {
	e.actions = append(e.actions, action)
	return nil
}

func (e *TxEnv) SetCommitmentSentinel() {
	e.sentinel = true
}

// Verifiers returns the registered verifier addresses in canonical order.
func (e *TxEnv) Verifiers() []common.Address {
	out := make([]common.Address, 0, len(e.verifiers))
	for addr := range e.verifiers {
		out = append(out, addr)
	}
	common.SortAddresses(out)
	return out
}

// HasVerifier reports whether addr has been registered.
func (e *TxEnv) HasVerifier(addr common.Address) bool {
	_, ok := e.verifiers[addr]
	return ok
}

// Events returns the emitted events in emission order.
func (e *TxEnv) Events() []*TokenEvent { return e.events }

// Actions returns the action write-log in push order.
func (e *TxEnv) Actions() []Action { return e.actions }

// CommitmentSentinel reports whether the commitment tree was poisoned. The
// execution environment must not trust the tree for this transaction once
// set.
func (e *TxEnv) CommitmentSentinel() bool { return e.sentinel }
