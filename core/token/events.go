package token

import (
	"github.com/holiman/uint256"

	"github.com/tos-network/tokencore/common"
)

// EventLevel scopes an emitted event to a transaction or a whole block.
type EventLevel string

const (
	EventLevelTx    EventLevel = "tx"
	EventLevelBlock EventLevel = "block"
)

// BalanceEntry is one (account, token) → amount row of an event. Entry lists
// are always sorted by account then token, so the emitted event bytes are
// identical on every node.
type BalanceEntry struct {
	Account common.Address
	Token   common.Address
	Amount  *uint256.Int
}

// TokenOperation is the payload of a TokenEvent: either a single transfer or
// a multi-party transfer.
type TokenOperation interface {
	isTokenOperation()
}

// SingleTransferOp describes a one-source, one-target transfer with the
// post-transfer balances of both parties.
type SingleTransferOp struct {
	Source            common.Address
	Target            common.Address
	Token             common.Address
	Amount            *uint256.Int
	SourcePostBalance *uint256.Int
	TargetPostBalance *uint256.Int
}

func (*SingleTransferOp) isTokenOperation() {}

// MultiTransferOp describes an N-source, M-target transfer: the debited and
// credited amounts plus the post-transfer balance of every touched pair.
type MultiTransferOp struct {
	Sources      []BalanceEntry
	Targets      []BalanceEntry
	PostBalances []BalanceEntry
}

func (*MultiTransferOp) isTokenOperation() {}

// TokenEvent is the structured record emitted for every applied transfer,
// consumed by indexers and end users.
type TokenEvent struct {
	Descriptor string
	Level      EventLevel
	Operation  TokenOperation
}
