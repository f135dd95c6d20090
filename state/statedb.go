// Package state provides the word-addressed storage substrate that the token
// and masp subsystems read and write through.
//
// Protocol state is laid out as 32-byte words keyed by (owner address, slot
// hash). Subsystems derive their slots with Keccak256 over namespaced keys and
// never touch raw backend keys directly.
package state

import (
	"github.com/tos-network/tokencore/common"
)

// StateDB gives subsystems word-addressed access to per-account storage.
// Implementations are not safe for concurrent use; the execution environment
// serializes all access for the duration of one transaction.
type StateDB interface {
	GetState(owner common.Address, slot common.Hash) common.Hash
	SetState(owner common.Address, slot common.Hash, value common.Hash)
}
