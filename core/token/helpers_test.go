package token

import (
	"testing"

	"github.com/holiman/uint256"

	"github.com/tos-network/tokencore/common"
	"github.com/tos-network/tokencore/crypto"
	"github.com/tos-network/tokencore/state"
)

func newTestState(t *testing.T) *state.MemoryStateDB {
	t.Helper()
	return state.NewMemory()
}

// newAddr derives a deterministic non-internal address from a label.
func newAddr(label string) common.Address {
	digest := crypto.Keccak256([]byte("test.addr."), []byte(label))
	addr := common.BytesToAddress(digest[12:])
	if addr[0] == 0 {
		addr[0] = 0xfe
	}
	return addr
}

func amt(n uint64) *uint256.Int { return uint256.NewInt(n) }

func fund(db state.StateDB, token, account common.Address, n uint64) {
	setBalance(db, token, account, amt(n))
}

func leg(account, token common.Address, n uint64) TransferLeg {
	return TransferLeg{Account: account, Token: token, Amount: amt(n)}
}
