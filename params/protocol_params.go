// Copyright 2025 The tokencore Authors
// This file is part of the tokencore library.
//
// The tokencore library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The tokencore library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the tokencore library. If not, see <http://www.gnu.org/licenses/>.

package params

import (
	"bytes"

	"github.com/tos-network/tokencore/common"
)

// Protocol system addresses — fixed, well-known addresses reserved for
// protocol-owned state. They share a 16-byte zero prefix followed by an ASCII
// tag, mirroring the ledger's convention for internal addresses.
var (
	// MultitokenAddress owns every transparent (token, account) balance slot.
	// Internal tokens have no validity predicate of their own; transfers that
	// touch them are validated by the multitoken authority at this address.
	MultitokenAddress = common.HexToAddress("0x00000000000000000000000000000000544B4E31") // "TKN1"

	// MaspAddress owns the shielded pool state: per-asset transparent pool
	// balances, spent-nullifier records and the note commitment tree.
	MaspAddress = common.HexToAddress("0x00000000000000000000000000000000544B4E32") // "TKN2"
)

// internalPrefix is the reserved address prefix of protocol-owned accounts.
// Any token whose address carries it is an internal token.
var internalPrefix = make([]byte, 16)

// IsInternal reports whether addr is a protocol-owned (internal) address.
// Internal tokens do not carry their own validity predicate and must route
// validation through the multitoken authority.
func IsInternal(addr common.Address) bool {
	return bytes.Equal(addr[:16], internalPrefix) && addr != (common.Address{})
}
