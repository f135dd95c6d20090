package masp

import (
	"github.com/tos-network/tokencore/common"
	"github.com/tos-network/tokencore/crypto"
)

var (
	taddrDomain = []byte("tokencore.masp.taddr")
	assetDomain = []byte("tokencore.masp.asset")
)

// TransparentAddress derives the pool-side transparent address (taddr) of a
// ledger account. Transparent bundles identify authorizing accounts in taddr
// space, never by their ledger address directly.
func TransparentAddress(account common.Address) common.Address {
	digest := crypto.Keccak256(taddrDomain, account.Bytes())
	return common.BytesToAddress(digest[12:])
}

// AssetOf derives the shielded asset identifier of a transparent token.
func AssetOf(token common.Address) AssetType {
	var asset AssetType
	copy(asset[:], crypto.Keccak256(assetDomain, token.Bytes()))
	return asset
}
