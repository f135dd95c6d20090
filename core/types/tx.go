// Package types holds the transaction body consumed by the transfer core: an
// ordered list of sections, with shielded payloads resolved by content id so
// that transfer descriptors stay small.
package types

import (
	"github.com/tos-network/tokencore/common"
	"github.com/tos-network/tokencore/core/masp"
)

// DataSection carries opaque transaction data, salted so identical payloads in
// one body remain distinct sections.
type DataSection struct {
	Salt [8]byte
	Data []byte
}

// Section is one entry of a transaction body. Exactly one variant is set.
type Section struct {
	Data   *DataSection
	MaspTx *masp.Transaction
}

// Tx is the transaction body. The transfer core only reads it; construction
// and authentication happen upstream.
type Tx struct {
	ChainID  string
	Sections []Section
}

// AddMaspSection appends payload as a section and returns its content id,
// which a Transfer descriptor can carry as its shielded section reference.
func (tx *Tx) AddMaspSection(payload *masp.Transaction) common.Hash {
	tx.Sections = append(tx.Sections, Section{MaspTx: payload})
	return payload.ID()
}

// MaspSection resolves a shielded payload by content id. Returns nil if no
// masp section of the body matches.
func (tx *Tx) MaspSection(id common.Hash) *masp.Transaction {
	for i := range tx.Sections {
		payload := tx.Sections[i].MaspTx
		if payload != nil && payload.ID() == id {
			return payload
		}
	}
	return nil
}
