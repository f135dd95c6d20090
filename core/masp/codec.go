package masp

import (
	"encoding/binary"

	"github.com/tos-network/tokencore/common"
	"github.com/tos-network/tokencore/crypto"
)

// Canonical byte encoding of a shielded transaction. The encoding exists so
// that every node derives the same content id for a payload; it is not a wire
// format. Every variable-length element is length-prefixed and every list is
// count-prefixed, so distinct payloads can never share an encoding.

func appendU8(dst []byte, v byte) []byte {
	return append(dst, v)
}

func appendU32(dst []byte, v uint32) []byte {
	var word [4]byte
	binary.BigEndian.PutUint32(word[:], v)
	return append(dst, word[:]...)
}

func appendU64(dst []byte, v uint64) []byte {
	var word [8]byte
	binary.BigEndian.PutUint64(word[:], v)
	return append(dst, word[:]...)
}

func appendTransparentTxs(dst []byte, txs []TransparentTx) []byte {
	dst = appendU32(dst, uint32(len(txs)))
	for _, tx := range txs {
		dst = append(dst, tx.Asset[:]...)
		dst = appendU64(dst, tx.Value)
		dst = append(dst, tx.Address[:]...)
	}
	return dst
}

// EncodeTransaction returns the canonical byte encoding of t.
func EncodeTransaction(t *Transaction) []byte {
	out := make([]byte, 0, 256)
	if t.TransparentBundle != nil {
		out = appendU8(out, 1)
		out = appendTransparentTxs(out, t.TransparentBundle.Vin)
		out = appendTransparentTxs(out, t.TransparentBundle.Vout)
	} else {
		out = appendU8(out, 0)
	}
	if t.SaplingBundle == nil {
		return appendU8(out, 0)
	}
	out = appendU8(out, 1)
	bundle := t.SaplingBundle
	out = appendU32(out, uint32(len(bundle.Spends)))
	for _, spend := range bundle.Spends {
		out = append(out, spend.Nullifier[:]...)
		out = append(out, spend.Anchor[:]...)
	}
	out = appendU32(out, uint32(len(bundle.Outputs)))
	for _, output := range bundle.Outputs {
		out = append(out, output.Commitment[:]...)
		out = append(out, output.EphemeralKey[:]...)
		out = appendU32(out, uint32(len(output.EncCiphertext)))
		out = append(out, output.EncCiphertext...)
	}
	out = appendU32(out, uint32(len(bundle.ValueBalance)))
	for _, delta := range bundle.ValueBalance {
		out = append(out, delta.Asset[:]...)
		out = appendU64(out, uint64(delta.Value))
	}
	return out
}

// ID returns the content id of the payload: the Keccak256 hash of its
// canonical encoding. Sections of the enclosing transaction are looked up by
// this id.
func (t *Transaction) ID() common.Hash {
	return crypto.Keccak256Hash(EncodeTransaction(t))
}
