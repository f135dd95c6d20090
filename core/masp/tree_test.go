package masp

import (
	"testing"

	"github.com/tos-network/tokencore/common"
	"github.com/tos-network/tokencore/crypto"
)

func outputTx(commitments ...common.Hash) *Transaction {
	outputs := make([]OutputDescription, len(commitments))
	for i, cm := range commitments {
		outputs[i] = OutputDescription{Commitment: cm}
	}
	return &Transaction{SaplingBundle: &SaplingBundle{Outputs: outputs}}
}

func TestUpdateCommitmentTreeAppends(t *testing.T) {
	db := newTestState(t)
	cm1 := crypto.Keccak256Hash([]byte("note-1"))
	cm2 := crypto.Keccak256Hash([]byte("note-2"))

	if err := UpdateCommitmentTree(db, outputTx(cm1, cm2)); err != nil {
		t.Fatalf("UpdateCommitmentTree: %v", err)
	}
	ts := ReadTree(db)
	if ts.Size != 2 {
		t.Fatalf("unexpected tree size: %d", ts.Size)
	}
	want := crypto.Keccak256Hash(crypto.Keccak256Hash(common.Hash{}.Bytes(), cm1.Bytes()).Bytes(), cm2.Bytes())
	if ts.Root != want {
		t.Fatalf("root mismatch: got %s want %s", ts.Root, want)
	}
}

func TestUpdateCommitmentTreeOrderMatters(t *testing.T) {
	cm1 := crypto.Keccak256Hash([]byte("note-1"))
	cm2 := crypto.Keccak256Hash([]byte("note-2"))

	a := newTestState(t)
	b := newTestState(t)
	if err := UpdateCommitmentTree(a, outputTx(cm1, cm2)); err != nil {
		t.Fatalf("UpdateCommitmentTree: %v", err)
	}
	if err := UpdateCommitmentTree(b, outputTx(cm2, cm1)); err != nil {
		t.Fatalf("UpdateCommitmentTree: %v", err)
	}
	if ReadTree(a).Root == ReadTree(b).Root {
		t.Fatal("accumulator must be order sensitive")
	}
}

func TestUpdateCommitmentTreeRejectsZeroCommitment(t *testing.T) {
	db := newTestState(t)
	if err := UpdateCommitmentTree(db, outputTx(crypto.Keccak256Hash([]byte("ok")), common.Hash{})); err != ErrMissingCommitment {
		t.Fatalf("expected ErrMissingCommitment, got %v", err)
	}
	if ts := ReadTree(db); ts.Size != 0 {
		t.Fatalf("failed update must not write, size=%d", ts.Size)
	}
}

func TestUpdateCommitmentTreeNoOutputs(t *testing.T) {
	db := newTestState(t)
	if err := UpdateCommitmentTree(db, &Transaction{}); err != nil {
		t.Fatalf("UpdateCommitmentTree: %v", err)
	}
	if ts := ReadTree(db); ts.Size != 0 || ts.Root != (common.Hash{}) {
		t.Fatalf("unexpected tree state: %+v", ts)
	}
}
