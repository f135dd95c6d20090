package types

import (
	"testing"

	"github.com/tos-network/tokencore/core/masp"
	"github.com/tos-network/tokencore/crypto"
)

func TestMaspSectionLookup(t *testing.T) {
	tx := &Tx{ChainID: "tokencore-test"}
	tx.Sections = append(tx.Sections, Section{Data: &DataSection{Data: []byte("payload")}})

	first := &masp.Transaction{
		SaplingBundle: &masp.SaplingBundle{
			Outputs: []masp.OutputDescription{{Commitment: crypto.Keccak256Hash([]byte("a"))}},
		},
	}
	second := &masp.Transaction{
		SaplingBundle: &masp.SaplingBundle{
			Outputs: []masp.OutputDescription{{Commitment: crypto.Keccak256Hash([]byte("b"))}},
		},
	}
	refFirst := tx.AddMaspSection(first)
	refSecond := tx.AddMaspSection(second)

	if got := tx.MaspSection(refFirst); got != first {
		t.Fatalf("resolved wrong section for %s", refFirst)
	}
	if got := tx.MaspSection(refSecond); got != second {
		t.Fatalf("resolved wrong section for %s", refSecond)
	}
	if got := tx.MaspSection(crypto.Keccak256Hash([]byte("missing"))); got != nil {
		t.Fatal("unknown reference must resolve to nil")
	}
}
