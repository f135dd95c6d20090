package state

import (
	"testing"

	"github.com/tos-network/tokencore/common"
)

func TestMemoryRoundtrip(t *testing.T) {
	db := NewMemory()
	owner := common.HexToAddress("0x1000000000000000000000000000000000000001")
	slot := common.HexToHash("0x02")
	value := common.HexToHash("0x03")

	if got := db.GetState(owner, slot); got != (common.Hash{}) {
		t.Fatalf("expected zero word, got %s", got)
	}
	db.SetState(owner, slot, value)
	if got := db.GetState(owner, slot); got != value {
		t.Fatalf("roundtrip mismatch: got %s want %s", got, value)
	}
	db.SetState(owner, slot, common.Hash{})
	if got := db.GetState(owner, slot); got != (common.Hash{}) {
		t.Fatalf("expected cleared word, got %s", got)
	}
}

func TestMemoryCopyIsolated(t *testing.T) {
	db := NewMemory()
	owner := common.HexToAddress("0x1000000000000000000000000000000000000001")
	slot := common.HexToHash("0x02")
	db.SetState(owner, slot, common.HexToHash("0x03"))

	cp := db.Copy()
	cp.SetState(owner, slot, common.HexToHash("0x04"))
	if got := db.GetState(owner, slot); got != common.HexToHash("0x03") {
		t.Fatalf("copy mutated original: %s", got)
	}
}

func TestLevelDBRoundtrip(t *testing.T) {
	db, err := OpenLevelDB(t.TempDir())
	if err != nil {
		t.Fatalf("OpenLevelDB: %v", err)
	}
	defer db.Close()

	owner := common.HexToAddress("0x1000000000000000000000000000000000000001")
	slot := common.HexToHash("0x02")
	value := common.HexToHash("0x03")

	db.SetState(owner, slot, value)
	if got := db.GetState(owner, slot); got != value {
		t.Fatalf("roundtrip mismatch: got %s want %s", got, value)
	}
	db.SetState(owner, slot, common.Hash{})
	if got := db.GetState(owner, slot); got != (common.Hash{}) {
		t.Fatalf("expected cleared word, got %s", got)
	}
}
