package inventory

import (
	"sort"
	"testing"

	"partstock-backend/internal/models"
	"partstock-backend/internal/partkey"

	"gorm.io/gorm"
)

func loadSnapshot(t *testing.T, db *gorm.DB) []models.InventoryItem {
	t.Helper()
	var items []models.InventoryItem
	if err := db.Order("drawing_number, specification").Find(&items).Error; err != nil {
		t.Fatalf("loading snapshot: %v", err)
	}
	return items
}

func TestRebuildComputesNetStock(t *testing.T) {
	db := newTestDB(t)

	seedInbound(t, db, "A", "spec1", "", "", 10, "2024-01-01")
	seedOutbound(t, db, "A", "spec1", "", "", 4, "2024-01-02")

	if err := Rebuild(db); err != nil {
		t.Fatalf("Rebuild() error: %v", err)
	}

	items := loadSnapshot(t, db)
	if len(items) != 1 {
		t.Fatalf("snapshot has %d items, want 1", len(items))
	}
	if items[0].DrawingNumber != "A" || items[0].Specification != "spec1" {
		t.Errorf("unexpected position %s/%s", items[0].DrawingNumber, items[0].Specification)
	}
	if items[0].Stock != 6 {
		t.Errorf("stock = %d, want 6", items[0].Stock)
	}
}

func TestRebuildMergesNullAndEmptyOptionals(t *testing.T) {
	db := newTestDB(t)

	// Same part key once with empty-string optionals and once with NULLs;
	// both must land in one position.
	seedInbound(t, db, "B", "washer", "", "", 3, "2024-01-01")
	seedInboundNullOptionals(t, db, "row-null", "B", "washer", 2, "2024-01-02")

	if err := Rebuild(db); err != nil {
		t.Fatalf("Rebuild() error: %v", err)
	}

	items := loadSnapshot(t, db)
	if len(items) != 1 {
		t.Fatalf("snapshot has %d items, want 1 merged position", len(items))
	}
	if items[0].Stock != 5 {
		t.Errorf("stock = %d, want 5", items[0].Stock)
	}
}

func TestRebuildSplitsDistinctOptionals(t *testing.T) {
	db := newTestDB(t)

	seedInbound(t, db, "C", "shaft", "anodized", "", 4, "2024-01-01")
	seedInbound(t, db, "C", "shaft", "raw", "", 6, "2024-01-01")

	if err := Rebuild(db); err != nil {
		t.Fatalf("Rebuild() error: %v", err)
	}

	items := loadSnapshot(t, db)
	if len(items) != 2 {
		t.Fatalf("snapshot has %d items, want 2 distinct positions", len(items))
	}
}

func TestRebuildPrunesNonPositiveStock(t *testing.T) {
	db := newTestDB(t)

	seedInbound(t, db, "D", "pin", "", "", 5, "2024-01-01")
	seedOutbound(t, db, "D", "pin", "", "", 5, "2024-01-02")
	seedOutbound(t, db, "E", "clip", "", "", 2, "2024-01-03") // net negative

	if err := Rebuild(db); err != nil {
		t.Fatalf("Rebuild() error: %v", err)
	}

	if items := loadSnapshot(t, db); len(items) != 0 {
		t.Fatalf("snapshot has %d items, want 0 after pruning", len(items))
	}
}

func TestRebuildReplacesPriorSnapshot(t *testing.T) {
	db := newTestDB(t)

	seedInbound(t, db, "F", "gear", "", "", 8, "2024-01-01")
	if err := Rebuild(db); err != nil {
		t.Fatalf("Rebuild() error: %v", err)
	}

	seedOutbound(t, db, "F", "gear", "", "", 8, "2024-01-02")
	if err := Rebuild(db); err != nil {
		t.Fatalf("Rebuild() error: %v", err)
	}

	if items := loadSnapshot(t, db); len(items) != 0 {
		t.Fatalf("stale position survived the rebuild: %+v", items)
	}
}

func TestRebuildFailureKeepsPriorSnapshot(t *testing.T) {
	db := newTestDB(t)

	seedInbound(t, db, "A", "spec1", "", "", 5, "2024-01-01")
	if err := Rebuild(db); err != nil {
		t.Fatalf("Rebuild() error: %v", err)
	}
	before := loadSnapshot(t, db)
	if len(before) != 1 {
		t.Fatalf("snapshot has %d items, want 1", len(before))
	}

	// New ledger state the failing pass must not half-apply.
	seedInbound(t, db, "B", "spec2", "", "", 3, "2024-01-02")

	// Fail the insert step after the clear step has already run; the whole
	// transaction must roll back, not leave the snapshot half-cleared.
	if err := db.Exec(
		"CREATE TRIGGER inventory_insert_blocked BEFORE INSERT ON inventory BEGIN SELECT RAISE(ABORT, 'inventory insert blocked'); END",
	).Error; err != nil {
		t.Fatalf("creating blocking trigger: %v", err)
	}

	if err := Rebuild(db); err == nil {
		t.Fatal("Rebuild() returned nil, want error from blocked insert")
	}

	if err := db.Exec("DROP TRIGGER inventory_insert_blocked").Error; err != nil {
		t.Fatalf("dropping blocking trigger: %v", err)
	}

	after := loadSnapshot(t, db)
	if len(after) != 1 {
		t.Fatalf("snapshot has %d items after failed rebuild, want the prior 1", len(after))
	}
	if after[0].ID != before[0].ID || after[0].Stock != before[0].Stock {
		t.Errorf("prior snapshot row changed after failed rebuild: before %+v, after %+v", before[0], after[0])
	}
}

func TestRebuildIdempotent(t *testing.T) {
	db := newTestDB(t)

	seedInbound(t, db, "G", "bracket", "zinc", "ACME", 7, "2024-01-01")
	seedInbound(t, db, "H", "plate", "", "", 3, "2024-01-01")
	seedOutbound(t, db, "H", "plate", "", "", 1, "2024-01-02")

	if err := Rebuild(db); err != nil {
		t.Fatalf("first Rebuild() error: %v", err)
	}
	first := loadSnapshot(t, db)

	if err := Rebuild(db); err != nil {
		t.Fatalf("second Rebuild() error: %v", err)
	}
	second := loadSnapshot(t, db)

	// Positions and stocks must be identical; ids are regenerated each pass.
	type position struct {
		key   partkey.Key
		stock int
	}
	extract := func(items []models.InventoryItem) []position {
		out := make([]position, 0, len(items))
		for _, it := range items {
			out = append(out, position{key: itemKey(it), stock: it.Stock})
		}
		sort.Slice(out, func(i, j int) bool {
			return out[i].key.DrawingNumber < out[j].key.DrawingNumber
		})
		return out
	}

	a, b := extract(first), extract(second)
	if len(a) != len(b) {
		t.Fatalf("snapshot size changed across rebuilds: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("position %d changed across rebuilds: %+v vs %+v", i, a[i], b[i])
		}
	}
}
