package inventory

import (
	"errors"
	"testing"

	"partstock-backend/internal/partkey"
)

func TestCurrentStock(t *testing.T) {
	db := newTestDB(t)

	seedInbound(t, db, "A", "spec1", "", "", 10, "2024-01-01")
	seedInbound(t, db, "A", "spec1", "", "", 5, "2024-01-03")
	seedOutbound(t, db, "A", "spec1", "", "", 4, "2024-01-02")
	// Different finishing, must not count toward the key below.
	seedInbound(t, db, "A", "spec1", "zinc", "", 100, "2024-01-01")

	key := partkey.Key{DrawingNumber: "A", Specification: "spec1"}
	stock, err := CurrentStock(db, key)
	if err != nil {
		t.Fatalf("CurrentStock() error: %v", err)
	}
	if stock != 11 {
		t.Errorf("CurrentStock() = %d, want 11", stock)
	}
}

func TestCurrentStockCountsNullOptionalRows(t *testing.T) {
	db := newTestDB(t)

	seedInboundNullOptionals(t, db, "row-null", "B", "washer", 4, "2024-01-01")
	seedInbound(t, db, "B", "washer", "", "", 3, "2024-01-02")

	stock, err := CurrentStock(db, partkey.Key{DrawingNumber: "B", Specification: "washer"})
	if err != nil {
		t.Fatalf("CurrentStock() error: %v", err)
	}
	if stock != 7 {
		t.Errorf("CurrentStock() = %d, want 7 (NULL and '' rows merged)", stock)
	}
}

func TestCurrentStockUnknownKey(t *testing.T) {
	db := newTestDB(t)

	stock, err := CurrentStock(db, partkey.Key{DrawingNumber: "nope", Specification: "nothing"})
	if err != nil {
		t.Fatalf("CurrentStock() error: %v", err)
	}
	if stock != 0 {
		t.Errorf("CurrentStock() = %d, want 0", stock)
	}
}

func TestCheckSufficiency(t *testing.T) {
	db := newTestDB(t)

	seedInbound(t, db, "A", "spec1", "", "", 3, "2024-01-01")
	key := partkey.Key{DrawingNumber: "A", Specification: "spec1"}

	if err := CheckSufficiency(db, key, 3); err != nil {
		t.Errorf("CheckSufficiency(3) error: %v, want nil", err)
	}

	err := CheckSufficiency(db, key, 5)
	if err == nil {
		t.Fatal("CheckSufficiency(5) returned nil, want InsufficientStockError")
	}
	var insufficient *InsufficientStockError
	if !errors.As(err, &insufficient) {
		t.Fatalf("CheckSufficiency(5) error type %T, want *InsufficientStockError", err)
	}
	if insufficient.Current != 3 || insufficient.Requested != 5 {
		t.Errorf("error detail = current %d requested %d, want 3/5", insufficient.Current, insufficient.Requested)
	}
	want := "Insufficient stock for spec1. Current: 3, Requested: 5"
	if insufficient.Error() != want {
		t.Errorf("error message = %q, want %q", insufficient.Error(), want)
	}
}
