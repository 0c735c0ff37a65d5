package inventory

import (
	"fmt"
	"testing"
	"time"

	"partstock-backend/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// A named shared-cache memory DB keeps all pooled connections on the same
	// database; a bare :memory: DSN would give every connection its own.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.InboundRecord{},
		&models.OutboundRecord{},
		&models.InventoryItem{},
	); err != nil {
		t.Fatalf("migrating test database: %v", err)
	}

	return db
}

func day(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func seedInbound(t *testing.T, db *gorm.DB, dno, spec, fin, supplier string, qty int, date string) {
	t.Helper()
	r := models.InboundRecord{
		DrawingNumber: dno,
		Specification: spec,
		Quantity:      qty,
		Finishing:     fin,
		Supplier:      supplier,
		Date:          day(date),
	}
	if err := db.Create(&r).Error; err != nil {
		t.Fatalf("seeding inbound record: %v", err)
	}
}

func seedOutbound(t *testing.T, db *gorm.DB, dno, spec, fin, supplier string, qty int, date string) {
	t.Helper()
	r := models.OutboundRecord{
		DrawingNumber: dno,
		Specification: spec,
		Quantity:      qty,
		Finishing:     fin,
		Supplier:      supplier,
		Date:          day(date),
	}
	if err := db.Create(&r).Error; err != nil {
		t.Fatalf("seeding outbound record: %v", err)
	}
}

// seedInboundNullOptionals inserts a ledger row with NULL optional columns,
// bypassing the models so legacy NULL data can be reproduced.
func seedInboundNullOptionals(t *testing.T, db *gorm.DB, id, dno, spec string, qty int, date string) {
	t.Helper()
	err := db.Exec(
		"INSERT INTO inbound (id, drawing_number, specification, quantity, finishing, supplier, note, date, created_at) VALUES (?, ?, ?, ?, NULL, NULL, NULL, ?, ?)",
		id, dno, spec, qty, day(date), time.Now(),
	).Error
	if err != nil {
		t.Fatalf("seeding inbound record with NULL optionals: %v", err)
	}
}
