package models

// InventoryItem: derived stock position, rebuilt wholesale on every
// reconciliation. The id is regenerated each rebuild and must not be treated
// as stable; the ledgers are the source of truth.
type InventoryItem struct {
	ID            string `gorm:"primaryKey;size:36" json:"id"`
	DrawingNumber string `gorm:"size:255;not null;index" json:"drawingNumber"`
	Specification string `gorm:"size:255;not null;index" json:"specification"`
	Stock         int    `gorm:"not null" json:"stock"`
	Finishing     string `gorm:"size:255" json:"finishing"`
	Supplier      string `gorm:"size:255" json:"supplier"`
	Note          string `gorm:"type:text" json:"note"`
}

func (InventoryItem) TableName() string { return "inventory" }
