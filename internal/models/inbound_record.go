package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InboundRecord: one receipt transaction. Rows are immutable except through
// the explicit update endpoint; quantity is always positive, the sign is
// implied by the table.
type InboundRecord struct {
	ID            string    `gorm:"primaryKey;size:36" json:"id"`
	DrawingNumber string    `gorm:"size:255;not null;index" json:"drawingNumber"`
	Specification string    `gorm:"size:255;not null;index" json:"specification"`
	Quantity      int       `gorm:"not null" json:"quantity"`
	Finishing     string    `gorm:"size:255" json:"finishing"`
	Supplier      string    `gorm:"size:255" json:"supplier"`
	Note          string    `gorm:"type:text" json:"note"`
	Date          time.Time `gorm:"type:date;not null;index" json:"date"` // business date, not insertion time
	CreatedAt     time.Time `json:"createdAt"`
}

func (InboundRecord) TableName() string { return "inbound" }

func (r *InboundRecord) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
