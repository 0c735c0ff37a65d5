package inventory

import (
	"fmt"

	"partstock-backend/internal/models"
	"partstock-backend/internal/partkey"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Rebuild recomputes the inventory snapshot from both ledgers: group every
// transaction by part key, sum signed quantities (+inbound, -outbound), drop
// positions with stock <= 0 and replace the snapshot content wholesale.
//
// Grouping runs in Go over a key map rather than SQL GROUP BY so that rows
// differing only by NULL vs empty-string optionals collapse into one position.
// The clear-then-insert sequence runs in a single transaction; on any failure
// the prior snapshot stays intact.
func Rebuild(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var inbound []models.InboundRecord
		if err := tx.Find(&inbound).Error; err != nil {
			return fmt.Errorf("loading inbound ledger: %w", err)
		}

		var outbound []models.OutboundRecord
		if err := tx.Find(&outbound).Error; err != nil {
			return fmt.Errorf("loading outbound ledger: %w", err)
		}

		totals := make(map[partkey.Key]int)
		for _, r := range inbound {
			totals[inboundKey(r)] += r.Quantity
		}
		for _, r := range outbound {
			totals[outboundKey(r)] -= r.Quantity
		}

		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).
			Delete(&models.InventoryItem{}).Error; err != nil {
			return fmt.Errorf("clearing inventory snapshot: %w", err)
		}

		items := make([]models.InventoryItem, 0, len(totals))
		for key, stock := range totals {
			if stock <= 0 {
				continue
			}
			items = append(items, models.InventoryItem{
				ID:            uuid.NewString(),
				DrawingNumber: key.DrawingNumber,
				Specification: key.Specification,
				Stock:         stock,
				Finishing:     key.Finishing,
				Supplier:      key.Supplier,
				Note:          key.Note,
			})
		}

		if len(items) == 0 {
			return nil
		}
		if err := tx.CreateInBatches(&items, 200).Error; err != nil {
			return fmt.Errorf("writing inventory snapshot: %w", err)
		}
		return nil
	})
}

func inboundKey(r models.InboundRecord) partkey.Key {
	return partkey.Key{
		DrawingNumber: r.DrawingNumber,
		Specification: r.Specification,
		Finishing:     r.Finishing,
		Supplier:      r.Supplier,
		Note:          r.Note,
	}
}

func outboundKey(r models.OutboundRecord) partkey.Key {
	return partkey.Key{
		DrawingNumber: r.DrawingNumber,
		Specification: r.Specification,
		Finishing:     r.Finishing,
		Supplier:      r.Supplier,
		Note:          r.Note,
	}
}

func itemKey(i models.InventoryItem) partkey.Key {
	return partkey.Key{
		DrawingNumber: i.DrawingNumber,
		Specification: i.Specification,
		Finishing:     i.Finishing,
		Supplier:      i.Supplier,
		Note:          i.Note,
	}
}
