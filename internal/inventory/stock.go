package inventory

import (
	"fmt"

	"partstock-backend/internal/models"
	"partstock-backend/internal/partkey"

	"gorm.io/gorm"
)

// InsufficientStockError: an outbound request asked for more than is on hand.
type InsufficientStockError struct {
	Specification string
	Current       int
	Requested     int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("Insufficient stock for %s. Current: %d, Requested: %d",
		e.Specification, e.Current, e.Requested)
}

// CurrentStock computes the live net quantity for a part key straight from the
// ledgers. The cached snapshot can be one reconciliation behind the latest
// ingest, so sufficiency checks must never read it.
func CurrentStock(db *gorm.DB, key partkey.Key) (int, error) {
	cond, args := partkey.Condition(key)

	var in int
	if err := db.Model(&models.InboundRecord{}).
		Where(cond, args...).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&in).Error; err != nil {
		return 0, fmt.Errorf("summing inbound quantities: %w", err)
	}

	var out int
	if err := db.Model(&models.OutboundRecord{}).
		Where(cond, args...).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&out).Error; err != nil {
		return 0, fmt.Errorf("summing outbound quantities: %w", err)
	}

	return in - out, nil
}

// CheckSufficiency fails with *InsufficientStockError when requested exceeds
// the current live stock for the key.
func CheckSufficiency(db *gorm.DB, key partkey.Key, requested int) error {
	current, err := CurrentStock(db, key)
	if err != nil {
		return err
	}
	if requested > current {
		return &InsufficientStockError{
			Specification: key.Specification,
			Current:       current,
			Requested:     requested,
		}
	}
	return nil
}
