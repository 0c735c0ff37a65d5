package ledger

import (
	"errors"
	"log"
	"time"

	"partstock-backend/internal/database"
	"partstock-backend/internal/inventory"
	"partstock-backend/internal/models"
	"partstock-backend/internal/partkey"

	"github.com/gofiber/fiber/v2"
)

type TransactionRequest struct {
	DrawingNumber string `json:"drawingNumber"`
	Specification string `json:"specification"`
	Quantity      int    `json:"quantity"`
	Finishing     string `json:"finishing"`
	Supplier      string `json:"supplier"`
	Note          string `json:"note"`
	Date          string `json:"date"` // "2006-01-02"
}

func (r TransactionRequest) validate() error {
	if r.DrawingNumber == "" || r.Specification == "" || r.Date == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Missing required fields")
	}
	if r.Quantity <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid quantity value")
	}
	return nil
}

func (r TransactionRequest) key() partkey.Key {
	return partkey.Key{
		DrawingNumber: r.DrawingNumber,
		Specification: r.Specification,
		Finishing:     r.Finishing,
		Supplier:      r.Supplier,
		Note:          r.Note,
	}
}

func (r TransactionRequest) date() (time.Time, error) {
	d, err := time.Parse("2006-01-02", r.Date)
	if err != nil {
		return time.Time{}, fiber.NewError(fiber.StatusBadRequest, "Date format must be 'YYYY-MM-DD'")
	}
	return d, nil
}

func parseBatch(c *fiber.Ctx) ([]TransactionRequest, error) {
	var items []TransactionRequest
	if err := c.BodyParser(&items); err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid data format")
	}
	if len(items) == 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid data format")
	}
	for _, item := range items {
		if err := item.validate(); err != nil {
			return nil, err
		}
	}
	return items, nil
}

// rebuildSnapshot triggers reconciliation after a successful ledger write.
// A failure here leaves the committed rows in place; the snapshot stays stale
// until the next successful trigger.
func rebuildSnapshot() error {
	if err := inventory.Rebuild(database.DB); err != nil {
		log.Println("Error rebuilding inventory snapshot:", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update inventory")
	}
	return nil
}

// POST /api/inbound
func CreateInboundHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := parseBatch(c)
		if err != nil {
			return err
		}

		records := make([]models.InboundRecord, 0, len(items))
		for _, item := range items {
			d, err := item.date()
			if err != nil {
				return err
			}
			records = append(records, models.InboundRecord{
				DrawingNumber: item.DrawingNumber,
				Specification: item.Specification,
				Quantity:      item.Quantity,
				Finishing:     item.Finishing,
				Supplier:      item.Supplier,
				Note:          item.Note,
				Date:          d,
			})
		}

		if err := database.DB.Create(&records).Error; err != nil {
			log.Println("Error saving inbound data:", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to save data")
		}

		if err := rebuildSnapshot(); err != nil {
			return err
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"success": true,
			"count":   len(items),
		})
	}
}

// POST /api/outbound
// Every item is checked against live pre-insert stock before any row is
// persisted; one insufficient item fails the whole batch with no insert.
func CreateOutboundHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := parseBatch(c)
		if err != nil {
			return err
		}

		records := make([]models.OutboundRecord, 0, len(items))
		for _, item := range items {
			d, err := item.date()
			if err != nil {
				return err
			}

			if err := inventory.CheckSufficiency(database.DB, item.key(), item.Quantity); err != nil {
				var insufficient *inventory.InsufficientStockError
				if errors.As(err, &insufficient) {
					return fiber.NewError(fiber.StatusBadRequest, insufficient.Error())
				}
				log.Println("Error checking stock:", err)
				return fiber.NewError(fiber.StatusInternalServerError, "Internal server error")
			}

			records = append(records, models.OutboundRecord{
				DrawingNumber: item.DrawingNumber,
				Specification: item.Specification,
				Quantity:      item.Quantity,
				Finishing:     item.Finishing,
				Supplier:      item.Supplier,
				Note:          item.Note,
				Date:          d,
			})
		}

		if err := database.DB.Create(&records).Error; err != nil {
			log.Println("Error saving outbound data:", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to save data")
		}

		if err := rebuildSnapshot(); err != nil {
			return err
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"success": true,
			"count":   len(items),
		})
	}
}

// PUT /api/inbound/:id
func UpdateInboundHandler() fiber.Handler {
	return updateHandler(&models.InboundRecord{}, "inbound")
}

// PUT /api/outbound/:id
func UpdateOutboundHandler() fiber.Handler {
	return updateHandler(&models.OutboundRecord{}, "outbound")
}

// updateHandler rewrites a full ledger record by id. Empty optional fields
// overwrite the stored values, so the column map is used instead of a struct
// (GORM skips zero values on struct updates).
func updateHandler(model any, name string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var item TransactionRequest
		if err := c.BodyParser(&item); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if err := item.validate(); err != nil {
			return err
		}
		d, err := item.date()
		if err != nil {
			return err
		}

		res := database.DB.Model(model).Where("id = ?", id).Updates(map[string]any{
			"drawing_number": item.DrawingNumber,
			"specification":  item.Specification,
			"quantity":       item.Quantity,
			"finishing":      item.Finishing,
			"supplier":       item.Supplier,
			"note":           item.Note,
			"date":           d,
		})
		if res.Error != nil {
			log.Printf("Error updating %s data: %v", name, res.Error)
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to update data")
		}
		if res.RowsAffected == 0 {
			return fiber.NewError(fiber.StatusNotFound, "Record not found")
		}

		if err := rebuildSnapshot(); err != nil {
			return err
		}

		return c.JSON(fiber.Map{"success": true})
	}
}
