package inventory

import (
	"errors"
	"log"

	"partstock-backend/internal/database"
	"partstock-backend/internal/models"
	"partstock-backend/internal/partkey"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type LedgerRowResponse struct {
	ID            string `json:"id"`
	DrawingNumber string `json:"drawingNumber"`
	Specification string `json:"specification"`
	Quantity      int    `json:"quantity"`
	Finishing     string `json:"finishing"`
	Supplier      string `json:"supplier"`
	Note          string `json:"note"`
	Date          string `json:"date"`
	CreatedAt     string `json:"createdAt"`
}

type InventoryItemResponse struct {
	ID            string              `json:"id"`
	DrawingNumber string              `json:"drawingNumber"`
	Specification string              `json:"specification"`
	Stock         int                 `json:"stock"`
	Finishing     string              `json:"finishing"`
	Supplier      string              `json:"supplier"`
	Note          string              `json:"note"`
	Inbound       []LedgerRowResponse `json:"inbound"`
	Outbound      []LedgerRowResponse `json:"outbound"`
}

type DeleteByConditionRequest struct {
	DrawingNumber string `json:"drawingNumber"`
	Specification string `json:"specification"`
	Finishing     string `json:"finishing"`
	Supplier      string `json:"supplier"`
	Note          string `json:"note"`
}

// GET /api/inventory
func ListInventoryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		filters := Filters{
			DrawingNumber: c.Query("dno"),
			Specification: c.Query("spec"),
		}
		// fin present but empty means "empty finishing only", so presence has
		// to be checked on the raw query args.
		if c.Context().QueryArgs().Has("fin") {
			fin := c.Query("fin")
			filters.Finishing = &fin
		}

		page := c.QueryInt("page", 1)
		limit := c.QueryInt("limit", 20)

		result, err := ListInventory(database.DB, filters, page, limit)
		if err != nil {
			log.Println("Error fetching inventory:", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch data")
		}

		items := make([]InventoryItemResponse, 0, len(result.Items))
		for _, pos := range result.Items {
			item := InventoryItemResponse{
				ID:            pos.Item.ID,
				DrawingNumber: pos.Item.DrawingNumber,
				Specification: pos.Item.Specification,
				Stock:         pos.Item.Stock,
				Finishing:     pos.Item.Finishing,
				Supplier:      pos.Item.Supplier,
				Note:          pos.Item.Note,
				Inbound:       make([]LedgerRowResponse, 0, len(pos.Inbound)),
				Outbound:      make([]LedgerRowResponse, 0, len(pos.Outbound)),
			}
			for _, r := range pos.Inbound {
				item.Inbound = append(item.Inbound, LedgerRowResponse{
					ID:            r.ID,
					DrawingNumber: r.DrawingNumber,
					Specification: r.Specification,
					Quantity:      r.Quantity,
					Finishing:     r.Finishing,
					Supplier:      r.Supplier,
					Note:          r.Note,
					Date:          r.Date.Format("2006-01-02"),
					CreatedAt:     r.CreatedAt.Format("2006-01-02 15:04:05"),
				})
			}
			for _, r := range pos.Outbound {
				item.Outbound = append(item.Outbound, LedgerRowResponse{
					ID:            r.ID,
					DrawingNumber: r.DrawingNumber,
					Specification: r.Specification,
					Quantity:      r.Quantity,
					Finishing:     r.Finishing,
					Supplier:      r.Supplier,
					Note:          r.Note,
					Date:          r.Date.Format("2006-01-02"),
					CreatedAt:     r.CreatedAt.Format("2006-01-02 15:04:05"),
				})
			}
			items = append(items, item)
		}

		return c.JSON(fiber.Map{
			"items":       items,
			"totalItems":  result.TotalItems,
			"totalPages":  result.TotalPages,
			"currentPage": result.Page,
		})
	}
}

// GET /api/product
// Snapshot lookup without the ledger join. Unlike /api/inventory, an empty fin
// here applies no finishing filter.
func ListProductsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		filters := Filters{
			DrawingNumber: c.Query("dno"),
			Specification: c.Query("spec"),
		}
		if fin := c.Query("fin"); fin != "" {
			filters.Finishing = &fin
		}

		items, err := ListItems(database.DB, filters)
		if err != nil {
			log.Println("Error fetching products:", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch data")
		}

		return c.JSON(items)
	}
}

// POST /api/inventory/delete-by-condition
func DeleteByConditionHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body DeleteByConditionRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.DrawingNumber == "" || body.Specification == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Missing required delete condition")
		}

		key := partkey.Key{
			DrawingNumber: body.DrawingNumber,
			Specification: body.Specification,
			Finishing:     body.Finishing,
			Supplier:      body.Supplier,
			Note:          body.Note,
		}

		if err := DeleteByCondition(database.DB, key); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Inventory item not found")
			}
			log.Println("Error deleting inventory by condition:", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete inventory")
		}

		// Ledger rows changed, so the snapshot is recomputed. The snapshot
		// delete is this operation's success criterion; like the ledger
		// cleanup, a rebuild failure here is logged, not surfaced.
		if err := Rebuild(database.DB); err != nil {
			log.Println("Error rebuilding inventory snapshot:", err)
		}

		return c.JSON(fiber.Map{"success": true})
	}
}

// DELETE /api/inventory/:id
// Deletes a snapshot row by its derived id. The row comes back on the next
// reconciliation if the ledgers still net positive for its key.
func DeleteInventoryItemHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		res := database.DB.Delete(&models.InventoryItem{}, "id = ?", id)
		if res.Error != nil {
			log.Println("Error deleting inventory item:", res.Error)
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete inventory item")
		}
		if res.RowsAffected == 0 {
			return fiber.NewError(fiber.StatusNotFound, "Inventory item not found")
		}

		return c.JSON(fiber.Map{"success": true})
	}
}
