package ledger

import (
	"log"
	"strconv"
	"time"

	"partstock-backend/internal/database"
	"partstock-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gorm.io/gorm"
)

// Quantities on list reads are returned as locale-grouped strings for the
// frontend, e.g. "1,234".
var quantityPrinter = message.NewPrinter(language.Korean)

type TransactionResponse struct {
	ID            string `json:"id"`
	DrawingNumber string `json:"drawingNumber"`
	Specification string `json:"specification"`
	Quantity      string `json:"quantity"`
	Finishing     string `json:"finishing"`
	Supplier      string `json:"supplier"`
	Note          string `json:"note"`
	Date          string `json:"date"`
	CreatedAt     string `json:"createdAt"`
}

type MonthlyRecord struct {
	Type          string `json:"type"`
	ID            string `json:"id"`
	DrawingNumber string `json:"drawingNumber"`
	Specification string `json:"specification"`
	Quantity      int    `json:"quantity"`
	Finishing     string `json:"finishing"`
	Supplier      string `json:"supplier"`
	Note          string `json:"note"`
	Date          string `json:"date"`
}

// GET /api/inbound
func ListInboundHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var records []models.InboundRecord
		q, err := ledgerListQuery(c, database.DB.Model(&models.InboundRecord{}))
		if err != nil {
			return err
		}
		if err := q.Find(&records).Error; err != nil {
			log.Println("Error fetching inbound data:", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch data")
		}

		resp := make([]TransactionResponse, 0, len(records))
		for _, r := range records {
			resp = append(resp, TransactionResponse{
				ID:            r.ID,
				DrawingNumber: r.DrawingNumber,
				Specification: r.Specification,
				Quantity:      quantityPrinter.Sprintf("%d", r.Quantity),
				Finishing:     r.Finishing,
				Supplier:      r.Supplier,
				Note:          r.Note,
				Date:          r.Date.Format("2006-01-02"),
				CreatedAt:     r.CreatedAt.Format("2006-01-02 15:04:05"),
			})
		}
		return c.JSON(resp)
	}
}

// GET /api/outbound
func ListOutboundHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var records []models.OutboundRecord
		q, err := ledgerListQuery(c, database.DB.Model(&models.OutboundRecord{}))
		if err != nil {
			return err
		}
		if err := q.Find(&records).Error; err != nil {
			log.Println("Error fetching outbound data:", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch data")
		}

		resp := make([]TransactionResponse, 0, len(records))
		for _, r := range records {
			resp = append(resp, TransactionResponse{
				ID:            r.ID,
				DrawingNumber: r.DrawingNumber,
				Specification: r.Specification,
				Quantity:      quantityPrinter.Sprintf("%d", r.Quantity),
				Finishing:     r.Finishing,
				Supplier:      r.Supplier,
				Note:          r.Note,
				Date:          r.Date.Format("2006-01-02"),
				CreatedAt:     r.CreatedAt.Format("2006-01-02 15:04:05"),
			})
		}
		return c.JSON(resp)
	}
}

// GET /api/monthly-records?year&month
// All transactions of the calendar month from both ledgers, newest first,
// split by ledger.
func MonthlyRecordsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		yearStr := c.Query("year")
		monthStr := c.Query("month")
		if yearStr == "" || monthStr == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Year and month parameters are required")
		}

		year, err := strconv.Atoi(yearStr)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid year value")
		}
		month, err := strconv.Atoi(monthStr)
		if err != nil || month < 1 || month > 12 {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid month value")
		}

		start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
		end := start.AddDate(0, 1, 0)

		var inbound []models.InboundRecord
		if err := database.DB.
			Where("date >= ? AND date < ?", start, end).
			Order("date DESC").
			Find(&inbound).Error; err != nil {
			log.Println("Error fetching monthly records:", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch data")
		}

		var outbound []models.OutboundRecord
		if err := database.DB.
			Where("date >= ? AND date < ?", start, end).
			Order("date DESC").
			Find(&outbound).Error; err != nil {
			log.Println("Error fetching monthly records:", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch data")
		}

		inboundRows := make([]MonthlyRecord, 0, len(inbound))
		for _, r := range inbound {
			inboundRows = append(inboundRows, MonthlyRecord{
				Type:          "inbound",
				ID:            r.ID,
				DrawingNumber: r.DrawingNumber,
				Specification: r.Specification,
				Quantity:      r.Quantity,
				Finishing:     r.Finishing,
				Supplier:      r.Supplier,
				Note:          r.Note,
				Date:          r.Date.Format("2006-01-02"),
			})
		}
		outboundRows := make([]MonthlyRecord, 0, len(outbound))
		for _, r := range outbound {
			outboundRows = append(outboundRows, MonthlyRecord{
				Type:          "outbound",
				ID:            r.ID,
				DrawingNumber: r.DrawingNumber,
				Specification: r.Specification,
				Quantity:      r.Quantity,
				Finishing:     r.Finishing,
				Supplier:      r.Supplier,
				Note:          r.Note,
				Date:          r.Date.Format("2006-01-02"),
			})
		}

		return c.JSON(fiber.Map{
			"inbound":  inboundRows,
			"outbound": outboundRows,
		})
	}
}

// ledgerListQuery applies the shared search/date filters of the ledger list
// endpoints.
func ledgerListQuery(c *fiber.Ctx, q *gorm.DB) (*gorm.DB, error) {
	if search := c.Query("search"); search != "" {
		term := "%" + search + "%"
		q = q.Where("drawing_number LIKE ? OR specification LIKE ? OR supplier LIKE ?", term, term, term)
	}
	if dateStr := c.Query("date"); dateStr != "" {
		d, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			return nil, fiber.NewError(fiber.StatusBadRequest, "Date format must be 'YYYY-MM-DD'")
		}
		q = q.Where("date = ?", d)
	}
	return q, nil
}
