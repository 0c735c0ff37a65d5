package inventory

import (
	"log"

	"partstock-backend/internal/database"

	"github.com/gofiber/fiber/v2"
)

const suggestionLimit = 10

// GET /api/suggestions/drowing
// The path keeps the historical spelling for frontend compatibility.
func SuggestDrawingNumberHandler() fiber.Handler {
	return suggestionHandler(SuggestDrawingNumber)
}

// GET /api/suggestions/product
func SuggestProductHandler() fiber.Handler {
	return suggestionHandler(SuggestSpecification)
}

func suggestionHandler(column string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		term := c.Query("term")
		if term == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Term parameter is required")
		}

		values, err := Suggest(database.DB, column, term, suggestionLimit)
		if err != nil {
			log.Println("Error fetching suggestions:", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch suggestions")
		}

		return c.JSON(values)
	}
}
