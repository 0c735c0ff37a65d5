package main

import (
	"log"
	"strings"

	"partstock-backend/internal/config"
	"partstock-backend/internal/database"
	"partstock-backend/internal/inventory"
	"partstock-backend/internal/ledger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)

	// Bring the snapshot in line with the ledgers before serving traffic.
	if err := inventory.Rebuild(database.DB); err != nil {
		log.Fatalf("Initial inventory rebuild failed: %v", err)
	}
	log.Println("Inventory snapshot initialized")

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Unexpected error:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Unexpected server error",
			})
		},
	})

	app.Use(logger.New())
	app.Use(recover.New())

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Ledgers
	api.Post("/inbound", ledger.CreateInboundHandler())
	api.Post("/outbound", ledger.CreateOutboundHandler())
	api.Put("/inbound/:id", ledger.UpdateInboundHandler())
	api.Put("/outbound/:id", ledger.UpdateOutboundHandler())
	api.Get("/inbound", ledger.ListInboundHandler())
	api.Get("/outbound", ledger.ListOutboundHandler())
	api.Get("/monthly-records", ledger.MonthlyRecordsHandler())

	// Inventory snapshot
	api.Get("/inventory", inventory.ListInventoryHandler())
	api.Get("/product", inventory.ListProductsHandler())
	api.Post("/inventory/delete-by-condition", inventory.DeleteByConditionHandler())
	api.Delete("/inventory/:id", inventory.DeleteInventoryItemHandler())

	// Autocomplete
	api.Get("/suggestions/drowing", inventory.SuggestDrawingNumberHandler())
	api.Get("/suggestions/product", inventory.SuggestProductHandler())

	log.Println("Server running on port:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
