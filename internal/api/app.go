package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/launchesoneth-glitch/pokevault-sub000/internal/api/handlers"
	"github.com/launchesoneth-glitch/pokevault-sub000/internal/api/middleware"
	"github.com/launchesoneth-glitch/pokevault-sub000/internal/config"
)

// NewApp assembles the Fiber application: global middleware, health probe
// and the /api routes.
func NewApp(cfg *config.Config, h *handlers.API) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "PokeVault Market API",
		ServerHeader: "PokeVault",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	app.Use(recover.New())
	app.Use(middleware.SecurityHeaders())
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
	if len(cfg.Server.AllowOrigins) > 0 {
		app.Use(cors.New(cors.Config{
			AllowOrigins:     strings.Join(cfg.Server.AllowOrigins, ","),
			AllowMethods:     "GET,POST,OPTIONS",
			AllowHeaders:     "Origin,Content-Type,Accept,Authorization",
			AllowCredentials: true,
		}))
	}
	app.Use(middleware.LoggingMiddleware())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")
	api.Get("/listings", middleware.OptionalAuth(h.Sessions), h.ListListings)
	api.Post("/listings", middleware.AuthRequired(h.Sessions), h.CreateListing)
	api.Get("/listings/:id", middleware.OptionalAuth(h.Sessions), h.GetListing)
	api.Get("/listings/:id/bids", middleware.OptionalAuth(h.Sessions), h.GetListingBids)
	api.Post("/bids", middleware.AuthRequired(h.Sessions), h.PlaceBid)
	api.Get("/users/me", middleware.AuthRequired(h.Sessions), h.GetProfile)
	api.Get("/users/me/bids", middleware.AuthRequired(h.Sessions), h.GetMyBids)

	return app
}
