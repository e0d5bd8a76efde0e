package server

import (
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"

	"soroban/internal/common/config"
	"soroban/internal/common/middleware"
	"soroban/internal/deck"
	"soroban/internal/server/handlers"
	"soroban/internal/server/repository"
	"soroban/internal/server/service"
)

// ============================================================
// App Assembly
// ============================================================

// New собирает fiber-приложение со всеми маршрутами сервиса.
func New(cfg *config.Config, repo *repository.Repository, registry *service.Registry) *fiber.App {
	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		AppName:      "Soroban Card Service",
	})

	// ============================================================
	// Global Middleware
	// ============================================================

	app.Use(recover.New())
	app.Use(middleware.Logger())
	app.Use(middleware.CORS())

	healthHandler := handlers.NewHealthHandler(repo)
	deckHandler := handlers.NewDeckHandler(registry, deck.NewFileWriter(cfg.DecksDir))
	presetHandler := handlers.NewPresetHandler(repo)

	// ============================================================
	// Health Check Routes
	// ============================================================

	app.Get("/health/live", healthHandler.Live)
	app.Get("/health/ready", healthHandler.Ready)

	// ============================================================
	// Card Routes
	// ============================================================

	app.Get("/", handlers.APIIndex)
	app.Post("/render", handlers.RenderCard)
	app.Post("/convert", handlers.ConvertCard)
	app.Post("/diff", handlers.DiffCards)
	app.Post("/validate", handlers.ValidateValue)

	// ============================================================
	// Deck Routes
	// ============================================================

	app.Post("/generate", deckHandler.Generate)
	app.Get("/decks/:id", deckHandler.GetDeck)
	app.Get("/decks/:id/gallery", deckHandler.Gallery)
	app.Get("/decks/:id/cards/:index", deckHandler.GetCard)
	app.Delete("/decks/:id", deckHandler.DeleteDeck)

	// ============================================================
	// Preset Routes
	// ============================================================

	app.Get("/presets", presetHandler.List)
	app.Post("/presets", presetHandler.Create)
	app.Get("/presets/:id", presetHandler.Get)
	app.Put("/presets/:id", presetHandler.Update)
	app.Delete("/presets/:id", presetHandler.Delete)

	return app
}
