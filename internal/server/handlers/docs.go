package handlers

import (
	"github.com/gofiber/fiber/v3"
)

// ============================================================
// API Index
// ============================================================

// APIIndex отдает карту эндпоинтов сервиса.
func APIIndex(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"service": "Soroban Card Service",
		"endpoints": fiber.Map{
			"health":   "GET /health/live, GET /health/ready",
			"render":   "POST /render — SVG card from number or bead state",
			"convert":  "POST /convert — number from SVG card (multipart file)",
			"diff":     "POST /diff — bead moves between two numbers",
			"validate": "POST /validate — range check for a number",
			"generate": "POST /generate — build a flash card deck",
			"decks":    "GET /decks/:id, GET /decks/:id/gallery, GET /decks/:id/cards/:index, DELETE /decks/:id",
			"presets":  "GET|POST /presets, GET|PUT|DELETE /presets/:id",
		},
	})
}
