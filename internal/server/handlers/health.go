package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v3"

	"soroban/internal/server/repository"
)

// ============================================================
// Health Check Handlers
// ============================================================

type HealthHandler struct {
	repo *repository.Repository
}

func NewHealthHandler(repo *repository.Repository) *HealthHandler {
	return &HealthHandler{repo: repo}
}

// Live проверяет, что приложение работает
func (h *HealthHandler) Live(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "alive",
	})
}

// Ready проверяет готовность приложения обрабатывать запросы
func (h *HealthHandler) Ready(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if h.repo != nil {
		if err := h.repo.Ping(ctx); err != nil {
			return c.Status(503).JSON(fiber.Map{
				"status": "not ready",
				"error":  err.Error(),
			})
		}
	}
	return c.JSON(fiber.Map{
		"status": "ready",
	})
}
