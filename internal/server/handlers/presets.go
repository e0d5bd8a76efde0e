package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v3"

	"soroban/internal/deck"
	"soroban/internal/server/repository"
)

// ============================================================
// Preset Handlers
// ============================================================

type presetRequest struct {
	Name   string          `json:"name"`
	Config json.RawMessage `json:"config"`
}

type PresetHandler struct {
	repo *repository.Repository
}

func NewPresetHandler(repo *repository.Repository) *PresetHandler {
	return &PresetHandler{repo: repo}
}

// List возвращает все сохраненные пресеты.
func (h *PresetHandler) List(c fiber.Ctx) error {
	presets, err := h.repo.List(context.Background())
	if err != nil {
		log.Printf("[PRESETS] List error: %v", err)
		return c.Status(500).JSON(fiber.Map{
			"error": "failed to list presets",
		})
	}
	if presets == nil {
		presets = []repository.Preset{}
	}
	return c.JSON(presets)
}

// Get возвращает пресет по id.
func (h *PresetHandler) Get(c fiber.Ctx) error {
	preset, err := h.repo.GetByID(context.Background(), c.Params("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{
				"error": "preset not found",
			})
		}
		log.Printf("[PRESETS] Get error: %v", err)
		return c.Status(500).JSON(fiber.Map{
			"error": "failed to load preset",
		})
	}
	return c.JSON(preset)
}

// Create сохраняет новый пресет.
func (h *PresetHandler) Create(c fiber.Ctx) error {
	name, cfg, errResp := decodePresetRequest(c)
	if errResp != nil {
		return errResp(c)
	}

	preset, err := h.repo.Create(context.Background(), name, cfg)
	if err != nil {
		if isConstraintError(err) {
			return c.Status(409).JSON(fiber.Map{
				"error": "preset name already exists",
			})
		}
		log.Printf("[PRESETS] Create error: %v", err)
		return c.Status(422).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.Status(201).JSON(preset)
}

// Update перезаписывает имя и конфиг пресета.
func (h *PresetHandler) Update(c fiber.Ctx) error {
	name, cfg, errResp := decodePresetRequest(c)
	if errResp != nil {
		return errResp(c)
	}
	if err := cfg.Validate(); err != nil {
		return c.Status(422).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	preset, err := h.repo.Update(context.Background(), c.Params("id"), name, cfg)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{
				"error": "preset not found",
			})
		}
		if isConstraintError(err) {
			return c.Status(409).JSON(fiber.Map{
				"error": "preset name already exists",
			})
		}
		log.Printf("[PRESETS] Update error: %v", err)
		return c.Status(500).JSON(fiber.Map{
			"error": "failed to update preset",
		})
	}
	return c.JSON(preset)
}

// Delete удаляет пресет.
func (h *PresetHandler) Delete(c fiber.Ctx) error {
	if err := h.repo.Delete(context.Background(), c.Params("id")); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{
				"error": "preset not found",
			})
		}
		log.Printf("[PRESETS] Delete error: %v", err)
		return c.Status(500).JSON(fiber.Map{
			"error": "failed to delete preset",
		})
	}
	return c.SendStatus(204)
}

// decodePresetRequest разбирает тело запроса; неупомянутые поля
// конфига берут значения по умолчанию.
func decodePresetRequest(c fiber.Ctx) (string, deck.Config, func(fiber.Ctx) error) {
	var req presetRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return "", deck.Config{}, errorResponse(400, "invalid JSON payload")
	}
	if strings.TrimSpace(req.Name) == "" {
		return "", deck.Config{}, errorResponse(400, "name required")
	}
	if len(req.Config) == 0 {
		return "", deck.Config{}, errorResponse(400, "config required")
	}

	cfg := deck.DefaultConfig()
	if err := json.Unmarshal(req.Config, &cfg); err != nil {
		return "", deck.Config{}, errorResponse(400, "invalid config: "+err.Error())
	}
	return req.Name, cfg, nil
}

func isConstraintError(err error) bool {
	return err != nil && strings.Contains(strings.ToUpper(err.Error()), "UNIQUE")
}
