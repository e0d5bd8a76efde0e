package handlers

import (
	"encoding/json"
	"log"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v3"

	"soroban/internal/deck"
	"soroban/internal/server/service"
)

// ============================================================
// Deck Handlers
// ============================================================

// Больше ста номеров в превью не отдаем.
const maxPreview = 100

type generateResponse struct {
	DeckID    string   `json:"deckId"`
	Name      string   `json:"name"`
	CardCount int      `json:"cardCount"`
	Numbers   []string `json:"numbers"`
	Truncated bool     `json:"truncated"`
	Path      string   `json:"path,omitempty"`
}

type DeckHandler struct {
	registry *service.Registry
	writer   *deck.FileWriter
}

func NewDeckHandler(registry *service.Registry, writer *deck.FileWriter) *DeckHandler {
	return &DeckHandler{registry: registry, writer: writer}
}

// Generate собирает колоду по конфигу и регистрирует ее в памяти.
// С "persist": true колода дополнительно раскладывается по файлам.
func (h *DeckHandler) Generate(c fiber.Ctx) error {
	cfg := deck.DefaultConfig()
	var persist struct {
		Persist bool `json:"persist"`
	}
	if len(c.Body()) > 0 {
		if err := json.Unmarshal(c.Body(), &cfg); err != nil {
			log.Printf("[GENERATE] Decode error: %v", err)
			return c.Status(400).JSON(fiber.Map{
				"error": "invalid JSON payload: " + err.Error(),
			})
		}
		if err := json.Unmarshal(c.Body(), &persist); err != nil {
			return c.Status(400).JSON(fiber.Map{
				"error": "invalid JSON payload: " + err.Error(),
			})
		}
	}

	built, err := deck.Build(cfg)
	if err != nil {
		log.Printf("[GENERATE] Build error: %v", err)
		return c.Status(422).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	h.registry.Put(built)

	var path string
	if persist.Persist {
		if err := h.writer.WriteDeck(built.ID, built); err != nil {
			log.Printf("[GENERATE] Persist error: %v", err)
			return c.Status(500).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		path = h.writer.DeckDir(built.ID)
	}

	numbers := built.Numbers()
	truncated := len(numbers) > maxPreview
	if truncated {
		numbers = numbers[:maxPreview]
	}

	log.Printf("[GENERATE] Deck %s: %d cards", built.ID, len(built.Cards))
	return c.Status(201).JSON(generateResponse{
		DeckID:    built.ID,
		Name:      built.Name,
		CardCount: len(built.Cards),
		Numbers:   numbers,
		Truncated: truncated,
		Path:      path,
	})
}

// GetDeck отдает колоду целиком, включая SVG карточек.
func (h *DeckHandler) GetDeck(c fiber.Ctx) error {
	d, ok := h.registry.Get(c.Params("id"))
	if !ok {
		return c.Status(404).JSON(fiber.Map{
			"error": "deck not found",
		})
	}
	return c.JSON(d)
}

// GetCard отдает SVG одной карточки.
func (h *DeckHandler) GetCard(c fiber.Ctx) error {
	d, ok := h.registry.Get(c.Params("id"))
	if !ok {
		return c.Status(404).JSON(fiber.Map{
			"error": "deck not found",
		})
	}

	index, err := strconv.Atoi(c.Params("index"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"error": "invalid card index",
		})
	}
	if index < 0 || index >= len(d.Cards) {
		return c.Status(404).JSON(fiber.Map{
			"error": "card not found",
		})
	}

	c.Set("Content-Type", "image/svg+xml")
	return c.SendString(d.Cards[index].SVG)
}

// Gallery отдает HTML-галерею колоды.
func (h *DeckHandler) Gallery(c fiber.Ctx) error {
	d, ok := h.registry.Get(c.Params("id"))
	if !ok {
		return c.Status(404).JSON(fiber.Map{
			"error": "deck not found",
		})
	}

	var page strings.Builder
	if err := d.WriteHTML(&page); err != nil {
		log.Printf("[GALLERY] Render error: %v", err)
		return c.Status(500).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	c.Set("Content-Type", "text/html; charset=utf-8")
	return c.SendString(page.String())
}

// DeleteDeck убирает колоду из реестра.
func (h *DeckHandler) DeleteDeck(c fiber.Ctx) error {
	if !h.registry.Delete(c.Params("id")) {
		return c.Status(404).JSON(fiber.Map{
			"error": "deck not found",
		})
	}
	return c.SendStatus(204)
}
