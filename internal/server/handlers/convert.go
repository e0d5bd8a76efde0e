package handlers

import (
	"bytes"
	"io"
	"log"

	"github.com/gofiber/fiber/v3"

	"soroban/internal/engine"
	"soroban/internal/render"
)

// ============================================================
// Convert Handler
// ============================================================

type convertResponse struct {
	Number  string             `json:"number"`
	Columns int                `json:"columns"`
	Digits  []int              `json:"digits"`
	State   engine.AbacusState `json:"state"`
}

// ConvertCard восстанавливает число и состояние из SVG-карточки.
func ConvertCard(c fiber.Ctx) error {
	log.Printf("[CONVERT] Received request, Content-Length: %d", len(c.Body()))

	// Файл из multipart/form-data
	file, err := c.FormFile("file")
	if err != nil {
		log.Printf("[CONVERT] FormFile error: %v", err)
		return c.Status(400).JSON(fiber.Map{
			"error": "file required in multipart/form-data",
		})
	}

	f, err := file.Open()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"error": "failed to open file",
		})
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"error": "failed to read file",
		})
	}

	state, err := render.Parse(bytes.NewReader(data))
	if err != nil {
		log.Printf("[CONVERT] Parse error: %v", err)
		return c.Status(422).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(convertResponse{
		Number:  engine.StateToBig(state).String(),
		Columns: len(state),
		Digits:  state.Digits(),
		State:   state,
	})
}
