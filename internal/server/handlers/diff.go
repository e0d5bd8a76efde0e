package handlers

import (
	"encoding/json"
	"log"

	"github.com/gofiber/fiber/v3"

	"soroban/internal/engine"
)

// ============================================================
// Diff & Validate Handlers
// ============================================================

type diffRequest struct {
	From    *Number `json:"from"`
	To      *Number `json:"to"`
	Columns int     `json:"columns"`
}

// DiffCards возвращает пошаговую инструкцию перехода между числами.
func DiffCards(c fiber.Ctx) error {
	var req diffRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		log.Printf("[DIFF] Decode error: %v", err)
		return c.Status(400).JSON(fiber.Map{
			"error": "invalid JSON payload",
		})
	}
	if !req.From.IsSet() || !req.To.IsSet() {
		return c.Status(400).JSON(fiber.Map{
			"error": "from and to required",
		})
	}

	from := req.From.Big()
	to := req.To.Big()

	columns := req.Columns
	if columns < 1 {
		columns = engine.DefaultColumns
		if auto := engine.AutoColumnsBig(from); auto > columns {
			columns = auto
		}
		if auto := engine.AutoColumnsBig(to); auto > columns {
			columns = auto
		}
	}

	// Оба значения должны помещаться: дифф по усеченным состояниям
	// дал бы бессмысленную инструкцию.
	if check := engine.ValidateBig(from, columns); !check.IsValid {
		return c.Status(422).JSON(fiber.Map{
			"error": "from: " + check.Error,
		})
	}
	if check := engine.ValidateBig(to, columns); !check.IsValid {
		return c.Status(422).JSON(fiber.Map{
			"error": "to: " + check.Error,
		})
	}

	result := engine.DiffStates(
		engine.BigToState(from, columns),
		engine.BigToState(to, columns),
	)
	return c.JSON(result)
}

type validateRequest struct {
	Value   *Number `json:"value"`
	Columns int     `json:"columns"`
}

// ValidateValue проверяет представимость числа. Нарушение — не ошибка
// запроса: ответ всегда 200 с isValid внутри.
func ValidateValue(c fiber.Ctx) error {
	var req validateRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		log.Printf("[VALIDATE] Decode error: %v", err)
		return c.Status(400).JSON(fiber.Map{
			"error": "invalid JSON payload",
		})
	}
	if !req.Value.IsSet() {
		return c.Status(400).JSON(fiber.Map{
			"error": "value required",
		})
	}

	columns := req.Columns
	if columns < 1 {
		columns = engine.DefaultColumns
	}
	return c.JSON(engine.ValidateBig(req.Value.Big(), columns))
}
