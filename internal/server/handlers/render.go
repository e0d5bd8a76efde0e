package handlers

import (
	"encoding/json"
	"log"

	"github.com/gofiber/fiber/v3"

	"soroban/internal/engine"
	"soroban/internal/layout"
	"soroban/internal/render"
)

// ============================================================
// Render Handler
// ============================================================

type renderRequest struct {
	Number            *Number            `json:"number"`
	State             engine.AbacusState `json:"state"`
	Columns           int                `json:"columns"`
	BeadShape         render.BeadShape   `json:"beadShape"`
	ColorScheme       render.ColorScheme `json:"colorScheme"`
	ScaleFactor       float64            `json:"scaleFactor"`
	ColoredNumerals   bool               `json:"coloredNumerals"`
	HideInactiveBeads bool               `json:"hideInactiveBeads"`
	ShowNumbers       bool               `json:"showNumbers"`
	ShowLabels        bool               `json:"showLabels"`
	Transparent       bool               `json:"transparent"`
}

type renderResponse struct {
	Number     string             `json:"number"`
	Columns    int                `json:"columns"`
	State      engine.AbacusState `json:"state"`
	Dimensions layout.Dimensions  `json:"dimensions"`
	SVG        string             `json:"svg"`
}

func (r renderRequest) options(columns int) render.Options {
	return render.Options{
		Columns:           columns,
		BeadShape:         r.BeadShape,
		ColorScheme:       r.ColorScheme,
		ScaleFactor:       r.ScaleFactor,
		ColoredNumerals:   r.ColoredNumerals,
		HideInactiveBeads: r.HideInactiveBeads,
		ShowNumbers:       r.ShowNumbers,
		ShowLabels:        r.ShowLabels,
		Transparent:       r.Transparent,
	}
}

// RenderCard рендерит SVG-карточку по числу или готовому состоянию.
// По умолчанию отвечает image/svg+xml; ?format=json добавляет
// состояние и геометрию.
func RenderCard(c fiber.Ctx) error {
	if len(c.Body()) == 0 {
		return c.Status(400).JSON(fiber.Map{
			"error": "body required",
		})
	}

	var req renderRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		log.Printf("[RENDER] Decode error: %v", err)
		return c.Status(400).JSON(fiber.Map{
			"error": "invalid JSON payload",
		})
	}

	state, columns, errResp := resolveState(req)
	if errResp != nil {
		return errResp(c)
	}

	svg, err := render.NewRenderer(req.options(columns)).Render(state)
	if err != nil {
		log.Printf("[RENDER] Render error: %v", err)
		return c.Status(400).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if c.Query("format") == "json" {
		return c.JSON(renderResponse{
			Number:  engine.StateToBig(state).String(),
			Columns: columns,
			State:   state,
			Dimensions: layout.Calculate(columns, layout.Options{
				ScaleFactor: req.ScaleFactor,
				ShowNumbers: req.ShowNumbers,
				ShowLabels:  req.ShowLabels,
			}),
			SVG: svg,
		})
	}

	c.Set("Content-Type", "image/svg+xml")
	return c.SendString(svg)
}

// resolveState выбирает источник состояния: число или явный state.
func resolveState(req renderRequest) (engine.AbacusState, int, func(fiber.Ctx) error) {
	hasNumber := req.Number.IsSet()
	hasState := len(req.State) > 0

	switch {
	case hasNumber && hasState:
		return nil, 0, errorResponse(400, "number and state are mutually exclusive")
	case !hasNumber && !hasState:
		return nil, 0, errorResponse(400, "number or state required")
	case hasState:
		if err := req.State.Check(); err != nil {
			return nil, 0, errorResponse(422, err.Error())
		}
		columns := req.Columns
		if columns < len(req.State) {
			columns = len(req.State)
		}
		state := req.State
		if columns > len(state) {
			grown := make(engine.AbacusState, columns)
			copy(grown, state)
			state = grown
		}
		return state, columns, nil
	}

	value := req.Number.Big()
	columns := req.Columns
	if columns < 1 {
		columns = engine.AutoColumnsBig(value)
	}
	if check := engine.ValidateBig(value, columns); !check.IsValid {
		return nil, 0, errorResponse(422, check.Error)
	}
	return engine.BigToState(value, columns), columns, nil
}

func errorResponse(status int, message string) func(fiber.Ctx) error {
	return func(c fiber.Ctx) error {
		return c.Status(status).JSON(fiber.Map{
			"error": message,
		})
	}
}
