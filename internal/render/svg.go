package render

import (
	"fmt"
	"strconv"
	"strings"

	"soroban/internal/engine"
	"soroban/internal/layout"
)

// ============================================================
// Renderer
// ============================================================

type Options struct {
	// Columns: 0 — взять из длины состояния.
	Columns           int         `json:"columns,omitempty"`
	BeadShape         BeadShape   `json:"beadShape,omitempty"`
	ColorScheme       ColorScheme `json:"colorScheme,omitempty"`
	ScaleFactor       float64     `json:"scaleFactor,omitempty"`
	ColoredNumerals   bool        `json:"coloredNumerals,omitempty"`
	HideInactiveBeads bool        `json:"hideInactiveBeads,omitempty"`
	ShowNumbers       bool        `json:"showNumbers,omitempty"`
	ShowLabels        bool        `json:"showLabels,omitempty"`
	Transparent       bool        `json:"transparent,omitempty"`
}

type Renderer struct {
	opts Options
}

func NewRenderer(opts Options) *Renderer {
	if opts.BeadShape == "" {
		opts.BeadShape = ShapeDiamond
	}
	if opts.ColorScheme == "" {
		opts.ColorScheme = SchemeMonochrome
	}
	return &Renderer{opts: opts}
}

// Render собирает SVG-карточку из состояния абакуса.
func (r *Renderer) Render(state engine.AbacusState) (string, error) {
	if !validShape(r.opts.BeadShape) {
		return "", fmt.Errorf("unknown bead shape %q", r.opts.BeadShape)
	}
	if !validScheme(r.opts.ColorScheme) {
		return "", fmt.Errorf("unknown color scheme %q", r.opts.ColorScheme)
	}

	columns := r.opts.Columns
	if columns < 1 {
		columns = len(state)
	}
	if columns < 1 {
		columns = 1
	}

	dims := layout.Calculate(columns, layout.Options{
		ScaleFactor: r.opts.ScaleFactor,
		ShowNumbers: r.opts.ShowNumbers,
		ShowLabels:  r.opts.ShowLabels,
	})

	var elements []string
	if !r.opts.Transparent {
		elements = append(elements, fmt.Sprintf(`<rect x="0" y="0" width="%s" height="%s" fill="#ffffff" />`,
			formatFloat(dims.Width), formatFloat(dims.Height)))
	}
	elements = append(elements, r.renderFrame(dims)...)
	elements = append(elements, r.renderBeads(state, dims)...)
	if r.opts.ShowLabels {
		elements = append(elements, r.renderLabels(dims)...)
	}
	if r.opts.ShowNumbers {
		elements = append(elements, r.renderNumerals(state, dims)...)
	}

	var builder strings.Builder
	builder.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	builder.WriteString(fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s" data-columns="%d" data-value="%s">`,
		formatFloat(dims.Width), formatFloat(dims.Height), formatFloat(dims.Width), formatFloat(dims.Height),
		columns, engine.StateToBig(state).String()))
	builder.WriteString("\n")

	for _, elem := range elements {
		builder.WriteString("  ")
		builder.WriteString(elem)
		builder.WriteString("\n")
	}

	builder.WriteString(`</svg>`)
	return builder.String(), nil
}

// RenderNumber рендерит карточку сразу из значения.
func RenderNumber(value uint64, opts Options) (string, error) {
	columns := opts.Columns
	if columns < 1 {
		columns = engine.AutoColumns(value)
		opts.Columns = columns
	}
	return NewRenderer(opts).Render(engine.NumberToState(value, columns))
}

// ============================================================
// Frame
// ============================================================

func (r *Renderer) renderFrame(dims layout.Dimensions) []string {
	var out []string

	frameTop := dims.HeavenTop - dims.BarHeight
	frameBottom := dims.EarthBottom + dims.BarHeight
	out = append(out, fmt.Sprintf(`<rect id="frame" x="%s" y="%s" width="%s" height="%s" fill="none" stroke="%s" stroke-width="%s" />`,
		formatFloat(dims.PaddingX/2), formatFloat(frameTop),
		formatFloat(dims.Width-dims.PaddingX), formatFloat(frameBottom-frameTop),
		frameColor, formatFloat(dims.BarHeight)))

	for place := dims.Columns - 1; place >= 0; place-- {
		x := dims.RodX(place)
		out = append(out, fmt.Sprintf(`<rect id="rod-p%d" x="%s" y="%s" width="%s" height="%s" fill="%s" />`,
			place, formatFloat(x-dims.RodWidth/2), formatFloat(dims.HeavenTop),
			formatFloat(dims.RodWidth), formatFloat(dims.EarthBottom-dims.HeavenTop), rodColor))
	}

	out = append(out, fmt.Sprintf(`<rect id="bar" x="%s" y="%s" width="%s" height="%s" fill="%s" />`,
		formatFloat(dims.PaddingX/2), formatFloat(dims.BarY),
		formatFloat(dims.Width-dims.PaddingX), formatFloat(dims.BarHeight), barColor))

	return out
}

// ============================================================
// Beads
// ============================================================

func (r *Renderer) renderBeads(state engine.AbacusState, dims layout.Dimensions) []string {
	var out []string

	for _, bead := range layout.Beads(state, dims) {
		if !bead.Active && r.opts.HideInactiveBeads {
			continue
		}

		fill := BeadColor(r.opts.ColorScheme, bead.PlaceValue, bead.Type)
		opacity := ""
		if !bead.Active {
			opacity = ` fill-opacity="0.25"`
		}

		out = append(out, r.renderBead(bead, dims, fill, opacity))
	}

	return out
}

func (r *Renderer) renderBead(bead layout.PlacedBead, dims layout.Dimensions, fill, opacity string) string {
	id := beadID(bead.PlaceValueBead)
	attrs := fmt.Sprintf(`data-place="%d" data-type="%s" data-position="%d" data-active="%t"`,
		bead.PlaceValue, bead.Type, bead.Position, bead.Active)

	halfW := dims.BeadWidth / 2
	halfH := dims.BeadHeight / 2

	switch r.opts.BeadShape {
	case ShapeCircle:
		return fmt.Sprintf(`<circle id="%s" cx="%s" cy="%s" r="%s" fill="%s"%s %s />`,
			id, formatFloat(bead.X), formatFloat(bead.Y), formatFloat(halfH), fill, opacity, attrs)
	case ShapeSquare:
		return fmt.Sprintf(`<rect id="%s" x="%s" y="%s" width="%s" height="%s" rx="%s" fill="%s"%s %s />`,
			id, formatFloat(bead.X-halfW), formatFloat(bead.Y-halfH),
			formatFloat(dims.BeadWidth), formatFloat(dims.BeadHeight), formatFloat(dims.BeadHeight/8),
			fill, opacity, attrs)
	default:
		// Ромб: классический профиль бусины соробана.
		return fmt.Sprintf(`<path id="%s" d="M %s %s L %s %s L %s %s L %s %s Z" fill="%s"%s %s />`,
			id,
			formatFloat(bead.X), formatFloat(bead.Y-halfH),
			formatFloat(bead.X+halfW), formatFloat(bead.Y),
			formatFloat(bead.X), formatFloat(bead.Y+halfH),
			formatFloat(bead.X-halfW), formatFloat(bead.Y),
			fill, opacity, attrs)
	}
}

// ============================================================
// Numerals & Labels
// ============================================================

func (r *Renderer) renderNumerals(state engine.AbacusState, dims layout.Dimensions) []string {
	var out []string

	for place := dims.Columns - 1; place >= 0; place-- {
		digit := 0
		if place < len(state) {
			digit = state[place].Digit()
		}
		fill := NumeralColor(r.opts.ColorScheme, place, r.opts.ColoredNumerals)
		out = append(out, fmt.Sprintf(`<text id="numeral-p%d" x="%s" y="%s" text-anchor="middle" dominant-baseline="middle" font-family="sans-serif" font-size="%s" fill="%s">%d</text>`,
			place, formatFloat(dims.RodX(place)), formatFloat(dims.NumbersY),
			formatFloat(dims.FontSize), fill, digit))
	}

	return out
}

func (r *Renderer) renderLabels(dims layout.Dimensions) []string {
	var out []string

	for place := dims.Columns - 1; place >= 0; place-- {
		label := strings.TrimSuffix(engine.PlaceName(place), " column")
		out = append(out, fmt.Sprintf(`<text id="label-p%d" x="%s" y="%s" text-anchor="middle" dominant-baseline="middle" font-family="sans-serif" font-size="%s" fill="%s">%s</text>`,
			place, formatFloat(dims.RodX(place)), formatFloat(dims.LabelsY),
			formatFloat(dims.FontSize*0.75), numeralColor, label))
	}

	return out
}

// ============================================================
// Formatting helpers
// ============================================================

func beadID(bead engine.PlaceValueBead) string {
	if bead.Type == engine.BeadHeaven {
		return fmt.Sprintf("bead-p%d-heaven", bead.PlaceValue)
	}
	return fmt.Sprintf("bead-p%d-earth-%d", bead.PlaceValue, bead.Position)
}

func formatFloat(val float64) string {
	return strconv.FormatFloat(val, 'f', -1, 64)
}
