package render

import "soroban/internal/engine"

// ============================================================
// Shapes & Color Schemes
// ============================================================

type BeadShape string

const (
	ShapeDiamond BeadShape = "diamond"
	ShapeCircle  BeadShape = "circle"
	ShapeSquare  BeadShape = "square"
)

type ColorScheme string

const (
	SchemeMonochrome  ColorScheme = "monochrome"
	SchemePlaceValue  ColorScheme = "place-value"
	SchemeHeavenEarth ColorScheme = "heaven-earth"
	SchemeAlternating ColorScheme = "alternating"
)

const (
	monochromeColor = "#333"
	numeralColor    = "#222"

	frameColor = "#5d4037"
	rodColor   = "#8d6e63"
	barColor   = "#3e2723"
)

// Палитра place-value, циклится по разрядам начиная с единиц.
var placeValuePalette = []string{
	"#1f77b4", "#d62728", "#2ca02c", "#9467bd", "#ff7f0e", "#17becf",
}

// BeadColor возвращает цвет бусины для схемы раскраски.
func BeadColor(scheme ColorScheme, place int, beadType engine.BeadType) string {
	switch scheme {
	case SchemePlaceValue:
		return placeValuePalette[place%len(placeValuePalette)]
	case SchemeHeavenEarth:
		if beadType == engine.BeadHeaven {
			return "#d62728"
		}
		return "#1f77b4"
	case SchemeAlternating:
		if place%2 == 0 {
			return "#1f77b4"
		}
		return "#2ca02c"
	}
	return monochromeColor
}

// NumeralColor возвращает цвет цифр под колонками.
// При ColoredNumerals цифра берет цвет земных бусин своей колонки.
func NumeralColor(scheme ColorScheme, place int, colored bool) string {
	if colored && scheme != SchemeMonochrome {
		return BeadColor(scheme, place, engine.BeadEarth)
	}
	if scheme == SchemeMonochrome {
		return monochromeColor
	}
	return numeralColor
}

func validShape(shape BeadShape) bool {
	switch shape {
	case ShapeDiamond, ShapeCircle, ShapeSquare:
		return true
	}
	return false
}

func validScheme(scheme ColorScheme) bool {
	switch scheme {
	case SchemeMonochrome, SchemePlaceValue, SchemeHeavenEarth, SchemeAlternating:
		return true
	}
	return false
}
