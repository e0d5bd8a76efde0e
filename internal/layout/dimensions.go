// Package layout вычисляет геометрию абакуса: размеры рамки и
// координаты бусин. Все вычисления детерминированы — одинаковые
// входы всегда дают одинаковые координаты.
package layout

// ============================================================
// Base Geometry
// ============================================================

// Базовые размеры при scale = 1.0, в условных единицах SVG.
const (
	baseBeadWidth    = 24.0
	baseBeadHeight   = 16.0
	baseRodSpacing   = 48.0
	baseRodWidth     = 4.0
	baseHeavenHeight = 56.0
	baseEarthHeight  = 112.0
	baseBarHeight    = 6.0
	basePadding      = 16.0
	baseNumbersBand  = 28.0
	baseLabelsBand   = 22.0
)

const (
	minScale = 0.1
	maxScale = 1.0
)

type Options struct {
	// ScaleFactor масштабирует все размеры; 0 трактуется как 1.0.
	ScaleFactor float64
	// ShowNumbers резервирует полосу под цифры под рамкой.
	ShowNumbers bool
	// ShowLabels резервирует полосу под названия колонок над рамкой.
	ShowLabels bool
}

// Dimensions — полная геометрия рамки. Все координаты в системе SVG:
// начало в левом верхнем углу, ось Y вниз.
type Dimensions struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`

	Columns int `json:"columns"`

	RodSpacing float64 `json:"rodSpacing"`
	RodWidth   float64 `json:"rodWidth"`
	BeadWidth  float64 `json:"beadWidth"`
	BeadHeight float64 `json:"beadHeight"`

	HeavenTop   float64 `json:"heavenTop"`
	BarY        float64 `json:"barY"`
	BarHeight   float64 `json:"barHeight"`
	EarthTop    float64 `json:"earthTop"`
	EarthBottom float64 `json:"earthBottom"`
	PaddingX    float64 `json:"paddingX"`
	PaddingY    float64 `json:"paddingY"`
	NumbersY    float64 `json:"numbersY,omitempty"`
	LabelsY     float64 `json:"labelsY,omitempty"`
	FontSize    float64 `json:"fontSize"`
	ScaleFactor float64 `json:"scaleFactor"`
}

// Calculate вычисляет геометрию рамки для заданного числа колонок.
func Calculate(columns int, opts Options) Dimensions {
	if columns < 1 {
		columns = 1
	}
	scale := opts.ScaleFactor
	if scale <= 0 {
		scale = 1.0
	}
	scale = clamp(scale, minScale, maxScale)

	dims := Dimensions{
		Columns:     columns,
		RodSpacing:  baseRodSpacing * scale,
		RodWidth:    baseRodWidth * scale,
		BeadWidth:   baseBeadWidth * scale,
		BeadHeight:  baseBeadHeight * scale,
		BarHeight:   baseBarHeight * scale,
		PaddingX:    basePadding * scale,
		PaddingY:    basePadding * scale,
		FontSize:    baseBeadHeight * scale,
		ScaleFactor: scale,
	}

	labelsBand := 0.0
	if opts.ShowLabels {
		labelsBand = baseLabelsBand * scale
	}
	numbersBand := 0.0
	if opts.ShowNumbers {
		numbersBand = baseNumbersBand * scale
	}

	heavenHeight := baseHeavenHeight * scale
	earthHeight := baseEarthHeight * scale

	dims.HeavenTop = dims.PaddingY + labelsBand
	dims.BarY = dims.HeavenTop + heavenHeight
	dims.EarthTop = dims.BarY + dims.BarHeight
	dims.EarthBottom = dims.EarthTop + earthHeight

	if opts.ShowLabels {
		dims.LabelsY = dims.PaddingY + labelsBand/2
	}
	if opts.ShowNumbers {
		dims.NumbersY = dims.EarthBottom + numbersBand/2
	}

	dims.Width = dims.PaddingX*2 + float64(columns)*dims.RodSpacing
	dims.Height = dims.EarthBottom + numbersBand + dims.PaddingY

	return dims
}

// RodX возвращает координату X оси колонки. Колонки нумеруются
// разрядами: place 0 — крайняя правая.
func (d Dimensions) RodX(place int) float64 {
	column := d.Columns - 1 - place
	return d.PaddingX + (float64(column)+0.5)*d.RodSpacing
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
