package layout

import "soroban/internal/engine"

// ============================================================
// Bead Positions
// ============================================================

// BeadPosition возвращает центр бусины для заданной геометрии.
// Активные бусины прижаты к планке, неактивные отведены к краю секции.
func BeadPosition(bead engine.PlaceValueBead, active bool, dims Dimensions) (x, y float64) {
	x = dims.RodX(bead.PlaceValue)

	if bead.Type == engine.BeadHeaven {
		if active {
			y = dims.BarY - dims.BeadHeight/2
		} else {
			y = dims.HeavenTop + dims.BeadHeight/2
		}
		return x, y
	}

	// Земные: position 0 — ближняя к планке. Активные складываются
	// стопкой от планки вниз, неактивные лежат у нижнего края.
	if active {
		y = dims.EarthTop + (float64(bead.Position)+0.5)*dims.BeadHeight
	} else {
		rest := engine.EarthBeadsPerColumn - 1 - bead.Position
		y = dims.EarthBottom - (float64(rest)+0.5)*dims.BeadHeight
	}
	return x, y
}

type PlacedBead struct {
	engine.PlaceValueBead
	Active bool    `json:"active"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
}

// Beads перечисляет все бусины колонок с их координатами,
// слева направо, небесная прежде земных.
func Beads(state engine.AbacusState, dims Dimensions) []PlacedBead {
	beads := make([]PlacedBead, 0, dims.Columns*(engine.EarthBeadsPerColumn+1))
	for place := dims.Columns - 1; place >= 0; place-- {
		var column engine.BeadState
		if place < len(state) {
			column = state[place]
		}

		heaven := engine.PlaceValueBead{PlaceValue: place, Type: engine.BeadHeaven}
		x, y := BeadPosition(heaven, column.HeavenActive, dims)
		beads = append(beads, PlacedBead{PlaceValueBead: heaven, Active: column.HeavenActive, X: x, Y: y})

		for pos := 0; pos < engine.EarthBeadsPerColumn; pos++ {
			earth := engine.PlaceValueBead{PlaceValue: place, Type: engine.BeadEarth, Position: pos}
			active := pos < column.EarthActive
			x, y := BeadPosition(earth, active, dims)
			beads = append(beads, PlacedBead{PlaceValueBead: earth, Active: active, X: x, Y: y})
		}
	}
	return beads
}
