package engine

import (
	"fmt"
	"strings"
)

// ============================================================
// State Diff Engine
// ============================================================

// DiffStates вычисляет упорядоченный набор изменений бусин от from к to.
// Сначала идут все снятия, затем все установки — так ученик освобождает
// бусины до того, как ставить новые. Земные бусины ставятся от планки
// наружу и снимаются в обратном порядке.
func DiffStates(from, to AbacusState) DiffResult {
	places := len(to)
	if len(from) > places {
		places = len(from)
	}

	var removals, additions []BeadChange
	for place := 0; place < places; place++ {
		var fromBead, toBead BeadState
		if place < len(from) {
			fromBead = from[place]
		}
		if place < len(to) {
			toBead = to[place]
		}

		if fromBead.HeavenActive && !toBead.HeavenActive {
			removals = append(removals, beadChange(place, BeadHeaven, 0, Deactivate))
		}
		if !fromBead.HeavenActive && toBead.HeavenActive {
			additions = append(additions, beadChange(place, BeadHeaven, 0, Activate))
		}

		switch {
		case toBead.EarthActive > fromBead.EarthActive:
			for pos := fromBead.EarthActive; pos < toBead.EarthActive; pos++ {
				additions = append(additions, beadChange(place, BeadEarth, pos, Activate))
			}
		case toBead.EarthActive < fromBead.EarthActive:
			for pos := fromBead.EarthActive - 1; pos >= toBead.EarthActive; pos-- {
				removals = append(removals, beadChange(place, BeadEarth, pos, Deactivate))
			}
		}
	}

	changes := make([]BeadChange, 0, len(removals)+len(additions))
	changes = append(changes, removals...)
	changes = append(changes, additions...)

	highlights := make([]PlaceValueBead, len(changes))
	for i := range changes {
		changes[i].Order = i
		highlights[i] = changes[i].PlaceValueBead
	}

	return DiffResult{
		Changes:    changes,
		Highlights: highlights,
		HasChanges: len(changes) > 0,
		Summary:    buildSummary(changes),
	}
}

// DiffValues — дифф между двумя значениями через кодек.
func DiffValues(from, to uint64, maxPlaces int) DiffResult {
	if maxPlaces < 1 {
		maxPlaces = DefaultColumns
	}
	return DiffStates(NumberToState(from, maxPlaces), NumberToState(to, maxPlaces))
}

func beadChange(place int, beadType BeadType, position int, direction Direction) BeadChange {
	return BeadChange{
		PlaceValueBead: PlaceValueBead{PlaceValue: place, Type: beadType, Position: position},
		Direction:      direction,
	}
}

// ============================================================
// Summary
// ============================================================

// buildSummary собирает текстовую инструкцию по списку изменений.
// Одинаковые ходы в одной колонке схлопываются в один фрагмент;
// порядок изменений гарантирует, что они соседствуют в списке.
func buildSummary(changes []BeadChange) string {
	if len(changes) == 0 {
		return "No changes needed"
	}

	type group struct {
		direction Direction
		place     int
		beadType  BeadType
		count     int
	}
	var groups []group
	for _, change := range changes {
		last := len(groups) - 1
		if last >= 0 &&
			groups[last].direction == change.Direction &&
			groups[last].place == change.PlaceValue &&
			groups[last].beadType == change.Type {
			groups[last].count++
			continue
		}
		groups = append(groups, group{change.Direction, change.PlaceValue, change.Type, 1})
	}

	parts := make([]string, 0, len(groups))
	for _, g := range groups {
		verb := "add"
		if g.direction == Deactivate {
			verb = "remove"
		}
		switch {
		case g.beadType == BeadHeaven:
			parts = append(parts, fmt.Sprintf("%s heaven bead in %s", verb, PlaceName(g.place)))
		case g.count == 1:
			parts = append(parts, fmt.Sprintf("%s 1 earth bead in %s", verb, PlaceName(g.place)))
		default:
			parts = append(parts, fmt.Sprintf("%s %d earth beads in %s", verb, g.count, PlaceName(g.place)))
		}
	}
	return strings.Join(parts, ", then ")
}

// PlaceName возвращает название колонки для текстов инструкций.
func PlaceName(place int) string {
	switch place {
	case 0:
		return "ones column"
	case 1:
		return "tens column"
	case 2:
		return "hundreds column"
	case 3:
		return "thousands column"
	}
	return fmt.Sprintf("place %d column", place)
}
