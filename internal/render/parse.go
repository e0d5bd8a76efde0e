package render

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	"soroban/internal/engine"
)

// ============================================================
// XML Structures
// ============================================================

type svgDoc struct {
	XMLName xml.Name  `xml:"svg"`
	Columns string    `xml:"data-columns,attr"`
	Circles []svgBead `xml:"circle"`
	Rects   []svgBead `xml:"rect"`
	Paths   []svgBead `xml:"path"`
}

type svgBead struct {
	ID     string `xml:"id,attr"`
	Active string `xml:"data-active,attr"`
}

// ============================================================
// Parser
// ============================================================

// Parse восстанавливает состояние абакуса из SVG-карточки.
// Карточка должна быть сгенерирована Renderer или совместима с его
// разметкой: бусины с id вида bead-p<place>-heaven / bead-p<place>-earth-<pos>
// и атрибутом data-active.
func Parse(r io.Reader) (engine.AbacusState, error) {
	var doc svgDoc
	decoder := xml.NewDecoder(r)
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode svg: %w", err)
	}

	columns := 0
	if doc.Columns != "" {
		parsed, err := strconv.Atoi(doc.Columns)
		if err != nil {
			return nil, fmt.Errorf("invalid data-columns %q", doc.Columns)
		}
		columns = parsed
	}

	var beads []svgBead
	beads = append(beads, doc.Circles...)
	beads = append(beads, doc.Rects...)
	beads = append(beads, doc.Paths...)

	earthActive := map[int]map[int]bool{}
	heavenActive := map[int]bool{}
	maxPlace := -1

	for _, elem := range beads {
		place, beadType, position, ok := parseBeadID(elem.ID)
		if !ok {
			continue
		}
		if place > maxPlace {
			maxPlace = place
		}
		if elem.Active != "true" {
			continue
		}

		if beadType == engine.BeadHeaven {
			heavenActive[place] = true
			continue
		}
		if earthActive[place] == nil {
			earthActive[place] = map[int]bool{}
		}
		earthActive[place][position] = true
	}

	if columns < 1 {
		columns = maxPlace + 1
	}
	if columns < 1 {
		return nil, fmt.Errorf("svg contains no beads and no data-columns")
	}

	state := make(engine.AbacusState, columns)
	for place := range state {
		state[place].HeavenActive = heavenActive[place]

		active := earthActive[place]
		state[place].EarthActive = len(active)
		// Активные земные должны занимать позиции 0..n-1 без разрывов.
		for pos := 0; pos < len(active); pos++ {
			if !active[pos] {
				return nil, fmt.Errorf("earth beads not contiguous at place %d", place)
			}
		}
	}

	return state, nil
}

// parseBeadID разбирает id бусины: bead-p3-heaven, bead-p0-earth-2.
func parseBeadID(id string) (place int, beadType engine.BeadType, position int, ok bool) {
	if !strings.HasPrefix(id, "bead-p") {
		return 0, "", 0, false
	}

	parts := strings.Split(strings.TrimPrefix(id, "bead-p"), "-")
	if len(parts) < 2 {
		return 0, "", 0, false
	}

	place, err := strconv.Atoi(parts[0])
	if err != nil || place < 0 {
		return 0, "", 0, false
	}

	switch parts[1] {
	case "heaven":
		if len(parts) != 2 {
			return 0, "", 0, false
		}
		return place, engine.BeadHeaven, 0, true
	case "earth":
		if len(parts) != 3 {
			return 0, "", 0, false
		}
		position, err = strconv.Atoi(parts[2])
		if err != nil || position < 0 || position >= engine.EarthBeadsPerColumn {
			return 0, "", 0, false
		}
		return place, engine.BeadEarth, position, true
	}
	return 0, "", 0, false
}
