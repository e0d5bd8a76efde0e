package deck

import (
	"fmt"
	"html/template"
	"io"
	"strings"

	"soroban/internal/render"
)

// ============================================================
// HTML Gallery
// ============================================================

const galleryHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Name}}</title>
<style>
  body { font-family: sans-serif; margin: 2rem; background: #fafafa; color: #222; }
  h1 { font-weight: 500; }
  .meta { color: #777; }
  .instructions { background: #fff; border: 1px solid #ddd; border-radius: 8px; padding: 1rem; margin-bottom: 1rem; }
  .instructions h3 { margin-top: 0; }
  .stats { display: flex; flex-wrap: wrap; gap: .5rem; margin-top: .75rem; }
  .stats div { background: #f0f0f0; border-radius: 6px; padding: .4rem .75rem; font-size: .9em; }
  .grid { display: grid; grid-template-columns: repeat(auto-fill, minmax(220px, 1fr)); gap: 1rem; }
  .card { background: #fff; border: 1px solid #ddd; border-radius: 8px; padding: 1rem; text-align: center; }
  .card svg { max-width: 100%; height: auto; }
  .numeral { margin-top: .5rem; font-size: 1.5rem; opacity: 0; transition: opacity .15s; }
  .card:hover .numeral { opacity: 1; }
  @media print {
    body { background: #fff; }
    .instructions, .meta { display: none; }
    .card { break-inside: avoid; }
    .grid .card:nth-child({{.CardsPerPage}}n) { break-after: page; }
    .numeral { opacity: .5; }
  }
</style>
</head>
<body>
<h1>{{.Name}}</h1>
<p class="meta">{{.Count}} cards &middot; hover a card to reveal its number</p>
<div class="instructions">
<h3>How to use these flashcards</h3>
<p>Read each abacus and work out the number before hovering to check the
answer. Every column is one place value; the bead above the bar counts as
five, each bead below it counts as one.</p>
<div class="stats">
  <div><strong>Cards:</strong> {{.Count}}</div>
  <div><strong>Range:</strong> {{.Range}}</div>
  <div><strong>Color Scheme:</strong> {{.SchemeDescription}}</div>
  <div><strong>Bead Shape:</strong> {{.BeadShape}}</div>
</div>
</div>
<div class="grid">
{{- range .Cards}}
  <div class="card" id="card-{{.Index}}">
    {{.SVG}}
    <div class="numeral" style="color: {{.Color}}">{{.Number}}</div>
  </div>
{{- end}}
</div>
<p class="meta">Tip: print this page for offline practice; the numbers stay faintly visible.</p>
</body>
</html>
`

var galleryTemplate = template.Must(template.New("gallery").Parse(galleryHTML))

// Описания схем раскраски для блока статистики.
var schemeDescriptions = map[render.ColorScheme]string{
	render.SchemeMonochrome:  "All beads are the same color",
	render.SchemePlaceValue:  "Each place value (ones, tens, hundreds) has a different color",
	render.SchemeHeavenEarth: "Heaven beads (5-value) and earth beads (1-value) have different colors",
	render.SchemeAlternating: "Columns alternate between two colors",
}

type galleryCard struct {
	Index  int
	Number string
	SVG    template.HTML
	Color  string
}

type galleryData struct {
	Name              string
	Count             int
	Range             string
	SchemeDescription string
	BeadShape         string
	CardsPerPage      int
	Cards             []galleryCard
}

// WriteHTML пишет галерею колоды: блок инструкции со статистикой,
// сетка карточек, цифра показывается при наведении. В печати карточки
// бьются на страницы по cards_per_page.
func (d *Deck) WriteHTML(w io.Writer) error {
	cardsPerPage := d.Config.CardsPerPage
	if cardsPerPage < 1 {
		cardsPerPage = DefaultConfig().CardsPerPage
	}

	data := galleryData{
		Name:              d.Name,
		Count:             len(d.Cards),
		Range:             d.Config.Range,
		SchemeDescription: describeScheme(d.Config.ColorScheme),
		BeadShape:         capitalize(string(d.Config.BeadShape)),
		CardsPerPage:      cardsPerPage,
		Cards:             make([]galleryCard, 0, len(d.Cards)),
	}

	numeralColor := galleryNumeralColor(d.Config)
	for _, card := range d.Cards {
		data.Cards = append(data.Cards, galleryCard{
			Index:  card.Index,
			Number: card.Number,
			SVG:    template.HTML(inlineSVG(card.SVG)),
			Color:  numeralColor,
		})
	}

	if err := galleryTemplate.Execute(w, data); err != nil {
		return fmt.Errorf("render gallery: %w", err)
	}
	return nil
}

// galleryNumeralColor выбирает цвет цифр галереи: без colored_numerals
// цифры всегда темно-серые, с ним цветные схемы берут чуть более
// темный тон для читаемости.
func galleryNumeralColor(cfg Config) string {
	if !cfg.ColoredNumerals || cfg.ColorScheme == render.SchemeMonochrome {
		return "#333"
	}
	return "#222"
}

func describeScheme(scheme render.ColorScheme) string {
	if description, ok := schemeDescriptions[scheme]; ok {
		return description
	}
	return schemeDescriptions[render.SchemeMonochrome]
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// inlineSVG убирает XML-декларацию: внутри HTML она недопустима.
func inlineSVG(svg string) string {
	if idx := strings.Index(svg, "?>"); idx >= 0 && strings.HasPrefix(svg, "<?xml") {
		return strings.TrimLeft(svg[idx+2:], "\n")
	}
	return svg
}
