package deck

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// ============================================================
// File Output
// ============================================================

type FileWriter struct {
	root string
}

func NewFileWriter(root string) *FileWriter {
	return &FileWriter{root: root}
}

func (w *FileWriter) DeckDir(name string) string {
	return filepath.Join(w.root, name)
}

func (w *FileWriter) CardPath(name string, index int) string {
	return filepath.Join(w.DeckDir(name), fmt.Sprintf("card_%03d.svg", index))
}

func (w *FileWriter) GalleryPath(name string) string {
	return filepath.Join(w.DeckDir(name), "index.html")
}

func (w *FileWriter) ManifestPath(name string) string {
	return filepath.Join(w.DeckDir(name), "deck.json")
}

func (w *FileWriter) EnsureDeckDir(name string) error {
	if err := os.MkdirAll(w.DeckDir(name), 0o755); err != nil {
		return fmt.Errorf("mkdir deck dir: %w", err)
	}
	return nil
}

// WriteDeck раскладывает колоду по файлам: SVG на карточку,
// HTML-галерея и JSON-манифест.
func (w *FileWriter) WriteDeck(name string, d *Deck) error {
	if err := w.EnsureDeckDir(name); err != nil {
		return err
	}

	for _, card := range d.Cards {
		path := w.CardPath(name, card.Index)
		if err := os.WriteFile(path, []byte(card.SVG), 0o644); err != nil {
			return fmt.Errorf("write card %d: %w", card.Index, err)
		}
	}

	gallery, err := os.Create(w.GalleryPath(name))
	if err != nil {
		return fmt.Errorf("create gallery: %w", err)
	}
	defer gallery.Close()
	if err := d.WriteHTML(gallery); err != nil {
		return err
	}

	manifest, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	if err := os.WriteFile(w.ManifestPath(name), manifest, 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}

	return nil
}
