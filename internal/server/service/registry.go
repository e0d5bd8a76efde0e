package service

import (
	"sync"

	"soroban/internal/deck"
)

// ============================================================
// Deck Registry
// ============================================================

// Сколько сгенерированных колод держим в памяти, когда лимит не задан.
const defaultMaxDecks = 50

// Registry хранит сгенерированные колоды по id. Когда колод становится
// больше лимита, самые старые вытесняются.
type Registry struct {
	mu    sync.Mutex
	limit int
	decks map[string]*deck.Deck
	order []string
}

func NewRegistry(limit int) *Registry {
	if limit < 1 {
		limit = defaultMaxDecks
	}
	return &Registry{
		limit: limit,
		decks: make(map[string]*deck.Deck),
	}
}

func (r *Registry) Put(d *deck.Deck) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.decks[d.ID]; !ok {
		r.order = append(r.order, d.ID)
	}
	r.decks[d.ID] = d

	for len(r.order) > r.limit {
		oldest := r.order[0]
		r.order = r.order[1:]
		delete(r.decks, oldest)
	}
}

func (r *Registry) Get(id string) (*deck.Deck, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.decks[id]
	return d, ok
}

func (r *Registry) Delete(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.decks[id]; !ok {
		return false
	}
	delete(r.decks, id)
	for i, known := range r.order {
		if known == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.decks)
}
