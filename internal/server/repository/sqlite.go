package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"soroban/internal/deck"
)

// ============================================================
// SQLite Preset Repository
// ============================================================

var ErrNotFound = errors.New("preset not found")

type Preset struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Config    deck.Config `json:"config"`
	CreatedAt string      `json:"createdAt"`
}

type Repository struct {
	db *sql.DB
}

func New(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Init запускает миграции и убеждается в наличии пресетов по умолчанию.
func (r *Repository) Init(ctx context.Context, migrationsPath string) error {
	if err := r.runMigrations(migrationsPath); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}
	return r.ensureDefaults(ctx)
}

func (r *Repository) List(ctx context.Context) ([]Preset, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT id, name, config, created_at
        FROM presets
        ORDER BY created_at, name
    `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var presets []Preset
	for rows.Next() {
		preset, err := scanPreset(rows.Scan)
		if err != nil {
			return nil, err
		}
		presets = append(presets, preset)
	}
	return presets, rows.Err()
}

func (r *Repository) GetByID(ctx context.Context, id string) (*Preset, error) {
	row := r.db.QueryRowContext(ctx, `
        SELECT id, name, config, created_at
        FROM presets
        WHERE id = ?
    `, id)

	preset, err := scanPreset(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &preset, nil
}

func (r *Repository) Create(ctx context.Context, name string, cfg deck.Config) (*Preset, error) {
	return r.insert(ctx, uuid.NewString(), name, cfg)
}

func (r *Repository) Update(ctx context.Context, id, name string, cfg deck.Config) (*Preset, error) {
	raw, err := json.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}

	result, err := r.db.ExecContext(ctx, `
        UPDATE presets SET name = ?, config = ? WHERE id = ?
    `, name, string(raw), id)
	if err != nil {
		return nil, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM presets WHERE id = ?`, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Ping проверяет доступность базы (для readiness probe).
func (r *Repository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *Repository) insert(ctx context.Context, id, name string, cfg deck.Config) (*Preset, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	raw, err := json.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
        INSERT INTO presets (id, name, config)
        VALUES (?, ?, ?)
    `, id, name, string(raw))
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func scanPreset(scan func(dest ...any) error) (Preset, error) {
	var preset Preset
	var raw string
	if err := scan(&preset.ID, &preset.Name, &raw, &preset.CreatedAt); err != nil {
		return Preset{}, err
	}
	if err := json.Unmarshal([]byte(raw), &preset.Config); err != nil {
		return Preset{}, fmt.Errorf("decode preset config: %w", err)
	}
	return preset, nil
}

// ============================================================
// Migrations & Seeding
// ============================================================

func (r *Repository) runMigrations(migrationsPath string) error {
	data, err := os.ReadFile(migrationsPath)
	if err != nil {
		return fmt.Errorf("read migration: %w", err)
	}
	if _, err := r.db.Exec(string(data)); err != nil {
		return fmt.Errorf("apply migration: %w", err)
	}
	return nil
}

// Пресеты, которые всегда должны существовать после старта.
func (r *Repository) ensureDefaults(ctx context.Context) error {
	defaults := []struct {
		id   string
		name string
		cfg  func() deck.Config
	}{
		{
			id:   "11111111-1111-1111-1111-111111111111",
			name: "single-digits",
			cfg: func() deck.Config {
				cfg := deck.DefaultConfig()
				cfg.Name = "Single Digits"
				cfg.Range = "0-9"
				return cfg
			},
		},
		{
			id:   "22222222-2222-2222-2222-222222222222",
			name: "double-digits",
			cfg: func() deck.Config {
				cfg := deck.DefaultConfig()
				cfg.Name = "Double Digits"
				cfg.Range = "10-99"
				cfg.Shuffle = true
				return cfg
			},
		},
		{
			id:   "33333333-3333-3333-3333-333333333333",
			name: "fives-practice",
			cfg: func() deck.Config {
				cfg := deck.DefaultConfig()
				cfg.Name = "Counting by Fives"
				cfg.Range = "0-100"
				cfg.Step = 5
				cfg.ColorScheme = "heaven-earth"
				return cfg
			},
		},
	}

	for _, preset := range defaults {
		_, err := r.GetByID(ctx, preset.id)
		if err == nil {
			continue
		}
		if !errors.Is(err, ErrNotFound) {
			return err
		}
		if _, err := r.insert(ctx, preset.id, preset.name, preset.cfg()); err != nil {
			return fmt.Errorf("seed preset %s: %w", preset.name, err)
		}
	}
	return nil
}

// OpenSQLite открывает sqlite по указанному пути.
func OpenSQLite(dbPath string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir db dir: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?cache=shared&mode=rwc&_pragma=busy_timeout=5000", dbPath)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	return db, nil
}
