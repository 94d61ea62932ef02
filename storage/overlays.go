package storage

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// SavedOverlay is one entry in the overlay library: a finished program saved
// for reuse outside the session it was built in.
type SavedOverlay struct {
	ID            string
	Name          string
	Description   string
	Program       string
	LayoutJSON    string // serialized placement hint, may be empty
	Tags          string // comma-separated
	SourceSession string // session the overlay was saved from
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type OverlayLibrary struct {
	db *sql.DB
}

func NewOverlayLibrary(dataDir string) (*OverlayLibrary, error) {
	dbPath := filepath.Join(dataDir, "overlays.db")

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	lib := &OverlayLibrary{db: db}

	if err := lib.initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return lib, nil
}

func (ol *OverlayLibrary) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS overlays (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT,
		program TEXT NOT NULL,
		layout TEXT,
		tags TEXT,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_overlays_name ON overlays(name);
	`

	_, err := ol.db.Exec(schema)
	if err != nil {
		return err
	}

	// Migration: databases created before session provenance was tracked
	// lack the source_session column.
	if err := ol.migrateSchema(); err != nil {
		return fmt.Errorf("schema migration failed: %w", err)
	}

	return nil
}

func (ol *OverlayLibrary) migrateSchema() error {
	hasSourceSession, err := ol.columnExists("overlays", "source_session")
	if err != nil {
		return fmt.Errorf("failed to check for source_session column: %w", err)
	}

	if !hasSourceSession {
		_, err := ol.db.Exec(`ALTER TABLE overlays ADD COLUMN source_session TEXT DEFAULT ''`)
		if err != nil {
			return fmt.Errorf("failed to add source_session column: %w", err)
		}
	}

	return nil
}

// columnExists checks if a column exists in a table using PRAGMA table_info
func (ol *OverlayLibrary) columnExists(tableName, columnName string) (bool, error) {
	query := fmt.Sprintf("PRAGMA table_info(%s)", tableName)
	rows, err := ol.db.Query(query)
	if err != nil {
		return false, err
	}
	defer rows.Close()

	for rows.Next() {
		var cid int
		var name string
		var dataType string
		var notNull int
		var defaultValue interface{}
		var pk int

		if err := rows.Scan(&cid, &name, &dataType, &notNull, &defaultValue, &pk); err != nil {
			return false, err
		}
		if name == columnName {
			return true, nil
		}
	}

	return false, rows.Err()
}

func (ol *OverlayLibrary) Save(overlay SavedOverlay) error {
	if overlay.Program == "" {
		return fmt.Errorf("cannot save overlay %q with empty program", overlay.Name)
	}

	query := `
	INSERT OR REPLACE INTO overlays (id, name, description, program, layout, tags, source_session, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := ol.db.Exec(query,
		overlay.ID,
		overlay.Name,
		overlay.Description,
		overlay.Program,
		overlay.LayoutJSON,
		overlay.Tags,
		overlay.SourceSession,
		overlay.CreatedAt,
		overlay.UpdatedAt,
	)

	return err
}

func (ol *OverlayLibrary) Load(id string) (*SavedOverlay, error) {
	query := `
	SELECT id, name, description, program, layout, tags, source_session, created_at, updated_at
	FROM overlays
	WHERE id = ?
	`

	var overlay SavedOverlay
	err := ol.db.QueryRow(query, id).Scan(
		&overlay.ID,
		&overlay.Name,
		&overlay.Description,
		&overlay.Program,
		&overlay.LayoutJSON,
		&overlay.Tags,
		&overlay.SourceSession,
		&overlay.CreatedAt,
		&overlay.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &overlay, nil
}

func (ol *OverlayLibrary) List() ([]SavedOverlay, error) {
	query := `
	SELECT id, name, description, program, layout, tags, source_session, created_at, updated_at
	FROM overlays
	ORDER BY updated_at DESC
	`

	rows, err := ol.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var overlays []SavedOverlay
	for rows.Next() {
		var overlay SavedOverlay
		err := rows.Scan(
			&overlay.ID,
			&overlay.Name,
			&overlay.Description,
			&overlay.Program,
			&overlay.LayoutJSON,
			&overlay.Tags,
			&overlay.SourceSession,
			&overlay.CreatedAt,
			&overlay.UpdatedAt,
		)
		if err != nil {
			continue
		}
		overlays = append(overlays, overlay)
	}

	return overlays, rows.Err()
}

// FindByTag lists overlays whose tags include the given tag.
func (ol *OverlayLibrary) FindByTag(tag string) ([]SavedOverlay, error) {
	all, err := ol.List()
	if err != nil {
		return nil, err
	}

	tag = strings.ToLower(strings.TrimSpace(tag))
	var matched []SavedOverlay
	for _, overlay := range all {
		for _, t := range strings.Split(overlay.Tags, ",") {
			if strings.ToLower(strings.TrimSpace(t)) == tag {
				matched = append(matched, overlay)
				break
			}
		}
	}
	return matched, nil
}

func (ol *OverlayLibrary) Delete(id string) error {
	query := `DELETE FROM overlays WHERE id = ?`
	_, err := ol.db.Exec(query, id)
	return err
}

func (ol *OverlayLibrary) Close() error {
	return ol.db.Close()
}
