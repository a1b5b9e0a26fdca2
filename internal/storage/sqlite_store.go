package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"cuemark/internal/models"
)

// SQLiteStore is the alternative backend, selected when the config path ends
// in ".db". Marker and project rows carry a position column so collection
// order survives the round trip exactly as the JSON slots would keep it.
type SQLiteStore struct {
	path string
	db   *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

const schema = `
CREATE TABLE IF NOT EXISTS projects (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	audio_file TEXT NOT NULL DEFAULT '',
	duration REAL NOT NULL DEFAULT 0,
	position INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS markers (
	id TEXT PRIMARY KEY,
	project_id TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
	timestamp REAL NOT NULL,
	context TEXT NOT NULL DEFAULT '',
	type TEXT NOT NULL,
	status TEXT NOT NULL,
	position INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS categories (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	color TEXT NOT NULL,
	position INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_markers_project ON markers(project_id, position);
`

func (s *SQLiteStore) Init() error {
	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	if err := s.open(); err != nil {
		return err
	}
	for _, c := range DefaultCategories() {
		if err := s.AddCategory(c); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLiteStore) open() error {
	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	s.db = db
	return nil
}

func (s *SQLiteStore) Load() error {
	if s.db != nil {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	return s.open()
}

func (s *SQLiteStore) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *SQLiteStore) ensureLoaded() error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}
	return nil
}

func (s *SQLiteStore) nextPosition(table string) (int, error) {
	var pos sql.NullInt64
	if err := s.db.QueryRow(fmt.Sprintf("SELECT MAX(position) FROM %s", table)).Scan(&pos); err != nil {
		return 0, err
	}
	return int(pos.Int64) + 1, nil
}

func (s *SQLiteStore) AddProject(p models.Project) error {
	if err := s.ensureLoaded(); err != nil {
		return err
	}
	pos, err := s.nextPosition("projects")
	if err != nil {
		return err
	}
	p = p.Sanitized()
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		"INSERT INTO projects (id, title, audio_file, duration, position) VALUES (?, ?, ?, ?, ?)",
		p.ID, p.Title, p.AudioFile, p.Duration, pos,
	); err != nil {
		return fmt.Errorf("failed to insert project: %w", err)
	}
	if err := insertMarkers(tx, p.ID, p.Markers); err != nil {
		return err
	}
	return tx.Commit()
}

func insertMarkers(tx *sql.Tx, projectID string, markers []models.Marker) error {
	for i, m := range markers {
		if _, err := tx.Exec(
			"INSERT INTO markers (id, project_id, timestamp, context, type, status, position) VALUES (?, ?, ?, ?, ?, ?, ?)",
			m.ID, projectID, m.Timestamp, m.Context, m.Type, string(m.Status), i,
		); err != nil {
			return fmt.Errorf("failed to insert marker: %w", err)
		}
	}
	return nil
}

func (s *SQLiteStore) loadMarkers(projectID string) ([]models.Marker, error) {
	rows, err := s.db.Query(
		"SELECT id, timestamp, context, type, status FROM markers WHERE project_id = ? ORDER BY position",
		projectID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	markers := []models.Marker{}
	for rows.Next() {
		var m models.Marker
		var status string
		if err := rows.Scan(&m.ID, &m.Timestamp, &m.Context, &m.Type, &status); err != nil {
			return nil, err
		}
		m.Status = models.MarkerStatus(status)
		markers = append(markers, m)
	}
	return markers, rows.Err()
}

func (s *SQLiteStore) GetProject(id string) (models.Project, error) {
	if err := s.ensureLoaded(); err != nil {
		return models.Project{}, err
	}
	var p models.Project
	err := s.db.QueryRow(
		"SELECT id, title, audio_file, duration FROM projects WHERE id = ?", id,
	).Scan(&p.ID, &p.Title, &p.AudioFile, &p.Duration)
	if err == sql.ErrNoRows {
		return models.Project{}, fmt.Errorf("project not found: %s", id)
	}
	if err != nil {
		return models.Project{}, err
	}
	p.Markers, err = s.loadMarkers(id)
	return p, err
}

func (s *SQLiteStore) GetAllProjects() ([]models.Project, error) {
	if err := s.ensureLoaded(); err != nil {
		return nil, err
	}
	rows, err := s.db.Query("SELECT id FROM projects ORDER BY position")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	projects := make([]models.Project, 0, len(ids))
	for _, id := range ids {
		p, err := s.GetProject(id)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, nil
}

func (s *SQLiteStore) UpdateProject(p models.Project) error {
	if err := s.ensureLoaded(); err != nil {
		return err
	}
	p = p.Sanitized()
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		"UPDATE projects SET title = ?, audio_file = ?, duration = ? WHERE id = ?",
		p.Title, p.AudioFile, p.Duration, p.ID,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("project not found: %s", p.ID)
	}
	if _, err := tx.Exec("DELETE FROM markers WHERE project_id = ?", p.ID); err != nil {
		return err
	}
	if err := insertMarkers(tx, p.ID, p.Markers); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *SQLiteStore) DeleteProject(id string) error {
	if err := s.ensureLoaded(); err != nil {
		return err
	}
	res, err := s.db.Exec("DELETE FROM projects WHERE id = ?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("project not found: %s", id)
	}
	return nil
}

func (s *SQLiteStore) ReplaceMarkers(projectID string, markers []models.Marker) error {
	if err := s.ensureLoaded(); err != nil {
		return err
	}
	var exists int
	if err := s.db.QueryRow("SELECT COUNT(1) FROM projects WHERE id = ?", projectID).Scan(&exists); err != nil {
		return err
	}
	if exists == 0 {
		return fmt.Errorf("project not found: %s", projectID)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM markers WHERE project_id = ?", projectID); err != nil {
		return err
	}
	if err := insertMarkers(tx, projectID, markers); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *SQLiteStore) AddCategory(c models.Category) error {
	if err := s.ensureLoaded(); err != nil {
		return err
	}
	pos, err := s.nextPosition("categories")
	if err != nil {
		return err
	}
	if _, err := s.db.Exec(
		"INSERT INTO categories (id, name, color, position) VALUES (?, ?, ?, ?)",
		c.ID, c.Name, c.Color, pos,
	); err != nil {
		return fmt.Errorf("failed to insert category: %w", err)
	}
	return nil
}

func (s *SQLiteStore) GetCategory(id string) (models.Category, error) {
	if err := s.ensureLoaded(); err != nil {
		return models.Category{}, err
	}
	var c models.Category
	err := s.db.QueryRow(
		"SELECT id, name, color FROM categories WHERE id = ?", id,
	).Scan(&c.ID, &c.Name, &c.Color)
	if err == sql.ErrNoRows {
		return models.Category{}, fmt.Errorf("category not found: %s", id)
	}
	return c, err
}

func (s *SQLiteStore) GetAllCategories() ([]models.Category, error) {
	if err := s.ensureLoaded(); err != nil {
		return nil, err
	}
	rows, err := s.db.Query("SELECT id, name, color FROM categories ORDER BY position")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cats := []models.Category{}
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Color); err != nil {
			return nil, err
		}
		cats = append(cats, c)
	}
	return cats, rows.Err()
}

func (s *SQLiteStore) UpdateCategory(c models.Category) error {
	if err := s.ensureLoaded(); err != nil {
		return err
	}
	res, err := s.db.Exec(
		"UPDATE categories SET name = ?, color = ? WHERE id = ?",
		c.Name, c.Color, c.ID,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("category not found: %s", c.ID)
	}
	return nil
}

func (s *SQLiteStore) DeleteCategory(id string) error {
	if err := s.ensureLoaded(); err != nil {
		return err
	}
	res, err := s.db.Exec("DELETE FROM categories WHERE id = ?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("category not found: %s", id)
	}
	return nil
}

func (s *SQLiteStore) ReplaceCategories(cats []models.Category) error {
	if err := s.ensureLoaded(); err != nil {
		return err
	}
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM categories"); err != nil {
		return err
	}
	for i, c := range cats {
		if _, err := tx.Exec(
			"INSERT INTO categories (id, name, color, position) VALUES (?, ?, ?, ?)",
			c.ID, c.Name, c.Color, i,
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *SQLiteStore) DataPath() string {
	return s.path
}
