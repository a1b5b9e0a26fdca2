package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bytedance/sonic"

	"cuemark/internal/constants"
	"cuemark/internal/logger"
	"cuemark/internal/models"
)

// JSONStore keeps each collection in its own slot file under the data
// directory and rewrites the whole slot after every mutation. A slot that is
// missing or unreadable at load time falls back to the built-in defaults; the
// failure is logged, never surfaced.
type JSONStore struct {
	dir        string
	projects   []models.Project
	categories []models.Category
	loaded     bool
}

func NewJSONStore(dir string) *JSONStore {
	return &JSONStore{dir: dir}
}

func (s *JSONStore) projectsPath() string {
	return filepath.Join(s.dir, constants.ProjectsSlot)
}

func (s *JSONStore) categoriesPath() string {
	return filepath.Join(s.dir, constants.CategoriesSlot)
}

func (s *JSONStore) Init() error {
	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	if _, err := os.Stat(s.projectsPath()); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.dir)
	}

	s.projects = DefaultProjects()
	s.categories = DefaultCategories()
	s.loaded = true

	if err := s.saveProjects(); err != nil {
		return err
	}
	return s.saveCategories()
}

// Load reads both slots independently. Either slot failing to parse resets
// just that slot to its defaults.
func (s *JSONStore) Load() error {
	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	s.projects = DefaultProjects()
	if data, err := os.ReadFile(s.projectsPath()); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to read projects slot: %w", err)
		}
		logger.Debug("Projects slot absent, using defaults", "path", s.projectsPath())
	} else {
		var projects []models.Project
		if err := sonic.Unmarshal(data, &projects); err != nil {
			logger.Warn("Projects slot unreadable, falling back to defaults", "path", s.projectsPath(), "error", err)
		} else {
			s.projects = projects
		}
	}

	s.categories = DefaultCategories()
	if data, err := os.ReadFile(s.categoriesPath()); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to read categories slot: %w", err)
		}
		logger.Debug("Categories slot absent, using defaults", "path", s.categoriesPath())
	} else {
		var categories []models.Category
		if err := sonic.Unmarshal(data, &categories); err != nil {
			logger.Warn("Categories slot unreadable, falling back to defaults", "path", s.categoriesPath(), "error", err)
		} else {
			s.categories = categories
		}
	}

	s.loaded = true
	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) saveProjects() error {
	// Transient audio handles are stripped before serialization; they are
	// process-local and meaningless after a restart.
	sanitized := make([]models.Project, len(s.projects))
	for i, p := range s.projects {
		sanitized[i] = p.Sanitized()
	}

	data, err := sonic.MarshalIndent(sanitized, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize projects: %w", err)
	}
	if err := os.WriteFile(s.projectsPath(), data, 0600); err != nil {
		return fmt.Errorf("failed to write projects slot: %w", err)
	}
	return nil
}

func (s *JSONStore) saveCategories() error {
	data, err := sonic.MarshalIndent(s.categories, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize categories: %w", err)
	}
	if err := os.WriteFile(s.categoriesPath(), data, 0600); err != nil {
		return fmt.Errorf("failed to write categories slot: %w", err)
	}
	return nil
}

func (s *JSONStore) ensureLoaded() error {
	if !s.loaded {
		return fmt.Errorf("storage not loaded")
	}
	return nil
}

func (s *JSONStore) AddProject(p models.Project) error {
	if err := s.ensureLoaded(); err != nil {
		return err
	}
	for _, existing := range s.projects {
		if existing.ID == p.ID {
			return fmt.Errorf("project already exists: %s", p.ID)
		}
	}
	// Insertion order is the project list order.
	s.projects = append(s.projects, p)
	return s.saveProjects()
}

func (s *JSONStore) GetProject(id string) (models.Project, error) {
	if err := s.ensureLoaded(); err != nil {
		return models.Project{}, err
	}
	for _, p := range s.projects {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Project{}, fmt.Errorf("project not found: %s", id)
}

func (s *JSONStore) GetAllProjects() ([]models.Project, error) {
	if err := s.ensureLoaded(); err != nil {
		return nil, err
	}
	out := make([]models.Project, len(s.projects))
	copy(out, s.projects)
	return out, nil
}

func (s *JSONStore) UpdateProject(p models.Project) error {
	if err := s.ensureLoaded(); err != nil {
		return err
	}
	for i := range s.projects {
		if s.projects[i].ID == p.ID {
			s.projects[i] = p
			return s.saveProjects()
		}
	}
	return fmt.Errorf("project not found: %s", p.ID)
}

func (s *JSONStore) DeleteProject(id string) error {
	if err := s.ensureLoaded(); err != nil {
		return err
	}
	for i := range s.projects {
		if s.projects[i].ID == id {
			s.projects = append(s.projects[:i], s.projects[i+1:]...)
			return s.saveProjects()
		}
	}
	return fmt.Errorf("project not found: %s", id)
}

func (s *JSONStore) ReplaceMarkers(projectID string, markers []models.Marker) error {
	if err := s.ensureLoaded(); err != nil {
		return err
	}
	for i := range s.projects {
		if s.projects[i].ID == projectID {
			s.projects[i].Markers = make([]models.Marker, len(markers))
			copy(s.projects[i].Markers, markers)
			return s.saveProjects()
		}
	}
	return fmt.Errorf("project not found: %s", projectID)
}

func (s *JSONStore) AddCategory(c models.Category) error {
	if err := s.ensureLoaded(); err != nil {
		return err
	}
	for _, existing := range s.categories {
		if existing.ID == c.ID {
			return fmt.Errorf("category already exists: %s", c.ID)
		}
	}
	s.categories = append(s.categories, c)
	return s.saveCategories()
}

func (s *JSONStore) GetCategory(id string) (models.Category, error) {
	if err := s.ensureLoaded(); err != nil {
		return models.Category{}, err
	}
	for _, c := range s.categories {
		if c.ID == id {
			return c, nil
		}
	}
	return models.Category{}, fmt.Errorf("category not found: %s", id)
}

func (s *JSONStore) GetAllCategories() ([]models.Category, error) {
	if err := s.ensureLoaded(); err != nil {
		return nil, err
	}
	out := make([]models.Category, len(s.categories))
	copy(out, s.categories)
	return out, nil
}

func (s *JSONStore) UpdateCategory(c models.Category) error {
	if err := s.ensureLoaded(); err != nil {
		return err
	}
	for i := range s.categories {
		if s.categories[i].ID == c.ID {
			s.categories[i] = c
			return s.saveCategories()
		}
	}
	return fmt.Errorf("category not found: %s", c.ID)
}

func (s *JSONStore) DeleteCategory(id string) error {
	if err := s.ensureLoaded(); err != nil {
		return err
	}
	for i := range s.categories {
		if s.categories[i].ID == id {
			// Markers referencing this category by name keep the dangling
			// name; deletion never cascades.
			s.categories = append(s.categories[:i], s.categories[i+1:]...)
			return s.saveCategories()
		}
	}
	return fmt.Errorf("category not found: %s", id)
}

func (s *JSONStore) ReplaceCategories(cats []models.Category) error {
	if err := s.ensureLoaded(); err != nil {
		return err
	}
	s.categories = make([]models.Category, len(cats))
	copy(s.categories, cats)
	return s.saveCategories()
}

func (s *JSONStore) DataPath() string {
	return s.dir
}
