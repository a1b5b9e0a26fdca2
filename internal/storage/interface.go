package storage

import "cuemark/internal/models"

// Provider is the persistence boundary. Implementations hold two independent
// collections — projects and marker categories — and persist the whole
// collection after every mutation.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Projects
	AddProject(models.Project) error
	GetProject(id string) (models.Project, error)
	GetAllProjects() ([]models.Project, error)
	UpdateProject(models.Project) error
	DeleteProject(id string) error
	// ReplaceMarkers swaps a project's entire marker collection in a single
	// update. CSV import goes through this so a failed import never leaves a
	// partial merge behind.
	ReplaceMarkers(projectID string, markers []models.Marker) error

	// Categories
	AddCategory(models.Category) error
	GetCategory(id string) (models.Category, error)
	GetAllCategories() ([]models.Category, error)
	UpdateCategory(models.Category) error
	DeleteCategory(id string) error
	// ReplaceCategories swaps the whole category collection (settings import).
	ReplaceCategories([]models.Category) error

	// Utils
	DataPath() string
}
