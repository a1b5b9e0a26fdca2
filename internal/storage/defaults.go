package storage

import "cuemark/internal/models"

// DefaultCategories is the built-in category set used when the categories slot
// is absent or unreadable, and as the seed for a fresh install.
func DefaultCategories() []models.Category {
	return []models.Category{
		{ID: "default-dialogue", Name: "Dialogue", Color: "39"},
		{ID: "default-music", Name: "Music", Color: "205"},
		{ID: "default-sfx", Name: "SFX", Color: "214"},
		{ID: "default-ambience", Name: "Ambience", Color: "78"},
	}
}

// DefaultProjects is the built-in project collection: empty.
func DefaultProjects() []models.Project {
	return []models.Project{}
}
