package cli

import (
	"fmt"
	"os"
	"strings"

	"cuemark/internal/backup"
	"cuemark/internal/logger"
	"cuemark/internal/models"
	"cuemark/internal/storage"
)

type Context struct {
	Store storage.Provider
	Debug bool
}

// PerformAutomaticBackup creates a backup before a destructive operation and
// silently handles errors.
func (c *Context) PerformAutomaticBackup() {
	mgr := backup.NewManager(c.Store.DataPath())
	if _, err := mgr.CreateBackup(); err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// ResolveProject finds a project by exact ID, then by exact title, then by
// unique title prefix.
func (c *Context) ResolveProject(ref string) (models.Project, error) {
	projects, err := c.Store.GetAllProjects()
	if err != nil {
		return models.Project{}, err
	}

	for _, p := range projects {
		if p.ID == ref {
			return p, nil
		}
	}
	for _, p := range projects {
		if p.Title == ref {
			return p, nil
		}
	}

	var matches []models.Project
	for _, p := range projects {
		if strings.HasPrefix(strings.ToLower(p.Title), strings.ToLower(ref)) {
			matches = append(matches, p)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return models.Project{}, fmt.Errorf("no project matches %q", ref)
	default:
		titles := make([]string, len(matches))
		for i, p := range matches {
			titles[i] = p.Title
		}
		return models.Project{}, fmt.Errorf("%q is ambiguous: %s", ref, strings.Join(titles, ", "))
	}
}

// WriteOutput writes data to path, or stdout when path is "-" or empty.
func WriteOutput(path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0644)
}
