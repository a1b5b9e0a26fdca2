package projects

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"cuemark/internal/audio"
	"cuemark/internal/cli"
	"cuemark/internal/models"
)

type ProjectAddCmd struct {
	Title    string  `arg:"" help:"Project title."`
	Audio    string  `short:"a" help:"Path to the audio file to link." type:"existingfile"`
	Duration float64 `short:"d" help:"Audio duration in seconds (required when the format cannot be probed)."`
}

func (c *ProjectAddCmd) Validate() error {
	if strings.TrimSpace(c.Title) == "" {
		return fmt.Errorf("project title must not be empty")
	}
	if c.Duration < 0 {
		return fmt.Errorf("duration must not be negative")
	}
	return nil
}

func (c *ProjectAddCmd) Run(ctx *cli.Context) error {
	project := models.Project{
		ID:       uuid.New().String(),
		Title:    c.Title,
		Duration: c.Duration,
		Markers:  []models.Marker{},
	}

	if c.Audio != "" {
		abs, err := filepath.Abs(c.Audio)
		if err != nil {
			return err
		}
		project.AudioFile = filepath.Base(abs)
		project.AudioPath = abs
		if c.Duration == 0 {
			dur, err := audio.ProbeDuration(abs)
			if err != nil {
				return fmt.Errorf("could not determine duration of %s: %w (pass --duration)", c.Audio, err)
			}
			project.Duration = dur
		}
	}

	if err := project.Validate(); err != nil {
		return fmt.Errorf("invalid project: %w", err)
	}
	if err := ctx.Store.AddProject(project); err != nil {
		return err
	}

	fmt.Printf("Added project: %s (ID: %s)\n", project.Title, project.ID)
	return nil
}
