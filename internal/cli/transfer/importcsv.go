// Package transfer implements the interchange commands: marker CSV in both
// directions, the one-way timecode export, and the category settings file.
package transfer

import (
	"fmt"
	"os"

	"cuemark/internal/cli"
	"cuemark/internal/interchange"
)

type ImportCSVCmd struct {
	Project string `arg:"" help:"Project ID or title."`
	File    string `arg:"" help:"Marker CSV file." type:"existingfile"`
}

func (c *ImportCSVCmd) Run(ctx *cli.Context) error {
	project, err := ctx.ResolveProject(c.Project)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(c.File)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", c.File, err)
	}

	categories, err := ctx.Store.GetAllCategories()
	if err != nil {
		return err
	}

	// The whole file is validated before anything is written; the first bad
	// line aborts the import and leaves the project untouched.
	imported, err := interchange.ImportMarkersCSV(string(data), categories)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	ctx.PerformAutomaticBackup()
	if err := ctx.Store.ReplaceMarkers(project.ID, imported); err != nil {
		return err
	}

	fmt.Printf("Imported %d markers into %s\n", len(imported), project.Title)
	return nil
}
