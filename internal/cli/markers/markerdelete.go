package markers

import (
	"fmt"

	"cuemark/internal/cli"
)

type MarkerDeleteCmd struct {
	Project string `arg:"" help:"Project ID or title."`
	ID      string `arg:"" help:"Marker ID."`
}

func (c *MarkerDeleteCmd) Run(ctx *cli.Context) error {
	project, err := ctx.ResolveProject(c.Project)
	if err != nil {
		return err
	}

	for i, m := range project.Markers {
		if m.ID == c.ID {
			project.Markers = append(project.Markers[:i], project.Markers[i+1:]...)
			if err := ctx.Store.UpdateProject(project); err != nil {
				return err
			}
			fmt.Printf("Deleted marker %s from %s\n", c.ID, project.Title)
			return nil
		}
	}
	return fmt.Errorf("marker not found: %s", c.ID)
}
