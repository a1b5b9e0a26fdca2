package transfer

import (
	"fmt"

	"cuemark/internal/cli"
	"cuemark/internal/interchange"
)

type ExportCSVCmd struct {
	Project string `arg:"" help:"Project ID or title."`
	Output  string `short:"o" help:"Output file (default stdout)."`
}

func (c *ExportCSVCmd) Run(ctx *cli.Context) error {
	project, err := ctx.ResolveProject(c.Project)
	if err != nil {
		return err
	}
	if len(project.Markers) == 0 {
		return fmt.Errorf("project %q has no markers to export", project.Title)
	}

	out := interchange.ExportMarkersCSV(project.Markers)
	return cli.WriteOutput(c.Output, []byte(out))
}
