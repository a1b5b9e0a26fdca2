package transfer

import (
	"fmt"

	"cuemark/internal/cli"
	"cuemark/internal/interchange"
)

type ExportTimecodeCmd struct {
	Project string `arg:"" help:"Project ID or title."`
	Output  string `short:"o" help:"Output file (default stdout)."`
}

func (c *ExportTimecodeCmd) Run(ctx *cli.Context) error {
	project, err := ctx.ResolveProject(c.Project)
	if err != nil {
		return err
	}
	if len(project.Markers) == 0 {
		return fmt.Errorf("project %q has no markers to export", project.Title)
	}

	out := interchange.ExportTimecodeTSV(project.Markers)
	return cli.WriteOutput(c.Output, []byte(out))
}
