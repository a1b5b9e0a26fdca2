package projects

import (
	"fmt"

	"cuemark/internal/cli"
)

type ProjectDeleteCmd struct {
	Project string `arg:"" help:"Project ID or title."`
	Yes     bool   `short:"y" help:"Skip confirmation."`
}

func (c *ProjectDeleteCmd) Run(ctx *cli.Context) error {
	project, err := ctx.Store.GetProject(c.Project)
	if err != nil {
		project, err = ctx.ResolveProject(c.Project)
		if err != nil {
			return err
		}
	}

	if !c.Yes {
		fmt.Printf("Delete project %q and its %d markers? [y/N] ", project.Title, len(project.Markers))
		var answer string
		fmt.Scanln(&answer)
		if answer != "y" && answer != "Y" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	ctx.PerformAutomaticBackup()
	if err := ctx.Store.DeleteProject(project.ID); err != nil {
		return err
	}
	fmt.Printf("Deleted project: %s\n", project.Title)
	return nil
}
