package projects

import (
	"fmt"

	"cuemark/internal/cli"
	"cuemark/internal/utils"
)

type ProjectListCmd struct {
	ShowIDs bool `help:"Show project IDs." name:"show-ids"`
}

func (c *ProjectListCmd) Run(ctx *cli.Context) error {
	projects, err := ctx.Store.GetAllProjects()
	if err != nil {
		return fmt.Errorf("failed to get projects: %w", err)
	}
	if len(projects) == 0 {
		fmt.Println("No projects found")
		return nil
	}

	fmt.Println("Projects:")
	for _, p := range projects {
		idStr := ""
		if c.ShowIDs {
			idStr = fmt.Sprintf(" (ID: %s)", p.ID)
		}
		audio := "no audio"
		if p.AudioFile != "" {
			audio = fmt.Sprintf("%s, %s", p.AudioFile, utils.FormatTimestamp(p.Duration))
		}
		fmt.Printf("  %s%s - %d markers (%s)\n", p.Title, idStr, len(p.Markers), audio)
	}
	return nil
}
