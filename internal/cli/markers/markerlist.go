package markers

import (
	"fmt"

	"cuemark/internal/cli"
	"cuemark/internal/markers"
	"cuemark/internal/utils"
)

type MarkerListCmd struct {
	Project string `arg:"" help:"Project ID or title."`
	Type    string `short:"t" help:"Filter by category name." default:"all"`
	Status  string `short:"s" help:"Filter by status." default:"all"`
	Sort    string `help:"Sort key (timestamp|context|type|status)." default:"timestamp"`
	Desc    bool   `help:"Sort descending."`
	ShowIDs bool   `help:"Show marker IDs." name:"show-ids"`
}

func (c *MarkerListCmd) Run(ctx *cli.Context) error {
	project, err := ctx.ResolveProject(c.Project)
	if err != nil {
		return err
	}

	sortKey := markers.SortKey(c.Sort)
	valid := false
	for _, k := range markers.SortKeys() {
		if k == sortKey {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("invalid sort key: %s", c.Sort)
	}

	dir := markers.Ascending
	if c.Desc {
		dir = markers.Descending
	}
	visible := markers.Apply(project.Markers,
		markers.Filter{Type: c.Type, Status: c.Status},
		markers.Sort{Key: sortKey, Dir: dir})

	if len(visible) == 0 {
		fmt.Println("No markers match")
		return nil
	}

	fmt.Printf("Markers in %s:\n", project.Title)
	for _, m := range visible {
		idStr := ""
		if c.ShowIDs {
			idStr = fmt.Sprintf(" (ID: %s)", m.ID)
		}
		fmt.Printf("  %s [%s] %s - %s%s\n",
			utils.FormatTimestamp(m.Timestamp), m.Type, m.Status, m.Context, idStr)
	}
	return nil
}
