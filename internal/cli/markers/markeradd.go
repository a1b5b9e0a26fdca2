package markers

import (
	"fmt"

	"github.com/google/uuid"

	"cuemark/internal/cli"
	"cuemark/internal/models"
	"cuemark/internal/utils"
	"cuemark/internal/validation"
)

type MarkerAddCmd struct {
	Project   string `arg:"" help:"Project ID or title."`
	Timestamp string `arg:"" help:"Position in seconds or M:SS.mmm."`
	Context   string `short:"c" help:"Free-text context for the marker."`
	Type      string `short:"t" help:"Category name." required:""`
	Status    string `short:"s" help:"Status (To Do|In Progress|Done)." default:"To Do"`
}

func (c *MarkerAddCmd) Run(ctx *cli.Context) error {
	project, err := ctx.ResolveProject(c.Project)
	if err != nil {
		return err
	}

	categories, err := ctx.Store.GetAllCategories()
	if err != nil {
		return err
	}
	if len(categories) == 0 {
		return fmt.Errorf("no marker categories defined; add one with 'cuemark category add'")
	}
	if _, ok := models.FindCategory(categories, c.Type); !ok {
		return fmt.Errorf("unknown marker type %q (valid types: %v)", c.Type, models.CategoryNames(categories))
	}

	ts, err := utils.ParseTimestamp(c.Timestamp)
	if err != nil {
		return err
	}
	status, err := models.ParseStatus(c.Status)
	if err != nil {
		return err
	}

	marker := models.Marker{
		ID:        uuid.New().String(),
		Timestamp: ts,
		Context:   c.Context,
		Type:      c.Type,
		Status:    status,
	}
	if err := marker.Validate(project.Duration); err != nil {
		return fmt.Errorf("invalid marker: %w", err)
	}

	// Surface dangling references early; they are tolerated but worth noting.
	result := validation.New().ValidateProject(project, categories)
	if result.HasConflicts() {
		fmt.Println(result.FormatReport())
	}

	project.Markers = append(project.Markers, marker)
	if err := ctx.Store.UpdateProject(project); err != nil {
		return err
	}

	fmt.Printf("Added marker at %s to %s\n", utils.FormatTimestamp(ts), project.Title)
	return nil
}
