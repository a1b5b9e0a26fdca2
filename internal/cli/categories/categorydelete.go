package categories

import (
	"fmt"

	"cuemark/internal/cli"
)

type CategoryDeleteCmd struct {
	Name string `arg:"" help:"Category name or ID."`
}

func (c *CategoryDeleteCmd) Run(ctx *cli.Context) error {
	cats, err := ctx.Store.GetAllCategories()
	if err != nil {
		return err
	}

	for _, cat := range cats {
		if cat.ID == c.Name || cat.Name == c.Name {
			// Markers referencing the name keep it; the reference dangles.
			if err := ctx.Store.DeleteCategory(cat.ID); err != nil {
				return err
			}
			fmt.Printf("Deleted category: %s\n", cat.Name)
			return nil
		}
	}
	return fmt.Errorf("category not found: %s", c.Name)
}
