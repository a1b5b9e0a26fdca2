package categories

import (
	"fmt"

	"cuemark/internal/cli"
)

type CategoryListCmd struct {
	ShowIDs bool `help:"Show category IDs." name:"show-ids"`
}

func (c *CategoryListCmd) Run(ctx *cli.Context) error {
	cats, err := ctx.Store.GetAllCategories()
	if err != nil {
		return fmt.Errorf("failed to get categories: %w", err)
	}
	if len(cats) == 0 {
		fmt.Println("No categories defined")
		return nil
	}

	fmt.Println("Categories:")
	for _, cat := range cats {
		idStr := ""
		if c.ShowIDs {
			idStr = fmt.Sprintf(" (ID: %s)", cat.ID)
		}
		fmt.Printf("  %s (color %s)%s\n", cat.Name, cat.Color, idStr)
	}
	return nil
}
