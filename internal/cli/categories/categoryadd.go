package categories

import (
	"fmt"

	"github.com/google/uuid"

	"cuemark/internal/cli"
	"cuemark/internal/models"
	"cuemark/internal/validation"
)

type CategoryAddCmd struct {
	Name  string `arg:"" help:"Category display name."`
	Color string `short:"c" help:"Color token (ANSI 256 color)." default:"252"`
}

func (c *CategoryAddCmd) Run(ctx *cli.Context) error {
	existing, err := ctx.Store.GetAllCategories()
	if err != nil {
		return err
	}
	if err := validation.CheckNewCategoryName(c.Name, existing, ""); err != nil {
		return err
	}

	category := models.Category{
		ID:    uuid.New().String(),
		Name:  c.Name,
		Color: c.Color,
	}
	if err := ctx.Store.AddCategory(category); err != nil {
		return err
	}

	fmt.Printf("Added category: %s (ID: %s)\n", category.Name, category.ID)
	return nil
}
