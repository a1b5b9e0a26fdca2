package transfer

import (
	"fmt"
	"os"

	"cuemark/internal/cli"
	"cuemark/internal/interchange"
)

type ExportCategoriesCmd struct {
	Output string `short:"o" help:"Output file (default stdout)."`
}

func (c *ExportCategoriesCmd) Run(ctx *cli.Context) error {
	cats, err := ctx.Store.GetAllCategories()
	if err != nil {
		return err
	}
	if len(cats) == 0 {
		return fmt.Errorf("no categories to export")
	}

	data, err := interchange.ExportCategoriesJSON(cats)
	if err != nil {
		return err
	}
	return cli.WriteOutput(c.Output, data)
}

type ImportCategoriesCmd struct {
	File string `arg:"" help:"Category settings file." type:"existingfile"`
}

func (c *ImportCategoriesCmd) Run(ctx *cli.Context) error {
	data, err := os.ReadFile(c.File)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", c.File, err)
	}

	// Reject-whole-file validation; the current collection survives any error.
	cats, err := interchange.ImportCategoriesJSON(data)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	ctx.PerformAutomaticBackup()
	if err := ctx.Store.ReplaceCategories(cats); err != nil {
		return err
	}

	fmt.Printf("Imported %d categories\n", len(cats))
	return nil
}
