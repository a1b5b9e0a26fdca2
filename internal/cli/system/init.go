package system

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cuemark/internal/cli"
	"cuemark/internal/constants"
)

type InitCmd struct {
	Force bool `help:"Reinitialize even if storage already exists."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		removeExisting(ctx.Store.DataPath())
	}
	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Printf("Initialized cuemark storage at %s\n", ctx.Store.DataPath())
	return nil
}

func removeExisting(dataPath string) {
	if strings.HasSuffix(dataPath, ".db") {
		os.Remove(dataPath)
		return
	}
	os.Remove(filepath.Join(dataPath, constants.ProjectsSlot))
	os.Remove(filepath.Join(dataPath, constants.CategoriesSlot))
}
