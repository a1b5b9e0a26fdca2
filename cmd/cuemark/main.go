package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"cuemark/internal/cli"
	"cuemark/internal/cli/backups"
	"cuemark/internal/cli/categories"
	"cuemark/internal/cli/markers"
	"cuemark/internal/cli/projects"
	"cuemark/internal/cli/system"
	"cuemark/internal/cli/transfer"
	"cuemark/internal/constants"
	"cuemark/internal/errors"
	"cuemark/internal/logger"
	"cuemark/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Data    string `help:"Data directory, or a SQLite database path ending in .db." type:"string" default:"~/.config/cuemark"`
	Debug   bool   `help:"Enable debug logging to stderr."`

	Init    system.InitCmd   `cmd:"" help:"Initialize cuemark storage."`
	Doctor  system.DoctorCmd `cmd:"" help:"Run health checks and diagnostics."`
	Tui     system.TuiCmd    `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Project struct {
		Add    projects.ProjectAddCmd    `cmd:"" help:"Add a new project."`
		List   projects.ProjectListCmd   `cmd:"" help:"List all projects."`
		Delete projects.ProjectDeleteCmd `cmd:"" help:"Delete a project."`
	} `cmd:"" help:"Manage projects."`
	Marker struct {
		Add    markers.MarkerAddCmd    `cmd:"" help:"Add a marker to a project."`
		List   markers.MarkerListCmd   `cmd:"" help:"List a project's markers."`
		Delete markers.MarkerDeleteCmd `cmd:"" help:"Delete a marker."`
	} `cmd:"" help:"Manage markers."`
	Category struct {
		Add    categories.CategoryAddCmd    `cmd:"" help:"Add a marker category."`
		List   categories.CategoryListCmd   `cmd:"" help:"List marker categories."`
		Delete categories.CategoryDeleteCmd `cmd:"" help:"Delete a marker category."`
	} `cmd:"" help:"Manage marker categories."`
	Import struct {
		Csv        transfer.ImportCSVCmd        `cmd:"" help:"Import a marker CSV into a project (replaces its markers)."`
		Categories transfer.ImportCategoriesCmd `cmd:"" help:"Import a category settings file (replaces all categories)."`
	} `cmd:"" help:"Import interchange files."`
	Export struct {
		Csv        transfer.ExportCSVCmd        `cmd:"" help:"Export a project's markers as CSV."`
		Timecode   transfer.ExportTimecodeCmd   `cmd:"" help:"Export markers as editor timecode rows (tab-separated, 30 fps)."`
		Categories transfer.ExportCategoriesCmd `cmd:"" help:"Export the category settings file."`
	} `cmd:"" help:"Export interchange files."`
	Backup struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage storage backups."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Audio marker annotation companion"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	dataPath := expandHome(CLI.Data)

	logDir := dataPath
	if strings.HasSuffix(dataPath, ".db") {
		logDir = filepath.Dir(dataPath)
	}
	if err := logger.Init(logger.Config{Debug: CLI.Debug, DataDir: logDir}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logging: %v\n", err)
	}

	// The SQLite backend is selected by the path suffix; everything else is
	// the two-slot JSON store.
	var store storage.Provider
	if strings.HasSuffix(dataPath, ".db") {
		store = storage.NewSQLiteStore(dataPath)
	} else {
		store = storage.NewJSONStore(dataPath)
	}

	appCtx := &cli.Context{Store: store, Debug: CLI.Debug}

	// Load the store before running the command (init handles its own setup)
	if ctx.Selected() != nil && ctx.Selected().Name != "init" {
		if err := store.Load(); err != nil {
			errors.Fatal(err)
		}
		defer store.Close()
	}

	if err := ctx.Run(appCtx); err != nil {
		store.Close()
		errors.Fatal(err)
	}
}

func expandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
