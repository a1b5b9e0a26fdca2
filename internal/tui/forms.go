package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"cuemark/internal/models"
	"cuemark/internal/utils"
	"cuemark/internal/validation"
)

func newProjectForm(fm *ProjectFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Project Title").
				Value(&fm.Title).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("title cannot be empty")
					}
					return nil
				}),
		),
	).WithTheme(huh.ThemeDracula())
}

func newMarkerForm(fm *MarkerFormModel, cats []models.Category, duration float64) *huh.Form {
	typeOptions := make([]huh.Option[string], len(cats))
	for i, c := range cats {
		typeOptions[i] = huh.NewOption(c.Name, c.Name)
	}
	statusOptions := make([]huh.Option[string], 0, 3)
	for _, s := range models.StatusNames() {
		statusOptions = append(statusOptions, huh.NewOption(s, s))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Timestamp").
				Description("Seconds (63.2) or minutes:seconds (1:03.200)").
				Value(&fm.Timestamp).
				Validate(func(s string) error {
					ts, err := utils.ParseTimestamp(s)
					if err != nil {
						return err
					}
					if duration > 0 && ts > duration {
						return fmt.Errorf("timestamp exceeds audio duration (%s)", utils.FormatTimestamp(duration))
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Type").
				Options(typeOptions...).
				Value(&fm.Type),
			huh.NewSelect[string]().
				Title("Status").
				Options(statusOptions...).
				Value(&fm.Status),
			huh.NewText().
				Title("Context").
				Value(&fm.Context),
		),
	).WithTheme(huh.ThemeDracula())
}

func newCategoryForm(fm *CategoryFormModel, existing []models.Category, excludeID string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Category Name").
				Value(&fm.Name).
				Validate(func(s string) error {
					return validation.CheckNewCategoryName(s, existing, excludeID)
				}),
			huh.NewInput().
				Title("Color").
				Description("ANSI color number or hex, e.g. 205 or #ff5faf").
				Value(&fm.Color).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("color cannot be empty")
					}
					return nil
				}),
		),
	).WithTheme(huh.ThemeDracula())
}

func newLinkForm(fm *LinkFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Audio File Path").
				Description("Path to the audio file to link").
				Value(&fm.Path).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("path cannot be empty")
					}
					return nil
				}),
			huh.NewInput().
				Title("Duration").
				Description("Leave empty to read from the file (WAV only)").
				Value(&fm.Duration).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return nil
					}
					_, err := utils.ParseTimestamp(s)
					return err
				}),
		),
	).WithTheme(huh.ThemeDracula())
}

func newImportForm(fm *ImportFormModel, title string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(title).
				Value(&fm.Path).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("path cannot be empty")
					}
					return nil
				}),
		),
	).WithTheme(huh.ThemeDracula())
}

func newExportForm(fm *ExportFormModel, title string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(title).
				Value(&fm.Path).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("path cannot be empty")
					}
					return nil
				}),
		),
	).WithTheme(huh.ThemeDracula())
}
