package validation

import (
	"fmt"
	"strings"

	"cuemark/internal/models"
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictDuplicateCategoryName ConflictType = "duplicate_category_name"
	ConflictEmptyCategoryField    ConflictType = "empty_category_field"
	ConflictTimestampOutOfRange   ConflictType = "timestamp_out_of_range"
	ConflictDanglingMarkerType    ConflictType = "dangling_marker_type"
	ConflictUnknownStatus         ConflictType = "unknown_status"
)

// Conflict represents a detected inconsistency in the stored collections.
type Conflict struct {
	Type        ConflictType
	Description string
	Items       []string // project titles / category names involved
}

// Result contains all detected conflicts
type Result struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (r *Result) HasConflicts() bool {
	return len(r.Conflicts) > 0
}

// FormatReport returns a human-readable report of all conflicts
func (r *Result) FormatReport() string {
	if !r.HasConflicts() {
		return "No conflicts detected."
	}
	report := "Conflicts detected:\n"
	for _, c := range r.Conflicts {
		report += fmt.Sprintf("- %s\n", c.Description)
	}
	return report
}

// Validator checks the stored collections for inconsistencies.
type Validator struct{}

// New creates a new Validator
func New() *Validator {
	return &Validator{}
}

// ValidateCategories checks the category collection. Duplicate names are
// compared case-insensitively, matching the creation-time rule.
func (v *Validator) ValidateCategories(cats []models.Category) Result {
	result := Result{Conflicts: []Conflict{}}

	seen := make(map[string][]string)
	for _, c := range cats {
		if c.Name == "" || c.Color == "" || c.ID == "" {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictEmptyCategoryField,
				Description: fmt.Sprintf("Category %q has an empty id, name, or color", c.Name),
				Items:       []string{c.Name},
			})
			continue
		}
		key := strings.ToLower(c.Name)
		seen[key] = append(seen[key], c.Name)
	}

	for _, names := range seen {
		if len(names) > 1 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictDuplicateCategoryName,
				Description: fmt.Sprintf("Duplicate category name (case-insensitive): %s", strings.Join(names, ", ")),
				Items:       names,
			})
		}
	}

	return result
}

// ValidateProject checks a project's markers against its duration and the
// current category set. Dangling marker types are reported but tolerated;
// deleting a category never cascades.
func (v *Validator) ValidateProject(p models.Project, cats []models.Category) Result {
	result := Result{Conflicts: []Conflict{}}

	for i, m := range p.Markers {
		if m.Timestamp < 0 || (p.Duration > 0 && m.Timestamp > p.Duration) {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type: ConflictTimestampOutOfRange,
				Description: fmt.Sprintf("Project %q marker %d: timestamp %.3f outside [0, %.3f]",
					p.Title, i+1, m.Timestamp, p.Duration),
				Items: []string{p.Title},
			})
		}
		if !models.ResolveType(m.Type, cats).Resolved() {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type: ConflictDanglingMarkerType,
				Description: fmt.Sprintf("Project %q marker %d references deleted category %q",
					p.Title, i+1, m.Type),
				Items: []string{p.Title, m.Type},
			})
		}
		if _, err := models.ParseStatus(string(m.Status)); err != nil {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictUnknownStatus,
				Description: fmt.Sprintf("Project %q marker %d: %v", p.Title, i+1, err),
				Items:       []string{p.Title},
			})
		}
	}

	return result
}

// CheckNewCategoryName enforces the creation/edit rule for category names:
// non-empty and unique case-insensitively. excludeID skips the category being
// edited.
func CheckNewCategoryName(name string, existing []models.Category, excludeID string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("category name must not be empty")
	}
	if models.NameTaken(existing, name, excludeID) {
		return fmt.Errorf("a category named %q already exists", name)
	}
	return nil
}
