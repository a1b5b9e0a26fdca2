package models

import "strings"

// Category is a user-defined marker label with a color token. Names are unique
// case-insensitively at the point of creation or edit.
type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"` // opaque style token, interpreted by the TUI
}

// CategoryNames returns the names of cats in collection order.
func CategoryNames(cats []Category) []string {
	names := make([]string, len(cats))
	for i, c := range cats {
		names[i] = c.Name
	}
	return names
}

// FindCategory looks a category up by exact name.
func FindCategory(cats []Category, name string) (Category, bool) {
	for _, c := range cats {
		if c.Name == name {
			return c, true
		}
	}
	return Category{}, false
}

// NameTaken reports whether name collides case-insensitively with an existing
// category other than excludeID.
func NameTaken(cats []Category, name, excludeID string) bool {
	for _, c := range cats {
		if c.ID != excludeID && strings.EqualFold(c.Name, name) {
			return true
		}
	}
	return false
}

// MarkerType is a marker's type resolved against the current category set.
// Category is nil when the name no longer matches any category; the dangling
// reference is tolerated and rendered in a fallback style.
type MarkerType struct {
	Name     string
	Category *Category
}

// Resolved reports whether the type still references a live category.
func (t MarkerType) Resolved() bool { return t.Category != nil }

// ResolveType binds a marker type name to the category it references, if any.
func ResolveType(name string, cats []Category) MarkerType {
	for i := range cats {
		if cats[i].Name == name {
			return MarkerType{Name: name, Category: &cats[i]}
		}
	}
	return MarkerType{Name: name}
}
