package interchange

import (
	"fmt"

	"github.com/bytedance/sonic"

	"cuemark/internal/models"
)

// ExportCategoriesJSON serializes the category collection for the settings
// exchange file.
func ExportCategoriesJSON(cats []models.Category) ([]byte, error) {
	data, err := sonic.MarshalIndent(cats, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to serialize categories: %w", err)
	}
	return data, nil
}

// ImportCategoriesJSON parses a category settings file. Every element must
// carry a non-empty id, name, and color; otherwise the entire file is
// rejected and the current collection is left untouched.
func ImportCategoriesJSON(data []byte) ([]models.Category, error) {
	var cats []models.Category
	if err := sonic.Unmarshal(data, &cats); err != nil {
		return nil, fmt.Errorf("not a valid category settings file: %w", err)
	}
	for i, c := range cats {
		if c.ID == "" || c.Name == "" || c.Color == "" {
			return nil, fmt.Errorf("category %d is missing an id, name, or color", i+1)
		}
	}
	return cats, nil
}
