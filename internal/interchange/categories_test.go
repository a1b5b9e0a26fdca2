package interchange

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cuemark/internal/models"
)

func TestCategoriesJSON_RoundTrip(t *testing.T) {
	cats := []models.Category{
		{ID: "c1", Name: "Dialogue", Color: "39"},
		{ID: "c2", Name: "Ambience", Color: "78"},
	}

	data, err := ExportCategoriesJSON(cats)
	require.NoError(t, err)

	got, err := ImportCategoriesJSON(data)
	require.NoError(t, err)
	assert.Equal(t, cats, got)
}

func TestImportCategoriesJSON_NotJSON(t *testing.T) {
	_, err := ImportCategoriesJSON([]byte("definitely not json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a valid category settings file")
}

func TestImportCategoriesJSON_MissingField(t *testing.T) {
	data := []byte(`[
		{"id": "c1", "name": "Dialogue", "color": "39"},
		{"id": "c2", "name": "Broken"}
	]`)

	got, err := ImportCategoriesJSON(data)
	require.Error(t, err)
	assert.Nil(t, got)
	assert.Contains(t, err.Error(), "category 2 is missing an id, name, or color")
}

func TestImportCategoriesJSON_Empty(t *testing.T) {
	got, err := ImportCategoriesJSON([]byte("[]"))
	require.NoError(t, err)
	assert.Empty(t, got)
}
