package interchange

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cuemark/internal/models"
)

func testCategories() []models.Category {
	return []models.Category{
		{ID: "c1", Name: "Dialogue", Color: "39"},
		{ID: "c2", Name: "Image", Color: "205"},
		{ID: "c3", Name: "SFX", Color: "214"},
	}
}

func TestExportMarkersCSV(t *testing.T) {
	ms := []models.Marker{
		{ID: "m1", Timestamp: 5.5, Context: "B-roll, city", Type: "Image", Status: models.StatusToDo},
		{ID: "m2", Timestamp: 63.2, Context: `He said "now"`, Type: "Dialogue", Status: models.StatusDone},
	}

	out := ExportMarkersCSV(ms)

	want := "timestamp,context,type,status\n" +
		"5.5,\"B-roll, city\",Image,To Do\n" +
		"63.2,\"He said \"\"now\"\"\",Dialogue,Done\n"
	assert.Equal(t, want, out)
}

func TestExportMarkersCSV_Empty(t *testing.T) {
	assert.Equal(t, CSVHeader+"\n", ExportMarkersCSV(nil))
}

func TestExportMarkersCSV_TimestampPrecision(t *testing.T) {
	ms := []models.Marker{
		{Timestamp: 10, Context: "x", Type: "SFX", Status: models.StatusToDo},
		{Timestamp: 0.125, Context: "y", Type: "SFX", Status: models.StatusToDo},
	}
	out := ExportMarkersCSV(ms)
	assert.Contains(t, out, "10,\"x\"")
	assert.Contains(t, out, "0.125,\"y\"")
}

func TestImportMarkersCSV_RoundTrip(t *testing.T) {
	ms := []models.Marker{
		{ID: "m1", Timestamp: 63.2, Context: "second", Type: "Dialogue", Status: models.StatusDone},
		{ID: "m2", Timestamp: 5.5, Context: "B-roll, city", Type: "Image", Status: models.StatusToDo},
	}

	imported, err := ImportMarkersCSV(ExportMarkersCSV(ms), testCategories())
	require.NoError(t, err)
	require.Len(t, imported, 2)

	// Imports are normalized to timestamp order with fresh identifiers.
	assert.Equal(t, 5.5, imported[0].Timestamp)
	assert.Equal(t, "B-roll, city", imported[0].Context)
	assert.Equal(t, "Image", imported[0].Type)
	assert.Equal(t, models.StatusToDo, imported[0].Status)
	assert.Equal(t, 63.2, imported[1].Timestamp)
	assert.Equal(t, "second", imported[1].Context)

	assert.NotEqual(t, "m1", imported[0].ID)
	assert.NotEqual(t, "m2", imported[0].ID)
	assert.NotEqual(t, imported[0].ID, imported[1].ID)
}

func TestImportMarkersCSV_UnquotedCommaInContext(t *testing.T) {
	// The middle fields are rejoined with commas, so an unquoted comma inside
	// the context survives.
	data := "timestamp,context,type,status\n" +
		"5.5,before, after,Image,To Do\n"

	imported, err := ImportMarkersCSV(data, testCategories())
	require.NoError(t, err)
	require.Len(t, imported, 1)
	assert.Equal(t, "before, after", imported[0].Context)
}

func TestImportMarkersCSV_CRLFAndBlankLines(t *testing.T) {
	data := "timestamp,context,type,status\r\n" +
		"1,\"a\",SFX,To Do\r\n" +
		"\r\n" +
		"2,\"b\",SFX,Done\r\n"

	imported, err := ImportMarkersCSV(data, testCategories())
	require.NoError(t, err)
	assert.Len(t, imported, 2)
}

func TestImportMarkersCSV_TooFewColumns(t *testing.T) {
	data := "timestamp,context,type,status\n" +
		"1,\"a\",SFX,To Do\n" +
		"2,bad-row\n"

	_, err := ImportMarkersCSV(data, testCategories())
	require.Error(t, err)
	// File lines: header is line 1, so the bad row is line 3.
	assert.Contains(t, err.Error(), "line 3:")
	assert.Contains(t, err.Error(), "expected at least 4 columns, got 2")
}

func TestImportMarkersCSV_InvalidTimestamp(t *testing.T) {
	data := "timestamp,context,type,status\n" +
		"abc,\"a\",SFX,To Do\n"

	_, err := ImportMarkersCSV(data, testCategories())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2:")
	assert.Contains(t, err.Error(), `invalid timestamp "abc"`)
}

func TestImportMarkersCSV_UnknownType(t *testing.T) {
	data := "timestamp,context,type,status\n" +
		"1,\"a\",Nope,To Do\n"

	_, err := ImportMarkersCSV(data, testCategories())
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown marker type "Nope"`)
	assert.Contains(t, err.Error(), "Dialogue, Image, SFX")
}

func TestImportMarkersCSV_UnknownStatus(t *testing.T) {
	data := "timestamp,context,type,status\n" +
		"1,\"a\",SFX,to do\n"

	// Status matching is case-sensitive.
	_, err := ImportMarkersCSV(data, testCategories())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2:")
	assert.Contains(t, err.Error(), `unknown status "to do"`)
}

func TestImportMarkersCSV_AllOrNothing(t *testing.T) {
	data := "timestamp,context,type,status\n" +
		"1,\"fine\",SFX,To Do\n" +
		"2,\"broken\",Nope,To Do\n"

	imported, err := ImportMarkersCSV(data, testCategories())
	require.Error(t, err)
	assert.Nil(t, imported)
}

func TestImportMarkersCSV_HeaderOnly(t *testing.T) {
	imported, err := ImportMarkersCSV(CSVHeader+"\n", testCategories())
	require.NoError(t, err)
	assert.Empty(t, imported)
}

func TestLineError_Format(t *testing.T) {
	err := &LineError{Line: 7, Reason: "boom"}
	assert.Equal(t, "line 7: boom", err.Error())
	assert.True(t, strings.HasPrefix(err.Error(), "line "))
}
