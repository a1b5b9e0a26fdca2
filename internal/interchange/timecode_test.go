package interchange

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cuemark/internal/models"
)

func TestTimecode(t *testing.T) {
	cases := []struct {
		seconds float64
		want    string
	}{
		{0, "00;00;00;00"},
		{1, "00;00;01;00"},
		{63.2, "00;01;03;06"},
		{3600, "01;00;00;00"},
		{3599.9999, "01;00;00;00"}, // rounds up across the hour boundary
		{0.016, "00;00;00;00"},     // round(0.48) = 0
		{0.017, "00;00;00;01"},     // round(0.51) = 1
		{-5, "00;00;00;00"},        // clamped
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Timecode(c.seconds), "seconds=%v", c.seconds)
	}
}

func TestExportTimecodeTSV(t *testing.T) {
	ms := []models.Marker{
		{Timestamp: 63.2, Context: "the line about rain", Type: "Dialogue", Status: models.StatusToDo},
	}

	out := ExportTimecodeTSV(ms)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 2)

	assert.Equal(t, "Marker Name\tDescription\tIn\tOut\tDuration\tMarker Type", lines[0])

	fields := strings.Split(lines[1], "\t")
	require.Len(t, fields, 6)
	assert.Equal(t, "Dialogue", fields[0])
	assert.Equal(t, "the line about rain", fields[1])
	assert.Equal(t, "00;01;03;06", fields[2])
	assert.Equal(t, fields[2], fields[3], "Out equals In")
	assert.Equal(t, "00;00;00;00", fields[4])
	assert.Equal(t, "Comment", fields[5])
}

func TestExportTimecodeTSV_ScrubsDelimiters(t *testing.T) {
	ms := []models.Marker{
		{Timestamp: 1, Context: "tab\there\nand newline", Type: "A\tB", Status: models.StatusToDo},
	}

	out := ExportTimecodeTSV(ms)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 2)

	fields := strings.Split(lines[1], "\t")
	require.Len(t, fields, 6)
	assert.Equal(t, "A B", fields[0])
	assert.Equal(t, "tab here and newline", fields[1])
}

func TestExportTimecodeTSV_PreservesListOrder(t *testing.T) {
	ms := []models.Marker{
		{Timestamp: 10, Context: "later", Type: "SFX", Status: models.StatusToDo},
		{Timestamp: 2, Context: "earlier", Type: "SFX", Status: models.StatusToDo},
	}

	out := ExportTimecodeTSV(ms)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[1], "later")
	assert.Contains(t, lines[2], "earlier")
}
