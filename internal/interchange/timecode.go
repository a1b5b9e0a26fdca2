package interchange

import (
	"fmt"
	"math"
	"strings"

	"cuemark/internal/constants"
	"cuemark/internal/models"
)

// TimecodeHeader is the column row of the tab-separated editor export.
var timecodeColumns = []string{"Marker Name", "Description", "In", "Out", "Duration", "Marker Type"}

// Timecode converts seconds to the editor's HH;MM;SS;FF representation at the
// fixed 30 fps assumption: frames = round(seconds * 30), then integer
// decomposition.
func Timecode(seconds float64) string {
	frames := int(math.Round(seconds * constants.TimecodeFPS))
	if frames < 0 {
		frames = 0
	}
	hh := frames / (3600 * constants.TimecodeFPS)
	mm := (frames % (3600 * constants.TimecodeFPS)) / (60 * constants.TimecodeFPS)
	ss := (frames % (60 * constants.TimecodeFPS)) / constants.TimecodeFPS
	ff := frames % constants.TimecodeFPS
	return fmt.Sprintf("%02d;%02d;%02d;%02d", hh, mm, ss, ff)
}

// scrub removes characters that would break the tab/newline-delimited format.
func scrub(s string) string {
	r := strings.NewReplacer("\t", " ", "\n", " ", "\r", " ")
	return r.Replace(s)
}

// ExportTimecodeTSV produces the one-way editor interchange: one row per
// marker in current list order, zero duration, constant "Comment" marker type.
// The marker's category name becomes the marker name and its context the
// description. There is no import counterpart.
func ExportTimecodeTSV(ms []models.Marker) string {
	var b strings.Builder
	b.WriteString(strings.Join(timecodeColumns, "\t"))
	b.WriteByte('\n')
	for _, m := range ms {
		tc := Timecode(m.Timestamp)
		row := []string{scrub(m.Type), scrub(m.Context), tc, tc, "00;00;00;00", "Comment"}
		b.WriteString(strings.Join(row, "\t"))
		b.WriteByte('\n')
	}
	return b.String()
}
