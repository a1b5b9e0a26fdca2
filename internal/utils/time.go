package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatTimestamp renders a marker timestamp as M:SS.mmm for display.
func FormatTimestamp(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	mins := int(seconds) / 60
	rem := seconds - float64(mins*60)
	return fmt.Sprintf("%d:%06.3f", mins, rem)
}

// ParseTimestamp accepts either plain seconds ("63.2") or minutes:seconds
// ("1:03.2") and returns seconds.
func ParseTimestamp(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty timestamp")
	}
	if idx := strings.IndexByte(s, ':'); idx >= 0 {
		mins, err := strconv.Atoi(s[:idx])
		if err != nil || mins < 0 {
			return 0, fmt.Errorf("invalid timestamp %q", s)
		}
		secs, err := strconv.ParseFloat(s[idx+1:], 64)
		if err != nil || secs < 0 {
			return 0, fmt.Errorf("invalid timestamp %q", s)
		}
		return float64(mins)*60 + secs, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("invalid timestamp %q", s)
	}
	return v, nil
}
