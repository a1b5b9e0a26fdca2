package models

import (
	"fmt"
	"strings"
)

// MarkerStatus is the fixed workflow status of a marker.
type MarkerStatus string

const (
	StatusToDo       MarkerStatus = "To Do"
	StatusInProgress MarkerStatus = "In Progress"
	StatusDone       MarkerStatus = "Done"
)

// AllStatuses returns the statuses in workflow order.
func AllStatuses() []MarkerStatus {
	return []MarkerStatus{StatusToDo, StatusInProgress, StatusDone}
}

// ParseStatus matches s against the status enum. The match is case-sensitive;
// interchange files must carry the exact display strings.
func ParseStatus(s string) (MarkerStatus, error) {
	for _, st := range AllStatuses() {
		if s == string(st) {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown status %q (valid statuses: %s)", s, strings.Join(StatusNames(), ", "))
}

// StatusNames returns the status display strings.
func StatusNames() []string {
	statuses := AllStatuses()
	names := make([]string, len(statuses))
	for i, st := range statuses {
		names[i] = string(st)
	}
	return names
}

// Marker is a timestamped annotation attached to a point in a project's audio.
// Type references a Category by name only; the reference may dangle after the
// category is deleted.
type Marker struct {
	ID        string       `json:"id"`
	Timestamp float64      `json:"timestamp"` // seconds from the start of the audio
	Context   string       `json:"context"`
	Type      string       `json:"type"`
	Status    MarkerStatus `json:"status"`
}

// Validate checks the marker against its project's duration. A zero duration
// (no audio attached yet) disables the upper bound.
func (m Marker) Validate(duration float64) error {
	if m.Timestamp < 0 {
		return fmt.Errorf("timestamp must not be negative")
	}
	if duration > 0 && m.Timestamp > duration {
		return fmt.Errorf("timestamp %.3f exceeds project duration %.3f", m.Timestamp, duration)
	}
	if _, err := ParseStatus(string(m.Status)); err != nil {
		return err
	}
	return nil
}
