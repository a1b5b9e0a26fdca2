package models

import (
	"strings"
	"testing"
)

func TestParseStatus(t *testing.T) {
	for _, name := range StatusNames() {
		if _, err := ParseStatus(name); err != nil {
			t.Errorf("ParseStatus(%q) failed: %v", name, err)
		}
	}
}

func TestParseStatus_CaseSensitive(t *testing.T) {
	for _, bad := range []string{"to do", "TODO", "done", "in progress", ""} {
		if _, err := ParseStatus(bad); err == nil {
			t.Errorf("ParseStatus(%q) should fail", bad)
		}
	}

	_, err := ParseStatus("bogus")
	if err == nil || !strings.Contains(err.Error(), "To Do, In Progress, Done") {
		t.Errorf("error should list valid statuses, got %v", err)
	}
}

func TestMarkerValidate(t *testing.T) {
	m := Marker{ID: "m1", Timestamp: 10, Type: "SFX", Status: StatusToDo}
	if err := m.Validate(60); err != nil {
		t.Errorf("valid marker rejected: %v", err)
	}

	m.Timestamp = -1
	if err := m.Validate(60); err == nil {
		t.Error("negative timestamp should be rejected")
	}

	m.Timestamp = 61
	if err := m.Validate(60); err == nil {
		t.Error("timestamp beyond duration should be rejected")
	}

	// Zero duration means no audio yet; the upper bound is disabled.
	if err := m.Validate(0); err != nil {
		t.Errorf("zero duration should disable the upper bound: %v", err)
	}

	m.Timestamp = 10
	m.Status = "Nope"
	if err := m.Validate(60); err == nil {
		t.Error("unknown status should be rejected")
	}
}
