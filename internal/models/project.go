package models

import "fmt"

// Project is a named container for one audio source and its markers.
//
// AudioPath is a process-local handle: the absolute path resolved when the user
// linked the audio this session. It is never persisted; only AudioFile (the
// basename) survives a restart, so the UI can prompt to re-link the source.
type Project struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	AudioFile string   `json:"audio_file,omitempty"`
	Duration  float64  `json:"duration"` // seconds, 0 until audio is attached
	Markers   []Marker `json:"markers"`

	AudioPath string `json:"-"`
}

// Linked reports whether a playable audio source is attached this session.
func (p Project) Linked() bool { return p.AudioPath != "" }

// Validate checks project-level invariants and every marker's domain.
func (p Project) Validate() error {
	if p.Title == "" {
		return fmt.Errorf("project title must not be empty")
	}
	if p.Duration < 0 {
		return fmt.Errorf("duration must not be negative")
	}
	for i, m := range p.Markers {
		if err := m.Validate(p.Duration); err != nil {
			return fmt.Errorf("marker %d: %w", i+1, err)
		}
	}
	return nil
}

// Sanitized returns a copy safe to persist: the transient audio handle is
// stripped and the marker slice is cloned so later edits don't alias storage.
func (p Project) Sanitized() Project {
	out := p
	out.AudioPath = ""
	out.Markers = make([]Marker, len(p.Markers))
	copy(out.Markers, p.Markers)
	return out
}
