package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cuemark/internal/constants"
	"cuemark/internal/models"
)

func newTestStore(t *testing.T) *JSONStore {
	t.Helper()
	store := NewJSONStore(t.TempDir())
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	return store
}

func TestInit_SeedsDefaults(t *testing.T) {
	store := newTestStore(t)

	cats, err := store.GetAllCategories()
	if err != nil {
		t.Fatalf("GetAllCategories failed: %v", err)
	}
	if len(cats) != 4 {
		t.Fatalf("expected 4 default categories, got %d", len(cats))
	}
	if cats[0].Name != "Dialogue" {
		t.Errorf("expected first default category Dialogue, got %q", cats[0].Name)
	}

	projects, err := store.GetAllProjects()
	if err != nil {
		t.Fatalf("GetAllProjects failed: %v", err)
	}
	if len(projects) != 0 {
		t.Errorf("expected no default projects, got %d", len(projects))
	}
}

func TestInit_RefusesExistingStorage(t *testing.T) {
	store := newTestStore(t)
	if err := store.Init(); err == nil {
		t.Error("expected second Init to fail")
	}
}

func TestLoad_CorruptSlotFallsBackToDefaults(t *testing.T) {
	dir := t.TempDir()
	store := NewJSONStore(dir)
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if err := store.AddProject(models.Project{ID: "p1", Title: "Session"}); err != nil {
		t.Fatalf("AddProject failed: %v", err)
	}

	// Corrupt only the projects slot.
	if err := os.WriteFile(filepath.Join(dir, constants.ProjectsSlot), []byte("{not json"), 0600); err != nil {
		t.Fatal(err)
	}

	fresh := NewJSONStore(dir)
	if err := fresh.Load(); err != nil {
		t.Fatalf("Load should not fail on a corrupt slot: %v", err)
	}

	projects, _ := fresh.GetAllProjects()
	if len(projects) != 0 {
		t.Errorf("corrupt projects slot should reset to defaults, got %d projects", len(projects))
	}

	// The other slot is untouched.
	cats, _ := fresh.GetAllCategories()
	if len(cats) != 4 {
		t.Errorf("categories slot should survive, got %d", len(cats))
	}
}

func TestLoad_AbsentSlotsUseDefaults(t *testing.T) {
	store := NewJSONStore(t.TempDir())
	if err := store.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	cats, _ := store.GetAllCategories()
	if len(cats) != 4 {
		t.Errorf("expected default categories on absent slot, got %d", len(cats))
	}
}

func TestSave_StripsTransientAudioPath(t *testing.T) {
	dir := t.TempDir()
	store := NewJSONStore(dir)
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}

	p := models.Project{
		ID:        "p1",
		Title:     "Session",
		AudioFile: "take1.wav",
		AudioPath: "/home/user/audio/take1.wav",
		Duration:  120,
	}
	if err := store.AddProject(p); err != nil {
		t.Fatalf("AddProject failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, constants.ProjectsSlot))
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "/home/user/audio") {
		t.Error("absolute audio path must never be persisted")
	}
	if !strings.Contains(string(data), "take1.wav") {
		t.Error("audio basename should be persisted")
	}

	fresh := NewJSONStore(dir)
	if err := fresh.Load(); err != nil {
		t.Fatal(err)
	}
	got, err := fresh.GetProject("p1")
	if err != nil {
		t.Fatal(err)
	}
	if got.AudioPath != "" {
		t.Errorf("AudioPath should be empty after reload, got %q", got.AudioPath)
	}
	if got.AudioFile != "take1.wav" || got.Duration != 120 {
		t.Errorf("persisted fields lost: %+v", got)
	}
}

func TestProjects_InsertionOrderPreserved(t *testing.T) {
	store := newTestStore(t)
	for _, id := range []string{"z", "a", "m"} {
		if err := store.AddProject(models.Project{ID: id, Title: id}); err != nil {
			t.Fatal(err)
		}
	}

	projects, _ := store.GetAllProjects()
	if projects[0].ID != "z" || projects[1].ID != "a" || projects[2].ID != "m" {
		t.Errorf("projects should keep insertion order, got %v", projects)
	}
}

func TestReplaceMarkers(t *testing.T) {
	store := newTestStore(t)
	if err := store.AddProject(models.Project{
		ID:    "p1",
		Title: "Session",
		Markers: []models.Marker{
			{ID: "old", Timestamp: 1, Type: "SFX", Status: models.StatusToDo},
		},
	}); err != nil {
		t.Fatal(err)
	}

	replacement := []models.Marker{
		{ID: "new1", Timestamp: 2, Type: "SFX", Status: models.StatusDone},
		{ID: "new2", Timestamp: 3, Type: "SFX", Status: models.StatusToDo},
	}
	if err := store.ReplaceMarkers("p1", replacement); err != nil {
		t.Fatalf("ReplaceMarkers failed: %v", err)
	}

	p, _ := store.GetProject("p1")
	if len(p.Markers) != 2 || p.Markers[0].ID != "new1" {
		t.Errorf("markers not replaced: %+v", p.Markers)
	}

	// The stored copy must not alias the caller's slice.
	replacement[0].Context = "mutated"
	p, _ = store.GetProject("p1")
	if p.Markers[0].Context == "mutated" {
		t.Error("ReplaceMarkers must copy the input slice")
	}

	if err := store.ReplaceMarkers("missing", nil); err == nil {
		t.Error("expected error for unknown project")
	}
}

func TestCategories_CRUD(t *testing.T) {
	store := newTestStore(t)

	c := models.Category{ID: "c9", Name: "Foley", Color: "99"}
	if err := store.AddCategory(c); err != nil {
		t.Fatal(err)
	}
	if err := store.AddCategory(c); err == nil {
		t.Error("expected duplicate id to be rejected")
	}

	c.Color = "120"
	if err := store.UpdateCategory(c); err != nil {
		t.Fatal(err)
	}
	got, err := store.GetCategory("c9")
	if err != nil || got.Color != "120" {
		t.Errorf("update not applied: %+v err=%v", got, err)
	}

	if err := store.DeleteCategory("c9"); err != nil {
		t.Fatal(err)
	}
	if _, err := store.GetCategory("c9"); err == nil {
		t.Error("expected deleted category to be gone")
	}
}

func TestReplaceCategories_PersistsAcrossReload(t *testing.T) {
	dir := t.TempDir()
	store := NewJSONStore(dir)
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}

	next := []models.Category{{ID: "only", Name: "Only", Color: "1"}}
	if err := store.ReplaceCategories(next); err != nil {
		t.Fatal(err)
	}

	fresh := NewJSONStore(dir)
	if err := fresh.Load(); err != nil {
		t.Fatal(err)
	}
	cats, _ := fresh.GetAllCategories()
	if len(cats) != 1 || cats[0].ID != "only" {
		t.Errorf("replacement did not persist: %+v", cats)
	}
}

func TestGetAll_ReturnsCopies(t *testing.T) {
	store := newTestStore(t)
	if err := store.AddProject(models.Project{ID: "p1", Title: "Session"}); err != nil {
		t.Fatal(err)
	}

	projects, _ := store.GetAllProjects()
	projects[0].Title = "mutated"

	again, _ := store.GetAllProjects()
	if again[0].Title != "Session" {
		t.Error("GetAllProjects must return a copy")
	}
}

func TestOperationsRequireLoad(t *testing.T) {
	store := NewJSONStore(t.TempDir())
	if _, err := store.GetAllProjects(); err == nil {
		t.Error("expected error before Load")
	}
	if err := store.AddCategory(models.Category{ID: "c"}); err == nil {
		t.Error("expected error before Load")
	}
}
