package markers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cuemark/internal/models"
)

func sample() []models.Marker {
	return []models.Marker{
		{ID: "m1", Timestamp: 30, Context: "bravo", Type: "SFX", Status: models.StatusDone},
		{ID: "m2", Timestamp: 10, Context: "alpha", Type: "Dialogue", Status: models.StatusToDo},
		{ID: "m3", Timestamp: 20, Context: "charlie", Type: "SFX", Status: models.StatusToDo},
	}
}

func ids(ms []models.Marker) []string {
	out := make([]string, len(ms))
	for i, m := range ms {
		out[i] = m.ID
	}
	return out
}

func TestApply_DefaultShowsEverythingByTimestamp(t *testing.T) {
	got := Apply(sample(), DefaultFilter(), DefaultSort())
	assert.Equal(t, []string{"m2", "m3", "m1"}, ids(got))
}

func TestApply_FiltersAreConjunctive(t *testing.T) {
	f := Filter{Type: "SFX", Status: string(models.StatusToDo)}
	got := Apply(sample(), f, DefaultSort())
	assert.Equal(t, []string{"m3"}, ids(got))
}

func TestApply_TypeFilterOnly(t *testing.T) {
	got := Apply(sample(), Filter{Type: "SFX", Status: FilterAll}, DefaultSort())
	assert.Equal(t, []string{"m3", "m1"}, ids(got))
}

func TestApply_EmptyFilterFieldsMatchAll(t *testing.T) {
	// The zero Filter behaves like the wildcard.
	got := Apply(sample(), Filter{}, DefaultSort())
	assert.Len(t, got, 3)
}

func TestApply_SortByContextDescending(t *testing.T) {
	got := Apply(sample(), DefaultFilter(), Sort{Key: SortContext, Dir: Descending})
	assert.Equal(t, []string{"m3", "m1", "m2"}, ids(got))
}

func TestApply_StableOnEqualKeys(t *testing.T) {
	in := []models.Marker{
		{ID: "a", Timestamp: 5, Context: "x"},
		{ID: "b", Timestamp: 5, Context: "y"},
		{ID: "c", Timestamp: 5, Context: "z"},
	}

	// Equal timestamps keep collection order in both directions.
	asc := Apply(in, DefaultFilter(), Sort{Key: SortTimestamp, Dir: Ascending})
	assert.Equal(t, []string{"a", "b", "c"}, ids(asc))

	desc := Apply(in, DefaultFilter(), Sort{Key: SortTimestamp, Dir: Descending})
	assert.Equal(t, []string{"a", "b", "c"}, ids(desc))
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	in := sample()
	want := sample()

	Apply(in, Filter{Type: "SFX", Status: FilterAll}, Sort{Key: SortContext, Dir: Descending})
	assert.Equal(t, want, in)
}

func TestApply_Idempotent(t *testing.T) {
	f := Filter{Type: "SFX", Status: FilterAll}
	s := Sort{Key: SortContext, Dir: Ascending}

	once := Apply(sample(), f, s)
	twice := Apply(once, f, s)
	assert.Equal(t, once, twice)
}

func TestApply_EmptyInput(t *testing.T) {
	got := Apply(nil, DefaultFilter(), DefaultSort())
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestSortByTimestamp(t *testing.T) {
	got := SortByTimestamp(sample())
	assert.Equal(t, []string{"m2", "m3", "m1"}, ids(got))
}

func TestSortKeys_CycleOrder(t *testing.T) {
	assert.Equal(t, []SortKey{SortTimestamp, SortContext, SortType, SortStatus}, SortKeys())
}
