// Package markerlist renders the filtered, sorted marker view of the open
// project. Filter and sort state live here for the session only; the stored
// collection is never reordered by viewing it.
package markerlist

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"cuemark/internal/markers"
	"cuemark/internal/models"
	"cuemark/internal/utils"
)

type AddMarkerMsg struct{}

type EditMarkerMsg struct {
	Marker models.Marker
}

type DeleteMarkerMsg struct {
	ID string
}

type ImportCSVMsg struct{}

type ExportCSVMsg struct{}

type ExportTimecodeMsg struct{}

type Item struct {
	Marker models.Marker
	Type   models.MarkerType
}

func (i Item) Title() string {
	label := i.Marker.Type
	if i.Type.Resolved() {
		label = lipgloss.NewStyle().
			Foreground(lipgloss.Color(i.Type.Category.Color)).
			Render(i.Marker.Type)
	} else {
		label = label + " (deleted)"
	}
	return fmt.Sprintf("%s  %s", utils.FormatTimestamp(i.Marker.Timestamp), label)
}

func (i Item) Description() string {
	return fmt.Sprintf("%s | %s", i.Marker.Status, i.Marker.Context)
}

func (i Item) FilterValue() string { return i.Marker.Context }

type KeyMap struct {
	Add          key.Binding
	Edit         key.Binding
	Delete       key.Binding
	CycleType    key.Binding
	CycleStatus  key.Binding
	CycleSort    key.Binding
	ToggleDir    key.Binding
	ImportCSV    key.Binding
	ExportCSV    key.Binding
	ExportTC     key.Binding
	ClearFilters key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "drop marker"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		CycleType: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "filter type"),
		),
		CycleStatus: key.NewBinding(
			key.WithKeys("F"),
			key.WithHelp("F", "filter status"),
		),
		CycleSort: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "sort key"),
		),
		ToggleDir: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "sort direction"),
		),
		ImportCSV: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "import csv"),
		),
		ExportCSV: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "export csv"),
		),
		ExportTC: key.NewBinding(
			key.WithKeys("X"),
			key.WithHelp("X", "export timecode"),
		),
		ClearFilters: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "clear filters"),
		),
	}
}

type Model struct {
	list       list.Model
	keys       KeyMap
	all        []models.Marker
	categories []models.Category
	filter     markers.Filter
	sort       markers.Sort
}

func New(ms []models.Marker, cats []models.Category, width, height int) Model {
	l := list.New(nil, list.NewDefaultDelegate(), width, height)
	l.Title = "Markers"
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Edit, keys.Delete, keys.CycleType, keys.CycleSort}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{
			keys.Add, keys.Edit, keys.Delete,
			keys.CycleType, keys.CycleStatus, keys.CycleSort, keys.ToggleDir, keys.ClearFilters,
			keys.ImportCSV, keys.ExportCSV, keys.ExportTC,
		}
	}

	m := Model{
		list:       l,
		keys:       keys,
		all:        ms,
		categories: cats,
		filter:     markers.DefaultFilter(),
		sort:       markers.DefaultSort(),
	}
	m.recompute()
	return m
}

// SetMarkers replaces the underlying collection; the session's filter and
// sort are reapplied.
func (m *Model) SetMarkers(ms []models.Marker) {
	m.all = ms
	m.recompute()
}

func (m *Model) SetCategories(cats []models.Category) {
	m.categories = cats
	// An active type filter may no longer exist; widen rather than show an
	// empty list with an invisible filter.
	if m.filter.Type != markers.FilterAll {
		if _, ok := models.FindCategory(cats, m.filter.Type); !ok {
			m.filter.Type = markers.FilterAll
		}
	}
	m.recompute()
}

// Visible returns the markers as currently filtered and sorted.
func (m Model) Visible() []models.Marker {
	return markers.Apply(m.all, m.filter, m.sort)
}

// Selected returns the highlighted marker.
func (m Model) Selected() (models.Marker, bool) {
	if i, ok := m.list.SelectedItem().(Item); ok {
		return i.Marker, true
	}
	return models.Marker{}, false
}

func (m *Model) recompute() {
	visible := markers.Apply(m.all, m.filter, m.sort)
	items := make([]list.Item, len(visible))
	for i, mk := range visible {
		items[i] = Item{Marker: mk, Type: models.ResolveType(mk.Type, m.categories)}
	}
	m.list.SetItems(items)
}

func (m *Model) cycleTypeFilter() {
	names := models.CategoryNames(m.categories)
	if len(names) == 0 {
		m.filter.Type = markers.FilterAll
		return
	}
	if m.filter.Type == markers.FilterAll {
		m.filter.Type = names[0]
		return
	}
	for i, n := range names {
		if n == m.filter.Type {
			if i+1 < len(names) {
				m.filter.Type = names[i+1]
			} else {
				m.filter.Type = markers.FilterAll
			}
			return
		}
	}
	m.filter.Type = markers.FilterAll
}

func (m *Model) cycleStatusFilter() {
	names := models.StatusNames()
	if m.filter.Status == markers.FilterAll {
		m.filter.Status = names[0]
		return
	}
	for i, n := range names {
		if n == m.filter.Status {
			if i+1 < len(names) {
				m.filter.Status = names[i+1]
			} else {
				m.filter.Status = markers.FilterAll
			}
			return
		}
	}
	m.filter.Status = markers.FilterAll
}

func (m *Model) cycleSortKey() {
	keys := markers.SortKeys()
	for i, k := range keys {
		if k == m.sort.Key {
			m.sort.Key = keys[(i+1)%len(keys)]
			m.recompute()
			return
		}
	}
	m.sort.Key = keys[0]
	m.recompute()
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Add):
			return m, func() tea.Msg { return AddMarkerMsg{} }
		case key.Matches(msg, m.keys.Edit):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return EditMarkerMsg{Marker: i.Marker} }
			}
		case key.Matches(msg, m.keys.Delete):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return DeleteMarkerMsg{ID: i.Marker.ID} }
			}
		case key.Matches(msg, m.keys.CycleType):
			m.cycleTypeFilter()
			m.recompute()
			return m, nil
		case key.Matches(msg, m.keys.CycleStatus):
			m.cycleStatusFilter()
			m.recompute()
			return m, nil
		case key.Matches(msg, m.keys.CycleSort):
			m.cycleSortKey()
			return m, nil
		case key.Matches(msg, m.keys.ToggleDir):
			if m.sort.Dir == markers.Ascending {
				m.sort.Dir = markers.Descending
			} else {
				m.sort.Dir = markers.Ascending
			}
			m.recompute()
			return m, nil
		case key.Matches(msg, m.keys.ClearFilters):
			m.filter = markers.DefaultFilter()
			m.recompute()
			return m, nil
		case key.Matches(msg, m.keys.ImportCSV):
			return m, func() tea.Msg { return ImportCSVMsg{} }
		case key.Matches(msg, m.keys.ExportCSV):
			return m, func() tea.Msg { return ExportCSVMsg{} }
		case key.Matches(msg, m.keys.ExportTC):
			return m, func() tea.Msg { return ExportTimecodeMsg{} }
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// StatusLine summarizes the active filter and sort for the editor header.
func (m Model) StatusLine() string {
	dir := "asc"
	if m.sort.Dir == markers.Descending {
		dir = "desc"
	}
	return fmt.Sprintf("type: %s | status: %s | sort: %s %s | %d/%d shown",
		m.filter.Type, m.filter.Status, m.sort.Key, dir, len(m.Visible()), len(m.all))
}

func (m Model) View() string {
	if len(m.all) == 0 && m.list.FilterState() != list.Filtering {
		return "\n  No markers yet.\n  Press 'm' to drop one at the playhead."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
