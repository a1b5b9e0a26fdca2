package projectlist

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"cuemark/internal/models"
	"cuemark/internal/utils"
)

type OpenProjectMsg struct {
	ID string
}

type AddProjectMsg struct{}

type RenameProjectMsg struct {
	Project models.Project
}

type DeleteProjectMsg struct {
	ID string
}

type Item struct {
	Project models.Project
}

func (i Item) Title() string { return i.Project.Title }

func (i Item) Description() string {
	if i.Project.AudioFile == "" {
		return fmt.Sprintf("%d markers | no audio", len(i.Project.Markers))
	}
	linked := "re-link needed"
	if i.Project.Linked() {
		linked = "linked"
	}
	return fmt.Sprintf("%d markers | %s (%s) | %s",
		len(i.Project.Markers), i.Project.AudioFile, utils.FormatTimestamp(i.Project.Duration), linked)
}

func (i Item) FilterValue() string { return i.Project.Title }

type KeyMap struct {
	Open   key.Binding
	Add    key.Binding
	Rename key.Binding
	Delete key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "new project"),
		),
		Rename: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "rename"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(projects []models.Project, width, height int) Model {
	items := make([]list.Item, len(projects))
	for i, p := range projects {
		items[i] = Item{Project: p}
	}

	l := list.New(items, list.NewDefaultDelegate(), width, height)
	l.Title = "Projects"
	l.SetShowTitle(false)
	l.SetShowHelp(false) // help is rendered globally by the main model

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Open, keys.Add, keys.Rename, keys.Delete}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Open, keys.Add, keys.Rename, keys.Delete}
	}

	return Model{list: l, keys: keys}
}

func (m *Model) SetProjects(projects []models.Project) {
	items := make([]list.Item, len(projects))
	for i, p := range projects {
		items[i] = Item{Project: p}
	}
	m.list.SetItems(items)
}

// Selected returns the currently highlighted project.
func (m Model) Selected() (models.Project, bool) {
	if i, ok := m.list.SelectedItem().(Item); ok {
		return i.Project, true
	}
	return models.Project{}, false
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
		case key.Matches(msg, m.keys.Open):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return OpenProjectMsg{ID: i.Project.ID} }
			}
		case key.Matches(msg, m.keys.Add):
			return m, func() tea.Msg { return AddProjectMsg{} }
		case key.Matches(msg, m.keys.Rename):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return RenameProjectMsg{Project: i.Project} }
			}
		case key.Matches(msg, m.keys.Delete):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return DeleteProjectMsg{ID: i.Project.ID} }
			}
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return "\n  No projects yet.\n  Press 'a' to create one."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
