// Package categorylist renders the category settings view.
package categorylist

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"cuemark/internal/models"
)

type AddCategoryMsg struct{}

type EditCategoryMsg struct {
	Category models.Category
}

type DeleteCategoryMsg struct {
	ID string
}

type ImportCategoriesMsg struct{}

type ExportCategoriesMsg struct{}

type Item struct {
	Category models.Category
}

func (i Item) Title() string {
	swatch := lipgloss.NewStyle().
		Foreground(lipgloss.Color(i.Category.Color)).
		Render("●")
	return fmt.Sprintf("%s %s", swatch, i.Category.Name)
}

func (i Item) Description() string { return i.Category.Color }

func (i Item) FilterValue() string { return i.Category.Name }

type KeyMap struct {
	Add    key.Binding
	Edit   key.Binding
	Delete key.Binding
	Import key.Binding
	Export key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "new category"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Import: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "import settings"),
		),
		Export: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "export settings"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(cats []models.Category, width, height int) Model {
	items := make([]list.Item, len(cats))
	for i, c := range cats {
		items[i] = Item{Category: c}
	}

	l := list.New(items, list.NewDefaultDelegate(), width, height)
	l.Title = "Categories"
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Edit, keys.Delete}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Edit, keys.Delete, keys.Import, keys.Export}
	}

	return Model{list: l, keys: keys}
}

func (m *Model) SetCategories(cats []models.Category) {
	items := make([]list.Item, len(cats))
	for i, c := range cats {
		items[i] = Item{Category: c}
	}
	m.list.SetItems(items)
}

func (m Model) Selected() (models.Category, bool) {
	if i, ok := m.list.SelectedItem().(Item); ok {
		return i.Category, true
	}
	return models.Category{}, false
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
			return m, func() tea.Msg { return AddCategoryMsg{} }
		case key.Matches(msg, m.keys.Edit):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return EditCategoryMsg{Category: i.Category} }
			}
		case key.Matches(msg, m.keys.Delete):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return DeleteCategoryMsg{ID: i.Category.ID} }
			}
		case key.Matches(msg, m.keys.Import):
			return m, func() tea.Msg { return ImportCategoriesMsg{} }
		case key.Matches(msg, m.keys.Export):
			return m, func() tea.Msg { return ExportCategoriesMsg{} }
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return "\n  No categories defined.\n  Press 'a' to create one."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
