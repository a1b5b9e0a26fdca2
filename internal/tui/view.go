package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"cuemark/internal/constants"
	"cuemark/internal/utils"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string

	switch m.state {
	case constants.StateProjects:
		content = m.viewProjects()
	case constants.StateEditor:
		content = m.viewEditor()
	case constants.StateSettings:
		content = m.viewSettings()
	case constants.StateProjectForm, constants.StateMarkerForm, constants.StateCategoryForm,
		constants.StateLinkForm, constants.StateImportForm, constants.StateExportForm:
		content = m.form.View()
	case constants.StateConfirmDeleteProject:
		content = m.viewConfirm(dangerStyle.Render("Delete this project and all of its markers?"))
	case constants.StateConfirmDeleteMarker:
		content = m.viewConfirm(dangerStyle.Render("Delete this marker?"))
	case constants.StateConfirmDeleteCategory:
		content = m.viewConfirm(dangerStyle.Render("Delete this category?"),
			"Markers of this type will keep the name but lose their color.")
	case constants.StateConfirmImport:
		content = m.viewConfirmImport()
	case constants.StateMessage:
		content = m.viewMessage()
	}

	ui := lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		content,
		m.help.View(m),
	)

	return ui
}

func (m Model) viewTabs() string {
	var tabs []string
	tabTitles := []string{"Projects", "Editor", "Settings"}
	for i, title := range tabTitles {
		if m.state == constants.SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewProjects() string {
	return docStyle.Render(m.projectList.View())
}

func (m Model) viewEditor() string {
	if !m.hasOpen {
		return docStyle.Render("\n  No project open.\n  Select one from the Projects tab.")
	}
	return docStyle.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTransport(),
		statusLineStyle.Render(m.markerList.StatusLine()),
		m.markerList.View(),
	))
}

func (m Model) viewTransport() string {
	icon := "⏸"
	if m.transport.Playing() {
		icon = "▶"
	}
	source := m.openProject.AudioFile
	switch {
	case source == "":
		source = warningStyle.Render("no audio linked")
	case !m.openProject.Linked():
		source = warningStyle.Render(source + " (re-link needed)")
	}
	return transportStyle.Render(fmt.Sprintf("%s  %s / %s  %s — %s",
		icon,
		utils.FormatTimestamp(m.transport.Position()),
		utils.FormatTimestamp(m.transport.Duration()),
		source,
		m.openProject.Title,
	))
}

func (m Model) viewSettings() string {
	return docStyle.Render(m.categoryList.View())
}

func (m Model) viewConfirm(lines ...string) string {
	body := append([]string{}, lines...)
	body = append(body, "", "[y] Yes", "[n] No")
	return lipgloss.Place(m.width, m.height-4,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, body...),
	)
}

func (m Model) viewConfirmImport() string {
	var prompt string
	if m.pendingCategories != nil {
		prompt = fmt.Sprintf("Replace all categories with the %d imported ones?", len(m.pendingCategories))
	} else {
		prompt = fmt.Sprintf("Replace this project's %d markers with %d imported ones?",
			len(m.openProject.Markers), len(m.pendingMarkers))
	}
	return m.viewConfirm(dangerStyle.Render(prompt), "The current collection will be overwritten.")
}

func (m Model) viewMessage() string {
	return lipgloss.Place(m.width, m.height-4,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			messageStyle.Render(m.message),
			"",
			"Press any key to continue",
		),
	)
}
