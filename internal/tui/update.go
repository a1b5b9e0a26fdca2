package tui

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/google/uuid"

	"cuemark/internal/audio"
	"cuemark/internal/constants"
	"cuemark/internal/interchange"
	"cuemark/internal/logger"
	"cuemark/internal/models"
	"cuemark/internal/tui/components/categorylist"
	"cuemark/internal/tui/components/markerlist"
	"cuemark/internal/tui/components/projectlist"
	"cuemark/internal/utils"
)

// tickInterval drives the transport while playing. 5 Hz keeps the position
// readout smooth without burning CPU on redraws.
const tickInterval = 200 * time.Millisecond

const seekStep = 5.0

type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

type watchMsg audio.WatchEvent

// waitForWatch blocks on the watcher channel from a command goroutine so the
// event loop stays single-threaded.
func waitForWatch(w *audio.Watcher) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-w.C
		if !ok {
			return nil
		}
		return watchMsg(ev)
	}
}

func (m *Model) watchCmd() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	return waitForWatch(m.watcher)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// Handle Project Form State
	if m.state == constants.StateProjectForm {
		if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
			m.state = constants.StateProjects
			return m, nil
		}

		form, cmd := m.form.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			m.form = f
		}
		cmds = append(cmds, cmd)

		switch m.form.State {
		case huh.StateCompleted:
			if m.editingProjectID == "" {
				project := models.Project{
					ID:      uuid.New().String(),
					Title:   m.projectForm.Title,
					Markers: []models.Marker{},
				}
				if err := m.store.AddProject(project); err != nil {
					m.state = constants.StateProjects
					m.showMessage(fmt.Sprintf("Failed to add project: %v", err))
					return m, tea.Batch(cmds...)
				}
			} else {
				project, err := m.store.GetProject(m.editingProjectID)
				if err == nil {
					project.Title = m.projectForm.Title
					if err := m.store.UpdateProject(project); err != nil {
						m.state = constants.StateProjects
						m.showMessage(fmt.Sprintf("Failed to rename project: %v", err))
						return m, tea.Batch(cmds...)
					}
				}
			}
			m.refreshProjects()
			m.refreshOpenProject()
			m.state = constants.StateProjects
		case huh.StateAborted:
			m.state = constants.StateProjects
		}
		return m, tea.Batch(cmds...)
	}

	// Handle Marker Form State
	if m.state == constants.StateMarkerForm {
		if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
			m.state = constants.StateEditor
			return m, nil
		}

		form, cmd := m.form.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			m.form = f
		}
		cmds = append(cmds, cmd)

		switch m.form.State {
		case huh.StateCompleted:
			ts, err := utils.ParseTimestamp(m.markerForm.Timestamp)
			if err != nil {
				// The form validator already gated this; treat as abort.
				m.state = constants.StateEditor
				return m, tea.Batch(cmds...)
			}
			status, err := models.ParseStatus(m.markerForm.Status)
			if err != nil {
				status = models.StatusToDo
			}

			if m.editingMarkerID == "" {
				m.openProject.Markers = append(m.openProject.Markers, models.Marker{
					ID:        uuid.New().String(),
					Timestamp: ts,
					Context:   m.markerForm.Context,
					Type:      m.markerForm.Type,
					Status:    status,
				})
			} else {
				for i := range m.openProject.Markers {
					if m.openProject.Markers[i].ID == m.editingMarkerID {
						m.openProject.Markers[i].Timestamp = ts
						m.openProject.Markers[i].Context = m.markerForm.Context
						m.openProject.Markers[i].Type = m.markerForm.Type
						m.openProject.Markers[i].Status = status
						break
					}
				}
			}

			if err := m.store.UpdateProject(m.openProject); err != nil {
				m.state = constants.StateEditor
				m.showMessage(fmt.Sprintf("Failed to save marker: %v", err))
				return m, tea.Batch(cmds...)
			}
			m.refreshOpenProject()
			m.refreshProjects()
			m.state = constants.StateEditor
		case huh.StateAborted:
			m.state = constants.StateEditor
		}
		return m, tea.Batch(cmds...)
	}

	// Handle Category Form State
	if m.state == constants.StateCategoryForm {
		if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
			m.state = constants.StateSettings
			return m, nil
		}

		form, cmd := m.form.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			m.form = f
		}
		cmds = append(cmds, cmd)

		switch m.form.State {
		case huh.StateCompleted:
			if m.editingCategoryID == "" {
				cat := models.Category{
					ID:    uuid.New().String(),
					Name:  m.categoryForm.Name,
					Color: m.categoryForm.Color,
				}
				if err := m.store.AddCategory(cat); err != nil {
					m.state = constants.StateSettings
					m.showMessage(fmt.Sprintf("Failed to add category: %v", err))
					return m, tea.Batch(cmds...)
				}
			} else {
				cat, err := m.store.GetCategory(m.editingCategoryID)
				if err == nil {
					cat.Name = m.categoryForm.Name
					cat.Color = m.categoryForm.Color
					if err := m.store.UpdateCategory(cat); err != nil {
						m.state = constants.StateSettings
						m.showMessage(fmt.Sprintf("Failed to update category: %v", err))
						return m, tea.Batch(cmds...)
					}
				}
			}
			m.refreshCategories()
			m.state = constants.StateSettings
		case huh.StateAborted:
			m.state = constants.StateSettings
		}
		return m, tea.Batch(cmds...)
	}

	// Handle Link Form State
	if m.state == constants.StateLinkForm {
		if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
			m.state = constants.StateEditor
			return m, nil
		}

		form, cmd := m.form.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			m.form = f
		}
		cmds = append(cmds, cmd)

		switch m.form.State {
		case huh.StateCompleted:
			m.state = constants.StateEditor
			var duration float64
			if strings.TrimSpace(m.linkForm.Duration) != "" {
				duration, _ = utils.ParseTimestamp(m.linkForm.Duration)
			} else {
				var err error
				duration, err = audio.ProbeDuration(m.linkForm.Path)
				if errors.Is(err, audio.ErrUnsupported) {
					m.showMessage("Could not read the duration from this file format. Link again and enter the duration manually.")
					return m, tea.Batch(cmds...)
				}
				if err != nil {
					m.showMessage(fmt.Sprintf("Could not read audio file: %v", err))
					return m, tea.Batch(cmds...)
				}
			}
			if err := m.linkAudio(m.linkForm.Path, duration); err != nil {
				m.showMessage(fmt.Sprintf("Failed to link audio: %v", err))
				return m, tea.Batch(cmds...)
			}
			cmds = append(cmds, m.watchCmd())
		case huh.StateAborted:
			m.state = constants.StateEditor
		}
		return m, tea.Batch(cmds...)
	}

	// Handle Import Form State
	if m.state == constants.StateImportForm {
		if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
			m.state = m.importReturnState()
			return m, nil
		}

		form, cmd := m.form.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			m.form = f
		}
		cmds = append(cmds, cmd)

		switch m.form.State {
		case huh.StateCompleted:
			m.state = m.importReturnState()
			data, err := os.ReadFile(m.importForm.Path)
			if err != nil {
				m.showMessage(fmt.Sprintf("Could not read file: %v", err))
				return m, tea.Batch(cmds...)
			}

			switch m.importForm.Kind {
			case transferMarkersCSV:
				cats, _ := m.store.GetAllCategories()
				imported, err := interchange.ImportMarkersCSV(string(data), cats)
				if err != nil {
					m.showMessage(fmt.Sprintf("Import failed: %v\n\nNo markers were changed.", err))
					return m, tea.Batch(cmds...)
				}
				m.pendingMarkers = imported
				m.state = constants.StateConfirmImport
			case transferCategories:
				imported, err := interchange.ImportCategoriesJSON(data)
				if err != nil {
					m.showMessage(fmt.Sprintf("Import failed: %v\n\nNo categories were changed.", err))
					return m, tea.Batch(cmds...)
				}
				m.pendingCategories = imported
				m.state = constants.StateConfirmImport
			}
		case huh.StateAborted:
			m.state = m.importReturnState()
		}
		return m, tea.Batch(cmds...)
	}

	// Handle Export Form State
	if m.state == constants.StateExportForm {
		if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
			m.state = m.exportReturnState()
			return m, nil
		}

		form, cmd := m.form.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			m.form = f
		}
		cmds = append(cmds, cmd)

		switch m.form.State {
		case huh.StateCompleted:
			m.state = m.exportReturnState()
			if err := m.runExport(); err != nil {
				m.showMessage(fmt.Sprintf("Export failed: %v", err))
			}
		case huh.StateAborted:
			m.state = m.exportReturnState()
		}
		return m, tea.Batch(cmds...)
	}

	// Handle Confirm Import State
	if m.state == constants.StateConfirmImport {
		if msg, ok := msg.(tea.KeyMsg); ok {
			switch msg.String() {
			case "y", "Y":
				if m.pendingMarkers != nil {
					if err := m.store.ReplaceMarkers(m.openProject.ID, m.pendingMarkers); err != nil {
						m.state = constants.StateEditor
						m.pendingMarkers = nil
						m.showMessage(fmt.Sprintf("Import failed: %v", err))
						return m, nil
					}
					m.pendingMarkers = nil
					m.refreshOpenProject()
					m.refreshProjects()
					m.state = constants.StateEditor
				} else if m.pendingCategories != nil {
					if err := m.store.ReplaceCategories(m.pendingCategories); err != nil {
						m.state = constants.StateSettings
						m.pendingCategories = nil
						m.showMessage(fmt.Sprintf("Import failed: %v", err))
						return m, nil
					}
					m.pendingCategories = nil
					m.refreshCategories()
					m.state = constants.StateSettings
				}
			case "n", "N", "esc", "q":
				if m.pendingCategories != nil {
					m.state = constants.StateSettings
				} else {
					m.state = constants.StateEditor
				}
				m.pendingMarkers = nil
				m.pendingCategories = nil
			}
		}
		return m, nil
	}

	// Handle Confirm Delete Project State
	if m.state == constants.StateConfirmDeleteProject {
		if msg, ok := msg.(tea.KeyMsg); ok {
			switch msg.String() {
			case "y", "Y":
				if err := m.store.DeleteProject(m.projectToDeleteID); err != nil {
					m.state = constants.StateProjects
					m.projectToDeleteID = ""
					m.showMessage(fmt.Sprintf("Failed to delete project: %v", err))
					return m, nil
				}
				if m.hasOpen && m.openProject.ID == m.projectToDeleteID {
					m.closeProject()
				}
				m.refreshProjects()
				m.state = constants.StateProjects
				m.projectToDeleteID = ""
			case "n", "N", "esc", "q":
				m.state = constants.StateProjects
				m.projectToDeleteID = ""
			}
		}
		return m, nil
	}

	// Handle Confirm Delete Marker State
	if m.state == constants.StateConfirmDeleteMarker {
		if msg, ok := msg.(tea.KeyMsg); ok {
			switch msg.String() {
			case "y", "Y":
				kept := m.openProject.Markers[:0:0]
				for _, mk := range m.openProject.Markers {
					if mk.ID != m.markerToDeleteID {
						kept = append(kept, mk)
					}
				}
				m.openProject.Markers = kept
				if err := m.store.UpdateProject(m.openProject); err != nil {
					m.state = constants.StateEditor
					m.markerToDeleteID = ""
					m.showMessage(fmt.Sprintf("Failed to delete marker: %v", err))
					return m, nil
				}
				m.refreshOpenProject()
				m.refreshProjects()
				m.state = constants.StateEditor
				m.markerToDeleteID = ""
			case "n", "N", "esc", "q":
				m.state = constants.StateEditor
				m.markerToDeleteID = ""
			}
		}
		return m, nil
	}

	// Handle Confirm Delete Category State
	if m.state == constants.StateConfirmDeleteCategory {
		if msg, ok := msg.(tea.KeyMsg); ok {
			switch msg.String() {
			case "y", "Y":
				// Markers referencing the deleted category keep their type name
				// and render as dangling.
				if err := m.store.DeleteCategory(m.categoryToDeleteID); err != nil {
					m.state = constants.StateSettings
					m.categoryToDeleteID = ""
					m.showMessage(fmt.Sprintf("Failed to delete category: %v", err))
					return m, nil
				}
				m.refreshCategories()
				m.state = constants.StateSettings
				m.categoryToDeleteID = ""
			case "n", "N", "esc", "q":
				m.state = constants.StateSettings
				m.categoryToDeleteID = ""
			}
		}
		return m, nil
	}

	// Handle Message State: a blocking modal dismissed by any key.
	if m.state == constants.StateMessage {
		if _, ok := msg.(tea.KeyMsg); ok {
			m.state = m.previousState
			m.message = ""
		}
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		listHeight := msg.Height - 4 // tabs + help

		h, v := docStyle.GetFrameSize()
		m.projectList.SetSize(msg.Width-h, listHeight-v)
		m.markerList.SetSize(msg.Width-h, listHeight-v-2) // transport + status line
		m.categoryList.SetSize(msg.Width-h, listHeight-v)

	case tickMsg:
		if m.transport != nil && m.transport.Playing() {
			m.transport.Advance(tickInterval.Seconds())
			if m.transport.Playing() {
				return m, tickCmd()
			}
		}
		return m, nil

	case watchMsg:
		switch audio.WatchEvent(msg) {
		case audio.FileMissing:
			if m.transport != nil {
				m.transport.Pause()
			}
			m.openProject.AudioPath = ""
			m.stopWatcher()
			m.refreshProjects()
			m.showMessage(constants.MsgAudioMissing)
			return m, nil
		case audio.FileChanged:
			// The file was rewritten in place; re-probe so the duration and
			// marker bounds stay honest.
			if m.openProject.Linked() {
				if duration, err := audio.ProbeDuration(m.openProject.AudioPath); err == nil && duration != m.openProject.Duration {
					if err := m.linkAudio(m.openProject.AudioPath, duration); err != nil {
						logger.Warn("Failed to refresh changed audio", "error", err)
					}
					return m, m.watchCmd()
				}
			}
		}
		return m, m.watchCmd()

	case projectlist.OpenProjectMsg:
		m.openProjectByID(msg.ID)
		return m, m.watchCmd()

	case projectlist.AddProjectMsg:
		m.editingProjectID = ""
		m.projectForm = &ProjectFormModel{}
		m.form = newProjectForm(m.projectForm)
		m.state = constants.StateProjectForm
		return m, m.form.Init()

	case projectlist.RenameProjectMsg:
		m.editingProjectID = msg.Project.ID
		m.projectForm = &ProjectFormModel{Title: msg.Project.Title}
		m.form = newProjectForm(m.projectForm)
		m.state = constants.StateProjectForm
		return m, m.form.Init()

	case projectlist.DeleteProjectMsg:
		m.projectToDeleteID = msg.ID
		m.state = constants.StateConfirmDeleteProject
		return m, nil

	case markerlist.AddMarkerMsg:
		cats, _ := m.store.GetAllCategories()
		if len(cats) == 0 {
			m.showMessage(constants.MsgNoCategories)
			return m, nil
		}
		ts := 0.0
		if m.transport != nil {
			ts = m.transport.Position()
		}
		m.editingMarkerID = ""
		m.markerForm = &MarkerFormModel{
			Timestamp: utils.FormatTimestamp(ts),
			Type:      cats[0].Name,
			Status:    string(models.StatusToDo),
		}
		m.form = newMarkerForm(m.markerForm, cats, m.openProject.Duration)
		m.state = constants.StateMarkerForm
		return m, m.form.Init()

	case markerlist.EditMarkerMsg:
		cats, _ := m.store.GetAllCategories()
		if len(cats) == 0 {
			m.showMessage(constants.MsgNoCategories)
			return m, nil
		}
		m.editingMarkerID = msg.Marker.ID
		m.markerForm = &MarkerFormModel{
			Timestamp: utils.FormatTimestamp(msg.Marker.Timestamp),
			Context:   msg.Marker.Context,
			Type:      msg.Marker.Type,
			Status:    string(msg.Marker.Status),
		}
		m.form = newMarkerForm(m.markerForm, cats, m.openProject.Duration)
		m.state = constants.StateMarkerForm
		return m, m.form.Init()

	case markerlist.DeleteMarkerMsg:
		m.markerToDeleteID = msg.ID
		m.state = constants.StateConfirmDeleteMarker
		return m, nil

	case markerlist.ImportCSVMsg:
		m.importForm = &ImportFormModel{Kind: transferMarkersCSV}
		m.form = newImportForm(m.importForm, "Marker CSV Path")
		m.state = constants.StateImportForm
		return m, m.form.Init()

	case markerlist.ExportCSVMsg:
		if len(m.openProject.Markers) == 0 {
			m.showMessage(constants.MsgNothingToExport)
			return m, nil
		}
		m.exportForm = &ExportFormModel{
			Kind: transferMarkersCSV,
			Path: fmt.Sprintf("%s-markers.csv", m.openProject.Title),
		}
		m.form = newExportForm(m.exportForm, "Export CSV To")
		m.state = constants.StateExportForm
		return m, m.form.Init()

	case markerlist.ExportTimecodeMsg:
		if len(m.openProject.Markers) == 0 {
			m.showMessage(constants.MsgNothingToExport)
			return m, nil
		}
		m.exportForm = &ExportFormModel{
			Kind: transferTimecode,
			Path: fmt.Sprintf("%s-timecode.txt", m.openProject.Title),
		}
		m.form = newExportForm(m.exportForm, "Export Timecode To")
		m.state = constants.StateExportForm
		return m, m.form.Init()

	case categorylist.AddCategoryMsg:
		m.editingCategoryID = ""
		m.categoryForm = &CategoryFormModel{Color: "205"}
		cats, _ := m.store.GetAllCategories()
		m.form = newCategoryForm(m.categoryForm, cats, "")
		m.state = constants.StateCategoryForm
		return m, m.form.Init()

	case categorylist.EditCategoryMsg:
		m.editingCategoryID = msg.Category.ID
		m.categoryForm = &CategoryFormModel{Name: msg.Category.Name, Color: msg.Category.Color}
		cats, _ := m.store.GetAllCategories()
		m.form = newCategoryForm(m.categoryForm, cats, msg.Category.ID)
		m.state = constants.StateCategoryForm
		return m, m.form.Init()

	case categorylist.DeleteCategoryMsg:
		m.categoryToDeleteID = msg.ID
		m.state = constants.StateConfirmDeleteCategory
		return m, nil

	case categorylist.ImportCategoriesMsg:
		m.importForm = &ImportFormModel{Kind: transferCategories}
		m.form = newImportForm(m.importForm, "Category Settings Path")
		m.state = constants.StateImportForm
		return m, m.form.Init()

	case categorylist.ExportCategoriesMsg:
		cats, _ := m.store.GetAllCategories()
		if len(cats) == 0 {
			m.showMessage("No categories to export.")
			return m, nil
		}
		m.exportForm = &ExportFormModel{
			Kind: transferCategories,
			Path: "cuemark-categories.json",
		}
		m.form = newExportForm(m.exportForm, "Export Categories To")
		m.state = constants.StateExportForm
		return m, m.form.Init()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tab):
			m.state = (m.state + 1) % 3
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab):
			m.state = (m.state + 2) % 3
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch m.state {
	case constants.StateProjects:
		m.projectList, cmd = m.projectList.Update(msg)
		cmds = append(cmds, cmd)

	case constants.StateEditor:
		if !m.hasOpen {
			break
		}
		if msg, ok := msg.(tea.KeyMsg); ok {
			switch {
			case key.Matches(msg, m.keys.Back):
				m.state = constants.StateProjects
				return m, nil
			case key.Matches(msg, m.keys.PlayPause):
				if !m.openProject.Linked() {
					m.showMessage(constants.MsgNoAudioLinked)
					return m, nil
				}
				m.transport.Toggle()
				if m.transport.Playing() {
					return m, tickCmd()
				}
				return m, nil
			case key.Matches(msg, m.keys.SeekBack):
				if m.transport != nil {
					m.transport.SeekBy(-seekStep)
				}
				return m, nil
			case key.Matches(msg, m.keys.SeekFwd):
				if m.transport != nil {
					m.transport.SeekBy(seekStep)
				}
				return m, nil
			case key.Matches(msg, m.keys.Link):
				m.linkForm = &LinkFormModel{Path: m.openProject.AudioPath}
				m.form = newLinkForm(m.linkForm)
				m.state = constants.StateLinkForm
				return m, m.form.Init()
			}
		}
		m.markerList, cmd = m.markerList.Update(msg)
		cmds = append(cmds, cmd)

	case constants.StateSettings:
		m.categoryList, cmd = m.categoryList.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) importReturnState() constants.SessionState {
	if m.importForm != nil && m.importForm.Kind == transferCategories {
		return constants.StateSettings
	}
	return constants.StateEditor
}

func (m Model) exportReturnState() constants.SessionState {
	if m.exportForm != nil && m.exportForm.Kind == transferCategories {
		return constants.StateSettings
	}
	return constants.StateEditor
}

// runExport writes the selected interchange format to the chosen path.
func (m *Model) runExport() error {
	var (
		data  []byte
		count int
	)

	switch m.exportForm.Kind {
	case transferMarkersCSV:
		visible := m.markerList.Visible()
		data = []byte(interchange.ExportMarkersCSV(visible))
		count = len(visible)
	case transferTimecode:
		visible := m.markerList.Visible()
		data = []byte(interchange.ExportTimecodeTSV(visible))
		count = len(visible)
	case transferCategories:
		cats, err := m.store.GetAllCategories()
		if err != nil {
			return err
		}
		out, err := interchange.ExportCategoriesJSON(cats)
		if err != nil {
			return err
		}
		data = out
		count = len(cats)
	}

	if err := os.WriteFile(m.exportForm.Path, data, 0o644); err != nil {
		return err
	}
	m.showMessage(fmt.Sprintf("Exported %d entries to %s", count, m.exportForm.Path))
	return nil
}
