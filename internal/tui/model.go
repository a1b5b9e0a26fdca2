package tui

import (
	"os"
	"path/filepath"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"cuemark/internal/audio"
	"cuemark/internal/constants"
	"cuemark/internal/logger"
	"cuemark/internal/models"
	"cuemark/internal/playback"
	"cuemark/internal/storage"
	"cuemark/internal/tui/components/categorylist"
	"cuemark/internal/tui/components/markerlist"
	"cuemark/internal/tui/components/projectlist"
)

type ProjectFormModel struct {
	Title string
}

type MarkerFormModel struct {
	Timestamp string
	Context   string
	Type      string
	Status    string
}

type CategoryFormModel struct {
	Name  string
	Color string
}

type LinkFormModel struct {
	Path     string
	Duration string
}

// transferKind selects which interchange format an import/export form targets.
type transferKind int

const (
	transferMarkersCSV transferKind = iota
	transferTimecode
	transferCategories
)

type ImportFormModel struct {
	Path string
	Kind transferKind
}

type ExportFormModel struct {
	Path string
	Kind transferKind
}

type Model struct {
	store         storage.Provider
	state         constants.SessionState
	previousState constants.SessionState
	keys          KeyMap
	help          help.Model

	projectList  projectlist.Model
	markerList   markerlist.Model
	categoryList categorylist.Model

	form         *huh.Form
	projectForm  *ProjectFormModel
	markerForm   *MarkerFormModel
	categoryForm *CategoryFormModel
	linkForm     *LinkFormModel
	importForm   *ImportFormModel
	exportForm   *ExportFormModel

	// Open project session state. The transport exists whenever a project is
	// open; playback is gated on a linked audio source.
	openProject models.Project
	hasOpen     bool
	transport   *playback.Transport
	watcher     *audio.Watcher

	// Pending two-step operations
	editingProjectID   string
	editingMarkerID    string
	editingCategoryID  string
	projectToDeleteID  string
	markerToDeleteID   string
	categoryToDeleteID string
	pendingMarkers     []models.Marker
	pendingCategories  []models.Category

	message  string
	quitting bool
	width    int
	height   int
}

func NewModel(store storage.Provider) Model {
	projects, err := store.GetAllProjects()
	if err != nil {
		logger.Warn("Failed to load projects for TUI", "error", err)
		projects = []models.Project{}
	}
	cats, err := store.GetAllCategories()
	if err != nil {
		logger.Warn("Failed to load categories for TUI", "error", err)
		cats = []models.Category{}
	}

	return Model{
		store:        store,
		state:        constants.StateProjects,
		keys:         DefaultKeyMap(),
		help:         help.New(),
		projectList:  projectlist.New(projects, 0, 0),
		markerList:   markerlist.New(nil, cats, 0, 0),
		categoryList: categorylist.New(cats, 0, 0),
	}
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	if m.state == constants.StateEditor {
		keys = append(keys, m.keys.PlayPause, m.keys.Link)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Back, m.keys.Quit, m.keys.Help}
	var transport []key.Binding
	if m.state == constants.StateEditor {
		transport = []key.Binding{m.keys.PlayPause, m.keys.SeekBack, m.keys.SeekFwd, m.keys.Link}
	}
	return [][]key.Binding{global, transport}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// refreshProjects reloads the project collection into the list view.
func (m *Model) refreshProjects() {
	projects, err := m.store.GetAllProjects()
	if err != nil {
		logger.Warn("Failed to refresh projects", "error", err)
		return
	}
	// Keep the transient audio handle on the open project across refreshes.
	if m.hasOpen {
		for i := range projects {
			if projects[i].ID == m.openProject.ID {
				projects[i].AudioPath = m.openProject.AudioPath
			}
		}
	}
	m.projectList.SetProjects(projects)
}

// refreshCategories reloads categories into both views that render them.
func (m *Model) refreshCategories() {
	cats, err := m.store.GetAllCategories()
	if err != nil {
		logger.Warn("Failed to refresh categories", "error", err)
		return
	}
	m.categoryList.SetCategories(cats)
	m.markerList.SetCategories(cats)
}

// refreshOpenProject reloads the open project from storage, preserving the
// session's audio handle.
func (m *Model) refreshOpenProject() {
	if !m.hasOpen {
		return
	}
	p, err := m.store.GetProject(m.openProject.ID)
	if err != nil {
		// Project vanished under us (deleted); fall back to the project list.
		m.closeProject()
		m.state = constants.StateProjects
		return
	}
	p.AudioPath = m.openProject.AudioPath
	m.openProject = p
	m.markerList.SetMarkers(p.Markers)
}

// openProjectByID loads a project into the editor and prepares its transport.
// If the persisted audio basename resolves in the working directory the link
// is restored automatically; otherwise the project stays unlinked until the
// user re-links it.
func (m *Model) openProjectByID(id string) {
	p, err := m.store.GetProject(id)
	if err != nil {
		m.showMessage("Project not found: " + err.Error())
		return
	}

	m.closeProject()

	if p.AudioFile != "" {
		if _, statErr := os.Stat(p.AudioFile); statErr == nil {
			p.AudioPath = p.AudioFile
		}
	}

	m.openProject = p
	m.hasOpen = true
	m.transport = newTransport(p.Duration)
	m.markerList.SetMarkers(p.Markers)
	m.state = constants.StateEditor

	if p.Linked() {
		m.startWatcher(p.AudioPath)
	}
}

// newTransport builds a transport with state-change logging attached.
func newTransport(duration float64) *playback.Transport {
	t := playback.New(duration)
	t.Subscribe(func(e playback.Event, pos float64) {
		switch e {
		case playback.EventStarted:
			logger.Debug("Playback started", "position", pos)
		case playback.EventPaused:
			logger.Debug("Playback paused", "position", pos)
		case playback.EventEnded:
			logger.Debug("Playback reached end", "position", pos)
		}
	})
	return t
}

// closeProject tears down the editor session.
func (m *Model) closeProject() {
	m.stopWatcher()
	m.transport = nil
	m.hasOpen = false
	m.openProject = models.Project{}
}

func (m *Model) startWatcher(path string) {
	w, err := audio.Watch(path)
	if err != nil {
		logger.Warn("Failed to watch audio file", "path", path, "error", err)
		return
	}
	m.watcher = w
}

func (m *Model) stopWatcher() {
	if m.watcher != nil {
		m.watcher.Close()
		m.watcher = nil
	}
}

// linkAudio attaches a probed audio file to the open project and persists the
// basename and duration.
func (m *Model) linkAudio(path string, duration float64) error {
	m.openProject.AudioPath = path
	m.openProject.AudioFile = filepath.Base(path)
	m.openProject.Duration = duration

	if err := m.store.UpdateProject(m.openProject); err != nil {
		return err
	}

	pos := 0.0
	if m.transport != nil && m.transport.Position() <= duration {
		pos = m.transport.Position()
	}
	m.transport = newTransport(duration)
	m.transport.SeekTo(pos)

	m.stopWatcher()
	m.startWatcher(path)
	m.refreshProjects()
	return nil
}

// showMessage enters the blocking message modal. Any key dismisses it and
// returns to the state that raised it.
func (m *Model) showMessage(msg string) {
	m.message = msg
	if m.state != constants.StateMessage {
		m.previousState = m.state
	}
	m.state = constants.StateMessage
}
