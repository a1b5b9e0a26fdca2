package constants

// SessionState represents the current state of the TUI application
type SessionState int

const (
	StateProjects SessionState = iota
	StateEditor
	StateSettings
	StateProjectForm
	StateMarkerForm
	StateCategoryForm
	StateLinkForm
	StateImportForm
	StateExportForm
	StateConfirmDeleteProject
	StateConfirmDeleteMarker
	StateConfirmDeleteCategory
	StateConfirmImport
	StateMessage
)

const (
	AppName         = "cuemark"
	Version         = "v0.3.0"
	DefaultDataPath = "~/.config/cuemark"

	// LockfileName is the single-instance guard file kept in the data directory
	LockfileName = "cuemark.lock"

	// TimecodeFPS is the fixed frame rate assumed by the timecode export.
	// The target editor expects drop-frame style HH;MM;SS;FF at 30 fps.
	TimecodeFPS = 30

	// Storage slot file names for the JSON backend
	ProjectsSlot   = "projects.json"
	CategoriesSlot = "categories.json"

	// Backup constants
	MaxBackups      = 14
	BackupDirName   = "backups"
	BackupDirPrefix = "cuemark-"
)
