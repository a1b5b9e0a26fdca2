// Package backup copies the storage slots aside before destructive
// operations. Imports replace whole collections, so a bad file plus a
// confirmation slip would otherwise be unrecoverable.
package backup

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"cuemark/internal/constants"
)

// Info describes one backup set.
type Info struct {
	Name      string
	Path      string
	Timestamp time.Time
}

// Manager handles backup operations for a data directory or database file.
type Manager struct {
	dataPath  string
	backupDir string
}

// NewManager creates a manager for dataPath, which is either the JSON data
// directory or the SQLite database file.
func NewManager(dataPath string) *Manager {
	base := dataPath
	if info, err := os.Stat(dataPath); err != nil || !info.IsDir() {
		base = filepath.Dir(dataPath)
	}
	return &Manager{
		dataPath:  dataPath,
		backupDir: filepath.Join(base, constants.BackupDirName),
	}
}

// BackupDir returns the backup directory path.
func (m *Manager) BackupDir() string {
	return m.backupDir
}

// CreateBackup copies the current storage files into a timestamped backup
// directory and rotates old backups.
func (m *Manager) CreateBackup() (string, error) {
	if err := os.MkdirAll(m.backupDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	files, err := m.sourceFiles()
	if err != nil {
		return "", err
	}
	if len(files) == 0 {
		return "", fmt.Errorf("nothing to back up at %s", m.dataPath)
	}

	name := constants.BackupDirPrefix + time.Now().Format("20060102-150405")
	dest := filepath.Join(m.backupDir, name)
	for counter := 1; ; counter++ {
		if _, err := os.Stat(dest); os.IsNotExist(err) {
			break
		}
		dest = filepath.Join(m.backupDir, fmt.Sprintf("%s-%d", name, counter))
		if counter > 100 {
			return "", fmt.Errorf("failed to generate unique backup name")
		}
	}
	if err := os.MkdirAll(dest, 0700); err != nil {
		return "", err
	}

	for _, src := range files {
		if err := copyFile(src, filepath.Join(dest, filepath.Base(src))); err != nil {
			return "", fmt.Errorf("failed to back up %s: %w", filepath.Base(src), err)
		}
	}

	if err := m.rotate(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to rotate old backups: %v\n", err)
	}

	return dest, nil
}

// sourceFiles lists the files a backup must capture: the two JSON slots, or
// the single database file.
func (m *Manager) sourceFiles() ([]string, error) {
	info, err := os.Stat(m.dataPath)
	if err != nil {
		return nil, fmt.Errorf("storage does not exist: %s", m.dataPath)
	}
	if !info.IsDir() {
		return []string{m.dataPath}, nil
	}
	var files []string
	for _, slot := range []string{constants.ProjectsSlot, constants.CategoriesSlot} {
		p := filepath.Join(m.dataPath, slot)
		if _, err := os.Stat(p); err == nil {
			files = append(files, p)
		}
	}
	return files, nil
}

// ListBackups returns available backups, newest first.
func (m *Manager) ListBackups() ([]Info, error) {
	entries, err := os.ReadDir(m.backupDir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var backups []Info
	for _, e := range entries {
		if !e.IsDir() || !strings.HasPrefix(e.Name(), constants.BackupDirPrefix) {
			continue
		}
		fi, err := e.Info()
		if err != nil {
			continue
		}
		backups = append(backups, Info{
			Name:      e.Name(),
			Path:      filepath.Join(m.backupDir, e.Name()),
			Timestamp: fi.ModTime(),
		})
	}
	sort.Slice(backups, func(i, j int) bool {
		return backups[i].Timestamp.After(backups[j].Timestamp)
	})
	return backups, nil
}

// RestoreBackup copies the named backup's files back over the live storage.
// The current state is backed up first so a restore is itself reversible.
func (m *Manager) RestoreBackup(name string) error {
	src := filepath.Join(m.backupDir, name)
	if _, err := os.Stat(src); err != nil {
		return fmt.Errorf("backup not found: %s", name)
	}

	if _, err := m.CreateBackup(); err != nil {
		return fmt.Errorf("failed to back up current state before restore: %w", err)
	}

	destDir := m.dataPath
	if info, err := os.Stat(m.dataPath); err != nil || !info.IsDir() {
		destDir = filepath.Dir(m.dataPath)
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if err := copyFile(filepath.Join(src, e.Name()), filepath.Join(destDir, e.Name())); err != nil {
			return fmt.Errorf("failed to restore %s: %w", e.Name(), err)
		}
	}
	return nil
}

// rotate removes the oldest backups beyond the retention limit.
func (m *Manager) rotate() error {
	backups, err := m.ListBackups()
	if err != nil {
		return err
	}
	for i := constants.MaxBackups; i < len(backups); i++ {
		if err := os.RemoveAll(backups[i].Path); err != nil {
			return err
		}
	}
	return nil
}

func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
