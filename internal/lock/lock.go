// Package lock guards the data directory against a second live instance.
// Persistence is whole-collection overwrite, so two processes flushing the
// same slot would silently clobber each other.
package lock

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	ps "github.com/mitchellh/go-ps"

	"cuemark/internal/constants"
	"cuemark/internal/logger"
)

// ErrHeld is returned when another live process holds the lock.
type ErrHeld struct {
	PID int
}

func (e *ErrHeld) Error() string {
	return fmt.Sprintf("another cuemark instance is running (pid %d)", e.PID)
}

// Lock is a held data-directory lock.
type Lock struct {
	path string
}

func lockPath(dataDir string) string {
	return filepath.Join(dataDir, constants.LockfileName)
}

// Acquire takes the lock for the current process. A lockfile whose PID no
// longer maps to a live process is treated as stale and replaced.
func Acquire(dataDir string) (*Lock, error) {
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, err
	}
	path := lockPath(dataDir)

	if pid, ok := readPID(path); ok {
		alive, err := processAlive(pid)
		if err != nil {
			return nil, fmt.Errorf("failed to inspect lock holder: %w", err)
		}
		if alive && pid != os.Getpid() {
			return nil, &ErrHeld{PID: pid}
		}
		logger.Debug("Removing stale lockfile", "path", path, "pid", pid)
	}

	if err := os.WriteFile(path, []byte(strconv.Itoa(os.Getpid())), 0600); err != nil {
		return nil, fmt.Errorf("failed to write lockfile: %w", err)
	}
	return &Lock{path: path}, nil
}

// Release removes the lockfile.
func (l *Lock) Release() error {
	return os.Remove(l.path)
}

// Status reports the lock state for diagnostics: whether a lockfile exists,
// its PID, and whether that process is still alive.
func Status(dataDir string) (pid int, alive bool, exists bool) {
	p, ok := readPID(lockPath(dataDir))
	if !ok {
		return 0, false, false
	}
	a, err := processAlive(p)
	if err != nil {
		return p, false, true
	}
	return p, a, true
}

func readPID(path string) (int, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, false
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, false
	}
	return pid, true
}

func processAlive(pid int) (bool, error) {
	proc, err := ps.FindProcess(pid)
	if err != nil {
		return false, err
	}
	return proc != nil, nil
}
