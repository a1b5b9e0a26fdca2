package lock

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"cuemark/internal/constants"
)

func TestAcquireRelease(t *testing.T) {
	dir := t.TempDir()

	l, err := Acquire(dir)
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}

	pid, alive, exists := Status(dir)
	if !exists {
		t.Fatal("expected lockfile to exist")
	}
	if pid != os.Getpid() {
		t.Errorf("lockfile pid = %d, want %d", pid, os.Getpid())
	}
	if !alive {
		t.Error("own process should be reported alive")
	}

	if err := l.Release(); err != nil {
		t.Fatalf("Release failed: %v", err)
	}
	if _, _, exists := Status(dir); exists {
		t.Error("lockfile should be gone after release")
	}
}

func TestAcquire_StaleLockReplaced(t *testing.T) {
	dir := t.TempDir()

	// A pid far beyond the kernel's default maximum cannot be alive.
	stale := filepath.Join(dir, constants.LockfileName)
	if err := os.WriteFile(stale, []byte("2147483646"), 0600); err != nil {
		t.Fatal(err)
	}

	l, err := Acquire(dir)
	if err != nil {
		t.Fatalf("stale lock should be replaced: %v", err)
	}
	defer l.Release()

	pid, _, _ := Status(dir)
	if pid != os.Getpid() {
		t.Errorf("lockfile should carry our pid, got %d", pid)
	}
}

func TestAcquire_ReentrantForSamePid(t *testing.T) {
	dir := t.TempDir()

	if err := os.WriteFile(filepath.Join(dir, constants.LockfileName), []byte(strconv.Itoa(os.Getpid())), 0600); err != nil {
		t.Fatal(err)
	}

	// Our own pid in the lockfile is not a foreign holder.
	l, err := Acquire(dir)
	if err != nil {
		t.Fatalf("Acquire against our own pid failed: %v", err)
	}
	l.Release()
}

func TestAcquire_GarbageLockfileReplaced(t *testing.T) {
	dir := t.TempDir()

	if err := os.WriteFile(filepath.Join(dir, constants.LockfileName), []byte("not-a-pid"), 0600); err != nil {
		t.Fatal(err)
	}

	l, err := Acquire(dir)
	if err != nil {
		t.Fatalf("unreadable lockfile should be replaced: %v", err)
	}
	l.Release()
}

func TestErrHeld(t *testing.T) {
	err := &ErrHeld{PID: 42}
	var held *ErrHeld
	if !errors.As(error(err), &held) {
		t.Fatal("ErrHeld should unwrap via errors.As")
	}
	if held.PID != 42 {
		t.Errorf("PID = %d, want 42", held.PID)
	}
}

func TestStatus_NoLockfile(t *testing.T) {
	if _, _, exists := Status(t.TempDir()); exists {
		t.Error("expected no lockfile in a fresh directory")
	}
}
