package audio

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"cuemark/internal/logger"
)

// WatchEvent reports what happened to a linked audio file.
type WatchEvent int

const (
	// FileMissing means the linked file was removed or renamed away; the
	// project needs a re-link before playback can resume.
	FileMissing WatchEvent = iota
	// FileChanged means the file was rewritten in place.
	FileChanged
)

// Watcher observes a single linked audio file. Events arrive on C; the TUI
// polls the channel from a command so the watcher never touches UI state.
type Watcher struct {
	C    chan WatchEvent
	fsw  *fsnotify.Watcher
	path string
	done chan struct{}
}

// Watch starts observing path. The parent directory is watched so that
// deletions and renames of the file itself are seen.
func Watch(path string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(path)); err != nil {
		fsw.Close()
		return nil, err
	}

	w := &Watcher{
		C:    make(chan WatchEvent, 8),
		fsw:  fsw,
		path: path,
		done: make(chan struct{}),
	}
	go w.run()
	return w, nil
}

func (w *Watcher) run() {
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if ev.Name != w.path {
				continue
			}
			switch {
			case ev.Op.Has(fsnotify.Remove) || ev.Op.Has(fsnotify.Rename):
				w.deliver(FileMissing)
			case ev.Op.Has(fsnotify.Write) || ev.Op.Has(fsnotify.Create):
				w.deliver(FileChanged)
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			logger.Warn("Audio watcher error", "path", w.path, "error", err)
		}
	}
}

func (w *Watcher) deliver(ev WatchEvent) {
	select {
	case w.C <- ev:
	default:
		// A full channel means the UI is behind; dropping is fine, the latest
		// state is what matters.
	}
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	close(w.done)
	return w.fsw.Close()
}
