package subtitle

import (
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
	"github.com/lumina-cli/lumina/log"
)

// ChangedMsg reports that a watched subtitle source was rewritten.
type ChangedMsg struct {
	Path string
}

// Watcher observes a single subtitle source file.
type Watcher struct {
	path    string
	watcher *fsnotify.Watcher
	changes chan ChangedMsg
	done    chan struct{}
}

// Watch starts observing path. The parent directory is watched so that
// editors replacing the file through a rename are still noticed.
func Watch(path string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}

	if err := fw.Add(filepath.Dir(abs)); err != nil {
		_ = fw.Close()
		return nil, err
	}

	w := &Watcher{
		path:    abs,
		watcher: fw,
		changes: make(chan ChangedMsg, 1),
		done:    make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

func (w *Watcher) loop() {
	defer close(w.changes)

	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			if filepath.Clean(event.Name) != w.path {
				continue
			}

			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			select {
			case w.changes <- ChangedMsg{Path: w.path}:
			default:
				// a reload is already queued
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Warnf("subtitle watcher: %s", err)
		}
	}
}

// Path returns the watched file.
func (w *Watcher) Path() string { return w.path }

// Next waits for the next change. It yields nil once the watcher is closed.
func (w *Watcher) Next() tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-w.changes
		if !ok {
			return nil
		}
		return msg
	}
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	select {
	case <-w.done:
		return nil
	default:
	}
	close(w.done)
	return w.watcher.Close()
}
