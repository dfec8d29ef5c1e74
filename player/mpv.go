package player

import (
	"crypto/rand"
	"errors"
	"fmt"
	"net"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"time"

	"github.com/lumina-cli/lumina/constant"
	"github.com/lumina-cli/lumina/log"
)

const (
	socketWaitRetries = 10
	socketWaitDelay   = 300 * time.Millisecond
	requestQueueSize  = 64
)

// MPV is the native backend. It drives an mpv process over JSON-IPC.
type MPV struct {
	binary string
	// optionPrefix is prepended to every mpv option, leading arguments come first.
	optionPrefix string
	leading      []string
	separator    bool

	socketPath string
	cmd        *exec.Cmd
	exited     chan struct{}
	exitErr    error // set before exited is closed
	events     chan Event
	requests   chan []any
	done       chan struct{}
	observer   *Observer
	mu         sync.Mutex // serializes socket writes
	closeOnce  sync.Once

	// life guards cmd, observer and closed between Open and Close.
	life   sync.Mutex
	closed bool
}

// errClosed is returned by Open when Close ran while mpv was starting.
var errClosed = errors.New("mpv closed")

// NewMPV creates a backend using the mpv binary found in PATH.
func NewMPV() *MPV {
	return &MPV{
		binary:       "mpv",
		optionPrefix: "--",
		separator:    true,
		exited:       make(chan struct{}),
		events:       make(chan Event, 32),
		requests:     make(chan []any, requestQueueSize),
		done:         make(chan struct{}),
	}
}

// Open launches mpv on target and starts observing it. It may run on another
// goroutine than Close; a Close during startup kills mpv and Open returns errClosed.
func (m *MPV) Open(target, title string) error {
	safeTarget, err := sanitizeMediaTarget(target)
	if err != nil {
		return fmt.Errorf("invalid media target: %w", err)
	}

	m.life.Lock()
	if m.closed {
		m.life.Unlock()
		return errClosed
	}

	if m.socketPath == "" {
		randomBytes := make([]byte, 4)
		if _, err := rand.Read(randomBytes); err != nil {
			m.life.Unlock()
			return fmt.Errorf("generate socket name: %w", err)
		}
		m.socketPath = filepath.Join(os.TempDir(), fmt.Sprintf("%s-%x.sock", constant.Lumina, randomBytes))
	}

	cmd := exec.Command(m.binary, m.args(safeTarget, sanitizeTitle(title))...)
	cmd.SysProcAttr = sysProcAttr()

	if err := cmd.Start(); err != nil {
		m.life.Unlock()
		return fmt.Errorf("start %s: %w", m.binary, err)
	}
	m.cmd = cmd
	m.life.Unlock()

	go func() {
		m.exitErr = cmd.Wait()
		close(m.exited)
	}()

	if err := m.waitForSocket(); err != nil {
		if errors.Is(err, errClosed) {
			return err
		}
		select {
		case <-m.exited:
		default:
			log.Warnf("killing %s: socket never became ready", m.binary)
			_ = killProcess(cmd)
		}
		return fmt.Errorf("mpv socket not ready: %w", err)
	}

	m.life.Lock()
	defer m.life.Unlock()

	if m.closed {
		return errClosed
	}

	observer := NewObserver(m.socketPath, m.events)
	if err := observer.Start(); err != nil {
		return err
	}
	m.observer = observer

	go m.dispatch()
	return nil
}

// args builds the command line. Only IPC, title and idle behaviour are forced,
// the user's mpv.conf decides the rest.
func (m *MPV) args(target, title string) []string {
	options := []string{
		"no-terminal",
		"really-quiet",
		"input-ipc-server=" + m.socketPath,
		"force-media-title=" + title,
		"title=" + title,
		"force-window=yes",
		"idle=yes",
		"keep-open=yes",
	}

	args := append([]string{}, m.leading...)
	for _, o := range options {
		args = append(args, m.optionPrefix+o)
	}

	if m.separator {
		args = append(args, "--")
	}
	return append(args, target)
}

func (m *MPV) waitForSocket() error {
	for i := 0; i < socketWaitRetries; i++ {
		select {
		case <-m.done:
			return errClosed
		case <-m.exited:
			return fmt.Errorf("mpv exited before socket was ready")
		case <-time.After(socketWaitDelay):
		}

		conn, err := net.Dial("unix", m.socketPath)
		if err == nil {
			conn.Close()
			return nil
		}
	}
	return fmt.Errorf("socket %s not ready after %d attempts", m.socketPath, socketWaitRetries)
}

// dispatch sends queued requests in order until the backend is closed.
func (m *MPV) dispatch() {
	for {
		select {
		case <-m.done:
			return
		case <-m.exited:
			return
		case req := <-m.requests:
			if _, err := m.sendCommand(req); err != nil {
				log.Warnf("mpv %v: %s", req[0], err)
			}
		}
	}
}

// enqueue schedules an IPC command without waiting for its reply.
func (m *MPV) enqueue(command ...any) error {
	select {
	case <-m.done:
		return fmt.Errorf("mpv closed")
	default:
	}

	select {
	case m.requests <- command:
		return nil
	default:
		return fmt.Errorf("mpv request queue full, dropping %v", command[0])
	}
}

// Events implements Backend.
func (m *MPV) Events() <-chan Event { return m.events }

// Wait returns a channel that is closed when the mpv process exits, or on
// Close when it never started.
func (m *MPV) Wait() <-chan struct{} { return m.exited }

// ExitErr waits up to wait for mpv to exit and returns how it ended. It is
// nil for a clean quit and while mpv is still running.
func (m *MPV) ExitErr(wait time.Duration) error {
	select {
	case <-m.exited:
		return m.exitErr
	case <-time.After(wait):
		return nil
	}
}

// Socket returns the IPC socket path.
func (m *MPV) Socket() string { return m.socketPath }

// Set assigns an mpv property.
func (m *MPV) Set(property string, value any) error {
	return m.enqueue("set_property", property, value)
}

// Play implements Backend.
func (m *MPV) Play() error { return m.Set("pause", false) }

// Pause implements Backend.
func (m *MPV) Pause() error { return m.Set("pause", true) }

// Seek implements Backend.
func (m *MPV) Seek(seconds float64) error {
	return m.enqueue("seek", seconds, "absolute")
}

// SetVolume implements Backend. mpv measures volume from 0 to 100.
func (m *MPV) SetVolume(volume float64) error {
	return m.Set("volume", volume*100)
}

// SetMute implements Backend.
func (m *MPV) SetMute(muted bool) error { return m.Set("mute", muted) }

// SetRate implements Backend.
func (m *MPV) SetRate(rate float64) error { return m.Set("speed", rate) }

// SetFullscreen implements Backend.
func (m *MPV) SetFullscreen(fullscreen bool) error { return m.Set("fullscreen", fullscreen) }

// SetProperties implements Backend.
func (m *MPV) SetProperties(props map[string]any) error {
	for name, value := range props {
		if err := m.Set(name, value); err != nil {
			return err
		}
	}
	return nil
}

// LoadSubtitle implements Backend.
func (m *MPV) LoadSubtitle(path string) error {
	if err := m.enqueue("sub-remove"); err != nil {
		return err
	}

	if path == "" {
		return nil
	}

	return m.enqueue("sub-add", path, "select")
}

// Close quits mpv and removes its socket. While mpv is still starting the
// process is killed instead.
func (m *MPV) Close() error {
	m.closeOnce.Do(func() {
		m.life.Lock()
		m.closed = true
		close(m.done)
		cmd, observer := m.cmd, m.observer
		m.life.Unlock()

		// the observer owns events once started
		if observer != nil {
			observer.Stop()
		} else {
			close(m.events)
		}

		if cmd == nil {
			// never started, nothing else closes exited
			close(m.exited)
			return
		}

		if observer == nil {
			_ = killProcess(cmd)
		} else {
			_, _ = m.sendCommand([]any{"quit"})
		}

		select {
		case <-m.exited:
		case <-time.After(3 * time.Second):
			_ = killProcess(cmd)
		}

		_ = os.Remove(m.socketPath)
	})
	return nil
}
