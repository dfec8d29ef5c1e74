package player

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"sync"

	"github.com/lumina-cli/lumina/log"
)

// observedProperties are subscribed with observe_property, in id order.
var observedProperties = []string{
	"time-pos",
	"duration",
	"pause",
	"paused-for-cache",
	"volume",
	"mute",
	"speed",
	"eof-reached",
	"fullscreen",
}

// Observer turns mpv notifications into engine events.
type Observer struct {
	socketPath string
	conn       net.Conn
	out        chan<- Event
	stopCh     chan struct{}
	mu         sync.Mutex
	listening  bool
	stopped    bool
}

// NewObserver creates an observer writing to out. The observer closes out when it ends.
func NewObserver(socketPath string, out chan<- Event) *Observer {
	return &Observer{
		socketPath: socketPath,
		out:        out,
		stopCh:     make(chan struct{}),
	}
}

// Start subscribes to the observed properties on a persistent connection.
func (o *Observer) Start() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.listening {
		return nil
	}

	conn, err := net.Dial("unix", o.socketPath)
	if err != nil {
		return fmt.Errorf("observer connect: %w", err)
	}

	for i, name := range observedProperties {
		payload, err := json.Marshal(map[string]any{"command": []any{"observe_property", i + 1, name}})
		if err != nil {
			conn.Close()
			return fmt.Errorf("observe %s: %w", name, err)
		}
		if _, err := conn.Write(append(payload, '\n')); err != nil {
			conn.Close()
			return fmt.Errorf("observe %s: %w", name, err)
		}
	}

	o.conn = conn
	o.listening = true
	go o.readLoop(conn)

	log.Infof("mpv observer started on %s", o.socketPath)
	return nil
}

// Stop ends the observer. It is safe to call more than once.
func (o *Observer) Stop() {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.stopped {
		return
	}
	o.stopped = true
	close(o.stopCh)

	if o.conn != nil {
		o.conn.Close()
	} else {
		close(o.out)
	}
}

func (o *Observer) readLoop(conn net.Conn) {
	defer close(o.out)

	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	for scanner.Scan() {
		event, ok := parseLine(scanner.Bytes())
		if !ok {
			continue
		}

		select {
		case o.out <- event:
		case <-o.stopCh:
			return
		}
	}

	select {
	case <-o.stopCh:
	default:
		if err := scanner.Err(); err != nil {
			log.Warnf("mpv observer read error: %v", err)
		}
	}
}

// parseLine decodes one line of mpv output into an engine event.
func parseLine(line []byte) (Event, bool) {
	var msg map[string]any
	if err := json.Unmarshal(line, &msg); err != nil {
		return nil, false
	}

	kind, ok := msg["event"].(string)
	if !ok {
		// replies to our own observe_property requests
		return nil, false
	}

	if kind == "property-change" {
		name, _ := msg["name"].(string)
		return Translate(name, msg["data"])
	}

	return Translate(kind, msg)
}
