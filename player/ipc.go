package player

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"sync/atomic"
	"time"
)

const (
	ipcAttempts  = 3
	ipcBackoff   = 100 * time.Millisecond
	ipcReadLimit = time.Second
)

// mpvError is an error reported by mpv itself. Those are final and not retried.
type mpvError string

func (e mpvError) Error() string {
	return "mpv: " + string(e)
}

var requestID atomic.Int64

// sendCommand runs a JSON-IPC command on a fresh connection and returns its data.
func (m *MPV) sendCommand(command []any) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var err error
	for attempt := 1; attempt <= ipcAttempts; attempt++ {
		var data any
		if data, err = request(m.socketPath, command); err == nil {
			return data, nil
		}

		var final mpvError
		if errors.As(err, &final) {
			return nil, err
		}

		time.Sleep(ipcBackoff * time.Duration(attempt))
	}

	return nil, fmt.Errorf("%v: %w", command[0], err)
}

func request(socketPath string, command []any) (any, error) {
	conn, err := net.Dial("unix", socketPath)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	id := requestID.Add(1)
	payload, err := json.Marshal(map[string]any{"command": command, "request_id": id})
	if err != nil {
		return nil, err
	}

	if _, err := conn.Write(append(payload, '\n')); err != nil {
		return nil, err
	}

	if err := conn.SetReadDeadline(time.Now().Add(ipcReadLimit)); err != nil {
		return nil, err
	}

	// events and replies to other clients share the connection
	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		var reply struct {
			Data      any    `json:"data"`
			Error     string `json:"error"`
			RequestID int64  `json:"request_id"`
			Event     string `json:"event"`
		}
		if err := json.Unmarshal(scanner.Bytes(), &reply); err != nil {
			return nil, err
		}

		if reply.Event != "" || reply.RequestID != id {
			continue
		}

		if reply.Error != "" && reply.Error != "success" {
			return nil, mpvError(reply.Error)
		}
		return reply.Data, nil
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return nil, net.ErrClosed
}
