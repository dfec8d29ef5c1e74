package player

import (
	"bufio"
	"encoding/json"
	"errors"
	"net"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

// fakeMPV answers every command with reply, after an unrelated event line.
func fakeMPV(t *testing.T, reply func(command []any) (any, string)) string {
	path := filepath.Join(t.TempDir(), "mpv.sock")
	listener, err := net.Listen("unix", path)
	if err != nil {
		t.Skipf("unix sockets unavailable: %s", err)
	}
	t.Cleanup(func() { _ = listener.Close() })

	go func() {
		for {
			conn, err := listener.Accept()
			if err != nil {
				return
			}

			go func(conn net.Conn) {
				defer conn.Close()
				scanner := bufio.NewScanner(conn)
				for scanner.Scan() {
					var req struct {
						Command   []any `json:"command"`
						RequestID int64 `json:"request_id"`
					}
					if json.Unmarshal(scanner.Bytes(), &req) != nil {
						return
					}

					data, errText := reply(req.Command)
					event, _ := json.Marshal(map[string]any{"event": "property-change", "name": "pause"})
					answer, _ := json.Marshal(map[string]any{"data": data, "error": errText, "request_id": req.RequestID})
					_, _ = conn.Write(append(append(event, '\n'), append(answer, '\n')...))
				}
			}(conn)
		}
	}()

	return path
}

func TestSendCommand(t *testing.T) {
	Convey("Given an mpv socket", t, func() {
		socket := fakeMPV(t, func(command []any) (any, string) {
			if command[0] == "get_property" && command[1] == "duration" {
				return 120.5, "success"
			}
			return nil, "property unavailable"
		})
		m := &MPV{socketPath: socket}

		Convey("The reply data is returned, skipping events", func() {
			data, err := m.sendCommand([]any{"get_property", "duration"})
			So(err, ShouldBeNil)
			So(data, ShouldEqual, 120.5)
		})

		Convey("mpv errors are returned without retrying", func() {
			_, err := m.sendCommand([]any{"get_property", "chapter"})
			var final mpvError
			So(errors.As(err, &final), ShouldBeTrue)
			So(err.Error(), ShouldEqual, "mpv: property unavailable")
		})
	})

	Convey("A missing socket fails after retrying", t, func() {
		m := &MPV{socketPath: filepath.Join(t.TempDir(), "none.sock")}
		_, err := m.sendCommand([]any{"quit"})
		So(err, ShouldNotBeNil)
	})
}
