//go:build !windows

package player

import (
	"errors"
	"net"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

// stubMPV returns an mpv that runs body as a shell script, with a socket that
// is already accepting and streaming position updates.
func stubMPV(t *testing.T, body string) *MPV {
	dir := t.TempDir()

	script := filepath.Join(dir, "mpv")
	if err := os.WriteFile(script, []byte("#!/bin/sh\n"+body+"\n"), 0o755); err != nil {
		t.Fatal(err)
	}

	socket := filepath.Join(dir, "mpv.sock")
	listener, err := net.Listen("unix", socket)
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
				for {
					if _, err := conn.Write([]byte(`{"event":"property-change","id":1,"name":"time-pos","data":1.5}` + "\n")); err != nil {
						return
					}
					time.Sleep(5 * time.Millisecond)
				}
			}(conn)
		}
	}()

	m := NewMPV()
	m.binary = script
	m.socketPath = socket
	return m
}

func TestMPVLifecycle(t *testing.T) {
	Convey("Closing while mpv is still starting", t, func() {
		m := stubMPV(t, "exec sleep 30")

		opened := make(chan error, 1)
		go func() { opened <- m.Open("https://example.com/a.mp4", "a") }()

		time.Sleep(50 * time.Millisecond)
		So(m.Close(), ShouldBeNil)

		Convey("Open gives up without observing", func() {
			var err error
			select {
			case err = <-opened:
			case <-time.After(5 * time.Second):
				t.Fatal("Open did not return")
			}
			So(errors.Is(err, errClosed), ShouldBeTrue)

			_, open := <-m.Events()
			So(open, ShouldBeFalse)
		})

		Convey("The process is killed", func() {
			select {
			case <-m.Wait():
			case <-time.After(5 * time.Second):
				t.Fatal("mpv is still running")
			}
		})
	})

	Convey("Closing before Open", t, func() {
		m := stubMPV(t, "exec sleep 30")
		So(m.Close(), ShouldBeNil)
		So(errors.Is(m.Open("https://example.com/a.mp4", "a"), errClosed), ShouldBeTrue)
	})
}

func TestMPVExitErr(t *testing.T) {
	Convey("Given mpv exits with a failure status", t, func() {
		m := stubMPV(t, "exit 3")
		_ = m.Open("https://example.com/a.mp4", "a")
		defer m.Close()

		Convey("The exit error is reported", func() {
			err := m.ExitErr(5 * time.Second)
			So(err, ShouldNotBeNil)
			var exitErr *exec.ExitError
			So(errors.As(err, &exitErr), ShouldBeTrue)
			So(exitErr.ExitCode(), ShouldEqual, 3)
		})
	})

	Convey("Given mpv is still running", t, func() {
		m := stubMPV(t, "exec sleep 30")
		defer m.Close()
		So(m.Open("https://example.com/a.mp4", "a"), ShouldBeNil)

		Convey("No exit error is reported within the grace period", func() {
			So(m.ExitErr(20*time.Millisecond), ShouldBeNil)
		})
	})
}
