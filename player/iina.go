package player

import (
	"runtime"
	"strings"

	"github.com/lumina-cli/lumina/constant"
	"github.com/lumina-cli/lumina/key"
	"github.com/lumina-cli/lumina/log"
	"github.com/spf13/viper"
)

// NewIINA creates a native backend that drives the mpv bundled with IINA.
// iina-cli forwards --mpv- options, so the same JSON-IPC socket is available.
func NewIINA() *MPV {
	m := NewMPV()
	m.binary = "iina-cli"
	m.optionPrefix = "--mpv-"
	m.leading = []string{"--keep-running"}
	m.separator = false
	return m
}

func useIINA() bool {
	if !strings.EqualFold(viper.GetString(key.Player), "iina") {
		return false
	}
	if runtime.GOOS != constant.Darwin {
		log.Warnf("IINA is only available on macOS, falling back to mpv")
		return false
	}
	return true
}

// NativeBackend returns the configured native backend.
func NativeBackend() *MPV {
	if useIINA() {
		return NewIINA()
	}
	return NewMPV()
}

// NativeBinary is the executable NativeBackend launches.
func NativeBinary() string {
	if useIINA() {
		return "iina-cli"
	}
	return "mpv"
}
