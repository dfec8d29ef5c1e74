// Package open hands URLs to the browser or another desktop application.
package open

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/lumina-cli/lumina/constant"
)

// Start opens input with the system default handler without waiting for it.
func Start(input string) error {
	return StartWith(input, "")
}

// StartWith opens input with app, or the default handler when app is empty.
func StartWith(input, app string) error {
	cmd, err := command(runtime.GOOS, input, app)
	if err != nil {
		return err
	}
	return cmd.Start()
}

func command(goos, input, app string) (*exec.Cmd, error) {
	switch goos {
	case constant.Windows:
		if app == "" {
			rundll := filepath.Join(os.Getenv("SYSTEMROOT"), "System32", "rundll32.exe")
			return exec.Command(rundll, "url.dll,FileProtocolHandler", input), nil
		}
		// start treats & as a command separator
		return exec.Command("cmd", "/C", "start", "", app, strings.ReplaceAll(input, "&", "^&")), nil
	case constant.Darwin:
		if app == "" {
			return exec.Command("open", input), nil
		}
		return exec.Command("open", "-a", app, input), nil
	case constant.Android:
		return exec.Command("termux-open", input), nil
	case constant.Linux:
		if app == "" {
			return exec.Command("xdg-open", input), nil
		}
		return exec.Command(app, input), nil
	}

	return nil, fmt.Errorf("cannot open %s on %s", input, goos)
}
