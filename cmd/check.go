package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lumina-cli/lumina/constant"
	"github.com/lumina-cli/lumina/icon"
	"github.com/lumina-cli/lumina/player"
	"github.com/lumina-cli/lumina/style"
)

// CheckDependencies exits when the native player, which plays everything but embedded pages, is missing.
func CheckDependencies() {
	binary := player.NativeBinary()
	if _, err := exec.LookPath(binary); err != nil {
		printMissingDependencyError(binary)
		os.Exit(1)
	}
}

func printMissingDependencyError(dep string) {
	var installCmd string
	switch runtime.GOOS {
	case constant.Darwin:
		installCmd = "brew install " + dep
		if strings.HasSuffix(dep, "-cli") {
			installCmd = "brew install --cask " + strings.TrimSuffix(dep, "-cli")
		}
	case constant.Linux:
		installCmd = linuxInstallCommand(dep)
	case constant.Windows:
		installCmd = "scoop install " + dep
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(style.HiRed).
		Padding(1, 2).
		Margin(1, 0)

	title := style.New().Bold(true).Foreground(style.HiRed).Render(fmt.Sprintf("%s Error: Missing Dependency", icon.Get(icon.Fail)))
	body := style.New().Foreground(style.Text).Render(fmt.Sprintf("The required dependency '%s' was not found in your PATH.", dep))

	suggestion := ""
	if installCmd != "" {
		suggestion = fmt.Sprintf("\n\nTo install it, try running:\n  %s", style.New().Foreground(style.AccentColor).Bold(true).Render(installCmd))
	}

	fmt.Println(box.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			title,
			"\n",
			body,
			suggestion,
		),
	))
}

// linuxInstallCommand guesses the package manager from what is on the PATH.
func linuxInstallCommand(dep string) string {
	managers := []struct{ bin, cmd string }{
		{"apt", "sudo apt install "},
		{"dnf", "sudo dnf install "},
		{"pacman", "sudo pacman -S "},
		{"zypper", "sudo zypper install "},
		{"apk", "sudo apk add "},
	}

	for _, m := range managers {
		if _, err := exec.LookPath(m.bin); err == nil {
			return m.cmd + dep
		}
	}

	return ""
}
