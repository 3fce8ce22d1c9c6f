// Package cmd implements the command-line interface for watchroom.
package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"

	"github.com/charmbracelet/lipgloss"
	"github.com/watchroom-cli/watchroom/config"
	"github.com/watchroom-cli/watchroom/constant"
	"github.com/watchroom-cli/watchroom/icon"
	"github.com/watchroom-cli/watchroom/style"
)

// CheckDependencies verifies that the mpv engine is on the PATH and exits otherwise.
func CheckDependencies() {
	_, err := exec.LookPath(config.PlayerMPV)
	if err != nil {
		printMissingDependencyError(config.PlayerMPV)
		os.Exit(1)
	}
}

func printMissingDependencyError(dep string) {
	var installCmd string
	switch runtime.GOOS {
	case constant.Darwin:
		installCmd = "brew install mpv"
	case constant.Linux:
		installCmd = "sudo apt install mpv"
	case constant.Android:
		installCmd = "pkg install mpv"
	case constant.Windows:
		installCmd = "scoop install mpv"
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

	suggestion += fmt.Sprintf("\n\nOr run without a window:\n  %s", style.New().Foreground(style.AccentColor).Bold(true).Render("watchroom --player simulated"))

	fmt.Println(box.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			title,
			"\n",
			body,
			suggestion,
		),
	))
}
