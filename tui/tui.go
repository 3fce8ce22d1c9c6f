// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/watchroom-cli/watchroom/controller"
	"github.com/watchroom-cli/watchroom/media"
	"github.com/watchroom-cli/watchroom/player"
	"github.com/watchroom-cli/watchroom/relay"
)

// Options encapsulates the runtime configuration for the terminal user interface.
type Options struct {
	// Path is loaded on start. Empty opens the path prompt.
	Path string

	Session   controller.Session
	Loader    *media.Loader
	Element   player.Element
	Emitter   relay.Emitter
	HideAfter time.Duration
	SkipStep  time.Duration
	// Volume is applied once the first source is bound.
	Volume float64
	// History records opened videos and their stop positions.
	History bool
}

// Run initializes and executes the primary Bubble Tea application loop.
func Run(options *Options) error {
	bubble := newBubble(options)
	bubble.controller.Mount(bubble.inputs)
	defer bubble.controller.Unmount()

	_, err := tea.NewProgram(bubble, tea.WithAltScreen(), tea.WithMouseAllMotion()).Run()
	bubble.rememberPosition()
	return err
}
