// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/watchroom-cli/watchroom/color"
	"github.com/watchroom-cli/watchroom/controller"
	"github.com/watchroom-cli/watchroom/style"
)

// statefulKeymap defines the keyboard interactions available within various application states.
type statefulKeymap struct {
	state state

	// controls are routed through the controller, the rest is handled by the surface
	controls controller.KeyMap

	quit, forceQuit,
	confirm, back,
	open,
	volumeUp, volumeDown,
	showHelp key.Binding
}

// setState updates the active keymap configuration to match the specified application state.
func (k *statefulKeymap) setState(newState state) {
	k.state = newState
}

func newStatefulKeymap(controls controller.KeyMap) *statefulKeymap {
	return &statefulKeymap{
		controls: controls,
		quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		forceQuit: key.NewBinding(
			key.WithKeys("ctrl+c", "ctrl+d"),
			key.WithHelp("ctrl+c", "quit"),
		),
		confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp(style.Fg(color.Orange)("enter"), style.Fg(color.Orange)("load")),
		),
		back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		open: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open file"),
		),
		volumeUp: key.NewBinding(
			key.WithKeys("+", "=", "up"),
			key.WithHelp("+", "volume up"),
		),
		volumeDown: key.NewBinding(
			key.WithKeys("-", "_", "down"),
			key.WithHelp("-", "volume down"),
		),
		showHelp: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}

func (k *statefulKeymap) help() ([]key.Binding, []key.Binding) {
	h := func(bindings ...key.Binding) []key.Binding {
		return bindings
	}

	to2 := func(a []key.Binding) ([]key.Binding, []key.Binding) {
		return a, a
	}

	switch k.state {
	case pickState:
		return to2(h(k.confirm, k.back, k.forceQuit))
	case loadingState:
		return to2(h(k.forceQuit))
	case playState:
		short := append(k.controls.Bindings(), k.open, k.showHelp, k.quit)
		full := append(k.controls.Bindings(), k.volumeUp, k.volumeDown, k.open, k.quit)
		return short, full
	case errorState:
		return to2(h(k.back, k.quit))
	default:
		return to2(h())
	}
}

func (k *statefulKeymap) ShortHelp() []key.Binding {
	short, _ := k.help()
	return short
}

func (k *statefulKeymap) FullHelp() [][]key.Binding {
	_, full := k.help()
	return [][]key.Binding{full}
}
