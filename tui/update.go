// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"strings"
	"time"

	bubblesKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/lo"
	"github.com/watchroom-cli/watchroom/controller"
	"github.com/watchroom-cli/watchroom/internal/ui"
)

// volumeStep is the change applied by one volume key press.
const volumeStep = 0.05

func (b *statefulBubble) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	// Process Ephemeral UI Notifications
	if uiCmd := b.notifier.Update(msg); uiCmd != nil {
		cmd = uiCmd
	}

	switch msg := msg.(type) {
	case dispatchMsg:
		b.dispatcher.drain()
		return b, tea.Batch(cmd, b.dispatcher.wait())
	case sourceLoadedMsg:
		return b, tea.Batch(cmd, b.bindSource(msg.source))
	case sourceFailedMsg:
		b.previousState()
		return b, tea.Batch(cmd, ui.NotifyError(msg.err))
	case error:
		b.raiseError(msg)
	case tea.WindowSizeMsg:
		b.resize(msg.Width, msg.Height)
	case tea.KeyMsg:
		if bubblesKey.Matches(msg, b.keymap.forceQuit) {
			return b, tea.Quit
		}
	}

	var stateCmd tea.Cmd
	switch b.state {
	case pickState:
		stateCmd = b.updatePick(msg)
	case loadingState:
		stateCmd = b.updateLoading(msg)
	case playState:
		stateCmd = b.updatePlay(msg)
	case errorState:
		stateCmd = b.updateError(msg)
	}

	return b, tea.Batch(cmd, stateCmd)
}

func (b *statefulBubble) updatePick(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case bubblesKey.Matches(msg, b.keymap.confirm):
			if strings.TrimSpace(b.inputC.Value()) == "" {
				return nil
			}
			return b.loadSource(b.inputC.Value())
		case bubblesKey.Matches(msg, b.keymap.back):
			if b.controller.Snapshot().Source != nil {
				b.previousState()
			}
			return nil
		}
	}

	var cmd tea.Cmd
	b.inputC, cmd = b.inputC.Update(msg)
	return cmd
}

func (b *statefulBubble) updateLoading(msg tea.Msg) tea.Cmd {
	if _, ok := msg.(spinner.TickMsg); ok {
		var cmd tea.Cmd
		b.spinnerC, cmd = b.spinnerC.Update(msg)
		return cmd
	}
	return nil
}

func (b *statefulBubble) updatePlay(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.MouseMsg:
		b.updateMouse(msg)
	case tea.KeyMsg:
		switch {
		case bubblesKey.Matches(msg, b.keymap.quit):
			return tea.Quit
		case bubblesKey.Matches(msg, b.keymap.back):
			if b.dragging {
				b.dragging = false
				b.controller.SeekCancel()
			}
		case bubblesKey.Matches(msg, b.keymap.open):
			b.newState(pickState)
			b.inputC.CursorEnd()
			return b.inputC.Focus()
		case bubblesKey.Matches(msg, b.keymap.showHelp):
			b.helpC.ShowAll = !b.helpC.ShowAll
		case bubblesKey.Matches(msg, b.keymap.volumeUp):
			b.controller.SetVolume(b.controller.Snapshot().State.Volume + volumeStep)
		case bubblesKey.Matches(msg, b.keymap.volumeDown):
			b.controller.SetVolume(b.controller.Snapshot().State.Volume - volumeStep)
		default:
			b.inputs.Publish(keyPress(msg))
		}
	}

	return nil
}

// updateMouse turns mouse events into surface gestures. Pointer movement is published for
// every participant. Presses on the surface and the progress bar are dropped here for viewers.
func (b *statefulBubble) updateMouse(msg tea.MouseMsg) {
	snapshot := b.controller.Snapshot()
	surface, bar := b.layout()

	switch msg.Action {
	case tea.MouseActionMotion:
		b.inputs.Publish(controller.PointerMove)
		if b.dragging {
			b.controller.SeekUpdate(bar.seconds(msg.X, snapshot.RangeMax()))
		}
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return
		}

		b.inputs.Publish(controller.PointerMove)
		if !snapshot.Session.IsOwner {
			return
		}

		switch {
		case bar.contains(msg.X, msg.Y) && snapshot.Controls.Visible:
			b.dragging = true
			b.controller.SeekStart(bar.seconds(msg.X, snapshot.RangeMax()))
		case surface.contains(msg.X, msg.Y):
			b.inputs.Publish(controller.SurfaceClick)

			now := b.now()
			if !b.lastClick.IsZero() && now.Sub(b.lastClick) <= doubleClickWindow {
				b.inputs.Publish(controller.SurfaceDoubleClick)
				b.lastClick = time.Time{}
				return
			}
			b.lastClick = now
		}
	case tea.MouseActionRelease:
		if b.dragging {
			b.dragging = false
			b.controller.SeekCommit()
		}
	}
}

func (b *statefulBubble) updateError(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case bubblesKey.Matches(msg, b.keymap.quit):
			return tea.Quit
		case bubblesKey.Matches(msg, b.keymap.back):
			b.lastError = nil
			b.setState(pickState)
			return b.inputC.Focus()
		}
	}
	return nil
}

// keyPress converts a terminal key into a controller key press.
// Terminals do not report the meta key, so Meta is never set.
func keyPress(msg tea.KeyMsg) controller.KeyPress {
	k := msg.String()
	press := controller.KeyPress{Alt: msg.Alt}

	k = strings.TrimPrefix(k, "alt+")
	if rest, ok := strings.CutPrefix(k, "ctrl+"); ok && rest != "" {
		press.Ctrl = true
		k = rest
	}

	press.Key = lo.Ternary(k == "space", " ", k)
	return press
}
