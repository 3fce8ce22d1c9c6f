package controller

import (
	"time"

	bubblesKey "github.com/charmbracelet/bubbles/key"
)

// HandleInput routes a gesture to the matching command.
func (c *Controller) HandleInput(in Input) {
	switch in := in.(type) {
	case KeyPress:
		c.HandleKey(in)
	case Pointer:
		c.handlePointer(in)
	}
}

// HandleKey maps a key press to a command. Unknown keys do nothing.
func (c *Controller) HandleKey(k KeyPress) {
	switch {
	case bubblesKey.Matches(k, c.keys.TogglePlay):
		c.TogglePlayPause()
	case bubblesKey.Matches(k, c.keys.SkipBack):
		c.Skip(-c.skipStep)
	case bubblesKey.Matches(k, c.keys.SkipForward):
		c.Skip(c.skipStep)
	case bubblesKey.Matches(k, c.keys.Fullscreen):
		// ctrl+f and cmd+f belong to the host
		if k.Ctrl || k.Meta {
			return
		}
		c.ToggleFullscreen()
	case bubblesKey.Matches(k, c.keys.Mute):
		c.ToggleMute()
	}
}

func (c *Controller) handlePointer(p Pointer) {
	switch p {
	case PointerMove:
		c.PointerActivity()
	case SurfaceClick:
		if c.session.IsOwner {
			c.PointerActivity()
			c.TogglePlayPause()
		}
	case SurfaceDoubleClick:
		if c.session.IsOwner {
			c.ToggleFullscreen()
		}
	}
}

// PointerActivity shows the controls. While playing it also rearms the hide countdown.
func (c *Controller) PointerActivity() {
	c.controls.Visible = true
	if c.state.IsPlaying {
		c.armHide()
		return
	}
	c.disarmHide()
}

func (c *Controller) armHide() {
	c.controls.Visible = true
	c.controls.HideDeadline = c.scheduler.Now().Add(c.hideAfter)
	c.timer.arm(c.hideAfter, c.hideControls)
}

func (c *Controller) disarmHide() {
	c.timer.cancel()
	c.controls.Visible = true
	c.controls.HideDeadline = time.Time{}
}

func (c *Controller) hideControls() {
	c.controls.HideDeadline = time.Time{}
	if c.state.IsPlaying {
		c.controls.Visible = false
	}
}

// HidePending reports whether a hide countdown is armed.
func (c *Controller) HidePending() bool {
	return c.timer.pending()
}
