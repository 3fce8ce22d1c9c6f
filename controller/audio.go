package controller

import (
	"github.com/samber/lo"
	"github.com/watchroom-cli/watchroom/log"
)

// SetVolume stores v clamped to [0, 1]. Zero mutes and anything else unmutes.
// Non-finite levels are ignored.
func (c *Controller) SetVolume(v float64) {
	if !c.bound("volume") || !c.finite("volume", v) {
		return
	}

	v = lo.Clamp(v, 0, 1)
	muted := v == 0

	if err := c.element.SetVolume(v); err != nil {
		log.WithError(requestFailed("volume", err)).Debug("volume request declined")
	}
	if err := c.element.SetMuted(muted); err != nil {
		log.WithError(requestFailed("mute", err)).Debug("mute request declined")
	}

	c.state.Volume = v
	c.state.IsMuted = muted
}

// ToggleMute flips mute. The stored volume is kept so unmuting restores it.
func (c *Controller) ToggleMute() {
	if !c.bound("mute") {
		return
	}

	muted := !c.state.IsMuted
	volume := c.state.Volume

	if err := c.element.SetMuted(muted); err != nil {
		log.WithError(requestFailed("mute", err)).Debug("mute request declined")
	}
	if !muted {
		if err := c.element.SetVolume(volume); err != nil {
			log.WithError(requestFailed("volume", err)).Debug("volume request declined")
		}
	}

	c.state.Volume = volume
	c.state.IsMuted = muted
}

// ToggleFullscreen requests the opposite presentation. A declined request leaves the surface windowed.
func (c *Controller) ToggleFullscreen() {
	if !c.bound("fullscreen") {
		return
	}

	target := !c.state.IsFullscreen
	if err := c.element.SetFullscreen(target); err != nil {
		log.WithError(requestFailed("fullscreen", err)).Warn("fullscreen request declined")
		c.state.IsFullscreen = false
		return
	}
	c.state.IsFullscreen = target
}
