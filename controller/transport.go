package controller

import (
	"github.com/samber/lo"
	"github.com/watchroom-cli/watchroom/log"
	"github.com/watchroom-cli/watchroom/relay"
)

// TogglePlayPause asks the element to play when it reports paused and to pause otherwise.
// A declined play keeps the current state until the element reports otherwise.
func (c *Controller) TogglePlayPause() {
	if !c.permitted("toggle-play") || !c.bound("toggle-play") {
		return
	}

	if c.element.Paused() {
		if err := c.element.Play(); err != nil {
			log.WithError(requestFailed("play", err)).Warn("play request declined")
			return
		}
		c.state.IsPlaying = true
		c.phase = PhasePlaying
		c.armHide()
		c.emit(relay.Play, c.state.CurrentTime)
		return
	}

	if err := c.element.Pause(); err != nil {
		log.WithError(requestFailed("pause", err)).Warn("pause request declined")
		return
	}
	c.state.IsPlaying = false
	if c.phase == PhasePlaying {
		c.phase = PhaseReady
	}
	c.disarmHide()
	c.emit(relay.Pause, c.state.CurrentTime)
}

// SeekStart opens a seek session at t without moving the element. Non-finite targets are ignored.
func (c *Controller) SeekStart(t float64) {
	if !c.permitted("seek") || !c.bound("seek") || !c.finite("seek", t) {
		return
	}
	c.seek = SeekSession{Active: true, PendingTime: c.clampTime(t)}
}

// SeekUpdate moves the pending target of the seek session, opening one if needed.
func (c *Controller) SeekUpdate(t float64) {
	c.SeekStart(t)
}

// SeekCommit moves the element to the pending target and closes the session.
func (c *Controller) SeekCommit() {
	if !c.seek.Active {
		return
	}
	if !c.permitted("seek") || !c.bound("seek") {
		c.seek = SeekSession{}
		return
	}

	target := c.seek.PendingTime
	if err := c.element.Seek(target); err != nil {
		log.WithError(requestFailed("seek", err)).Warn("seek request declined")
	}

	c.state.CurrentTime = target
	c.seek = SeekSession{}
	if c.phase == PhaseEnded {
		c.phase = PhaseReady
	}
	c.emit(relay.Seek, target)
}

// SeekCancel drops the seek session without moving the element.
func (c *Controller) SeekCancel() {
	c.seek = SeekSession{}
}

// Skip moves the element by delta seconds within [0, duration]. It ignores any open seek session
// and non-finite deltas.
func (c *Controller) Skip(delta float64) {
	if !c.permitted("skip") || !c.bound("skip") || !c.finite("skip", delta) {
		return
	}

	now := c.element.CurrentTime()
	if !isFinite(now) {
		now = 0
	}
	target := lo.Clamp(now+delta, 0, c.state.Duration)
	if err := c.element.Seek(target); err != nil {
		log.WithError(requestFailed("skip", err)).Warn("skip request declined")
		return
	}

	if !c.seek.Active {
		c.state.CurrentTime = target
	}
	if c.phase == PhaseEnded && target < c.state.Duration {
		c.phase = PhaseReady
	}
	c.emit(relay.Skip, target)
}
