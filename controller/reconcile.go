package controller

import (
	"math"

	"github.com/samber/lo"
	"github.com/watchroom-cli/watchroom/log"
	"github.com/watchroom-cli/watchroom/player"
)

// HandleEvent overwrites local state from an element report.
// The reported time is ignored while a seek is being dragged.
func (c *Controller) HandleEvent(e player.Event) {
	switch e.Kind {
	case player.EventVolumeChange:
		if isFinite(e.Volume) {
			c.state.Volume = lo.Clamp(e.Volume, 0, 1)
		}
		c.state.IsMuted = e.Muted
		return
	case player.EventFullscreenChange:
		c.state.IsFullscreen = e.Fullscreen
		return
	}

	if c.source == nil {
		return
	}

	switch e.Kind {
	case player.EventMetadataLoaded:
		c.state.Duration = 0
		if isFinite(e.Duration) && e.Duration > 0 {
			c.state.Duration = e.Duration
		}
		c.state.CurrentTime = c.clampTime(c.state.CurrentTime)
		if c.phase == PhaseLoading {
			c.phase = PhaseReady
		}

	case player.EventTimeUpdate:
		if c.seek.Active {
			return
		}
		c.state.CurrentTime = c.clampTime(e.CurrentTime)

	case player.EventPlay:
		c.state.IsPlaying = true
		c.phase = PhasePlaying

	case player.EventPause:
		c.state.IsPlaying = false
		if c.phase == PhasePlaying {
			c.phase = PhaseReady
		}
		c.disarmHide()

	case player.EventEnded:
		c.state.IsPlaying = false
		c.phase = PhaseEnded
		c.disarmHide()
	}
}

// clampTime bounds t to the known media range. NaN counts as the start.
func (c *Controller) clampTime(t float64) float64 {
	if math.IsNaN(t) || t < 0 {
		return 0
	}
	if c.state.Duration > 0 && t > c.state.Duration {
		return c.state.Duration
	}
	return t
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func (c *Controller) finite(op string, v float64) bool {
	if isFinite(v) {
		return true
	}
	log.WithField("command", op).WithField("value", v).Debug("ignored non-finite value")
	return false
}
