package player

import "github.com/samber/lo"

// mpvState mirrors the observed mpv properties.
type mpvState struct {
	loaded     bool
	paused     bool
	timePos    float64
	volume     float64
	muted      bool
	fullscreen bool
}

func newMPVState() mpvState {
	return mpvState{paused: true, volume: 1}
}

// reset forgets per-file properties. Volume, mute and fullscreen survive file changes.
func (s *mpvState) reset() {
	s.loaded = false
	s.paused = true
	s.timePos = 0
}

// apply folds a property change into the state and returns the resulting element events.
func (s *mpvState) apply(name string, data interface{}) []Event {
	switch name {
	case "duration":
		d, ok := data.(float64)
		if !ok || d <= 0 {
			return nil
		}
		s.loaded = true
		return []Event{{Kind: EventMetadataLoaded, Duration: d}}

	case "time-pos":
		t, ok := data.(float64)
		if !ok {
			return nil
		}
		if t < 0 {
			t = 0
		}
		s.timePos = t
		return []Event{{Kind: EventTimeUpdate, CurrentTime: t}}

	case "pause":
		p, ok := data.(bool)
		if !ok || p == s.paused {
			return nil
		}
		s.paused = p
		if p {
			return []Event{{Kind: EventPause}}
		}
		return []Event{{Kind: EventPlay}}

	case "volume":
		v, ok := data.(float64)
		if !ok {
			return nil
		}
		s.volume = lo.Clamp(v/100, 0, 1)
		return []Event{{Kind: EventVolumeChange, Volume: s.volume, Muted: s.muted}}

	case "mute":
		mute, ok := data.(bool)
		if !ok {
			return nil
		}
		s.muted = mute
		return []Event{{Kind: EventVolumeChange, Volume: s.volume, Muted: s.muted}}

	case "eof-reached":
		eof, ok := data.(bool)
		if !ok || !eof {
			return nil
		}
		s.paused = true
		return []Event{{Kind: EventEnded}}

	case "fullscreen":
		fs, ok := data.(bool)
		if !ok {
			return nil
		}
		s.fullscreen = fs
		return []Event{{Kind: EventFullscreenChange, Fullscreen: fs}}
	}

	return nil
}
