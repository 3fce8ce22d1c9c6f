package player

import (
	"context"
	"sync"
	"time"

	"github.com/samber/lo"
)

// SimulatedTick is how often a running simulated element advances its clock.
const SimulatedTick = 250 * time.Millisecond

// Simulated is an in-memory element with a virtual clock. It renders nothing.
type Simulated struct {
	mu            sync.Mutex
	duration      float64
	loaded        bool
	url           string
	paused        bool
	currentTime   float64
	volume        float64
	muted         bool
	fullscreen    bool
	playErr       error
	fullscreenErr error

	events hub
}

// NewSimulated returns an element that reports media of the given length once loaded.
func NewSimulated(duration time.Duration) *Simulated {
	return &Simulated{
		duration: duration.Seconds(),
		paused:   true,
		volume:   1,
	}
}

// SetPlayError makes subsequent play requests fail with err. Nil restores success.
func (s *Simulated) SetPlayError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.playErr = err
}

// SetFullscreenError makes subsequent fullscreen requests fail with err. Nil restores success.
func (s *Simulated) SetFullscreenError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fullscreenErr = err
}

// URL returns the currently loaded media.
func (s *Simulated) URL() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.url
}

func (s *Simulated) Load(url string, _ string) error {
	s.mu.Lock()
	s.url = url
	s.loaded = true
	s.paused = true
	s.currentTime = 0
	duration := s.duration
	s.mu.Unlock()

	s.events.emit(Event{Kind: EventMetadataLoaded, Duration: duration})
	return nil
}

func (s *Simulated) Unload() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.url = ""
	s.loaded = false
	s.paused = true
	s.currentTime = 0
	return nil
}

func (s *Simulated) Play() error {
	s.mu.Lock()
	if !s.loaded {
		s.mu.Unlock()
		return ErrNotRunning
	}
	if s.playErr != nil {
		err := s.playErr
		s.mu.Unlock()
		return err
	}
	if !s.paused {
		s.mu.Unlock()
		return nil
	}
	s.paused = false
	restarted := s.currentTime >= s.duration
	if restarted {
		s.currentTime = 0
	}
	s.mu.Unlock()

	if restarted {
		s.events.emit(Event{Kind: EventTimeUpdate})
	}
	s.events.emit(Event{Kind: EventPlay})
	return nil
}

func (s *Simulated) Pause() error {
	s.mu.Lock()
	if s.paused {
		s.mu.Unlock()
		return nil
	}
	s.paused = true
	s.mu.Unlock()

	s.events.emit(Event{Kind: EventPause})
	return nil
}

func (s *Simulated) Paused() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.paused
}

func (s *Simulated) CurrentTime() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentTime
}

func (s *Simulated) Seek(seconds float64) error {
	s.mu.Lock()
	if !s.loaded {
		s.mu.Unlock()
		return ErrNotRunning
	}
	s.currentTime = lo.Clamp(seconds, 0, s.duration)
	t := s.currentTime
	s.mu.Unlock()

	s.events.emit(Event{Kind: EventTimeUpdate, CurrentTime: t})
	return nil
}

func (s *Simulated) SetVolume(volume float64) error {
	s.mu.Lock()
	s.volume = lo.Clamp(volume, 0, 1)
	event := Event{Kind: EventVolumeChange, Volume: s.volume, Muted: s.muted}
	s.mu.Unlock()

	s.events.emit(event)
	return nil
}

func (s *Simulated) SetMuted(muted bool) error {
	s.mu.Lock()
	s.muted = muted
	event := Event{Kind: EventVolumeChange, Volume: s.volume, Muted: s.muted}
	s.mu.Unlock()

	s.events.emit(event)
	return nil
}

func (s *Simulated) SetFullscreen(fullscreen bool) error {
	s.mu.Lock()
	if s.fullscreenErr != nil {
		err := s.fullscreenErr
		s.mu.Unlock()
		return err
	}
	s.fullscreen = fullscreen
	s.mu.Unlock()

	s.events.emit(Event{Kind: EventFullscreenChange, Fullscreen: fullscreen})
	return nil
}

// ExitFullscreen leaves fullscreen the way a user would from outside the application.
func (s *Simulated) ExitFullscreen() {
	s.mu.Lock()
	if !s.fullscreen {
		s.mu.Unlock()
		return
	}
	s.fullscreen = false
	s.mu.Unlock()

	s.events.emit(Event{Kind: EventFullscreenChange, Fullscreen: false})
}

// Advance moves the virtual clock by d while playing and emits the resulting events.
func (s *Simulated) Advance(d time.Duration) {
	s.mu.Lock()
	if !s.loaded || s.paused {
		s.mu.Unlock()
		return
	}

	s.currentTime += d.Seconds()
	if s.currentTime < s.duration {
		t := s.currentTime
		s.mu.Unlock()
		s.events.emit(Event{Kind: EventTimeUpdate, CurrentTime: t})
		return
	}

	s.currentTime = s.duration
	s.paused = true
	t := s.currentTime
	s.mu.Unlock()

	s.events.emit(
		Event{Kind: EventTimeUpdate, CurrentTime: t},
		Event{Kind: EventPause},
		Event{Kind: EventEnded},
	)
}

// Run advances the clock in real time until ctx is done.
func (s *Simulated) Run(ctx context.Context) {
	ticker := time.NewTicker(SimulatedTick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Advance(SimulatedTick)
		}
	}
}

func (s *Simulated) Subscribe(fn func(Event)) func() {
	return s.events.subscribe(fn)
}

func (s *Simulated) Close() error {
	return s.Unload()
}
