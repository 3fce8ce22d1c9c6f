package controller

import (
	"time"

	"github.com/watchroom-cli/watchroom/constant"
	"github.com/watchroom-cli/watchroom/log"
	"github.com/watchroom-cli/watchroom/media"
	"github.com/watchroom-cli/watchroom/player"
	"github.com/watchroom-cli/watchroom/relay"
)

// Options configure a Controller. Element and Dispatcher are required.
type Options struct {
	Session    Session
	Element    player.Element
	Dispatcher Dispatcher
	Scheduler  Scheduler
	Emitter    relay.Emitter
	HideAfter  time.Duration
	SkipStep   time.Duration
}

// Controller owns the playback state of one participant.
// All methods must be called from the dispatch thread.
type Controller struct {
	session    Session
	element    player.Element
	dispatcher Dispatcher
	scheduler  Scheduler
	emitter    relay.Emitter
	keys       KeyMap
	hideAfter  time.Duration
	skipStep   float64
	timer      *hideTimer

	source   *media.Source
	phase    Phase
	state    PlaybackState
	seek     SeekSession
	controls ControlsVisibility

	unsubscribeInput   func()
	unsubscribeElement func()
}

// New returns an unbound, unmounted controller.
func New(options Options) *Controller {
	if options.Dispatcher == nil {
		// timer fires arrive on scheduler goroutines and must be serialized with everything else
		panic("controller: Options.Dispatcher is required")
	}
	if options.Scheduler == nil {
		options.Scheduler = SystemClock
	}
	if options.Emitter == nil {
		options.Emitter = relay.Discard
	}
	if options.HideAfter <= 0 {
		options.HideAfter = constant.ControlsHideAfter
	}
	if options.SkipStep <= 0 {
		options.SkipStep = constant.SkipStep
	}

	skip := options.SkipStep.Seconds()

	return &Controller{
		session:    options.Session,
		element:    options.Element,
		dispatcher: options.Dispatcher,
		scheduler:  options.Scheduler,
		emitter:    options.Emitter,
		keys:       NewKeyMap(options.Session.IsOwner, skip),
		hideAfter:  options.HideAfter,
		skipStep:   skip,
		timer: &hideTimer{
			scheduler:  options.Scheduler,
			dispatcher: options.Dispatcher,
		},
		phase:    PhaseUnbound,
		state:    PlaybackState{Volume: 1},
		controls: ControlsVisibility{Visible: true},
	}
}

// Session returns the participant identity.
func (c *Controller) Session() Session {
	return c.session
}

// KeyMap returns the bindings used by HandleKey.
func (c *Controller) KeyMap() KeyMap {
	return c.keys
}

// Snapshot copies the current state.
func (c *Controller) Snapshot() Snapshot {
	return Snapshot{
		Session:  c.session,
		Phase:    c.phase,
		State:    c.state,
		Seek:     c.seek,
		Controls: c.controls,
		Source:   c.source,
	}
}

// Mount subscribes to element events and, if given, to inputs until Unmount.
func (c *Controller) Mount(inputs InputSource) {
	c.Unmount()

	c.unsubscribeElement = c.element.Subscribe(func(e player.Event) {
		c.dispatcher.Post(func() { c.HandleEvent(e) })
	})

	if inputs != nil {
		c.unsubscribeInput = inputs.Subscribe(func(in Input) {
			c.dispatcher.Post(func() { c.HandleInput(in) })
		})
	}
}

// Unmount drops both subscriptions and cancels the hide timer.
func (c *Controller) Unmount() {
	if c.unsubscribeInput != nil {
		c.unsubscribeInput()
		c.unsubscribeInput = nil
	}
	if c.unsubscribeElement != nil {
		c.unsubscribeElement()
		c.unsubscribeElement = nil
	}
	c.disarmHide()
}

// Bind loads src into the element. A nil source unbinds.
// Volume, mute and fullscreen carry over; everything else starts over.
func (c *Controller) Bind(src *media.Source) error {
	if src == nil {
		c.Unbind()
		return nil
	}

	c.reset()
	c.source = src
	c.phase = PhaseLoading

	if err := c.element.Load(src.URL, src.File.Name); err != nil {
		c.source = nil
		c.phase = PhaseUnbound
		return err
	}

	log.WithFields(log.Fields{"file": src.File.Name, "room": c.session.RoomID}).Info("source bound")
	c.emit(relay.Source, 0)
	return nil
}

// Unbind removes the current source.
func (c *Controller) Unbind() {
	if c.source == nil {
		return
	}

	if err := c.element.Unload(); err != nil {
		log.WithError(err).Debug("unload element")
	}
	c.reset()
	c.source = nil
	c.phase = PhaseUnbound
}

func (c *Controller) reset() {
	c.disarmHide()
	c.seek = SeekSession{}
	c.state = PlaybackState{
		Volume:       c.state.Volume,
		IsMuted:      c.state.IsMuted,
		IsFullscreen: c.state.IsFullscreen,
	}
}

func (c *Controller) bound(op string) bool {
	if c.source != nil {
		return true
	}
	log.WithField("command", op).WithError(ErrBindingAbsent).Debug("ignored command")
	return false
}

func (c *Controller) permitted(op string) bool {
	if c.session.IsOwner {
		return true
	}
	log.WithField("command", op).WithError(ErrNotPermitted).Debug("ignored command")
	return false
}

func (c *Controller) emit(t relay.Type, position float64) {
	if !c.session.IsOwner {
		return
	}

	event := relay.Event{
		Type:            t,
		PositionSeconds: position,
		Timestamp:       c.scheduler.Now(),
		RoomID:          c.session.RoomID,
	}
	if c.source != nil {
		event.Fingerprint = c.source.Fingerprint
	}
	c.emitter.Emit(event)
}
