// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"
	"github.com/watchroom-cli/watchroom/constant"
	"github.com/watchroom-cli/watchroom/controller"
	"github.com/watchroom-cli/watchroom/internal/ui"
	"github.com/watchroom-cli/watchroom/util"
)

// doubleClickWindow is the longest gap between two presses that still counts as a double click.
const doubleClickWindow = 400 * time.Millisecond

// statefulBubble encapsulates the application state: the playback controller, its input bus and the component models.
type statefulBubble struct {
	state         state
	statesHistory util.Stack[state]

	keymap *statefulKeymap

	controller *controller.Controller
	dispatcher *dispatcher
	inputs     *controller.InputBus

	// components
	spinnerC  spinner.Model
	inputC    textinput.Model
	progressC progress.Model
	helpC     help.Model

	// volumeApplied is set after the configured volume reached the first bound source
	volumeApplied bool
	// dragging is set between a press on the progress bar and its release
	dragging  bool
	lastClick time.Time
	now       func() time.Time

	loadingPath string
	lastError   error

	width, height int
	notifier      *ui.Model

	options *Options
}

// raiseError dispatches a terminal error and transitions the application to the failure view.
func (b *statefulBubble) raiseError(err error) {
	b.lastError = err
	b.newState(errorState)
}

// setState performs a synchronous transition of both the application workflow and its associated keymap.
func (b *statefulBubble) setState(s state) {
	b.state = s
	b.keymap.setState(s)
}

// newState transitions to s, recording the previous state in the navigation history when appropriate.
func (b *statefulBubble) newState(s state) {
	if b.state == s {
		return
	}

	// Do not push these states to history
	if !lo.Contains([]state{
		loadingState,
		errorState,
	}, b.state) {
		b.statesHistory.Push(b.state)
	}

	b.setState(s)
}

// previousState restores the application to its immediate predecessor in the navigation stack.
func (b *statefulBubble) previousState() {
	if b.statesHistory.Len() > 0 {
		s := b.statesHistory.Pop()
		b.setState(s)
	}
}

// resize propagates terminal dimension changes to all child component models.
func (b *statefulBubble) resize(width, height int) {
	x, y := paddingStyle.GetFrameSize()

	b.width = width - x
	b.height = height - y

	b.progressC.Width = b.width
	b.inputC.Width = b.width
	b.helpC.Width = b.width
}

// newBubble builds the controller and the component models. The controller is not mounted.
func newBubble(options *Options) *statefulBubble {
	dispatch := newDispatcher()

	c := controller.New(controller.Options{
		Session:    options.Session,
		Element:    options.Element,
		Dispatcher: dispatch,
		Emitter:    options.Emitter,
		HideAfter:  options.HideAfter,
		SkipStep:   options.SkipStep,
	})

	bubble := statefulBubble{
		statesHistory: util.Stack[state]{},
		keymap:        newStatefulKeymap(c.KeyMap()),
		controller:    c,
		dispatcher:    dispatch,
		inputs:        &controller.InputBus{},
		now:           time.Now,
		notifier:      &ui.Model{},
		options:       options,
	}

	bubble.helpC = help.New()

	bubble.spinnerC = spinner.New()
	bubble.spinnerC.Spinner = spinner.Dot
	bubble.spinnerC.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	bubble.inputC = textinput.New()
	bubble.inputC.Placeholder = "Path to a video file"
	bubble.inputC.Prompt = "> "
	bubble.inputC.SetValue(options.Path)
	bubble.inputC.ShowSuggestions = options.History
	if options.History {
		bubble.suggestRecent()
	}

	bubble.progressC = progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())

	if w, h, err := util.TerminalSize(); err == nil {
		bubble.resize(w, h)
	} else {
		bubble.resize(constant.FallbackWidth, constant.FallbackHeight)
	}

	bubble.inputC.Focus()

	return &bubble
}
