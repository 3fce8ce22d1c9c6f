package tui

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/watchroom-cli/watchroom/controller"
	"github.com/watchroom-cli/watchroom/history"
	"github.com/watchroom-cli/watchroom/log"
)

// headlessQueue is the number of callbacks the headless loop buffers.
const headlessQueue = 256

// headless drives a controller from line commands.
type headless struct {
	options    *Options
	controller *controller.Controller
	out        io.Writer
	cancel     context.CancelFunc

	volumeApplied bool
}

// RunHeadless drives playback from newline separated commands read from in and reports the
// state on out. It ends on "quit", at the end of in, or when ctx is done.
//
// Commands are key names (space, left, right, f, m), pointer gestures (move, click, dblclick),
// "seek SECONDS", "volume LEVEL", "open PATH" and "status".
func RunHeadless(ctx context.Context, options *Options, in io.Reader, out io.Writer) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	loop := controller.NewLoop(headlessQueue)
	h := &headless{
		options: options,
		controller: controller.New(controller.Options{
			Session:    options.Session,
			Element:    options.Element,
			Dispatcher: loop,
			Emitter:    options.Emitter,
			HideAfter:  options.HideAfter,
			SkipStep:   options.SkipStep,
		}),
		out:    out,
		cancel: cancel,
	}

	// commands are handled on the loop directly, only element events need a subscription
	h.controller.Mount(nil)
	defer h.controller.Unmount()

	// commands wait for the initial source so they see its metadata
	ready := make(chan struct{})
	if options.Path != "" {
		loop.Post(func() {
			defer close(ready)
			h.open(options.Path)
		})
	} else {
		close(ready)
	}

	go func() {
		defer cancel()

		select {
		case <-ready:
		case <-ctx.Done():
			return
		}

		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			line := scanner.Text()
			done := make(chan struct{})
			loop.Post(func() {
				defer close(done)
				h.exec(line)
			})

			select {
			case <-done:
			case <-ctx.Done():
				return
			}
		}
	}()

	err := loop.Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (h *headless) exec(line string) {
	command, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	arg = strings.TrimSpace(arg)
	isOwner := h.options.Session.IsOwner

	switch command {
	case "":
		return
	case "quit", "q":
		h.cancel()
		return
	case "status":
	case "open":
		h.open(arg)
	case "move":
		h.controller.HandleInput(controller.PointerMove)
	case "click":
		if isOwner {
			h.controller.HandleInput(controller.SurfaceClick)
		}
	case "dblclick":
		if isOwner {
			h.controller.HandleInput(controller.SurfaceDoubleClick)
		}
	case "seek":
		seconds, err := parseFinite(arg)
		if err != nil {
			fmt.Fprintf(h.out, "invalid seek target %q\n", arg)
			return
		}
		h.controller.SeekStart(seconds)
		h.controller.SeekCommit()
	case "volume":
		level, err := parseFinite(arg)
		if err != nil {
			fmt.Fprintf(h.out, "invalid volume %q\n", arg)
			return
		}
		h.controller.SetVolume(level)
	default:
		h.controller.HandleInput(wordKey(command))
	}

	h.status()
}

func (h *headless) open(path string) {
	source, err := h.options.Loader.Load(path)
	if err != nil {
		fmt.Fprintf(h.out, "%v\n", err)
		return
	}
	if source == nil {
		h.controller.Unbind()
		h.options.Loader.Clear()
		return
	}

	if err := h.controller.Bind(source); err != nil {
		log.WithError(err).WithField("file", source.File.Name).Error("bind source")
		h.options.Loader.Rollback(source)
		fmt.Fprintf(h.out, "%v\n", err)
		return
	}
	h.options.Loader.Commit(source)

	if !h.volumeApplied {
		h.volumeApplied = true
		h.controller.SetVolume(h.options.Volume)
	}

	if h.options.History {
		if err := history.Save(source); err != nil {
			log.WithError(err).Warn("save history")
		}
	}
}

// parseFinite parses a number, refusing NaN and infinities.
func parseFinite(arg string) (float64, error) {
	v, err := strconv.ParseFloat(arg, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%q is not a finite number", arg)
	}
	return v, nil
}

// wordKey turns a command word into a key press. "space" is the space bar.
func wordKey(word string) controller.KeyPress {
	if word == "space" {
		return controller.KeyPress{Key: " "}
	}
	return controller.KeyPress{Key: word}
}

func (h *headless) status() {
	snapshot := h.controller.Snapshot()

	volume := fmt.Sprintf("%d%%", int(math.Round(snapshot.State.Volume*100)))
	if snapshot.Muted() {
		volume = "muted"
	}

	fmt.Fprintf(
		h.out,
		"%s %s / %s volume=%s fullscreen=%t\n",
		snapshot.Phase,
		controller.FormatTime(snapshot.DisplayTime()),
		controller.FormatTime(snapshot.State.Duration),
		volume,
		snapshot.State.IsFullscreen,
	)
}
