package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/watchroom-cli/watchroom/blob"
	"github.com/watchroom-cli/watchroom/config"
	"github.com/watchroom-cli/watchroom/controller"
	"github.com/watchroom-cli/watchroom/key"
	"github.com/watchroom-cli/watchroom/log"
	"github.com/watchroom-cli/watchroom/media"
	"github.com/watchroom-cli/watchroom/player"
	"github.com/watchroom-cli/watchroom/relay"
	"github.com/watchroom-cli/watchroom/tui"
	"github.com/watchroom-cli/watchroom/where"
	"golang.org/x/term"
)

// runRoom wires the handle server, the loader, the engine and the emitters, then hands
// them to the interface. Everything started here is stopped before it returns.
func runRoom(cmd *cobra.Command, args []string) error {
	if err := config.Check(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	session := controller.Session{
		RoomID:  viper.GetInt(key.RoomID),
		IsOwner: viper.GetBool(key.RoomOwner) && !lo.Must(cmd.Flags().GetBool("viewer")),
	}
	headless := lo.Must(cmd.Flags().GetBool("headless")) || !term.IsTerminal(int(os.Stdout.Fd()))

	var path string
	if len(args) > 0 {
		path = args[0]
	} else if !headless {
		picked, err := pickFile()
		if err != nil {
			return err
		}
		path = picked
	}

	registry := blob.New(viper.GetBool(key.BlobMetrics))
	if err := registry.Start(); err != nil {
		return err
	}
	defer registry.Close()

	loader := newLoader(session.RoomID, registry)
	defer loader.Close()

	element, err := newElement(ctx, lo.Must(cmd.Flags().GetDuration("duration")))
	if err != nil {
		return err
	}
	defer element.Close()

	options := &tui.Options{
		Path:      path,
		Session:   session,
		Loader:    loader,
		Element:   element,
		Emitter:   newEmitter(),
		HideAfter: viper.GetDuration(key.ControlsHideAfter),
		SkipStep:  time.Duration(viper.GetInt(key.ControlsSkipSeconds)) * time.Second,
		Volume:    viper.GetFloat64(key.ControlsVolume),
		History:   viper.GetBool(key.HistorySave),
	}

	log.WithFields(log.Fields{
		"room":     session.RoomID,
		"owner":    session.IsOwner,
		"player":   viper.GetString(key.Player),
		"headless": headless,
	}).Info("joining room")

	if headless {
		return tui.RunHeadless(ctx, options, os.Stdin, os.Stdout)
	}
	return tui.Run(options)
}

func newLoader(roomID int, allocator media.Allocator) *media.Loader {
	options := media.Options{
		RoomID:    roomID,
		Allocator: allocator,
		Acceptance: &media.Acceptance{
			MimePrefixes: viper.GetStringSlice(key.LoaderMimePrefixes),
			Extensions:   viper.GetStringSlice(key.LoaderExtensions),
		},
	}

	if viper.GetBool(key.LoaderCacheFingerprints) {
		options.Cache = media.NewFingerprintCache(where.Fingerprints())
	}

	return media.NewLoader(options)
}

func newElement(ctx context.Context, duration time.Duration) (player.Element, error) {
	switch name := viper.GetString(key.Player); name {
	case config.PlayerMPV:
		CheckDependencies()
		return player.NewMPV(viper.GetStringSlice(key.PlayerArgs)...), nil
	case config.PlayerSimulated:
		simulated := player.NewSimulated(duration)
		go simulated.Run(ctx)
		return simulated, nil
	default:
		return nil, fmt.Errorf("unknown player %q, expected one of %s", name, strings.Join(config.Players, ", "))
	}
}

func newEmitter() relay.Emitter {
	var emitters []relay.Emitter

	if viper.GetBool(key.RelayLog) {
		emitters = append(emitters, relay.Logger{})
	}
	if viper.GetBool(key.RelayJournal) {
		emitters = append(emitters, relay.NewJournal(where.Journal()))
	}

	if len(emitters) == 0 {
		return relay.Discard
	}
	return relay.Multi(emitters...)
}

// pickFile asks for a video when none was given on the command line.
func pickFile() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}

	allowed := lo.Map(viper.GetStringSlice(key.LoaderExtensions), func(ext string, _ int) string {
		return "." + ext
	})

	var path string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewFilePicker().
				Title("Select a video").
				Description("Only the room owner controls playback").
				CurrentDirectory(cwd).
				AllowedTypes(allowed).
				Picking(true).
				Value(&path),
		),
	)

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return "", nil
		}
		return "", fmt.Errorf("file selection cancelled: %w", err)
	}

	return path, nil
}
