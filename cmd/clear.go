// Package cmd implements the command-line interface for watchroom.
package cmd

import (
	"fmt"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
	"github.com/watchroom-cli/watchroom/filesystem"
	"github.com/watchroom-cli/watchroom/icon"
	"github.com/watchroom-cli/watchroom/util"
	"github.com/watchroom-cli/watchroom/where"
)

// clearTarget defines a filesystem resource eligible for automated cleanup.
type clearTarget struct {
	name     string
	argLong  string
	argShort mo.Option[string]
	location func() string
}

// clearTargets registry of all application artifacts that can be selectively cleared.
var clearTargets = []clearTarget{
	{"cache directory", "cache", mo.Some("c"), where.Cache},
	{"fingerprint cache", "fingerprints", mo.Some("f"), where.Fingerprints},
	{"event journal", "journal", mo.Some("j"), where.Journal},
	{"watch history", "history", mo.Some("s"), where.History},
	{"logs directory", "logs", mo.Some("l"), where.Logs},
}

func init() {
	rootCmd.AddCommand(clearCmd)

	for _, target := range clearTargets {
		help := fmt.Sprintf("clear %s", target.name)
		if target.argShort.IsPresent() {
			clearCmd.Flags().BoolP(target.argLong, target.argShort.MustGet(), false, help)
		} else {
			clearCmd.Flags().Bool(target.argLong, false, help)
		}
	}

	clearCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
}

// clearCmd manages the cleanup of temporary and cached application artifacts.
var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear cached fingerprints, the event journal and other local artifacts",
	Run: func(cmd *cobra.Command, args []string) {
		doClear := func(what string) bool {
			return lo.Must(cmd.Flags().GetBool(what))
		}

		selected := lo.Filter(clearTargets, func(target clearTarget, _ int) bool {
			return doClear(target.argLong)
		})

		if len(selected) == 0 {
			handleErr(cmd.Help())
			return
		}

		if !doClear("yes") {
			confirmed := false
			names := lo.Map(selected, func(target clearTarget, _ int) string { return target.name })
			handleErr(survey.AskOne(&survey.Confirm{
				Message: fmt.Sprintf("Remove the %s?", strings.Join(names, ", ")),
				Default: false,
			}, &confirmed))

			if !confirmed {
				return
			}
		}

		for _, target := range selected {
			e := util.PrintErasable(fmt.Sprintf("%s Clearing %s...", icon.Get(icon.Progress), util.Capitalize(target.name)))
			handleErr(filesystem.API().RemoveAll(target.location()))
			e()
			fmt.Printf("%s %s cleared\n", icon.Get(icon.Success), util.Capitalize(target.name))
		}
	},
}
