package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/watchroom-cli/watchroom/color"
	"github.com/watchroom-cli/watchroom/constant"
	"github.com/watchroom-cli/watchroom/controller"
	"github.com/watchroom-cli/watchroom/history"
	"github.com/watchroom-cli/watchroom/icon"
	"github.com/watchroom-cli/watchroom/style"
	"github.com/watchroom-cli/watchroom/util"
)

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntP("limit", "n", 10, "Maximum number of videos to list, 0 lists all")
	historyCmd.Flags().BoolP("json", "j", false, "Format the output as JSON lines")
	historyCmd.Flags().BoolP("prune", "p", false, "Forget videos whose files no longer exist")

	historyCmd.SetOut(os.Stdout)
}

var historyCmd = &cobra.Command{
	Use:     "history",
	Short:   "List recently opened videos and where playback stopped",
	Aliases: []string{"recent"},
	Args:    cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			limit  = lo.Must(cmd.Flags().GetInt("limit"))
			asJson = lo.Must(cmd.Flags().GetBool("json"))
		)

		if lo.Must(cmd.Flags().GetBool("prune")) {
			pruned, err := history.Prune()
			handleErr(err)
			cmd.Printf("%s Forgot %s\n", icon.Get(icon.Success), util.Quantify(pruned, "video", "videos"))
			return
		}

		entries, err := history.Recent(limit)
		handleErr(err)

		if len(entries) == 0 && !asJson {
			cmd.Printf("%s No videos opened yet\n", icon.Get(icon.Fail))
			return
		}

		encoder := json.NewEncoder(cmd.OutOrStdout())
		for _, entry := range entries {
			if asJson {
				lo.Must0(encoder.Encode(entry))
				continue
			}

			cmd.Printf(
				"%s %s %s\n",
				style.Fg(color.Purple)(entry.Name),
				style.Faint(fmt.Sprintf(
					"%s / %s",
					controller.FormatTime(entry.Position),
					controller.FormatTime(entry.Duration),
				)),
				style.Faint(entry.OpenedAt.Format(constant.HistoryTimeFormat)),
			)
		}

		if !asJson {
			cmd.Printf("%s\n", style.Faint(util.Quantify(len(entries), "video", "videos")))
		}
	},
}
