// Package cmd implements the command-line interface for watchroom.
package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	cc "github.com/ivanpirog/coloredcobra"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/watchroom-cli/watchroom/color"
	"github.com/watchroom-cli/watchroom/config"
	"github.com/watchroom-cli/watchroom/constant"
	"github.com/watchroom-cli/watchroom/icon"
	"github.com/watchroom-cli/watchroom/key"
	"github.com/watchroom-cli/watchroom/log"
	"github.com/watchroom-cli/watchroom/style"
	"github.com/watchroom-cli/watchroom/util"
	"github.com/watchroom-cli/watchroom/where"
)

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")

	rootCmd.PersistentFlags().StringP("icons", "I", "", "Set the visual icon variant (e.g., nerd, emoji, square)")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("icons", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return icon.AvailableVariants(), cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.IconsVariant, rootCmd.PersistentFlags().Lookup("icons")))

	rootCmd.Flags().IntP("room", "r", 0, "Room identifier, defaults to the configured room")
	lo.Must0(viper.BindPFlag(key.RoomID, rootCmd.Flags().Lookup("room")))

	rootCmd.Flags().Bool("viewer", false, "Join as a viewer; transport controls are disabled")

	rootCmd.Flags().StringP("player", "p", "", "Media engine to render with (mpv, simulated)")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("player", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return config.Players, cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.Player, rootCmd.Flags().Lookup("player")))

	rootCmd.Flags().Duration("duration", 10*time.Minute, "Media length reported by the simulated engine")
	rootCmd.Flags().Bool("headless", false, "Read commands from stdin instead of starting the interface")

	// Initialize cleanup of localized temporary files on application startup.
	go func() {
		_ = util.Delete(where.Temp())
	}()
}

// rootCmd defines the entry point for the watchroom application.
var rootCmd = &cobra.Command{
	Use:   constant.Watchroom + " [file]",
	Short: "Watch a local video together, with one participant in control",
	Long: constant.AsciiArtLogo + "\n" +
		style.New().Italic(true).Foreground(color.HiRed).Render("    - Watch a local video together, with one participant in control"),
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("version") {
			versionCmd.Run(versionCmd, args)
			return
		}

		handleErr(runRoom(cmd, args))
	},
}

// Execute initializes child command routing and processes the CLI entry point.
func Execute() {
	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func handleErr(err error) {
	if err != nil {
		log.Error(err)
		_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", icon.Get(icon.Fail), strings.Trim(err.Error(), " \n"))
		os.Exit(1)
	}
}
