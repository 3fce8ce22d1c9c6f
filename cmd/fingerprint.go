package cmd

import (
	"encoding/json"
	"os"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/watchroom-cli/watchroom/color"
	"github.com/watchroom-cli/watchroom/key"
	"github.com/watchroom-cli/watchroom/media"
	"github.com/watchroom-cli/watchroom/style"
	"github.com/watchroom-cli/watchroom/where"
)

func init() {
	rootCmd.AddCommand(fingerprintCmd)
	fingerprintCmd.Flags().BoolP("json", "j", false, "Format the output as JSON lines")
	fingerprintCmd.Flags().Bool("no-cache", false, "Always hash the file content")

	fingerprintCmd.SetOut(os.Stdout)
}

type fingerprintEntry struct {
	File        string `json:"file"`
	Fingerprint string `json:"fingerprint"`
	Size        int64  `json:"size"`
}

// fingerprintCmd prints content fingerprints so participants can check they hold the same file.
var fingerprintCmd = &cobra.Command{
	Use:     "fingerprint [files...]",
	Short:   "Print the content fingerprint of video files",
	Aliases: []string{"hash"},
	Args:    cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var (
			asJson  = lo.Must(cmd.Flags().GetBool("json"))
			noCache = lo.Must(cmd.Flags().GetBool("no-cache"))
			cache   *media.FingerprintCache
		)

		if !noCache && viper.GetBool(key.LoaderCacheFingerprints) {
			cache = media.NewFingerprintCache(where.Fingerprints())
		}

		encoder := json.NewEncoder(cmd.OutOrStdout())
		for _, path := range args {
			ref, err := media.Stat(path)
			handleErr(err)

			digest, ok := "", false
			if cache != nil {
				digest, ok = cache.Lookup(ref)
			}
			if !ok {
				digest, err = media.Fingerprint(ref.Path)
				handleErr(err)

				if cache != nil {
					_ = cache.Store(ref, digest)
				}
			}

			if asJson {
				lo.Must0(encoder.Encode(fingerprintEntry{File: ref.Path, Fingerprint: digest, Size: ref.Size}))
				continue
			}

			cmd.Printf("%s  %s\n", style.Fg(color.Yellow)(digest), ref.Path)
		}
	},
}
