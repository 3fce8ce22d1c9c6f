// Package cmd implements the command-line interface for watchroom.
package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	levenshtein "github.com/ka-weihe/fast-levenshtein"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/watchroom-cli/watchroom/color"
	"github.com/watchroom-cli/watchroom/config"
	"github.com/watchroom-cli/watchroom/constant"
	"github.com/watchroom-cli/watchroom/filesystem"
	"github.com/watchroom-cli/watchroom/icon"
	"github.com/watchroom-cli/watchroom/style"
	"github.com/watchroom-cli/watchroom/where"
	"golang.org/x/exp/slices"
)

func errUnknownKey(key string) error {
	closest := lo.MinBy(lo.Keys(config.Default), func(a string, b string) bool {
		return levenshtein.Distance(key, a) < levenshtein.Distance(key, b)
	})

	return fmt.Errorf(
		"unknown key %s, did you mean %s?",
		style.Fg(color.Red)(key),
		style.Fg(color.Yellow)(closest),
	)
}

func completionConfigKeys(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return lo.Keys(config.Default), cobra.ShellCompDirectiveNoFileComp
}

// keyArg resolves the key from the first argument or the --key flag and rejects unknown keys.
func keyArg(cmd *cobra.Command, args []string) string {
	k := lo.Must(cmd.Flags().GetString("key"))
	if len(args) >= 1 {
		k = args[0]
	}

	if k == "" {
		handleErr(errors.New("key is required as an argument or --key flag"))
	}
	if _, ok := config.Default[k]; !ok {
		handleErr(errUnknownKey(k))
	}

	return k
}

func configFile() string {
	return filepath.Join(where.Config(), constant.Watchroom+".toml")
}

// persist writes the current settings, creating the config file on first use.
func persist() error {
	err := viper.WriteConfig()
	if errors.As(err, &viper.ConfigFileNotFoundError{}) {
		return viper.SafeWriteConfig()
	}
	return err
}

// changed reports whether the effective value of field differs from its default.
func changed(field config.Field) bool {
	return fmt.Sprint(viper.Get(field.Key)) != fmt.Sprint(field.Value)
}

func init() {
	rootCmd.AddCommand(configCmd)
}

// configCmd serves as the parent command for managing application configuration.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage application configuration settings and defaults",
}

func init() {
	configCmd.AddCommand(configInfoCmd)
	configInfoCmd.Flags().StringSliceP("key", "k", []string{}, "Specify the configuration keys to retrieve information for")
	configInfoCmd.Flags().BoolP("json", "j", false, "Format the output as a JSON string")
	configInfoCmd.Flags().BoolP("changed", "c", false, "Only show fields that differ from their defaults")
	_ = configInfoCmd.RegisterFlagCompletionFunc("key", completionConfigKeys)

	configInfoCmd.SetOut(os.Stdout)
}

// configInfoCmd displays metadata and descriptions for configuration fields.
var configInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Display detailed information and descriptions for specified configuration fields",
	Run: func(cmd *cobra.Command, args []string) {
		var (
			keys        = lo.Must(cmd.Flags().GetStringSlice("key"))
			asJson      = lo.Must(cmd.Flags().GetBool("json"))
			onlyChanged = lo.Must(cmd.Flags().GetBool("changed"))
			fields      = lo.Values(config.Default)
		)

		if len(keys) > 0 {
			fields = lo.Map(keys, func(k string, _ int) config.Field {
				field, ok := config.Default[k]
				if !ok {
					handleErr(errUnknownKey(k))
				}
				return field
			})
		}

		if onlyChanged {
			fields = lo.Filter(fields, func(field config.Field, _ int) bool { return changed(field) })
		}

		slices.SortFunc(fields, func(a, b config.Field) int {
			return strings.Compare(a.Key, b.Key)
		})

		if asJson {
			encoder := json.NewEncoder(cmd.OutOrStdout())
			lo.Must0(encoder.Encode(fields))
			return
		}

		if len(fields) == 0 {
			cmd.Printf("%s All settings are at their defaults\n", icon.Get(icon.Success))
			return
		}

		for i, field := range fields {
			cmd.Print(field.Pretty())

			if i < len(fields)-1 {
				cmd.Print("\n\n")
			}
		}
		cmd.Println()
	},
}

func init() {
	configCmd.AddCommand(configSetCmd)
	configSetCmd.Flags().StringP("key", "k", "", "The configuration key to update")
	configSetCmd.Flags().StringSliceP("value", "v", []string{}, "The new value to assign to the configuration key")
	_ = configSetCmd.RegisterFlagCompletionFunc("key", completionConfigKeys)
}

// configSetCmd validates and persists a new value for a configuration key.
var configSetCmd = &cobra.Command{
	Use:               "set [key] [value...]",
	Short:             "Update the value of a specified configuration key",
	Example:           "  watchroom config set controls.volume 0.5\n  watchroom config set loader.extensions mkv mp4",
	ValidArgsFunction: completionConfigKeys,
	Run: func(cmd *cobra.Command, args []string) {
		k := keyArg(cmd, args)

		value := lo.Must(cmd.Flags().GetStringSlice("value"))
		if len(args) >= 2 {
			value = args[1:]
		}
		if len(value) == 0 {
			handleErr(errors.New("value is required as an argument or --value flag"))
		}

		v, err := config.Parse(k, value)
		handleErr(err)

		viper.Set(k, v)
		handleErr(persist())

		fmt.Printf(
			"%s set %s to %s\n",
			style.Fg(color.Green)(icon.Get(icon.Success)),
			style.Fg(color.Purple)(k),
			style.Fg(color.Yellow)(fmt.Sprintf("%v", v)),
		)
	},
}

func init() {
	configCmd.AddCommand(configGetCmd)
	configGetCmd.Flags().StringP("key", "k", "", "The specific configuration key to retrieve")
	_ = configGetCmd.RegisterFlagCompletionFunc("key", completionConfigKeys)
}

// configGetCmd prints the effective value of a configuration key.
var configGetCmd = &cobra.Command{
	Use:               "get [key]",
	Short:             "Retrieve the current value of a specified configuration key",
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: completionConfigKeys,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(viper.Get(keyArg(cmd, args)))
	},
}

func init() {
	configCmd.AddCommand(configCheckCmd)
}

// configCheckCmd validates every effective setting, including environment overrides.
var configCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the effective configuration, including environment overrides",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		handleErr(config.Check())
		fmt.Printf(
			"%s configuration is valid\n",
			style.Fg(color.Green)(icon.Get(icon.Success)),
		)
	},
}

func init() {
	configCmd.AddCommand(configWriteCmd)
	configWriteCmd.Flags().BoolP("force", "f", false, "Forcefully overwrite the existing configuration file")
}

// configWriteCmd serializes the current in-memory configuration to disk.
var configWriteCmd = &cobra.Command{
	Use:   "write",
	Short: "Persist the current in-memory configuration to the localized config file",
	Run: func(cmd *cobra.Command, args []string) {
		path := configFile()

		if lo.Must(cmd.Flags().GetBool("force")) {
			handleErr(filesystem.API().Remove(path))
		}

		handleErr(viper.SafeWriteConfig())
		fmt.Printf(
			"%s wrote config to %s\n",
			style.Fg(color.Green)(icon.Get(icon.Success)),
			path,
		)
	},
}

func init() {
	configCmd.AddCommand(configDeleteCmd)
}

// configDeleteCmd removes the configuration file from the localized storage.
var configDeleteCmd = &cobra.Command{
	Use:     "delete",
	Short:   "Permanently remove the localized configuration file from the system",
	Aliases: []string{"remove"},
	Run: func(cmd *cobra.Command, args []string) {
		handleErr(filesystem.API().Remove(configFile()))
		fmt.Printf(
			"%s deleted config\n",
			style.Fg(color.Green)(icon.Get(icon.Success)),
		)
	},
}

func init() {
	configCmd.AddCommand(configResetCmd)

	configResetCmd.Flags().StringP("key", "k", "", "The configuration key to restore to its default value")
	configResetCmd.Flags().BoolP("all", "a", false, "Restore all configuration settings to their factory defaults")
	configResetCmd.MarkFlagsMutuallyExclusive("key", "all")
	_ = configResetCmd.RegisterFlagCompletionFunc("key", completionConfigKeys)
}

// configResetCmd restores configuration keys to their factory default values.
var configResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore a specified configuration key to its default value",
	PreRun: func(cmd *cobra.Command, args []string) {
		if !cmd.Flags().Changed("key") && !cmd.Flags().Changed("all") {
			handleErr(fmt.Errorf("either --key or --all must be set"))
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		if lo.Must(cmd.Flags().GetBool("all")) {
			for k, field := range config.Default {
				viper.Set(k, field.Value)
			}
			handleErr(persist())

			fmt.Printf(
				"%s reset all config values\n",
				style.Fg(color.Green)(icon.Get(icon.Success)),
			)
			return
		}

		k := keyArg(cmd, nil)
		viper.Set(k, config.Default[k].Value)
		handleErr(persist())

		fmt.Printf(
			"%s reset %s to default value %s\n",
			style.Fg(color.Green)(icon.Get(icon.Success)),
			style.Fg(color.Purple)(k),
			style.Fg(color.Yellow)(fmt.Sprintf("%v", config.Default[k].Value)),
		)
	},
}
