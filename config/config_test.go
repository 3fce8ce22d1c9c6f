package config

import (
	"math"
	"os"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
	"github.com/watchroom-cli/watchroom/filesystem"
	"github.com/watchroom-cli/watchroom/key"
)

func TestSetup(t *testing.T) {
	Convey("Config Setup", t, func() {
		filesystem.SetMemMapFs()

		Convey("Should initialize without error", func() {
			err := Setup()
			So(err, ShouldBeNil)
		})

		Convey("Should have default values populated", func() {
			_ = Setup()
			for name := range Default {
				So(viper.Get(name), ShouldNotBeNil)
			}
		})

		Convey("Should register every defined key exactly once", func() {
			So(len(Default), ShouldEqual, key.DefinedFieldsCount)
			So(len(EnvExposed), ShouldEqual, key.DefinedFieldsCount)
		})

		Convey("Should expose playback defaults", func() {
			_ = Setup()
			So(viper.GetDuration(key.ControlsHideAfter).Seconds(), ShouldEqual, 3)
			So(viper.GetInt(key.ControlsSkipSeconds), ShouldEqual, 10)
			So(viper.GetStringSlice(key.LoaderExtensions), ShouldResemble, []string{"mkv", "mp4", "webm", "ogg"})
		})

		Convey("EnvKeyReplacer should convert dots to underscores", func() {
			result := EnvKeyReplacer.Replace("controls.hide_after")
			So(result, ShouldEqual, "controls_hide_after")
		})

		Convey("Field env names should carry the application prefix", func() {
			field := Default[key.RoomID]
			So(field.Env(), ShouldEqual, "WATCHROOM_ROOM_ID")
		})
	})
}

func TestLoadDotEnv(t *testing.T) {
	Convey("LoadDotEnv", t, func() {
		Convey("Should ignore missing files", func() {
			So(LoadDotEnv("does-not-exist.env"), ShouldBeNil)
		})

		Convey("Should export variables from an existing file", func() {
			dir := t.TempDir()
			path := dir + string(os.PathSeparator) + ".env"
			So(os.WriteFile(path, []byte("WATCHROOM_TEST_DOTENV=yes\n"), 0o644), ShouldBeNil)
			defer os.Unsetenv("WATCHROOM_TEST_DOTENV")

			So(LoadDotEnv(path), ShouldBeNil)
			So(os.Getenv("WATCHROOM_TEST_DOTENV"), ShouldEqual, "yes")
		})
	})
}

func TestParse(t *testing.T) {
	Convey("Given command line values", t, func() {
		Convey("Values are converted to the type of their default", func() {
			v, err := Parse(key.ControlsSkipSeconds, []string{"5"})
			So(err, ShouldBeNil)
			So(v, ShouldEqual, 5)

			v, err = Parse(key.ControlsVolume, []string{"0.25"})
			So(err, ShouldBeNil)
			So(v, ShouldEqual, 0.25)

			v, err = Parse(key.HistorySave, []string{"false"})
			So(err, ShouldBeNil)
			So(v, ShouldEqual, false)

			v, err = Parse(key.LoaderExtensions, []string{"mkv", "avi"})
			So(err, ShouldBeNil)
			So(v, ShouldResemble, []string{"mkv", "avi"})
		})

		Convey("Malformed values are refused", func() {
			_, err := Parse(key.ControlsSkipSeconds, []string{"ten"})
			So(err, ShouldNotBeNil)

			_, err = Parse(key.HistorySave, []string{"maybe"})
			So(err, ShouldNotBeNil)
		})

		Convey("Non-finite numbers are refused", func() {
			for _, raw := range []string{"NaN", "Inf", "-Inf"} {
				_, err := Parse(key.ControlsVolume, []string{raw})
				So(err, ShouldNotBeNil)
			}
		})

		Convey("Values outside their domain are refused", func() {
			_, err := Parse(key.ControlsVolume, []string{"1.5"})
			So(err, ShouldNotBeNil)

			_, err = Parse(key.ControlsSkipSeconds, []string{"0"})
			So(err, ShouldNotBeNil)

			_, err = Parse(key.ControlsHideAfter, []string{"-1s"})
			So(err, ShouldNotBeNil)

			_, err = Parse(key.Player, []string{"vlc"})
			So(err, ShouldNotBeNil)

			_, err = Parse(key.LogsLevel, []string{"loud"})
			So(err, ShouldNotBeNil)

			_, err = Parse(key.IconsVariant, []string{"nerd"})
			So(err, ShouldBeNil)
		})

		Convey("Unknown keys and missing values are refused", func() {
			_, err := Parse("controls.speed", []string{"2"})
			So(err, ShouldNotBeNil)

			_, err = Parse(key.RoomID, nil)
			So(err, ShouldNotBeNil)
		})
	})
}

func TestCheck(t *testing.T) {
	Convey("Given the default configuration", t, func() {
		filesystem.SetMemMapFs()
		So(Setup(), ShouldBeNil)

		Convey("It is valid", func() {
			So(Check(), ShouldBeNil)
		})

		Convey("An override outside its domain is reported", func() {
			Reset(func() { viper.Set(key.ControlsVolume, Default[key.ControlsVolume].Value) })

			viper.Set(key.ControlsVolume, math.NaN())
			So(Check(), ShouldNotBeNil)

			viper.Set(key.ControlsVolume, 1.5)
			So(Check(), ShouldNotBeNil)
		})
	})
}
