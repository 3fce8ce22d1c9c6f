package config

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/watchroom-cli/watchroom/icon"
	"github.com/watchroom-cli/watchroom/key"
	"golang.org/x/exp/slices"
)

// Media engines accepted by key.Player.
const (
	PlayerMPV       = "mpv"
	PlayerSimulated = "simulated"
)

// Players lists the media engines accepted by key.Player.
var Players = []string{PlayerMPV, PlayerSimulated}

// checks holds the per-key constraints beyond the value type.
var checks = map[string]func(any) error{
	key.Player:              oneOf(Players...),
	key.IconsVariant:        oneOf(icon.AvailableVariants()...),
	key.LogsLevel:           logLevel,
	key.ControlsVolume:      volume,
	key.ControlsHideAfter:   positiveDuration,
	key.ControlsSkipSeconds: positiveInt,
}

// Parse converts raw command line values into the type of the field registered under k and validates the result.
func Parse(k string, raw []string) (any, error) {
	field, ok := Default[k]
	if !ok {
		return nil, fmt.Errorf("unknown key %s", k)
	}

	if len(raw) == 0 {
		return nil, fmt.Errorf("no value given for %s", k)
	}

	var (
		v   any
		err error
	)

	switch field.Value.(type) {
	case string:
		v = raw[0]
	case int:
		var parsed int64
		parsed, err = strconv.ParseInt(raw[0], 10, 64)
		v = int(parsed)
	case bool:
		v, err = strconv.ParseBool(raw[0])
	case float64:
		var parsed float64
		parsed, err = strconv.ParseFloat(raw[0], 64)
		if err == nil && (math.IsNaN(parsed) || math.IsInf(parsed, 0)) {
			err = errors.New("not a finite number")
		}
		v = parsed
	case []string:
		v = raw
	default:
		return nil, fmt.Errorf("%s has unsupported type %s", k, field.typeName())
	}

	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q for %s", field.typeName(), strings.Join(raw, ","), k)
	}

	return v, Validate(k, v)
}

// Validate applies the constraints registered for k to v.
func Validate(k string, v any) error {
	check, ok := checks[k]
	if !ok {
		return nil
	}

	if err := check(v); err != nil {
		return fmt.Errorf("invalid value for %s: %w", k, err)
	}

	return nil
}

// Check validates the effective value of every field, including values coming from the environment.
func Check() error {
	keys := lo.Keys(Default)
	slices.Sort(keys)

	var errs []error
	for _, k := range keys {
		if err := Validate(k, effective(Default[k])); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// effective reads the current value of field coerced to the type of its default.
func effective(field Field) any {
	switch field.Value.(type) {
	case string:
		return viper.GetString(field.Key)
	case int:
		return viper.GetInt(field.Key)
	case bool:
		return viper.GetBool(field.Key)
	case float64:
		return viper.GetFloat64(field.Key)
	case []string:
		return viper.GetStringSlice(field.Key)
	default:
		return viper.Get(field.Key)
	}
}

func oneOf(options ...string) func(any) error {
	return func(v any) error {
		if s, ok := v.(string); ok && lo.Contains(options, s) {
			return nil
		}
		return fmt.Errorf("%v is not one of %s", v, strings.Join(options, ", "))
	}
}

func logLevel(v any) error {
	s, _ := v.(string)
	_, err := logrus.ParseLevel(s)
	return err
}

func volume(v any) error {
	f, ok := v.(float64)
	if !ok || math.IsNaN(f) || f < 0 || f > 1 {
		return fmt.Errorf("%v is not between 0 and 1", v)
	}
	return nil
}

func positiveDuration(v any) error {
	s, _ := v.(string)
	d, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	if d <= 0 {
		return fmt.Errorf("%s is not a positive duration", s)
	}
	return nil
}

func positiveInt(v any) error {
	if n, ok := v.(int); !ok || n <= 0 {
		return fmt.Errorf("%v is not a positive number", v)
	}
	return nil
}
