package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Settings holds the runtime configuration resolved from defaults, an optional
// YAML file, and DUNBAR_* environment variables (in increasing precedence).
type Settings struct {
	DataFile        string
	Language        string
	LookaheadDays   int
	Timezone        string
	ReminderTrigger string
}

// Location resolves the configured timezone. Date bucketing is defined in a
// fixed local calendar, so an unresolvable zone falls back to UTC rather than
// failing the whole application.
func (s Settings) Location() *time.Location {
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		slog.Warn(ErrTimezoneLoad,
			LogKeyComponent, CompMain,
			LogKeyValue, s.Timezone,
			LogKeyError, err,
		)
		return time.UTC
	}
	return loc
}

// LoadSettings reads configuration. cfgPath may be empty, in which case only
// defaults and environment variables apply; a missing file at an explicit
// path is an error, a missing default file is not.
func LoadSettings(cfgPath string) (Settings, error) {
	v := viper.New()

	v.SetDefault(CfgKeyDataFile, DefaultDataFile)
	v.SetDefault(CfgKeyLanguage, DefaultLanguage)
	v.SetDefault(CfgKeyLookaheadDays, DefaultLookaheadDays)
	v.SetDefault(CfgKeyTimezone, DefaultTimezone)
	v.SetDefault(CfgKeyReminder, "")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
		if err := v.ReadInConfig(); err != nil {
			return Settings{}, fmt.Errorf("%s: %w", ErrSettingsRead, err)
		}
	}

	s := Settings{
		DataFile:        v.GetString(CfgKeyDataFile),
		Language:        v.GetString(CfgKeyLanguage),
		LookaheadDays:   v.GetInt(CfgKeyLookaheadDays),
		Timezone:        v.GetString(CfgKeyTimezone),
		ReminderTrigger: v.GetString(CfgKeyReminder),
	}
	if s.LookaheadDays < 0 {
		s.LookaheadDays = DefaultLookaheadDays
	}
	return s, nil
}
