// Package config holds the defaults used by the command line tools: which
// calendar, business day convention and day counter to apply when a request
// does not name one.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/meenmo/fincal/calendar"
	"github.com/meenmo/fincal/daycount"
	"github.com/meenmo/fincal/logging"
)

// EnvPrefix prefixes environment overrides, e.g. FINCAL_CALENDAR=USD+GBP or
// FINCAL_LOG_LEVEL=debug.
const EnvPrefix = "FINCAL"

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// MaxPrecision bounds the number of decimals printed for year fractions.
const MaxPrecision = 16

// Config holds the defaults applied to every request.
type Config struct {
	// Calendar is a calendar expression accepted by calendar.Parse.
	Calendar string `mapstructure:"calendar"`

	// Convention is the business day convention name.
	Convention string `mapstructure:"convention"`

	// DayCount is the day counter name accepted by daycount.Parse.
	DayCount string `mapstructure:"day_count"`

	// SpotLag is the number of business days from trade to spot.
	SpotLag int `mapstructure:"spot_lag"`

	// EndOfMonth snaps month and year advances to the last business day.
	EndOfMonth bool `mapstructure:"end_of_month"`

	// Output is one of text, json, yaml.
	Output string `mapstructure:"output"`

	// Precision is the number of decimals kept in year fractions.
	Precision int32 `mapstructure:"precision"`

	Log logging.LogConfig `mapstructure:"log"`
}

// DefaultConfig is a TARGET / modified following / ACT/360 setup with T+2 spot.
var DefaultConfig = Config{
	Calendar:   string(calendar.TARGET),
	Convention: calendar.ModifiedFollowing.String(),
	DayCount:   daycount.Actual360.Name(),
	SpotLag:    calendar.DefaultSpotLag,
	EndOfMonth: false,
	Output:     FormatText,
	Precision:  10,
	Log:        logging.DefaultLogConfig(),
}

// DefaultConfigDir returns the default configuration directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/fincal"
	}
	return filepath.Join(home, ".config", "fincal")
}

// Load reads configuration from path, or from fincal.{toml,yaml,json} in the
// working directory or DefaultConfigDir when path is empty. A missing file
// is not an error. Environment variables prefixed with EnvPrefix override
// file values.
func Load(path string) (*Config, error) {
	// FINCAL_* variables may also come from a .env file in the working directory.
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("fincal")
		v.AddConfigPath(".")
		v.AddConfigPath(DefaultConfigDir())
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("loading config: %w", err)
		}
	}

	c := &Config{}
	if err := v.Unmarshal(c); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	c.Output = strings.ToLower(c.Output)
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return c, nil
}

func setDefaults(v *viper.Viper) {
	d := DefaultConfig
	v.SetDefault("calendar", d.Calendar)
	v.SetDefault("convention", d.Convention)
	v.SetDefault("day_count", d.DayCount)
	v.SetDefault("spot_lag", d.SpotLag)
	v.SetDefault("end_of_month", d.EndOfMonth)
	v.SetDefault("output", d.Output)
	v.SetDefault("precision", d.Precision)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.console", d.Log.Console)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("log.file_path", d.Log.FilePath)
	v.SetDefault("log.max_size", d.Log.MaxSize)
	v.SetDefault("log.max_backups", d.Log.MaxBackups)
	v.SetDefault("log.max_age", d.Log.MaxAge)
}

// Validate checks that every name resolves.
func (c *Config) Validate() error {
	if _, err := c.BusinessCalendar(); err != nil {
		return err
	}
	if _, err := c.BusinessDayConvention(); err != nil {
		return err
	}
	if _, err := c.DayCounter(); err != nil {
		return err
	}
	if c.SpotLag < 0 {
		return fmt.Errorf("spot_lag must be non-negative, got %d", c.SpotLag)
	}
	switch strings.ToLower(c.Output) {
	case FormatText, FormatJSON, FormatYAML:
	default:
		return fmt.Errorf("output must be one of text, json, yaml, got %q", c.Output)
	}
	if c.Precision < 0 || c.Precision > MaxPrecision {
		return fmt.Errorf("precision must be in [0, %d], got %d", MaxPrecision, c.Precision)
	}
	return nil
}

// BusinessCalendar resolves Calendar.
func (c *Config) BusinessCalendar() (calendar.Calendar, error) {
	return calendar.Parse(c.Calendar)
}

// BusinessDayConvention resolves Convention.
func (c *Config) BusinessDayConvention() (calendar.Convention, error) {
	return calendar.ParseConvention(c.Convention)
}

// DayCounter resolves DayCount. BUS/252 counts on the configured calendar
// unless the name carries its own.
func (c *Config) DayCounter() (daycount.DayCounter, error) {
	cal, err := c.BusinessCalendar()
	if err != nil {
		return nil, err
	}
	return daycount.ParseWithCalendar(c.DayCount, cal)
}
