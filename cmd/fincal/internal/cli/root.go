// Package cli implements the fincal command tree.
package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/meenmo/fincal/calendar"
	"github.com/meenmo/fincal/config"
	"github.com/meenmo/fincal/daycount"
	"github.com/meenmo/fincal/logging"
)

// Version information
const (
	Version   = "0.3.0"
	BuildDate = "2025-11-20"
)

// ErrPartialFailure is returned after a batch was written in which at least
// one item failed. The failures are reported inline.
var ErrPartialFailure = errors.New("one or more items failed")

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// App holds what every command needs once flags and config are resolved.
type App struct {
	Config     *config.Config
	Logger     zerolog.Logger
	Calendar   calendar.Calendar
	Convention calendar.Convention
	DayCounter daycount.DayCounter
}

// Execute runs the command tree on args and returns the process exit code.
func Execute(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	root := NewRootCmd()
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrPartialFailure):
		return 1
	default:
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
}

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	app := &App{Logger: zerolog.Nop()}

	rootCmd := &cobra.Command{
		Use:   "fincal",
		Short: "Business day calendars, day counts and IMM dates",
		Long: `fincal adjusts and advances dates on business day calendars, counts
business days, computes accrual year fractions and resolves IMM futures codes.

Calendars are given as identifiers (TARGET, USD, NYSE, GBP, WEEKENDS, NULL) or
joint expressions such as USD+GBP. Defaults come from fincal.toml, FINCAL_*
environment variables and finally the flags below.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.setup(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default: ./fincal.toml or ~/.config/fincal/fincal.toml)")
	flags.StringP("calendar", "c", "", "calendar expression, e.g. TARGET or USD+GBP")
	flags.String("convention", "", "business day convention, e.g. ModifiedFollowing or MF")
	flags.String("daycount", "", "day count convention, e.g. ACT/360")
	flags.StringP("output", "o", "", "output format: text, json or yaml")
	flags.Int32("precision", -1, "decimals kept in year fractions")
	flags.Bool("debug", false, "enable debug logging")

	rootCmd.AddCommand(
		newVersionCmd(),
		newCheckCmd(app),
		newAdjustCmd(app),
		newAdvanceCmd(app),
		newSettleCmd(app),
		newSwapDatesCmd(app),
		newBizDaysCmd(app),
		newHolidaysCmd(app),
		newYearFracCmd(app),
		newIMMCmd(app),
		newIndexCmd(app),
	)
	return rootCmd
}

// setup loads the config file, applies flag overrides and resolves names.
func (a *App) setup(cmd *cobra.Command) error {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if v, _ := flags.GetString("calendar"); v != "" {
		cfg.Calendar = v
	}
	if v, _ := flags.GetString("convention"); v != "" {
		cfg.Convention = v
	}
	if v, _ := flags.GetString("daycount"); v != "" {
		cfg.DayCount = v
	}
	if v, _ := flags.GetString("output"); v != "" {
		cfg.Output = strings.ToLower(v)
	}
	if v, _ := flags.GetInt32("precision"); v >= 0 {
		cfg.Precision = v
	}
	if debug, _ := flags.GetBool("debug"); debug {
		cfg.Log.Level = "debug"
		cfg.Log.Console = true
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	a.Config = cfg
	a.Logger = logging.WithOperation(logging.New(cfg.Log, cmd.ErrOrStderr()), cmd.Name())
	if a.Calendar, err = cfg.BusinessCalendar(); err != nil {
		return err
	}
	if a.Convention, err = cfg.BusinessDayConvention(); err != nil {
		return err
	}
	if a.DayCounter, err = cfg.DayCounter(); err != nil {
		return err
	}

	a.Logger.Debug().
		Str("calendar", calendar.Name(a.Calendar)).
		Str("convention", a.Convention.String()).
		Str("day_count", a.DayCounter.Name()).
		Int("spot_lag", cfg.SpotLag).
		Msg("resolved defaults")
	return nil
}

func (a *App) output(cmd *cobra.Command) *Output {
	return NewOutput(cmd.OutOrStdout(), a.Config.Output)
}

func (a *App) round(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(a.Config.Precision)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		// The version command needs no config.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "fincal %s (%s)\n", Version, BuildDate)
			return nil
		},
	}
}
