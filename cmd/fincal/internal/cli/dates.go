package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/meenmo/fincal/calendar"
	"github.com/meenmo/fincal/market"
	"github.com/meenmo/fincal/period"
	"github.com/meenmo/fincal/utils"
)

type dateResult struct {
	Calendar   string `json:"calendar" yaml:"calendar"`
	Input      string `json:"input" yaml:"input"`
	Period     string `json:"period,omitempty" yaml:"period,omitempty"`
	Convention string `json:"convention" yaml:"convention"`
	Date       string `json:"date" yaml:"date"`
}

type checkResult struct {
	Calendar        string `json:"calendar" yaml:"calendar"`
	Date            string `json:"date" yaml:"date"`
	Weekday         string `json:"weekday" yaml:"weekday"`
	BusinessDay     bool   `json:"business_day" yaml:"business_day"`
	Weekend         bool   `json:"weekend" yaml:"weekend"`
	EndOfMonth      bool   `json:"end_of_month" yaml:"end_of_month"`
	LastBusinessDay string `json:"last_business_day" yaml:"last_business_day"`
}

func parseDateArg(name, s string) (time.Time, error) {
	t, err := utils.ParseDate(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s: %w", name, err)
	}
	return t, nil
}

func parsePeriodArg(name, s string) (period.Period, error) {
	p, err := period.Parse(s)
	if err != nil {
		return period.Period{}, fmt.Errorf("invalid %s: %w", name, err)
	}
	return p, nil
}

// checkYears rejects dates the configured calendar cannot classify.
func (a *App) checkYears(dates ...time.Time) error {
	for _, d := range dates {
		if err := calendar.CheckYear(a.Calendar, d); err != nil {
			return err
		}
	}
	return nil
}

func newCheckCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "check DATE",
		Short: "Report whether DATE is a business day",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := parseDateArg("date", args[0])
			if err != nil {
				return err
			}
			if err := app.checkYears(d); err != nil {
				return err
			}
			res := checkResult{
				Calendar:        calendar.Name(app.Calendar),
				Date:            formatDate(d),
				Weekday:         d.Weekday().String(),
				BusinessDay:     calendar.IsBusinessDay(app.Calendar, d),
				Weekend:         calendar.IsWeekend(d),
				EndOfMonth:      calendar.IsEndOfMonth(app.Calendar, d),
				LastBusinessDay: formatDate(calendar.EndOfMonth(app.Calendar, d)),
			}
			return app.output(cmd).Emit(res, func(w io.Writer) {
				status := "holiday"
				switch {
				case res.BusinessDay:
					status = "business day"
				case res.Weekend:
					status = "weekend"
				}
				fmt.Fprintf(w, "%s %s: %s on %s\n", res.Date, res.Weekday, status, res.Calendar)
			})
		},
	}
}

func newAdjustCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "adjust DATE",
		Short: "Adjust DATE to a business day under the convention",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := parseDateArg("date", args[0])
			if err != nil {
				return err
			}
			adjusted, err := calendar.Adjust(app.Calendar, d, app.Convention)
			if err != nil {
				return err
			}
			app.Logger.Info().Str("input", formatDate(d)).Str("date", formatDate(adjusted)).Msg("adjusted")
			res := dateResult{
				Calendar:   calendar.Name(app.Calendar),
				Input:      formatDate(d),
				Convention: app.Convention.String(),
				Date:       formatDate(adjusted),
			}
			return app.output(cmd).Emit(res, func(w io.Writer) { fmt.Fprintln(w, res.Date) })
		},
	}
}

func newAdvanceCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "advance DATE PERIOD",
		Short: "Advance DATE by PERIOD (e.g. 3M, -2D, 1Y) on the calendar",
		Long: `Advance DATE by PERIOD. Day periods count business days; weeks, months
and years are added to DATE and the result adjusted under the convention.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := parseDateArg("date", args[0])
			if err != nil {
				return err
			}
			p, err := parsePeriodArg("period", args[1])
			if err != nil {
				return err
			}
			eom := app.endOfMonth(cmd)
			advanced, err := calendar.Advance(app.Calendar, d, p, app.Convention, eom)
			if err != nil {
				return err
			}
			app.Logger.Info().Str("input", formatDate(d)).Stringer("period", p).Bool("eom", eom).Msg("advanced")
			res := dateResult{
				Calendar:   calendar.Name(app.Calendar),
				Input:      formatDate(d),
				Period:     p.String(),
				Convention: app.Convention.String(),
				Date:       formatDate(advanced),
			}
			return app.output(cmd).Emit(res, func(w io.Writer) { fmt.Fprintln(w, res.Date) })
		},
	}
	cmd.Flags().Bool("eom", false, "snap month and year advances to the last business day of the month")
	return cmd
}

// endOfMonth returns the --eom flag when set on the command line and the
// configured default otherwise.
func (a *App) endOfMonth(cmd *cobra.Command) bool {
	if cmd.Flags().Changed("eom") {
		v, _ := cmd.Flags().GetBool("eom")
		return v
	}
	return a.Config.EndOfMonth
}

func (a *App) spotLag(cmd *cobra.Command) int {
	if cmd.Flags().Changed("spot-lag") {
		v, _ := cmd.Flags().GetInt("spot-lag")
		return v
	}
	return a.Config.SpotLag
}

func newSettleCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settle TRADE TENOR",
		Short: "Value date of a tenor (ON, SPOT, SN, 1W, 3M, ...) traded on TRADE",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			trade, err := parseDateArg("trade date", args[0])
			if err != nil {
				return err
			}
			tenor, err := parsePeriodArg("tenor", args[1])
			if err != nil {
				return err
			}
			value, err := calendar.SettlementDate(app.Calendar, trade, tenor, app.spotLag(cmd), app.Convention, app.endOfMonth(cmd))
			if err != nil {
				return err
			}
			res := dateResult{
				Calendar:   calendar.Name(app.Calendar),
				Input:      formatDate(trade),
				Period:     tenor.String(),
				Convention: app.Convention.String(),
				Date:       formatDate(value),
			}
			return app.output(cmd).Emit(res, func(w io.Writer) { fmt.Fprintln(w, res.Date) })
		},
	}
	cmd.Flags().Int("spot-lag", 0, "business days from trade to spot (default from config)")
	cmd.Flags().Bool("eom", false, "end of month rule for month and year tenors")
	return cmd
}

type swapDatesResult struct {
	Calendar  string `json:"calendar" yaml:"calendar"`
	Trade     string `json:"trade" yaml:"trade"`
	Spot      string `json:"spot" yaml:"spot"`
	Effective string `json:"effective" yaml:"effective"`
	Maturity  string `json:"maturity" yaml:"maturity"`
	Preset    string `json:"preset,omitempty" yaml:"preset,omitempty"`
	Payment   string `json:"payment,omitempty" yaml:"payment,omitempty"`
}

func newSwapDatesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "swapdates TRADE TENOR",
		Short: "Spot, effective and maturity dates of a (forward starting) swap",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			trade, err := parseDateArg("trade date", args[0])
			if err != nil {
				return err
			}
			tenor, err := parsePeriodArg("tenor", args[1])
			if err != nil {
				return err
			}
			fwdFlag, _ := cmd.Flags().GetString("forward")
			forward, err := parsePeriodArg("forward", fwdFlag)
			if err != nil {
				return err
			}
			res := swapDatesResult{Trade: formatDate(trade)}
			var spot, effective, maturity time.Time
			if name, _ := cmd.Flags().GetString("preset"); name != "" {
				preset, err := market.SwapPresetByName(strings.ToUpper(name))
				if err != nil {
					return err
				}
				if spot, effective, maturity, err = preset.Dates(trade, forward, tenor); err != nil {
					return err
				}
				payment, err := preset.FixedLeg.PaymentDate(maturity)
				if err != nil {
					return err
				}
				res.Preset = preset.Name
				res.Calendar = calendar.Name(preset.FixedLeg.Calendar)
				res.Payment = formatDate(payment)
			} else {
				if spot, effective, maturity, err = calendar.SpotEffectiveMaturity(app.Calendar, trade, app.spotLag(cmd), forward, tenor); err != nil {
					return err
				}
				res.Calendar = calendar.Name(app.Calendar)
			}
			res.Spot = formatDate(spot)
			res.Effective = formatDate(effective)
			res.Maturity = formatDate(maturity)
			return app.output(cmd).Emit(res, func(w io.Writer) {
				fmt.Fprintf(w, "spot      %s\neffective %s\nmaturity  %s\n", res.Spot, res.Effective, res.Maturity)
				if res.Payment != "" {
					fmt.Fprintf(w, "payment   %s\n", res.Payment)
				}
			})
		},
	}
	cmd.Flags().String("forward", "0D", "forward start period from spot")
	cmd.Flags().String("preset", "", "market swap preset (EUR-IRS-3M, EUR-IRS-6M, EUR-OIS, USD-OIS, GBP-OIS) overriding calendar and spot lag")
	cmd.Flags().Int("spot-lag", 0, "business days from trade to spot (default from config)")
	return cmd
}

type countResult struct {
	Calendar     string `json:"calendar" yaml:"calendar"`
	From         string `json:"from" yaml:"from"`
	To           string `json:"to" yaml:"to"`
	BusinessDays int    `json:"business_days" yaml:"business_days"`
}

func newBizDaysCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bizdays FROM TO",
		Short: "Count business days between FROM and TO",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := parseDateArg("from", args[0])
			if err != nil {
				return err
			}
			to, err := parseDateArg("to", args[1])
			if err != nil {
				return err
			}
			if err := app.checkYears(from, to); err != nil {
				return err
			}
			first, _ := cmd.Flags().GetBool("include-first")
			last, _ := cmd.Flags().GetBool("include-last")
			res := countResult{
				Calendar:     calendar.Name(app.Calendar),
				From:         formatDate(from),
				To:           formatDate(to),
				BusinessDays: calendar.BusinessDaysBetween(app.Calendar, from, to, first, last),
			}
			return app.output(cmd).Emit(res, func(w io.Writer) { fmt.Fprintln(w, res.BusinessDays) })
		},
	}
	cmd.Flags().Bool("include-first", true, "count the earlier date")
	cmd.Flags().Bool("include-last", false, "count the later date")
	return cmd
}

type holidaysResult struct {
	Calendar string   `json:"calendar" yaml:"calendar"`
	From     string   `json:"from" yaml:"from"`
	To       string   `json:"to" yaml:"to"`
	Holidays []string `json:"holidays" yaml:"holidays"`
}

func newHolidaysCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "holidays FROM TO",
		Short: "List holidays between FROM and TO inclusive",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := parseDateArg("from", args[0])
			if err != nil {
				return err
			}
			to, err := parseDateArg("to", args[1])
			if err != nil {
				return err
			}
			if err := app.checkYears(from, to); err != nil {
				return err
			}
			weekends, _ := cmd.Flags().GetBool("weekends")
			days := calendar.HolidayList(app.Calendar, from, to, weekends)
			res := holidaysResult{
				Calendar: calendar.Name(app.Calendar),
				From:     formatDate(from),
				To:       formatDate(to),
				Holidays: formatDates(days),
			}
			return app.output(cmd).Emit(res, func(w io.Writer) {
				for _, d := range days {
					fmt.Fprintf(w, "%s %s\n", formatDate(d), d.Weekday().String()[:3])
				}
			})
		},
	}
	cmd.Flags().Bool("weekends", false, "include weekend days")
	return cmd
}
