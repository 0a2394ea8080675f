package cli

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/meenmo/fincal/calendar"
	"github.com/meenmo/fincal/market"
)

type indexInfo struct {
	Index      string `json:"index" yaml:"index"`
	Currency   string `json:"currency" yaml:"currency"`
	Tenor      string `json:"tenor" yaml:"tenor"`
	FixingLag  int    `json:"fixing_lag" yaml:"fixing_lag"`
	Calendar   string `json:"calendar" yaml:"calendar"`
	Convention string `json:"convention" yaml:"convention"`
	EndOfMonth bool   `json:"end_of_month" yaml:"end_of_month"`
	DayCount   string `json:"day_count" yaml:"day_count"`
}

type indexPeriodResult struct {
	Index        string          `json:"index" yaml:"index"`
	Fixing       string          `json:"fixing" yaml:"fixing"`
	Value        string          `json:"value" yaml:"value"`
	Maturity     string          `json:"maturity" yaml:"maturity"`
	DayCount     string          `json:"day_count" yaml:"day_count"`
	YearFraction decimal.Decimal `json:"year_fraction" yaml:"year_fraction"`
}

func newIndexCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "index",
		Short: "Reference rate fixing conventions",
	}
	cmd.AddCommand(
		newIndexListCmd(app),
		newIndexPeriodCmd(app),
	)
	return cmd
}

func describeIndex(c market.IndexConvention) indexInfo {
	return indexInfo{
		Index:      string(c.Index),
		Currency:   c.Currency,
		Tenor:      c.Tenor.String(),
		FixingLag:  c.FixingLag,
		Calendar:   calendar.Name(c.Calendar),
		Convention: c.Convention.String(),
		EndOfMonth: c.EndOfMonth,
		DayCount:   c.DayCounter.Name(),
	}
}

func newIndexListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the registered reference indices",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var results []indexInfo
			for _, name := range market.Indices() {
				c, err := market.IndexByName(string(name))
				if err != nil {
					return err
				}
				results = append(results, describeIndex(c))
			}
			return app.output(cmd).Emit(results, func(w io.Writer) {
				for _, r := range results {
					fmt.Fprintf(w, "%-10s %s %-3s lag %d %-8s %-18s %s\n",
						r.Index, r.Currency, r.Tenor, r.FixingLag, r.Calendar, r.Convention, r.DayCount)
				}
			})
		},
	}
}

func newIndexPeriodCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "period NAME FIXING",
		Short: "Value date, maturity and accrual of a fixing",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := market.IndexByName(args[0])
			if err != nil {
				return err
			}
			fixing, err := parseDateArg("fixing date", args[1])
			if err != nil {
				return err
			}
			if !c.IsValidFixingDate(fixing) {
				return fmt.Errorf("%s is not a %s fixing date", formatDate(fixing), c.Index)
			}
			value, maturity, accrual, err := c.Period(fixing)
			if err != nil {
				return err
			}
			app.Logger.Debug().
				Str("index", string(c.Index)).
				Time("fixing", fixing).
				Msg("resolved fixing period")

			res := indexPeriodResult{
				Index:        string(c.Index),
				Fixing:       formatDate(fixing),
				Value:        formatDate(value),
				Maturity:     formatDate(maturity),
				DayCount:     c.DayCounter.Name(),
				YearFraction: app.round(accrual),
			}
			return app.output(cmd).Emit(res, func(w io.Writer) {
				fmt.Fprintf(w, "value     %s\nmaturity  %s\naccrual   %s\n",
					res.Value, res.Maturity, res.YearFraction.StringFixed(app.Config.Precision))
			})
		},
	}
}
