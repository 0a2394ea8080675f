package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/meenmo/fincal/imm"
	"github.com/meenmo/fincal/utils"
)

type immResult struct {
	Code string `json:"code" yaml:"code"`
	Date string `json:"date" yaml:"date"`
}

func newIMMCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "imm",
		Short: "IMM futures dates and contract codes",
	}
	cmd.AddCommand(
		newIMMDateCmd(app),
		newIMMCodeCmd(app),
		newIMMNextCmd(app),
	)
	return cmd
}

func newIMMDateCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "date CODE",
		Short: "Expiry date of a contract code such as Z3",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := referenceDate(cmd)
			if err != nil {
				return err
			}
			d, err := imm.Date(args[0], ref)
			if err != nil {
				return err
			}
			res := immResult{Code: strings.ToUpper(args[0]), Date: formatDate(d)}
			return app.output(cmd).Emit(res, func(w io.Writer) { fmt.Fprintln(w, res.Date) })
		},
	}
	cmd.Flags().String("ref", "", "reference date resolving the decade (default today)")
	return cmd
}

func newIMMCodeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "code DATE",
		Short: "Contract code of an IMM date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := parseDateArg("date", args[0])
			if err != nil {
				return err
			}
			code, ok := imm.Code(d)
			if !ok {
				return fmt.Errorf("%s is not an IMM date", formatDate(d))
			}
			res := immResult{Code: code, Date: formatDate(d)}
			return app.output(cmd).Emit(res, func(w io.Writer) { fmt.Fprintln(w, res.Code) })
		},
	}
}

func newIMMNextCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "next [DATE]",
		Short: "Next IMM dates strictly after DATE (default today)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			from := today()
			if len(args) == 1 {
				var err error
				if from, err = parseDateArg("date", args[0]); err != nil {
					return err
				}
			}
			count, _ := cmd.Flags().GetInt("count")
			if count < 1 {
				return fmt.Errorf("count must be positive, got %d", count)
			}
			allMonths, _ := cmd.Flags().GetBool("all-months")

			results := make([]immResult, 0, count)
			d := from
			for i := 0; i < count; i++ {
				d = imm.NextDate(d, !allMonths)
				code, _ := imm.Code(d)
				results = append(results, immResult{Code: code, Date: formatDate(d)})
			}
			return app.output(cmd).Emit(results, func(w io.Writer) {
				for _, r := range results {
					fmt.Fprintf(w, "%s %s\n", r.Code, r.Date)
				}
			})
		},
	}
	cmd.Flags().IntP("count", "n", 1, "number of dates")
	cmd.Flags().Bool("all-months", false, "include serial (non-quarterly) months")
	return cmd
}

func referenceDate(cmd *cobra.Command) (time.Time, error) {
	s, _ := cmd.Flags().GetString("ref")
	if s == "" {
		return today(), nil
	}
	return parseDateArg("reference date", s)
}

func today() time.Time {
	return utils.Normalize(time.Now())
}
