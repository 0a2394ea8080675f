package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/meenmo/fincal/calendar"
	"github.com/meenmo/fincal/config"
	"github.com/meenmo/fincal/daycount"
)

type yearFracInput struct {
	TaskID   string `json:"task_id,omitempty"`
	Start    string `json:"start"`
	End      string `json:"end"`
	DayCount string `json:"day_count,omitempty"`
	Calendar string `json:"calendar,omitempty"`
}

type yearFracOutput struct {
	TaskID       string          `json:"task_id,omitempty" yaml:"task_id,omitempty"`
	Start        string          `json:"start,omitempty" yaml:"start,omitempty"`
	End          string          `json:"end,omitempty" yaml:"end,omitempty"`
	DayCount     string          `json:"day_count,omitempty" yaml:"day_count,omitempty"`
	Days         int             `json:"days" yaml:"days"`
	YearFraction decimal.Decimal `json:"year_fraction" yaml:"year_fraction"`
	Error        string          `json:"error,omitempty" yaml:"error,omitempty"`
}

func newYearFracCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "yearfrac [START END]",
		Short: "Year fraction between two dates, or a JSON batch with --input",
		Long: `Compute the accrual year fraction between START and END under the day
count convention.

With --input the command reads a JSON object or array of objects
{"task_id", "start", "end", "day_count", "calendar"} from a file ("-" for
stdin) and writes one result per object. Missing day_count and calendar
fall back to the defaults. Items that fail carry an "error" field and the
command exits with status 1.`,
		Args: cobra.RangeArgs(0, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			inputPath, _ := cmd.Flags().GetString("input")
			if inputPath != "" {
				return app.yearFracBatch(cmd, inputPath)
			}
			if len(args) != 2 {
				return fmt.Errorf("yearfrac needs START and END, or --input")
			}
			out, err := app.yearFrac(yearFracInput{Start: args[0], End: args[1]})
			if err != nil {
				return err
			}
			return app.output(cmd).Emit(out, func(w io.Writer) {
				fmt.Fprintln(w, out.YearFraction.StringFixed(app.Config.Precision))
			})
		},
	}
	cmd.Flags().StringP("input", "i", "", `JSON input path ("-" reads stdin)`)
	return cmd
}

func (a *App) yearFrac(in yearFracInput) (*yearFracOutput, error) {
	start, err := parseDateArg("start", in.Start)
	if err != nil {
		return nil, err
	}
	end, err := parseDateArg("end", in.End)
	if err != nil {
		return nil, err
	}

	cal := a.Calendar
	if strings.TrimSpace(in.Calendar) != "" {
		if cal, err = calendar.Parse(in.Calendar); err != nil {
			return nil, err
		}
	}
	dc := a.DayCounter
	if strings.TrimSpace(in.DayCount) != "" {
		if dc, err = daycount.ParseWithCalendar(in.DayCount, cal); err != nil {
			return nil, err
		}
	} else if _, ok := dc.(daycount.Business252); ok && in.Calendar != "" {
		dc = daycount.Business252{Calendar: cal}
	}

	return &yearFracOutput{
		TaskID:       in.TaskID,
		Start:        in.Start,
		End:          in.End,
		DayCount:     dc.Name(),
		Days:         dc.DayCount(start, end),
		YearFraction: a.round(dc.YearFraction(start, end)),
	}, nil
}

func (a *App) yearFracBatch(cmd *cobra.Command, path string) error {
	raw, err := readInput(path, cmd.InOrStdin())
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	inputs, isArray, err := parseInputs(raw)
	if err != nil {
		return fmt.Errorf("parse JSON: %w", err)
	}

	hadError := false
	outputs := make([]yearFracOutput, 0, len(inputs))
	for _, in := range inputs {
		out, err := a.yearFrac(in)
		if err != nil {
			hadError = true
			a.Logger.Warn().Str("task_id", in.TaskID).Err(err).Msg("year fraction failed")
			outputs = append(outputs, yearFracOutput{TaskID: in.TaskID, Error: err.Error()})
			continue
		}
		outputs = append(outputs, *out)
	}
	a.Logger.Info().Int("items", len(inputs)).Bool("had_error", hadError).Msg("batch done")

	// Batches are structured data; text mode falls back to JSON.
	format := a.Config.Output
	if format != config.FormatYAML {
		format = config.FormatJSON
	}
	o := NewOutput(cmd.OutOrStdout(), format)

	var data any = outputs
	if !isArray {
		data = outputs[0]
	}
	if err := o.Emit(data, nil); err != nil {
		return err
	}
	if hadError {
		return ErrPartialFailure
	}
	return nil
}

func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path != "-" {
		return os.ReadFile(path)
	}
	return io.ReadAll(stdin)
}

func parseInputs(raw []byte) ([]yearFracInput, bool, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, false, fmt.Errorf("empty input")
	}
	if trimmed[0] == '[' {
		var inputs []yearFracInput
		if err := json.Unmarshal(trimmed, &inputs); err != nil {
			return nil, true, err
		}
		if len(inputs) == 0 {
			return nil, true, fmt.Errorf("empty input array")
		}
		return inputs, true, nil
	}
	var input yearFracInput
	if err := json.Unmarshal(trimmed, &input); err != nil {
		return nil, false, err
	}
	return []yearFracInput{input}, false, nil
}
