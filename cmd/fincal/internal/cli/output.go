package cli

import (
	"encoding/json"
	"io"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/meenmo/fincal/config"
	"github.com/meenmo/fincal/utils"
)

// Output writes command results as text, JSON or YAML.
type Output struct {
	writer io.Writer
	format string
}

// NewOutput creates a new Output instance.
func NewOutput(w io.Writer, format string) *Output {
	return &Output{writer: w, format: format}
}

// Emit writes data in the structured formats and calls text otherwise.
func (o *Output) Emit(data any, text func(w io.Writer)) error {
	switch o.format {
	case config.FormatJSON:
		encoder := json.NewEncoder(o.writer)
		encoder.SetIndent("", "  ")
		return encoder.Encode(data)
	case config.FormatYAML:
		encoder := yaml.NewEncoder(o.writer)
		encoder.SetIndent(2)
		if err := encoder.Encode(data); err != nil {
			return err
		}
		return encoder.Close()
	default:
		text(o.writer)
		return nil
	}
}

func formatDate(t time.Time) string {
	return t.Format(utils.DateLayout)
}

func formatDates(ts []time.Time) []string {
	out := make([]string, len(ts))
	for i, t := range ts {
		out[i] = formatDate(t)
	}
	return out
}
