// Package report prints meter levels as an aligned table.
package report

import (
	"fmt"
	"io"
	"math"
	"strings"
	"text/tabwriter"

	"github.com/cwbudde/algo-rms/dsp/core"
	"github.com/cwbudde/algo-rms/internal/config"
	"github.com/cwbudde/algo-rms/measure/rms"
)

// Reporter prints one aligned row of levels per call.
type Reporter struct {
	tw            *tabwriter.Writer
	units         config.Units
	headerWritten bool
}

// New returns a Reporter writing to w in the given units.
func New(w io.Writer, units config.Units) *Reporter {
	return &Reporter{
		tw:    tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight),
		units: units,
	}
}

func (r *Reporter) header(channels int) error {
	var b strings.Builder
	b.WriteString("Time [s]\tAvg")
	for ch := range channels {
		fmt.Fprintf(&b, "\tCh%d", ch+1)
	}
	b.WriteString("\t\n")

	_, err := io.WriteString(r.tw, b.String())
	return err
}

// Engine prints the last frame of e.
func (r *Reporter) Engine(seconds float64, e *rms.Engine) error {
	return r.Row(seconds, e.AvgAtLastFrame(), e.PerChannelAtLastFrame())
}

// Row prints the channel average and per-channel levels, all linear RMS.
// The header is written before the first row.
func (r *Reporter) Row(seconds, avg float64, levels []float64) error {
	if !r.headerWritten {
		if err := r.header(len(levels)); err != nil {
			return fmt.Errorf("failed to write output header: %w", err)
		}
		r.headerWritten = true
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%.3f\t%s", seconds, r.format(avg))
	for _, v := range levels {
		b.WriteString("\t")
		b.WriteString(r.format(v))
	}
	b.WriteString("\t\n")

	if _, err := io.WriteString(r.tw, b.String()); err != nil {
		return fmt.Errorf("failed to write output row: %w", err)
	}

	return r.tw.Flush()
}

func (r *Reporter) format(level float64) string {
	if r.units == config.UnitsLinear {
		return fmt.Sprintf("%.5f", level)
	}

	db := core.LinearToDB(level)
	if math.IsInf(db, -1) {
		return "-inf"
	}

	return fmt.Sprintf("%.1f", db)
}
