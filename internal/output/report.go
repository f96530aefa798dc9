package output

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"
)

// StatisticsInfo describes one finished build step. It lets the output
// package render build results without importing the build package.
type StatisticsInfo interface {
	GetName() string
	GetFileName() string
	GetDuration() time.Duration
	GetSize() int64
}

// reportRow is the serialized form of a build step.
type reportRow struct {
	Name       string `json:"name" yaml:"name"`
	File       string `json:"file" yaml:"file"`
	Duration   string `json:"duration" yaml:"duration"`
	DurationMS int64  `json:"durationMs" yaml:"durationMs"`
	Size       int64  `json:"size" yaml:"size"`
}

// ReportOptions controls build report output.
type ReportOptions struct {
	// Format is the output format.
	Format Format
	// Writer is the output destination.
	Writer io.Writer
}

// WriteReport writes the statistics of every build step.
func WriteReport(stats []StatisticsInfo, opts ReportOptions) error {
	switch opts.Format {
	case FormatJSON:
		enc := json.NewEncoder(opts.Writer)
		enc.SetIndent("", "  ")
		return enc.Encode(reportRows(stats))
	case FormatYAML:
		enc := yaml.NewEncoder(opts.Writer)
		enc.SetIndent(2)
		if err := enc.Encode(reportRows(stats)); err != nil {
			return err
		}
		return enc.Close()
	case FormatTable, "":
		_, err := fmt.Fprintln(opts.Writer, RenderReportTable(stats))
		return err
	}
	return fmt.Errorf("unsupported report format %q", opts.Format)
}

// RenderReportTable renders build statistics as a table.
func RenderReportTable(stats []StatisticsInfo) string {
	t := NewTable("BUILD", "FILE", "TIME", "SIZE")
	for _, s := range stats {
		t.Row(s.GetName(), s.GetFileName(), FormatDuration(s.GetDuration()), FormatBytes(s.GetSize()))
	}
	return t.String()
}

// FormatDuration rounds a duration for display.
func FormatDuration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return d.String()
	case d < time.Second:
		return d.Round(time.Millisecond).String()
	default:
		return d.Round(10 * time.Millisecond).String()
	}
}

func reportRows(stats []StatisticsInfo) []reportRow {
	rows := make([]reportRow, 0, len(stats))
	for _, s := range stats {
		rows = append(rows, reportRow{
			Name:       s.GetName(),
			File:       s.GetFileName(),
			Duration:   FormatDuration(s.GetDuration()),
			DurationMS: s.GetDuration().Milliseconds(),
			Size:       s.GetSize(),
		})
	}
	return rows
}
