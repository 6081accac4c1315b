package main

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/example/go-ova-encode/internal/ova"
	"github.com/example/go-ova-encode/internal/transform"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func newStatsCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "stats <input_filename>",
		Short: "Print the label histogram of a training file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			stats, err := scanFile(args[0])
			if err != nil {
				return err
			}

			return renderStats(cmd.OutOrStdout(), stats, format)
		},
	}

	cmd.Flags().StringVar(&format, "format", "table", "Output format (table|csv|markdown)")

	return cmd
}

// scanFile runs the transformation without keeping its output.
func scanFile(path string) (transform.Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		return transform.Stats{}, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	return transform.Stream(f, io.Discard)
}

func renderStats(w io.Writer, stats transform.Stats, format string) error {
	render, err := tableRenderer(format)
	if err != nil {
		return err
	}

	labels := make([]rune, 0, len(stats.Labels))
	for r := range stats.Labels {
		labels = append(labels, r)
	}
	slices.Sort(labels)

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle("Labels")
	t.AppendHeader(table.Row{"Label", "Class", "Count"})
	for _, r := range labels {
		class := "-"
		if ova.InRange(r) {
			class = fmt.Sprintf("%d", ova.Index(r))
		}
		t.AppendRow(table.Row{ova.Describe(r), class, stats.Labels[r]})
	}
	render(t)

	t = table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle("Summary")
	t.AppendRows([]table.Row{
		{"Lines", stats.Lines},
		{"Records", stats.Records},
		{"Distinct labels", len(labels)},
		{"Out of range", stats.OutOfRange},
		{"Classes", ova.Classes},
	})
	render(t)

	return nil
}

func tableRenderer(format string) (func(table.Writer) string, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "table":
		return table.Writer.Render, nil
	case "csv":
		return table.Writer.RenderCSV, nil
	case "markdown", "md":
		return table.Writer.RenderMarkdown, nil
	default:
		return nil, fmt.Errorf("invalid format %q (expected table|csv|markdown)", format)
	}
}
