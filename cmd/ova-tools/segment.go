package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/example/go-ova-encode/internal/segment"
	"github.com/spf13/cobra"
)

func newSegmentCmd() *cobra.Command {
	var featuresOnly bool

	cmd := &cobra.Command{
		Use:   "segment <input_txt> [output|-]",
		Short: "Split a denoised captcha pixel dump into symbols and print their features",
		Long: `Reads "group x y" pixel lines, merges the dots of i and j into their stems and
prints a report with the drawing, the CODED FEATURES line and the reading order
of every symbol. The report goes to the output file, or stdout when it is
omitted or "-". With --features-only only the CODED FEATURES lines are printed,
ready to pipe into "decode".`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			output := "-"
			if len(args) == 2 {
				output = args[1]
			}

			return runSegment(args[0], output, cmd.OutOrStdout(), featuresOnly)
		},
	}

	cmd.Flags().BoolVar(&featuresOnly, "features-only", false, "Print only the CODED FEATURES line of each symbol")

	return cmd
}

func runSegment(input, output string, stdout io.Writer, featuresOnly bool) (err error) {
	in, err := os.Open(input)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer in.Close()

	img, err := segment.Parse(in)
	if err != nil {
		return fmt.Errorf("%s: %w", input, err)
	}

	res := segment.Segment(img)
	slog.Info("segmented captcha",
		"input", input,
		"groups", img.Groups(),
		"symbols", len(res.Symbols),
	)

	w := stdout
	if output != "-" {
		out, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer func() {
			if cerr := out.Close(); cerr != nil {
				err = errors.Join(err, fmt.Errorf("close output: %w", cerr))
			}
		}()
		w = out
	}

	if featuresOnly {
		return segment.WriteFeatures(w, res)
	}
	return segment.WriteReport(w, res)
}
