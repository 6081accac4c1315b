// Package transform rewrites two-line-record training files into their
// one-vs-all encoded form.
//
// Odd lines (1-indexed) are copied verbatim. Even lines hold a class label in
// their first character and are replaced by the encoded vector for it.
package transform

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"unicode/utf8"

	"github.com/example/go-ova-encode/internal/ova"
)

// Stats summarizes one transformation run.
type Stats struct {
	// Lines is the number of input lines read.
	Lines int
	// Records is the number of label lines encoded.
	Records int
	// OutOfRange counts labels that encoded to an all -1 vector.
	OutOfRange int
	// Labels counts label characters by first rune.
	Labels map[rune]int
}

// File transforms the file at inputPath and writes the result to outputPath,
// creating or truncating it. A failed run may leave a partial output file.
func File(inputPath, outputPath string) (stats Stats, err error) {
	in, err := os.Open(inputPath)
	if err != nil {
		return Stats{}, fmt.Errorf("open input: %w", err)
	}
	defer in.Close()

	out, err := os.Create(outputPath)
	if err != nil {
		return Stats{}, fmt.Errorf("create output: %w", err)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("close output: %w", cerr))
		}
	}()

	stats, err = Stream(in, out)
	if err != nil {
		return stats, err
	}

	slog.Debug("transform complete",
		"input", inputPath,
		"output", outputPath,
		"lines", stats.Lines,
		"records", stats.Records,
		"out_of_range", stats.OutOfRange,
	)

	return stats, nil
}

// Stream applies the transformation from r to w. Lines may be of any length;
// a final line without a terminator is handled like any other line.
func Stream(r io.Reader, w io.Writer) (Stats, error) {
	br := bufio.NewReader(r)
	bw := bufio.NewWriter(w)
	stats := Stats{Labels: make(map[rune]int)}

	var buf []byte
	for {
		line, readErr := br.ReadString('\n')
		if readErr != nil && readErr != io.EOF {
			return stats, fmt.Errorf("read line %d: %w", stats.Lines+1, readErr)
		}
		if line == "" {
			break
		}

		stats.Lines++
		if stats.Lines%2 == 1 {
			if _, err := bw.WriteString(line); err != nil {
				return stats, fmt.Errorf("write line %d: %w", stats.Lines, err)
			}
		} else {
			label, _ := utf8.DecodeRuneInString(line)
			stats.Records++
			stats.Labels[label]++
			if !ova.InRange(label) {
				stats.OutOfRange++
				slog.Debug("label outside alphabet", "line", stats.Lines, "label", ova.Describe(label))
			}

			buf = ova.AppendLabel(buf[:0], label)
			if _, err := bw.Write(buf); err != nil {
				return stats, fmt.Errorf("write line %d: %w", stats.Lines, err)
			}
		}

		if readErr == io.EOF {
			break
		}
	}

	if err := bw.Flush(); err != nil {
		return stats, fmt.Errorf("flush output: %w", err)
	}

	return stats, nil
}
