// Package classify turns feature lines into label characters by scoring each
// line with a trained network and decoding the highest scoring class.
package classify

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/example/go-ova-encode/internal/ova"
)

// MinFeatures is the number of values a line must exceed to be classified.
// Shorter lines (blank lines, headers, READING ORDER trailers) are skipped.
const MinFeatures = 3

// Scorer produces one score per class for a feature vector.
type Scorer interface {
	Score(ctx context.Context, features []float32) ([]float32, error)
}

// Identity treats each input line as an already computed output vector.
type Identity struct{}

// Score returns features unchanged.
func (Identity) Score(_ context.Context, features []float32) ([]float32, error) {
	return append([]float32(nil), features...), nil
}

// Classify scores one feature vector and decodes the winning label.
func Classify(ctx context.Context, s Scorer, features []float64) (rune, error) {
	in := make([]float32, len(features))
	for i, v := range features {
		in[i] = float32(v)
	}

	scores, err := s.Score(ctx, in)
	if err != nil {
		return 0, err
	}

	out := make([]float64, len(scores))
	for i, v := range scores {
		out[i] = float64(v)
	}

	return ova.Decode(out)
}

// Stream classifies each qualifying line of r and writes the labels to w
// without separators. It returns the number of labels written.
func Stream(ctx context.Context, s Scorer, r io.Reader, w io.Writer) (int, error) {
	br := bufio.NewReader(r)
	bw := bufio.NewWriter(w)

	written := 0
	for lineNo := 1; ; lineNo++ {
		if err := ctx.Err(); err != nil {
			return written, err
		}

		line, readErr := br.ReadString('\n')
		if readErr != nil && readErr != io.EOF {
			return written, fmt.Errorf("read line %d: %w", lineNo, readErr)
		}

		if line != "" {
			values, err := ova.ParseValues(line)
			if err != nil {
				return written, fmt.Errorf("line %d: %w", lineNo, err)
			}

			if len(values) > MinFeatures {
				label, err := Classify(ctx, s, values)
				if err != nil {
					return written, fmt.Errorf("line %d: %w", lineNo, err)
				}
				if _, err := bw.WriteRune(label); err != nil {
					return written, fmt.Errorf("write label: %w", err)
				}
				written++
			}
		}

		if readErr == io.EOF {
			break
		}
	}

	if err := bw.Flush(); err != nil {
		return written, fmt.Errorf("flush output: %w", err)
	}

	return written, nil
}
