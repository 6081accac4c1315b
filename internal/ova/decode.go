package ova

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrEmptyVector is returned when there are no values to decode.
var ErrEmptyVector = errors.New("ova: empty output vector")

// Decode maps a classifier output vector back to its label: the character of
// the highest scoring class. Ties resolve to the lowest index.
func Decode(values []float64) (rune, error) {
	if len(values) == 0 {
		return 0, ErrEmptyVector
	}

	best := 0
	for i, v := range values[1:] {
		if v > values[best] {
			best = i + 1
		}
	}

	return Label(best), nil
}

// ParseValues reads the numeric values of one feature or output line. Tokens
// are separated by single spaces and only tokens containing a digit are kept,
// so words such as a "CODED FEATURES" prefix, stray separators and trailing
// newlines are ignored.
func ParseValues(line string) ([]float64, error) {
	var values []float64
	for _, tok := range strings.Split(line, " ") {
		if !strings.ContainsAny(tok, "0123456789") {
			continue
		}

		v, err := strconv.ParseFloat(strings.TrimSpace(tok), 64)
		if err != nil {
			return nil, fmt.Errorf("parse value %q: %w", tok, err)
		}
		values = append(values, v)
	}

	return values, nil
}
