// Package ova implements one-vs-all label encoding for training files.
//
// A label is a single character from the alphabet '0'..'z'. Its class index is
// its code point minus '0', and its encoded form is a vector of Classes values
// where the class position holds 1 and every other position holds -1.
package ova

import "strconv"

// Alphabet bounds. Classes is Last-First (74), so Last itself has no position.
const (
	First   = '0'
	Last    = 'z'
	Classes = Last - First
)

const (
	positive = "1 "
	negative = "-1 "
)

// Index returns the class index of r. The result may be outside [0, Classes).
func Index(r rune) int {
	return int(r) - int(First)
}

// InRange reports whether r marks a position in the encoded vector.
func InRange(r rune) bool {
	idx := Index(r)
	return idx >= 0 && idx < Classes
}

// EncodeLabel returns the one-vs-all line for r, including the trailing space
// and newline. Labels outside the alphabet encode to an all -1 vector.
func EncodeLabel(r rune) string {
	return string(AppendLabel(make([]byte, 0, EncodedLen(r)), r))
}

// AppendLabel appends the encoded line for r to dst.
func AppendLabel(dst []byte, r rune) []byte {
	idx := Index(r)
	for i := 0; i < Classes; i++ {
		if i == idx {
			dst = append(dst, positive...)
		} else {
			dst = append(dst, negative...)
		}
	}

	return append(dst, '\n')
}

// EncodedLen returns the byte length of EncodeLabel(r).
func EncodedLen(r rune) int {
	n := Classes*len(negative) + 1
	if InRange(r) {
		n -= len(negative) - len(positive)
	}

	return n
}

// Label returns the character for a class index.
func Label(idx int) rune {
	return rune(int(First) + idx)
}

// Values returns the encoded vector for r as integers.
func Values(r rune) []int {
	out := make([]int, Classes)
	idx := Index(r)
	for i := range out {
		if i == idx {
			out[i] = 1
		} else {
			out[i] = -1
		}
	}

	return out
}

// Describe returns a short printable form of r for logs and reports.
func Describe(r rune) string {
	if strconv.IsPrint(r) && r != ' ' {
		return string(r)
	}

	return strconv.QuoteRune(r)
}
