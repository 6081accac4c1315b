package segment

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/example/go-ova-encode/internal/ova"
)

// pixelText renders art as "group x y" lines with its top-left corner at
// (x0, y0). Each digit is a group ID, spaces are background.
func pixelText(x0, y0 int, art ...string) string {
	var b strings.Builder
	for dy, row := range art {
		for dx, c := range row {
			if c == ' ' {
				continue
			}
			fmt.Fprintf(&b, "%d %d %d\n", c-'0', x0+dx, y0+dy)
		}
	}
	return b.String()
}

func mustParse(t *testing.T, text string) *Image {
	t.Helper()
	im, err := Parse(strings.NewReader(text))
	if err != nil {
		t.Fatalf("Parse error = %v", err)
	}
	return im
}

var ring = []string{
	"11111",
	"1   1",
	"1   1",
	"1   1",
	"11111",
}

// --- Parse ---

func TestParse_CompactsGroupIDs(t *testing.T) {
	im := mustParse(t, "17 3 4\n42 5 6\n\n17 3 5")

	if im.Groups() != 2 {
		t.Fatalf("Groups() = %d; want 2", im.Groups())
	}

	for _, tc := range []struct {
		x, y, want int
	}{
		{3, 4, 1},
		{5, 6, 2},
		{3, 5, 1}, // last line has no newline
		{0, 0, 0},
		{-1, 0, 0},
		{ImageWidth, 0, 0},
	} {
		if got := im.At(tc.x, tc.y); got != tc.want {
			t.Errorf("At(%d, %d) = %d; want %d", tc.x, tc.y, got, tc.want)
		}
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"two fields", "1 2\n"},
		{"not a number", "1 x 2\n"},
		{"negative", "1 -2 2\n"},
		{"x outside", "1 150 2\n"},
		{"y outside", "1 2 60\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse(strings.NewReader(tt.input)); err == nil {
				t.Errorf("Parse(%q) = nil error; want error", tt.input)
			}
		})
	}
}

func TestParse_OutOfBoundsIsSentinel(t *testing.T) {
	_, err := Parse(strings.NewReader("1 0 0\n1 200 0\n"))
	if !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("Parse error = %v; want ErrOutOfBounds", err)
	}
	if err == nil || !strings.Contains(err.Error(), "line 2") {
		t.Errorf("Parse error = %v; want it to name line 2", err)
	}
}

// --- Segment ---

func TestSegment_RingFeatures(t *testing.T) {
	res := Segment(mustParse(t, pixelText(20, 10, ring...)))

	if len(res.Symbols) != 1 {
		t.Fatalf("got %d symbols; want 1", len(res.Symbols))
	}

	sym := res.Symbols[0]
	if sym.Bounds != (Bounds{XMin: 20, YMin: 10, XMax: 24, YMax: 14}) {
		t.Errorf("Bounds = %+v", sym.Bounds)
	}

	want := "CODED FEATURES -0.636 1.0000 1.000 -0.571 -0.571 -0.625 -0.625 " +
		"2 2 0 0 2 " +
		"1.000 0.000 0.000 0.000 0.000 0.000 -0.333 " +
		"-1 -1 1 " +
		"1.000 1.000 1.000 1.000 -1.000 -1.000 1.000 -1.000 -1.000 "
	if got := sym.Features.String(); got != want {
		t.Errorf("Features =\n%q\nwant\n%q", got, want)
	}
}

func TestSegment_HoleDetection(t *testing.T) {
	tests := []struct {
		name string
		art  []string
		want int
	}{
		{"closed ring", ring, 1},
		{"open on the right", []string{
			"11111",
			"1    ",
			"1    ",
			"1    ",
			"11111",
		}, -1},
		{"diagonal gap leaks", []string{
			"1111 ",
			"1   1",
			"1   1",
			"1   1",
			"11111",
		}, -1},
		{"solid block", []string{
			"111",
			"111",
			"111",
		}, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Segment(mustParse(t, pixelText(40, 20, tt.art...)))
			if got := res.Symbols[0].Features.Hole; got != tt.want {
				t.Errorf("Hole = %d; want %d", got, tt.want)
			}
		})
	}
}

func TestSegment_MergesDotIntoStem(t *testing.T) {
	// The dot comes first in the input, so it is group 1.
	text := pixelText(30, 15, "5") + pixelText(30, 18, "7", "7", "7", "7", "7", "7")
	res := Segment(mustParse(t, text))

	if len(res.Symbols) != 1 {
		t.Fatalf("got %d symbols; want 1", len(res.Symbols))
	}

	sym := res.Symbols[0]
	if sym.ID != 1 || sym.Group != 2 {
		t.Errorf("symbol ID/Group = %d/%d; want 1/2", sym.ID, sym.Group)
	}
	if sym.Bounds.YMin != 15 || sym.Bounds.YMax != 23 {
		t.Errorf("Bounds = %+v; want y 15..23", sym.Bounds)
	}
	if sym.Features.Dot != 1 {
		t.Errorf("Dot = %d; want 1", sym.Features.Dot)
	}
	if got := res.Image.At(30, 15); got != 2 {
		t.Errorf("dot pixel group = %d; want 2", got)
	}
}

func TestSegment_KeepsDistantSymbols(t *testing.T) {
	text := pixelText(10, 20, "1", "1", "1") + pixelText(20, 20, "2", "2", "2")
	res := Segment(mustParse(t, text))

	if len(res.Symbols) != 2 {
		t.Fatalf("got %d symbols; want 2", len(res.Symbols))
	}
	for _, sym := range res.Symbols {
		if sym.Features.Dot != -1 {
			t.Errorf("symbol %d: Dot = %d; want -1", sym.ID, sym.Features.Dot)
		}
	}
}

func TestSegment_ReadingOrder(t *testing.T) {
	// Symbol 1 is right of symbol 2.
	text := pixelText(50, 20, "111", "1 1") +
		pixelText(10, 20, "222", "2 2") +
		pixelText(30, 20, "333", "3 3")

	res := Segment(mustParse(t, text))

	want := []int{2, 3, 1}
	if fmt.Sprint(res.Order) != fmt.Sprint(want) {
		t.Errorf("Order = %v; want %v", res.Order, want)
	}
}

func TestSegment_LowSymbol(t *testing.T) {
	res := Segment(mustParse(t, pixelText(10, 40, "1", "1", "1", "1")))
	if got := res.Symbols[0].Features.Low; got != 1 {
		t.Errorf("Low = %d; want 1 for a symbol reaching y 43", got)
	}
}

func TestSegment_DoesNotModifyInput(t *testing.T) {
	im := mustParse(t, pixelText(30, 15, "1")+pixelText(30, 18, "2", "2", "2"))
	Segment(im)

	if got := im.At(30, 15); got != 1 {
		t.Errorf("input pixel group = %d; want 1", got)
	}
}

func TestSegment_DegenerateSymbolFormatsLikeC(t *testing.T) {
	// A one-column bar has zero width.
	res := Segment(mustParse(t, pixelText(10, 5, "1", "1", "1", "1", "1")))
	fields := strings.Fields(res.Symbols[0].Features.String())

	if len(fields) != 2+FeatureCount {
		t.Fatalf("got %d fields; want %d", len(fields), 2+FeatureCount)
	}
	if fields[3] != "inf" {
		t.Errorf("relative length = %q; want %q", fields[3], "inf")
	}
	if fields[4] != "-nan" {
		t.Errorf("broadest segment = %q; want %q", fields[4], "-nan")
	}
	if fields[2+FeatureCount-1] != "0.000" {
		t.Errorf("empty zone = %q; want %q", fields[2+FeatureCount-1], "0.000")
	}
}

// --- Features ---

func TestFeatures_VectorMatchesLine(t *testing.T) {
	res := Segment(mustParse(t, pixelText(20, 10, ring...)))
	f := res.Symbols[0].Features

	vec := f.Vector()
	if len(vec) != FeatureCount {
		t.Fatalf("len(Vector()) = %d; want %d", len(vec), FeatureCount)
	}

	parsed, err := ova.ParseValues(f.String())
	if err != nil {
		t.Fatalf("ParseValues error = %v", err)
	}
	if len(parsed) != FeatureCount {
		t.Fatalf("ParseValues kept %d values; want %d", len(parsed), FeatureCount)
	}

	for i := range vec {
		if math.Abs(vec[i]-parsed[i]) > 0.0005 {
			t.Errorf("value %d: Vector = %v, printed = %v", i, vec[i], parsed[i])
		}
	}
}

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		v    float64
		prec int
		want string
	}{
		{0.5, 3, "0.500"},
		{-0.63636, 3, "-0.636"},
		{1, 4, "1.0000"},
		{math.Copysign(0, -1), 3, "-0.000"},
		{math.Inf(1), 3, "inf"},
		{math.Inf(-1), 3, "-inf"},
		{math.NaN(), 3, "-nan"},
	}

	for _, tt := range tests {
		if got := formatFloat(tt.v, tt.prec); got != tt.want {
			t.Errorf("formatFloat(%v, %d) = %q; want %q", tt.v, tt.prec, got, tt.want)
		}
	}
}

// --- WriteReport ---

func TestWriteReport(t *testing.T) {
	res := Segment(mustParse(t, pixelText(20, 10, ring...)))

	var out bytes.Buffer
	if err := WriteReport(&out, res); err != nil {
		t.Fatalf("WriteReport error = %v", err)
	}
	report := out.String()

	if !strings.HasPrefix(report, "Number of symbols: 1\nSTART GLOBAL DRAWING\n") {
		t.Errorf("report header = %q", report[:min(60, len(report))])
	}

	symbol := "-------- Group 1 --------\n4 x 4\n\nSTART SYMBOL 1\n\n" +
		"11111\n1   1\n1   1\n1   1\n11111\n" +
		"\nSTOP SYMBOL 1\n\n\nCODED FEATURES "
	if !strings.Contains(report, symbol) {
		t.Errorf("report does not contain symbol block %q:\n%s", symbol, report)
	}

	if !strings.HasSuffix(report, "\n\nREADING ORDER 1 \n") {
		t.Errorf("report tail = %q", report[max(0, len(report)-40):])
	}

	start := strings.Index(report, "START GLOBAL DRAWING\n") + len("START GLOBAL DRAWING\n")
	stop := strings.Index(report, "STOP GLOBAL DRAWING\n")
	rows := strings.Split(strings.TrimSuffix(report[start:stop], "\n"), "\n")
	if len(rows) != ImageHeight {
		t.Fatalf("global drawing has %d rows; want %d", len(rows), ImageHeight)
	}
	if rows[10] != strings.Repeat(" ", 20)+"11111"+strings.Repeat(" ", ImageWidth-25) {
		t.Errorf("row 10 = %q", rows[10])
	}
}

func TestWriteFeatures(t *testing.T) {
	text := pixelText(10, 20, ring...) + pixelText(40, 20, "22", "22")
	res := Segment(mustParse(t, text))

	var out bytes.Buffer
	if err := WriteFeatures(&out, res); err != nil {
		t.Fatalf("WriteFeatures error = %v", err)
	}

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines; want 2", len(lines))
	}
	for i, line := range lines {
		if !strings.HasPrefix(line, "CODED FEATURES ") {
			t.Errorf("line %d = %q; want CODED FEATURES prefix", i+1, line)
		}
	}
}
