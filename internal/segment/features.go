package segment

import (
	"math"
	"strconv"
	"strings"
)

const (
	maxHeight      = 22
	maxTransitions = 14
	lowSymbolY     = 42
	zoneCount      = 3
)

// FeatureCount is the length of a feature vector.
const FeatureCount = 31

// Features is the coded feature vector of one symbol. Values are scaled to
// [-1, 1] except where noted. Fields kept as float32 carry single precision
// rounding into their printed form.
type Features struct {
	Height           float64
	RelativeLength   float32
	BroadestSegment  float32
	HorizTransitions float64
	VertTransitions  float64
	CenterDistanceX  float64
	CenterDistanceY  float64
	// RowTransitions counts runs starting on the rows at 1/3, 1/2, 2/3, 1/4
	// and 3/4 of the height. Not scaled.
	RowTransitions [5]int
	LightMatches   [7]float32
	// Dot, Low and Hole are +1 or -1.
	Dot   int
	Low   int
	Hole  int
	Zones [zoneCount * zoneCount]float32
}

// Vector returns the features in printed order.
func (f Features) Vector() []float64 {
	out := make([]float64, 0, FeatureCount)
	out = append(out,
		f.Height,
		float64(f.RelativeLength),
		float64(f.BroadestSegment),
		f.HorizTransitions,
		f.VertTransitions,
		f.CenterDistanceX,
		f.CenterDistanceY,
	)
	for _, v := range f.RowTransitions {
		out = append(out, float64(v))
	}
	for _, v := range f.LightMatches {
		out = append(out, float64(v))
	}
	out = append(out, float64(f.Dot), float64(f.Low), float64(f.Hole))
	for _, v := range f.Zones {
		out = append(out, float64(v))
	}

	return out
}

// String formats the features as a "CODED FEATURES" line without the
// newline. Every value is followed by a space.
func (f Features) String() string {
	var b strings.Builder
	b.WriteString("CODED FEATURES ")

	put := func(s string) {
		b.WriteString(s)
		b.WriteByte(' ')
	}

	put(formatFloat(f.Height, 3))
	put(formatFloat(float64(f.RelativeLength), 4))
	put(formatFloat(float64(f.BroadestSegment), 3))
	put(formatFloat(f.HorizTransitions, 3))
	put(formatFloat(f.VertTransitions, 3))
	put(formatFloat(f.CenterDistanceX, 3))
	put(formatFloat(f.CenterDistanceY, 3))
	for _, v := range f.RowTransitions {
		put(strconv.Itoa(v))
	}
	for _, v := range f.LightMatches {
		put(formatFloat(float64(v), 3))
	}
	put(strconv.Itoa(f.Dot))
	put(strconv.Itoa(f.Low))
	put(strconv.Itoa(f.Hole))
	for _, v := range f.Zones {
		put(formatFloat(float64(v), 3))
	}

	return b.String()
}

// formatFloat prints v with prec decimals, spelling infinities and NaN the
// way C's printf does.
func formatFloat(v float64, prec int) string {
	switch {
	case math.IsNaN(v):
		return "-nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	return strconv.FormatFloat(v, 'f', prec, 64)
}

// extract computes every feature except Dot, which depends on the merge
// table.
func extract(im *Image, g int, b Bounds) Features {
	w, h := b.Width(), b.Height()
	f := Features{Dot: -1, Low: -1, Hole: -1}

	length, broadest, maxRow := 0, 0, 0
	distX, distY, measured := 0, 0, 0
	for y := b.YMin; y <= b.YMax; y++ {
		relY := y - b.YMin
		firstX := -1
		on := false
		transitions := 0

		for x := b.XMin; x <= b.XMax; x++ {
			if im.At(x, y) == g {
				distX += abs(w/2 - (x - b.XMin))
				distY += abs(h/2 - relY)
				measured++

				if !on {
					firstX = x
					transitions++
					if i := rowMark(h, relY); i >= 0 {
						f.RowTransitions[i]++
					}
				}
				if x == b.XMax {
					broadest = max(broadest, x-firstX)
				}
				on = true
				length++
			} else {
				if on {
					transitions++
					broadest = max(broadest, x-firstX)
				}
				on = false
			}
		}
		maxRow = max(maxRow, transitions)
	}

	maxCol := 0
	for x := b.XMin; x <= b.XMax; x++ {
		on := false
		transitions := 0
		for y := b.YMin; y <= b.YMax; y++ {
			lit := im.At(x, y) == g
			if lit != on {
				transitions++
			}
			on = lit
		}
		maxCol = max(maxCol, transitions)
	}

	f.Height = 2.0*float64(min(h, maxHeight))/maxHeight - 1
	f.RelativeLength = float32(2.0*float64(length)/float64(w*h) - 1)
	f.BroadestSegment = float32(2.0*float64(broadest)/float64(w) - 1)
	f.HorizTransitions = 2.0*float64(min(maxRow, maxTransitions))/maxTransitions - 1
	f.VertTransitions = 2.0*float64(min(maxCol, maxTransitions))/maxTransitions - 1

	meanX := float32(distX) / float32(measured)
	meanY := float32(distY) / float32(measured)
	f.CenterDistanceX = 2.0*float64(meanX/float32(w)/2) - 1
	f.CenterDistanceY = 2.0*float64(meanY/float32(h)/2) - 1

	f.LightMatches = lightMatches(im, g, b)

	if b.YMax > lowSymbolY {
		f.Low = 1
	}
	if hasHole(im, g, b) {
		f.Hole = 1
	}
	f.Zones = zones(im, g, b)

	return f
}

// rowMark returns which of the tracked rows relY is, or -1. The first match
// in the order 1/3, 1/2, 2/3, 1/4, 3/4 wins.
func rowMark(h, relY int) int {
	for i, mark := range []int{h / 3, h / 2, 2 * h / 3, h / 4, 3 * h / 4} {
		if mark == relY {
			return i
		}
	}
	return -1
}

// hasHole reports whether some pixel of the bounding box that is not part of
// the symbol cannot reach the box edge. Movement is 8-connected and pixels
// of other groups do not block it.
func hasHole(im *Image, g int, b Bounds) bool {
	w, h := b.Width()+1, b.Height()+1
	state := make([]uint8, w*h) // 0 unvisited, 1 visited
	stack := make([]int, 0, w*h)

	for start := range state {
		sx, sy := start%w, start/w
		if state[start] != 0 || im.At(b.XMin+sx, b.YMin+sy) == g {
			continue
		}

		escapes := false
		state[start] = 1
		stack = append(stack[:0], start)
		for len(stack) > 0 {
			cur := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			cx, cy := cur%w, cur/w

			for dx := -1; dx <= 1; dx++ {
				for dy := -1; dy <= 1; dy++ {
					if dx == 0 && dy == 0 {
						continue
					}
					nx, ny := cx+dx, cy+dy
					if nx < 0 || ny < 0 || nx >= w || ny >= h {
						escapes = true
						continue
					}
					next := ny*w + nx
					if state[next] != 0 || im.At(b.XMin+nx, b.YMin+ny) == g {
						continue
					}
					state[next] = 1
					stack = append(stack, next)
				}
			}
		}

		if !escapes {
			return true
		}
	}

	return false
}

// zones splits the box into a 3x3 grid of whole zones and scales the share
// of lit pixels in each. Column-major: index h*3+v. Empty zones give 0.
func zones(im *Image, g int, b Bounds) [zoneCount * zoneCount]float32 {
	var out [zoneCount * zoneCount]float32
	zw, zh := b.Width()/zoneCount, b.Height()/zoneCount

	for hz := 0; hz < zoneCount; hz++ {
		for vz := 0; vz < zoneCount; vz++ {
			count := 0
			for y := b.YMin + vz*zh; y < b.YMin+(vz+1)*zh; y++ {
				for x := b.XMin + hz*zw; x < b.XMin+(hz+1)*zw; x++ {
					if im.At(x, y) == g {
						count++
					}
				}
			}

			v := float32(2.0*float64(float32(count)/float32(zh*zw)) - 1)
			if math.IsNaN(float64(v)) {
				v = 0
			}
			out[hz*zoneCount+vz] = v
		}
	}

	return out
}

// lightMatches samples seven short lines at fixed fractions of the box and
// scales the share of lit pixels on each.
func lightMatches(im *Image, g int, b Bounds) [7]float32 {
	var out [7]float32
	fw := float64(b.Width() + 1)
	fh := float64(b.Height() + 1)
	xMin, xMax := float64(b.XMin), float64(b.XMax)
	yMin := float64(b.YMin)

	// Vertical line in the middle, from 8/10 of the height to the bottom.
	xMid := int(xMin + fw/2.0)
	n, o := 0, 0
	for y := int(yMin + 0.8*fh); y <= b.YMax; y++ {
		if im.atIndex(xMid, y) == g {
			n++
		}
		o++
	}
	out[0] = lightRatio(n, o)

	// Horizontal lines: row, first column, last column (inclusive, compared
	// as reals).
	lines := []struct {
		y    int
		from int
		to   float64
	}{
		{int(yMin + 0.25*fh), b.XMin, xMin + 0.33*fw},
		{int(yMin + 0.75*fh), b.XMin, xMin + 0.33*fw},
		{int(yMin + 0.33*fh), int(xMin + 0.66*fw), xMax},
		{int(yMin + 0.66*fh), int(xMin + 0.66*fw), xMax},
		{int(yMin + 0.50*fh), int(xMin + 0.66*fw), xMax},
		{int(yMin + 0.50*fh), b.XMin, xMax + 0.33*fw},
	}
	for i, l := range lines {
		n, o = 0, 0
		for x := l.from; float64(x) <= l.to; x++ {
			if im.atIndex(x, l.y) == g {
				n++
			}
			o++
		}
		out[i+1] = lightRatio(n, o)
	}

	return out
}

func lightRatio(n, o int) float32 {
	return float32(2.0*float64(float32(n)/float32(o)) - 1)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
