// Package segment splits a denoised captcha pixel dump into symbols and
// computes the feature vector of each symbol for the classifier network.
//
// The input is the text produced by the noise remover: one "group x y" line
// per lit pixel, where group identifies the connected component the pixel
// belongs to.
package segment

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Image dimensions of a captcha.
const (
	ImageWidth  = 150
	ImageHeight = 60
)

// ErrOutOfBounds is returned for a pixel outside the image.
var ErrOutOfBounds = errors.New("pixel outside the image")

// Image holds the group ID of every pixel, 0 for background. Group IDs are
// compacted to 1..Groups in order of first appearance.
type Image struct {
	pixels []int
	groups int
}

// NewImage returns an empty image.
func NewImage() *Image {
	return &Image{pixels: make([]int, ImageWidth*ImageHeight)}
}

// Groups returns the number of distinct groups.
func (im *Image) Groups() int { return im.groups }

// At returns the group of pixel (x, y), or 0 outside the image.
func (im *Image) At(x, y int) int {
	if x < 0 || y < 0 || x >= ImageWidth || y >= ImageHeight {
		return 0
	}
	return im.pixels[y*ImageWidth+x]
}

// atIndex reads the flat pixel buffer. Rows wrap, so x past the right edge
// continues on the next row. Indices past the buffer read as background.
func (im *Image) atIndex(x, y int) int {
	i := y*ImageWidth + x
	if i < 0 || i >= len(im.pixels) {
		return 0
	}
	return im.pixels[i]
}

func (im *Image) set(x, y, group int) {
	im.pixels[y*ImageWidth+x] = group
}

func (im *Image) clone() *Image {
	return &Image{pixels: append([]int(nil), im.pixels...), groups: im.groups}
}

// Parse reads "group x y" lines. Blank lines are ignored; a final line
// without newline is still read. A later pixel at the same position
// replaces an earlier one.
func Parse(r io.Reader) (*Image, error) {
	im := NewImage()
	ids := make(map[int]int)

	sc := bufio.NewScanner(r)
	for lineNo := 1; sc.Scan(); lineNo++ {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) != 3 {
			return nil, fmt.Errorf("line %d: want \"group x y\", got %q", lineNo, line)
		}

		var vals [3]int
		for i, f := range fields {
			v, err := strconv.Atoi(f)
			if err != nil || v < 0 {
				return nil, fmt.Errorf("line %d: invalid number %q", lineNo, f)
			}
			vals[i] = v
		}

		group, x, y := vals[0], vals[1], vals[2]
		if x >= ImageWidth || y >= ImageHeight {
			return nil, fmt.Errorf("line %d: (%d, %d): %w", lineNo, x, y, ErrOutOfBounds)
		}

		id, ok := ids[group]
		if !ok {
			im.groups++
			id = im.groups
			ids[group] = id
		}
		im.set(x, y, id)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read pixels: %w", err)
	}

	return im, nil
}
