package segment

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
)

// WriteReport writes the full segmentation report: the merged image, each
// symbol's drawing and coded features, and the reading order.
func WriteReport(w io.Writer, res *Result) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "Number of symbols: %d\n", len(res.Symbols))
	bw.WriteString("START GLOBAL DRAWING\n")
	for y := 0; y < ImageHeight; y++ {
		drawRow(bw, res.Image, y, 0, ImageWidth-1, -1)
	}
	bw.WriteString("STOP GLOBAL DRAWING\n")

	for _, sym := range res.Symbols {
		b := sym.Bounds
		fmt.Fprintf(bw, "-------- Group %d --------\n", sym.ID)
		fmt.Fprintf(bw, "%d x %d\n\n", b.Width(), b.Height())
		fmt.Fprintf(bw, "START SYMBOL %d\n\n", sym.ID)
		for y := b.YMin; y <= b.YMax; y++ {
			drawRow(bw, res.Image, y, b.XMin, b.XMax, sym.Group)
		}
		fmt.Fprintf(bw, "\nSTOP SYMBOL %d\n", sym.ID)
		fmt.Fprintf(bw, "\n\n%s\n\n", sym.Features)
	}

	bw.WriteString("READING ORDER ")
	for _, id := range res.Order {
		bw.WriteString(strconv.Itoa(id))
		bw.WriteByte(' ')
	}
	bw.WriteByte('\n')

	return bw.Flush()
}

// WriteFeatures writes only the coded feature line of each symbol.
func WriteFeatures(w io.Writer, res *Result) error {
	bw := bufio.NewWriter(w)
	for _, sym := range res.Symbols {
		fmt.Fprintf(bw, "%s\n", sym.Features)
	}
	return bw.Flush()
}

// drawRow prints the group ID of each lit pixel in [x0, x1] and a space for
// the rest. With only >= 0, pixels of other groups are blank.
func drawRow(bw *bufio.Writer, im *Image, y, x0, x1, only int) {
	for x := x0; x <= x1; x++ {
		g := im.At(x, y)
		if g == 0 || (only >= 0 && g != only) {
			bw.WriteByte(' ')
			continue
		}
		bw.WriteString(strconv.Itoa(g))
	}
	bw.WriteByte('\n')
}
