package segment

// dotSlack lets a small group sit up to this many columns outside the group
// it is merged into (dots of i and j on skewed glyphs).
const dotSlack = 3

// Bounds is the inclusive bounding box of a group.
type Bounds struct {
	XMin, YMin, XMax, YMax int
}

// Width is XMax-XMin, so a one-column symbol has width 0.
func (b Bounds) Width() int { return b.XMax - b.XMin }

// Height is YMax-YMin.
func (b Bounds) Height() int { return b.YMax - b.YMin }

// Symbol is one group left after dot merging.
type Symbol struct {
	// ID numbers the symbols from 1 in group order.
	ID int
	// Group is the group ID the symbol's pixels carry in Result.Image.
	Group    int
	Bounds   Bounds
	Features Features
}

// Result is the outcome of Segment.
type Result struct {
	// Image has merged groups repainted with the ID of the group they joined.
	Image   *Image
	Symbols []Symbol
	// Order lists symbol IDs left to right by first lit column.
	Order []int
}

// Segment merges dots into the symbols below them and computes the features
// of every remaining symbol. img is not modified.
func Segment(img *Image) *Result {
	im := img.clone()
	n := im.groups

	bounds := groupBounds(im)
	merged := mergeDots(im, bounds)

	res := &Result{Image: im}
	ids := make([]int, n+1)
	for g := 1; g <= n; g++ {
		if merged[g] != 0 {
			continue
		}

		sym := Symbol{ID: len(res.Symbols) + 1, Group: g, Bounds: bounds[g]}
		sym.Features = extract(im, g, bounds[g])
		for other := 1; other <= n; other++ {
			if other != g && merged[other] == g {
				sym.Features.Dot = 1
				break
			}
		}

		ids[g] = sym.ID
		res.Symbols = append(res.Symbols, sym)
	}

	res.Order = readingOrder(im, ids)

	return res
}

func groupBounds(im *Image) []Bounds {
	bounds := make([]Bounds, im.groups+1)
	for i := range bounds {
		bounds[i] = Bounds{XMin: 255, YMin: 255}
	}

	for x := 0; x < ImageWidth; x++ {
		for y := 0; y < ImageHeight; y++ {
			g := im.At(x, y)
			if g == 0 {
				continue
			}
			b := &bounds[g]
			b.XMin = min(b.XMin, x)
			b.XMax = max(b.XMax, x)
			b.YMin = min(b.YMin, y)
			b.YMax = max(b.YMax, y)
		}
	}

	return bounds
}

// mergeDots repaints every group whose columns fall within another group's
// columns into that group. The first matching group in ID order wins, and a
// group that was itself merged away does not absorb others. The returned
// slice maps a merged group to the group it joined, 0 for kept groups.
func mergeDots(im *Image, bounds []Bounds) []int {
	merged := make([]int, im.groups+1)

	for g := 1; g <= im.groups; g++ {
		near := 0
		for o := 1; o <= im.groups; o++ {
			if o == g {
				continue
			}
			if bounds[g].XMin >= bounds[o].XMin-dotSlack && bounds[g].XMax <= bounds[o].XMax+dotSlack {
				near = o
				break
			}
		}
		if near == 0 || merged[near] != 0 {
			continue
		}

		b := bounds[g]
		for x := b.XMin; x <= b.XMax; x++ {
			for y := b.YMin; y <= b.YMax; y++ {
				if im.At(x, y) == g {
					im.set(x, y, near)
				}
			}
		}

		nb := &bounds[near]
		nb.XMin = min(nb.XMin, b.XMin)
		nb.YMin = min(nb.YMin, b.YMin)
		nb.XMax = max(nb.XMax, b.XMax)
		nb.YMax = max(nb.YMax, b.YMax)
		merged[g] = near
	}

	return merged
}

func readingOrder(im *Image, ids []int) []int {
	seen := make(map[int]bool)
	var order []int

	for x := 0; x < ImageWidth; x++ {
		for y := 0; y < ImageHeight; y++ {
			g := im.At(x, y)
			if g == 0 || seen[g] {
				continue
			}
			seen[g] = true
			order = append(order, ids[g])
		}
	}

	return order
}
