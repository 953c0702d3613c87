package vm

import "strings"

// Frame buffer dimensions in pixels.
const (
	DisplayWidth  = 64
	DisplayHeight = 32
)

// Display is the monochrome frame buffer, stored row by row.
type Display [DisplayWidth * DisplayHeight]bool

// Pixel returns whether the pixel at the given position is on. Positions
// outside of the display are off.
func (d *Display) Pixel(x, y int) bool {
	if x < 0 || x >= DisplayWidth || y < 0 || y >= DisplayHeight {
		return false
	}
	return d[y*DisplayWidth+x]
}

// Lit returns the number of pixels that are on.
func (d *Display) Lit() int {
	count := 0
	for _, on := range d {
		if on {
			count++
		}
	}
	return count
}

// String renders the display as text, one line per row.
func (d *Display) String() string {
	var buf strings.Builder
	buf.Grow((DisplayWidth + 1) * DisplayHeight)

	for y := range DisplayHeight {
		for x := range DisplayWidth {
			if d[y*DisplayWidth+x] {
				buf.WriteByte('#')
			} else {
				buf.WriteByte('.')
			}
		}
		buf.WriteByte('\n')
	}
	return buf.String()
}

func (d *Display) clear() {
	*d = Display{}
}

// xorPixel toggles the pixel at the given position and returns whether it
// was turned off.
func (d *Display) xorPixel(x, y int) bool {
	idx := y*DisplayWidth + x
	wasOn := d[idx]
	d[idx] = !wasOn
	return wasOn
}
