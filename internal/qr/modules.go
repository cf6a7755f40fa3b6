package qr

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/disintegration/imaging"
)

// ErrInvalidModuleStyle is returned for an unrecognized module style.
var ErrInvalidModuleStyle = errors.New("invalid module style")

// ModuleStyle selects the shape dark data modules are drawn with.
type ModuleStyle string

const (
	ModuleSquare ModuleStyle = "square"
	ModuleCircle ModuleStyle = "circle"
)

// ModuleStyles lists the accepted module style names.
var ModuleStyles = []string{string(ModuleSquare), string(ModuleCircle)}

// CircleRadius is the radius of a circular module as a fraction of the
// module size.
const CircleRadius = 0.45

// ParseModuleStyle parses "square" or "circle" (case-insensitive). Empty
// input yields ModuleSquare.
func ParseModuleStyle(s string) (ModuleStyle, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "square":
		return ModuleSquare, nil
	case "circle", "round":
		return ModuleCircle, nil
	}
	return ModuleSquare, fmt.Errorf("%w: %q (want one of %s)", ErrInvalidModuleStyle, s, strings.Join(ModuleStyles, ", "))
}

func (m ModuleStyle) validate() error {
	switch m {
	case "", ModuleSquare, ModuleCircle:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrInvalidModuleStyle, string(m))
}

// drawCircleModules renders a borderless module matrix (matrix[y][x] true for
// dark) with round data modules. Finder and alignment patterns stay square
// so detectors still lock on to them. The output is pure black on white.
func drawCircleModules(matrix [][]bool, ms int, quietZone bool) *image.NRGBA {
	n := len(matrix)
	border := 0
	if quietZone {
		border = QuietZoneModules * ms
	}
	side := n*ms + 2*border
	canvas := imaging.New(side, side, color.White)

	square := functionPatternMask(n)
	r := CircleRadius * float64(ms)
	r2 := r * r
	half := float64(ms) / 2

	for my, row := range matrix {
		for mx, dark := range row {
			if !dark {
				continue
			}
			x0, y0 := border+mx*ms, border+my*ms
			for py := 0; py < ms; py++ {
				for px := 0; px < ms; px++ {
					if !square[my][mx] {
						dx := float64(px) + 0.5 - half
						dy := float64(py) + 0.5 - half
						if dx*dx+dy*dy > r2 {
							continue
						}
					}
					i := canvas.PixOffset(x0+px, y0+py)
					canvas.Pix[i+0], canvas.Pix[i+1], canvas.Pix[i+2] = 0, 0, 0
				}
			}
		}
	}
	return canvas
}

// functionPatternMask marks the modules of an n×n symbol that belong to a
// finder pattern or an alignment pattern.
func functionPatternMask(n int) [][]bool {
	mask := make([][]bool, n)
	for i := range mask {
		mask[i] = make([]bool, n)
	}
	mark := func(x0, y0, size int) {
		for y := max(y0, 0); y < min(y0+size, n); y++ {
			for x := max(x0, 0); x < min(x0+size, n); x++ {
				mask[y][x] = true
			}
		}
	}

	mark(0, 0, 7)
	mark(n-7, 0, 7)
	mark(0, n-7, 7)

	centers := alignmentCenters(n)
	last := len(centers) - 1
	for i, cy := range centers {
		for j, cx := range centers {
			// These three overlap the finder patterns.
			if (i == 0 && j == 0) || (i == 0 && j == last) || (i == last && j == 0) {
				continue
			}
			mark(cx-2, cy-2, 5)
		}
	}
	return mask
}

// alignmentCenters returns the row/column coordinates of alignment pattern
// centres for a symbol n modules wide. Version 1 has none.
func alignmentCenters(n int) []int {
	version := (n - 17) / 4
	if version < 2 || version > 40 {
		return nil
	}
	count := version/7 + 2
	step := 26
	if version != 32 {
		step = (version*4 + count*2 + 1) / (count*2 - 2) * 2
	}

	centers := make([]int, count)
	centers[0] = 6
	for i, pos := count-1, n-7; i > 0; i, pos = i-1, pos-step {
		centers[i] = pos
	}
	return centers
}
