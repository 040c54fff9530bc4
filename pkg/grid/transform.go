package grid

import (
	"strconv"

	"github.com/matzehuels/asciiforge/pkg/errors"
)

// Axis selects the direction of a mirror.
type Axis string

const (
	// AxisHorizontal flips left↔right (each row is reversed).
	AxisHorizontal Axis = "horizontal"
	// AxisVertical flips top↔bottom (row order is reversed).
	AxisVertical Axis = "vertical"
)

// Rotate returns g rotated clockwise by degrees, which must be 90, 180 or
// 270. Quarter turns swap the output dimensions.
func (g *Grid) Rotate(degrees int) (*Grid, error) {
	var out *Grid
	switch degrees {
	case 90:
		out = New(g.height, g.width)
		for r, row := range g.cells {
			for c, ch := range row {
				out.cells[c][g.height-1-r] = ch
			}
		}
	case 180:
		out = New(g.width, g.height)
		for r, row := range g.cells {
			for c, ch := range row {
				out.cells[g.height-1-r][g.width-1-c] = ch
			}
		}
	case 270:
		out = New(g.height, g.width)
		for r, row := range g.cells {
			for c, ch := range row {
				out.cells[g.width-1-c][r] = ch
			}
		}
	default:
		return nil, errors.New(errors.ErrCodeConfiguration,
			"invalid rotation: %d degrees (must be one of: 90, 180, 270)", degrees)
	}
	return out, nil
}

// Mirror returns g flipped along axis.
func (g *Grid) Mirror(axis Axis) (*Grid, error) {
	out := New(g.width, g.height)
	switch axis {
	case AxisHorizontal:
		for r, row := range g.cells {
			for c, ch := range row {
				out.cells[r][g.width-1-c] = ch
			}
		}
	case AxisVertical:
		for r, row := range g.cells {
			copy(out.cells[g.height-1-r], row)
		}
	default:
		return nil, errors.New(errors.ErrCodeConfiguration,
			"invalid mirror axis: %q (must be one of: horizontal, vertical)", axis)
	}
	return out, nil
}

// Scale returns g resized by factor, which must be 2.0 or 0.5.
//
// Doubling expands every cell into a 2×2 block. Halving keeps every second
// row and column starting at 0, giving ceil(old/2) per dimension; for odd
// sizes the trailing row or column only survives through that sample.
func (g *Grid) Scale(factor float64) (*Grid, error) {
	switch factor {
	case 2:
		out := New(g.width*2, g.height*2)
		for r, row := range g.cells {
			for c, ch := range row {
				out.cells[2*r][2*c] = ch
				out.cells[2*r][2*c+1] = ch
				out.cells[2*r+1][2*c] = ch
				out.cells[2*r+1][2*c+1] = ch
			}
		}
		return out, nil
	case 0.5:
		out := New(ceilHalf(g.width), ceilHalf(g.height))
		for r := range out.cells {
			for c := range out.cells[r] {
				out.cells[r][c] = g.cells[2*r][2*c]
			}
		}
		return out, nil
	}
	return nil, errors.New(errors.ErrCodeConfiguration,
		"invalid scale factor: %s (must be one of: 0.5, 2)", strconv.FormatFloat(factor, 'g', -1, 64))
}

func ceilHalf(n int) int {
	return (n + 1) / 2
}
