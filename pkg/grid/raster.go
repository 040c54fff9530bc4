package grid

import (
	"math"
	"slices"
)

// boundaryTolerance is how far (in squared-distance units) a cell may sit
// from the exact circle and still count as boundary.
const boundaryTolerance = 0.5

// Circle rasterizes a circle of the given radius into a (2r+1)×(2r+1) grid
// centered at (r, r).
//
// A cell is boundary when |Δcol²+Δrow²−r²| < 0.5; with filled set, every
// cell strictly inside is drawn as well. No square roots are taken.
func Circle(radius int, filled bool, ch rune) *Grid {
	radius = max(radius, 0)
	size := 2*radius + 1
	g := New(size, size)
	r2 := float64(radius * radius)

	for row := 0; row < size; row++ {
		dr := float64(row - radius)
		for col := 0; col < size; col++ {
			dc := float64(col - radius)
			diff := dc*dc + dr*dr - r2
			if math.Abs(diff) < boundaryTolerance || (filled && diff < 0) {
				g.cells[row][col] = ch
			}
		}
	}
	return g
}

// Rectangle rasterizes a width×height box. The first and last rows are
// always solid; interior rows are solid when filled, otherwise only their
// first and last columns are drawn.
func Rectangle(width, height int, ch rune, filled bool) *Grid {
	g := New(width, height)
	for row := 0; row < g.height; row++ {
		if filled || row == 0 || row == g.height-1 {
			g.SetRow(row, ch)
			continue
		}
		g.Set(row, 0, ch)
		g.Set(row, g.width-1, ch)
	}
	return g
}

// Polygon rasterizes a regular polygon inscribed in a circle of the given
// radius, inside a (2r+1)×(2r+1) grid.
//
// Vertex i sits at round(center + radius·(cos, sin)(2π·i/sides)) with cos
// driving the column and sin the row. Consecutive vertices are joined with
// [Grid.DrawLine]; when filled, the interior is scanline-filled.
func Polygon(sides, radius int, filled bool, ch rune) *Grid {
	radius = max(radius, 0)
	size := 2*radius + 1
	g := New(size, size)
	center := float64(radius)

	vertices := make([]Point, 0, max(sides, 0))
	for i := 0; i < sides; i++ {
		angle := 2 * math.Pi * float64(i) / float64(sides)
		vertices = append(vertices, Point{
			Row: round(center + float64(radius)*math.Sin(angle)),
			Col: round(center + float64(radius)*math.Cos(angle)),
		})
	}

	for i, v := range vertices {
		g.DrawLine(v, vertices[(i+1)%len(vertices)], ch)
	}
	if filled {
		g.fillPolygon(vertices, ch)
	}
	return g
}

// fillPolygon fills the interior of a closed vertex ring, one scanline per
// row. Horizontal edges are skipped; each edge covers the half-open row
// range [min, max) so shared vertices are not counted twice.
func (g *Grid) fillPolygon(vertices []Point, ch rune) {
	n := len(vertices)
	if n < 3 {
		return
	}
	for row := 0; row < g.height; row++ {
		var xs []int
		for i := range vertices {
			v1, v2 := vertices[i], vertices[(i+1)%n]
			if v1.Row == v2.Row {
				continue
			}
			lo, hi := min(v1.Row, v2.Row), max(v1.Row, v2.Row)
			if row < lo || row >= hi {
				continue
			}
			t := float64(row-v1.Row) / float64(v2.Row-v1.Row)
			xs = append(xs, round(float64(v1.Col)+t*float64(v2.Col-v1.Col)))
		}
		slices.Sort(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			for col := xs[i]; col <= xs[i+1]; col++ {
				g.Set(row, col, ch)
			}
		}
	}
}

// DrawLine draws a digital line from start to end inclusive.
//
// The line takes max(|Δrow|, |Δcol|) steps, advancing each axis by Δ/steps
// and rounding the accumulated position. A zero-length segment draws
// nothing, so single-point lines leave the grid untouched.
func (g *Grid) DrawLine(start, end Point, ch rune) {
	dRow, dCol := end.Row-start.Row, end.Col-start.Col
	steps := max(abs(dRow), abs(dCol))
	if steps == 0 {
		return
	}
	incRow := float64(dRow) / float64(steps)
	incCol := float64(dCol) / float64(steps)

	row, col := float64(start.Row), float64(start.Col)
	for i := 0; i <= steps; i++ {
		g.Set(round(row), round(col), ch)
		row += incRow
		col += incCol
	}
}

// Line rasterizes a single segment into a grid just large enough to hold
// both endpoints (which must be non-negative).
func Line(start, end Point, ch rune) *Grid {
	g := New(max(start.Col, end.Col)+1, max(start.Row, end.Row)+1)
	g.DrawLine(start, end, ch)
	return g
}

// round rounds half up, matching how rasterized coordinates snap to cells.
func round(x float64) int {
	return int(math.Floor(x + 0.5))
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
