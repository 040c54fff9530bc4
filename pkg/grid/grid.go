package grid

import (
	"strings"
	"unicode/utf8"
)

// Blank is the character held by every empty cell.
const Blank = ' '

// DefaultChar is the drawing character used when a caller does not pick one.
const DefaultChar = '*'

// Point is a cell coordinate. (0,0) is top left.
type Point struct {
	Row int `json:"row" yaml:"row" toml:"row" mapstructure:"row"`
	Col int `json:"col" yaml:"col" toml:"col" mapstructure:"col"`
}

// Rect is an inclusive cell rectangle.
type Rect struct {
	Top, Left, Bottom, Right int
}

// Width returns the number of columns covered by r.
func (r Rect) Width() int { return r.Right - r.Left + 1 }

// Height returns the number of rows covered by r.
func (r Rect) Height() int { return r.Bottom - r.Top + 1 }

// Grid is a fixed-size, row-major character buffer.
//
// Every row holds exactly Width cells and blank cells hold [Blank]. Writes
// outside the buffer are ignored and reads outside it report ok=false, so
// rasterizers can draw without clipping first.
//
// A Grid is not safe for concurrent mutation.
type Grid struct {
	width  int
	height int
	cells  [][]rune
}

// New returns a width×height grid filled with blanks.
// Negative dimensions are treated as zero.
func New(width, height int) *Grid {
	width, height = max(width, 0), max(height, 0)
	g := &Grid{width: width, height: height, cells: make([][]rune, height)}
	for r := range g.cells {
		g.cells[r] = blankRow(width)
	}
	return g
}

// Parse builds a grid from newline-delimited text. The height is the line
// count, the width is the longest line (in code points) and shorter lines
// are padded with blanks. A trailing "\r" on a line is dropped.
func Parse(content string) *Grid {
	lines := strings.Split(content, "\n")
	width := 0
	for i, line := range lines {
		line = strings.TrimSuffix(line, "\r")
		lines[i] = line
		width = max(width, utf8.RuneCountInString(line))
	}

	g := New(width, len(lines))
	for r, line := range lines {
		copy(g.cells[r], []rune(line))
	}
	return g
}

func blankRow(width int) []rune {
	row := make([]rune, width)
	for i := range row {
		row[i] = Blank
	}
	return row
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// InBounds reports whether (row, col) addresses a cell of g.
func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && row < g.height && col >= 0 && col < g.width
}

// At returns the character at (row, col). ok is false when the position is
// outside the grid.
func (g *Grid) At(row, col int) (ch rune, ok bool) {
	if !g.InBounds(row, col) {
		return 0, false
	}
	return g.cells[row][col], true
}

// Set writes ch at (row, col). Out-of-bounds writes are no-ops.
func (g *Grid) Set(row, col int, ch rune) {
	if g.InBounds(row, col) {
		g.cells[row][col] = ch
	}
}

// SetRow fills an entire row with ch. Out-of-bounds rows are ignored.
func (g *Grid) SetRow(row int, ch rune) {
	if row < 0 || row >= g.height {
		return
	}
	for c := range g.cells[row] {
		g.cells[row][c] = ch
	}
}

// Line returns row r as a string, or "" if r is out of range.
func (g *Grid) Line(r int) string {
	if r < 0 || r >= g.height {
		return ""
	}
	return string(g.cells[r])
}

// Lines returns every row as a string.
func (g *Grid) Lines() []string {
	lines := make([]string, g.height)
	for r := range g.cells {
		lines[r] = string(g.cells[r])
	}
	return lines
}

// String serializes the grid: rows joined by "\n", each exactly Width
// characters, no trailing newline.
func (g *Grid) String() string {
	return strings.Join(g.Lines(), "\n")
}

// Copy returns an independent deep copy of g.
func (g *Grid) Copy() *Grid {
	c := &Grid{width: g.width, height: g.height, cells: make([][]rune, g.height)}
	for r, row := range g.cells {
		c.cells[r] = append([]rune(nil), row...)
	}
	return c
}

// Equal reports whether g and o have the same dimensions and contents.
func (g *Grid) Equal(o *Grid) bool {
	if g == nil || o == nil {
		return g == o
	}
	if g.width != o.width || g.height != o.height {
		return false
	}
	for r := range g.cells {
		for c := range g.cells[r] {
			if g.cells[r][c] != o.cells[r][c] {
				return false
			}
		}
	}
	return true
}

// CenterPoint returns (floor(height/2), floor(width/2)).
func (g *Grid) CenterPoint() Point {
	return Point{Row: g.height / 2, Col: g.width / 2}
}

// ContentBounds returns the tight bounding box of all non-blank cells.
// ok is false when the grid is entirely blank.
func (g *Grid) ContentBounds() (bounds Rect, ok bool) {
	bounds = Rect{Top: g.height, Left: g.width, Bottom: -1, Right: -1}
	for r, row := range g.cells {
		for c, ch := range row {
			if ch == Blank {
				continue
			}
			bounds.Top = min(bounds.Top, r)
			bounds.Bottom = max(bounds.Bottom, r)
			bounds.Left = min(bounds.Left, c)
			bounds.Right = max(bounds.Right, c)
		}
	}
	if bounds.Bottom < 0 {
		return Rect{}, false
	}
	return bounds, true
}

// Count returns the number of cells holding ch.
func (g *Grid) Count(ch rune) int {
	n := 0
	for _, row := range g.cells {
		for _, c := range row {
			if c == ch {
				n++
			}
		}
	}
	return n
}
