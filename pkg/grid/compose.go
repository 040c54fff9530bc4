package grid

import "strings"

// OverlayOption configures [Grid.Overlay].
type OverlayOption func(*overlayConfig)

type overlayConfig struct {
	char   rune
	opaque bool
}

// WithChar stamps ch over every copied cell instead of the source's own
// characters.
func WithChar(ch rune) OverlayOption {
	return func(c *overlayConfig) { c.char = ch }
}

// WithOpaque copies blank source cells too, so every in-bounds source cell
// overwrites the target.
func WithOpaque() OverlayOption {
	return func(c *overlayConfig) { c.opaque = true }
}

// WithTransparent sets transparency explicitly. Overlay is transparent by
// default; WithTransparent(false) is the same as [WithOpaque].
func WithTransparent(transparent bool) OverlayOption {
	return func(c *overlayConfig) { c.opaque = !transparent }
}

// Overlay copies src onto g with src's top-left cell at (row, col) and
// returns g for chaining.
//
// Source cells landing outside g are skipped. In the default transparent
// mode blank source cells are skipped as well. Copied cells keep the
// source's character unless [WithChar] is given.
func (g *Grid) Overlay(src *Grid, row, col int, opts ...OverlayOption) *Grid {
	var cfg overlayConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	for r, srcRow := range src.cells {
		for c, ch := range srcRow {
			tr, tc := row+r, col+c
			if !g.InBounds(tr, tc) {
				continue
			}
			if !cfg.opaque && ch == Blank {
				continue
			}
			if cfg.char != 0 {
				ch = cfg.char
			}
			g.cells[tr][tc] = ch
		}
	}
	return g
}

// Clip returns a new grid holding rows [startRow, endRow) and columns
// [startCol, endCol) of g. Bounds are clamped to g's extents, so a region
// that misses g entirely yields an empty grid.
func (g *Grid) Clip(startRow, endRow, startCol, endCol int) *Grid {
	startRow, endRow = clamp(startRow, 0, g.height), clamp(endRow, 0, g.height)
	startCol, endCol = clamp(startCol, 0, g.width), clamp(endCol, 0, g.width)

	out := New(endCol-startCol, endRow-startRow)
	for r := range out.cells {
		copy(out.cells[r], g.cells[startRow+r][startCol:endCol])
	}
	return out
}

// RightAppend places other to the right of g with a single blank column
// between them. The shorter side's missing rows are treated as empty.
func (g *Grid) RightAppend(other *Grid) *Grid {
	height := max(g.height, other.height)
	lines := make([]string, height)
	for r := range lines {
		left := g.Line(r)
		if left == "" {
			left = strings.Repeat(string(Blank), g.width)
		}
		lines[r] = left + string(Blank) + other.Line(r)
	}
	return Parse(strings.Join(lines, "\n"))
}

// TopAppend returns a grid with other stacked above g.
// The narrower side is padded with trailing blanks.
func (g *Grid) TopAppend(other *Grid) *Grid {
	return stack(other, g)
}

// BottomAppend returns a grid with other stacked below g.
// The narrower side is padded with trailing blanks.
func (g *Grid) BottomAppend(other *Grid) *Grid {
	return stack(g, other)
}

func stack(top, bottom *Grid) *Grid {
	lines := append(top.Lines(), bottom.Lines()...)
	if len(lines) == 0 {
		return New(max(top.width, bottom.width), 0)
	}
	return Parse(strings.Join(lines, "\n"))
}

// CenterHorizontally returns g padded with leading blanks so that it sits
// centered in a row of targetWidth columns. The left margin is
// floor((targetWidth-width)/2). If g is already at least that wide a copy
// is returned.
func (g *Grid) CenterHorizontally(targetWidth int) *Grid {
	if targetWidth <= g.width {
		return g.Copy()
	}
	out := New(targetWidth, g.height)
	return out.Overlay(g, 0, (targetWidth-g.width)/2, WithOpaque())
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
