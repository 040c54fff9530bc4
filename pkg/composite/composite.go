// Package composite places shapes onto a shared canvas by named anchor.
//
// A [Grid] is a [grid.Grid] that remembers every placement in an
// append-only layer log. Each [Grid.AddShape] call overlays immediately;
// the log is an audit trail and nothing renders from it. Shape recipes
// ([Recipe]) declare a canvas and a flat list of shapes whose order is
// their z-order, first entry at the bottom.
package composite

import (
	"slices"

	"github.com/matzehuels/asciiforge/pkg/errors"
	"github.com/matzehuels/asciiforge/pkg/grid"
)

// Anchor names a reference point used to position a shape.
type Anchor string

// Supported anchors.
const (
	AnchorCenter      Anchor = "center"
	AnchorTopLeft     Anchor = "topLeft"
	AnchorTopRight    Anchor = "topRight"
	AnchorBottomLeft  Anchor = "bottomLeft"
	AnchorBottomRight Anchor = "bottomRight"
)

// Anchors lists every supported anchor.
var Anchors = []Anchor{AnchorCenter, AnchorTopLeft, AnchorTopRight, AnchorBottomLeft, AnchorBottomRight}

// ParseAnchor validates s. The empty string means [AnchorCenter].
func ParseAnchor(s string) (Anchor, error) {
	if s == "" {
		return AnchorCenter, nil
	}
	a := Anchor(s)
	if !slices.Contains(Anchors, a) {
		return "", invalidAnchor(s)
	}
	return a, nil
}

func invalidAnchor(s string) error {
	return errors.New(errors.ErrCodeInvalidAnchor,
		"invalid anchor: %q (must be one of: center, topLeft, topRight, bottomLeft, bottomRight)", s)
}

// Layer records one placement.
type Layer struct {
	Shape     *grid.Grid
	Anchor    Anchor
	OffsetRow int
	OffsetCol int
	Char      rune // 0 when the shape kept its own characters
	Origin    grid.Point
}

// Grid is a canvas that logs the shapes placed on it.
type Grid struct {
	*grid.Grid
	layers []Layer
}

// New returns a blank width×height canvas.
func New(width, height int) *Grid {
	return &Grid{Grid: grid.New(width, height)}
}

// Origin computes where shape's top-left cell lands for the given anchor
// and offsets.
//
// For [AnchorCenter] the shape's center point is aligned with the canvas
// center point. Both use floor division, so when the two differ in row or
// column parity the shape sits half a cell up or left of true center.
// Corner anchors place the shape flush against that corner.
func (c *Grid) Origin(shape *grid.Grid, anchor Anchor, offsetRow, offsetCol int) (grid.Point, error) {
	var row, col int
	switch anchor {
	case "":
		return c.Origin(shape, AnchorCenter, offsetRow, offsetCol)
	case AnchorCenter:
		cc, sc := c.CenterPoint(), shape.CenterPoint()
		row, col = cc.Row-sc.Row, cc.Col-sc.Col
	case AnchorTopLeft:
	case AnchorTopRight:
		col = c.Width() - shape.Width()
	case AnchorBottomLeft:
		row = c.Height() - shape.Height()
	case AnchorBottomRight:
		row, col = c.Height()-shape.Height(), c.Width()-shape.Width()
	default:
		return grid.Point{}, invalidAnchor(string(anchor))
	}
	return grid.Point{Row: row + offsetRow, Col: col + offsetCol}, nil
}

// AddShape overlays shape transparently at the anchored position and
// records the placement. A non-zero ch replaces the shape's own characters.
// Cells falling outside the canvas are dropped.
func (c *Grid) AddShape(shape *grid.Grid, anchor Anchor, offsetRow, offsetCol int, ch rune) error {
	origin, err := c.Origin(shape, anchor, offsetRow, offsetCol)
	if err != nil {
		return err
	}
	var opts []grid.OverlayOption
	if ch != 0 {
		opts = append(opts, grid.WithChar(ch))
	}
	c.Overlay(shape, origin.Row, origin.Col, opts...)
	c.layers = append(c.layers, Layer{
		Shape:     shape,
		Anchor:    anchor,
		OffsetRow: offsetRow,
		OffsetCol: offsetCol,
		Char:      ch,
		Origin:    origin,
	})
	return nil
}

// Layers returns a copy of the placement log, bottom layer first.
func (c *Grid) Layers() []Layer {
	return slices.Clone(c.layers)
}
