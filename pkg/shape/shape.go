// Package shape resolves shape kinds by name and builds them from loosely
// typed parameter maps.
//
// Recipes and shape recipes both describe shapes as {type, params}; a
// [Registry] turns that pair into a [grid.Grid]. The built-in kinds are
// circle, rectangle, polygon, line and text (see [Builtins]).
package shape

import (
	"slices"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/mitchellh/mapstructure"

	"github.com/matzehuels/asciiforge/pkg/errors"
	"github.com/matzehuels/asciiforge/pkg/glyph"
	"github.com/matzehuels/asciiforge/pkg/grid"
)

// MaxCells caps the size of any generated grid.
const MaxCells = 1 << 20

// Params carries loosely typed shape arguments.
type Params map[string]any

// Factory builds a grid from params.
type Factory func(params Params) (*grid.Grid, error)

// Registry maps shape kinds to factories. It is safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Builtins returns a registry holding every built-in shape kind.
func Builtins() *Registry {
	r := NewRegistry()
	r.Register("circle", buildCircle)
	r.Register("rectangle", buildRectangle)
	r.Register("polygon", buildPolygon)
	r.Register("line", buildLine)
	r.Register("text", buildText)
	return r
}

// Register adds or replaces the factory for kind.
func (r *Registry) Register(kind string, f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[kind] = f
}

// Names returns the registered kinds in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Build creates a shape of the given kind. An unknown kind fails with
// UNKNOWN_SHAPE listing every registered kind.
func (r *Registry) Build(kind string, params Params) (*grid.Grid, error) {
	r.mu.RLock()
	f, ok := r.factories[kind]
	r.mu.RUnlock()
	if !ok {
		return nil, errors.New(errors.ErrCodeUnknownShape,
			"unknown shape: %q (must be one of: %s)", kind, strings.Join(r.Names(), ", "))
	}
	return f(params)
}

// CircleParams configures the circle kind.
type CircleParams struct {
	Radius int    `mapstructure:"radius"`
	Filled bool   `mapstructure:"filled"`
	Char   string `mapstructure:"char"`
}

// RectangleParams configures the rectangle kind.
type RectangleParams struct {
	Width  int    `mapstructure:"width"`
	Height int    `mapstructure:"height"`
	Filled bool   `mapstructure:"filled"`
	Char   string `mapstructure:"char"`
}

// PolygonParams configures the polygon kind.
type PolygonParams struct {
	Sides  int    `mapstructure:"sides"`
	Radius int    `mapstructure:"radius"`
	Filled bool   `mapstructure:"filled"`
	Char   string `mapstructure:"char"`
}

// LineParams configures the line kind.
type LineParams struct {
	Start grid.Point `mapstructure:"start"`
	End   grid.Point `mapstructure:"end"`
	Char  string     `mapstructure:"char"`
}

// TextParams configures the text kind. When Char is set, every drawn glyph
// cell is stamped with it.
type TextParams struct {
	Text string `mapstructure:"text"`
	Char string `mapstructure:"char"`
}

func buildCircle(params Params) (*grid.Grid, error) {
	var p CircleParams
	if err := Decode(params, &p); err != nil {
		return nil, err
	}
	if p.Radius < 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "circle radius must be non-negative, got %d", p.Radius)
	}
	if err := errors.ValidateDimensions(2*p.Radius+1, 2*p.Radius+1, MaxCells); err != nil {
		return nil, err
	}
	ch, err := Char(p.Char)
	if err != nil {
		return nil, err
	}
	return grid.Circle(p.Radius, p.Filled, ch), nil
}

func buildRectangle(params Params) (*grid.Grid, error) {
	var p RectangleParams
	if err := Decode(params, &p); err != nil {
		return nil, err
	}
	if err := errors.ValidateDimensions(p.Width, p.Height, MaxCells); err != nil {
		return nil, err
	}
	ch, err := Char(p.Char)
	if err != nil {
		return nil, err
	}
	return grid.Rectangle(p.Width, p.Height, ch, p.Filled), nil
}

func buildPolygon(params Params) (*grid.Grid, error) {
	var p PolygonParams
	if err := Decode(params, &p); err != nil {
		return nil, err
	}
	if p.Sides < 3 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "polygon needs at least 3 sides, got %d", p.Sides)
	}
	if p.Radius <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "polygon radius must be positive, got %d", p.Radius)
	}
	if err := errors.ValidateDimensions(2*p.Radius+1, 2*p.Radius+1, MaxCells); err != nil {
		return nil, err
	}
	ch, err := Char(p.Char)
	if err != nil {
		return nil, err
	}
	return grid.Polygon(p.Sides, p.Radius, p.Filled, ch), nil
}

func buildLine(params Params) (*grid.Grid, error) {
	var p LineParams
	if err := Decode(params, &p); err != nil {
		return nil, err
	}
	for _, pt := range []grid.Point{p.Start, p.End} {
		if pt.Row < 0 || pt.Col < 0 {
			return nil, errors.New(errors.ErrCodeInvalidInput, "line endpoints must be non-negative, got (%d,%d)", pt.Row, pt.Col)
		}
	}
	if err := errors.ValidateDimensions(max(p.Start.Col, p.End.Col)+1, max(p.Start.Row, p.End.Row)+1, MaxCells); err != nil {
		return nil, err
	}
	ch, err := Char(p.Char)
	if err != nil {
		return nil, err
	}
	return grid.Line(p.Start, p.End, ch), nil
}

func buildText(params Params) (*grid.Grid, error) {
	var p TextParams
	if err := Decode(params, &p); err != nil {
		return nil, err
	}
	if p.Text == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "text must not be empty")
	}
	g := glyph.Render(p.Text)
	if p.Char == "" {
		return g, nil
	}
	ch, err := Char(p.Char)
	if err != nil {
		return nil, err
	}
	return grid.New(g.Width(), g.Height()).Overlay(g, 0, 0, grid.WithChar(ch)), nil
}

// Decode decodes params into out. Unknown keys are rejected; numbers and
// booleans given as strings are accepted.
func Decode(params Params, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "build params decoder")
	}
	if err := dec.Decode(map[string]any(params)); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid shape params")
	}
	return nil
}

// Char converts a drawing-character param to a rune, defaulting to
// [grid.DefaultChar].
func Char(s string) (rune, error) {
	if s == "" {
		return grid.DefaultChar, nil
	}
	if err := errors.ValidateChar(s); err != nil {
		return 0, err
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, nil
}
