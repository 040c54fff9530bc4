package decor

import (
	"math"
	"math/rand/v2"
	"unicode/utf8"

	"github.com/matzehuels/asciiforge/pkg/errors"
	"github.com/matzehuels/asciiforge/pkg/grid"
)

// DefaultRamp is the light-to-dark density ramp used by [Gradient].
const DefaultRamp = " .:-=+*#%@"

// DefaultSeed seeds [Dots] when no seed is given, so output is reproducible.
const DefaultSeed = uint64(42)

// Gradient directions.
const (
	DirectionHorizontal = "horizontal"
	DirectionVertical   = "vertical"
	DirectionRadial     = "radial"
)

// Solid fills every blank cell with one character.
type Solid struct{}

// SolidParams configures [Solid].
type SolidParams struct {
	Char string `mapstructure:"char"`
}

// Apply implements Decorator.
func (Solid) Apply(g *grid.Grid, params Params) error {
	var p SolidParams
	if err := decodeParams(params, &p); err != nil {
		return err
	}
	ch, err := charParam("char", p.Char, '#')
	if err != nil {
		return err
	}
	fillBlanks(g, func(int, int) (rune, bool) { return ch, true })
	return nil
}

// Dots scatters a character over blank cells at random.
type Dots struct{}

// DotsParams configures [Dots]. Density is the per-cell probability in
// [0, 1]; nil means 0.3.
type DotsParams struct {
	Char    string   `mapstructure:"char"`
	Density *float64 `mapstructure:"density"`
	Seed    uint64   `mapstructure:"seed"`
}

// Apply implements Decorator.
func (Dots) Apply(g *grid.Grid, params Params) error {
	var p DotsParams
	if err := decodeParams(params, &p); err != nil {
		return err
	}
	ch, err := charParam("char", p.Char, '.')
	if err != nil {
		return err
	}
	density := 0.3
	if p.Density != nil {
		density = *p.Density
	}
	if density < 0 || density > 1 || math.IsNaN(density) {
		return errors.New(errors.ErrCodeInvalidInput, "density must be within [0, 1], got %v", density)
	}
	seed := p.Seed
	if seed == 0 {
		seed = DefaultSeed
	}
	rng := rand.New(rand.NewPCG(seed, seed^0xdeadbeef))

	fillBlanks(g, func(int, int) (rune, bool) {
		return ch, rng.Float64() < density
	})
	return nil
}

// Gradient shades blank cells from a density ramp.
type Gradient struct{}

// GradientParams configures [Gradient].
type GradientParams struct {
	Direction string `mapstructure:"direction"`
	Reverse   bool   `mapstructure:"reverse"`
	Ramp      string `mapstructure:"ramp"`
}

// Apply implements Decorator.
//
// Each cell gets a ratio in [0, 1]: its column or row position for the
// linear directions, or distance from [grid.Grid.CenterPoint] over the
// largest center-to-corner distance for radial. Reverse flips the ratio.
// The character is ramp[round(ratio × (len(ramp)−1))].
func (Gradient) Apply(g *grid.Grid, params Params) error {
	var p GradientParams
	if err := decodeParams(params, &p); err != nil {
		return err
	}
	ramp := []rune(p.Ramp)
	if len(ramp) == 0 {
		ramp = []rune(DefaultRamp)
	}
	if p.Direction == "" {
		p.Direction = DirectionHorizontal
	}

	ratio, err := gradientRatio(g, p.Direction)
	if err != nil {
		return err
	}
	last := float64(len(ramp) - 1)
	fillBlanks(g, func(r, c int) (rune, bool) {
		t := max(0, min(ratio(r, c), 1))
		if p.Reverse {
			t = 1 - t
		}
		return ramp[int(math.Floor(t*last+0.5))], true
	})
	return nil
}

func gradientRatio(g *grid.Grid, direction string) (func(r, c int) float64, error) {
	w, h := float64(g.Width()), float64(g.Height())
	switch direction {
	case DirectionHorizontal:
		return func(_, c int) float64 { return span(c, w) }, nil
	case DirectionVertical:
		return func(r, _ int) float64 { return span(r, h) }, nil
	case DirectionRadial:
		center := g.CenterPoint()
		cx, cy := float64(center.Col), float64(center.Row)
		maxDist := 0.0
		for _, corner := range [][2]float64{{0, 0}, {w - 1, 0}, {0, h - 1}, {w - 1, h - 1}} {
			maxDist = max(maxDist, math.Hypot(corner[0]-cx, corner[1]-cy))
		}
		return func(r, c int) float64 {
			if maxDist == 0 {
				return 0
			}
			return math.Hypot(float64(c)-cx, float64(r)-cy) / maxDist
		}, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidInput,
		"invalid gradient direction: %q (must be one of: horizontal, vertical, radial)", direction)
}

// span maps i in [0, n) onto [0, 1].
func span(i int, n float64) float64 {
	if n <= 1 {
		return 0
	}
	return float64(i) / (n - 1)
}

// Diagonal marks blank cells whose row+col is even.
type Diagonal struct{}

// DiagonalParams configures [Diagonal].
type DiagonalParams struct {
	Char string `mapstructure:"char"`
}

// Apply implements Decorator.
func (Diagonal) Apply(g *grid.Grid, params Params) error {
	var p DiagonalParams
	if err := decodeParams(params, &p); err != nil {
		return err
	}
	ch, err := charParam("char", p.Char, '/')
	if err != nil {
		return err
	}
	fillBlanks(g, func(r, c int) (rune, bool) {
		return ch, (r+c)%2 == 0
	})
	return nil
}

// Crosshatch fills every blank cell, alternating two characters by
// (row+col) parity.
type Crosshatch struct{}

// CrosshatchParams configures [Crosshatch]. Chars holds exactly two
// characters: the even-parity one, then the odd-parity one.
type CrosshatchParams struct {
	Chars string `mapstructure:"chars"`
}

// Apply implements Decorator.
func (Crosshatch) Apply(g *grid.Grid, params Params) error {
	var p CrosshatchParams
	if err := decodeParams(params, &p); err != nil {
		return err
	}
	chars := []rune(`/\`)
	if p.Chars != "" {
		if utf8.RuneCountInString(p.Chars) != 2 {
			return errors.New(errors.ErrCodeInvalidInput, "crosshatch chars must be exactly two characters, got %q", p.Chars)
		}
		chars = []rune(p.Chars)
	}
	fillBlanks(g, func(r, c int) (rune, bool) {
		return chars[(r+c)%2], true
	})
	return nil
}
