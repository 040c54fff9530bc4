// Package decor fills the blank cells of a grid with patterns.
//
// A [Decorator] is stateless: Apply mutates the grid in place and only ever
// writes to cells that currently hold a blank, so decoration never erases
// drawn content. Decorators are looked up by name through a [Registry];
// new variants are added with [Registry.Register] without touching lookup.
//
// Built-in decorators (see [Builtins]):
//
//	solid       every blank cell becomes char
//	dots        each blank cell becomes char with probability density
//	gradient    density ramp along a horizontal, vertical or radial axis
//	diagonal    one (row+col) parity class becomes char
//	crosshatch  both parity classes, alternating two characters
package decor

import (
	"unicode/utf8"

	"github.com/mitchellh/mapstructure"

	"github.com/matzehuels/asciiforge/pkg/errors"
	"github.com/matzehuels/asciiforge/pkg/grid"
)

// Params carries loosely typed decorator arguments, as found in recipe
// documents and HTTP requests.
type Params map[string]any

// Decorator fills blank cells of a grid.
type Decorator interface {
	Apply(g *grid.Grid, params Params) error
}

// Func adapts an ordinary function to the Decorator interface.
type Func func(g *grid.Grid, params Params) error

// Apply calls f(g, params).
func (f Func) Apply(g *grid.Grid, params Params) error { return f(g, params) }

// decodeParams decodes params into out, rejecting unknown keys. Numbers
// and booleans given as strings are accepted.
func decodeParams(params Params, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		TagName:          "mapstructure",
	})
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "build params decoder")
	}
	if err := dec.Decode(map[string]any(params)); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid decorator params")
	}
	return nil
}

// charParam converts a one-character string param into a rune, falling
// back to def when the string is empty.
func charParam(name, s string, def rune) (rune, error) {
	if s == "" {
		return def, nil
	}
	if err := errors.ValidateChar(s); err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidInput, err, "param %q", name)
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, nil
}

// fillBlanks writes pick(row, col) into every blank cell for which pick
// returns ok.
func fillBlanks(g *grid.Grid, pick func(row, col int) (rune, bool)) {
	for r := 0; r < g.Height(); r++ {
		for c := 0; c < g.Width(); c++ {
			if ch, _ := g.At(r, c); ch != grid.Blank {
				continue
			}
			if ch, ok := pick(r, c); ok {
				g.Set(r, c, ch)
			}
		}
	}
}
