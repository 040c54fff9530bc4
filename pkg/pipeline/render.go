package pipeline

import (
	"strconv"

	"github.com/matzehuels/asciiforge/pkg/decor"
	"github.com/matzehuels/asciiforge/pkg/grid"
	"github.com/matzehuels/asciiforge/pkg/shape"
)

// RenderShape builds req's shape and applies its transforms and decorator.
// It does not cache; see [Runner.RenderShape].
func RenderShape(shapes *shape.Registry, decorators *decor.Registry, req ShapeRequest) (*grid.Grid, error) {
	g, err := shapes.Build(req.Kind, shape.Params(req.Params))
	if err != nil {
		return nil, err
	}
	if req.Rotate != 0 {
		if g, err = g.Rotate(req.Rotate); err != nil {
			return nil, err
		}
	}
	if req.Mirror != "" {
		if g, err = g.Mirror(grid.Axis(req.Mirror)); err != nil {
			return nil, err
		}
	}
	if req.Scale != 0 && req.Scale != 1 {
		if g, err = g.Scale(req.Scale); err != nil {
			return nil, err
		}
	}
	if req.Decorator != "" {
		if err := decorators.Apply(g, req.Decorator, decor.Params(req.DecoratorParams)); err != nil {
			return nil, err
		}
	}
	return g, nil
}

func itoa(n int) string { return strconv.Itoa(n) }

func ftoa(f float64) string { return strconv.FormatFloat(f, 'g', -1, 64) }
