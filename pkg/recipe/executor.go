package recipe

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/asciiforge/pkg/decor"
	"github.com/matzehuels/asciiforge/pkg/errors"
	"github.com/matzehuels/asciiforge/pkg/grid"
	"github.com/matzehuels/asciiforge/pkg/shape"
)

// Symbols maps symbol names to the grids stored under them during one run.
type Symbols map[string]*grid.Grid

// Result is the outcome of a successful run.
type Result struct {
	Output     *grid.Grid
	Symbols    Symbols
	Operations int
	Duration   time.Duration
}

// Executor runs recipes. It holds only its registries and logger, so one
// Executor may serve concurrent runs; every run works on its own symbol
// table.
type Executor struct {
	shapes     *shape.Registry
	decorators *decor.Registry
	logger     *log.Logger
}

// ExecutorOption configures an [Executor].
type ExecutorOption func(*Executor)

// WithShapes sets the registry used by generate operations.
func WithShapes(r *shape.Registry) ExecutorOption {
	return func(e *Executor) { e.shapes = r }
}

// WithDecorators sets the registry used by decorate operations.
func WithDecorators(r *decor.Registry) ExecutorOption {
	return func(e *Executor) { e.decorators = r }
}

// WithLogger sets the logger. Operations are logged at debug level.
func WithLogger(l *log.Logger) ExecutorOption {
	return func(e *Executor) { e.logger = l }
}

// NewExecutor creates an executor with the built-in shapes and decorators
// and a discarding logger unless options say otherwise.
func NewExecutor(opts ...ExecutorOption) *Executor {
	e := &Executor{}
	for _, opt := range opts {
		opt(e)
	}
	if e.shapes == nil {
		e.shapes = shape.Builtins()
	}
	if e.decorators == nil {
		e.decorators = decor.Builtins()
	}
	if e.logger == nil {
		e.logger = log.New(io.Discard)
	}
	return e
}

// Execute runs r against a fresh symbol table.
func (e *Executor) Execute(ctx context.Context, r *Recipe) (*Result, error) {
	return e.Run(ctx, r, nil)
}

// Run executes r's operations in order against symbols, which seeds the
// table with predefined grids; nil starts empty. The map passed in is not
// modified and the run's own table is returned in the Result. Overlay
// still mutates its target grid in place, seeded grids included.
//
// The first failing operation aborts the run and no Result is returned.
// A reference to a missing symbol yields a [*SymbolNotFoundError]; an
// output that no operation stored yields a [*OutputNotProducedError].
func (e *Executor) Run(ctx context.Context, r *Recipe, symbols Symbols) (*Result, error) {
	start := time.Now()
	table := make(Symbols, len(symbols)+len(r.Operations))
	for name, g := range symbols {
		table[name] = g
	}

	for i, op := range r.Operations {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		e.logger.Debug("running operation", "index", i, "op", op.Op, "store_as", op.StoreAs)

		out, err := e.apply(i, op, table)
		if err != nil {
			return nil, err
		}
		if err := errors.ValidateDimensions(out.Width(), out.Height(), shape.MaxCells); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "operation %d (%s)", i, op.Op)
		}
		table[op.StoreAs] = out
	}

	output, ok := table[r.Output]
	if !ok {
		return nil, &OutputNotProducedError{Output: r.Output}
	}

	res := &Result{
		Output:     output,
		Symbols:    table,
		Operations: len(r.Operations),
		Duration:   time.Since(start),
	}
	e.logger.Info("executed recipe",
		"operations", res.Operations,
		"output", r.Output,
		"width", output.Width(),
		"height", output.Height(),
		"duration", res.Duration)
	return res, nil
}

func (e *Executor) apply(i int, op Operation, table Symbols) (*grid.Grid, error) {
	lookup := func(name string) (*grid.Grid, error) {
		g, ok := table[name]
		if !ok {
			return nil, &SymbolNotFoundError{Index: i, Op: op.Op, Symbol: name}
		}
		return g, nil
	}
	fail := func(err error) (*grid.Grid, error) {
		code := errors.GetCode(err)
		if code == "" {
			code = errors.ErrCodeInternal
		}
		return nil, errors.Wrap(code, err, "operation %d (%s)", i, op.Op)
	}

	switch op.Op {
	case OpGenerate:
		g, err := e.shapes.Build(op.Shape, shape.Params(op.Params))
		if err != nil {
			return fail(err)
		}
		return g, nil

	case OpOverlay:
		target, err := lookup(op.Target)
		if err != nil {
			return nil, err
		}
		source, err := lookup(op.Source)
		if err != nil {
			return nil, err
		}
		opts, err := overlayOptions(op)
		if err != nil {
			return fail(err)
		}
		var pos grid.Point
		if op.Position != nil {
			pos = *op.Position
		}
		target.Overlay(source, pos.Row, pos.Col, opts...)
		return grid.Parse(target.String()), nil

	case OpClip:
		source, err := lookup(op.Source)
		if err != nil {
			return nil, err
		}
		var b Bounds
		if op.Bounds != nil {
			b = *op.Bounds
		}
		return source.Clip(b.StartRow, b.EndRow, b.StartCol, b.EndCol), nil

	case OpTransform:
		source, err := lookup(op.Source)
		if err != nil {
			return nil, err
		}
		out, err := transform(source, op)
		if err != nil {
			return fail(err)
		}
		return out, nil

	case OpTopAppend, OpBottomAppend, OpRightAppend:
		target, err := lookup(op.Target)
		if err != nil {
			return nil, err
		}
		source, err := lookup(op.Source)
		if err != nil {
			return nil, err
		}
		switch op.Op {
		case OpTopAppend:
			return target.TopAppend(source), nil
		case OpBottomAppend:
			return target.BottomAppend(source), nil
		}
		return target.RightAppend(source), nil

	case OpCenterHorizontally:
		source, err := lookup(op.Source)
		if err != nil {
			return nil, err
		}
		if err := errors.ValidateDimensions(max(op.TargetWidth, source.Width()), source.Height(), shape.MaxCells); err != nil {
			return fail(err)
		}
		return source.CenterHorizontally(op.TargetWidth), nil

	case OpDecorate:
		source, err := lookup(op.Source)
		if err != nil {
			return nil, err
		}
		out := source.Copy()
		if err := e.decorators.Apply(out, op.Decorator, decor.Params(op.Params)); err != nil {
			return fail(err)
		}
		return out, nil
	}

	return nil, &UnsupportedOperationError{Index: i, Kind: op.Op}
}

func overlayOptions(op Operation) ([]grid.OverlayOption, error) {
	var opts []grid.OverlayOption
	if op.Transparent != nil {
		opts = append(opts, grid.WithTransparent(*op.Transparent))
	}
	if op.Char != "" {
		ch, err := shape.Char(op.Char)
		if err != nil {
			return nil, err
		}
		opts = append(opts, grid.WithChar(ch))
	}
	return opts, nil
}

func transform(g *grid.Grid, op Operation) (*grid.Grid, error) {
	p, err := decodeTransformParams(op.Params)
	if err != nil {
		return nil, err
	}
	switch op.Type {
	case TransformRotate:
		return g.Rotate(p.Degrees)
	case TransformMirror:
		return g.Mirror(grid.Axis(p.Axis))
	case TransformScale:
		return g.Scale(p.Factor)
	}
	return nil, errors.New(errors.ErrCodeConfiguration, "invalid transform type: %q (must be one of: rotate, mirror, scale)", op.Type)
}
