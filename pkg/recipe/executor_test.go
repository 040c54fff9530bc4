package recipe

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/asciiforge/pkg/errors"
	"github.com/matzehuels/asciiforge/pkg/grid"
	"github.com/matzehuels/asciiforge/pkg/shape"
)

func gen(kind string, params map[string]any, storeAs string) Operation {
	return Operation{Op: OpGenerate, Shape: kind, Params: params, StoreAs: storeAs}
}

func boxAndDot() []Operation {
	return []Operation{
		gen("rectangle", map[string]any{"width": 9, "height": 5}, "box"),
		gen("circle", map[string]any{"radius": 1}, "dot"),
	}
}

func TestExecuteOverlay(t *testing.T) {
	r := &Recipe{
		Operations: append(boxAndDot(), Operation{
			Op: OpOverlay, Target: "box", Source: "dot",
			Position: &grid.Point{Row: 1, Col: 3}, StoreAs: "out",
		}),
		Output: "out",
	}

	res, err := NewExecutor().Execute(context.Background(), r)
	require.NoError(t, err)
	assert.Equal(t, "*********\n*   *   *\n*  * *  *\n*   *   *\n*********", res.Output.String())
	assert.Equal(t, 3, res.Operations)

	// The target was mutated in place, but the stored result is a
	// separate value.
	box := res.Symbols["box"]
	assert.True(t, box.Equal(res.Output))
	assert.NotSame(t, box, res.Output)
	res.Output.Set(0, 0, 'x')
	ch, _ := box.At(0, 0)
	assert.Equal(t, '*', ch)
}

func TestExecuteOverlayOptions(t *testing.T) {
	transparent := false
	r := &Recipe{
		Operations: []Operation{
			gen("rectangle", map[string]any{"width": 3, "height": 3, "filled": true, "char": "#"}, "bg"),
			gen("rectangle", map[string]any{"width": 3, "height": 3}, "frame"),
			{Op: OpOverlay, Target: "bg", Source: "frame", Transparent: &transparent, Char: "o", StoreAs: "out"},
		},
		Output: "out",
	}
	res, err := NewExecutor().Execute(context.Background(), r)
	require.NoError(t, err)
	assert.Equal(t, "ooo\nooo\nooo", res.Output.String())
}

func TestExecuteRejectsOversizedResults(t *testing.T) {
	big := gen("rectangle", map[string]any{"width": 1000, "height": 1000, "filled": true}, "big")
	tests := []struct {
		name string
		op   Operation
	}{
		{"scale", Operation{Op: OpTransform, Source: "big", Type: TransformScale, Params: map[string]any{"factor": 2}, StoreAs: "out"}},
		{"right append", Operation{Op: OpRightAppend, Target: "big", Source: "big", StoreAs: "out"}},
		{"bottom append", Operation{Op: OpBottomAppend, Target: "big", Source: "big", StoreAs: "out"}},
		{"center", Operation{Op: OpCenterHorizontally, Source: "big", TargetWidth: 1 << 30, StoreAs: "out"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &Recipe{Operations: []Operation{big, tt.op}, Output: "out"}
			res, err := NewExecutor().Execute(context.Background(), r)
			require.Error(t, err)
			assert.Nil(t, res)
			assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput), "code = %s", errors.GetCode(err))
			assert.Contains(t, err.Error(), "operation 1")
		})
	}
}

func TestExecutePureOperations(t *testing.T) {
	tests := []struct {
		name string
		ops  []Operation
		want string
	}{
		{
			name: "clip",
			ops: []Operation{
				gen("rectangle", map[string]any{"width": 5, "height": 3}, "a"),
				{Op: OpClip, Source: "a", Bounds: &Bounds{StartRow: 0, EndRow: 2, StartCol: 0, EndCol: 2}, StoreAs: "out"},
			},
			want: "**\n* ",
		},
		{
			name: "rotate",
			ops: []Operation{
				gen("line", map[string]any{"start": map[string]any{"row": 0, "col": 0}, "end": map[string]any{"row": 0, "col": 2}}, "a"),
				{Op: OpTransform, Source: "a", Type: TransformRotate, Params: map[string]any{"degrees": 90}, StoreAs: "out"},
			},
			want: "*\n*\n*",
		},
		{
			name: "mirror",
			ops: []Operation{
				gen("line", map[string]any{"start": map[string]any{"row": 0, "col": 0}, "end": map[string]any{"row": 2, "col": 2}}, "a"),
				{Op: OpTransform, Source: "a", Type: TransformMirror, Params: map[string]any{"axis": "horizontal"}, StoreAs: "out"},
			},
			want: "  *\n * \n*  ",
		},
		{
			name: "scale",
			ops: []Operation{
				gen("rectangle", map[string]any{"width": 1, "height": 1}, "a"),
				{Op: OpTransform, Source: "a", Type: TransformScale, Params: map[string]any{"factor": 2}, StoreAs: "out"},
			},
			want: "**\n**",
		},
		{
			name: "topAppend",
			ops: []Operation{
				gen("rectangle", map[string]any{"width": 3, "height": 1, "char": "a"}, "a"),
				gen("rectangle", map[string]any{"width": 1, "height": 1, "char": "b"}, "b"),
				{Op: OpTopAppend, Target: "a", Source: "b", StoreAs: "out"},
			},
			want: "b  \naaa",
		},
		{
			name: "bottomAppend",
			ops: []Operation{
				gen("rectangle", map[string]any{"width": 3, "height": 1, "char": "a"}, "a"),
				gen("rectangle", map[string]any{"width": 1, "height": 1, "char": "b"}, "b"),
				{Op: OpBottomAppend, Target: "a", Source: "b", StoreAs: "out"},
			},
			want: "aaa\nb  ",
		},
		{
			name: "rightAppend",
			ops: []Operation{
				gen("rectangle", map[string]any{"width": 1, "height": 2, "char": "a"}, "a"),
				gen("rectangle", map[string]any{"width": 1, "height": 1, "char": "b"}, "b"),
				{Op: OpRightAppend, Target: "a", Source: "b", StoreAs: "out"},
			},
			want: "a b\na  ",
		},
		{
			name: "centerHorizontally",
			ops: []Operation{
				gen("rectangle", map[string]any{"width": 2, "height": 1}, "a"),
				{Op: OpCenterHorizontally, Source: "a", TargetWidth: 6, StoreAs: "out"},
			},
			want: "  **  ",
		},
		{
			name: "decorate",
			ops: []Operation{
				gen("rectangle", map[string]any{"width": 4, "height": 3}, "a"),
				{Op: OpDecorate, Source: "a", Decorator: "solid", Params: map[string]any{"char": "."}, StoreAs: "out"},
			},
			want: "****\n*..*\n****",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := NewExecutor().Execute(context.Background(), &Recipe{Operations: tt.ops, Output: "out"})
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Output.String())
		})
	}
}

func TestDecorateLeavesSourceUntouched(t *testing.T) {
	r := &Recipe{
		Operations: []Operation{
			gen("rectangle", map[string]any{"width": 3, "height": 3}, "a"),
			{Op: OpDecorate, Source: "a", Decorator: "solid", StoreAs: "out"},
		},
		Output: "out",
	}
	res, err := NewExecutor().Execute(context.Background(), r)
	require.NoError(t, err)
	assert.Equal(t, "***\n* *\n***", res.Symbols["a"].String())
}

// countingShapes returns a registry whose "dot" kind counts invocations.
func countingShapes(calls *int) *shape.Registry {
	reg := shape.NewRegistry()
	reg.Register("dot", func(shape.Params) (*grid.Grid, error) {
		*calls++
		return grid.Parse("*"), nil
	})
	return reg
}

func TestExecuteSymbolNotFound(t *testing.T) {
	calls := 0
	exec := NewExecutor(WithShapes(countingShapes(&calls)))
	r := &Recipe{
		Operations: []Operation{
			gen("dot", nil, "a"),
			{Op: OpOverlay, Target: "a", Source: "ghost", StoreAs: "b"},
			gen("dot", nil, "c"),
		},
		Output: "c",
	}

	res, err := exec.Execute(context.Background(), r)
	require.Error(t, err)
	assert.Nil(t, res)
	assert.Contains(t, err.Error(), "ghost")
	assert.True(t, errors.Is(err, errors.ErrCodeSymbolNotFound))

	var notFound *SymbolNotFoundError
	require.True(t, stderrors.As(err, &notFound))
	assert.Equal(t, 1, notFound.Index)
	assert.Equal(t, OpOverlay, notFound.Op)
	assert.Equal(t, "ghost", notFound.Symbol)
	assert.Equal(t, 1, calls, "no operation may run after the failure")
}

func TestExecuteOutputNotProduced(t *testing.T) {
	r := &Recipe{Operations: boxAndDot(), Output: "missing"}
	_, err := NewExecutor().Execute(context.Background(), r)

	var notProduced *OutputNotProducedError
	require.True(t, stderrors.As(err, &notProduced))
	assert.Equal(t, "missing", notProduced.Output)

	var notFound *SymbolNotFoundError
	assert.False(t, stderrors.As(err, &notFound))
	assert.True(t, errors.Is(err, errors.ErrCodeOutputNotProduced))
}

func TestExecuteUnsupportedOperation(t *testing.T) {
	r := &Recipe{Operations: []Operation{{Op: "explode", StoreAs: "a"}}, Output: "a"}
	_, err := NewExecutor().Execute(context.Background(), r)

	var unsupported *UnsupportedOperationError
	require.True(t, stderrors.As(err, &unsupported))
	assert.Equal(t, "explode", unsupported.Kind)
	assert.True(t, errors.Is(err, errors.ErrCodeUnsupportedOperation))
}

func TestExecuteFailuresKeepCodes(t *testing.T) {
	tests := []struct {
		name string
		op   Operation
		code errors.Code
	}{
		{"bad scale", Operation{Op: OpTransform, Source: "a", Type: TransformScale, Params: map[string]any{"factor": 3}, StoreAs: "b"}, errors.ErrCodeConfiguration},
		{"bad rotation", Operation{Op: OpTransform, Source: "a", Type: TransformRotate, Params: map[string]any{"degrees": 45}, StoreAs: "b"}, errors.ErrCodeConfiguration},
		{"unknown shape", gen("star", nil, "b"), errors.ErrCodeUnknownShape},
		{"unknown decorator", Operation{Op: OpDecorate, Source: "a", Decorator: "sparkle", StoreAs: "b"}, errors.ErrCodeUnknownDecorator},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &Recipe{
				Operations: []Operation{gen("rectangle", map[string]any{"width": 2, "height": 2}, "a"), tt.op},
				Output:     "b",
			}
			_, err := NewExecutor().Execute(context.Background(), r)
			require.Error(t, err)
			assert.Equal(t, tt.code, errors.GetCode(err))
			assert.Contains(t, err.Error(), "operation 1")
		})
	}
}

func TestRunWithSeedSymbols(t *testing.T) {
	seed := Symbols{"logo": grid.Parse("ab")}
	r := &Recipe{
		Operations: []Operation{{Op: OpCenterHorizontally, Source: "logo", TargetWidth: 4, StoreAs: "out"}},
		Output:     "out",
	}

	res, err := NewExecutor().Run(context.Background(), r, seed)
	require.NoError(t, err)
	assert.Equal(t, " ab ", res.Output.String())
	assert.Len(t, seed, 1, "seed table must not gain entries")
	assert.Contains(t, res.Symbols, "logo")
}

func TestExecuteFreshTablePerRun(t *testing.T) {
	exec := NewExecutor()
	first := &Recipe{Operations: boxAndDot(), Output: "box"}
	_, err := exec.Execute(context.Background(), first)
	require.NoError(t, err)

	second := &Recipe{
		Operations: []Operation{{Op: OpCenterHorizontally, Source: "box", TargetWidth: 20, StoreAs: "out"}},
		Output:     "out",
	}
	_, err = exec.Execute(context.Background(), second)
	assert.True(t, errors.Is(err, errors.ErrCodeSymbolNotFound), "symbols must not leak between runs: %v", err)
}

func TestExecuteCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewExecutor().Execute(ctx, &Recipe{Operations: boxAndDot(), Output: "box"})
	assert.ErrorIs(t, err, context.Canceled)
}
