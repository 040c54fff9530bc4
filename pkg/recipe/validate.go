package recipe

import (
	"slices"

	"github.com/mitchellh/mapstructure"

	"github.com/matzehuels/asciiforge/pkg/errors"
	"github.com/matzehuels/asciiforge/pkg/grid"
	"github.com/matzehuels/asciiforge/pkg/shape"
)

// Validate checks field presence, symbol names and transform arguments
// for every operation. It does not check that referenced symbols exist;
// the executor reports that at run time.
func Validate(r *Recipe) error {
	if r == nil || len(r.Operations) == 0 {
		return errors.New(errors.ErrCodeInvalidRecipe, "recipe has no operations")
	}
	if err := errors.ValidateSymbolName(r.Output); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidRecipe, err, "output")
	}
	for i, op := range r.Operations {
		if err := validateOperation(op); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidRecipe, err, "operation %d (%s)", i, op.Op)
		}
	}
	return nil
}

func validateOperation(op Operation) error {
	if op.Op == "" {
		return errors.New(errors.ErrCodeInvalidRecipe, "missing op")
	}
	if !slices.Contains(Kinds, op.Op) {
		return errors.New(errors.ErrCodeInvalidRecipe, "unknown op %q", op.Op)
	}
	if err := errors.ValidateSymbolName(op.StoreAs); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidRecipe, err, "storeAs")
	}
	if err := errors.ValidateChar(op.Char); err != nil {
		return err
	}

	switch op.Op {
	case OpGenerate:
		return requireField("shape", op.Shape)
	case OpOverlay, OpTopAppend, OpBottomAppend, OpRightAppend:
		return symbols(op.Target, op.Source)
	case OpClip:
		if op.Bounds == nil {
			return errors.New(errors.ErrCodeInvalidRecipe, "missing bounds")
		}
		return symbols(op.Source)
	case OpTransform:
		if err := symbols(op.Source); err != nil {
			return err
		}
		p, err := decodeTransformParams(op.Params)
		if err != nil {
			return err
		}
		return validateTransform(op.Type, p)
	case OpCenterHorizontally:
		if op.TargetWidth <= 0 || op.TargetWidth > shape.MaxCells {
			return errors.New(errors.ErrCodeInvalidRecipe, "targetWidth must be within [1, %d], got %d", shape.MaxCells, op.TargetWidth)
		}
		return symbols(op.Source)
	case OpDecorate:
		if err := requireField("decorator", op.Decorator); err != nil {
			return err
		}
		return symbols(op.Source)
	}
	return nil
}

func requireField(field, value string) error {
	if value == "" {
		return errors.New(errors.ErrCodeInvalidRecipe, "missing %s", field)
	}
	return nil
}

func symbols(names ...string) error {
	for _, name := range names {
		if err := errors.ValidateSymbolName(name); err != nil {
			return err
		}
	}
	return nil
}

func validateTransform(kind string, p TransformParams) error {
	switch kind {
	case TransformRotate:
		if !slices.Contains([]int{90, 180, 270}, p.Degrees) {
			return errors.New(errors.ErrCodeConfiguration, "invalid rotation: %d degrees (must be 90, 180 or 270)", p.Degrees)
		}
	case TransformMirror:
		if p.Axis != string(grid.AxisHorizontal) && p.Axis != string(grid.AxisVertical) {
			return errors.New(errors.ErrCodeConfiguration, "invalid mirror axis: %q (must be horizontal or vertical)", p.Axis)
		}
	case TransformScale:
		if p.Factor != 0.5 && p.Factor != 2 {
			return errors.New(errors.ErrCodeConfiguration, "invalid scale factor: %v (must be 0.5 or 2)", p.Factor)
		}
	default:
		return errors.New(errors.ErrCodeInvalidRecipe, "unknown transform type %q (must be one of: rotate, mirror, scale)", kind)
	}
	return nil
}

func decodeTransformParams(params map[string]any) (TransformParams, error) {
	var p TransformParams
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &p,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return p, errors.Wrap(errors.ErrCodeInternal, err, "build params decoder")
	}
	if err := dec.Decode(params); err != nil {
		return p, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid transform params")
	}
	return p, nil
}
