// Package recipe models and runs operation-based grid recipes.
//
// A [Recipe] is an ordered list of [Operation] values plus the name of the
// symbol to return. Operations run strictly in the order given: each one
// reads grids by symbol name and stores its result under StoreAs. There is
// no dependency resolution, so a recipe must list producers before
// consumers.
//
//	{
//	  "recipe": [
//	    {"op": "generate", "shape": "rectangle", "params": {"width": 9, "height": 5}, "storeAs": "box"},
//	    {"op": "generate", "shape": "circle", "params": {"radius": 1}, "storeAs": "dot"},
//	    {"op": "overlay", "target": "box", "source": "dot", "position": {"row": 1, "col": 3}, "storeAs": "out"}
//	  ],
//	  "output": "out"
//	}
//
// [Validate] checks a recipe's shape before execution. The [Executor] only
// checks that referenced symbols resolve while it runs.
package recipe

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/asciiforge/pkg/errors"
	"github.com/matzehuels/asciiforge/pkg/grid"
)

// Operation kinds.
const (
	OpGenerate           = "generate"
	OpOverlay            = "overlay"
	OpClip               = "clip"
	OpTransform          = "transform"
	OpTopAppend          = "topAppend"
	OpBottomAppend       = "bottomAppend"
	OpRightAppend        = "rightAppend"
	OpCenterHorizontally = "centerHorizontally"
	OpDecorate           = "decorate"
)

// Transform types.
const (
	TransformRotate = "rotate"
	TransformMirror = "mirror"
	TransformScale  = "scale"
)

// Kinds lists every operation kind the executor understands.
var Kinds = []string{
	OpGenerate, OpOverlay, OpClip, OpTransform,
	OpTopAppend, OpBottomAppend, OpRightAppend,
	OpCenterHorizontally, OpDecorate,
}

// Recipe is an ordered operation list and the symbol it produces.
type Recipe struct {
	Operations []Operation `json:"recipe" yaml:"recipe"`
	Output     string      `json:"output" yaml:"output"`
}

// Bounds selects a clip region. End coordinates are exclusive.
type Bounds struct {
	StartRow int `json:"startRow" yaml:"startRow"`
	EndRow   int `json:"endRow" yaml:"endRow"`
	StartCol int `json:"startCol" yaml:"startCol"`
	EndCol   int `json:"endCol" yaml:"endCol"`
}

// Operation is one recipe step. Op selects the kind; which other fields
// apply depends on it:
//
//	generate            Shape, Params
//	overlay             Target, Source, Position, Transparent, Char
//	clip                Source, Bounds
//	transform           Source, Type (rotate|mirror|scale), Params
//	topAppend           Target, Source
//	bottomAppend        Target, Source
//	rightAppend         Target, Source
//	centerHorizontally  Source, TargetWidth
//	decorate            Source, Decorator, Params
//
// Every kind stores its result under StoreAs.
type Operation struct {
	Op          string         `json:"op" yaml:"op"`
	Shape       string         `json:"shape,omitempty" yaml:"shape,omitempty"`
	Params      map[string]any `json:"params,omitempty" yaml:"params,omitempty"`
	Target      string         `json:"target,omitempty" yaml:"target,omitempty"`
	Source      string         `json:"source,omitempty" yaml:"source,omitempty"`
	Position    *grid.Point    `json:"position,omitempty" yaml:"position,omitempty"`
	Transparent *bool          `json:"transparent,omitempty" yaml:"transparent,omitempty"`
	Char        string         `json:"char,omitempty" yaml:"char,omitempty"`
	Bounds      *Bounds        `json:"bounds,omitempty" yaml:"bounds,omitempty"`
	Type        string         `json:"type,omitempty" yaml:"type,omitempty"`
	TargetWidth int            `json:"targetWidth,omitempty" yaml:"targetWidth,omitempty"`
	Decorator   string         `json:"decorator,omitempty" yaml:"decorator,omitempty"`
	StoreAs     string         `json:"storeAs" yaml:"storeAs"`
}

// TransformParams holds the arguments of a transform operation.
type TransformParams struct {
	Degrees int     `mapstructure:"degrees"`
	Axis    string  `mapstructure:"axis"`
	Factor  float64 `mapstructure:"factor"`
}

// Supported recipe document formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Decode parses a recipe document.
func Decode(data []byte, format string) (*Recipe, error) {
	var r Recipe
	var err error
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(&r)
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err = dec.Decode(&r)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported recipe format: %q (must be one of: json, yaml)", format)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidRecipe, err, "decode %s recipe", format)
	}
	return &r, nil
}

// Load reads a recipe file, inferring the format from its extension.
func Load(path string) (*Recipe, error) {
	var format string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		format = FormatJSON
	case ".yaml", ".yml":
		format = FormatYAML
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "cannot infer recipe format from %q (use .json, .yaml or .yml)", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "read %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", path)
	}
	return Decode(data, format)
}

// Marshal encodes r as canonical JSON. Map keys are sorted by
// encoding/json, so equal recipes encode to equal bytes.
func Marshal(r *Recipe) ([]byte, error) {
	return json.Marshal(r)
}
