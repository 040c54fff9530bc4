package composite

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/asciiforge/pkg/errors"
	"github.com/matzehuels/asciiforge/pkg/shape"
)

// Supported shape recipe formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatTOML = "toml"
)

// Placement positions a shape on the canvas.
type Placement struct {
	Anchor    string `json:"anchor,omitempty" yaml:"anchor,omitempty" toml:"anchor,omitempty"`
	OffsetRow int    `json:"offsetRow,omitempty" yaml:"offsetRow,omitempty" toml:"offsetRow,omitempty"`
	OffsetCol int    `json:"offsetCol,omitempty" yaml:"offsetCol,omitempty" toml:"offsetCol,omitempty"`
	Char      string `json:"char,omitempty" yaml:"char,omitempty" toml:"char,omitempty"`
}

// ShapeSpec declares one shape and where it goes.
type ShapeSpec struct {
	Type      string         `json:"type" yaml:"type" toml:"type"`
	Params    map[string]any `json:"params,omitempty" yaml:"params,omitempty" toml:"params,omitempty"`
	Placement Placement      `json:"placement" yaml:"placement" toml:"placement"`
}

// Recipe is a declarative canvas: dimensions plus shapes in z-order.
type Recipe struct {
	Width  int         `json:"width" yaml:"width" toml:"width"`
	Height int         `json:"height" yaml:"height" toml:"height"`
	Shapes []ShapeSpec `json:"shapes" yaml:"shapes" toml:"shapes"`
}

// FromRecipe builds a canvas from r, resolving each shape through shapes
// and placing it with [Grid.AddShape] in declaration order.
func FromRecipe(r Recipe, shapes *shape.Registry) (*Grid, error) {
	if err := errors.ValidateDimensions(r.Width, r.Height, shape.MaxCells); err != nil {
		return nil, err
	}
	c := New(r.Width, r.Height)
	for i, spec := range r.Shapes {
		g, err := shapes.Build(spec.Type, shape.Params(spec.Params))
		if err != nil {
			return nil, errors.Wrap(errors.GetCode(err), err, "shape %d (%s)", i, spec.Type)
		}
		anchor, err := ParseAnchor(spec.Placement.Anchor)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidAnchor, err, "shape %d (%s)", i, spec.Type)
		}
		var ch rune
		if spec.Placement.Char != "" {
			if ch, err = shape.Char(spec.Placement.Char); err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "shape %d (%s)", i, spec.Type)
			}
		}
		if err := c.AddShape(g, anchor, spec.Placement.OffsetRow, spec.Placement.OffsetCol, ch); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// DecodeRecipe parses a shape recipe in the given format.
func DecodeRecipe(data []byte, format string) (Recipe, error) {
	var r Recipe
	var err error
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(&r)
	case FormatYAML:
		err = yaml.Unmarshal(data, &r)
	case FormatTOML:
		_, err = toml.Decode(string(data), &r)
	default:
		return r, errors.New(errors.ErrCodeInvalidFormat, "unsupported shape recipe format: %q (must be one of: json, yaml, toml)", format)
	}
	if err != nil {
		return r, errors.Wrap(errors.ErrCodeInvalidRecipe, err, "decode %s shape recipe", format)
	}
	return r, nil
}

// LoadRecipe reads a shape recipe, picking the format from the file
// extension.
func LoadRecipe(path string) (Recipe, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return Recipe{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Recipe{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "read %s", path)
		}
		return Recipe{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", path)
	}
	return DecodeRecipe(data, format)
}

// FormatFromPath maps a file extension to a recipe format.
func FormatFromPath(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "cannot infer recipe format from %q (use .json, .yaml or .toml)", path)
}
