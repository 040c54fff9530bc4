package io

import (
	"encoding/json"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/matzehuels/asciiforge/pkg/errors"
	"github.com/matzehuels/asciiforge/pkg/grid"
)

// ReadJSON decodes a grid written by [WriteJSON]. Width and height must
// agree with the rows.
func ReadJSON(r io.Reader) (*grid.Grid, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode grid JSON")
	}
	if len(doc.Rows) != doc.Height {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "height %d does not match %d rows", doc.Height, len(doc.Rows))
	}
	for i, row := range doc.Rows {
		if n := utf8.RuneCountInString(row); n != doc.Width {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "row %d has %d cells, want %d", i, n, doc.Width)
		}
	}
	if doc.Height == 0 {
		return grid.New(doc.Width, 0), nil
	}
	return grid.Parse(strings.Join(doc.Rows, "\n")), nil
}

// ReadText parses plain text into a grid. A single trailing newline is
// dropped so that [WriteText] output reads back unchanged.
func ReadText(r io.Reader) (*grid.Grid, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read text")
	}
	s := strings.TrimSuffix(string(data), "\n")
	s = strings.TrimSuffix(s, "\r")
	return grid.Parse(s), nil
}

// Import reads a grid file, choosing JSON for .json and text otherwise.
func Import(path string) (*grid.Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s", path)
	}
	defer f.Close()

	switch FormatFromPath(path) {
	case FormatJSON:
		return ReadJSON(f)
	case FormatSVG:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "cannot import SVG: %s", path)
	}
	return ReadText(f)
}
