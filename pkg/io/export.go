package io

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/asciiforge/pkg/errors"
	"github.com/matzehuels/asciiforge/pkg/grid"
)

// Export formats.
const (
	FormatText = "txt"
	FormatJSON = "json"
	FormatSVG  = "svg"
)

// Formats lists every export format.
var Formats = []string{FormatText, FormatJSON, FormatSVG}

// SVG cell metrics, in pixels.
const (
	svgCellWidth  = 9.6
	svgLineHeight = 19.2
	svgFontSize   = 16
	svgPadding    = 8
	svgFont       = "Consolas,Monaco,DejaVu Sans Mono,monospace"
)

type document struct {
	Width  int      `json:"width"`
	Height int      `json:"height"`
	Rows   []string `json:"rows"`
}

// ValidateFormat checks that format is a known export format.
func ValidateFormat(format string) error {
	switch format {
	case FormatText, FormatJSON, FormatSVG:
		return nil
	}
	return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: txt, json, svg)", format)
}

// Write encodes g in format to w.
func Write(g *grid.Grid, format string, w io.Writer) error {
	switch format {
	case FormatText:
		return WriteText(g, w)
	case FormatJSON:
		return WriteJSON(g, w)
	case FormatSVG:
		return WriteSVG(g, w)
	}
	return ValidateFormat(format)
}

// Encode is Write into a byte slice.
func Encode(g *grid.Grid, format string) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(g, format, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteText writes the grid's string form plus a trailing newline.
func WriteText(g *grid.Grid, w io.Writer) error {
	_, err := io.WriteString(w, g.String()+"\n")
	return err
}

// WriteJSON writes the grid as a JSON document. It can be re-read with
// [ReadJSON].
func WriteJSON(g *grid.Grid, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(document{Width: g.Width(), Height: g.Height(), Rows: g.Lines()})
}

// WriteSVG renders the grid as monospace text rows.
func WriteSVG(g *grid.Grid, w io.Writer) error {
	width := float64(g.Width())*svgCellWidth + 2*svgPadding
	height := float64(g.Height())*svgLineHeight + 2*svgPadding

	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%g" height="%g" viewBox="0 0 %g %g">`+"\n",
		width, height, width, height)
	fmt.Fprintf(&b, `  <rect width="100%%" height="100%%" fill="#fff"/>`+"\n")
	fmt.Fprintf(&b, `  <g font-family="%s" font-size="%d" fill="#000" xml:space="preserve">`+"\n", svgFont, svgFontSize)
	for r, line := range g.Lines() {
		if strings.TrimSpace(line) == "" {
			continue
		}
		var esc bytes.Buffer
		if err := xml.EscapeText(&esc, []byte(line)); err != nil {
			return err
		}
		y := svgPadding + float64(r+1)*svgLineHeight - svgLineHeight/4
		fmt.Fprintf(&b, `    <text x="%d" y="%g">%s</text>`+"\n", svgPadding, y, esc.String())
	}
	b.WriteString("  </g>\n</svg>\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// Export writes g to path in format, creating parent directories.
func Export(g *grid.Grid, format, path string) error {
	if err := ValidateFormat(format); err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "create %s", dir)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "create %s", path)
	}
	if err := Write(g, format, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// FormatFromPath infers the export format from a file extension,
// defaulting to txt.
func FormatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".svg":
		return FormatSVG
	}
	return FormatText
}
