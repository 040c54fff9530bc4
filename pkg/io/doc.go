// Package io exports grids to files and reads them back.
//
// # Formats
//
//   - txt: the grid's string form followed by a newline
//   - json: {"width": w, "height": h, "rows": ["...", ...]}
//   - svg: one monospace <text> element per row, spaces preserved
//
// # Export
//
// Use [Write] to encode to any io.Writer, or [Export] to write a file:
//
//	err := io.Export(g, io.FormatSVG, "banner.svg")
//
// # Import
//
// [ReadJSON] and [ReadText] decode the json and txt forms. [Import] picks
// one from the file extension. SVG is export-only.
package io
