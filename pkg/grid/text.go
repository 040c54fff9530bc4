package grid

import "unicode"

// GlyphMap looks up the block glyph for a single character.
// Implementations return glyphs of one fixed height.
type GlyphMap interface {
	Glyph(r rune) (*Grid, bool)
}

// Text renders s as block letters by concatenating glyphs left to right
// with a one-column blank separator.
//
// Lookups try the character as given, then its upper-case form, then the
// space glyph. Characters with none of those are skipped.
func Text(s string, glyphs GlyphMap) *Grid {
	var parts []*Grid
	height := 0
	for _, r := range s {
		gl, ok := lookupGlyph(glyphs, r)
		if !ok {
			continue
		}
		parts = append(parts, gl)
		height = max(height, gl.height)
	}

	width := 0
	for i, p := range parts {
		if i > 0 {
			width++
		}
		width += p.width
	}

	out := New(width, height)
	col := 0
	for _, p := range parts {
		for r := 0; r < p.height; r++ {
			copy(out.cells[r][col:], p.cells[r])
		}
		col += p.width + 1
	}
	return out
}

func lookupGlyph(glyphs GlyphMap, r rune) (*Grid, bool) {
	if gl, ok := glyphs.Glyph(r); ok {
		return gl, true
	}
	if up := unicode.ToUpper(r); up != r {
		if gl, ok := glyphs.Glyph(up); ok {
			return gl, true
		}
	}
	return glyphs.Glyph(' ')
}
