package grid

import "testing"

type stubGlyphs map[rune]*Grid

func (s stubGlyphs) Glyph(r rune) (*Grid, bool) {
	g, ok := s[r]
	return g, ok
}

func TestText(t *testing.T) {
	glyphs := stubGlyphs{
		'A': Parse("#\n#"),
		'B': Parse("##\n# "),
	}

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"two glyphs", "AB", "# ##\n# # "},
		{"lower case falls back to upper", "ab", "# ##\n# # "},
		{"unsupported skipped", "A?", "#\n#"},
		{"single", "B", "##\n# "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Text(tt.input, glyphs).String(); got != tt.want {
				t.Errorf("Text(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestTextFallsBackToSpaceGlyph(t *testing.T) {
	glyphs := stubGlyphs{
		'A': Parse("#\n#"),
		' ': New(1, 2),
	}
	got := Text("A?A", glyphs)
	if got.Width() != 5 {
		t.Errorf("Text() width = %d, want 5", got.Width())
	}
	if got.String() != "#   #\n#   #" {
		t.Errorf("Text() = %q", got)
	}
}

func TestTextEmpty(t *testing.T) {
	g := Text("", stubGlyphs{})
	if g.Width() != 0 || g.Height() != 0 {
		t.Errorf("Text(\"\") = %dx%d, want 0x0", g.Width(), g.Height())
	}
}
