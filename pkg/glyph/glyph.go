// Package glyph provides the block font used to render text into grids.
//
// Every glyph is exactly [Height] rows tall and drawn with '#'. The font
// covers A–Z, 0–9, space and a handful of punctuation marks. [Font]
// satisfies [grid.GlyphMap].
package glyph

import (
	"slices"
	"strings"
	"sync"

	"github.com/matzehuels/asciiforge/pkg/grid"
)

// Height is the row count shared by every glyph.
const Height = 5

var patterns = map[rune][Height]string{
	'A': {" ### ", "#   #", "#####", "#   #", "#   #"},
	'B': {"#### ", "#   #", "#### ", "#   #", "#### "},
	'C': {" ####", "#    ", "#    ", "#    ", " ####"},
	'D': {"#### ", "#   #", "#   #", "#   #", "#### "},
	'E': {"#####", "#    ", "#### ", "#    ", "#####"},
	'F': {"#####", "#    ", "#### ", "#    ", "#    "},
	'G': {" ####", "#    ", "#  ##", "#   #", " ### "},
	'H': {"#   #", "#   #", "#####", "#   #", "#   #"},
	'I': {"###", " # ", " # ", " # ", "###"},
	'J': {"  ###", "   # ", "   # ", "#  # ", " ##  "},
	'K': {"#   #", "#  # ", "###  ", "#  # ", "#   #"},
	'L': {"#    ", "#    ", "#    ", "#    ", "#####"},
	'M': {"#   #", "## ##", "# # #", "#   #", "#   #"},
	'N': {"#   #", "##  #", "# # #", "#  ##", "#   #"},
	'O': {" ### ", "#   #", "#   #", "#   #", " ### "},
	'P': {"#### ", "#   #", "#### ", "#    ", "#    "},
	'Q': {" ### ", "#   #", "# # #", "#  # ", " ## #"},
	'R': {"#### ", "#   #", "#### ", "#  # ", "#   #"},
	'S': {" ####", "#    ", " ### ", "    #", "#### "},
	'T': {"#####", "  #  ", "  #  ", "  #  ", "  #  "},
	'U': {"#   #", "#   #", "#   #", "#   #", " ### "},
	'V': {"#   #", "#   #", "#   #", " # # ", "  #  "},
	'W': {"#   #", "#   #", "# # #", "## ##", "#   #"},
	'X': {"#   #", " # # ", "  #  ", " # # ", "#   #"},
	'Y': {"#   #", " # # ", "  #  ", "  #  ", "  #  "},
	'Z': {"#####", "   # ", "  #  ", " #   ", "#####"},

	'0': {" ### ", "#  ##", "# # #", "##  #", " ### "},
	'1': {" # ", "## ", " # ", " # ", "###"},
	'2': {" ### ", "#   #", "  ## ", " #   ", "#####"},
	'3': {"#### ", "    #", " ### ", "    #", "#### "},
	'4': {"#   #", "#   #", "#####", "    #", "    #"},
	'5': {"#####", "#    ", "#### ", "    #", "#### "},
	'6': {" ### ", "#    ", "#### ", "#   #", " ### "},
	'7': {"#####", "    #", "   # ", "  #  ", "  #  "},
	'8': {" ### ", "#   #", " ### ", "#   #", " ### "},
	'9': {" ### ", "#   #", " ####", "    #", " ### "},

	' ':  {"   ", "   ", "   ", "   ", "   "},
	'!':  {"#", "#", "#", " ", "#"},
	'?':  {" ### ", "#   #", "  ## ", "     ", "  #  "},
	'.':  {" ", " ", " ", " ", "#"},
	',':  {"  ", "  ", "  ", " #", "# "},
	':':  {" ", "#", " ", "#", " "},
	'-':  {"    ", "    ", "####", "    ", "    "},
	'+':  {"     ", "  #  ", "#####", "  #  ", "     "},
	'=':  {"    ", "####", "    ", "####", "    "},
	'\'': {"#", "#", " ", " ", " "},
	'/':  {"    #", "   # ", "  #  ", " #   ", "#    "},
	'#':  {" # # ", "#####", " # # ", "#####", " # # "},
	'*':  {"     ", "# # #", " ### ", "# # #", "     "},
}

// Font is a lazily built, read-only glyph table. The zero value is ready
// to use and safe for concurrent lookups.
type Font struct {
	once   sync.Once
	glyphs map[rune]*grid.Grid
}

// Default is the shared block font.
var Default = &Font{}

func (f *Font) build() {
	f.glyphs = make(map[rune]*grid.Grid, len(patterns))
	for r, rows := range patterns {
		f.glyphs[r] = grid.Parse(strings.Join(rows[:], "\n"))
	}
}

// Glyph returns a copy of the glyph for r. Lookups are exact; callers that
// want case folding do it themselves (see [grid.Text]).
func (f *Font) Glyph(r rune) (*grid.Grid, bool) {
	f.once.Do(f.build)
	g, ok := f.glyphs[r]
	if !ok {
		return nil, false
	}
	return g.Copy(), true
}

// Supported reports whether r, or its upper-case form, has a glyph.
func (f *Font) Supported(r rune) bool {
	f.once.Do(f.build)
	if _, ok := f.glyphs[r]; ok {
		return true
	}
	_, ok := f.glyphs[toUpper(r)]
	return ok
}

// Runes returns every character the font covers, sorted.
func (f *Font) Runes() []rune {
	f.once.Do(f.build)
	out := make([]rune, 0, len(f.glyphs))
	for r := range f.glyphs {
		out = append(out, r)
	}
	slices.Sort(out)
	return out
}

// Render is shorthand for grid.Text(s, Default).
func Render(s string) *grid.Grid {
	return grid.Text(s, Default)
}

func toUpper(r rune) rune {
	if r >= 'a' && r <= 'z' {
		return r - 'a' + 'A'
	}
	return r
}
