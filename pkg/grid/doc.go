// Package grid implements the character buffer at the heart of asciiforge.
//
// A [Grid] is a fixed-size, row-major matrix of runes where blank cells hold
// a space. Grids are built from dimensions ([New]) or parsed from text
// ([Parse]) and are drawn into with bounds-checked writers, so rasterizers
// never need to clip first.
//
// # Rasterization
//
// [Circle], [Rectangle], [Polygon] and [Line] each return a fresh grid sized
// to the shape. [Text] concatenates block glyphs from a [GlyphMap].
//
// # Transforms
//
// [Grid.Rotate], [Grid.Mirror] and [Grid.Scale] return new grids and accept
// only a fixed set of arguments; anything else fails with an
// INVALID_CONFIGURATION error naming the rejected value.
//
// # Composition
//
// [Grid.Overlay] mutates the receiver in place. [Grid.Clip],
// [Grid.RightAppend], [Grid.TopAppend], [Grid.BottomAppend] and
// [Grid.CenterHorizontally] all return new grids.
//
// # Streaming
//
// [Grid.Rows] and [Grid.RowsDelayed] expose a grid as an iterator of row
// events for progressive display:
//
//	for ev := range g.RowsDelayed(50 * time.Millisecond) {
//	    if ev.Done {
//	        break
//	    }
//	    fmt.Println(ev.Line)
//	}
package grid
