package grid

import (
	"context"
	"iter"
	"time"
)

// RowEvent reports that one row is ready, or, with Done set, that the whole
// grid has been emitted.
type RowEvent struct {
	Row  int    // row index; equals Height on the completion event
	Line string // row contents; empty on the completion event
	Done bool
}

// Rows returns a sequence of one event per row followed by a single
// completion event, with no pauses. The sequence can be ranged over any
// number of times.
func (g *Grid) Rows() iter.Seq[RowEvent] {
	return g.RowsDelayed(0)
}

// RowsDelayed is like [Grid.Rows] but sleeps for delay between successive
// row events, for animated consumers. There is no pause before the first
// row or before the completion event. Breaking out of the range loop stops
// the stream.
func (g *Grid) RowsDelayed(delay time.Duration) iter.Seq[RowEvent] {
	return g.RowsContext(context.Background(), delay)
}

// RowsContext is like [Grid.RowsDelayed] but also stops, without a
// completion event, once ctx is done.
func (g *Grid) RowsContext(ctx context.Context, delay time.Duration) iter.Seq[RowEvent] {
	return func(yield func(RowEvent) bool) {
		lines := g.Lines()
		for r, line := range lines {
			if r > 0 && delay > 0 {
				if !sleep(ctx, delay) {
					return
				}
			}
			if ctx.Err() != nil {
				return
			}
			if !yield(RowEvent{Row: r, Line: line}) {
				return
			}
		}
		yield(RowEvent{Row: len(lines), Done: true})
	}
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
