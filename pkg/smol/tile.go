package smol

import (
	"fmt"
	"image"
)

// Span is an inclusive range of grid cells along one axis.
type Span struct {
	From int
	To   int
}

// Cell is the span covering the single cell i.
func Cell(i int) Span { return Span{From: i, To: i} }

func (s Span) Len() int { return s.To - s.From + 1 }

// Tile places a window on the desktop split into Cols x Rows cells, in the
// manner of a plot grid: X and Y pick the cells the window covers.
type Tile struct {
	Cols int
	Rows int
	X    Span
	Y    Span
}

func (t Tile) Validate() error {
	if t.Cols <= 0 || t.Rows <= 0 {
		return fmt.Errorf("%w: grid %dx%d", ErrInvalidTile, t.Cols, t.Rows)
	}
	if err := t.X.check(t.Cols, "x"); err != nil {
		return err
	}
	return t.Y.check(t.Rows, "y")
}

func (s Span) check(n int, axis string) error {
	if s.From < 0 || s.To >= n || s.From > s.To {
		return fmt.Errorf("%w: %s cells [%d,%d] outside [0,%d)", ErrInvalidTile, axis, s.From, s.To, n)
	}
	return nil
}

// Geometry computes the window's client area. The taskbar is reserved at
// the bottom of the desktop, and each window gives titleBar pixels of its
// cells to the decoration above the client area.
func (t Tile) Geometry(desktopW, desktopH, taskbar, titleBar int) (image.Rectangle, error) {
	if err := t.Validate(); err != nil {
		return image.Rectangle{}, err
	}
	cellW := desktopW / t.Cols
	cellH := (desktopH - taskbar) / t.Rows

	w := cellW * t.X.Len()
	h := cellH*t.Y.Len() - titleBar
	if w <= 0 || h <= 0 {
		return image.Rectangle{}, fmt.Errorf("%w: cells too small for %dx%d desktop", ErrInvalidTile, desktopW, desktopH)
	}
	x := cellW * t.X.From
	y := cellH*t.Y.From + titleBar
	return image.Rect(x, y, x+w, y+h), nil
}
