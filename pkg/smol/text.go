package smol

import (
	"fmt"
	"image"
	"strings"
)

// AppendText renders s at the text cursor, console style, and moves the
// cursor past it: right by the widest rendered line, down one line step per
// line break. A break at either end of s also returns the cursor to x=0.
// Empty text leaves everything untouched. The window is returned so calls
// chain.
func (w *Window) AppendText(s string) *Window {
	if s == "" {
		return w
	}
	if s[0] == '\n' {
		w.cursor.X = 0
	}
	step := w.LineStep()
	w.font.DrawText(w.surface, s, w.cursor, step, w.textColor)
	w.cursor.X += w.font.Width(s)
	w.cursor.Y += step * strings.Count(s, "\n")
	if s[len(s)-1] == '\n' {
		w.cursor.X = 0
	}
	w.transcript.WriteString(s)
	return w
}

// Print formats its operands like fmt.Sprint and appends the result.
func (w *Window) Print(v ...any) *Window { return w.AppendText(fmt.Sprint(v...)) }

func (w *Window) Println(v ...any) *Window { return w.AppendText(fmt.Sprintln(v...)) }

func (w *Window) Printf(format string, v ...any) *Window {
	return w.AppendText(fmt.Sprintf(format, v...))
}

func (w *Window) Cursor() image.Point { return w.cursor }

func (w *Window) LineHeight() int { return w.font.LineHeight() }

// LineStep is the vertical cursor advance per line break.
func (w *Window) LineStep() int { return w.font.LineHeight() + w.app.cfg.LinePadding }

// Text returns everything appended since the last clear.
func (w *Window) Text() string { return w.transcript.String() }
