package smol

import (
	"image"
	"image/color"
	"testing"
)

func TestAppendTextMovesCursor(t *testing.T) {
	app, _ := newTestApp(t)
	w := mustWindow(t, app, "console")
	f := app.Font()
	step := f.LineHeight() + app.Config().LinePadding

	w.AppendText("Rays: ")
	if w.Cursor() != image.Pt(f.Width("Rays: "), 0) {
		t.Fatalf("after label: %v", w.Cursor())
	}
	w.Print(42)
	if w.Cursor().X != f.Width("Rays: ")+f.Width("42") {
		t.Fatalf("after number: %v", w.Cursor())
	}
	w.AppendText("\n")
	if w.Cursor() != image.Pt(0, step) {
		t.Fatalf("after break: got %v want %v", w.Cursor(), image.Pt(0, step))
	}
	w.AppendText("X")
	if w.Cursor() != image.Pt(f.Width("X"), step) {
		t.Fatalf("after X: %v", w.Cursor())
	}
	if w.Text() != "Rays: 42\nX" {
		t.Fatalf("unexpected transcript %q", w.Text())
	}
}

func TestEmptyAppendIsNoOp(t *testing.T) {
	app, _ := newTestApp(t)
	a := mustWindow(t, app, "a")
	b := mustWindow(t, app, "b")

	if got := a.AppendText(""); got != a {
		t.Fatal("empty append must return the same window")
	}
	a.AppendText("A").AppendText("").AppendText("B")
	b.AppendText("A").AppendText("B")
	if a.Cursor() != b.Cursor() {
		t.Fatalf("cursor differs: %v vs %v", a.Cursor(), b.Cursor())
	}
	if a.Text() != b.Text() {
		t.Fatalf("text differs: %q vs %q", a.Text(), b.Text())
	}
	if string(a.Capture().Pix) != string(b.Capture().Pix) {
		t.Fatal("rendered pixels differ")
	}
}

func TestMultilineAppend(t *testing.T) {
	app, _ := newTestApp(t)
	w := mustWindow(t, app, "lines")
	f := app.Font()
	step := w.LineStep()

	w.AppendText("ab\nabcd\nx")
	if w.Cursor() != image.Pt(f.Width("abcd"), 2*step) {
		t.Fatalf("got %v", w.Cursor())
	}

	w.AppendText("\nq")
	if w.Cursor() != image.Pt(f.Width("q"), 3*step) {
		t.Fatalf("leading break must reset x, got %v", w.Cursor())
	}
}

func TestClearResetsCursorAndText(t *testing.T) {
	app, _ := newTestApp(t)
	w := mustWindow(t, app, "reset")
	w.Println("hello", 1)
	if w.Cursor().Y == 0 {
		t.Fatal("Println should move to the next line")
	}
	w.Clear()
	if w.Cursor() != (image.Point{}) || w.Text() != "" {
		t.Fatalf("clear left cursor %v text %q", w.Cursor(), w.Text())
	}
}

func TestAppendTextDrawsGlyphs(t *testing.T) {
	app, _ := newTestApp(t)
	w := mustWindow(t, app, "ink")
	w.Printf("%s", "W")
	img := w.Capture()
	black := color.RGBA{A: 255}
	lit := false
	for y := 0; y < 20 && !lit; y++ {
		for x := 0; x < 10; x++ {
			if img.RGBAAt(x, y) != black {
				lit = true
				break
			}
		}
	}
	if !lit {
		t.Fatal("expected glyph pixels near the origin")
	}
}
