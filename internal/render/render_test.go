package render

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

func TestUploadSubRect(t *testing.T) {
	fb := NewFrameBuffer(4, 3)
	px := []uint8{
		1, 2, 3, 255, 4, 5, 6, 255,
		7, 8, 9, 255, 10, 11, 12, 255,
	}
	if err := fb.Upload(px, image.Rect(1, 1, 3, 3)); err != nil {
		t.Fatal(err)
	}
	if got := fb.At(1, 1); got != (color.RGBA{1, 2, 3, 255}) {
		t.Fatalf("unexpected pixel at 1,1: %v", got)
	}
	if got := fb.At(2, 2); got != (color.RGBA{10, 11, 12, 255}) {
		t.Fatalf("unexpected pixel at 2,2: %v", got)
	}
	if got := fb.At(0, 0); got != (color.RGBA{}) {
		t.Fatalf("pixel outside rect touched: %v", got)
	}
}

func TestUploadRejectsBadSizes(t *testing.T) {
	fb := NewFrameBuffer(2, 2)
	err := fb.Upload(make([]uint8, 3), fb.Bounds())
	if !errors.Is(err, ErrPixelCount) {
		t.Fatalf("expected ErrPixelCount, got %v", err)
	}
	if err := fb.Upload(make([]uint8, 16), image.Rect(1, 1, 3, 3)); err == nil {
		t.Fatal("expected out of bounds rect to fail")
	}
}

func TestCompositeOverKeepsTransparentAreas(t *testing.T) {
	dst := NewFrameBuffer(2, 1)
	dst.Clear(color.RGBA{R: 9, A: 255})
	src := NewFrameBuffer(2, 1)
	src.FillRect(1, 0, 1, 1, color.RGBA{G: 200, A: 255})
	dst.Composite(src)

	if got := dst.At(0, 0); got != (color.RGBA{R: 9, A: 255}) {
		t.Fatalf("transparent source overwrote pixel: %v", got)
	}
	if got := dst.At(1, 0); got != (color.RGBA{G: 200, A: 255}) {
		t.Fatalf("opaque source not composited: %v", got)
	}
}

func TestFillRectClipsToBounds(t *testing.T) {
	fb := NewFrameBuffer(3, 3)
	fb.FillRect(-5, -5, 7, 7, color.RGBA{B: 1, A: 255})
	if got := fb.At(1, 1); got.B != 1 {
		t.Fatalf("expected fill at 1,1, got %v", got)
	}
	if got := fb.At(2, 2); got.B != 0 {
		t.Fatalf("fill leaked to 2,2: %v", got)
	}
}

func TestFontWidthUsesWidestLine(t *testing.T) {
	f := BasicFont()
	if got := f.Width("abc"); got != 21 {
		t.Fatalf("expected 21px for 3 glyphs, got %d", got)
	}
	if got := f.Width("a\nabcd\nab"); got != 28 {
		t.Fatalf("expected widest line 28px, got %d", got)
	}
	if f.LineHeight() <= 0 {
		t.Fatalf("line height must be positive, got %d", f.LineHeight())
	}
}

func TestDrawTextMarksPixels(t *testing.T) {
	f := BasicFont()
	fb := NewFrameBuffer(40, 20)
	f.DrawText(fb, "H", image.Pt(2, 2), 0, color.White)
	lit := 0
	for i := 3; i < len(fb.Pixels); i += 4 {
		if fb.Pixels[i] != 0 {
			lit++
		}
	}
	if lit == 0 {
		t.Fatal("expected glyph pixels to be drawn")
	}
}

func TestLoadFontDefaultsToGoRegular(t *testing.T) {
	f, err := LoadFont("", 24)
	if err != nil {
		t.Fatal(err)
	}
	if f.LineHeight() <= 0 || f.Width("fox") <= 0 {
		t.Fatal("expected non-empty metrics from the default face")
	}
	if _, err := LoadFont(t.TempDir()+"/missing.ttf", 12); err == nil {
		t.Fatal("expected missing font file to fail")
	}
}

func TestClearFillsEveryPixel(t *testing.T) {
	fb := NewFrameBuffer(3, 2)
	c := color.RGBA{R: 4, G: 5, B: 6, A: 7}
	fb.Clear(c)
	for y := 0; y < fb.H; y++ {
		for x := 0; x < fb.W; x++ {
			if got := fb.At(x, y); got != c {
				t.Fatalf("pixel %d,%d = %v, want %v", x, y, got, c)
			}
		}
	}
}
