package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// ErrPixelCount is returned when a pixel slice does not hold exactly 4 bytes
// per pixel of the destination rectangle.
var ErrPixelCount = errors.New("render: pixel buffer size mismatch")

type FrameBuffer struct {
	W      int
	H      int
	Pixels []uint8 // RGBA
}

func NewFrameBuffer(w, h int) *FrameBuffer {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &FrameBuffer{W: w, H: h, Pixels: make([]uint8, w*h*4)}
}

// Image aliases the pixel memory; writes through it land in fb.
func (fb *FrameBuffer) Image() *image.RGBA {
	return &image.RGBA{Pix: fb.Pixels, Stride: fb.W * 4, Rect: image.Rect(0, 0, fb.W, fb.H)}
}

func (fb *FrameBuffer) Bounds() image.Rectangle { return image.Rect(0, 0, fb.W, fb.H) }

func (fb *FrameBuffer) Clear(c color.RGBA) { fb.FillRect(0, 0, fb.W, fb.H, c) }

// FillRect paints the part of the rectangle that lies inside fb.
func (fb *FrameBuffer) FillRect(x, y, w, h int, c color.RGBA) {
	r := image.Rect(x, y, x+w, y+h).Intersect(fb.Bounds())
	if r.Empty() {
		return
	}
	for row := r.Min.Y; row < r.Max.Y; row++ {
		off := (row*fb.W + r.Min.X) * 4
		for col := 0; col < r.Dx(); col++ {
			idx := off + col*4
			fb.Pixels[idx+0] = c.R
			fb.Pixels[idx+1] = c.G
			fb.Pixels[idx+2] = c.B
			fb.Pixels[idx+3] = c.A
		}
	}
}

// Upload copies tightly packed RGBA rows into r. The rectangle must lie
// inside the buffer and pixels must be r.Dx()*r.Dy()*4 bytes long.
func (fb *FrameBuffer) Upload(pixels []uint8, r image.Rectangle) error {
	if r.Empty() || !r.In(fb.Bounds()) {
		return fmt.Errorf("render: upload rect %v outside %v", r, fb.Bounds())
	}
	if len(pixels) != r.Dx()*r.Dy()*4 {
		return fmt.Errorf("%w: got %d bytes, want %d", ErrPixelCount, len(pixels), r.Dx()*r.Dy()*4)
	}
	rowLen := r.Dx() * 4
	for row := 0; row < r.Dy(); row++ {
		dst := ((r.Min.Y+row)*fb.W + r.Min.X) * 4
		copy(fb.Pixels[dst:dst+rowLen], pixels[row*rowLen:(row+1)*rowLen])
	}
	return nil
}

// Composite blends src over fb with its top-left corner at the origin.
func (fb *FrameBuffer) Composite(src *FrameBuffer) {
	draw.Draw(fb.Image(), src.Bounds(), src.Image(), image.Point{}, draw.Over)
}

func (fb *FrameBuffer) Clone() *FrameBuffer {
	out := &FrameBuffer{W: fb.W, H: fb.H, Pixels: make([]uint8, len(fb.Pixels))}
	copy(out.Pixels, fb.Pixels)
	return out
}

// At is a convenience for tests and captures.
func (fb *FrameBuffer) At(x, y int) color.RGBA {
	if !image.Pt(x, y).In(fb.Bounds()) {
		return color.RGBA{}
	}
	i := (y*fb.W + x) * 4
	return color.RGBA{R: fb.Pixels[i], G: fb.Pixels[i+1], B: fb.Pixels[i+2], A: fb.Pixels[i+3]}
}
