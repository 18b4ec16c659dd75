package render

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// lineProbe is measured to get the height of one line of text.
const lineProbe = "fox"

type Font struct {
	face font.Face
}

func NewFont(face font.Face) *Font {
	if face == nil {
		face = basicfont.Face7x13
	}
	return &Font{face: face}
}

// BasicFont is the fixed 7x13 bitmap face. It needs no parsing, which makes
// it the font of choice for tests.
func BasicFont() *Font { return NewFont(basicfont.Face7x13) }

// LoadFont parses a TrueType/OpenType file at size pixels. An empty path
// selects the embedded Go Regular face.
func LoadFont(path string, size int) (*Font, error) {
	data := goregular.TTF
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read font: %w", err)
		}
		data = b
	}
	parsed, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{Size: float64(size), DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return nil, fmt.Errorf("create font face: %w", err)
	}
	return NewFont(face), nil
}

// LineHeight is the height of the bounding box of a short probe string.
func (f *Font) LineHeight() int {
	b, _ := font.BoundString(f.face, lineProbe)
	return (b.Max.Y - b.Min.Y).Ceil()
}

// Width is the widest line of s in pixels.
func (f *Font) Width(s string) int {
	widest := 0
	for _, line := range strings.Split(s, "\n") {
		if w := measure(f.face, line); w > widest {
			widest = w
		}
	}
	return widest
}

func measure(face font.Face, s string) int {
	if s == "" {
		return 0
	}
	adv := font.MeasureString(face, s)
	px := (int(adv) + 32) >> 6
	if px < 0 {
		px = 0
	}
	return px
}

// DrawText renders s with its first line's top-left at origin. Every further
// line starts at origin.X, lineStep pixels below the previous one.
func (f *Font) DrawText(fb *FrameBuffer, s string, origin image.Point, lineStep int, c color.Color) {
	ascent := f.face.Metrics().Ascent
	d := &font.Drawer{Dst: fb.Image(), Src: image.NewUniform(c), Face: f.face}
	for i, line := range strings.Split(s, "\n") {
		if line == "" {
			continue
		}
		top := fixed.I(origin.Y + i*lineStep)
		d.Dot = fixed.Point26_6{X: fixed.I(origin.X), Y: top + ascent}
		d.DrawString(line)
	}
}
