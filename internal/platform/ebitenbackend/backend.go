package ebitenbackend

import (
	"errors"
	"fmt"
	"image"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"smolwin/internal/platform"
	"smolwin/internal/render"
)

const (
	fallbackDesktopW = 1920
	fallbackDesktopH = 1080
)

// Backend owns ebiten's single OS window and uses it as a virtual desktop
// covering the bounding box of all panes. Every smol window is a pane drawn
// at its own position.
type Backend struct {
	panes    []*pane
	input    *input
	frame    func() error
	desktopW int
	desktopH int
	// origin is the desktop position of the ebiten window's top-left corner.
	origin image.Point
}

func New() *Backend {
	w, h := 0, 0
	if m := ebiten.Monitor(); m != nil {
		w, h = m.Size()
	}
	if w <= 0 || h <= 0 {
		w, h = fallbackDesktopW, fallbackDesktopH
	}
	b := &Backend{desktopW: w, desktopH: h}
	b.input = &input{backend: b}
	return b
}

func (b *Backend) Name() string { return "ebiten" }

func (b *Backend) DesktopSize() (int, int) { return b.desktopW, b.desktopH }

func (b *Backend) Input() platform.Input { return b.input }

func (b *Backend) CreateWindow(cfg platform.WindowConfig) (platform.Window, error) {
	p := &pane{
		backend: b,
		title:   cfg.Title,
		r:       image.Rect(cfg.X, cfg.Y, cfg.X+cfg.WidthPx, cfg.Y+cfg.HeightPx),
	}
	if !cfg.Positioned {
		p.r = image.Rect(0, 0, cfg.WidthPx, cfg.HeightPx).Add(b.nextFreeSpot())
	}
	b.panes = append(b.panes, p)
	b.relayout()
	return p, nil
}

// nextFreeSpot places unpositioned panes to the right of the existing ones.
func (b *Backend) nextFreeSpot() image.Point {
	x := 0
	for _, p := range b.panes {
		if p.r.Max.X > x {
			x = p.r.Max.X
		}
	}
	return image.Pt(x, 0)
}

func (b *Backend) bounds() image.Rectangle {
	var u image.Rectangle
	for _, p := range b.panes {
		if p.closed {
			continue
		}
		u = u.Union(p.r)
	}
	return u
}

func (b *Backend) relayout() {
	u := b.bounds()
	if u.Empty() {
		return
	}
	b.origin = u.Min
	ebiten.SetWindowSize(u.Dx(), u.Dy())
	ebiten.SetWindowPosition(u.Min.X, u.Min.Y)

	titles := make([]string, 0, len(b.panes))
	for _, p := range b.panes {
		if !p.closed && p.title != "" {
			titles = append(titles, p.title)
		}
	}
	ebiten.SetWindowTitle(strings.Join(titles, " | "))
}

func (b *Backend) Run(frame func() error) error {
	b.frame = frame
	ebiten.SetWindowClosingHandled(true)
	if err := ebiten.RunGame(b); err != nil {
		return fmt.Errorf("run game loop: %w", err)
	}
	return nil
}

func (b *Backend) Close() error {
	for _, p := range b.panes {
		p.closed = true
	}
	return nil
}

// Update implements ebiten.Game.
func (b *Backend) Update() error {
	if ebiten.IsWindowBeingClosed() {
		for _, p := range b.panes {
			if !p.closed {
				p.push(platform.Event{Type: platform.EventClose})
			}
		}
	}
	b.collectEvents()

	if b.frame == nil {
		return nil
	}
	if err := b.frame(); err != nil {
		if errors.Is(err, platform.ErrStop) {
			return ebiten.Termination
		}
		return err
	}
	if b.bounds().Empty() {
		return ebiten.Termination
	}
	return nil
}

func (b *Backend) collectEvents() {
	cursor := b.input.CursorPosition()
	target := b.paneAt(cursor)
	if target == nil {
		return
	}
	local := cursor.Sub(target.r.Min)

	for _, k := range inpututil.AppendJustPressedKeys(nil) {
		if pk, ok := fromEbitenKey[k]; ok {
			target.push(platform.Event{Type: platform.EventKeyDown, Key: pk})
		}
	}
	for _, k := range inpututil.AppendJustReleasedKeys(nil) {
		if pk, ok := fromEbitenKey[k]; ok {
			target.push(platform.Event{Type: platform.EventKeyUp, Key: pk})
		}
	}
	for pb, eb := range buttonMap {
		if inpututil.IsMouseButtonJustPressed(eb) {
			target.push(platform.Event{Type: platform.EventMouseDown, Button: platform.Button(pb), X: local.X, Y: local.Y})
		}
		if inpututil.IsMouseButtonJustReleased(eb) {
			target.push(platform.Event{Type: platform.EventMouseUp, Button: platform.Button(pb), X: local.X, Y: local.Y})
		}
	}
}

// paneAt is the open pane under p, falling back to the first open pane.
func (b *Backend) paneAt(p image.Point) *pane {
	var first *pane
	for _, pn := range b.panes {
		if pn.closed {
			continue
		}
		if p.In(pn.r) {
			return pn
		}
		if first == nil {
			first = pn
		}
	}
	return first
}

// Draw implements ebiten.Game.
func (b *Backend) Draw(screen *ebiten.Image) {
	for _, p := range b.panes {
		if p.closed {
			continue
		}
		p.upload()
		if p.img == nil {
			continue
		}
		op := &ebiten.DrawImageOptions{}
		at := p.r.Min.Sub(b.origin)
		op.GeoM.Translate(float64(at.X), float64(at.Y))
		screen.DrawImage(p.img, op)
	}
}

// Layout implements ebiten.Game.
func (b *Backend) Layout(outsideWidth, outsideHeight int) (int, int) {
	u := b.bounds()
	if u.Empty() {
		return outsideWidth, outsideHeight
	}
	return u.Dx(), u.Dy()
}

type pane struct {
	backend *Backend
	title   string
	r       image.Rectangle
	closed  bool
	events  []platform.Event

	// pending holds the last presented frame until Draw uploads it.
	pending *render.FrameBuffer
	dirty   bool
	img     *ebiten.Image
}

func (p *pane) push(ev platform.Event) { p.events = append(p.events, ev) }

func (p *pane) PollEvent() (platform.Event, bool) {
	if len(p.events) == 0 {
		return platform.Event{}, false
	}
	ev := p.events[0]
	p.events = p.events[1:]
	return ev, true
}

func (p *pane) IsOpen() bool { return !p.closed }

func (p *pane) SizePx() (int, int) { return p.r.Dx(), p.r.Dy() }

func (p *pane) SetSize(w, h int) error {
	p.r.Max = p.r.Min.Add(image.Pt(w, h))
	p.backend.relayout()
	return nil
}

func (p *pane) SetPosition(x, y int) error {
	p.r = p.r.Sub(p.r.Min).Add(image.Pt(x, y))
	p.backend.relayout()
	return nil
}

func (p *pane) SetTitle(title string) {
	p.title = title
	p.backend.relayout()
}

func (p *pane) Present(fb *render.FrameBuffer) error {
	if p.closed {
		return nil
	}
	if p.pending == nil || p.pending.W != fb.W || p.pending.H != fb.H {
		p.pending = fb.Clone()
	} else {
		copy(p.pending.Pixels, fb.Pixels)
	}
	p.dirty = true
	return nil
}

func (p *pane) upload() {
	if !p.dirty {
		return
	}
	p.dirty = false
	if p.img == nil || p.img.Bounds().Dx() != p.pending.W || p.img.Bounds().Dy() != p.pending.H {
		p.img = ebiten.NewImage(p.pending.W, p.pending.H)
	}
	p.img.WritePixels(p.pending.Pixels)
}

func (p *pane) Close() {
	if p.closed {
		return
	}
	p.closed = true
	p.backend.relayout()
}

type input struct {
	backend *Backend
}

// Sample is a no-op: ebiten refreshes device state once per tick.
func (in *input) Sample() {}

func (in *input) IsKeyPressed(k platform.Key) bool {
	ek, ok := toEbitenKey[k]
	return ok && ebiten.IsKeyPressed(ek)
}

func (in *input) IsButtonPressed(b platform.Button) bool {
	if !b.Valid() {
		return false
	}
	return ebiten.IsMouseButtonPressed(buttonMap[b])
}

// CursorPosition is in desktop coordinates.
func (in *input) CursorPosition() image.Point {
	x, y := ebiten.CursorPosition()
	return image.Pt(x, y).Add(in.backend.origin)
}

func (in *input) SetCursorPosition(image.Point) error {
	return platform.ErrUnsupported
}
