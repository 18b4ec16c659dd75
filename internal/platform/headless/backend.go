package headless

import (
	"errors"
	"image"

	"smolwin/internal/platform"
	"smolwin/internal/render"
)

const (
	DefaultDesktopWidth  = 1920
	DefaultDesktopHeight = 1080
)

// Backend keeps windows in memory: each holds its last presented frame and an
// event queue, and input is whatever the caller scripts.
type Backend struct {
	desktopW int
	desktopH int
	windows  []*Window
	input    *Input
	// MaxFrames bounds Run; zero means until the frame func stops it.
	MaxFrames int
}

func New() *Backend { return NewWithDesktop(DefaultDesktopWidth, DefaultDesktopHeight) }

func NewWithDesktop(w, h int) *Backend {
	return &Backend{desktopW: w, desktopH: h, input: &Input{}}
}

func (b *Backend) Name() string { return "headless" }

func (b *Backend) DesktopSize() (int, int) { return b.desktopW, b.desktopH }

func (b *Backend) CreateWindow(cfg platform.WindowConfig) (platform.Window, error) {
	w := &Window{
		title: cfg.Title,
		w:     cfg.WidthPx,
		h:     cfg.HeightPx,
		x:     cfg.X,
		y:     cfg.Y,
	}
	b.windows = append(b.windows, w)
	return w, nil
}

// Windows lists every window ever created, in creation order.
func (b *Backend) Windows() []*Window { return b.windows }

func (b *Backend) Input() platform.Input { return b.input }

// Keys exposes the scriptable input state.
func (b *Backend) Keys() *Input { return b.input }

func (b *Backend) Run(frame func() error) error {
	for n := 0; b.MaxFrames == 0 || n < b.MaxFrames; n++ {
		if err := frame(); err != nil {
			if errors.Is(err, platform.ErrStop) {
				return nil
			}
			return err
		}
	}
	return nil
}

func (b *Backend) Close() error {
	for _, w := range b.windows {
		w.Close()
	}
	return nil
}

type Window struct {
	title    string
	w        int
	h        int
	x        int
	y        int
	closed   bool
	events   []platform.Event
	last     *render.FrameBuffer
	presents int
}

func (w *Window) PollEvent() (platform.Event, bool) {
	if len(w.events) == 0 {
		return platform.Event{}, false
	}
	ev := w.events[0]
	w.events = w.events[1:]
	return ev, true
}

// Push queues an event for PollEvent.
func (w *Window) Push(ev platform.Event) { w.events = append(w.events, ev) }

func (w *Window) IsOpen() bool { return !w.closed }

func (w *Window) SizePx() (int, int) { return w.w, w.h }

func (w *Window) SetSize(width, height int) error {
	w.w, w.h = width, height
	return nil
}

func (w *Window) Position() image.Point { return image.Pt(w.x, w.y) }

func (w *Window) SetPosition(x, y int) error {
	w.x, w.y = x, y
	return nil
}

func (w *Window) Title() string { return w.title }

func (w *Window) SetTitle(title string) {
	w.title = title
}

func (w *Window) Present(fb *render.FrameBuffer) error {
	w.last = fb.Clone()
	w.presents++
	return nil
}

// LastFrame is a copy of the most recently presented frame, or nil.
func (w *Window) LastFrame() *render.FrameBuffer { return w.last }

func (w *Window) Presents() int { return w.presents }

func (w *Window) Close() { w.closed = true }

// Input is scripted "held" state.
type Input struct {
	keys    [platform.KeyCount]bool
	buttons [platform.ButtonCount]bool
	cursor  image.Point
	samples int
}

func (in *Input) Sample() { in.samples++ }

// Samples counts device readings taken by pollers.
func (in *Input) Samples() int { return in.samples }

func (in *Input) SetKey(k platform.Key, held bool) {
	if k.Valid() {
		in.keys[k] = held
	}
}

func (in *Input) SetButton(b platform.Button, held bool) {
	if b.Valid() {
		in.buttons[b] = held
	}
}

func (in *Input) IsKeyPressed(k platform.Key) bool {
	return k.Valid() && in.keys[k]
}

func (in *Input) IsButtonPressed(b platform.Button) bool {
	return b.Valid() && in.buttons[b]
}

func (in *Input) CursorPosition() image.Point { return in.cursor }

func (in *Input) SetCursorPosition(p image.Point) error {
	in.cursor = p
	return nil
}
