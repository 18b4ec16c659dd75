package smol

import (
	"image"

	"smolwin/internal/platform"
)

type code interface {
	~int
}

type binding[C code] struct {
	code C
	fn   func()
}

// tracker holds the per-code signals of one input source. Tables are sized
// by the closed enumeration, so lookups are plain indexing.
type tracker[C code] struct {
	pressed []bool
	down    []bool
	up      []bool
	last    []bool

	onDown []binding[C]
	onUp   []binding[C]
	onHeld []binding[C]
}

func newTracker[C code](count C) tracker[C] {
	n := int(count)
	return tracker[C]{
		pressed: make([]bool, n),
		down:    make([]bool, n),
		up:      make([]bool, n),
		last:    make([]bool, n),
	}
}

func (t *tracker[C]) poll(held func(C) bool) {
	for i := range t.pressed {
		p := held(C(i))
		t.pressed[i] = p
		t.down[i] = p && !t.last[i]
		t.up[i] = !p && t.last[i]
		t.last[i] = p
	}
	dispatch(t.onDown, t.down)
	dispatch(t.onUp, t.up)
	dispatch(t.onHeld, t.pressed)
}

func dispatch[C code](bindings []binding[C], signal []bool) {
	for _, b := range bindings {
		if signal[b.code] {
			b.fn()
		}
	}
}

func (t *tracker[C]) valid(c C) bool { return c >= 0 && int(c) < len(t.pressed) }

func (t *tracker[C]) get(table []bool, c C) bool { return t.valid(c) && table[c] }

func (t *tracker[C]) bind(list *[]binding[C], c C, fn func()) {
	if !t.valid(c) || fn == nil {
		return
	}
	*list = append(*list, binding[C]{code: c, fn: fn})
}

func anySet(table []bool) bool {
	for _, v := range table {
		if v {
			return true
		}
	}
	return false
}

// Input is the keyboard and mouse state as of the last poll. Each poll
// compares the raw held state with the previous poll to derive the down (went
// down this poll) and up (went up this poll) edges, then fires callbacks:
// every down callback whose edge is set, then up, then pressed, each in
// registration order.
//
// Poll once per frame. A second poll in the same frame sees the first poll's
// state as "last" and drops any edge between them.
type Input struct {
	src     platform.Input
	keys    tracker[platform.Key]
	buttons tracker[platform.Button]

	mouse     image.Point
	lastMouse image.Point
	delta     image.Point
}

func newInput(src platform.Input) *Input {
	return &Input{
		src:     src,
		keys:    newTracker(platform.KeyCount),
		buttons: newTracker(platform.ButtonCount),
	}
}

func (in *Input) PollKeyboard() {
	in.src.Sample()
	in.keys.poll(in.src.IsKeyPressed)
}

// PollMouse updates position and delta, then the buttons.
func (in *Input) PollMouse() {
	in.src.Sample()
	in.mouse = in.src.CursorPosition()
	in.delta = in.mouse.Sub(in.lastMouse)
	in.lastMouse = in.mouse
	in.buttons.poll(in.src.IsButtonPressed)
}

func (in *Input) KeyPressed(k platform.Key) bool { return in.keys.get(in.keys.pressed, k) }
func (in *Input) KeyDown(k platform.Key) bool    { return in.keys.get(in.keys.down, k) }
func (in *Input) KeyUp(k platform.Key) bool      { return in.keys.get(in.keys.up, k) }

func (in *Input) AnyKeyPressed() bool { return anySet(in.keys.pressed) }
func (in *Input) AnyKeyDown() bool    { return anySet(in.keys.down) }
func (in *Input) AnyKeyUp() bool      { return anySet(in.keys.up) }

func (in *Input) ButtonPressed(b platform.Button) bool { return in.buttons.get(in.buttons.pressed, b) }
func (in *Input) ButtonDown(b platform.Button) bool    { return in.buttons.get(in.buttons.down, b) }
func (in *Input) ButtonUp(b platform.Button) bool      { return in.buttons.get(in.buttons.up, b) }

// MousePosition is in desktop coordinates.
func (in *Input) MousePosition() image.Point { return in.mouse }

// MouseDelta is the cursor movement between the last two mouse polls.
func (in *Input) MouseDelta() image.Point { return in.delta }

// SetMousePosition warps the cursor. The next poll reports the jump in its
// delta.
func (in *Input) SetMousePosition(p image.Point) error {
	return in.src.SetCursorPosition(p)
}

// Callbacks persist for the lifetime of the Input and run on the poll of
// their source. Codes outside the enumeration are ignored.

func (in *Input) OnKeyDown(k platform.Key, fn func())    { in.keys.bind(&in.keys.onDown, k, fn) }
func (in *Input) OnKeyUp(k platform.Key, fn func())      { in.keys.bind(&in.keys.onUp, k, fn) }
func (in *Input) OnKeyPressed(k platform.Key, fn func()) { in.keys.bind(&in.keys.onHeld, k, fn) }

func (in *Input) OnButtonDown(b platform.Button, fn func()) {
	in.buttons.bind(&in.buttons.onDown, b, fn)
}

func (in *Input) OnButtonUp(b platform.Button, fn func()) {
	in.buttons.bind(&in.buttons.onUp, b, fn)
}

func (in *Input) OnButtonPressed(b platform.Button, fn func()) {
	in.buttons.bind(&in.buttons.onHeld, b, fn)
}
