package x11

import (
	"errors"
	"fmt"
	"image"
	"log/slog"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"

	"smolwin/internal/platform"
	"smolwin/internal/render"
)

// putImageHeader is the fixed size of a PutImage request in bytes.
const putImageHeader = 24

// Backend opens one native X11 window per smol window over a single
// connection. Held input state is global, not tied to the focused window.
type Backend struct {
	conn   *xgb.Conn
	screen *xproto.ScreenInfo
	// maxRequest is the largest request the server accepts, in bytes.
	maxRequest int

	wmProtocols    xproto.Atom
	wmDeleteWindow xproto.Atom

	keys    keymap
	windows map[xproto.Window]*window
	input   *input
}

func New() (*Backend, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, fmt.Errorf("connect to X server: %w", err)
	}
	setup := xproto.Setup(conn)
	screen := setup.DefaultScreen(conn)

	b := &Backend{
		conn:       conn,
		screen:     screen,
		maxRequest: int(setup.MaximumRequestLength) * 4,
		windows:    make(map[xproto.Window]*window),
	}
	b.input = &input{backend: b}

	if b.wmProtocols, err = internAtom(conn, "WM_PROTOCOLS"); err != nil {
		conn.Close()
		return nil, err
	}
	if b.wmDeleteWindow, err = internAtom(conn, "WM_DELETE_WINDOW"); err != nil {
		conn.Close()
		return nil, err
	}

	count := byte(setup.MaxKeycode - setup.MinKeycode + 1)
	mapping, err := xproto.GetKeyboardMapping(conn, setup.MinKeycode, count).Reply()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("get keyboard mapping: %w", err)
	}
	b.keys = newKeymap(setup.MinKeycode, int(mapping.KeysymsPerKeycode), mapping.Keysyms)
	return b, nil
}

func internAtom(conn *xgb.Conn, name string) (xproto.Atom, error) {
	reply, err := xproto.InternAtom(conn, false, uint16(len(name)), name).Reply()
	if err != nil {
		return 0, fmt.Errorf("intern atom %s: %w", name, err)
	}
	return reply.Atom, nil
}

func (b *Backend) Name() string { return "x11" }

func (b *Backend) DesktopSize() (int, int) {
	return int(b.screen.WidthInPixels), int(b.screen.HeightInPixels)
}

func (b *Backend) Input() platform.Input { return b.input }

func (b *Backend) CreateWindow(cfg platform.WindowConfig) (platform.Window, error) {
	wid, err := xproto.NewWindowId(b.conn)
	if err != nil {
		return nil, err
	}

	mask := uint32(xproto.EventMaskStructureNotify |
		xproto.EventMaskKeyPress |
		xproto.EventMaskKeyRelease |
		xproto.EventMaskButtonPress |
		xproto.EventMaskButtonRelease |
		xproto.EventMaskPointerMotion |
		xproto.EventMaskFocusChange)

	if err := xproto.CreateWindowChecked(b.conn, b.screen.RootDepth,
		wid, b.screen.Root,
		int16(cfg.X), int16(cfg.Y), uint16(cfg.WidthPx), uint16(cfg.HeightPx), 0,
		xproto.WindowClassInputOutput, b.screen.RootVisual,
		xproto.CwBackPixel|xproto.CwEventMask,
		[]uint32{
			b.screen.BlackPixel,
			mask,
		}).Check(); err != nil {
		return nil, fmt.Errorf("create window: %w", err)
	}

	w := &window{backend: b, wid: wid, width: cfg.WidthPx, height: cfg.HeightPx}

	// Ask the window manager for a WM_DELETE_WINDOW message instead of
	// killing the connection when the close button is hit.
	proto := make([]byte, 4)
	xgb.Put32(proto, uint32(b.wmDeleteWindow))
	if err := xproto.ChangePropertyChecked(b.conn, xproto.PropModeReplace, wid,
		b.wmProtocols, xproto.AtomAtom, 32, 1, proto).Check(); err != nil {
		xproto.DestroyWindow(b.conn, wid)
		return nil, fmt.Errorf("set WM_PROTOCOLS: %w", err)
	}
	w.SetTitle(cfg.Title)

	gc, err := xproto.NewGcontextId(b.conn)
	if err != nil {
		xproto.DestroyWindow(b.conn, wid)
		return nil, err
	}
	if err := xproto.CreateGCChecked(b.conn, gc, xproto.Drawable(wid), 0, nil).Check(); err != nil {
		xproto.DestroyWindow(b.conn, wid)
		return nil, fmt.Errorf("create gc: %w", err)
	}
	w.gc = gc

	if err := xproto.MapWindowChecked(b.conn, wid).Check(); err != nil {
		xproto.DestroyWindow(b.conn, wid)
		return nil, fmt.Errorf("map window: %w", err)
	}
	// Window managers often ignore the position passed at creation time.
	if cfg.Positioned {
		if err := w.SetPosition(cfg.X, cfg.Y); err != nil {
			slog.Debug("x11: reposition failed", "window", wid, "error", err)
		}
	}

	b.windows[wid] = w
	return w, nil
}

// Run calls frame until it fails. Event delivery is driven by PollEvent.
func (b *Backend) Run(frame func() error) error {
	for {
		if err := frame(); err != nil {
			if errors.Is(err, platform.ErrStop) {
				return nil
			}
			return err
		}
	}
}

func (b *Backend) Close() error {
	for _, w := range b.windows {
		w.Close()
	}
	b.conn.Close()
	return nil
}

// pump moves every event waiting on the connection into its window's queue.
func (b *Backend) pump() {
	for {
		ev, xerr := b.conn.PollForEvent()
		if ev == nil && xerr == nil {
			return
		}
		if xerr != nil {
			slog.Error("x11: protocol error", "error", xerr)
			continue
		}
		b.dispatch(ev)
	}
}

func (b *Backend) dispatch(ev xgb.Event) {
	switch ev := ev.(type) {
	case xproto.ClientMessageEvent:
		if w, ok := b.windows[ev.Window]; ok && ev.Type == b.wmProtocols &&
			xproto.Atom(ev.Data.Data32[0]) == b.wmDeleteWindow {
			w.push(platform.Event{Type: platform.EventClose})
		}
	case xproto.ConfigureNotifyEvent:
		if w, ok := b.windows[ev.Window]; ok {
			if int(ev.Width) != w.width || int(ev.Height) != w.height {
				w.width, w.height = int(ev.Width), int(ev.Height)
				w.push(platform.Event{Type: platform.EventResize, Width: w.width, Height: w.height})
			}
		}
	case xproto.DestroyNotifyEvent:
		if w, ok := b.windows[ev.Window]; ok {
			w.closed = true
			delete(b.windows, ev.Window)
		}
	case xproto.FocusInEvent:
		if w, ok := b.windows[ev.Event]; ok {
			w.push(platform.Event{Type: platform.EventFocusGained})
		}
	case xproto.FocusOutEvent:
		if w, ok := b.windows[ev.Event]; ok {
			w.push(platform.Event{Type: platform.EventFocusLost})
		}
	case xproto.KeyPressEvent:
		b.keyEvent(ev.Event, ev.Detail, platform.EventKeyDown)
	case xproto.KeyReleaseEvent:
		b.keyEvent(ev.Event, ev.Detail, platform.EventKeyUp)
	case xproto.ButtonPressEvent:
		b.buttonEvent(ev.Event, ev.Detail, ev.EventX, ev.EventY, platform.EventMouseDown)
	case xproto.ButtonReleaseEvent:
		b.buttonEvent(ev.Event, ev.Detail, ev.EventX, ev.EventY, platform.EventMouseUp)
	case xproto.MotionNotifyEvent:
		if w, ok := b.windows[ev.Event]; ok {
			w.push(platform.Event{Type: platform.EventMouseMove, X: int(ev.EventX), Y: int(ev.EventY)})
		}
	default:
		slog.Debug("x11: unhandled event", "event", ev)
	}
}

func (b *Backend) keyEvent(wid xproto.Window, code xproto.Keycode, typ platform.EventType) {
	w, ok := b.windows[wid]
	if !ok {
		return
	}
	k, ok := b.keys.fromCode[code]
	if !ok {
		return
	}
	w.push(platform.Event{Type: typ, Key: k})
}

func (b *Backend) buttonEvent(wid xproto.Window, detail xproto.Button, x, y int16, typ platform.EventType) {
	btn, ok := buttonFromDetail(detail)
	if !ok {
		return
	}
	// The pointer mask has no bits for the side buttons; track them here.
	if btn == platform.ButtonX1 || btn == platform.ButtonX2 {
		b.input.side[btn] = typ == platform.EventMouseDown
	}
	if w, ok := b.windows[wid]; ok {
		w.push(platform.Event{Type: typ, Button: btn, X: int(x), Y: int(y)})
	}
}

type window struct {
	backend *Backend
	wid     xproto.Window
	gc      xproto.Gcontext
	width   int
	height  int
	closed  bool
	events  []platform.Event
	scratch []byte
}

func (w *window) push(ev platform.Event) { w.events = append(w.events, ev) }

func (w *window) PollEvent() (platform.Event, bool) {
	w.backend.pump()
	if len(w.events) == 0 {
		return platform.Event{}, false
	}
	ev := w.events[0]
	w.events = w.events[1:]
	return ev, true
}

func (w *window) IsOpen() bool { return !w.closed }

func (w *window) SizePx() (int, int) { return w.width, w.height }

func (w *window) SetSize(width, height int) error {
	if err := xproto.ConfigureWindowChecked(w.backend.conn, w.wid,
		xproto.ConfigWindowWidth|xproto.ConfigWindowHeight,
		[]uint32{uint32(width), uint32(height)}).Check(); err != nil {
		return err
	}
	w.width, w.height = width, height
	return nil
}

func (w *window) SetPosition(x, y int) error {
	return xproto.ConfigureWindowChecked(w.backend.conn, w.wid,
		xproto.ConfigWindowX|xproto.ConfigWindowY,
		[]uint32{uint32(int32(x)), uint32(int32(y))}).Check()
}

func (w *window) SetTitle(title string) {
	xproto.ChangeProperty(w.backend.conn, xproto.PropModeReplace, w.wid,
		xproto.AtomWmName, xproto.AtomString, 8, uint32(len(title)), []byte(title))
}

// Present converts the frame to the server's 32-bit BGRX layout and sends it
// in row bands small enough for one PutImage request each.
func (w *window) Present(fb *render.FrameBuffer) error {
	if w.closed {
		return nil
	}
	rowBytes := fb.W * 4
	rowsPerBand := (w.backend.maxRequest - putImageHeader) / rowBytes
	if rowsPerBand < 1 {
		return fmt.Errorf("x11: window row of %d bytes exceeds request limit", rowBytes)
	}

	if cap(w.scratch) < len(fb.Pixels) {
		w.scratch = make([]byte, len(fb.Pixels))
	}
	data := w.scratch[:len(fb.Pixels)]
	for i := 0; i < len(fb.Pixels); i += 4 {
		data[i+0] = fb.Pixels[i+2]
		data[i+1] = fb.Pixels[i+1]
		data[i+2] = fb.Pixels[i+0]
		data[i+3] = 0
	}

	for y := 0; y < fb.H; y += rowsPerBand {
		rows := min(rowsPerBand, fb.H-y)
		band := data[y*rowBytes : (y+rows)*rowBytes]
		if err := xproto.PutImageChecked(w.backend.conn, xproto.ImageFormatZPixmap,
			xproto.Drawable(w.wid), w.gc, uint16(fb.W), uint16(rows), 0, int16(y), 0,
			w.backend.screen.RootDepth, band).Check(); err != nil {
			return fmt.Errorf("put image: %w", err)
		}
	}
	return nil
}

func (w *window) Close() {
	if w.closed {
		return
	}
	w.closed = true
	xproto.FreeGC(w.backend.conn, w.gc)
	xproto.DestroyWindow(w.backend.conn, w.wid)
	delete(w.backend.windows, w.wid)
}

type input struct {
	backend *Backend
	side    [platform.ButtonCount]bool

	// Last device reading, taken by Sample.
	keyBits []byte
	cursor  image.Point
	mask    uint16
}

// Sample drains pending events, then reads the keyboard and the pointer with
// one request each.
func (in *input) Sample() {
	in.backend.pump()
	conn := in.backend.conn
	if reply, err := xproto.QueryKeymap(conn).Reply(); err != nil {
		slog.Error("x11: query keymap", "error", err)
	} else {
		in.keyBits = reply.Keys
	}
	if reply, err := xproto.QueryPointer(conn, in.backend.screen.Root).Reply(); err != nil {
		slog.Error("x11: query pointer", "error", err)
	} else {
		in.cursor = image.Pt(int(reply.RootX), int(reply.RootY))
		in.mask = reply.Mask
	}
}

func (in *input) IsKeyPressed(k platform.Key) bool {
	code, ok := in.backend.keys.toCode[k]
	return ok && held(in.keyBits, code)
}

func (in *input) IsButtonPressed(b platform.Button) bool {
	if !b.Valid() {
		return false
	}
	if b == platform.ButtonX1 || b == platform.ButtonX2 {
		return in.side[b]
	}
	return in.mask&buttonMasks[b] != 0
}

func (in *input) CursorPosition() image.Point { return in.cursor }

func (in *input) SetCursorPosition(p image.Point) error {
	return xproto.WarpPointerChecked(in.backend.conn, 0, in.backend.screen.Root,
		0, 0, 0, 0, int16(p.X), int16(p.Y)).Check()
}
