package smol

import (
	"fmt"
	"image"
	"image/color"
	"strings"
	"time"

	"github.com/google/uuid"

	"smolwin/internal/platform"
	"smolwin/internal/render"
)

// Window is a native window with an off-screen texture, a back buffer and a
// text cursor. It stays in its App's registry until Destroy.
type Window struct {
	id     uuid.UUID
	app    *App
	native platform.Window

	texture *render.FrameBuffer
	surface *render.FrameBuffer

	font       *render.Font
	textColor  color.Color
	cursor     image.Point
	transcript strings.Builder

	frameLimit  time.Duration
	lastDisplay time.Time
	destroyed   bool
}

// NewWindow opens a window with a client area of w x h pixels. An empty
// title uses the configured default.
func (a *App) NewWindow(w, h int, title string) (*Window, error) {
	return a.openWindow(platform.WindowConfig{
		Title:    a.title(title),
		WidthPx:  w,
		HeightPx: h,
	})
}

// NewTiledWindow opens a window covering the cells picked by t.
func (a *App) NewTiledWindow(t Tile, title string) (*Window, error) {
	dw, dh := a.platform.DesktopSize()
	r, err := t.Geometry(dw, dh, a.cfg.TaskbarReserve, a.cfg.TitleBarHeight)
	if err != nil {
		return nil, err
	}
	return a.openWindow(platform.WindowConfig{
		Title:      a.title(title),
		WidthPx:    r.Dx(),
		HeightPx:   r.Dy(),
		X:          r.Min.X,
		Y:          r.Min.Y,
		Positioned: true,
	})
}

func (a *App) title(t string) string {
	if t == "" {
		return a.cfg.WindowTitle
	}
	return t
}

func (a *App) openWindow(cfg platform.WindowConfig) (*Window, error) {
	if cfg.WidthPx <= 0 || cfg.HeightPx <= 0 {
		return nil, fmt.Errorf("smol: window size %dx%d must be positive", cfg.WidthPx, cfg.HeightPx)
	}
	native, err := a.platform.CreateWindow(cfg)
	if err != nil {
		return nil, fmt.Errorf("create window: %w", err)
	}
	w := &Window{
		id:        uuid.New(),
		app:       a,
		native:    native,
		texture:   render.NewFrameBuffer(cfg.WidthPx, cfg.HeightPx),
		surface:   render.NewFrameBuffer(cfg.WidthPx, cfg.HeightPx),
		font:      a.font,
		textColor: color.White,
	}
	w.surface.Clear(a.clear)
	if a.cfg.FramerateLimit > 0 {
		w.SetFramerateLimit(a.cfg.FramerateLimit)
	}
	a.register(w)
	a.logger.Debug("window created", "window", w.id, "title", cfg.Title, "width", cfg.WidthPx, "height", cfg.HeightPx, "x", cfg.X, "y", cfg.Y)
	return w, nil
}

func (w *Window) ID() uuid.UUID { return w.id }

func (w *Window) String() string { return fmt.Sprintf("smol.Window(%s)", w.id) }

// Destroy closes the native window and removes w from the registry. Further
// calls do nothing.
func (w *Window) Destroy() {
	if w.destroyed {
		return
	}
	w.destroyed = true
	w.native.Close()
	if w.app.deregister(w) {
		w.app.logger.Debug("window destroyed", "window", w.id)
	}
}

func (w *Window) IsOpen() bool { return !w.destroyed && w.native.IsOpen() }

// Close asks the native window to close. The window stays registered.
func (w *Window) Close() { w.native.Close() }

func (w *Window) PollEvent() (platform.Event, bool) {
	if w.destroyed {
		return platform.Event{}, false
	}
	return w.native.PollEvent()
}

func (w *Window) Size() (int, int) { return w.native.SizePx() }

// SetSize resizes the native window and its back buffer. The texture keeps
// the size the window was created with.
func (w *Window) SetSize(width, height int) error {
	if err := w.native.SetSize(width, height); err != nil {
		return err
	}
	w.surface = render.NewFrameBuffer(width, height)
	w.surface.Clear(w.app.clear)
	return nil
}

func (w *Window) SetPosition(x, y int) error { return w.native.SetPosition(x, y) }

func (w *Window) SetTitle(title string) { w.native.SetTitle(title) }

// SetFramerateLimit caps how often Display returns; fps <= 0 removes the cap.
func (w *Window) SetFramerateLimit(fps int) {
	if fps <= 0 {
		w.frameLimit = 0
		return
	}
	w.frameLimit = time.Second / time.Duration(fps)
}

// SetFont replaces the font used for text. The font is shared, not owned.
func (w *Window) SetFont(f *render.Font) {
	if f != nil {
		w.font = f
	}
}

func (w *Window) SetTextColor(c color.Color) { w.textColor = c }

// Draw uploads a full-texture RGBA buffer and renders it over the back
// buffer.
func (w *Window) Draw(pixels []byte) error {
	return w.DrawRect(pixels, w.texture.Bounds())
}

// DrawRect uploads pixels into r of the texture, then renders the whole
// texture.
func (w *Window) DrawRect(pixels []byte, r image.Rectangle) error {
	if err := w.texture.Upload(pixels, r); err != nil {
		return fmt.Errorf("%w: %w", ErrPixelBuffer, err)
	}
	w.surface.Composite(w.texture)
	return nil
}

// Show is Clear, Draw and Display in one call.
func (w *Window) Show(pixels []byte) error {
	return w.ShowRect(pixels, w.texture.Bounds())
}

func (w *Window) ShowRect(pixels []byte, r image.Rectangle) error {
	w.Clear()
	if err := w.DrawRect(pixels, r); err != nil {
		return err
	}
	return w.Display()
}

// Clear resets the text cursor and fills the back buffer with the
// configured clear color.
func (w *Window) Clear() { w.ClearColor(w.app.clear) }

func (w *Window) ClearColor(c color.Color) {
	w.cursor = image.Point{}
	w.transcript.Reset()
	w.surface.Clear(color.RGBAModel.Convert(c).(color.RGBA))
}

// Display presents the back buffer, waiting first if a frame-rate limit is
// set.
func (w *Window) Display() error {
	if w.destroyed {
		return ErrDestroyed
	}
	if w.frameLimit > 0 && !w.lastDisplay.IsZero() {
		if wait := w.frameLimit - time.Since(w.lastDisplay); wait > 0 {
			time.Sleep(wait)
		}
	}
	w.lastDisplay = time.Now()
	if err := w.native.Present(w.surface); err != nil {
		w.app.logger.Error("present failed", "window", w.id, "error", err)
		return fmt.Errorf("present %s: %w", w.id, err)
	}
	return nil
}

// Capture copies the back buffer into a new image.
func (w *Window) Capture() *image.RGBA {
	img := image.NewRGBA(w.surface.Bounds())
	copy(img.Pix, w.surface.Pixels)
	return img
}
