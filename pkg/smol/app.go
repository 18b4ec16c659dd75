// Package smol makes a native 2D windowing library pleasant for quick visual
// experiments: tiled windows, console-style text, raw pixel buffers and
// edge-triggered keyboard/mouse input.
//
// An App owns every piece of state: the window registry, the input snapshot
// and callbacks, and the shared font. Nothing in this package is safe for
// concurrent use; drive it from one goroutine.
package smol

import (
	"errors"
	"fmt"
	"image/color"
	"log/slog"
	"slices"

	"smolwin/internal/config"
	"smolwin/internal/platform"
	"smolwin/internal/render"
)

var (
	ErrInvalidTile = errors.New("smol: invalid tile")
	ErrPixelBuffer = errors.New("smol: pixel buffer does not match window texture")
	ErrDestroyed   = errors.New("smol: window destroyed")
	// ErrStop ends App.Run without reporting an error.
	ErrStop = platform.ErrStop
)

type App struct {
	platform platform.Platform
	cfg      config.Config
	font     *render.Font
	logger   *slog.Logger
	clear    color.RGBA

	windows []*Window
	input   *Input
}

type Option func(*App)

func WithConfig(cfg config.Config) Option {
	return func(a *App) { a.cfg = cfg }
}

// WithFont shares f between all windows instead of loading the configured
// font file.
func WithFont(f *render.Font) Option {
	return func(a *App) { a.font = f }
}

func WithLogger(l *slog.Logger) Option {
	return func(a *App) { a.logger = l }
}

func New(p platform.Platform, opts ...Option) (*App, error) {
	a := &App{
		platform: p,
		cfg:      config.Default(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}

	clear, err := a.cfg.Clear()
	if err != nil {
		return nil, err
	}
	a.clear = clear

	if a.font == nil {
		f, err := render.LoadFont(a.cfg.FontPath, a.cfg.CharacterSize)
		if err != nil {
			return nil, fmt.Errorf("load font: %w", err)
		}
		a.font = f
	}

	a.input = newInput(p.Input())
	a.logger.Debug("smol app ready", "backend", p.Name())
	return a, nil
}

func (a *App) Input() *Input { return a.input }

func (a *App) Config() config.Config { return a.cfg }

func (a *App) Font() *render.Font { return a.font }

func (a *App) DesktopSize() (int, int) { return a.platform.DesktopSize() }

// Windows returns the live windows in registration order.
func (a *App) Windows() []*Window { return slices.Clone(a.windows) }

func (a *App) Len() int { return len(a.windows) }

func (a *App) register(w *Window) {
	if slices.Contains(a.windows, w) {
		return
	}
	a.windows = append(a.windows, w)
}

// deregister removes w by identity and reports whether it was registered.
func (a *App) deregister(w *Window) bool {
	i := slices.Index(a.windows, w)
	if i < 0 {
		return false
	}
	a.windows = slices.Delete(a.windows, i, i+1)
	return true
}

// AnyOpen reports whether at least one registered window is open.
func (a *App) AnyOpen() bool {
	for _, w := range a.windows {
		if w.IsOpen() {
			return true
		}
	}
	return false
}

// AllOpen reports whether every registered window is open. It is true for an
// empty registry.
func (a *App) AllOpen() bool {
	for _, w := range a.windows {
		if !w.IsOpen() {
			return false
		}
	}
	return true
}

func (a *App) CloseAll() {
	for _, w := range a.windows {
		w.Close()
	}
}

func (a *App) ClearAll() {
	a.ClearAllColor(a.clear)
}

func (a *App) ClearAllColor(c color.Color) {
	for _, w := range a.windows {
		w.ClearColor(c)
	}
}

func (a *App) DisplayAll() error {
	var errs []error
	for _, w := range a.windows {
		if err := w.Display(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Event is a native event together with the window it was delivered to.
type Event struct {
	platform.Event
	Window *Window
}

// PollEvent returns the first pending event, scanning windows in
// registration order. A window with a steady backlog starves the windows
// registered after it.
func (a *App) PollEvent() (Event, bool) {
	for _, w := range a.windows {
		if ev, ok := w.PollEvent(); ok {
			return Event{Event: ev, Window: w}, true
		}
	}
	return Event{}, false
}

// Run drives frames on the backend's loop until no window is open or fn
// returns ErrStop.
func (a *App) Run(fn func() error) error {
	return a.platform.Run(func() error {
		if !a.AnyOpen() {
			return ErrStop
		}
		return a.Frame(fn)
	})
}

// Close destroys every window and releases the backend.
func (a *App) Close() error {
	for _, w := range slices.Clone(a.windows) {
		w.Destroy()
	}
	return a.platform.Close()
}
