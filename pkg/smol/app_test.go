package smol

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"smolwin/internal/config"
	"smolwin/internal/platform"
	"smolwin/internal/platform/headless"
	"smolwin/internal/render"
)

func newTestApp(t *testing.T) (*App, *headless.Backend) {
	t.Helper()
	backend := headless.New()
	cfg := config.Default()
	cfg.Backend = config.BackendHeadless
	app, err := New(backend,
		WithConfig(cfg),
		WithFont(render.BasicFont()),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	if err != nil {
		t.Fatal(err)
	}
	return app, backend
}

func mustWindow(t *testing.T, app *App, title string) *Window {
	t.Helper()
	w, err := app.NewWindow(64, 32, title)
	if err != nil {
		t.Fatal(err)
	}
	return w
}

func TestRegistryTracksLiveWindows(t *testing.T) {
	app, _ := newTestApp(t)
	a := mustWindow(t, app, "a")
	b := mustWindow(t, app, "b")
	c := mustWindow(t, app, "c")
	if app.Len() != 3 {
		t.Fatalf("expected 3 windows, got %d", app.Len())
	}

	b.Destroy()
	if app.Len() != 2 {
		t.Fatalf("expected 2 windows after destroy, got %d", app.Len())
	}
	got := app.Windows()
	if got[0] != a || got[1] != c {
		t.Fatalf("wrong windows left in registry: %v", got)
	}

	b.Destroy()
	if app.Len() != 2 {
		t.Fatalf("second destroy changed the registry: %d", app.Len())
	}
	if b.IsOpen() {
		t.Fatal("destroyed window reports open")
	}
}

func TestAnyOpenAllOpen(t *testing.T) {
	app, _ := newTestApp(t)
	if app.AnyOpen() {
		t.Fatal("AnyOpen on empty registry")
	}
	if !app.AllOpen() {
		t.Fatal("AllOpen must be vacuously true on empty registry")
	}

	first := mustWindow(t, app, "first")
	if !app.AnyOpen() || !app.AllOpen() {
		t.Fatal("single open window: expected any and all open")
	}
	first.Close()
	if app.AnyOpen() || app.AllOpen() {
		t.Fatal("single closed window: expected neither any nor all open")
	}

	second := mustWindow(t, app, "second")
	if !app.AnyOpen() {
		t.Fatal("one of two open: expected AnyOpen")
	}
	if app.AllOpen() {
		t.Fatal("one of two open: AllOpen must be false")
	}

	second.Close()
	if app.AnyOpen() || app.AllOpen() {
		t.Fatal("two closed windows: expected neither any nor all open")
	}
}

func TestAllOpenWithTwoOpenWindows(t *testing.T) {
	app, _ := newTestApp(t)
	mustWindow(t, app, "a")
	mustWindow(t, app, "b")
	if !app.AnyOpen() || !app.AllOpen() {
		t.Fatal("two open windows: expected any and all open")
	}
	app.CloseAll()
	if app.AnyOpen() {
		t.Fatal("CloseAll left a window open")
	}
	if app.Len() != 2 {
		t.Fatalf("CloseAll must not deregister, got %d", app.Len())
	}
}

func TestDisplayAllPresentsEveryWindow(t *testing.T) {
	app, backend := newTestApp(t)
	mustWindow(t, app, "a")
	mustWindow(t, app, "b")
	if err := app.DisplayAll(); err != nil {
		t.Fatal(err)
	}
	for i, nw := range backend.Windows() {
		if nw.Presents() != 1 {
			t.Fatalf("window %d presented %d times", i, nw.Presents())
		}
	}
}

func TestDisplayAfterDestroyFails(t *testing.T) {
	app, _ := newTestApp(t)
	w := mustWindow(t, app, "a")
	w.Destroy()
	if err := w.Display(); !errors.Is(err, ErrDestroyed) {
		t.Fatalf("expected ErrDestroyed, got %v", err)
	}
}

func TestPollEventScansInRegistrationOrder(t *testing.T) {
	app, backend := newTestApp(t)
	a := mustWindow(t, app, "a")
	b := mustWindow(t, app, "b")
	na, nb := backend.Windows()[0], backend.Windows()[1]

	nb.Push(platform.Event{Type: platform.EventKeyDown, Key: platform.KeyB})
	na.Push(platform.Event{Type: platform.EventKeyDown, Key: platform.KeyA})
	na.Push(platform.Event{Type: platform.EventClose})

	want := []struct {
		win *Window
		typ platform.EventType
	}{
		{a, platform.EventKeyDown},
		{a, platform.EventClose},
		{b, platform.EventKeyDown},
	}
	for i, w := range want {
		ev, ok := app.PollEvent()
		if !ok {
			t.Fatalf("event %d: queue empty", i)
		}
		if ev.Window != w.win || ev.Type != w.typ {
			t.Fatalf("event %d: got %v from %v, want %v from %v", i, ev.Type, ev.Window, w.typ, w.win)
		}
	}
	if _, ok := app.PollEvent(); ok {
		t.Fatal("expected no more events")
	}
}

func TestCloseDestroysAllWindows(t *testing.T) {
	app, backend := newTestApp(t)
	mustWindow(t, app, "a")
	mustWindow(t, app, "b")
	if err := app.Close(); err != nil {
		t.Fatal(err)
	}
	if app.Len() != 0 {
		t.Fatalf("expected empty registry, got %d", app.Len())
	}
	for _, nw := range backend.Windows() {
		if nw.IsOpen() {
			t.Fatal("native window left open")
		}
	}
}

func TestNewRejectsBadClearColor(t *testing.T) {
	cfg := config.Default()
	cfg.ClearColor = "blue"
	if _, err := New(headless.New(), WithConfig(cfg), WithFont(render.BasicFont())); err == nil {
		t.Fatal("expected bad clear color to fail")
	}
}
