package smol

// Frame brackets one iteration of the main loop: BeginFrame clears every
// window and polls input, End presents every window.
type Frame struct {
	app  *App
	done bool
}

// BeginFrame clears all windows, then polls the keyboard and then the mouse.
func (a *App) BeginFrame() *Frame {
	a.ClearAll()
	a.input.PollKeyboard()
	a.input.PollMouse()
	return &Frame{app: a}
}

// End displays all windows. Only the first call has any effect.
func (f *Frame) End() error {
	if f.done {
		return nil
	}
	f.done = true
	return f.app.DisplayAll()
}

// Frame runs fn between BeginFrame and End. End runs on every exit path,
// including a panic in fn.
func (a *App) Frame(fn func() error) (err error) {
	f := a.BeginFrame()
	defer func() {
		if endErr := f.End(); err == nil {
			err = endErr
		}
	}()
	return fn()
}
