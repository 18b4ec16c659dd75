package platform

import (
	"errors"
	"image"

	"smolwin/internal/render"
)

var (
	ErrUnsupported = errors.New("platform: operation not supported by backend")
	ErrStop        = errors.New("platform: stop")
)

type WindowConfig struct {
	Title    string
	WidthPx  int
	HeightPx int
	X        int
	Y        int
	// Positioned is false when the window manager should pick the position.
	Positioned bool
}

type EventType int

const (
	EventUnknown EventType = iota
	EventClose
	EventResize
	EventFocusGained
	EventFocusLost
	EventKeyDown
	EventKeyUp
	EventMouseMove
	EventMouseDown
	EventMouseUp
)

func (t EventType) String() string {
	switch t {
	case EventClose:
		return "close"
	case EventResize:
		return "resize"
	case EventFocusGained:
		return "focus-gained"
	case EventFocusLost:
		return "focus-lost"
	case EventKeyDown:
		return "key-down"
	case EventKeyUp:
		return "key-up"
	case EventMouseMove:
		return "mouse-move"
	case EventMouseDown:
		return "mouse-down"
	case EventMouseUp:
		return "mouse-up"
	default:
		return "unknown"
	}
}

type Event struct {
	Type   EventType
	Width  int
	Height int
	X      int
	Y      int
	Key    Key
	Button Button
}

// Platform is a native windowing library. Backends are driven from a single
// goroutine; none of the methods are safe for concurrent use.
type Platform interface {
	Name() string
	DesktopSize() (int, int)
	CreateWindow(cfg WindowConfig) (Window, error)
	Input() Input
	// Run calls frame repeatedly on the backend's loop until frame returns
	// an error. ErrStop ends the loop and is not returned.
	Run(frame func() error) error
	Close() error
}

type Window interface {
	PollEvent() (Event, bool)
	IsOpen() bool
	SizePx() (int, int)
	SetSize(w, h int) error
	SetPosition(x, y int) error
	SetTitle(title string)
	Present(fb *render.FrameBuffer) error
	Close()
}

// Input answers raw "is currently held" queries against the native library.
// Sample reads the device state once; the queries after it answer from that
// reading until the next Sample.
type Input interface {
	Sample()
	IsKeyPressed(k Key) bool
	IsButtonPressed(b Button) bool
	CursorPosition() image.Point
	SetCursorPosition(p image.Point) error
}
