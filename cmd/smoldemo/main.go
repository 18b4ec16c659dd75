package main

import (
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/danielgtaylor/huma/v2/humacli"
	"github.com/joho/godotenv"
	"github.com/phsym/console-slog"
	"github.com/spf13/cobra"

	"smolwin/internal/clip"
	"smolwin/internal/config"
	"smolwin/internal/platform"
	"smolwin/internal/platform/ebitenbackend"
	"smolwin/internal/platform/headless"
	"smolwin/internal/platform/x11"
	"smolwin/internal/snapshot"
	"smolwin/pkg/smol"
	"smolwin/pkg/stopwatch"
)

type Options struct {
	Debug      bool   `doc:"enable debug"`
	Config     string `doc:"config file" default:".smoldemo.yaml"`
	Backend    string `doc:"backend to use (ebiten, x11, headless); overrides the config file"`
	Frames     int    `doc:"stop after this many frames on the headless backend" default:"300"`
	InitConfig bool   `doc:"write the default config file and exit"`
}

func main() {
	godotenv.Load()

	var options *Options
	cli := humacli.New(func(hooks humacli.Hooks, o *Options) {
		if o.Debug {
			InitLogger(slog.LevelDebug)
		} else {
			InitLogger(slog.LevelInfo)
		}
		options = o
	})

	// Ebiten must own the main goroutine, so the demo runs in the command
	// itself instead of a start hook.
	cli.Root().Use = "smoldemo"
	cli.Root().Run = func(cmd *cobra.Command, args []string) {
		if options.InitConfig {
			if err := initConfig(options.Config); err != nil {
				log.Fatal(err)
			}
			slog.Info("wrote default config", "path", options.Config)
			return
		}
		if err := run(options); err != nil {
			log.Fatal(err)
		}
	}

	cli.Run()
}

func InitLogger(level slog.Level) {
	slog.SetDefault(slog.New(console.NewHandler(os.Stderr, &console.HandlerOptions{
		Level: level,
	})))
}

var errConfigExists = errors.New("config file already exists")

// initConfig writes config.Default to path unless a file is already there.
func initConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%w: %s", errConfigExists, path)
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return config.Write(path, config.Default())
}

func openBackend(cfg config.Config, frames int) (platform.Platform, error) {
	switch cfg.Backend {
	case config.BackendX11:
		return x11.New()
	case config.BackendHeadless:
		b := headless.New()
		b.MaxFrames = frames
		return b, nil
	case config.BackendEbiten:
		return ebitenbackend.New(), nil
	}
	return nil, fmt.Errorf("%w: %q", config.ErrUnknownBackend, cfg.Backend)
}

func run(options *Options) error {
	cfg, err := config.Load(options.Config)
	if err != nil {
		return err
	}
	if options.Backend != "" {
		cfg.Backend = options.Backend
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	quit, err := platform.ParseKey(cfg.QuitKey)
	if err != nil {
		return fmt.Errorf("quit_key: %w", err)
	}

	backend, err := openBackend(cfg, options.Frames)
	if err != nil {
		return err
	}
	app, err := smol.New(backend, smol.WithConfig(cfg), smol.WithLogger(slog.Default()))
	if err != nil {
		backend.Close()
		return err
	}
	defer app.Close()

	term, err := app.NewTiledWindow(smol.Tile{Cols: 3, Rows: 2, X: smol.Cell(0), Y: smol.Span{From: 0, To: 1}}, "console")
	if err != nil {
		return err
	}
	canvas, err := app.NewTiledWindow(smol.Tile{Cols: 3, Rows: 2, X: smol.Span{From: 1, To: 2}, Y: smol.Cell(0)}, "pixels")
	if err != nil {
		return err
	}
	help, err := app.NewTiledWindow(smol.Tile{Cols: 3, Rows: 2, X: smol.Span{From: 1, To: 2}, Y: smol.Cell(1)}, "keys")
	if err != nil {
		return err
	}

	d := &demo{app: app, console: term, canvas: canvas, help: help, sw: stopwatch.New()}
	d.width, d.height = canvas.Size()
	d.bind(quit)

	slog.Info("smoldemo started", "backend", backend.Name(), "windows", app.Len())
	err = app.Run(d.frame)
	if errors.Is(err, smol.ErrStop) {
		return nil
	}
	return err
}

type demo struct {
	app     *smol.App
	console *smol.Window
	canvas  *smol.Window
	help    *smol.Window
	sw      *stopwatch.Stopwatch

	// width and height are the canvas texture size, fixed at creation.
	width  int
	height int
	pixels []byte
	tick   int
	// transcript is the console text of the previous frame; frames clear it.
	transcript string
	status     string
}

func (d *demo) bind(quit platform.Key) {
	in := d.app.Input()
	in.OnKeyDown(quit, d.app.CloseAll)
	in.OnKeyDown(platform.KeyC, func() {
		if !in.KeyPressed(platform.KeyLeftControl) && !in.KeyPressed(platform.KeyRightControl) {
			return
		}
		d.report("copy text", clip.CopyText(d.transcript))
	})
	in.OnKeyDown(platform.KeyF5, func() {
		d.report("copy image", clip.CopyImage(d.canvas.Capture()))
	})
	in.OnKeyDown(platform.KeyF6, func() {
		path, err := snapshot.PromptSave(d.canvas.Capture())
		if errors.Is(err, snapshot.ErrNoFile) {
			d.status = "save cancelled"
			return
		}
		d.report("saved "+path, err)
	})
	in.OnButtonDown(platform.ButtonLeft, func() {
		d.status = fmt.Sprintf("click at %v", in.MousePosition())
	})
}

func (d *demo) report(action string, err error) {
	if err != nil {
		slog.Error("smoldemo: "+action, "error", err)
		d.status = action + " failed"
		return
	}
	d.status = action
}

func (d *demo) frame() error {
	for {
		ev, ok := d.app.PollEvent()
		if !ok {
			break
		}
		if ev.Type == platform.EventClose {
			ev.Window.Close()
		}
	}

	elapsed, err := d.sw.TocSeconds()
	d.sw.Tic()
	d.tick++

	in := d.app.Input()
	d.console.Printf("frame %d\n", d.tick)
	if err == nil && elapsed > 0 {
		d.console.Printf("%.1f fps\n", 1/elapsed)
	}
	d.console.Printf("mouse %v delta %v\n", in.MousePosition(), in.MouseDelta())
	if in.AnyKeyPressed() {
		d.console.Println("key held")
	}
	if d.status != "" {
		d.console.Println(d.status)
	}
	d.transcript = d.console.Text()

	d.help.Println("Ctrl+C  copy console text")
	d.help.Println("F5      copy pixels as image")
	d.help.Println("F6      save pixels as PNG")
	d.help.Print(d.app.Config().QuitKey, "  quit")

	return d.drawGradient()
}

func (d *demo) drawGradient() error {
	if !d.canvas.IsOpen() {
		return nil
	}
	w, h := d.width, d.height
	if len(d.pixels) != w*h*4 {
		d.pixels = make([]byte, w*h*4)
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := (y*w + x) * 4
			d.pixels[i+0] = byte(x + d.tick)
			d.pixels[i+1] = byte(y + d.tick/2)
			d.pixels[i+2] = byte((x ^ y) + d.tick)
			d.pixels[i+3] = 255
		}
	}
	return d.canvas.Draw(d.pixels)
}
