package config

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

var ErrUnknownBackend = errors.New("config: unknown backend")

const (
	BackendEbiten   = "ebiten"
	BackendX11      = "x11"
	BackendHeadless = "headless"
)

const envPrefix = "SMOL_"

type Config struct {
	Backend        string `yaml:"backend"`
	WindowTitle    string `yaml:"window_title"`
	CharacterSize  int    `yaml:"character_size"`
	LinePadding    int    `yaml:"line_padding"`
	TitleBarHeight int    `yaml:"title_bar_height"`
	TaskbarReserve int    `yaml:"taskbar_reserve"`
	FontPath       string `yaml:"font_path"`
	FramerateLimit int    `yaml:"framerate_limit"`
	// ClearColor is "#rrggbb" or "#rrggbbaa".
	ClearColor string `yaml:"clear_color"`
	QuitKey    string `yaml:"quit_key"`
}

// Default values match a stock Windows desktop: 38px title bars and a 50px
// taskbar, not DPI aware.
func Default() Config {
	return Config{
		Backend:        BackendEbiten,
		WindowTitle:    "smol window",
		CharacterSize:  24,
		LinePadding:    10,
		TitleBarHeight: 38,
		TaskbarReserve: 50,
		ClearColor:     "#000000",
		QuitKey:        "Escape",
	}
}

// Load reads path over the defaults, then applies SMOL_* variables.
// A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		file, err := os.Open(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return Config{}, err
		default:
			defer file.Close()
			if err := yaml.NewDecoder(file).Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
				return Config{}, fmt.Errorf("decode %s: %w", path, err)
			}
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Backend {
	case BackendEbiten, BackendX11, BackendHeadless:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownBackend, c.Backend)
	}
	if c.CharacterSize <= 0 {
		return fmt.Errorf("config: character_size must be positive, got %d", c.CharacterSize)
	}
	if c.LinePadding < 0 || c.TitleBarHeight < 0 || c.TaskbarReserve < 0 {
		return errors.New("config: line_padding, title_bar_height and taskbar_reserve must not be negative")
	}
	if _, err := c.Clear(); err != nil {
		return err
	}
	return nil
}

// Clear parses ClearColor.
func (c Config) Clear() (color.RGBA, error) {
	s := strings.TrimPrefix(c.ClearColor, "#")
	if len(s) == 6 {
		s += "ff"
	}
	if len(s) != 8 {
		return color.RGBA{}, fmt.Errorf("config: bad clear_color %q", c.ClearColor)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("config: bad clear_color %q: %w", c.ClearColor, err)
	}
	return color.RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

// Write stores cfg as YAML, replacing path atomically.
func Write(path string, cfg Config) error {
	tmp := path + ".tmp"
	file, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	if err := yaml.NewEncoder(file).Encode(cfg); err != nil {
		file.Close()
		os.Remove(tmp)
		return err
	}
	if err := file.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}

func applyEnv(cfg *Config) error {
	strs := map[string]*string{
		"BACKEND":      &cfg.Backend,
		"WINDOW_TITLE": &cfg.WindowTitle,
		"FONT_PATH":    &cfg.FontPath,
		"CLEAR_COLOR":  &cfg.ClearColor,
		"QUIT_KEY":     &cfg.QuitKey,
	}
	for name, dst := range strs {
		if v, ok := os.LookupEnv(envPrefix + name); ok {
			*dst = v
		}
	}

	ints := map[string]*int{
		"CHARACTER_SIZE":   &cfg.CharacterSize,
		"LINE_PADDING":     &cfg.LinePadding,
		"TITLE_BAR_HEIGHT": &cfg.TitleBarHeight,
		"TASKBAR_RESERVE":  &cfg.TaskbarReserve,
		"FRAMERATE_LIMIT":  &cfg.FramerateLimit,
	}
	for name, dst := range ints {
		v, ok := os.LookupEnv(envPrefix + name)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: %s%s: %w", envPrefix, name, err)
		}
		*dst = n
	}
	return nil
}
