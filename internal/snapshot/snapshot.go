package snapshot

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/sqweek/dialog"
)

var ErrNoFile = errors.New("snapshot: no file selected")

// SavePNG writes img to path, adding a .png extension when it has none.
// The file is written next to its final name and renamed into place.
func SavePNG(path string, img image.Image) (string, error) {
	if path == "" {
		return "", ErrNoFile
	}
	path = filepath.Clean(path)
	if !strings.EqualFold(filepath.Ext(path), ".png") {
		path += ".png"
	}

	tmp := path + ".tmp"
	file, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return "", err
	}
	if err := png.Encode(file, img); err != nil {
		file.Close()
		os.Remove(tmp)
		return "", fmt.Errorf("encode %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		os.Remove(tmp)
		return "", err
	}
	if err := os.Rename(tmp, path); err != nil {
		return "", err
	}
	return path, nil
}

// PromptSave asks for a destination with a native file dialog.
func PromptSave(img image.Image) (string, error) {
	path, err := dialog.File().Filter("PNG images", "png").Title("Save window").Save()
	if err != nil {
		if errors.Is(err, dialog.ErrCancelled) {
			return "", ErrNoFile
		}
		return "", err
	}
	return SavePNG(path, img)
}
