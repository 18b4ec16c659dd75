package clip

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"sync"

	"github.com/atotto/clipboard"
	imgclip "golang.design/x/clipboard"
)

var ErrUnavailable = errors.New("clip: clipboard unavailable")

var (
	initOnce sync.Once
	initErr  error
)

// CopyText places s on the clipboard as plain text.
func CopyText(s string) error {
	if clipboard.Unsupported {
		return ErrUnavailable
	}
	return clipboard.WriteAll(s)
}

// CopyImage places img on the clipboard as PNG.
func CopyImage(img image.Image) error {
	initOnce.Do(func() { initErr = imgclip.Init() })
	if initErr != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, initErr)
	}
	data, err := EncodePNG(img)
	if err != nil {
		return err
	}
	imgclip.Write(imgclip.FmtImage, data)
	return nil
}

func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
