package sink

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
)

// FileSink buffers pixels in memory and writes the image to Path on Present.
// The format follows the file extension.
type FileSink struct {
	*ImageSink
	Path        string
	Format      Format
	ScaleFactor int
}

// NewFileSink creates a file sink for path. The extension must name a supported format.
func NewFileSink(path string, width, height int, background color.RGBA) (*FileSink, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	return &FileSink{
		ImageSink:   NewImageSink(width, height, background),
		Path:        path,
		Format:      format,
		ScaleFactor: 1,
	}, nil
}

// Present writes the buffer to disk, creating the parent directory when needed
func (f *FileSink) Present() error {
	if err := f.ImageSink.Present(); err != nil {
		return err
	}

	if dir := filepath.Dir(f.Path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	file, err := os.Create(f.Path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	img := Scale(f.Frame(), f.ScaleFactor)
	if err := Encode(file, img, f.Format); err != nil {
		file.Close()
		return fmt.Errorf("failed to encode %s: %w", f.Format, err)
	}
	return file.Close()
}
