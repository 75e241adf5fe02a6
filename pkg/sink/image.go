package sink

import (
	"image"
	"image/color"
	"sync"
)

// ImageSink is an in-memory PixelSink backed by an RGBA buffer.
// SetPixel may be called concurrently for distinct pixels; alpha is always opaque.
type ImageSink struct {
	img        *image.RGBA
	background color.RGBA

	mu        sync.Mutex
	presented int
	frame     *image.RGBA

	// OnPresent, when set, receives a copy of the buffer every time Present is called
	OnPresent func(frame *image.RGBA) error
}

// NewImageSink creates a sink of the given size cleared to background
func NewImageSink(width, height int, background color.RGBA) *ImageSink {
	s := &ImageSink{
		img:        image.NewRGBA(image.Rect(0, 0, width, height)),
		background: background,
	}
	s.Clear()
	return s
}

// SetPixel writes an opaque color. Coordinates outside the buffer are ignored.
func (s *ImageSink) SetPixel(x, y int, r, g, b uint8) {
	if !(image.Point{X: x, Y: y}.In(s.img.Rect)) {
		return
	}
	i := s.img.PixOffset(x, y)
	pix := s.img.Pix[i : i+4 : i+4]
	pix[0] = r
	pix[1] = g
	pix[2] = b
	pix[3] = 255
}

// Present snapshots the buffer as the latest presented frame
func (s *ImageSink) Present() error {
	frame := s.Snapshot()

	s.mu.Lock()
	s.frame = frame
	s.presented++
	onPresent := s.OnPresent
	s.mu.Unlock()

	if onPresent != nil {
		return onPresent(frame)
	}
	return nil
}

// Clear resets every pixel to the background color
func (s *ImageSink) Clear() {
	bg := s.background
	bg.A = 255
	for i := 0; i < len(s.img.Pix); i += 4 {
		s.img.Pix[i] = bg.R
		s.img.Pix[i+1] = bg.G
		s.img.Pix[i+2] = bg.B
		s.img.Pix[i+3] = bg.A
	}
}

// Image returns the live buffer
func (s *ImageSink) Image() *image.RGBA {
	return s.img
}

// Background returns the color the buffer is cleared to
func (s *ImageSink) Background() color.RGBA {
	return color.RGBA{R: s.background.R, G: s.background.G, B: s.background.B, A: 255}
}

// Snapshot returns a copy of the current buffer
func (s *ImageSink) Snapshot() *image.RGBA {
	out := image.NewRGBA(s.img.Rect)
	copy(out.Pix, s.img.Pix)
	return out
}

// Frame returns the most recently presented frame, or nil before the first Present
func (s *ImageSink) Frame() *image.RGBA {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frame
}

// Presented returns how many times Present has been called
func (s *ImageSink) Presented() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.presented
}
