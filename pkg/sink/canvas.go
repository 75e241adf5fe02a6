package sink

import (
	"image"
	"image/color"
	"io"
	"sync"

	"github.com/fogleman/gg"
)

// CanvasSink draws pixels onto a gg drawing context and encodes it as PNG on Present.
type CanvasSink struct {
	mu  sync.Mutex // gg keeps the current color on the context
	dc  *gg.Context
	out io.Writer
}

// NewCanvasSink creates a canvas filled with background. Present writes PNG data to out
// when out is non-nil.
func NewCanvasSink(width, height int, background color.RGBA, out io.Writer) *CanvasSink {
	dc := gg.NewContext(width, height)
	dc.SetRGB255(int(background.R), int(background.G), int(background.B))
	dc.Clear()
	return &CanvasSink{dc: dc, out: out}
}

// SetPixel paints one opaque pixel. Coordinates outside the canvas are ignored.
func (c *CanvasSink) SetPixel(x, y int, r, g, b uint8) {
	if x < 0 || y < 0 || x >= c.dc.Width() || y >= c.dc.Height() {
		return
	}
	c.mu.Lock()
	c.dc.SetRGB255(int(r), int(g), int(b))
	c.dc.SetPixel(x, y)
	c.mu.Unlock()
}

// Present encodes the canvas as PNG to the configured writer
func (c *CanvasSink) Present() error {
	if c.out == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dc.EncodePNG(c.out)
}

// Image returns the canvas image
func (c *CanvasSink) Image() image.Image {
	return c.dc.Image()
}
