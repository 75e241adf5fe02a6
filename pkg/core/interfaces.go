package core

import "math"

// PixelSink receives finished pixel colors and presents the completed buffer.
// Coordinates are 0-indexed with the origin at the top left.
// SetPixel may be called concurrently for distinct pixels.
type PixelSink interface {
	SetPixel(x, y int, r, g, b uint8)
	Present() error
}

// ClampChannel rounds a color component to the nearest integer and clamps it to [0, 255]
func ClampChannel(value float64) uint8 {
	if math.IsNaN(value) || value <= 0 {
		return 0
	}
	if value >= 255 {
		return 255
	}
	return uint8(math.Round(value))
}
