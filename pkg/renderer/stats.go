package renderer

import (
	"image"
	"time"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	Width         int           // Image width in pixels
	Height        int           // Image height in pixels
	TotalPixels   int           // Total number of pixels processed
	WrittenPixels int           // Pixels that received at least one write
	PixelWrites   int           // Total SetPixel calls, including overwrites
	NumWorkers    int           // Workers used for the render
	Duration      time.Duration // Wall time of the render
}

// RowStats contains the counters produced by rendering a single row
type RowStats struct {
	Pixels        int
	WrittenPixels int
	PixelWrites   int
}

// Add accumulates another row's counters
func (rs *RowStats) Add(other RowStats) {
	rs.Pixels += other.Pixels
	rs.WrittenPixels += other.WrittenPixels
	rs.PixelWrites += other.PixelWrites
}

// Coverage returns the fraction of pixels that received a write
func (s RenderStats) Coverage() float64 {
	if s.TotalPixels == 0 {
		return 0
	}
	return float64(s.WrittenPixels) / float64(s.TotalPixels)
}

// CalculateAverageLuminance returns the mean Rec. 709 luminance of img in [0, 1]
func CalculateAverageLuminance(img image.Image) float64 {
	bounds := img.Bounds()
	count := bounds.Dx() * bounds.Dy()
	if count == 0 {
		return 0
	}

	var total float64
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			total += 0.2126*float64(r)/0xffff + 0.7152*float64(g)/0xffff + 0.0722*float64(b)/0xffff
		}
	}
	return total / float64(count)
}
