package scene

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/df07/go-sphere-caster/pkg/core"
	"github.com/df07/go-sphere-caster/pkg/geometry"
	"github.com/df07/go-sphere-caster/pkg/renderer"
)

const (
	DefaultWidth  = 500
	DefaultHeight = 500

	// rayOriginZ is the plane every orthographic ray starts from
	rayOriginZ = 1000

	// Shading: R = diffuseScale*diffuse + ambientRed, fixed G and B
	diffuseScale = 180
	ambientRed   = 40
	baseGreen    = 80
	baseBlue     = 20
)

var (
	// ErrRenderInProgress is returned when Render is called while another render is running
	ErrRenderInProgress = errors.New("render already in progress")

	// ErrInvalidLight is returned for lights that have no direction
	ErrInvalidLight = errors.New("light at the world origin has no direction")
)

// rayDirection is shared by every primary ray: orthographic along -Z
var rayDirection = core.NewVec3(0, 0, -1)

// Config contains the scene's render configuration
type Config struct {
	Width      int          // Image width, defaults to DefaultWidth
	Height     int          // Image height, defaults to DefaultHeight
	NumWorkers int          // Row workers; 0 = runtime.NumCPU(), 1 = sequential
	Logger     *slog.Logger // nil uses core.Logger()
}

func (c Config) withDefaults() Config {
	if c.Width <= 0 {
		c.Width = DefaultWidth
	}
	if c.Height <= 0 {
		c.Height = DefaultHeight
	}
	return c
}

// Scene contains all the elements needed for rendering
type Scene struct {
	config Config

	mu      sync.RWMutex
	objects []geometry.Sphere
	lights  []geometry.Light
	camera  *geometry.Camera
	sink    core.PixelSink

	rendering atomic.Bool
}

// PixelResult describes what shading did to a single pixel
type PixelResult struct {
	Writes int      // Number of SetPixel calls
	Color  [3]uint8 // Last color written, valid when Writes > 0
}

// New creates an empty scene. Objects, lights, a camera and a sink must be
// added before Render.
func New(cfg Config) *Scene {
	return &Scene{config: cfg.withDefaults()}
}

// Config returns the effective configuration
func (s *Scene) Config() Config {
	return s.config
}

// AddObject appends a sphere. Insertion order is shading order.
func (s *Scene) AddObject(sphere geometry.Sphere) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects = append(s.objects, sphere)
}

// AddLight appends a light. Insertion order is shading order.
func (s *Scene) AddLight(light geometry.Light) error {
	if _, err := light.Direction(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidLight, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lights = append(s.lights, light)
	return nil
}

// SetCamera assigns the camera after validating its image plane
func (s *Scene) SetCamera(camera geometry.Camera) error {
	if err := camera.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.camera = &camera
	return nil
}

// SetSink assigns the pixel sink that receives the render
func (s *Scene) SetSink(sink core.PixelSink) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sink = sink
}

// Objects returns a copy of the spheres in insertion order
func (s *Scene) Objects() []geometry.Sphere {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]geometry.Sphere(nil), s.objects...)
}

// Lights returns a copy of the lights in insertion order
func (s *Scene) Lights() []geometry.Light {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]geometry.Light(nil), s.lights...)
}

// Camera returns the assigned camera, if any
func (s *Scene) Camera() (geometry.Camera, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.camera == nil {
		return geometry.Camera{}, false
	}
	return *s.camera, true
}

func (s *Scene) logger() *slog.Logger {
	if s.config.Logger != nil {
		return s.config.Logger
	}
	return core.Logger()
}

// PrimaryRay returns the ray cast through pixel (column, row)
func (s *Scene) PrimaryRay(column, row int) core.Ray {
	origin := core.NewVec3(
		float64(column-s.config.Width/2),
		float64(row-s.config.Height/2),
		rayOriginZ,
	)
	return core.NewRay(origin, rayDirection)
}

// Render casts one ray per pixel, shades it and presents the sink.
//
// Render fails before touching the sink when the camera or sink is missing.
// It is not reentrant: a concurrent call returns ErrRenderInProgress.
func (s *Scene) Render() (renderer.RenderStats, error) {
	if !s.rendering.CompareAndSwap(false, true) {
		return renderer.RenderStats{}, ErrRenderInProgress
	}
	defer s.rendering.Store(false)

	s.mu.RLock()
	frame := frameState{
		objects: append([]geometry.Sphere(nil), s.objects...),
		lights:  append([]geometry.Light(nil), s.lights...),
		sink:    s.sink,
		scene:   s,
	}
	hasCamera := s.camera != nil
	s.mu.RUnlock()

	var missing []string
	if !hasCamera {
		missing = append(missing, "camera")
	}
	if frame.sink == nil {
		missing = append(missing, "sink")
	}
	if len(missing) > 0 {
		return renderer.RenderStats{}, &core.SceneNotConfiguredError{Missing: missing}
	}

	log := s.logger()
	log.Debug("render started",
		"width", s.config.Width,
		"height", s.config.Height,
		"objects", len(frame.objects),
		"lights", len(frame.lights))

	stats, err := renderer.RenderRows(&frame, s.config.Width, s.config.Height, s.config.NumWorkers)
	if err != nil {
		log.Warn("render failed", "error", err)
		return stats, fmt.Errorf("render: %w", err)
	}

	if err := frame.sink.Present(); err != nil {
		log.Warn("present failed", "error", err)
		return stats, fmt.Errorf("present: %w", err)
	}

	log.Info("render complete",
		"pixels", stats.TotalPixels,
		"written", stats.WrittenPixels,
		"writes", stats.PixelWrites,
		"workers", stats.NumWorkers,
		"duration", stats.Duration)
	return stats, nil
}

// ProcessPixel shades one pixel with every object and light of the scene and
// writes the results to the sink.
func (s *Scene) ProcessPixel(ray core.Ray, column, row int) (PixelResult, error) {
	s.mu.RLock()
	frame := frameState{objects: s.objects, lights: s.lights, sink: s.sink, scene: s}
	s.mu.RUnlock()

	if frame.sink == nil {
		return PixelResult{}, &core.SceneNotConfiguredError{Missing: []string{"sink"}}
	}
	return frame.processPixel(ray, column, row)
}

// frameState is the immutable view of a scene used for one render
type frameState struct {
	objects []geometry.Sphere
	lights  []geometry.Light
	sink    core.PixelSink
	scene   *Scene
}

// RenderRow implements renderer.RowRenderer
func (f *frameState) RenderRow(row int) (renderer.RowStats, error) {
	var stats renderer.RowStats
	for column := 0; column < f.scene.config.Width; column++ {
		result, err := f.processPixel(f.scene.PrimaryRay(column, row), column, row)
		if err != nil {
			return stats, err
		}
		stats.Pixels++
		stats.PixelWrites += result.Writes
		if result.Writes > 0 {
			stats.WrittenPixels++
		}
	}
	return stats, nil
}

// processPixel runs the object loop (outer) and light loop (inner) in insertion order.
// There is no nearest-hit resolution: every object that intersects shades the
// pixel and the last write wins.
func (f *frameState) processPixel(ray core.Ray, column, row int) (PixelResult, error) {
	var result PixelResult

	for _, obj := range f.objects {
		if len(f.lights) == 0 {
			break
		}
		hit := obj.Intersect(ray)
		if !hit.Hit {
			continue
		}

		// The ray is a value, so the hit point never feeds back into later objects
		normal := ray.At(hit.T).Subtract(obj.Center)
		if err := normal.Normalize(); err != nil {
			return result, fmt.Errorf("pixel (%d, %d): surface normal: %w", column, row, err)
		}

		for _, light := range f.lights {
			lightDir := light.Position
			if err := lightDir.Normalize(); err != nil {
				return result, fmt.Errorf("pixel (%d, %d): light direction: %w", column, row, err)
			}

			diffuse := max(0, lightDir.Dot(normal))
			r := core.ClampChannel(diffuseScale*diffuse + ambientRed)
			f.sink.SetPixel(column, row, r, baseGreen, baseBlue)

			result.Writes++
			result.Color = [3]uint8{r, baseGreen, baseBlue}
		}
	}

	return result, nil
}
