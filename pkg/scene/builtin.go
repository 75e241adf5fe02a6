package scene

import (
	"errors"
	"fmt"
	"sort"

	"github.com/df07/go-sphere-caster/pkg/core"
	"github.com/df07/go-sphere-caster/pkg/geometry"
)

// ErrUnknownScene is returned by Lookup for names that are not registered
var ErrUnknownScene = errors.New("unknown scene")

// SceneInfo represents a built-in scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	Description string `json:"description"`
}

// Builder creates a configured scene without a sink
type Builder func(cfg Config) (*Scene, error)

type entry struct {
	info    SceneInfo
	builder Builder
}

var builtins = map[string]entry{
	"default": {
		info: SceneInfo{
			ID:          "default",
			DisplayName: "Two Spheres",
			Description: "Two touching spheres lit from the upper right",
		},
		builder: NewDefaultScene,
	},
	"single": {
		info: SceneInfo{
			ID:          "single",
			DisplayName: "Single Sphere",
			Description: "One sphere on the camera axis",
		},
		builder: NewSingleSphereScene,
	},
	"two-lights": {
		info: SceneInfo{
			ID:          "two-lights",
			DisplayName: "Two Spheres, Two Lights",
			Description: "Default scene with a second light along +X",
		},
		builder: NewTwoLightScene,
	},
	"overlap": {
		info: SceneInfo{
			ID:          "overlap",
			DisplayName: "Overlapping Spheres",
			Description: "Two intersecting spheres showing last-write-wins compositing",
		},
		builder: NewOverlapScene,
	},
}

// Names returns the registered scene names in sorted order
func Names() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// List returns metadata for every registered scene, sorted by ID
func List() []SceneInfo {
	infos := make([]SceneInfo, 0, len(builtins))
	for _, name := range Names() {
		infos = append(infos, builtins[name].info)
	}
	return infos
}

// Lookup returns the builder registered under name
func Lookup(name string) (Builder, error) {
	e, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScene, name)
	}
	return e.builder, nil
}

// sphereSpec and lightSpec keep scene tables compact
type sphereSpec struct {
	x, y, z, radius float64
}

type lightSpec struct {
	x, y, z float64
}

// build assembles a scene with the default camera
func build(cfg Config, spheres []sphereSpec, lights []lightSpec) (*Scene, error) {
	s := New(cfg)
	if err := s.SetCamera(geometry.NewDefaultCamera()); err != nil {
		return nil, err
	}
	for _, sp := range spheres {
		sphere, err := geometry.NewSphere(core.NewVec3(sp.x, sp.y, sp.z), sp.radius)
		if err != nil {
			return nil, err
		}
		s.AddObject(sphere)
	}
	for _, l := range lights {
		if err := s.AddLight(geometry.NewLight(l.x, l.y, l.z)); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// NewDefaultScene creates the classic two-sphere scene
func NewDefaultScene(cfg Config) (*Scene, error) {
	return build(cfg,
		[]sphereSpec{{-100, 0, 0, 100}, {100, 0, 0, 100}},
		[]lightSpec{{1, 0.5, 1}},
	)
}

// NewSingleSphereScene creates one sphere centered on the viewing axis
func NewSingleSphereScene(cfg Config) (*Scene, error) {
	return build(cfg,
		[]sphereSpec{{0, 0, 0, 100}},
		[]lightSpec{{1, 0.5, 1}},
	)
}

// NewTwoLightScene creates the default scene with an extra light along +X
func NewTwoLightScene(cfg Config) (*Scene, error) {
	return build(cfg,
		[]sphereSpec{{-100, 0, 0, 100}, {100, 0, 0, 100}},
		[]lightSpec{{1, 0.5, 1}, {1, 0, 0}},
	)
}

// NewOverlapScene creates two intersecting spheres lit from behind so their
// shading differs where they overlap
func NewOverlapScene(cfg Config) (*Scene, error) {
	return build(cfg,
		[]sphereSpec{{-40, 0, 0, 100}, {40, 0, 0, 100}},
		[]lightSpec{{1, 0, -1}},
	)
}
