package server

import (
	"fmt"
	"image/color"
	"net/http"

	"github.com/df07/go-sphere-caster/pkg/core"
	"github.com/df07/go-sphere-caster/pkg/scene"
	"github.com/df07/go-sphere-caster/pkg/sink"
)

// InspectResponse represents the JSON response for pixel inspection
type InspectResponse struct {
	Scene   string       `json:"scene"`
	Column  int          `json:"column"`
	Row     int          `json:"row"`
	Origin  [3]float64   `json:"origin"`
	Objects []ObjectInfo `json:"objects"`
	Writes  int          `json:"writes"`
	Color   *[3]uint8    `json:"color,omitempty"` // Last color written, nil for background
}

// ObjectInfo reports how one sphere responded to the pixel's ray
type ObjectInfo struct {
	Index  int         `json:"index"`
	Center [3]float64  `json:"center"`
	Radius float64     `json:"radius"`
	Hit    bool        `json:"hit"`
	T      float64     `json:"t,omitempty"`
	Point  *[3]float64 `json:"point,omitempty"`
}

func vecArray(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

// handleInspect reports the intersections and final color of a single pixel
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	name := query.Get("scene")
	if name == "" {
		name = "default"
	}

	sceneObj, err := s.createScene(name, scene.Config{})
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	cfg := sceneObj.Config()

	column, err := parseIntParam(query, "x", cfg.Width/2, 0, cfg.Width-1)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
		return
	}
	row, err := parseIntParam(query, "y", cfg.Height/2, 0, cfg.Height-1)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	// ProcessPixel needs a sink; the scratch buffer is discarded
	sceneObj.SetSink(sink.NewImageSink(cfg.Width, cfg.Height, color.RGBA{A: 255}))

	ray := sceneObj.PrimaryRay(column, row)
	resp := InspectResponse{
		Scene:  name,
		Column: column,
		Row:    row,
		Origin: vecArray(ray.Origin),
	}
	for i, obj := range sceneObj.Objects() {
		info := ObjectInfo{
			Index:  i,
			Center: vecArray(obj.Center),
			Radius: obj.Radius,
		}
		if hit := obj.Intersect(ray); hit.Hit {
			point := vecArray(ray.At(hit.T))
			info.Hit = true
			info.T = hit.T
			info.Point = &point
		}
		resp.Objects = append(resp.Objects, info)
	}

	result, err := sceneObj.ProcessPixel(ray, column, row)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	resp.Writes = result.Writes
	if result.Writes > 0 {
		c := result.Color
		resp.Color = &c
	}

	s.writeJSON(w, http.StatusOK, resp)
}
