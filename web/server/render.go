package server

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"net/http"
	"strconv"

	"github.com/df07/go-sphere-caster/pkg/renderer"
	"github.com/df07/go-sphere-caster/pkg/scene"
	"github.com/df07/go-sphere-caster/pkg/sink"
)

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene      string      // Scene name (e.g., "default")
	Format     sink.Format // Response encoding
	Scale      int         // Integer upscale factor
	Thumbnail  int         // Preview width in pixels, 0 for full size
	NumWorkers int         // Row workers, 0 = auto
}

// handleRender renders a scene into an in-memory sink and responds with the encoded image
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	sceneObj, err := s.createScene(req.Scene, scene.Config{NumWorkers: req.NumWorkers})
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	cfg := sceneObj.Config()
	imgSink := sink.NewImageSink(cfg.Width, cfg.Height, color.RGBA{A: 255})
	sceneObj.SetSink(imgSink)

	stats, err := sceneObj.Render()
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, fmt.Sprintf("Render error: %v", err))
		return
	}

	frame := imgSink.Frame()
	var out image.Image = frame
	if req.Thumbnail > 0 {
		out = sink.Resize(out, req.Thumbnail)
	} else if req.Scale > 1 {
		out = sink.Scale(out, req.Scale)
	}

	var buf bytes.Buffer
	if err := sink.Encode(&buf, out, req.Format); err != nil {
		s.writeError(w, http.StatusInternalServerError, fmt.Sprintf("failed to encode image: %v", err))
		return
	}

	w.Header().Set("Content-Type", req.Format.ContentType())
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("X-Render-Pixels", strconv.Itoa(stats.TotalPixels))
	w.Header().Set("X-Render-Written", strconv.Itoa(stats.WrittenPixels))
	w.Header().Set("X-Render-Luminance", strconv.FormatFloat(renderer.CalculateAverageLuminance(frame), 'f', 4, 64))
	w.Header().Set("X-Render-Duration-Ms", strconv.FormatInt(stats.Duration.Milliseconds(), 10))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		s.logger.Warn("client disconnected during write", "error", err)
	}
}

// parseRenderRequest parses request parameters
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	query := r.URL.Query()
	req := &RenderRequest{Scene: "default", Format: sink.FormatPNG}

	if name := query.Get("scene"); name != "" {
		req.Scene = name
	}
	if format := query.Get("format"); format != "" {
		parsed, err := sink.ParseFormat(format)
		if err != nil {
			return nil, err
		}
		req.Format = parsed
	}

	var err error
	if req.Scale, err = parseIntParam(query, "scale", 1, 1, 8); err != nil {
		return nil, err
	}
	if req.Thumbnail, err = parseIntParam(query, "thumbnail", 0, 0, 2000); err != nil {
		return nil, err
	}
	if req.NumWorkers, err = parseIntParam(query, "workers", 0, 0, 256); err != nil {
		return nil, err
	}
	if req.Thumbnail > 0 && req.Scale > 1 {
		return nil, errors.New("thumbnail and scale cannot be combined")
	}
	return req, nil
}
