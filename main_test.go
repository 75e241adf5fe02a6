package main

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"golang.org/x/image/tiff"

	"github.com/df07/go-sphere-caster/pkg/scene"
)

func TestCreateScene(t *testing.T) {
	tests := []struct {
		name        string
		sceneType   string
		expectError bool
	}{
		{"default scene", "default", false},
		{"single scene", "single", false},
		{"two lights scene", "two-lights", false},
		{"overlap scene", "overlap", false},
		{"unknown scene", "nonexistent", true},
		{"empty scene name", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := createScene(tt.sceneType, scene.Config{})
			if tt.expectError {
				if !errors.Is(err, scene.ErrUnknownScene) {
					t.Errorf("Expected ErrUnknownScene for '%s', got %v", tt.sceneType, err)
				}
				if s != nil {
					t.Errorf("Expected nil scene for '%s'", tt.sceneType)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error for '%s': %v", tt.sceneType, err)
			}
			if s.Config().Width <= 0 || s.Config().Height <= 0 {
				t.Errorf("Scene size should be positive, got %dx%d", s.Config().Width, s.Config().Height)
			}
		})
	}
}

func TestCreateOutputPath(t *testing.T) {
	now := time.Date(2024, 3, 5, 14, 7, 9, 0, time.UTC)
	tests := []struct {
		sceneName string
		expected  string
	}{
		{"default", filepath.Join("output", "default", "render_20240305_140709.png")},
		{"two-lights", filepath.Join("output", "two-lights", "render_20240305_140709.png")},
		{"", filepath.Join("output", "scene", "render_20240305_140709.png")},
	}
	for _, tt := range tests {
		if got := createOutputPath(tt.sceneName, now); got != tt.expected {
			t.Errorf("createOutputPath(%q) = %q, expected %q", tt.sceneName, got, tt.expected)
		}
	}
}

func TestRun_WritesPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "single.png")
	var stdout, stderr bytes.Buffer

	if err := run([]string{"-scene", "single", "-output", path, "-workers", "2"}, &stdout, &stderr); err != nil {
		t.Fatalf("run: %v (stderr: %s)", err, stderr.String())
	}

	img := decodePNG(t, path)
	if img.Bounds().Dx() != scene.DefaultWidth {
		t.Errorf("Expected width %d, got %d", scene.DefaultWidth, img.Bounds().Dx())
	}
	if got := color.RGBAModel.Convert(img.At(250, 250)); got != (color.RGBA{40, 80, 20, 255}) {
		t.Errorf("Expected shaded center pixel, got %v", got)
	}
	if !strings.Contains(stdout.String(), "31,417 shaded of 250,000") {
		t.Errorf("Expected formatted summary, got: %s", stdout.String())
	}
	if !strings.Contains(stderr.String(), "render complete") {
		t.Errorf("Expected completion log on stderr, got: %s", stderr.String())
	}
}

func TestRun_ScaledTIFF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "default.tif")
	var stdout, stderr bytes.Buffer

	if err := run([]string{"-output", path, "-scale", "2", "-workers", "1"}, &stdout, &stderr); err != nil {
		t.Fatalf("run: %v", err)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer file.Close()
	img, err := tiff.Decode(file)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if img.Bounds().Dx() != 2*scene.DefaultWidth {
		t.Errorf("Expected scaled width %d, got %d", 2*scene.DefaultWidth, img.Bounds().Dx())
	}
}

func TestRun_Canvas(t *testing.T) {
	path := filepath.Join(t.TempDir(), "canvas.png")
	var stdout, stderr bytes.Buffer

	if err := run([]string{"-scene", "single", "-canvas", "-output", path}, &stdout, &stderr); err != nil {
		t.Fatalf("run: %v", err)
	}
	img := decodePNG(t, path)
	if got := color.RGBAModel.Convert(img.At(250, 250)); got != (color.RGBA{40, 80, 20, 255}) {
		t.Errorf("Expected shaded center pixel, got %v", got)
	}

	err := run([]string{"-canvas", "-output", filepath.Join(t.TempDir(), "canvas.bmp")}, &stdout, &stderr)
	if err == nil {
		t.Error("Expected canvas mode to reject non-PNG output")
	}
}

func TestRun_InvalidOptions(t *testing.T) {
	tests := [][]string{
		{"-scene", "cornell"},
		{"-scale", "0"},
		{"-workers", "-2"},
		{"-output", "render.gif"},
		{"-bogus"},
	}
	for _, args := range tests {
		var stdout, stderr bytes.Buffer
		if err := run(args, &stdout, &stderr); err == nil {
			t.Errorf("Expected error for args %v", args)
		}
	}
}

func TestRun_Help(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if err := run([]string{"-help"}, &stdout, &stderr); err != nil {
		t.Fatalf("run: %v", err)
	}
	for _, name := range scene.Names() {
		if !strings.Contains(stdout.String(), name) {
			t.Errorf("Expected help to list scene %q", name)
		}
	}
}

func decodePNG(t *testing.T, path string) image.Image {
	t.Helper()
	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer file.Close()
	img, err := png.Decode(file)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	return img
}
