package main

import (
	"errors"
	"flag"
	"fmt"
	"image/color"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/df07/go-sphere-caster/pkg/core"
	"github.com/df07/go-sphere-caster/pkg/scene"
	"github.com/df07/go-sphere-caster/pkg/sink"
)

// options holds the parsed command line
type options struct {
	sceneName string
	output    string
	workers   int
	scale     int
	canvas    bool
	verbose   bool
	help      bool
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func parseOptions(args []string, stderr io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("sphere-caster", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.sceneName, "scene", "default", "Scene name: "+strings.Join(scene.Names(), ", "))
	fs.StringVar(&opts.output, "output", "", "Output file (.png, .bmp, .tif); default output/<scene>/render_<timestamp>.png")
	fs.IntVar(&opts.workers, "workers", 0, "Row workers (0 = number of CPUs, 1 = sequential)")
	fs.IntVar(&opts.scale, "scale", 1, "Integer upscale factor applied to the saved image")
	fs.BoolVar(&opts.canvas, "canvas", false, "Draw through a gg canvas and always save PNG")
	fs.BoolVar(&opts.verbose, "verbose", false, "Enable debug logging")
	fs.BoolVar(&opts.help, "help", false, "Show help information")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if opts.scale < 1 || opts.scale > 16 {
		return opts, fmt.Errorf("scale must be between 1 and 16, got %d", opts.scale)
	}
	if opts.workers < 0 {
		return opts, fmt.Errorf("workers must be >= 0, got %d", opts.workers)
	}
	return opts, nil
}

func run(args []string, stdout, stderr io.Writer) error {
	opts, err := parseOptions(args, stderr)
	if err != nil {
		return err
	}

	if opts.help {
		printHelp(stdout)
		return nil
	}

	level := slog.LevelInfo
	if opts.verbose {
		level = slog.LevelDebug
	}
	core.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})))
	defer core.SetLogger(nil)

	selected, err := createScene(opts.sceneName, scene.Config{NumWorkers: opts.workers})
	if err != nil {
		return err
	}

	outputPath := opts.output
	if outputPath == "" {
		outputPath = createOutputPath(opts.sceneName, time.Now())
	}

	cfg := selected.Config()
	closeOutput, err := attachSink(selected, opts, outputPath, cfg.Width, cfg.Height)
	if err != nil {
		return err
	}

	stats, renderErr := selected.Render()
	if err := closeOutput(); err != nil && renderErr == nil {
		renderErr = err
	}
	if renderErr != nil {
		return renderErr
	}

	p := message.NewPrinter(language.English)
	p.Fprintf(stdout, "Render completed in %v using %d workers\n", stats.Duration, stats.NumWorkers)
	p.Fprintf(stdout, "Pixels: %d shaded of %d (%d writes)\n", stats.WrittenPixels, stats.TotalPixels, stats.PixelWrites)
	fmt.Fprintf(stdout, "Render saved as %s\n", outputPath)
	return nil
}

// attachSink wires the output sink for the chosen mode and returns a cleanup func
func attachSink(s *scene.Scene, opts options, outputPath string, width, height int) (func() error, error) {
	bg := color.RGBA{A: 255}

	if !opts.canvas {
		fileSink, err := sink.NewFileSink(outputPath, width, height, bg)
		if err != nil {
			return nil, err
		}
		fileSink.ScaleFactor = opts.scale
		s.SetSink(fileSink)
		return func() error { return nil }, nil
	}

	if format, err := sink.FormatFromPath(outputPath); err != nil || format != sink.FormatPNG {
		return nil, errors.New("canvas output must be a .png file")
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	file, err := os.Create(outputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}
	s.SetSink(sink.NewCanvasSink(width, height, bg, file))
	return file.Close, nil
}

// createScene builds a registered scene by name
func createScene(name string, cfg scene.Config) (*scene.Scene, error) {
	builder, err := scene.Lookup(name)
	if err != nil {
		return nil, err
	}
	return builder(cfg)
}

// createOutputPath returns output/<scene>/render_<timestamp>.png
func createOutputPath(sceneName string, now time.Time) string {
	base := filepath.Base(sceneName)
	if base == "" || base == "." || base == string(filepath.Separator) {
		base = "scene"
	}
	filename := fmt.Sprintf("render_%s.png", now.Format("20060102_150405"))
	return filepath.Join("output", base, filename)
}

func printHelp(w io.Writer) {
	fmt.Fprintln(w, "Sphere Caster")
	fmt.Fprintln(w, "Usage: sphere-caster [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options: -scene, -output, -workers, -scale, -canvas, -verbose, -help")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Available scenes:")
	for _, info := range scene.List() {
		fmt.Fprintf(w, "  %-12s %s\n", info.ID, info.Description)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output will be saved to output/<scene>/render_<timestamp>.png unless -output is given")
}
