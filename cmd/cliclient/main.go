// cliclient renders a viewport on a render server, or in process with
// -local, and saves it as an image file.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	mandel "github.com/marben/silver_mandel"
	"github.com/marben/silver_mandel/imgio"
	"github.com/marben/silver_mandel/remote"
)

// main is the entry point for the CLI client.
// It runs the client logic and logs any fatal errors.
func main() {
	log.Printf("Starting CLI client...")
	if err := run(); err != nil {
		log.Fatalf("FATAL: %v", err)
	}
}

type options struct {
	server   string
	local    bool
	workers  int
	job      mandel.Job
	landmark string
	output   string
	scale    int
	timeout  time.Duration
	verbose  bool
}

func parseFlags() (options, error) {
	var (
		o    options
		mode string
	)
	flag.StringVar(&o.server, "server", "localhost:8081", "render server: tcp address or websocket URL (ws://localhost:8080/ws)")
	flag.BoolVar(&o.local, "local", false, "render in process instead of on the server")
	flag.IntVar(&o.workers, "workers", 1, "goroutines for local accelerated rendering")
	flag.IntVar(&o.job.Width, "width", 1920, "image width in pixels")
	flag.IntVar(&o.job.Height, "height", 1080, "image height in pixels")
	flag.Float64Var(&o.job.Center.X, "x", mandel.DefaultPosition.Center.X, "center real part")
	flag.Float64Var(&o.job.Center.Y, "y", mandel.DefaultPosition.Center.Y, "center imaginary part")
	flag.IntVar(&o.job.Zoom, "zoom", 9, "zoom level; one pixel spans 2^-zoom")
	flag.StringVar(&o.landmark, "landmark", "", "frame a named landmark instead of -x/-y/-zoom")
	flag.IntVar(&o.job.MaxIterations, "maxiter", mandel.DefaultMaxIterations, "maximum escape iterations")
	flag.StringVar(&mode, "mode", mandel.Accelerated.String(), "generation mode: naive or accelerated")
	flag.StringVar(&o.output, "o", "mandel.png", "output file; the extension picks pgm, png, bmp or tiff")
	flag.IntVar(&o.scale, "scale", 1, "integer upscaling of raster output")
	flag.DurationVar(&o.timeout, "timeout", time.Minute, "give up rendering after this long")
	flag.BoolVar(&o.verbose, "v", false, "log generation statistics")
	flag.Parse()

	m, err := mandel.ParseMode(mode)
	if err != nil {
		return o, err
	}
	o.job.Mode = m

	if o.landmark != "" {
		region, err := mandel.LandmarkByName(o.landmark)
		if err != nil {
			return o, err
		}
		o.job.Position = region.Position(o.job.Width, o.job.Height)
	}
	return o, o.job.Validate()
}

// run renders the requested job and saves it.
func run() error {
	o, err := parseFlags()
	if err != nil {
		return fmt.Errorf("flags: %w", err)
	}
	format, err := imgio.FormatFromPath(o.output)
	if err != nil {
		return err
	}
	if o.verbose {
		slog.SetLogLoggerLevel(slog.LevelDebug)
		mandel.SetLogger(slog.Default())
	}

	ctx, cancel := context.WithTimeout(context.Background(), o.timeout)
	defer cancel()

	var renderer mandel.Renderer
	if o.local {
		local := &mandel.RendererImpl{Workers: o.workers}
		defer local.Close()
		renderer = local
	} else {
		log.Printf("Connecting to render server at %s...", o.server)
		client, err := remote.Dial(ctx, o.server)
		if err != nil {
			return fmt.Errorf("failed to connect to server: %w", err)
		}
		defer client.Close()
		renderer = client
	}

	log.Printf("Rendering %dx%d at %s zoom %d (%s)...", o.job.Width, o.job.Height, o.job.Center, o.job.Zoom, o.job.Mode)
	start := time.Now()
	v, err := renderer.Render(ctx, o.job)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	log.Printf("Rendered in %s", time.Since(start))

	f, err := os.Create(o.output)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	if err := imgio.Encode(f, v, format, o.scale); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %q: %w", o.output, err)
	}

	log.Printf("Image saved to %q", o.output)
	return nil
}
