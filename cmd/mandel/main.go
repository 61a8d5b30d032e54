// mandel prints the Mandelbrot set as a plain PGM image on stdout.
//
// Without flags it renders 150x150 pixels around (-0.5, 0) at zoom 6 with
// the accelerated generator.
package main

import (
	"flag"
	"log"
	"log/slog"
	"os"

	mandel "github.com/marben/silver_mandel"
	"github.com/marben/silver_mandel/imgio"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("run: %v", err)
	}
}

func run() error {
	width := flag.Int("width", 150, "image width in pixels")
	height := flag.Int("height", 150, "image height in pixels")
	x := flag.Float64("x", mandel.DefaultPosition.Center.X, "center real part")
	y := flag.Float64("y", mandel.DefaultPosition.Center.Y, "center imaginary part")
	zoom := flag.Int("zoom", mandel.DefaultPosition.Zoom, "zoom level; one pixel spans 2^-zoom")
	maxIter := flag.Int("maxiter", mandel.DefaultMaxIterations, "maximum escape iterations")
	naive := flag.Bool("naive", false, "score every pixel instead of border filling")
	workers := flag.Int("workers", 1, "goroutines for accelerated generation")
	verbose := flag.Bool("v", false, "log generation statistics to stderr")
	flag.Parse()

	if *verbose {
		slog.SetLogLoggerLevel(slog.LevelDebug)
		mandel.SetLogger(slog.Default())
	}

	job := mandel.Job{
		Position:      mandel.Position{Center: mandel.Coord{X: *x, Y: *y}, Zoom: *zoom},
		Width:         *width,
		Height:        *height,
		MaxIterations: *maxIter,
	}
	if err := job.Validate(); err != nil {
		return err
	}

	fractal := mandel.New(job.Width, job.Height, mandel.WithMaxIterations(job.MaxIterations), mandel.WithWorkers(*workers))
	defer fractal.Close()

	fractal.SetPosition(job.Center, job.Zoom)
	if *naive {
		fractal.Generate()
	} else {
		fractal.FastGenerate()
	}

	scores, err := fractal.Scores()
	if err != nil {
		return err
	}
	return imgio.WritePGM(os.Stdout, scores)
}
