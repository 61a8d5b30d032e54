// Package mandel computes escape-time scores of the Mandelbrot set over a
// pixel viewport, either pixel by pixel or with the Mariani/Silver
// border-fill subdivision.
package mandel

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// DefaultMaxIterations bounds the escape loop unless WithMaxIterations says otherwise.
const DefaultMaxIterations = 255

// Coord is a point in the fractal plane.
type Coord struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (c Coord) String() string {
	return fmt.Sprintf("(%g, %g)", c.X, c.Y)
}

// Position places a viewport: its center and the zoom level.
// One pixel spans 2^-Zoom units of the plane.
type Position struct {
	Center Coord `json:"center"`
	Zoom   int   `json:"zoom"`
}

// DefaultPosition frames the whole set in a 150x150 viewport.
var DefaultPosition = Position{Center: Coord{X: -0.5, Y: 0}, Zoom: 6}

// Region is a rectangle of the fractal plane.
type Region struct {
	Xmin, Xmax float64
	Ymin, Ymax float64
}

// Center returns the middle of the region.
func (r Region) Center() Coord {
	return Coord{X: (r.Xmin + r.Xmax) / 2, Y: (r.Ymin + r.Ymax) / 2}
}

// Position returns the deepest position whose width x height viewport still
// covers the whole region.
func (r Region) Position(width, height int) Position {
	fit := math.Min(float64(width)/(r.Xmax-r.Xmin), float64(height)/(r.Ymax-r.Ymin))
	return Position{Center: r.Center(), Zoom: int(math.Floor(math.Log2(fit)))}
}

// Classic regions / landmarks in the Mandelbrot set
var (
	// Seahorse Valley – dense filaments and repeating “seahorse” curls
	SeahorseValley = Region{Xmin: -0.8, Xmax: -0.7, Ymin: 0.05, Ymax: 0.15}

	// Elephant Valley – large bulb with trunk-like tendrils
	ElephantValley = Region{Xmin: -1.85, Xmax: -1.75, Ymin: -0.10, Ymax: -0.02}

	// Spiral Minibrot – small Mandelbrot copy with tight spiral arms
	SpiralMinibrot = Region{Xmin: -0.7435, Xmax: -0.7420, Ymin: 0.1310, Ymax: 0.1325}

	// Triple Spiral – threefold symmetric spiral structure
	TripleSpiral = Region{Xmin: -0.7480, Xmax: -0.7450, Ymin: 0.0950, Ymax: 0.0980}

	// Valley of the Dragon – deep, highly detailed spiral filaments
	ValleyOfTheDragon = Region{Xmin: -0.7400, Xmax: -0.7350, Ymin: 0.1800, Ymax: 0.1850}

	// Minibrot in a Mini-Spiral – self-similar copy inside a spiral arm
	MinibrotInMiniSpiral = Region{Xmin: -1.7390, Xmax: -1.7375, Ymin: -0.0235, Ymax: -0.0220}
)

var landmarks = map[string]Region{
	"seahorse":      SeahorseValley,
	"elephant":      ElephantValley,
	"spiral":        SpiralMinibrot,
	"triple-spiral": TripleSpiral,
	"dragon":        ValleyOfTheDragon,
	"mini-spiral":   MinibrotInMiniSpiral,
}

// LandmarkByName looks up a landmark by its short name (see LandmarkNames).
func LandmarkByName(name string) (Region, error) {
	r, ok := landmarks[strings.ToLower(name)]
	if !ok {
		return Region{}, fmt.Errorf("unknown landmark %q (known: %s)", name, strings.Join(LandmarkNames(), ", "))
	}
	return r, nil
}

// LandmarkNames returns the sorted landmark names.
func LandmarkNames() []string {
	names := make([]string, 0, len(landmarks))
	for n := range landmarks {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Tile is a rectangle of pixels within a grid.
type Tile struct {
	X0, Y0 int // top-left pixel (column, row)
	W, H   int // tile width & height
}

func (t Tile) String() string {
	return fmt.Sprintf("%dx%d@(%d,%d)", t.W, t.H, t.X0, t.Y0)
}

// Pixels returns the number of pixels the tile covers.
func (t Tile) Pixels() int {
	return t.W * t.H
}

// quadrants splits t at its midpoints. The right and bottom quadrants absorb
// the remainder of odd sizes.
func (t Tile) quadrants() [4]Tile {
	w, h := t.W/2, t.H/2
	return [4]Tile{
		{X0: t.X0, Y0: t.Y0, W: w, H: h},
		{X0: t.X0 + w, Y0: t.Y0, W: t.W - w, H: h},
		{X0: t.X0, Y0: t.Y0 + h, W: w, H: t.H - h},
		{X0: t.X0 + w, Y0: t.Y0 + h, W: t.W - w, H: t.H - h},
	}
}
