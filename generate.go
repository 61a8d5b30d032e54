package mandel

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"
)

// Mode selects how a viewport is generated.
type Mode int

const (
	// Naive scores every pixel.
	Naive Mode = iota
	// Accelerated uses Mariani/Silver subdivision: rectangles whose border is
	// one uniform non-zero score are filled without scoring the interior.
	// Cusps narrower than a pixel can be missed.
	Accelerated
)

func (m Mode) String() string {
	switch m {
	case Naive:
		return "naive"
	case Accelerated:
		return "accelerated"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode is the inverse of Mode.String; "fast" is accepted for Accelerated.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "naive":
		return Naive, nil
	case "accelerated", "fast":
		return Accelerated, nil
	}
	return 0, fmt.Errorf("unknown mode %q", s)
}

// Stats describes the last generation of a session.
type Stats struct {
	Mode          Mode
	MaxIterations int
	Tiles         int // rectangles visited
	Evaluated     int // pixels scored, border pixels counted each time
	Filled        int // pixels filled from a uniform border
	Duration      time.Duration
}

// minSplit is the smallest side length that is subdivided.
const minSplit = 3

// generator fills a grid for one viewport. Counters are atomic so tiles can
// be processed from several goroutines.
type generator struct {
	grid          *Grid
	vp            Viewport
	maxIterations int

	tiles     atomic.Int64
	evaluated atomic.Int64
	filled    atomic.Int64
}

func newGenerator(g *Grid, vp Viewport, maxIterations int) *generator {
	return &generator{grid: g, vp: vp, maxIterations: maxIterations}
}

func (gen *generator) stats(m Mode, d time.Duration) Stats {
	return Stats{
		Mode:          m,
		MaxIterations: gen.maxIterations,
		Tiles:         int(gen.tiles.Load()),
		Evaluated:     int(gen.evaluated.Load()),
		Filled:        int(gen.filled.Load()),
		Duration:      d,
	}
}

// pixel scores (row, col) and stores the result.
func (gen *generator) pixel(row, col int) int {
	s := EscapeScore(gen.vp.PixelCoord(row, col), gen.maxIterations)
	gen.grid.set(row, col, s)
	return s
}

// rect scores every pixel of t.
func (gen *generator) rect(t Tile) {
	for row := t.Y0; row < t.Y0+t.H; row++ {
		for col := t.X0; col < t.X0+t.W; col++ {
			gen.pixel(row, col)
		}
	}
	gen.evaluated.Add(int64(t.Pixels()))
}

// uniformRow scores w pixels of row starting at col and reports whether they
// all equal want. It stops at the first mismatch.
func (gen *generator) uniformRow(row, col, w, want int) bool {
	n := 0
	defer func() { gen.evaluated.Add(int64(n)) }()
	for c := col; c < col+w; c++ {
		n++
		if gen.pixel(row, c) != want {
			return false
		}
	}
	return true
}

// uniformCol is uniformRow for h pixels of col starting at row.
func (gen *generator) uniformCol(col, row, h, want int) bool {
	n := 0
	defer func() { gen.evaluated.Add(int64(n)) }()
	for r := row; r < row+h; r++ {
		n++
		if gen.pixel(r, col) != want {
			return false
		}
	}
	return true
}

// fill sets the interior of t, everything but its border, to score.
func (gen *generator) fill(t Tile, score int) {
	for row := t.Y0 + 1; row < t.Y0+t.H-1; row++ {
		for col := t.X0 + 1; col < t.X0+t.W-1; col++ {
			gen.grid.set(row, col, score)
		}
	}
	gen.filled.Add(int64((t.W - 2) * (t.H - 2)))
}

// subdivide runs one Mariani/Silver step on t. It returns the quadrants still
// to be generated, or nil once t is complete.
func (gen *generator) subdivide(t Tile) []Tile {
	gen.tiles.Add(1)
	if t.W < minSplit || t.H < minSplit {
		gen.rect(t)
		return nil
	}

	firstRow, lastRow := t.Y0, t.Y0+t.H-1
	firstCol, lastCol := t.X0, t.X0+t.W-1

	// every border pixel is compared with the top-left corner
	score := gen.pixel(firstRow, firstCol)
	gen.evaluated.Add(1)
	uniform := gen.uniformRow(firstRow, firstCol+1, t.W-1, score) &&
		gen.uniformRow(lastRow, firstCol, t.W, score) &&
		gen.uniformCol(firstCol, firstRow+1, t.H-2, score) &&
		gen.uniformCol(lastCol, firstRow+1, t.H-2, score)

	if uniform && score != 0 {
		gen.fill(t, score)
		return nil
	}
	q := t.quadrants()
	return q[:]
}

// naive generates t pixel by pixel.
func (gen *generator) naive(ctx context.Context, t Tile) error {
	for row := t.Y0; row < t.Y0+t.H; row++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		gen.rect(Tile{X0: t.X0, Y0: row, W: t.W, H: 1})
	}
	gen.tiles.Add(1)
	return nil
}

// accelerated generates t on the calling goroutine, depth first in
// top-left, top-right, bottom-left, bottom-right order.
func (gen *generator) accelerated(ctx context.Context, t Tile) error {
	stack := []Tile{t}
	for len(stack) > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}
		next := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		q := gen.subdivide(next)
		for i := len(q) - 1; i >= 0; i-- {
			stack = append(stack, q[i])
		}
	}
	return nil
}
