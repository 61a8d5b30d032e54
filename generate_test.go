package mandel

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

type genCase struct {
	width, height int
	center        Coord
	zoom          int
	maxIter       int
}

func (c genCase) String() string {
	return fmt.Sprintf("%dx%d_%v_z%d_i%d", c.width, c.height, c.center, c.zoom, c.maxIter)
}

var genCases = []genCase{
	{150, 150, Coord{-0.5, 0}, 6, 255},
	{64, 48, Coord{-0.5, 0}, 5, 100},
	{40, 30, Coord{-0.75, 0.1}, 7, 64},
	{33, 17, Coord{0, 0}, 4, 50},
	{100, 80, Coord{-0.5, 0}, 6, 1000},
	{60, 60, Coord{-1.25, 0}, 7, 200},
}

// generated runs a fresh session over c and returns a copy of its scores.
func generated(t *testing.T, c genCase, m Mode, opts ...Option) (View, Stats) {
	t.Helper()
	s := New(c.width, c.height, append([]Option{WithMaxIterations(c.maxIter)}, opts...)...)
	defer s.Close()

	s.SetPosition(c.center, c.zoom)
	if err := s.GenerateContext(context.Background(), m); err != nil {
		t.Fatalf("GenerateContext(%v): %v", m, err)
	}
	v, err := s.Scores()
	if err != nil {
		t.Fatalf("Scores: %v", err)
	}
	v.cells = append([]int(nil), v.cells...)
	return v, s.Stats()
}

func TestAccelerated_MatchesNaive(t *testing.T) {
	for _, c := range genCases {
		t.Run(c.String(), func(t *testing.T) {
			naive, _ := generated(t, c, Naive)
			fast, _ := generated(t, c, Accelerated)
			parallel, _ := generated(t, c, Accelerated, WithWorkers(4))

			if !fast.Equal(naive) {
				t.Error("accelerated scores differ from naive")
			}
			if !parallel.Equal(naive) {
				t.Error("parallel accelerated scores differ from naive")
			}
		})
	}
}

// filledTiles runs accelerated generation of vp tile by tile and returns the
// tiles that were filled from their border.
func filledTiles(g *Grid, vp Viewport, maxIter int) []Tile {
	gen := newGenerator(g, vp, maxIter)
	var filled []Tile
	stack := []Tile{{W: vp.Width, H: vp.Height}}
	for len(stack) > 0 {
		tile := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		q := gen.subdivide(tile)
		if q == nil && tile.W >= minSplit && tile.H >= minSplit {
			filled = append(filled, tile)
		}
		stack = append(stack, q...)
	}
	return filled
}

func TestAccelerated_FillsOnlyUniformBorders(t *testing.T) {
	const width, height = 37, 29

	var configs, cuspMisses int
	for _, x := range []float64{-2, -1.75, -1.5, -1.25, -1, -0.75, -0.5, -0.25, 0, 0.25} {
		for _, y := range []float64{0, 0.12, 0.36, 0.6} {
			for _, zoom := range []int{3, 5, 7, 9} {
				for _, maxIter := range []int{1, 2, 20, 255} {
					configs++
					vp := NewViewport(width, height, Position{Center: Coord{x, y}, Zoom: zoom})
					g := newGrid(width, height)

					interior := make([]bool, width*height)
					for _, tile := range filledTiles(g, vp, maxIter) {
						score := g.at(tile.Y0+1, tile.X0+1)
						for row := tile.Y0; row < tile.Y0+tile.H; row++ {
							for col := tile.X0; col < tile.X0+tile.W; col++ {
								onBorder := row == tile.Y0 || row == tile.Y0+tile.H-1 ||
									col == tile.X0 || col == tile.X0+tile.W-1
								if !onBorder {
									interior[g.index(row, col)] = true
									continue
								}
								if b := EscapeScore(vp.PixelCoord(row, col), maxIter); b != score {
									t.Fatalf("%v max %d: tile %v filled with %d but border (%d, %d) is %d",
										vp, maxIter, tile, score, row, col, b)
								}
							}
						}
					}

					for row := range height {
						for col := range width {
							want := EscapeScore(vp.PixelCoord(row, col), maxIter)
							if g.at(row, col) == want {
								continue
							}
							if !interior[g.index(row, col)] {
								t.Fatalf("%v max %d: (%d, %d) = %d, want %d outside any filled tile",
									vp, maxIter, row, col, g.at(row, col), want)
							}
							cuspMisses++
						}
					}
				}
			}
		}
	}
	t.Logf("%d viewports, %d pixels inside filled tiles differ from naive scoring", configs, cuspMisses)
}

func TestAccelerated_MatchesNaiveNearBoundary(t *testing.T) {
	for _, c := range []genCase{
		{37, 29, Coord{-2, 0.36}, 3, 20},
		{37, 29, Coord{-2, 0.36}, 3, 255},
		{37, 29, Coord{-0.75, 0.36}, 3, 2},
		{37, 29, Coord{-1.5, 0}, 9, 20},
	} {
		t.Run(c.String(), func(t *testing.T) {
			naive, _ := generated(t, c, Naive)
			fast, _ := generated(t, c, Accelerated)
			if !fast.Equal(naive) {
				t.Error("accelerated scores differ from naive")
			}
		})
	}
}

func TestGenerate_ScoresInRange(t *testing.T) {
	for _, c := range genCases {
		for _, m := range []Mode{Naive, Accelerated} {
			v, _ := generated(t, c, m)
			for row := range v.Height() {
				for col := range v.Width() {
					if s := v.At(row, col); s < 0 || s > c.maxIter {
						t.Fatalf("%v %v: score %d at (%d, %d) outside [0, %d]", c, m, s, row, col, c.maxIter)
					}
				}
			}
		}
	}
}

func TestGenerate_Stats(t *testing.T) {
	c := genCases[2]

	_, naive := generated(t, c, Naive)
	if naive.Evaluated != c.width*c.height || naive.Filled != 0 {
		t.Errorf("naive stats = %+v, want %d evaluated and none filled", naive, c.width*c.height)
	}

	_, fast := generated(t, c, Accelerated)
	if fast.Filled == 0 {
		t.Error("accelerated generation filled nothing")
	}
	if fast.Evaluated >= naive.Evaluated {
		t.Errorf("accelerated evaluated %d pixels, naive %d", fast.Evaluated, naive.Evaluated)
	}
	if fast.Mode != Accelerated || fast.MaxIterations != c.maxIter {
		t.Errorf("stats = %+v", fast)
	}
}

func TestSubdivide_UniformBorderFills(t *testing.T) {
	// every pixel lies inside the main cardioid
	vp := NewViewport(16, 16, Position{Center: Coord{-0.3, 0}, Zoom: 10})
	g := newGrid(16, 16)
	gen := newGenerator(g, vp, 100)

	if q := gen.subdivide(Tile{W: 16, H: 16}); q != nil {
		t.Fatalf("subdivide split into %v, want fill", q)
	}

	st := gen.stats(Accelerated, 0)
	if st.Evaluated != 60 || st.Filled != 196 || st.Tiles != 1 {
		t.Errorf("stats = %+v, want 60 evaluated, 196 filled, 1 tile", st)
	}
	for _, s := range g.cells {
		if s != 100 {
			t.Fatalf("found score %d, want 100 everywhere", s)
		}
	}
}

func TestSubdivide_BottomBorderMustMatchCorner(t *testing.T) {
	// top, left and right borders escape after one iteration, the bottom
	// row after two
	vp := NewViewport(37, 29, Position{Center: Coord{-2, 0.36}, Zoom: 3})
	g := newGrid(37, 29)
	gen := newGenerator(g, vp, 20)
	tile := Tile{X0: 32, Y0: 0, W: 5, H: 3}

	q := gen.subdivide(tile)
	if len(q) != 4 {
		t.Fatalf("subdivide(%v) = %v, want four quadrants", tile, q)
	}
	for _, sub := range q {
		gen.subdivide(sub)
	}
	for row := tile.Y0; row < tile.Y0+tile.H; row++ {
		for col := tile.X0; col < tile.X0+tile.W; col++ {
			if want := EscapeScore(vp.PixelCoord(row, col), 20); g.at(row, col) != want {
				t.Errorf("(%d, %d) = %d, want %d", row, col, g.at(row, col), want)
			}
		}
	}
}

func TestSubdivide_SmallTilesScoredDirectly(t *testing.T) {
	vp := NewViewport(8, 8, DefaultPosition)

	tests := []Tile{
		{W: 1, H: 1},
		{W: 2, H: 5},
		{W: 5, H: 2},
		{X0: 3, Y0: 4, W: 2, H: 2},
		{X0: 6, Y0: 0, W: 2, H: 8},
	}
	for _, tile := range tests {
		t.Run(tile.String(), func(t *testing.T) {
			g := newGrid(8, 8)
			gen := newGenerator(g, vp, 255)

			if q := gen.subdivide(tile); q != nil {
				t.Fatalf("subdivide(%v) = %v, want nil", tile, q)
			}
			if st := gen.stats(Accelerated, 0); st.Evaluated != tile.Pixels() || st.Filled != 0 {
				t.Errorf("stats = %+v, want %d evaluated", st, tile.Pixels())
			}
			for row := tile.Y0; row < tile.Y0+tile.H; row++ {
				for col := tile.X0; col < tile.X0+tile.W; col++ {
					if want := EscapeScore(vp.PixelCoord(row, col), 255); g.at(row, col) != want {
						t.Errorf("(%d, %d) = %d, want %d", row, col, g.at(row, col), want)
					}
				}
			}
		})
	}
}

func TestSubdivide_SplitsNonUniformBorder(t *testing.T) {
	vp := NewViewport(150, 150, DefaultPosition)
	gen := newGenerator(newGrid(150, 150), vp, 255)

	q := gen.subdivide(Tile{W: 150, H: 150})
	if len(q) != 4 {
		t.Fatalf("subdivide returned %v, want four quadrants", q)
	}
	if q[3] != (Tile{X0: 75, Y0: 75, W: 75, H: 75}) {
		t.Errorf("bottom-right quadrant = %v", q[3])
	}
}

func TestGenerateContext_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	tests := []struct {
		name string
		mode Mode
		opts []Option
	}{
		{"naive", Naive, nil},
		{"accelerated", Accelerated, nil},
		{"parallel", Accelerated, []Option{WithWorkers(3)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(32, 32, tt.opts...)
			defer s.Close()

			err := s.GenerateContext(ctx, tt.mode)
			if !errors.Is(err, context.Canceled) {
				t.Errorf("GenerateContext = %v, want context.Canceled", err)
			}
			if s.State() != Stale {
				t.Errorf("State() = %v after cancelled generation, want stale", s.State())
			}
			if _, err := s.Scores(); !errors.Is(err, ErrStale) {
				t.Errorf("Scores() error = %v, want ErrStale", err)
			}
		})
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in   string
		want Mode
		ok   bool
	}{
		{"naive", Naive, true},
		{"accelerated", Accelerated, true},
		{"fast", Accelerated, true},
		{"turbo", 0, false},
	}
	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		if (err == nil) != tt.ok || got != tt.want {
			t.Errorf("ParseMode(%q) = %v, %v", tt.in, got, err)
		}
	}
}

func BenchmarkGenerate(b *testing.B) {
	for _, bc := range []struct {
		name string
		mode Mode
		opts []Option
	}{
		{"naive", Naive, nil},
		{"accelerated", Accelerated, nil},
		{"parallel4", Accelerated, []Option{WithWorkers(4)}},
	} {
		b.Run(bc.name, func(b *testing.B) {
			s := New(400, 400, bc.opts...)
			defer s.Close()
			for b.Loop() {
				_ = s.GenerateContext(context.Background(), bc.mode)
			}
		})
	}
}
