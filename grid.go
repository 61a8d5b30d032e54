package mandel

import "fmt"

// Grid is a row-major buffer of scores. Out of range access panics.
type Grid struct {
	width, height int
	cells         []int
}

func newGrid(width, height int) *Grid {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("mandel: grid dimensions must be positive, got %dx%d", width, height))
	}
	g := &Grid{width: width, height: height}
	g.alloc()
	return g
}

// alloc allocates the cells unless they already are.
func (g *Grid) alloc() {
	if g.cells == nil {
		g.cells = make([]int, g.width*g.height)
	}
}

func (g *Grid) release() {
	g.cells = nil
}

func (g *Grid) allocated() bool {
	return g.cells != nil
}

func (g *Grid) index(row, col int) int {
	if row < 0 || row >= g.height || col < 0 || col >= g.width {
		panic(fmt.Sprintf("mandel: pixel (%d, %d) outside %dx%d grid", row, col, g.width, g.height))
	}
	return row*g.width + col
}

func (g *Grid) at(row, col int) int {
	return g.cells[g.index(row, col)]
}

func (g *Grid) set(row, col, score int) {
	g.cells[g.index(row, col)] = score
}

// View is a read-only window onto a session's scores. It shares storage with
// the session: regenerating the session changes what the view returns.
type View struct {
	width, height int
	maxIterations int
	cells         []int
}

func (v View) Width() int  { return v.width }
func (v View) Height() int { return v.height }

// MaxIterations is the bound the scores were generated with; scores equal to
// it mark points taken to be in the set.
func (v View) MaxIterations() int { return v.maxIterations }

// At returns the score of pixel (row, col).
func (v View) At(row, col int) int {
	if row < 0 || row >= v.height || col < 0 || col >= v.width {
		panic(fmt.Sprintf("mandel: pixel (%d, %d) outside %dx%d view", row, col, v.width, v.height))
	}
	return v.cells[row*v.width+col]
}

// Row returns a copy of row r.
func (v View) Row(r int) []int {
	if r < 0 || r >= v.height {
		panic(fmt.Sprintf("mandel: row %d outside %dx%d view", r, v.width, v.height))
	}
	return append([]int(nil), v.cells[r*v.width:(r+1)*v.width]...)
}

// Rows returns a copy of the scores, top row first.
func (v View) Rows() [][]int {
	rows := make([][]int, v.height)
	for r := range rows {
		rows[r] = v.Row(r)
	}
	return rows
}

// Equal reports whether both views hold the same dimensions and scores.
func (v View) Equal(o View) bool {
	if v.width != o.width || v.height != o.height {
		return false
	}
	for i, s := range v.cells {
		if o.cells[i] != s {
			return false
		}
	}
	return true
}

// NewView wraps row-major scores, e.g. ones received from a remote renderer.
func NewView(width, height, maxIterations int, scores []int) (View, error) {
	if width <= 0 || height <= 0 {
		return View{}, fmt.Errorf("invalid dimensions %dx%d", width, height)
	}
	if width > len(scores)/height || width*height != len(scores) {
		return View{}, fmt.Errorf("got %d scores for %dx%d grid", len(scores), width, height)
	}
	return View{width: width, height: height, maxIterations: maxIterations, cells: scores}, nil
}
