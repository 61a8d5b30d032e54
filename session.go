package mandel

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// State tells whether a session's scores match its viewport.
type State int

const (
	// Stale is the state of a new session and of one whose position changed
	// since the last generation.
	Stale State = iota
	// Fresh follows a completed generation.
	Fresh
)

func (s State) String() string {
	switch s {
	case Stale:
		return "stale"
	case Fresh:
		return "fresh"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// ScoreProvider exposes generated scores. Session implements it.
type ScoreProvider interface {
	Scores() (View, error)
}

var _ ScoreProvider = (*Session)(nil)

// Option configures a Session.
type Option func(*Session)

// WithMaxIterations sets the escape bound. It panics if n is not positive.
func WithMaxIterations(n int) Option {
	mustPositiveIterations(n)
	return func(s *Session) { s.maxIterations = n }
}

// WithWorkers sets how many goroutines accelerated generation uses.
// Values below 2 keep it on the calling goroutine.
func WithWorkers(n int) Option {
	return func(s *Session) { s.workers = max(n, 1) }
}

// WithLogger overrides the package logger for this session.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// Session holds a fixed-size grid of scores together with the viewport they
// are generated for. Its grid is allocated once and reused by every
// generation.
//
// A Session is not safe for concurrent use.
type Session struct {
	vp            Viewport
	maxIterations int
	workers       int
	grid          *Grid
	state         State
	closed        bool
	stats         Stats
	logger        *slog.Logger
}

// New creates a width x height session at DefaultPosition. It panics if
// either dimension is not positive.
func New(width, height int, opts ...Option) *Session {
	s := &Session{
		maxIterations: DefaultMaxIterations,
		workers:       1,
		grid:          newGrid(width, height),
		state:         Stale,
		logger:        Logger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.vp = NewViewport(width, height, DefaultPosition)
	return s
}

func mustPositiveIterations(n int) {
	if n <= 0 {
		panic(fmt.Sprintf("mandel: max iterations must be positive, got %d", n))
	}
}

func (s *Session) mustOpen(op string) {
	if s == nil {
		panic("mandel: " + op + " on nil session")
	}
	if s.closed {
		panic("mandel: " + op + " on closed session")
	}
}

func (s *Session) Width() int  { return s.vp.Width }
func (s *Session) Height() int { return s.vp.Height }

// Viewport returns the current viewport.
func (s *Session) Viewport() Viewport { return s.vp }

// Position returns the current center and zoom.
func (s *Session) Position() Position { return s.vp.Position }

func (s *Session) MaxIterations() int { return s.maxIterations }

func (s *Session) State() State { return s.state }

// Stats returns statistics of the last completed generation.
func (s *Session) Stats() Stats { return s.stats }

// SetPosition moves the viewport. The session becomes Stale.
func (s *Session) SetPosition(center Coord, zoom int) {
	s.mustOpen("SetPosition")
	s.vp = NewViewport(s.vp.Width, s.vp.Height, Position{Center: center, Zoom: zoom})
	s.state = Stale
}

// SetMaxIterations changes the escape bound of later generations.
// It does not make the session Stale: scores already generated stay readable
// and keep the bound they were generated with.
func (s *Session) SetMaxIterations(n int) {
	s.mustOpen("SetMaxIterations")
	mustPositiveIterations(n)
	s.maxIterations = n
}

// Generate scores every pixel of the viewport.
func (s *Session) Generate() {
	// background context: cannot fail
	_ = s.GenerateContext(context.Background(), Naive)
}

// FastGenerate generates the viewport with Mariani/Silver subdivision.
func (s *Session) FastGenerate() {
	_ = s.GenerateContext(context.Background(), Accelerated)
}

// GenerateContext generates the viewport in mode m. The context is checked
// before every rectangle; if it is done the session is left Stale and the
// context's error returned.
func (s *Session) GenerateContext(ctx context.Context, m Mode) error {
	s.mustOpen("Generate")
	s.grid.alloc()

	start := time.Now()
	root := Tile{W: s.vp.Width, H: s.vp.Height}
	gen := newGenerator(s.grid, s.vp, s.maxIterations)

	s.state = Stale
	var err error
	switch {
	case m == Naive:
		err = gen.naive(ctx, root)
	case m == Accelerated && s.workers > 1:
		err = gen.parallel(ctx, root, s.workers)
	case m == Accelerated:
		err = gen.accelerated(ctx, root)
	default:
		panic(fmt.Sprintf("mandel: unknown generation mode %v", m))
	}
	if err != nil {
		return err
	}

	s.stats = gen.stats(m, time.Since(start))
	s.state = Fresh
	s.logger.Debug("generated",
		"viewport", s.vp.String(),
		"mode", m.String(),
		"workers", s.workers,
		"tiles", s.stats.Tiles,
		"evaluated", s.stats.Evaluated,
		"filled", s.stats.Filled,
		"duration", s.stats.Duration,
	)
	return nil
}

// Scores returns a view of the grid. It fails with ErrStale unless the
// session is Fresh, and with ErrClosed after Close.
func (s *Session) Scores() (View, error) {
	if s.closed {
		return View{}, ErrClosed
	}
	if s.state != Fresh {
		s.logger.Warn(ErrStale.Error(), "viewport", s.vp.String())
		return View{}, ErrStale
	}
	return View{
		width:         s.vp.Width,
		height:        s.vp.Height,
		maxIterations: s.stats.MaxIterations,
		cells:         s.grid.cells,
	}, nil
}

// Close releases the grid. Scores then fails with ErrClosed and any other
// use panics. Close is safe to call more than once.
func (s *Session) Close() {
	if s.closed {
		return
	}
	s.grid.release()
	s.closed = true
	s.state = Stale
}
