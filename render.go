package mandel

import (
	"context"
	"sync"
)

type gridSize struct{ w, h int }

// RendererImpl renders jobs in process. Sessions are kept per grid size and
// reused, so repeated jobs of the same size do not allocate a new grid.
// It is safe for concurrent use.
type RendererImpl struct {
	Workers     int       // goroutines per accelerated job, see WithWorkers
	OnJobRender func(Job) // called before each job, if set

	m    sync.Mutex
	idle map[gridSize][]*Session
}

var _ Renderer = (*RendererImpl)(nil)

func (r *RendererImpl) acquire(w, h int) *Session {
	r.m.Lock()
	defer r.m.Unlock()

	key := gridSize{w, h}
	if n := len(r.idle[key]); n > 0 {
		s := r.idle[key][n-1]
		r.idle[key] = r.idle[key][:n-1]
		return s
	}
	return New(w, h, WithWorkers(r.Workers))
}

func (r *RendererImpl) release(s *Session) {
	r.m.Lock()
	defer r.m.Unlock()

	if r.idle == nil {
		r.idle = make(map[gridSize][]*Session)
	}
	key := gridSize{s.Width(), s.Height()}
	r.idle[key] = append(r.idle[key], s)
}

// Render generates job and returns a copy of its scores.
func (r *RendererImpl) Render(ctx context.Context, job Job) (View, error) {
	if err := job.Validate(); err != nil {
		return View{}, err
	}
	if r.OnJobRender != nil {
		r.OnJobRender(job)
	}

	s := r.acquire(job.Width, job.Height)
	defer r.release(s)

	s.SetPosition(job.Center, job.Zoom)
	s.SetMaxIterations(job.MaxIterations)
	if err := s.GenerateContext(ctx, job.Mode); err != nil {
		return View{}, err
	}
	v, err := s.Scores()
	if err != nil {
		return View{}, err
	}
	v.cells = append([]int(nil), v.cells...)
	return v, nil
}

// Close releases every idle session.
func (r *RendererImpl) Close() {
	r.m.Lock()
	defer r.m.Unlock()

	for _, sessions := range r.idle {
		for _, s := range sessions {
			s.Close()
		}
	}
	r.idle = nil
}
