package mandel

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// tileScheduler hands out tiles of an accelerated generation to workers.
// Quadrants are queued only after their parent's border is written, so a
// worker popping a quadrant sees the border it builds on.
type tileScheduler struct {
	m    sync.Mutex
	cond *sync.Cond

	unstarted []Tile
	inProcess int
	stopped   bool
}

func newTileScheduler(root Tile) *tileScheduler {
	ts := &tileScheduler{unstarted: []Tile{root}}
	ts.cond = sync.NewCond(&ts.m)
	return ts
}

// popTile blocks until a tile is available. found is false once every tile
// is finished or the scheduler was stopped.
func (ts *tileScheduler) popTile() (tile Tile, found bool) {
	ts.m.Lock()
	defer ts.m.Unlock()

	for len(ts.unstarted) == 0 && ts.inProcess > 0 && !ts.stopped {
		ts.cond.Wait()
	}
	if ts.stopped || len(ts.unstarted) == 0 {
		return Tile{}, false
	}

	tile = ts.unstarted[len(ts.unstarted)-1]
	ts.unstarted = ts.unstarted[:len(ts.unstarted)-1]
	ts.inProcess++
	return tile, true
}

// tileFinished marks a popped tile done and queues the tiles it split into.
func (ts *tileScheduler) tileFinished(children []Tile) {
	ts.m.Lock()
	defer ts.m.Unlock()

	ts.inProcess--
	ts.unstarted = append(ts.unstarted, children...)
	if len(children) > 0 || ts.inProcess == 0 {
		ts.cond.Broadcast()
	}
}

func (ts *tileScheduler) stop() {
	ts.m.Lock()
	ts.stopped = true
	ts.m.Unlock()
	ts.cond.Broadcast()
}

// parallel generates root with Mariani/Silver subdivision on the given
// number of goroutines. The result is the same as accelerated's.
func (gen *generator) parallel(ctx context.Context, root Tile, workers int) error {
	ts := newTileScheduler(root)
	g, ctx := errgroup.WithContext(ctx)
	stop := context.AfterFunc(ctx, ts.stop)
	defer stop()

	for range workers {
		g.Go(func() error {
			for {
				if err := ctx.Err(); err != nil {
					return err
				}
				tile, found := ts.popTile()
				if !found {
					return ctx.Err()
				}
				ts.tileFinished(gen.subdivide(tile))
			}
		})
	}
	return g.Wait()
}
