package mandel

import (
	"context"
	"fmt"
	"math"
)

//go:generate go run github.com/marben/irpc/cmd/irpc@v0.0.0-20260109104542-2d3fde99869b

// Renderer renders a whole job and returns scores the caller owns.
type Renderer interface {
	Render(ctx context.Context, job Job) (View, error)
}

const (
	// MaxJobPixels limits the size of a single job.
	MaxJobPixels = 1 << 24
	// MaxJobIterations limits the escape bound of a single job.
	MaxJobIterations = math.MaxInt32
)

// Job describes one rendering request.
type Job struct {
	Position
	Width         int  `json:"width"`
	Height        int  `json:"height"`
	MaxIterations int  `json:"maxIterations"`
	Mode          Mode `json:"mode"`
}

// Validate reports the first problem that would make the job panic or
// exceed MaxJobPixels or MaxJobIterations.
func (j Job) Validate() error {
	if err := checkDimensions(j.Width, j.Height); err != nil {
		return err
	}
	if j.MaxIterations <= 0 || j.MaxIterations > MaxJobIterations {
		return fmt.Errorf("invalid max iterations %d", j.MaxIterations)
	}
	if j.Mode != Naive && j.Mode != Accelerated {
		return fmt.Errorf("invalid mode %v", j.Mode)
	}
	return nil
}

// checkDimensions rejects non-positive sizes and grids over MaxJobPixels
// without multiplying the sides.
func checkDimensions(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid dimensions %dx%d", width, height)
	}
	if width > MaxJobPixels/height {
		return fmt.Errorf("%dx%d exceeds %d pixels", width, height, MaxJobPixels)
	}
	return nil
}

func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Mode) UnmarshalText(b []byte) error {
	v, err := ParseMode(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}
