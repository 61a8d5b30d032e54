package mandel

// escapeRadiusSq is the squared magnitude past which an orbit diverges.
const escapeRadiusSq = 4

// InMainCardioid reports whether c lies in the main cardioid, where every
// point is known to be in the set.
func InMainCardioid(c Coord) bool {
	xs := c.X - 0.25
	ySq := c.Y * c.Y
	q := xs*xs + ySq
	return q*(q+xs) < 0.25*ySq
}

// EscapeScore returns the iteration at which the orbit of c leaves the escape
// radius, or maxIterations if it does not within that many iterations.
func EscapeScore(c Coord, maxIterations int) int {
	if InMainCardioid(c) {
		return maxIterations
	}

	var x, y, xSq, ySq float64
	score := 0
	for xSq+ySq < escapeRadiusSq && score != maxIterations {
		nx := xSq - ySq + c.X
		y = 2*x*y + c.Y
		x = nx

		xSq = x * x
		ySq = y * y
		score++
	}
	return score
}
