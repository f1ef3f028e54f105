package dynamo

// Trajectory is the integrated solution of a System from one initial
// state. Points[k] approximates the solution at Times[k]. Times is shared
// with every other trajectory built on the same grid and must not be
// modified.
type Trajectory struct {
	Initial Point
	Points  []Point
	Times   []float64
}

func (t *Trajectory) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Points)
}

// Prefix returns the first n points, clamped to [0, Len]. The returned
// slice aliases the trajectory storage.
func (t *Trajectory) Prefix(n int) []Point {
	if t == nil {
		return nil
	}
	if n <= 0 {
		return t.Points[:0:0]
	}
	if n > len(t.Points) {
		n = len(t.Points)
	}
	return t.Points[:n:n]
}

func (t *Trajectory) Last() (Point, bool) {
	if t.Len() == 0 {
		return Point{}, false
	}
	return t.Points[len(t.Points)-1], true
}

// FirstNonFinite returns the index of the first point with a NaN or
// infinite coordinate, or -1.
func (t *Trajectory) FirstNonFinite() int {
	for i, p := range t.Points {
		if !p.IsFinite() {
			return i
		}
	}
	return -1
}

func (t *Trajectory) Finite() bool { return t.FirstNonFinite() < 0 }
