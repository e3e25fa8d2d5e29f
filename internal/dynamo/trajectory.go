package dynamo

import "gonum.org/v1/gonum/spatial/r2"

// Trajectory is the ordered history of a body's positions.
// With a positive capacity it keeps only the most recent points.
type Trajectory struct {
	points []r2.Vec
	cap    int
	head   int
	total  int
}

func NewTrajectory(capacity int) *Trajectory {
	if capacity < 0 {
		capacity = 0
	}
	t := &Trajectory{cap: capacity}
	if capacity > 0 {
		t.points = make([]r2.Vec, 0, capacity)
	}
	return t
}

func (t *Trajectory) Append(p r2.Vec) {
	t.total++
	if t.cap == 0 || len(t.points) < t.cap {
		t.points = append(t.points, p)
		return
	}
	t.points[t.head] = p
	t.head = (t.head + 1) % t.cap
}

// Len is the number of points currently held.
func (t *Trajectory) Len() int { return len(t.points) }

// Cap is the configured capacity, 0 for unbounded.
func (t *Trajectory) Cap() int { return t.cap }

// Total counts every point ever appended, evicted ones included.
func (t *Trajectory) Total() int { return t.total }

// Points returns a copy of the held points, oldest first.
func (t *Trajectory) Points() []r2.Vec {
	out := make([]r2.Vec, 0, len(t.points))
	out = append(out, t.points[t.head:]...)
	out = append(out, t.points[:t.head]...)
	return out
}

// Each calls fn on every held point, oldest first, without copying.
func (t *Trajectory) Each(fn func(p r2.Vec)) {
	for _, p := range t.points[t.head:] {
		fn(p)
	}
	for _, p := range t.points[:t.head] {
		fn(p)
	}
}

func (t *Trajectory) Last() (r2.Vec, bool) {
	if len(t.points) == 0 {
		return r2.Vec{}, false
	}
	i := t.head - 1
	if i < 0 {
		i = len(t.points) - 1
	}
	return t.points[i], true
}

func (t *Trajectory) Reset() {
	t.points = t.points[:0]
	t.head = 0
	t.total = 0
}
