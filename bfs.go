package gridastar

import "github.com/pdrpinto/gridastar/internal"

// bfsSearch expands cells in discovery order. Cells are marked visited when
// enqueued, so each cell enters the queue at most once.
type bfsSearch struct {
	grid *Grid
	goal Point

	queue   []Point
	head    int
	parents map[Point]Point
	visited map[Point]bool
	closed  map[Point]bool

	state      State
	last       Point
	hasCurrent bool
	expanded   int
}

func newBFS(grid *Grid, start, goal Point) *bfsSearch {
	b := &bfsSearch{
		grid:    grid,
		goal:    goal,
		parents: make(map[Point]Point),
		visited: make(map[Point]bool),
		closed:  make(map[Point]bool),
	}
	switch {
	case !validEndpoints(grid, start, goal):
		b.state = Exhausted
	case start == goal:
		b.state = Found
		b.last, b.hasCurrent = start, true
	default:
		b.queue = append(b.queue, start)
		b.visited[start] = true
	}
	return b
}

func (b *bfsSearch) step() State {
	if b.state != Running {
		return b.state
	}
	if b.head == len(b.queue) {
		b.state = Exhausted
		return b.state
	}

	current := b.queue[b.head]
	b.head++
	b.closed[current] = true
	b.expanded++
	b.last, b.hasCurrent = current, true

	if current == b.goal {
		b.state = Found
		return b.state
	}

	for _, d := range directions {
		next := Point{X: current.X + d.dx, Y: current.Y + d.dy}
		if !b.grid.passable(next) || b.visited[next] || diagonalBlocked(b.grid, current, d) {
			continue
		}
		b.visited[next] = true
		b.parents[next] = current
		b.queue = append(b.queue, next)
	}

	if b.head == len(b.queue) {
		b.state = Exhausted
	}
	return b.state
}

func (b *bfsSearch) parentOf(p Point) (Point, bool) {
	parent, ok := b.parents[p]
	return parent, ok
}

func (b *bfsSearch) status() (State, int) { return b.state, b.expanded }

func (b *bfsSearch) result() Result {
	if b.state != Found {
		return notFound(b.expanded)
	}
	path := internal.ReconstructPath(b.parentOf, b.last)
	return Result{
		Path:     path,
		Cost:     internal.PathCost(path, stepCost),
		Expanded: b.expanded,
		Found:    true,
	}
}

func (b *bfsSearch) current() (Point, bool) { return b.last, b.hasCurrent }

func (b *bfsSearch) openSet() map[Point]bool {
	m := make(map[Point]bool, len(b.queue)-b.head)
	for _, p := range b.queue[b.head:] {
		m[p] = true
	}
	return m
}

func (b *bfsSearch) closedSet() map[Point]bool {
	return copyBoolMap(b.closed)
}
