package gridastar

import "github.com/pdrpinto/gridastar/internal"

// State is the phase of a search.
type State int

const (
	// Running means the frontier is non-empty and the goal has not been popped.
	Running State = iota
	// Found means the goal was popped.
	Found
	// Exhausted means the frontier emptied without reaching the goal.
	Exhausted
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Found:
		return "found"
	case Exhausted:
		return "exhausted"
	}
	return "unknown"
}

// engine is the best-first loop shared by AStar and Dijkstra.
type engine struct {
	grid      *Grid
	goal      Point
	heuristic Heuristic

	table  nodeTable
	open   frontier
	closed map[Point]bool

	state    State
	last     *searchNode
	expanded int
}

func newEngine(grid *Grid, start, goal Point, heuristic Heuristic, kind FrontierKind) *engine {
	e := &engine{
		grid:      grid,
		goal:      goal,
		heuristic: heuristic,
		table:     make(nodeTable),
		open:      newFrontier(kind),
		closed:    make(map[Point]bool),
	}
	if !validEndpoints(grid, start, goal) {
		e.state = Exhausted
		return e
	}

	startNode := &searchNode{key: start, h: heuristic(start, goal)}
	startNode.setCost(0)
	e.table[start] = startNode
	if start == goal {
		e.state = Found
		e.last = startNode
		return e
	}
	e.open.push(startNode)
	return e
}

func (e *engine) step() State {
	if e.state != Running {
		return e.state
	}
	if e.open.Len() == 0 {
		e.state = Exhausted
		return e.state
	}

	current := e.open.popMin()
	e.closed[current.key] = true
	e.expanded++
	e.last = current

	if current.key == e.goal {
		e.state = Found
		return e.state
	}

	for _, d := range directions {
		next := Point{X: current.key.X + d.dx, Y: current.key.Y + d.dy}
		if !e.grid.passable(next) || e.closed[next] {
			continue
		}
		if diagonalBlocked(e.grid, current.key, d) {
			continue
		}

		tentativeG := current.g + d.cost
		neighbor, seen := e.table[next]
		if !seen {
			neighbor = &searchNode{
				key:       next,
				h:         e.heuristic(next, e.goal),
				parent:    current.key,
				hasParent: true,
			}
			neighbor.setCost(tentativeG)
			e.table[next] = neighbor
			e.open.push(neighbor)
			continue
		}
		if tentativeG < neighbor.g {
			neighbor.parent = current.key
			neighbor.hasParent = true
			neighbor.setCost(tentativeG)
			e.open.update(neighbor)
		}
	}

	if e.open.Len() == 0 {
		e.state = Exhausted
	}
	return e.state
}

func (e *engine) status() (State, int) { return e.state, e.expanded }

func (e *engine) result() Result {
	if e.state != Found {
		return notFound(e.expanded)
	}
	return Result{
		Path:     internal.ReconstructPath(e.table.parentOf, e.last.key),
		Cost:     e.last.g,
		Expanded: e.expanded,
		Found:    true,
	}
}

func (e *engine) current() (Point, bool) {
	if e.last == nil {
		return Point{}, false
	}
	return e.last.key, true
}

func (e *engine) openSet() map[Point]bool {
	nodes := e.open.nodes()
	m := make(map[Point]bool, len(nodes))
	for _, n := range nodes {
		m[n.key] = true
	}
	return m
}

func (e *engine) closedSet() map[Point]bool {
	return copyBoolMap(e.closed)
}
