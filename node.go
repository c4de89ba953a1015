package gridastar

import "math"

// Heuristic returns the estimated cost from a cell to the goal.
type Heuristic func(from, to Point) float64

// Chebyshev is max(|dx|, |dy|). It never overestimates the cost of an
// 8-directional path with unit cardinal steps, and it is consistent.
func Chebyshev(from, to Point) float64 {
	return math.Max(math.Abs(float64(from.X-to.X)), math.Abs(float64(from.Y-to.Y)))
}

// Zero estimates nothing, which turns A* into Dijkstra.
func Zero(Point, Point) float64 { return 0 }

// searchNode is the search state of one cell. The parent link is a
// coordinate resolved through the node table, never a pointer chain.
type searchNode struct {
	key       Point
	g         float64
	h         float64
	f         float64
	parent    Point
	hasParent bool

	// seq and index are owned by the frontier holding the node.
	seq   uint64
	index int
}

func (n *searchNode) setCost(g float64) {
	n.g = g
	n.f = n.g + n.h
}

// nodeTable is the single source of truth for g, f and parent.
type nodeTable map[Point]*searchNode

func (t nodeTable) parentOf(p Point) (Point, bool) {
	n, ok := t[p]
	if !ok || !n.hasParent {
		return Point{}, false
	}
	return n.parent, true
}

type direction struct {
	dx, dy int
	cost   float64
}

func (d direction) diagonal() bool { return d.dx != 0 && d.dy != 0 }

// directions lists cardinal moves first, then diagonals.
var directions = [8]direction{
	{0, 1, 1},
	{1, 0, 1},
	{0, -1, 1},
	{-1, 0, 1},
	{1, 1, math.Sqrt2},
	{1, -1, math.Sqrt2},
	{-1, 1, math.Sqrt2},
	{-1, -1, math.Sqrt2},
}

// diagonalBlocked reports whether moving from p along d cuts a corner:
// a diagonal is rejected if either orthogonal cell beside p is blocked.
// Out-of-bounds orthogonals count as blocked.
func diagonalBlocked(g *Grid, p Point, d direction) bool {
	if !d.diagonal() {
		return false
	}
	return !g.passable(Point{X: p.X, Y: p.Y + d.dy}) || !g.passable(Point{X: p.X + d.dx, Y: p.Y})
}

// stepCost is the price of a single move between adjacent cells.
func stepCost(a, b Point) float64 {
	if a.X != b.X && a.Y != b.Y {
		return math.Sqrt2
	}
	return 1
}
