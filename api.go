package gridastar

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

var (
	// ErrUnknownAlgorithm is returned by ParseAlgorithm for an unrecognised name.
	ErrUnknownAlgorithm = errors.New("unknown algorithm")
	// ErrUnknownFrontier is returned by ParseFrontier for an unrecognised name.
	ErrUnknownFrontier = errors.New("unknown frontier")
)

// Result contains the outcome of a search.
type Result struct {
	// Path runs from start to goal inclusive. It is empty when Found is false.
	Path []Point
	// Cost is the sum of step costs along Path.
	Cost float64
	// Expanded counts the cells popped from the frontier.
	Expanded int
	Found    bool
}

// Algorithm selects the search strategy.
type Algorithm int

const (
	// AStar uses the Chebyshev heuristic.
	AStar Algorithm = iota
	// Dijkstra runs the A* loop with a zero heuristic.
	Dijkstra
	// BFS minimises the number of moves rather than their cost.
	BFS
)

func (a Algorithm) String() string {
	switch a {
	case AStar:
		return "astar"
	case Dijkstra:
		return "dijkstra"
	case BFS:
		return "bfs"
	}
	return "unknown"
}

// ParseAlgorithm maps a name such as "astar" to an Algorithm.
// The empty string selects AStar.
func ParseAlgorithm(name string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "astar", "a*":
		return AStar, nil
	case "dijkstra":
		return Dijkstra, nil
	case "bfs":
		return BFS, nil
	}
	return 0, fmt.Errorf("%q: %w", name, ErrUnknownAlgorithm)
}

// ParseFrontier maps "scan" or "heap" to a FrontierKind.
// The empty string selects ScanFrontier.
func ParseFrontier(name string) (FrontierKind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "scan":
		return ScanFrontier, nil
	case "heap":
		return HeapFrontier, nil
	}
	return 0, fmt.Errorf("%q: %w", name, ErrUnknownFrontier)
}

// Options defines parameters for the search.
type Options struct {
	Algorithm Algorithm
	Frontier  FrontierKind
	// NumberOfWorkers bounds concurrent queries in SearchAll.
	NumberOfWorkers int
}

// Option is a function that modifies Options.
type Option func(*Options)

// WithAlgorithm selects the search strategy. The default is AStar.
func WithAlgorithm(algorithm Algorithm) Option {
	return func(options *Options) { options.Algorithm = algorithm }
}

// WithFrontier selects the open-set implementation. The default is ScanFrontier.
func WithFrontier(kind FrontierKind) Option {
	return func(options *Options) { options.Frontier = kind }
}

// WithWorkers specifies how many queries SearchAll runs at once.
func WithWorkers(numberOfWorkers int) Option {
	return func(options *Options) { options.NumberOfWorkers = numberOfWorkers }
}

func buildOptions(options []Option) Options {
	searchOptions := Options{
		NumberOfWorkers: runtime.NumCPU(),
	}
	for _, option := range options {
		option(&searchOptions)
	}
	if searchOptions.NumberOfWorkers < 1 {
		searchOptions.NumberOfWorkers = 1
	}
	return searchOptions
}

// FindPath searches grid for a shortest path from start to goal.
//
// An out-of-bounds or blocked start or goal yields Found == false and an
// empty path. If start == goal the path is just that cell and nothing is
// expanded.
func FindPath(grid *Grid, start, goal Point, options ...Option) Result {
	s := newSearcher(grid, start, goal, buildOptions(options))
	for s.step() == Running {
	}
	return s.result()
}

// searcher is a resumable search. step performs one pop-and-expand.
type searcher interface {
	step() State
	// status reports the current state and how many cells were popped.
	status() (State, int)
	result() Result
	current() (Point, bool)
	openSet() map[Point]bool
	closedSet() map[Point]bool
}

func newSearcher(grid *Grid, start, goal Point, options Options) searcher {
	switch options.Algorithm {
	case BFS:
		return newBFS(grid, start, goal)
	case Dijkstra:
		return newEngine(grid, start, goal, Zero, options.Frontier)
	default:
		return newEngine(grid, start, goal, Chebyshev, options.Frontier)
	}
}

func validEndpoints(grid *Grid, start, goal Point) bool {
	return grid.passable(start) && grid.passable(goal)
}

func notFound(expanded int) Result {
	return Result{Path: []Point{}, Expanded: expanded}
}
