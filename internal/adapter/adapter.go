// Package adapter is the call boundary around the search engine. It turns
// a boolean grid and four coordinates into a search, times it, and shapes
// the result for JSON callers.
package adapter

import (
	"fmt"
	"time"

	"github.com/pdrpinto/gridastar"
)

// Request is a single path query. Grid[y][x] is true for a blocked cell.
type Request struct {
	Grid      [][]bool `json:"grid" yaml:"grid"`
	StartX    int      `json:"startX" yaml:"start_x"`
	StartY    int      `json:"startY" yaml:"start_y"`
	EndX      int      `json:"endX" yaml:"end_x"`
	EndY      int      `json:"endY" yaml:"end_y"`
	Algorithm string   `json:"algorithm,omitempty" yaml:"algorithm,omitempty"`
	Frontier  string   `json:"frontier,omitempty" yaml:"frontier,omitempty"`
}

// PathPoint is one cell of a returned path.
type PathPoint struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Response is what callers get back. ExecutionTime is in milliseconds.
type Response struct {
	Path          []PathPoint `json:"path"`
	Found         bool        `json:"found"`
	ExecutionTime float64     `json:"executionTime"`
	Cost          float64     `json:"cost"`
	Expanded      int         `json:"expanded"`
	Algorithm     string      `json:"algorithm"`
}

// Prepared is a validated request ready to run.
type Prepared struct {
	Grid        *gridastar.Grid
	Start, Goal gridastar.Point
	Options     []gridastar.Option
	Algorithm   gridastar.Algorithm
}

// Prepare checks the grid shape and option names. Endpoint validity is left
// to the engine, which reports it as a normal not-found result.
func Prepare(req Request) (Prepared, error) {
	grid, err := gridastar.NewGrid(req.Grid)
	if err != nil {
		return Prepared{}, fmt.Errorf("grid: %w", err)
	}
	algorithm, err := gridastar.ParseAlgorithm(req.Algorithm)
	if err != nil {
		return Prepared{}, err
	}
	frontier, err := gridastar.ParseFrontier(req.Frontier)
	if err != nil {
		return Prepared{}, err
	}
	return Prepared{
		Grid:      grid,
		Start:     gridastar.Point{X: req.StartX, Y: req.StartY},
		Goal:      gridastar.Point{X: req.EndX, Y: req.EndY},
		Algorithm: algorithm,
		Options:   []gridastar.Option{gridastar.WithAlgorithm(algorithm), gridastar.WithFrontier(frontier)},
	}, nil
}

// Solve prepares req, runs the search and times it.
func Solve(req Request) (Response, error) {
	p, err := Prepare(req)
	if err != nil {
		return Response{}, err
	}
	return p.Run(), nil
}

// Run executes the prepared search and times it.
func (p Prepared) Run() Response {
	startTime := time.Now()
	res := gridastar.FindPath(p.Grid, p.Start, p.Goal, p.Options...)
	return FromResult(res, p.Algorithm, time.Since(startTime))
}

// FromResult shapes an engine result for the wire.
func FromResult(res gridastar.Result, algorithm gridastar.Algorithm, elapsed time.Duration) Response {
	return Response{
		Path:          Points(res.Path),
		Found:         res.Found,
		ExecutionTime: float64(elapsed) / float64(time.Millisecond),
		Cost:          res.Cost,
		Expanded:      res.Expanded,
		Algorithm:     algorithm.String(),
	}
}

// Points converts engine points to wire points. The result is never nil.
func Points(path []gridastar.Point) []PathPoint {
	out := make([]PathPoint, 0, len(path))
	for _, p := range path {
		out = append(out, PathPoint{X: p.X, Y: p.Y})
	}
	return out
}
