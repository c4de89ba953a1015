// Package gridgen builds random grids with clustered walls.
package gridgen

import (
	"errors"
	"math/rand/v2"

	"github.com/pdrpinto/gridastar"
)

// ErrInvalidParams is returned for out-of-range Params.
var ErrInvalidParams = errors.New("invalid grid parameters")

const (
	// MaxSide bounds Width and Height.
	MaxSide = 1 << 15
	// MaxWalkPerCell bounds Clusters*Steps as a multiple of the cell count.
	MaxWalkPerCell = 64
)

// Params controls generation. Zero values pick the defaults below.
type Params struct {
	Width    int     `json:"width"`
	Height   int     `json:"height"`
	Clusters int     `json:"clusters"`
	Steps    int     `json:"steps"`
	Density  float64 `json:"density"`
	Seed     uint64  `json:"seed"`
}

// Defaults fills unset fields: a 40x24 grid with 8 clusters of 200 steps
// at density 0.25.
func (p Params) Defaults() Params {
	if p.Width == 0 {
		p.Width = 40
	}
	if p.Height == 0 {
		p.Height = 24
	}
	if p.Clusters == 0 {
		p.Clusters = 8
	}
	if p.Steps == 0 {
		p.Steps = 200
	}
	if p.Density == 0 {
		p.Density = 0.25
	}
	return p
}

// Cells is Width*Height after defaults. It cannot overflow while both sides
// are within MaxSide.
func (p Params) Cells() int64 {
	p = p.Defaults()
	return int64(p.Width) * int64(p.Height)
}

func (p Params) validate() error {
	if p.Width < 2 || p.Height < 1 || p.Width > MaxSide || p.Height > MaxSide ||
		p.Clusters < 0 || p.Steps < 0 || p.Density < 0 || p.Density > 1 {
		return ErrInvalidParams
	}
	if p.Steps > 0 && int64(p.Clusters) > MaxWalkPerCell*p.Cells()/int64(p.Steps) {
		return ErrInvalidParams
	}
	return nil
}

// Scenario is a generated grid with distinct, passable endpoints.
type Scenario struct {
	Grid  *gridastar.Grid
	Start gridastar.Point
	Goal  gridastar.Point
}

var walk = [4]gridastar.Point{{X: 1, Y: 0}, {X: -1, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: -1}}

// Generate grows each wall cluster by a random walk from a random cell,
// dropping a wall on each visited cell with probability Density. The same
// Params always produce the same Scenario.
func Generate(p Params) (Scenario, error) {
	p = p.Defaults()
	if err := p.validate(); err != nil {
		return Scenario{}, err
	}
	r := rand.New(rand.NewPCG(p.Seed, p.Seed^0x9e3779b97f4a7c15))

	var start, goal gridastar.Point
	for {
		start = gridastar.Point{X: r.IntN(p.Width), Y: r.IntN(p.Height)}
		goal = gridastar.Point{X: r.IntN(p.Width), Y: r.IntN(p.Height)}
		if start != goal {
			break
		}
	}

	rows := make([][]bool, p.Height)
	for y := range rows {
		rows[y] = make([]bool, p.Width)
	}
	for c := 0; c < p.Clusters; c++ {
		cur := gridastar.Point{X: r.IntN(p.Width), Y: r.IntN(p.Height)}
		for s := 0; s < p.Steps; s++ {
			if r.Float64() < p.Density && cur != start && cur != goal {
				rows[cur.Y][cur.X] = true
			}
			d := walk[r.IntN(len(walk))]
			next := gridastar.Point{X: cur.X + d.X, Y: cur.Y + d.Y}
			if next.X >= 0 && next.X < p.Width && next.Y >= 0 && next.Y < p.Height {
				cur = next
			}
		}
	}

	grid, err := gridastar.NewGrid(rows)
	if err != nil {
		return Scenario{}, err
	}
	return Scenario{Grid: grid, Start: start, Goal: goal}, nil
}
