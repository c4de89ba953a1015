package gridastar

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyGrid is returned when a grid has no rows or no columns.
	ErrEmptyGrid = errors.New("grid is empty")
	// ErrRaggedGrid is returned when rows have different lengths.
	ErrRaggedGrid = errors.New("grid rows have different lengths")
)

// Point is a cell coordinate. X is the column, Y the row.
type Point struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

func (p Point) String() string { return fmt.Sprintf("(%d,%d)", p.X, p.Y) }

// Grid is an immutable rectangular occupancy map. A true cell is blocked.
type Grid struct {
	width  int
	height int
	cells  []bool
}

// NewGrid copies rows into a Grid. rows[y][x] is the cell at (x, y).
func NewGrid(rows [][]bool) (*Grid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrEmptyGrid
	}
	width := len(rows[0])
	cells := make([]bool, 0, width*len(rows))
	for y, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("row %d has %d cells, want %d: %w", y, len(row), width, ErrRaggedGrid)
		}
		cells = append(cells, row...)
	}
	return &Grid{width: width, height: len(rows), cells: cells}, nil
}

// MustGrid is like NewGrid but panics on a malformed grid.
func MustGrid(rows [][]bool) *Grid {
	g, err := NewGrid(rows)
	if err != nil {
		panic(err)
	}
	return g
}

// ParseGrid reads a grid drawn with '.' for open cells and '#' or 'X' for
// blocked ones. Blank lines and surrounding whitespace are ignored.
func ParseGrid(text string) (*Grid, error) {
	var rows [][]bool
	for n, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		row := make([]bool, 0, len(line))
		for _, r := range line {
			switch r {
			case '.':
				row = append(row, false)
			case '#', 'X':
				row = append(row, true)
			default:
				return nil, fmt.Errorf("line %d: unexpected cell %q", n+1, r)
			}
		}
		rows = append(rows, row)
	}
	return NewGrid(rows)
}

// Width is the number of columns.
func (g *Grid) Width() int { return g.width }

// Height is the number of rows.
func (g *Grid) Height() int { return g.height }

// Cells reports the number of cells in the grid.
func (g *Grid) Cells() int { return len(g.cells) }

// InBounds reports whether p lies inside the grid.
func (g *Grid) InBounds(p Point) bool {
	return p.X >= 0 && p.X < g.width && p.Y >= 0 && p.Y < g.height
}

// Blocked reports whether the cell at p is blocked. p must be in bounds.
func (g *Grid) Blocked(p Point) bool {
	return g.cells[p.Y*g.width+p.X]
}

// passable is InBounds && !Blocked.
func (g *Grid) passable(p Point) bool {
	return g.InBounds(p) && !g.Blocked(p)
}

// Rows returns a fresh copy of the grid as rows of cells.
func (g *Grid) Rows() [][]bool {
	rows := make([][]bool, g.height)
	for y := range rows {
		rows[y] = append([]bool(nil), g.cells[y*g.width:(y+1)*g.width]...)
	}
	return rows
}

// String draws the grid in the format ParseGrid accepts.
func (g *Grid) String() string {
	return g.Render(nil)
}

// Render draws the grid with the cells of path marked '*'.
func (g *Grid) Render(path []Point) string {
	onPath := make(map[Point]bool, len(path))
	for _, p := range path {
		onPath[p] = true
	}
	var b strings.Builder
	b.Grow((g.width + 1) * g.height)
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			p := Point{X: x, Y: y}
			switch {
			case onPath[p]:
				b.WriteByte('*')
			case g.Blocked(p):
				b.WriteByte('#')
			default:
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
