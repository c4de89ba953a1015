// Package gridfile reads path scenarios from disk.
//
// A text scenario draws the grid with '.' for open cells, '#' or 'X' for
// walls, and optionally 'S' and 'G' for the start and goal:
//
//	S..#
//	.#..
//	...G
//
// A YAML scenario lists the same rows and may give the endpoints
// explicitly:
//
//	grid:
//	  - "...#"
//	  - ".#.."
//	start: [0, 0]
//	goal: [3, 1]
package gridfile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/pdrpinto/gridastar"
)

// Scenario is a grid with optional endpoints.
type Scenario struct {
	Grid     *gridastar.Grid
	Start    gridastar.Point
	Goal     gridastar.Point
	HasStart bool
	HasGoal  bool
}

// Load reads path as YAML when it ends in .yaml or .yml, text otherwise.
func Load(path string) (Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Scenario{}, fmt.Errorf("read scenario %s: %w", path, err)
	}
	var sc Scenario
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		sc, err = ParseYAML(data)
	default:
		sc, err = ParseText(string(data))
	}
	if err != nil {
		return Scenario{}, fmt.Errorf("parse scenario %s: %w", path, err)
	}
	return sc, nil
}

// ParseText reads a text scenario.
func ParseText(text string) (Scenario, error) {
	var sc Scenario
	var rows []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		y := len(rows)
		cells := []rune(line)
		for x, r := range cells {
			switch r {
			case 'S':
				if sc.HasStart {
					return Scenario{}, fmt.Errorf("row %d: second start marker", y)
				}
				sc.Start, sc.HasStart = gridastar.Point{X: x, Y: y}, true
				cells[x] = '.'
			case 'G':
				if sc.HasGoal {
					return Scenario{}, fmt.Errorf("row %d: second goal marker", y)
				}
				sc.Goal, sc.HasGoal = gridastar.Point{X: x, Y: y}, true
				cells[x] = '.'
			}
		}
		rows = append(rows, string(cells))
	}
	grid, err := gridastar.ParseGrid(strings.Join(rows, "\n"))
	if err != nil {
		return Scenario{}, err
	}
	sc.Grid = grid
	return sc, nil
}

type yamlScenario struct {
	Grid  []string `yaml:"grid"`
	Start *[2]int  `yaml:"start"`
	Goal  *[2]int  `yaml:"goal"`
}

// ParseYAML reads a YAML scenario. Explicit start and goal entries win over
// markers drawn in the rows.
func ParseYAML(data []byte) (Scenario, error) {
	var raw yamlScenario
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Scenario{}, err
	}
	sc, err := ParseText(strings.Join(raw.Grid, "\n"))
	if err != nil {
		return Scenario{}, err
	}
	if raw.Start != nil {
		sc.Start, sc.HasStart = gridastar.Point{X: raw.Start[0], Y: raw.Start[1]}, true
	}
	if raw.Goal != nil {
		sc.Goal, sc.HasGoal = gridastar.Point{X: raw.Goal[0], Y: raw.Goal[1]}, true
	}
	return sc, nil
}

// FormatText renders sc in the text scenario format, drawing the start and
// goal markers that are set. ParseText reads the output back.
func FormatText(sc Scenario) string {
	var b strings.Builder
	for y, row := range sc.Grid.Rows() {
		for x, blocked := range row {
			p := gridastar.Point{X: x, Y: y}
			switch {
			case sc.HasStart && p == sc.Start:
				b.WriteByte('S')
			case sc.HasGoal && p == sc.Goal:
				b.WriteByte('G')
			case blocked:
				b.WriteByte('#')
			default:
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
