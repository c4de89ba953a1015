package gridastar_test

import (
	"fmt"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdrpinto/gridastar"
)

type pt = gridastar.Point

func TestFindPathOpenGridDiagonal(t *testing.T) {
	g := mustParse(t, ".....\n.....\n.....\n.....\n.....")
	for _, kind := range []gridastar.FrontierKind{gridastar.ScanFrontier, gridastar.HeapFrontier} {
		t.Run(kind.String(), func(t *testing.T) {
			res := gridastar.FindPath(g, pt{X: 0, Y: 0}, pt{X: 4, Y: 4}, gridastar.WithFrontier(kind))
			require.True(t, res.Found)
			want := []pt{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 2}, {X: 3, Y: 3}, {X: 4, Y: 4}}
			if diff := cmp.Diff(want, res.Path); diff != "" {
				t.Errorf("path mismatch (-want +got):\n%s", diff)
			}
			assert.InDelta(t, 4*math.Sqrt2, res.Cost, 1e-9)
		})
	}
}

func TestFindPathCorners(t *testing.T) {
	t.Run("routes around a single blocked orthogonal", func(t *testing.T) {
		g := mustParse(t, `
			.#.
			...
			...`)
		res := gridastar.FindPath(g, pt{X: 0, Y: 0}, pt{X: 1, Y: 1})
		require.True(t, res.Found)
		if diff := cmp.Diff([]pt{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}}, res.Path); diff != "" {
			t.Errorf("path mismatch (-want +got):\n%s", diff)
		}
		assert.InDelta(t, 2.0, res.Cost, 1e-9)
	})

	t.Run("closed corner is impassable", func(t *testing.T) {
		g := mustParse(t, ".#\n#.")
		res := gridastar.FindPath(g, pt{X: 0, Y: 0}, pt{X: 1, Y: 1})
		assert.False(t, res.Found)
		assert.Empty(t, res.Path)
		assert.Equal(t, 1, res.Expanded)
	})

	t.Run("diagonal wall forces detour", func(t *testing.T) {
		g := mustParse(t, `
			....
			.#..
			..#.
			....`)
		res := gridastar.FindPath(g, pt{X: 1, Y: 2}, pt{X: 2, Y: 1})
		require.True(t, res.Found)
		assertValidPath(t, g, res.Path, pt{X: 1, Y: 2}, pt{X: 2, Y: 1})
		assert.Greater(t, len(res.Path), 2)
	})
}

func TestFindPathRejectsEndpoints(t *testing.T) {
	g := mustParse(t, "...\n.#.\n...")
	tests := []struct {
		name        string
		start, goal pt
	}{
		{"goal blocked", pt{X: 0, Y: 0}, pt{X: 1, Y: 1}},
		{"start blocked", pt{X: 1, Y: 1}, pt{X: 0, Y: 0}},
		{"start out of bounds", pt{X: -1, Y: 0}, pt{X: 2, Y: 2}},
		{"goal out of bounds", pt{X: 0, Y: 0}, pt{X: 3, Y: 0}},
		{"goal below grid", pt{X: 0, Y: 0}, pt{X: 0, Y: 3}},
		{"same blocked cell", pt{X: 1, Y: 1}, pt{X: 1, Y: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, alg := range []gridastar.Algorithm{gridastar.AStar, gridastar.Dijkstra, gridastar.BFS} {
				res := gridastar.FindPath(g, tt.start, tt.goal, gridastar.WithAlgorithm(alg))
				assert.False(t, res.Found, alg.String())
				assert.NotNil(t, res.Path, alg.String())
				assert.Empty(t, res.Path, alg.String())
				assert.Zero(t, res.Expanded, alg.String())
			}
		})
	}
}

func TestFindPathStartIsGoal(t *testing.T) {
	g := mustParse(t, "...\n...")
	for _, alg := range []gridastar.Algorithm{gridastar.AStar, gridastar.Dijkstra, gridastar.BFS} {
		res := gridastar.FindPath(g, pt{X: 2, Y: 1}, pt{X: 2, Y: 1}, gridastar.WithAlgorithm(alg))
		assert.Equal(t, gridastar.Result{Path: []pt{{X: 2, Y: 1}}, Found: true}, res, alg.String())
	}
}

func TestFindPathUnreachable(t *testing.T) {
	g := mustParse(t, `
		..#..
		..#..
		..#..`)
	res := gridastar.FindPath(g, pt{X: 0, Y: 1}, pt{X: 4, Y: 1})
	assert.False(t, res.Found)
	assert.Empty(t, res.Path)
	assert.Equal(t, 6, res.Expanded)
}

func TestFindPathDeterministic(t *testing.T) {
	g := randomGrid(rand.New(rand.NewPCG(7, 7)), 20, 15, 0.3)
	start, goal := pt{X: 0, Y: 0}, pt{X: 19, Y: 14}
	first := gridastar.FindPath(g, start, goal)
	second := gridastar.FindPath(g, start, goal)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("repeated search differs (-first +second):\n%s", diff)
	}
}

// On this grid two paths cost 4+2√2. Expanding (1,2) relaxes (1,3) and
// (2,3), which moves them behind their equal-f rivals in the open set, so
// the path through (3,2) wins. Keeping relaxed nodes in place would return
// the path through (1,2).
func TestFindPathScanTieBreak(t *testing.T) {
	g := mustParse(t, `
		.....
		...#.
		.....
		...#.
		.#...`)
	res := gridastar.FindPath(g, pt{X: 0, Y: 0}, pt{X: 4, Y: 4})
	require.True(t, res.Found)
	want := []pt{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 2}, {X: 3, Y: 2}, {X: 4, Y: 2}, {X: 4, Y: 3}, {X: 4, Y: 4}}
	if diff := cmp.Diff(want, res.Path); diff != "" {
		t.Errorf("path mismatch (-want +got):\n%s", diff)
	}
	assert.InDelta(t, 4+2*math.Sqrt2, res.Cost, 1e-9)

	stepped := gridastar.NewStepper(g, pt{X: 0, Y: 0}, pt{X: 4, Y: 4})
	for !stepped.Step().Done() {
	}
	assert.Equal(t, res, stepped.Result())
}

func TestFindPathMatchesReference(t *testing.T) {
	configs := []struct {
		name string
		opts []gridastar.Option
	}{
		{"astar scan", nil},
		{"astar heap", []gridastar.Option{gridastar.WithFrontier(gridastar.HeapFrontier)}},
		{"dijkstra scan", []gridastar.Option{gridastar.WithAlgorithm(gridastar.Dijkstra)}},
		{"dijkstra heap", []gridastar.Option{gridastar.WithAlgorithm(gridastar.Dijkstra), gridastar.WithFrontier(gridastar.HeapFrontier)}},
	}

	r := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 60; i++ {
		w, h := 3+r.IntN(10), 3+r.IntN(10)
		g := randomGrid(r, w, h, 0.35)
		start, goal := randomOpenCell(r, g), randomOpenCell(r, g)
		costs := referenceCosts(g, start, moveCost)

		for _, c := range configs {
			t.Run(fmt.Sprintf("%d/%s", i, c.name), func(t *testing.T) {
				res := gridastar.FindPath(g, start, goal, c.opts...)
				want, reachable := costs[goal]
				require.Equal(t, reachable, res.Found, "grid:\n%s%v -> %v", g, start, goal)
				if !reachable {
					assert.Empty(t, res.Path)
					return
				}
				assertValidPath(t, g, res.Path, start, goal)
				assert.InDelta(t, want, res.Cost, 1e-9)
				assert.InDelta(t, pathCost(res.Path), res.Cost, 1e-9)
			})
		}

		t.Run(fmt.Sprintf("%d/bfs", i), func(t *testing.T) {
			steps := referenceCosts(g, start, func(a, b pt) float64 { return 1 })
			res := gridastar.FindPath(g, start, goal, gridastar.WithAlgorithm(gridastar.BFS))
			want, reachable := steps[goal]
			require.Equal(t, reachable, res.Found)
			if !reachable {
				return
			}
			assertValidPath(t, g, res.Path, start, goal)
			assert.Equal(t, int(want), len(res.Path)-1)
			assert.InDelta(t, pathCost(res.Path), res.Cost, 1e-9)
		})
	}
}

func TestParseAlgorithm(t *testing.T) {
	for name, want := range map[string]gridastar.Algorithm{
		"":         gridastar.AStar,
		"astar":    gridastar.AStar,
		"A*":       gridastar.AStar,
		"Dijkstra": gridastar.Dijkstra,
		" bfs ":    gridastar.BFS,
	} {
		got, err := gridastar.ParseAlgorithm(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}
	_, err := gridastar.ParseAlgorithm("greedy")
	assert.ErrorIs(t, err, gridastar.ErrUnknownAlgorithm)
}

func BenchmarkFindPath(b *testing.B) {
	g := randomGrid(rand.New(rand.NewPCG(3, 3)), 64, 64, 0.2)
	start, goal := pt{X: 0, Y: 0}, pt{X: 63, Y: 63}
	for _, kind := range []gridastar.FrontierKind{gridastar.ScanFrontier, gridastar.HeapFrontier} {
		b.Run(kind.String(), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				gridastar.FindPath(g, start, goal, gridastar.WithFrontier(kind))
			}
		})
	}
}

// randomGrid blocks each cell with probability density, leaving the
// corners (0,0) and (w-1,h-1) open.
func randomGrid(r *rand.Rand, w, h int, density float64) *gridastar.Grid {
	rows := make([][]bool, h)
	for y := range rows {
		rows[y] = make([]bool, w)
		for x := range rows[y] {
			rows[y][x] = r.Float64() < density
		}
	}
	rows[0][0] = false
	rows[h-1][w-1] = false
	return gridastar.MustGrid(rows)
}

func randomOpenCell(r *rand.Rand, g *gridastar.Grid) pt {
	for {
		p := pt{X: r.IntN(g.Width()), Y: r.IntN(g.Height())}
		if !g.Blocked(p) {
			return p
		}
	}
}

func open(g *gridastar.Grid, p pt) bool {
	return g.InBounds(p) && !g.Blocked(p)
}

// legalMove restates the movement rule independently of the engine.
func legalMove(g *gridastar.Grid, from pt, dx, dy int) bool {
	to := pt{X: from.X + dx, Y: from.Y + dy}
	if !open(g, to) {
		return false
	}
	if dx != 0 && dy != 0 {
		return open(g, pt{X: from.X + dx, Y: from.Y}) && open(g, pt{X: from.X, Y: from.Y + dy})
	}
	return true
}

func moveCost(a, b pt) float64 {
	if a.X != b.X && a.Y != b.Y {
		return math.Sqrt2
	}
	return 1
}

func pathCost(path []pt) float64 {
	total := 0.0
	for i := 1; i < len(path); i++ {
		total += moveCost(path[i-1], path[i])
	}
	return total
}

// referenceCosts relaxes every legal move until nothing changes.
func referenceCosts(g *gridastar.Grid, start pt, cost func(a, b pt) float64) map[pt]float64 {
	dist := map[pt]float64{start: 0}
	for changed := true; changed; {
		changed = false
		for y := 0; y < g.Height(); y++ {
			for x := 0; x < g.Width(); x++ {
				p := pt{X: x, Y: y}
				d, ok := dist[p]
				if !ok {
					continue
				}
				for dx := -1; dx <= 1; dx++ {
					for dy := -1; dy <= 1; dy++ {
						if (dx == 0 && dy == 0) || !legalMove(g, p, dx, dy) {
							continue
						}
						q := pt{X: x + dx, Y: y + dy}
						nd := d + cost(p, q)
						if old, seen := dist[q]; !seen || nd < old-1e-12 {
							dist[q] = nd
							changed = true
						}
					}
				}
			}
		}
	}
	return dist
}

func assertValidPath(t *testing.T, g *gridastar.Grid, path []pt, start, goal pt) {
	t.Helper()
	require.NotEmpty(t, path)
	assert.Equal(t, start, path[0])
	assert.Equal(t, goal, path[len(path)-1])
	seen := map[pt]bool{}
	for i, p := range path {
		assert.False(t, seen[p], "cell %v repeats", p)
		seen[p] = true
		assert.True(t, open(g, p), "cell %v is not passable", p)
		if i == 0 {
			continue
		}
		prev := path[i-1]
		dx, dy := p.X-prev.X, p.Y-prev.Y
		require.True(t, dx >= -1 && dx <= 1 && dy >= -1 && dy <= 1 && (dx != 0 || dy != 0),
			"%v -> %v is not a single move", prev, p)
		assert.True(t, legalMove(g, prev, dx, dy), "%v -> %v cuts a corner", prev, p)
	}
}
