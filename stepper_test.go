package gridastar_test

import (
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdrpinto/gridastar"
)

func TestStepperMatchesFindPath(t *testing.T) {
	r := rand.New(rand.NewPCG(11, 5))
	for _, alg := range []gridastar.Algorithm{gridastar.AStar, gridastar.Dijkstra, gridastar.BFS} {
		t.Run(alg.String(), func(t *testing.T) {
			g := randomGrid(r, 12, 9, 0.25)
			start, goal := pt{X: 0, Y: 0}, pt{X: 11, Y: 8}
			want := gridastar.FindPath(g, start, goal, gridastar.WithAlgorithm(alg))

			s := gridastar.NewStepper(g, start, goal, gridastar.WithAlgorithm(alg))
			var snap gridastar.StepSnapshot
			steps := 0
			for !snap.Done() || steps == 0 {
				snap = s.Step()
				steps++
				require.Less(t, steps, 1000)
				require.Equal(t, steps, snap.StepIndex)
				require.True(t, snap.HasCurrent)
				assert.True(t, snap.Closed[snap.Current])
				assert.False(t, snap.Open[snap.Current])
			}

			if diff := cmp.Diff(want, s.Result()); diff != "" {
				t.Errorf("stepper result differs (-FindPath +Stepper):\n%s", diff)
			}
			if want.Found {
				assert.Equal(t, gridastar.Found, snap.State)
				assert.Equal(t, want.Path, snap.Path)
				assert.Equal(t, goal, snap.Current)
			} else {
				assert.Equal(t, gridastar.Exhausted, snap.State)
				assert.Nil(t, snap.Path)
			}
		})
	}
}

func TestStepperFirstStep(t *testing.T) {
	g := mustParse(t, "...\n...\n...")
	s := gridastar.NewStepper(g, pt{X: 1, Y: 1}, pt{X: 2, Y: 2})

	before := s.Snapshot()
	assert.Equal(t, gridastar.Running, before.State)
	assert.False(t, before.HasCurrent)
	assert.Equal(t, map[pt]bool{{X: 1, Y: 1}: true}, before.Open)
	assert.Empty(t, before.Closed)

	snap := s.Step()
	assert.Equal(t, pt{X: 1, Y: 1}, snap.Current)
	assert.Len(t, snap.Open, 8)
	assert.Equal(t, map[pt]bool{{X: 1, Y: 1}: true}, snap.Closed)
	assert.Equal(t, gridastar.Running, s.State())

	snap = s.Step()
	assert.Equal(t, gridastar.Found, snap.State)
	assert.Equal(t, []pt{{X: 1, Y: 1}, {X: 2, Y: 2}}, snap.Path)
}

func TestStepperTerminalIsSticky(t *testing.T) {
	g := mustParse(t, ".#\n#.")
	s := gridastar.NewStepper(g, pt{X: 0, Y: 0}, pt{X: 1, Y: 1})
	first := s.Step()
	require.True(t, first.Done())
	assert.Equal(t, gridastar.Exhausted, first.State)

	again := s.Step()
	assert.Equal(t, first, again)
	assert.Equal(t, 1, s.Result().Expanded)
}

func TestStepperStartIsGoal(t *testing.T) {
	g := mustParse(t, "..")
	s := gridastar.NewStepper(g, pt{X: 1, Y: 0}, pt{X: 1, Y: 0})
	snap := s.Snapshot()
	assert.Equal(t, gridastar.Found, snap.State)
	assert.Equal(t, []pt{{X: 1, Y: 0}}, snap.Path)
	assert.Zero(t, snap.StepIndex)
	assert.Equal(t, snap, s.Step())
}

func TestStepperRejected(t *testing.T) {
	g := mustParse(t, "..")
	s := gridastar.NewStepper(g, pt{X: 0, Y: 0}, pt{X: 5, Y: 0})
	snap := s.Step()
	assert.Equal(t, gridastar.Exhausted, snap.State)
	assert.False(t, snap.HasCurrent)
	assert.Empty(t, snap.Open)
	assert.Empty(t, snap.Closed)
}
