package gridastar

// StepSnapshot exposes the per-iteration state of the search
type StepSnapshot struct {
	// Current is the most recently popped cell. HasCurrent is false until
	// something is popped, except for start == goal where it is the start.
	Current    Point
	HasCurrent bool
	Open       map[Point]bool
	Closed     map[Point]bool
	State      State
	// Path is set once State is Found.
	Path []Point
	// StepIndex counts the cells popped so far.
	StepIndex int
}

// Done reports whether the search has reached a terminal state.
func (s StepSnapshot) Done() bool { return s.State != Running }

// Stepper drives a search one expansion at a time.
// A Stepper is not safe for concurrent use.
type Stepper struct {
	search searcher
}

// NewStepper prepares a search with the same validation and options as FindPath.
func NewStepper(grid *Grid, start, goal Point, options ...Option) *Stepper {
	return &Stepper{search: newSearcher(grid, start, goal, buildOptions(options))}
}

// Step advances the search by one node expansion and returns a snapshot.
// Once the search is done, Step keeps returning the terminal snapshot.
func (s *Stepper) Step() StepSnapshot {
	s.search.step()
	return s.Snapshot()
}

// Snapshot returns the current state without advancing.
func (s *Stepper) Snapshot() StepSnapshot {
	state, expanded := s.search.status()
	snap := StepSnapshot{
		Open:      s.search.openSet(),
		Closed:    s.search.closedSet(),
		State:     state,
		StepIndex: expanded,
	}
	snap.Current, snap.HasCurrent = s.search.current()
	if state == Found {
		snap.Path = s.search.result().Path
	}
	return snap
}

// State reports the current phase without advancing.
func (s *Stepper) State() State {
	state, _ := s.search.status()
	return state
}

// Result returns what FindPath would return. Before the search is done it
// reports Found == false with the expansions so far.
func (s *Stepper) Result() Result {
	return s.search.result()
}

func copyBoolMap[T comparable](m map[T]bool) map[T]bool {
	if m == nil {
		return nil
	}
	c := make(map[T]bool, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}
