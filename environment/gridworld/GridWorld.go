// Package gridworld implements 2D gridworld environments
package gridworld

import (
	"fmt"

	"github.com/samuelfneumann/gocem/environment"
	"github.com/samuelfneumann/gocem/timestep"
	"gonum.org/v1/gonum/mat"
)

// Actions available in a GridWorld
const (
	Left int = iota
	Right
	Up
	Down
	NumActions
)

// GridWorld represents a gridworld environment
//
// A gridworld is a flattened matrix of r*c cells. Observations are
// one-hot vectors over the cells, with the hot index marking the
// agent's position. Only the matrix dimensions and current agent
// position are tracked.
type GridWorld struct {
	environment.Task
	environment.Starter
	r, c        int
	position    int
	currentStep timestep.TimeStep
	closed      bool
}

// New creates a new gridworld with r rows and c columns, task t and
// start-state distribution s. The returned TimeStep is the first
// timestep of the environment.
func New(r, c int, t environment.Task,
	s environment.Starter) (*GridWorld, timestep.TimeStep, error) {
	if r <= 0 || c <= 0 {
		return nil, timestep.TimeStep{}, fmt.Errorf("new: illegal dimensions "+
			"(%d, %d)", r, c)
	}

	g := &GridWorld{Task: t, Starter: s, r: r, c: c}
	return g, g.Reset(), nil
}

// Dims gets the rows and columns of the GridWorld
func (g *GridWorld) Dims() (r, c int) {
	return g.r, g.c
}

// At checks the value at position (i, j) in the gridworld. A value of
// 1.0 indicates that the agent is at position (i, j).
func (g *GridWorld) At(i, j int) float64 {
	if (i*g.c)+j == g.position {
		return 1.0
	}
	return 0.0
}

// Reset resets the GridWorld to a starting state and returns the first
// timestep of the new episode
func (g *GridWorld) Reset() timestep.TimeStep {
	if g.closed {
		panic("reset: reset on closed environment")
	}

	startVec := g.Start()
	g.position = vToInd(startVec, g.r, g.c)

	startStep := timestep.New(timestep.First, 0, g.observation(), 0)
	g.currentStep = startStep
	return startStep
}

// Step takes action in the GridWorld, returning the next timestep and
// whether that timestep is the last in the episode. Moves that would
// leave the grid leave the position unchanged. Stepping a finished
// episode is an environment contract violation and panics.
func (g *GridWorld) Step(action int) (timestep.TimeStep, bool) {
	if g.closed {
		panic("step: step on closed environment")
	}
	if g.currentStep.Last() {
		panic("step: cannot step a finished episode, call Reset first")
	}
	if action < 0 || action >= NumActions {
		panic(fmt.Sprintf("step: illegal action %d, expected [0, %d)", action,
			NumActions))
	}

	reward := g.GetReward(g.currentStep, action)

	x, y := indToC(g.position, g.c)
	x, y = nextCell(x, y, action, g.r, g.c)
	g.position = cToInd(x, y, g.c)

	number := g.currentStep.Number + 1
	step := timestep.New(timestep.Mid, reward, g.observation(), number)

	if g.Done(step) {
		step = timestep.New(timestep.Last, reward, step.Observation, number)
	}
	g.currentStep = step

	return step, step.Last()
}

// Close releases the GridWorld's resources. The GridWorld may not be
// used after Close is called.
func (g *GridWorld) Close() error {
	if g.closed {
		return fmt.Errorf("close: close on closed environment")
	}
	g.closed = true
	return nil
}

// ObservationSpec returns the observation specification of the
// GridWorld. Observations are one-hot vectors over the r*c grid cells.
func (g *GridWorld) ObservationSpec() environment.Spec {
	cells := g.r * g.c
	shape := mat.NewVecDense(cells, nil)
	lowerBound := mat.NewVecDense(cells, nil)

	upper := make([]float64, cells)
	for i := range upper {
		upper[i] = 1.0
	}
	upperBound := mat.NewVecDense(cells, upper)

	return environment.NewSpec(shape, environment.Observation, lowerBound,
		upperBound, environment.Discrete)
}

// ActionSpec returns the action specification of the GridWorld.
// Actions are scalar integers in [0, NumActions).
func (g *GridWorld) ActionSpec() environment.Spec {
	shape := mat.NewVecDense(1, nil)
	lowerBound := mat.NewVecDense(1, []float64{0})
	upperBound := mat.NewVecDense(1, []float64{float64(NumActions - 1)})

	return environment.NewSpec(shape, environment.Action, lowerBound,
		upperBound, environment.Discrete)
}

func (g *GridWorld) String() string {
	x, y := indToC(g.position, g.c)
	return fmt.Sprintf("GridWorld | At: (%d, %d)  |  Bounds: (%d, %d)",
		x, y, g.r, g.c)
}

// observation returns the one-hot observation of the current position
func (g *GridWorld) observation() *mat.VecDense {
	position := mat.NewVecDense(g.r*g.c, nil)
	position.SetVec(g.position, 1.0)
	return position
}

// nextCell computes the cell reached by taking action in cell (x, y) of
// an (r, c) grid. Moves off the grid are no-ops.
func nextCell(x, y, action, r, c int) (int, int) {
	switch action {
	case Left:
		if x-1 >= 0 {
			x--
		}
	case Right:
		if x+1 < c {
			x++
		}
	case Up:
		if y+1 < r {
			y++
		}
	case Down:
		if y-1 >= 0 {
			y--
		}
	}
	return x, y
}

// cToInd converts coordinates (x, y) to a flat cell index
func cToInd(x, y, c int) int {
	return y*c + x
}

// indToC converts a flat cell index to (x, y) coordinates
func indToC(ind, c int) (int, int) {
	y := ind / c
	x := ind - y*c
	return x, y
}

// cToV converts coordinates (x, y) to a one-hot vector over the r*c
// grid cells
func cToV(x, y, r, c int) mat.Vector {
	vec := mat.NewVecDense(r*c, nil)
	vec.SetVec(cToInd(x, y, c), 1.0)
	return vec
}

// vToC converts a one-hot vector into the (x, y) coordinates of its
// single 1.0 value
func vToC(v mat.Vector, r, c int) (int, int) {
	for i := 0; i < v.Len(); i++ {
		if v.AtVec(i) != 0.0 {
			return indToC(i, c)
		}
	}
	return -1, -1
}

// vToInd converts a one-hot vector to a flat cell index
func vToInd(v mat.Vector, r, c int) int {
	x, y := vToC(v, r, c)
	return cToInd(x, y, c)
}
