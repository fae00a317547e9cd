package gridworld

import (
	"fmt"

	"github.com/samuelfneumann/gocem/timestep"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Goal represents the task of reaching goal states in a GridWorld.
// Episodes end when a goal cell is entered or when the step cutoff is
// reached, whichever comes first.
type Goal struct {
	goals          []int // flat cell indices of goal states
	r, c           int   // total rows and columns in environment
	timeStepReward float64
	goalReward     float64
	cutoff         int
}

// NewGoal creates and returns a new Goal task with goals at positions
// (x[i], y[i]), given that the gridworld has r rows and c columns. The
// task emits timeStepReward on every transition and goalReward on
// transitions into a goal cell. Episodes are cut off after cutoff
// steps so that they always terminate; a cutoff <= 0 means no cutoff.
func NewGoal(x, y []int, r, c int, timeStepReward, goalReward float64,
	cutoff int) (*Goal, error) {
	if len(x) != len(y) {
		return nil, fmt.Errorf("newGoal: x length (%d) != y length (%d)",
			len(x), len(y))
	}
	if len(x) == 0 {
		return nil, fmt.Errorf("newGoal: at least one goal is required")
	}

	goals := make([]int, len(x))
	for i := range x {
		if x[i] < 0 || x[i] >= c {
			return nil, fmt.Errorf("newGoal: x[%d] = %d out of [0, %d)", i,
				x[i], c)
		}
		if y[i] < 0 || y[i] >= r {
			return nil, fmt.Errorf("newGoal: y[%d] = %d out of [0, %d)", i,
				y[i], r)
		}
		goals[i] = cToInd(x[i], y[i], c)
	}

	return &Goal{goals, r, c, timeStepReward, goalReward, cutoff}, nil
}

// GetReward returns the reward for taking action a on timestep t
func (g *Goal) GetReward(t timestep.TimeStep, a int) float64 {
	x, y := vToC(t.Observation, g.r, g.c)
	x, y = nextCell(x, y, a, g.r, g.c)

	if g.atCell(cToInd(x, y, g.c)) {
		return g.goalReward
	}
	return g.timeStepReward
}

// AtGoal returns whether state is a goal state
func (g *Goal) AtGoal(state mat.Vector) bool {
	x, y := vToC(state, g.r, g.c)
	return g.atCell(cToInd(x, y, g.c))
}

// Done returns whether the episode ends on timestep t
func (g *Goal) Done(t timestep.TimeStep) bool {
	if g.AtGoal(t.Observation) {
		return true
	}
	return g.cutoff > 0 && t.Number >= g.cutoff
}

// Min returns the minimum reward attainable in the Task
func (g *Goal) Min() float64 {
	return floats.Min([]float64{g.timeStepReward, g.goalReward})
}

// Max returns the maximum reward attainable in the Task
func (g *Goal) Max() float64 {
	return floats.Max([]float64{g.timeStepReward, g.goalReward})
}

// String returns the Goal as a string
func (g *Goal) String() string {
	coords := make([][2]int, len(g.goals))
	for i, ind := range g.goals {
		x, y := indToC(ind, g.c)
		coords[i] = [2]int{x, y}
	}
	return fmt.Sprintf("Goal | Cells: %v  |  Cutoff: %d", coords, g.cutoff)
}

func (g *Goal) atCell(ind int) bool {
	for _, goal := range g.goals {
		if ind == goal {
			return true
		}
	}
	return false
}
