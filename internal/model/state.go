package model

import "fmt"

// State is a point in the chain's state space: the current size of each
// population. States are value-comparable and used directly as map keys.
type State struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Valid reports whether both coordinates are non-negative.
func (s State) Valid() bool {
	return s.X >= 0 && s.Y >= 0
}

func (s State) String() string {
	return fmt.Sprintf("(%d,%d)", s.X, s.Y)
}

// Distribution maps states to probability mass. A distribution produced
// by the solver or the statistics package is normalized over its grid so
// the masses sum to 1 within floating tolerance.
type Distribution map[State]float64
