// Package models collects implicit systems ready to hand to the solver.
// Every model is stateless: physical parameters arrive through the p
// vector at evaluation time so they stay visible to differentiation.
package models

import (
	"fmt"
	"sort"

	"github.com/MoniFarsang/deer/internal/idae"
	"github.com/MoniFarsang/deer/internal/num"
)

// Info describes a model for catalog listings and default runs. Defaults
// pairs with Params entry by entry; Inputs is the number of external input
// columns the model reads when a sequence is supplied, zero for autonomous
// systems.
type Info struct {
	Name     string
	Summary  string
	Dim      int
	Params   []string
	Defaults []float64
	Y0       []float64
	Span     [2]float64
	Inputs   int
}

var catalog = map[string]Info{
	"decay": {
		Name:     "decay",
		Summary:  "exponential relaxation with optional forcing",
		Dim:      1,
		Params:   []string{"k"},
		Defaults: []float64{1},
		Y0:       []float64{1},
		Span:     [2]float64{0, 5},
		Inputs:   1,
	},
	"logistic": {
		Name:     "logistic",
		Summary:  "saturating growth toward a carrying capacity",
		Dim:      1,
		Params:   []string{"r", "K"},
		Defaults: []float64{2, 1},
		Y0:       []float64{0.1},
		Span:     [2]float64{0, 5},
	},
	"lorenz": {
		Name:     "lorenz",
		Summary:  "chaotic convection benchmark",
		Dim:      3,
		Params:   []string{"sigma", "rho", "beta"},
		Defaults: []float64{10, 28, 8.0 / 3.0},
		Y0:       []float64{1, 1, 1},
		Span:     [2]float64{0, 25},
	},
	"vanderpol": {
		Name:     "vanderpol",
		Summary:  "relaxation oscillator, stiff at large mu",
		Dim:      2,
		Params:   []string{"mu"},
		Defaults: []float64{2},
		Y0:       []float64{2, 0},
		Span:     [2]float64{0, 20},
	},
	"pendulum": {
		Name:     "pendulum",
		Summary:  "damped rigid pendulum with optional drive torque",
		Dim:      2,
		Params:   []string{"g", "l", "c"},
		Defaults: []float64{9.81, 1, 0.1},
		Y0:       []float64{0.5, 0},
		Span:     [2]float64{0, 10},
		Inputs:   1,
	},
	"robertson": {
		Name:     "robertson",
		Summary:  "stiff reaction kinetics with a mass-balance constraint",
		Dim:      3,
		Params:   []string{"k1", "k2", "k3"},
		Defaults: []float64{0.04, 1e4, 3e7},
		Y0:       []float64{1, 0, 0},
		Span:     [2]float64{0, 100},
	},
}

// Build returns the named model at the requested working precision.
func Build[T num.Float](name string) (idae.Residual[T], error) {
	switch name {
	case "decay":
		return Decay[T]{}, nil
	case "logistic":
		return Logistic[T]{}, nil
	case "lorenz":
		return Lorenz[T]{}, nil
	case "vanderpol":
		return VanDerPol[T]{}, nil
	case "pendulum":
		return Pendulum[T]{}, nil
	case "robertson":
		return Robertson[T]{}, nil
	}
	return nil, fmt.Errorf("unknown model: %s", name)
}

// Describe returns the catalog entry for name.
func Describe(name string) (Info, error) {
	info, ok := catalog[name]
	if !ok {
		return Info{}, fmt.Errorf("unknown model: %s", name)
	}
	return info, nil
}

// Names lists the catalog in alphabetical order.
func Names() []string {
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
