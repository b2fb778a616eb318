// Package opt constructs vehicle routes over a depot and a set of
// customers using Clarke-Wright savings or nearest-neighbor heuristics.
package opt

import (
	"fmt"

	"chainopt/internal/geo"
)

// Algorithm selects the route construction heuristic.
type Algorithm string

const (
	ClarkeWright    Algorithm = "clarke-wright"
	NearestNeighbor Algorithm = "nearest-neighbor"
)

// ParseAlgorithm maps a wire string to an Algorithm; empty selects
// Clarke-Wright.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch Algorithm(s) {
	case "":
		return ClarkeWright, nil
	case ClarkeWright, NearestNeighbor:
		return Algorithm(s), nil
	}
	return "", &InputError{Reason: fmt.Sprintf("unknown algorithm %q (allowed: %s, %s)", s, ClarkeWright, NearestNeighbor)}
}

// Customer is a stop to visit. Identity is the supplied ID. Demand is only
// consulted when a vehicle capacity constraint is configured.
type Customer struct {
	ID     string
	Loc    geo.Location
	Demand float64
}

// Constraints bound route construction. Zero values mean unconstrained.
type Constraints struct {
	VehicleCapacity float64
	MaxStops        int
}

// Request is one routing problem: a depot, customers in input order, an
// algorithm, and optional constraints.
type Request struct {
	Depot       geo.Location
	Customers   []Customer
	Algorithm   Algorithm
	Constraints Constraints
}

// Route is an ordered stop sequence starting and ending implicitly at the
// depot, with its round-trip distance in kilometers. Immutable once
// returned by the solver.
type Route struct {
	Stops    []string
	Distance float64
}

// Plan is the packaged result of one routing request.
type Plan struct {
	Algorithm     Algorithm
	Routes        []Route
	TotalDistance float64
	CustomerCount int
}
