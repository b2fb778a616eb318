package opt

import (
	"fmt"

	"chainopt/internal/geo"
)

// Solve runs the routing pipeline for one request: validate the input,
// build the distance matrix, construct routes with the selected algorithm,
// and package aggregate metrics. It is pure and synchronous; either a
// complete plan is returned or a typed error, never a partial result.
func Solve(req Request) (*Plan, error) {
	if len(req.Customers) == 0 {
		return nil, &InputError{Reason: "at least one customer required"}
	}
	if err := req.Depot.Validate(); err != nil {
		return nil, fmt.Errorf("depot: %w", err)
	}
	for i, c := range req.Customers {
		if c.ID == "" {
			return nil, &InputError{Reason: fmt.Sprintf("customer %d: id required", i)}
		}
		if err := c.Loc.Validate(); err != nil {
			return nil, fmt.Errorf("customer %d (%s): %w", i, c.ID, err)
		}
		if c.Demand < 0 {
			return nil, &InputError{Reason: fmt.Sprintf("customer %d (%s): demand must be >= 0", i, c.ID)}
		}
	}
	algo, err := ParseAlgorithm(string(req.Algorithm))
	if err != nil {
		return nil, err
	}

	locs := make([]geo.Location, len(req.Customers))
	for i, c := range req.Customers {
		locs[i] = c.Loc
	}
	m, err := geo.NewMatrix(req.Depot, locs)
	if err != nil {
		return nil, err
	}

	var routes []Route
	switch algo {
	case ClarkeWright:
		routes, err = constructClarkeWright(m, req.Customers, req.Constraints)
	case NearestNeighbor:
		routes, err = constructNearestNeighbor(m, req.Customers, req.Constraints)
	}
	if err != nil {
		return nil, err
	}

	total := 0.0
	for _, r := range routes {
		total += r.Distance
	}
	return &Plan{
		Algorithm:     algo,
		Routes:        routes,
		TotalDistance: total,
		CustomerCount: len(req.Customers),
	}, nil
}
