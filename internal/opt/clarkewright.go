package opt

import "chainopt/internal/geo"

// constructClarkeWright starts every customer as its own depot round-trip
// and consumes the sorted savings list, merging the route ending at i with
// the route starting at j (or the mirror) whenever both are endpoints of
// different routes and the merge respects the configured constraints.
// Consumption stops at the first non-positive savings entry.
//
// Routes live in an arena indexed by their founding customer; routeOf maps
// each customer index to its current owner, so the "already in the same
// route" check is a single lookup instead of pointer chasing.
func constructClarkeWright(m *geo.Matrix, customers []Customer, cons Constraints) ([]Route, error) {
	if err := checkFeasible(customers, cons); err != nil {
		return nil, err
	}
	n := len(customers)

	routes := make([][]int, n+1) // founding customer index -> stop indices
	routeOf := make([]int, n+1)  // customer index -> founding index
	load := make([]float64, n+1) // founding index -> demand sum
	for i := 1; i <= n; i++ {
		routes[i] = []int{i}
		routeOf[i] = i
		load[i] = customers[i-1].Demand
	}

	for _, e := range BuildSavings(m) {
		if e.Savings <= 0 {
			break
		}
		ra, rb := routeOf[e.I], routeOf[e.J]
		if ra == rb {
			continue // would form a sub-loop
		}
		a, b := routes[ra], routes[rb]

		var merged []int
		var into, from int
		switch {
		case a[len(a)-1] == e.I && b[0] == e.J:
			merged = append(append(make([]int, 0, len(a)+len(b)), a...), b...)
			into, from = ra, rb
		case b[len(b)-1] == e.J && a[0] == e.I:
			merged = append(append(make([]int, 0, len(a)+len(b)), b...), a...)
			into, from = rb, ra
		default:
			continue // i or j is interior to its route
		}
		if cons.MaxStops > 0 && len(merged) > cons.MaxStops {
			continue
		}
		if cons.VehicleCapacity > 0 && load[ra]+load[rb] > cons.VehicleCapacity {
			continue
		}

		routes[into] = merged
		routes[from] = nil
		load[into] = load[ra] + load[rb]
		for _, ci := range merged {
			routeOf[ci] = into
		}
	}

	// Emit routes in order of each route's first customer by input index.
	out := make([]Route, 0, n)
	emitted := make([]bool, n+1)
	for i := 1; i <= n; i++ {
		rid := routeOf[i]
		if emitted[rid] {
			continue
		}
		emitted[rid] = true
		out = append(out, finishRoute(m, customers, routes[rid]))
	}
	return out, nil
}

// checkFeasible rejects customers that can never be routed alone under the
// configured constraints.
func checkFeasible(customers []Customer, cons Constraints) error {
	for _, c := range customers {
		if cons.VehicleCapacity > 0 && c.Demand > cons.VehicleCapacity {
			return &ConstraintError{CustomerID: c.ID, Constraint: "capacity", Limit: cons.VehicleCapacity, Value: c.Demand}
		}
	}
	return nil
}

// finishRoute resolves stop indices to customer IDs and sums the depot
// round-trip distance: depot->first, consecutive legs, last->depot.
func finishRoute(m *geo.Matrix, customers []Customer, stops []int) Route {
	ids := make([]string, len(stops))
	total := m.At(0, stops[0])
	for i, ci := range stops {
		ids[i] = customers[ci-1].ID
		if i > 0 {
			total += m.At(stops[i-1], ci)
		}
	}
	total += m.At(stops[len(stops)-1], 0)
	return Route{Stops: ids, Distance: total}
}
