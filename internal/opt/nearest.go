package opt

import (
	"math"

	"chainopt/internal/geo"
)

// constructNearestNeighbor greedily extends a route from the depot to the
// closest unvisited customer, ties broken by ascending input index. A
// capacity or max-stop limit closes the current route at the depot and
// opens a new one. Output shape is identical to the Clarke-Wright variant.
func constructNearestNeighbor(m *geo.Matrix, customers []Customer, cons Constraints) ([]Route, error) {
	if err := checkFeasible(customers, cons); err != nil {
		return nil, err
	}
	n := len(customers)
	visited := make([]bool, n+1)
	remaining := n

	var out []Route
	for remaining > 0 {
		cur := 0
		var stops []int
		var load float64
		for remaining > 0 {
			if cons.MaxStops > 0 && len(stops) >= cons.MaxStops {
				break
			}
			next := -1
			best := math.MaxFloat64
			for c := 1; c <= n; c++ {
				if visited[c] {
					continue
				}
				// strict < keeps the lowest index on ties
				if d := m.At(cur, c); d < best {
					best = d
					next = c
				}
			}
			if cons.VehicleCapacity > 0 && load+customers[next-1].Demand > cons.VehicleCapacity {
				break
			}
			visited[next] = true
			stops = append(stops, next)
			load += customers[next-1].Demand
			cur = next
			remaining--
		}
		out = append(out, finishRoute(m, customers, stops))
	}
	return out, nil
}
