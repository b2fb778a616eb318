package opt

import (
	"errors"
	"math"
	"strings"
	"testing"

	"chainopt/internal/geo"
)

func TestParseAlgorithm(t *testing.T) {
	if a, err := ParseAlgorithm(""); err != nil || a != ClarkeWright {
		t.Fatalf("empty: got %v, %v", a, err)
	}
	if a, err := ParseAlgorithm("nearest-neighbor"); err != nil || a != NearestNeighbor {
		t.Fatalf("nearest-neighbor: got %v, %v", a, err)
	}
	if _, err := ParseAlgorithm("simulated-annealing"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("unknown: got %v, want ErrInvalidInput", err)
	}
}

func TestSolveTotalEqualsRouteSum(t *testing.T) {
	for _, algo := range []Algorithm{ClarkeWright, NearestNeighbor} {
		plan, err := Solve(Request{
			Depot: geo.Location{Lat: 40.70, Lon: -74.01},
			Customers: []Customer{
				{ID: "A", Loc: geo.Location{Lat: 40.71, Lon: -74.00}},
				{ID: "B", Loc: geo.Location{Lat: 40.73, Lon: -73.99}},
				{ID: "C", Loc: geo.Location{Lat: 40.69, Lon: -74.04}},
			},
			Algorithm: algo,
		})
		if err != nil {
			t.Fatalf("%s: Solve: %v", algo, err)
		}
		sum := 0.0
		for _, r := range plan.Routes {
			if r.Distance <= 0 {
				t.Fatalf("%s: route %v has distance %v", algo, r.Stops, r.Distance)
			}
			sum += r.Distance
		}
		if math.Abs(plan.TotalDistance-sum) > 1e-9 {
			t.Fatalf("%s: total %v != route sum %v", algo, plan.TotalDistance, sum)
		}
		if plan.Algorithm != algo {
			t.Fatalf("algorithm echoed as %q, want %q", plan.Algorithm, algo)
		}
	}
}

func TestSolveInputValidation(t *testing.T) {
	depot := geo.Location{Lat: 0, Lon: 0}
	ok := Customer{ID: "A", Loc: geo.Location{Lat: 0, Lon: 1}}

	cases := []struct {
		name string
		req  Request
		want error
	}{
		{"no customers", Request{Depot: depot}, ErrInvalidInput},
		{"missing id", Request{Depot: depot, Customers: []Customer{{Loc: ok.Loc}}}, ErrInvalidInput},
		{"negative demand", Request{Depot: depot, Customers: []Customer{{ID: "A", Loc: ok.Loc, Demand: -1}}}, ErrInvalidInput},
		{"bad algorithm", Request{Depot: depot, Customers: []Customer{ok}, Algorithm: "magic"}, ErrInvalidInput},
		{"bad depot", Request{Depot: geo.Location{Lat: 95}, Customers: []Customer{ok}}, geo.ErrInvalidCoordinate},
		{"bad customer coords", Request{Depot: depot, Customers: []Customer{{ID: "A", Loc: geo.Location{Lon: 999}}}}, geo.ErrInvalidCoordinate},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Solve(tc.req)
			if !errors.Is(err, tc.want) {
				t.Fatalf("got %v, want %v", err, tc.want)
			}
		})
	}
}

func TestSolveNamesOffendingCustomer(t *testing.T) {
	_, err := Solve(Request{
		Depot: geo.Location{Lat: 0, Lon: 0},
		Customers: []Customer{
			{ID: "ok", Loc: geo.Location{Lat: 0, Lon: 1}},
			{ID: "bad", Loc: geo.Location{Lat: 200, Lon: 0}},
		},
	})
	if err == nil || !strings.Contains(err.Error(), "customer 1 (bad)") {
		t.Fatalf("error should name the customer: %v", err)
	}
}
