package opt

import (
	"math"
	"reflect"
	"testing"

	"chainopt/internal/geo"
)

func mustMatrix(t *testing.T, depot geo.Location, customers []geo.Location) *geo.Matrix {
	t.Helper()
	m, err := geo.NewMatrix(depot, customers)
	if err != nil {
		t.Fatalf("NewMatrix: %v", err)
	}
	return m
}

func TestBuildSavingsDescendingAndComplete(t *testing.T) {
	m := mustMatrix(t, geo.Location{Lat: 0, Lon: 0}, []geo.Location{
		{Lat: 0, Lon: 1}, {Lat: 0, Lon: 2}, {Lat: 1, Lon: 1}, {Lat: 2, Lon: 0}, {Lat: 1, Lon: 3},
	})
	entries := BuildSavings(m)
	n := m.Customers()
	if len(entries) != n*(n-1)/2 {
		t.Fatalf("got %d entries, want %d", len(entries), n*(n-1)/2)
	}
	for k := 1; k < len(entries); k++ {
		prev, cur := entries[k-1], entries[k]
		if cur.Savings > prev.Savings {
			t.Fatalf("entry %d out of order: %v after %v", k, cur, prev)
		}
		if cur.Savings == prev.Savings {
			if prev.I > cur.I || (prev.I == cur.I && prev.J >= cur.J) {
				t.Fatalf("tie at %d not broken by ascending index: %v after %v", k, cur, prev)
			}
		}
	}
	for _, e := range entries {
		if e.I < 1 || e.J <= e.I || e.J > n {
			t.Fatalf("bad pair (%d,%d)", e.I, e.J)
		}
		if want := m.At(0, e.I) + m.At(0, e.J) - m.At(e.I, e.J); e.Savings != want {
			t.Fatalf("savings(%d,%d) = %v, want %v", e.I, e.J, e.Savings, want)
		}
	}
}

func TestBuildSavingsTieBreakByIndex(t *testing.T) {
	// Four customers one degree from the depot, one per compass point. All
	// adjacent pairs share the same savings, and the two opposite pairs both
	// save exactly zero.
	m := mustMatrix(t, geo.Location{Lat: 0, Lon: 0}, []geo.Location{
		{Lat: 0, Lon: 1}, {Lat: 0, Lon: -1}, {Lat: 1, Lon: 0}, {Lat: -1, Lon: 0},
	})
	entries := BuildSavings(m)
	wantOrder := [][2]int{{1, 3}, {1, 4}, {2, 3}, {2, 4}, {1, 2}, {3, 4}}
	if len(entries) != len(wantOrder) {
		t.Fatalf("got %d entries, want %d", len(entries), len(wantOrder))
	}
	for k, w := range wantOrder {
		if entries[k].I != w[0] || entries[k].J != w[1] {
			t.Fatalf("entry %d = (%d,%d), want (%d,%d)", k, entries[k].I, entries[k].J, w[0], w[1])
		}
	}
	for _, e := range entries[4:] {
		if math.Abs(e.Savings) > 1e-9 {
			t.Fatalf("opposite pair (%d,%d) savings = %v, want ~0", e.I, e.J, e.Savings)
		}
	}
}

func TestBuildSavingsDeterministic(t *testing.T) {
	m := mustMatrix(t, geo.Location{Lat: 40, Lon: -74}, []geo.Location{
		{Lat: 40.7, Lon: -74.0}, {Lat: 40.6, Lon: -73.9}, {Lat: 40.8, Lon: -74.1}, {Lat: 40.5, Lon: -74.2},
	})
	first := BuildSavings(m)
	second := BuildSavings(m)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("repeated runs diverge:\n%v\n%v", first, second)
	}
}
