package opt

import (
	"sort"

	"chainopt/internal/geo"
)

// SavingsEntry is the Clarke-Wright savings for the unordered customer pair
// (I, J): matrix indices with 1 <= I < J.
type SavingsEntry struct {
	I       int
	J       int
	Savings float64
}

// BuildSavings computes savings(i,j) = d(0,i) + d(0,j) - d(i,j) for every
// customer pair and sorts them in strictly descending savings order. Ties
// break by ascending (i, j) input index, so identical input always yields
// an identical ordering. Non-positive entries stay in the list; consumers
// stop at the first one.
func BuildSavings(m *geo.Matrix) []SavingsEntry {
	n := m.Customers()
	entries := make([]SavingsEntry, 0, n*(n-1)/2)
	for i := 1; i <= n; i++ {
		for j := i + 1; j <= n; j++ {
			entries = append(entries, SavingsEntry{
				I:       i,
				J:       j,
				Savings: m.At(0, i) + m.At(0, j) - m.At(i, j),
			})
		}
	}
	sort.Slice(entries, func(a, b int) bool {
		if entries[a].Savings != entries[b].Savings {
			return entries[a].Savings > entries[b].Savings
		}
		if entries[a].I != entries[b].I {
			return entries[a].I < entries[b].I
		}
		return entries[a].J < entries[b].J
	})
	return entries
}
