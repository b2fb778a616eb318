package geo

import "fmt"

// Matrix is a square, symmetric distance matrix over depot + customers.
// Index 0 is the depot; customers occupy 1..N in input order. The diagonal
// is zero. Built once per request and never mutated afterwards.
type Matrix struct {
	d [][]float64
}

// NewMatrix validates every location and computes all pairwise distances.
// Errors name the offending point ("depot" or "customer <index>") and
// unwrap to ErrInvalidCoordinate.
func NewMatrix(depot Location, customers []Location) (*Matrix, error) {
	if err := depot.Validate(); err != nil {
		return nil, fmt.Errorf("depot: %w", err)
	}
	for i, c := range customers {
		if err := c.Validate(); err != nil {
			return nil, fmt.Errorf("customer %d: %w", i, err)
		}
	}
	pts := make([]Location, 0, len(customers)+1)
	pts = append(pts, depot)
	pts = append(pts, customers...)

	n := len(pts)
	d := make([][]float64, n)
	for i := range d {
		d[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			v := haversine(pts[i], pts[j])
			d[i][j] = v
			d[j][i] = v
		}
	}
	return &Matrix{d: d}, nil
}

// At returns the distance between point indices i and j in kilometers.
func (m *Matrix) At(i, j int) float64 { return m.d[i][j] }

// Stops returns the number of points including the depot.
func (m *Matrix) Stops() int { return len(m.d) }

// Customers returns the number of customer points (Stops minus the depot).
func (m *Matrix) Customers() int { return len(m.d) - 1 }
