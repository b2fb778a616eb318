package api

import (
	"fmt"

	"chainopt/internal/model"
	"chainopt/internal/opt"
)

// Structural request validation. Numeric/domain validation belongs to the
// engine packages, which reject bad parameters before any algorithmic work.

func validateRoutingRequest(req *model.RoutingRequest) error {
	if req.Depot == nil {
		return fmt.Errorf("depot required")
	}
	if len(req.Customers) == 0 {
		return fmt.Errorf("at least one customer required")
	}
	if _, err := opt.ParseAlgorithm(req.Algorithm); err != nil {
		return err
	}
	if req.VehicleCapacity != nil && *req.VehicleCapacity < 0 {
		return fmt.Errorf("vehicle_capacity must be >= 0")
	}
	if req.MaxStops != nil && *req.MaxStops < 0 {
		return fmt.Errorf("max_stops must be >= 0")
	}
	return nil
}

func validateBatchSize(n int) error {
	if n == 0 {
		return fmt.Errorf("items must be non-empty")
	}
	return nil
}
