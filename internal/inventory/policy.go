// Package inventory derives deterministic inventory control parameters
// (EOQ, safety stock, reorder point) from demand and cost inputs.
package inventory

import (
	"errors"
	"fmt"
	"math"
)

// DefaultWorkingPeriodDays pins the period the annual demand is denominated
// in: demand is spread over this many days when converting to a daily rate
// for the reorder point.
const DefaultWorkingPeriodDays = 365

// ErrInvalidParameter matches any rejected policy input.
var ErrInvalidParameter = errors.New("invalid parameter")

// ParameterError reports a single rejected input by name.
type ParameterError struct {
	Name   string
	Value  float64
	Reason string
}

func (e *ParameterError) Error() string {
	return fmt.Sprintf("%s %v %s", e.Name, e.Value, e.Reason)
}

func (e *ParameterError) Unwrap() error { return ErrInvalidParameter }

// Inputs holds the parameters for one policy computation.
//
// AnnualDemand is units per working period. ServiceLevelFactor is the
// standard-normal quantile Z for the desired service level (e.g. 1.65 for
// 95%); the caller owns the service-level-to-Z mapping and Z is not
// validated against any table.
type Inputs struct {
	AnnualDemand       float64
	OrderingCost       float64
	HoldingCost        float64
	LeadTimeDays       float64
	DemandStdDev       float64
	ServiceLevelFactor float64
}

// Policy is the atomic result of one computation. Values are not rounded;
// presentation rounding belongs to the caller.
type Policy struct {
	EOQ                float64
	ReorderPoint       float64
	SafetyStock        float64
	ServiceLevelFactor float64
	TotalAnnualCost    float64
	AverageInventory   float64
	NumberOfOrders     float64
}

// Calculator computes inventory policies against a fixed working period.
type Calculator struct {
	workingPeriodDays float64
}

func NewCalculator(workingPeriodDays float64) *Calculator {
	if workingPeriodDays <= 0 {
		workingPeriodDays = DefaultWorkingPeriodDays
	}
	return &Calculator{workingPeriodDays: workingPeriodDays}
}

// WorkingPeriodDays returns the configured demand denomination period.
func (c *Calculator) WorkingPeriodDays() float64 { return c.workingPeriodDays }

// ComputePolicy validates all inputs before any arithmetic and returns the
// full policy or a ParameterError naming the first rejected input.
//
//	EOQ             = sqrt(2*D*S / H)
//	SafetyStock     = Z * sigma * sqrt(L)
//	ReorderPoint    = (D / workingPeriodDays) * L + SafetyStock
//	TotalAnnualCost = (D/EOQ)*S + (EOQ/2)*H
func (c *Calculator) ComputePolicy(in Inputs) (Policy, error) {
	if in.AnnualDemand <= 0 {
		return Policy{}, &ParameterError{Name: "annual_demand", Value: in.AnnualDemand, Reason: "must be > 0"}
	}
	if in.OrderingCost <= 0 {
		return Policy{}, &ParameterError{Name: "ordering_cost", Value: in.OrderingCost, Reason: "must be > 0"}
	}
	if in.HoldingCost <= 0 {
		return Policy{}, &ParameterError{Name: "holding_cost", Value: in.HoldingCost, Reason: "must be > 0"}
	}
	if in.LeadTimeDays < 0 {
		return Policy{}, &ParameterError{Name: "lead_time_days", Value: in.LeadTimeDays, Reason: "must be >= 0"}
	}
	if in.DemandStdDev < 0 {
		return Policy{}, &ParameterError{Name: "demand_std_dev", Value: in.DemandStdDev, Reason: "must be >= 0"}
	}

	eoq := math.Sqrt(2 * in.AnnualDemand * in.OrderingCost / in.HoldingCost)
	safety := in.ServiceLevelFactor * in.DemandStdDev * math.Sqrt(in.LeadTimeDays)
	reorder := (in.AnnualDemand/c.workingPeriodDays)*in.LeadTimeDays + safety
	cost := (in.AnnualDemand/eoq)*in.OrderingCost + (eoq/2)*in.HoldingCost

	return Policy{
		EOQ:                eoq,
		ReorderPoint:       reorder,
		SafetyStock:        safety,
		ServiceLevelFactor: in.ServiceLevelFactor,
		TotalAnnualCost:    cost,
		AverageInventory:   eoq/2 + safety,
		NumberOfOrders:     in.AnnualDemand / eoq,
	}, nil
}
