package opt

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput matches structural problems detected before any
	// matrix or route work starts (empty customer set, bad algorithm,
	// negative demand).
	ErrInvalidInput = errors.New("invalid input")

	// ErrInfeasibleConstraint matches problems a configured capacity or
	// stop limit makes unsolvable for some customer.
	ErrInfeasibleConstraint = errors.New("infeasible constraint")
)

// InputError rejects a request before construction begins.
type InputError struct {
	Reason string
}

func (e *InputError) Error() string { return e.Reason }
func (e *InputError) Unwrap() error { return ErrInvalidInput }

// ConstraintError names the customer and constraint that make construction
// impossible.
type ConstraintError struct {
	CustomerID string
	Constraint string
	Limit      float64
	Value      float64
}

func (e *ConstraintError) Error() string {
	return fmt.Sprintf("customer %s: %s %v exceeds limit %v", e.CustomerID, e.Constraint, e.Value, e.Limit)
}

func (e *ConstraintError) Unwrap() error { return ErrInfeasibleConstraint }
