// Package model holds the wire types the request layer exchanges with the
// engine. Field names follow the JSON contract consumed by the dashboard.
package model

import "time"

type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type CustomerIn struct {
	ID     string  `json:"id"`
	Lat    float64 `json:"lat"`
	Lon    float64 `json:"lon"`
	Demand float64 `json:"demand,omitempty"`
}

type RoutingRequest struct {
	Depot     *GeoPoint    `json:"depot"`
	Customers []CustomerIn `json:"customers"`
	Algorithm string       `json:"algorithm,omitempty"`
	// Optional per-request overrides of the configured constraints.
	VehicleCapacity *float64 `json:"vehicle_capacity,omitempty"`
	MaxStops        *int     `json:"max_stops,omitempty"`
}

type RouteOut struct {
	Stops     []string `json:"stops"`
	StopCount int      `json:"stop_count"`
	Distance  float64  `json:"distance"`
}

type RoutingResult struct {
	RunID         string     `json:"run_id,omitempty"`
	Algorithm     string     `json:"algorithm"`
	TotalDistance float64    `json:"total_distance"`
	CustomerCount int        `json:"customer_count"`
	Routes        []RouteOut `json:"routes"`
}

type InventoryRequest struct {
	SupplierID         string  `json:"supplier_id,omitempty"`
	AnnualDemand       float64 `json:"annual_demand"`
	OrderingCost       float64 `json:"ordering_cost"`
	HoldingCost        float64 `json:"holding_cost"`
	LeadTimeDays       float64 `json:"lead_time_days"`
	DemandStdDev       float64 `json:"demand_std_dev"`
	ServiceLevelFactor float64 `json:"service_level_factor,omitempty"`
}

type InventoryResult struct {
	RunID              string  `json:"run_id,omitempty"`
	SupplierID         string  `json:"supplier_id,omitempty"`
	EOQ                float64 `json:"eoq"`
	ReorderPoint       float64 `json:"reorder_point"`
	SafetyStock        float64 `json:"safety_stock"`
	TotalAnnualCost    float64 `json:"total_annual_cost"`
	AverageInventory   float64 `json:"average_inventory"`
	NumberOfOrders     float64 `json:"number_of_orders"`
	ServiceLevelFactor float64 `json:"service_level_factor"`
}

type BatchInventoryRequest struct {
	Items []InventoryRequest `json:"items"`
}

type BatchRoutingRequest struct {
	Items []RoutingRequest `json:"items"`
}

// BatchItemResult is exactly one of Policy/Plan or Error, keyed by the
// item's input position.
type BatchItemResult struct {
	Index  int              `json:"index"`
	OK     bool             `json:"ok"`
	Policy *InventoryResult `json:"policy,omitempty"`
	Plan   *RoutingResult   `json:"plan,omitempty"`
	Error  string           `json:"error,omitempty"`
}

type BatchResult struct {
	BatchID   string            `json:"batch_id"`
	Total     int               `json:"total"`
	Succeeded int               `json:"succeeded"`
	Failed    int               `json:"failed"`
	Truncated bool              `json:"truncated"`
	Results   []BatchItemResult `json:"results"`
}

// Run is one entry in the in-memory run history.
type Run struct {
	ID        string         `json:"id"`
	Kind      string         `json:"kind"`
	Algorithm string         `json:"algorithm,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	Summary   map[string]any `json:"summary,omitempty"`
}
