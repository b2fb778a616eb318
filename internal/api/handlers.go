package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"chainopt/internal/batch"
	"chainopt/internal/geo"
	"chainopt/internal/inventory"
	"chainopt/internal/metrics"
	"chainopt/internal/model"
	"chainopt/internal/opt"
)

// HealthHandler handles GET /healthz
func (s *Server) HealthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

// ReadyHandler handles GET /readyz
func (s *Server) ReadyHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ready", "runs": s.Store.Stats()})
}

// OptimizeInventoryHandler handles POST /api/v1/optimize/inventory
func (s *Server) OptimizeInventoryHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var req model.InventoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid JSON", err.Error(), r.URL.Path)
		return
	}

	start := time.Now()
	policy, err := s.Calc.ComputePolicy(s.toPolicyInputs(req))
	if err != nil {
		metrics.OptimizeRuns.WithLabelValues("inventory", "eoq", "error").Inc()
		s.writeEngineError(w, r, err)
		return
	}
	metrics.OptimizeRuns.WithLabelValues("inventory", "eoq", "ok").Inc()
	metrics.OptimizeDuration.WithLabelValues("inventory", "eoq").Observe(time.Since(start).Seconds())

	result := fromPolicy(req.SupplierID, policy)
	run := s.Store.RecordRun("inventory", "eoq", map[string]any{
		"supplier_id": req.SupplierID,
		"eoq":         policy.EOQ,
	})
	result.RunID = run.ID
	s.publish(TopicInventory, SSEEvent{Type: "policy.computed", Data: map[string]any{
		"run_id": run.ID, "supplier_id": req.SupplierID, "eoq": policy.EOQ,
	}})
	writeJSON(w, http.StatusOK, result)
}

// OptimizeRoutingHandler handles POST /api/v1/optimize/routing
func (s *Server) OptimizeRoutingHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var req model.RoutingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid JSON", err.Error(), r.URL.Path)
		return
	}
	if err := validateRoutingRequest(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid routing request", err.Error(), r.URL.Path)
		return
	}

	optReq := s.toOptRequest(req)
	start := time.Now()
	plan, err := opt.Solve(optReq)
	if err != nil {
		metrics.OptimizeRuns.WithLabelValues("routing", string(optReq.Algorithm), "error").Inc()
		s.writeEngineError(w, r, err)
		return
	}
	metrics.OptimizeRuns.WithLabelValues("routing", string(plan.Algorithm), "ok").Inc()
	metrics.OptimizeDuration.WithLabelValues("routing", string(plan.Algorithm)).Observe(time.Since(start).Seconds())

	result := fromPlan(plan)
	run := s.Store.RecordRun("routing", string(plan.Algorithm), map[string]any{
		"total_distance": plan.TotalDistance,
		"routes":         len(plan.Routes),
		"customers":      plan.CustomerCount,
	})
	result.RunID = run.ID
	s.publish(TopicRouting, SSEEvent{Type: "plan.completed", Data: map[string]any{
		"run_id": run.ID, "algorithm": string(plan.Algorithm), "total_distance": plan.TotalDistance, "routes": len(plan.Routes),
	}})
	writeJSON(w, http.StatusOK, result)
}

// BatchInventoryHandler handles POST /api/v1/batch/inventory
func (s *Server) BatchInventoryHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var req model.BatchInventoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid JSON", err.Error(), r.URL.Path)
		return
	}
	if err := validateBatchSize(len(req.Items)); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid batch request", err.Error(), r.URL.Path)
		return
	}

	outcome := batch.Map(r.Context(), req.Items, func(_ context.Context, item model.InventoryRequest) (model.InventoryResult, error) {
		policy, err := s.Calc.ComputePolicy(s.toPolicyInputs(item))
		if err != nil {
			return model.InventoryResult{}, err
		}
		return fromPolicy(item.SupplierID, policy), nil
	}, s.Cfg.BatchOptions())

	result := model.BatchResult{
		Total:     len(req.Items),
		Succeeded: outcome.Succeeded,
		Failed:    outcome.Failed,
		Truncated: outcome.Truncated,
		Results:   make([]model.BatchItemResult, len(outcome.Results)),
	}
	for i, res := range outcome.Results {
		item := model.BatchItemResult{Index: i, OK: res.Err == nil}
		if res.Err != nil {
			item.Error = res.Err.Error()
			metrics.BatchItems.WithLabelValues("inventory", "error").Inc()
		} else {
			v := res.Value
			item.Policy = &v
			metrics.BatchItems.WithLabelValues("inventory", "ok").Inc()
		}
		result.Results[i] = item
	}
	run := s.Store.RecordRun("batch_inventory", "eoq", map[string]any{
		"total": result.Total, "failed": result.Failed, "truncated": result.Truncated,
	})
	result.BatchID = run.ID
	s.publish(TopicBatch, SSEEvent{Type: "batch.completed", Data: map[string]any{
		"batch_id": run.ID, "kind": "inventory", "total": result.Total, "failed": result.Failed, "truncated": result.Truncated,
	}})
	writeJSON(w, http.StatusOK, result)
}

// BatchRoutingHandler handles POST /api/v1/batch/routing
func (s *Server) BatchRoutingHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var req model.BatchRoutingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid JSON", err.Error(), r.URL.Path)
		return
	}
	if err := validateBatchSize(len(req.Items)); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid batch request", err.Error(), r.URL.Path)
		return
	}

	outcome := batch.Map(r.Context(), req.Items, func(_ context.Context, item model.RoutingRequest) (model.RoutingResult, error) {
		if err := validateRoutingRequest(&item); err != nil {
			return model.RoutingResult{}, err
		}
		plan, err := opt.Solve(s.toOptRequest(item))
		if err != nil {
			return model.RoutingResult{}, err
		}
		return fromPlan(plan), nil
	}, s.Cfg.BatchOptions())

	result := model.BatchResult{
		Total:     len(req.Items),
		Succeeded: outcome.Succeeded,
		Failed:    outcome.Failed,
		Truncated: outcome.Truncated,
		Results:   make([]model.BatchItemResult, len(outcome.Results)),
	}
	for i, res := range outcome.Results {
		item := model.BatchItemResult{Index: i, OK: res.Err == nil}
		if res.Err != nil {
			item.Error = res.Err.Error()
			metrics.BatchItems.WithLabelValues("routing", "error").Inc()
		} else {
			v := res.Value
			item.Plan = &v
			metrics.BatchItems.WithLabelValues("routing", "ok").Inc()
		}
		result.Results[i] = item
	}
	run := s.Store.RecordRun("batch_routing", "", map[string]any{
		"total": result.Total, "failed": result.Failed, "truncated": result.Truncated,
	})
	result.BatchID = run.ID
	s.publish(TopicBatch, SSEEvent{Type: "batch.completed", Data: map[string]any{
		"batch_id": run.ID, "kind": "routing", "total": result.Total, "failed": result.Failed, "truncated": result.Truncated,
	}})
	writeJSON(w, http.StatusOK, result)
}

// EngineConfigHandler handles GET /api/v1/engine/config
func (s *Server) EngineConfigHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"working_period_days":          s.Cfg.Engine.WorkingPeriodDays,
		"default_service_level_factor": s.Cfg.Engine.DefaultServiceLevelFactor,
		"default_algorithm":            s.Cfg.Engine.DefaultAlgorithm,
		"vehicle_capacity":             s.Cfg.Engine.VehicleCapacity,
		"max_stops":                    s.Cfg.Engine.MaxStops,
		"parallelism":                  s.Cfg.Batch.Parallelism,
		"workers":                      s.Cfg.Batch.Workers,
	})
}

// RunsHandler handles GET /api/v1/runs
func (s *Server) RunsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	items := s.Store.ListRuns(r.URL.Query().Get("kind"), limit)
	writeJSON(w, http.StatusOK, map[string]any{"items": items, "count": len(items)})
}

// EventsStreamHandler handles GET /api/v1/events/stream (SSE)
func (s *Server) EventsStreamHandler(w http.ResponseWriter, r *http.Request) {
	fl, ok := w.(http.Flusher)
	if !ok {
		writeProblem(w, http.StatusInternalServerError, "Streaming unsupported", "", r.URL.Path)
		return
	}
	topic := r.URL.Query().Get("topic")
	if topic == "" {
		topic = TopicRuns
	}
	switch topic {
	case TopicRuns, TopicInventory, TopicRouting, TopicBatch:
	default:
		writeProblem(w, http.StatusBadRequest, "Unknown topic", topic, r.URL.Path)
		return
	}
	ch := s.Broker.Subscribe(topic)
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	fl.Flush()
	for {
		select {
		case <-r.Context().Done():
			s.Broker.Unsubscribe(topic, ch)
			return
		case evt, open := <-ch:
			if !open {
				return
			}
			data, _ := json.Marshal(evt.Data)
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", evt.Type, data)
			fl.Flush()
		}
	}
}

// writeEngineError maps typed engine errors onto problem responses.
func (s *Server) writeEngineError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, opt.ErrInfeasibleConstraint):
		writeTypedProblem(w, http.StatusUnprocessableEntity, problemTypeInfeasibleConstraint, "Infeasible constraint", err.Error(), r.URL.Path)
	case errors.Is(err, geo.ErrInvalidCoordinate):
		writeTypedProblem(w, http.StatusBadRequest, problemTypeInvalidCoordinate, "Invalid coordinate", err.Error(), r.URL.Path)
	case errors.Is(err, inventory.ErrInvalidParameter):
		writeTypedProblem(w, http.StatusBadRequest, problemTypeInvalidParameter, "Invalid parameter", err.Error(), r.URL.Path)
	case errors.Is(err, opt.ErrInvalidInput):
		writeTypedProblem(w, http.StatusBadRequest, problemTypeInvalidInput, "Invalid input", err.Error(), r.URL.Path)
	default:
		s.Log.Error("engine failure", zap.Error(err), zap.String("path", r.URL.Path))
		writeProblem(w, http.StatusInternalServerError, "Optimization failed", err.Error(), r.URL.Path)
	}
}

func (s *Server) toPolicyInputs(in model.InventoryRequest) inventory.Inputs {
	z := in.ServiceLevelFactor
	if z == 0 {
		z = s.Cfg.Engine.DefaultServiceLevelFactor
	}
	return inventory.Inputs{
		AnnualDemand:       in.AnnualDemand,
		OrderingCost:       in.OrderingCost,
		HoldingCost:        in.HoldingCost,
		LeadTimeDays:       in.LeadTimeDays,
		DemandStdDev:       in.DemandStdDev,
		ServiceLevelFactor: z,
	}
}

func fromPolicy(supplierID string, p inventory.Policy) model.InventoryResult {
	return model.InventoryResult{
		SupplierID:         supplierID,
		EOQ:                p.EOQ,
		ReorderPoint:       p.ReorderPoint,
		SafetyStock:        p.SafetyStock,
		TotalAnnualCost:    p.TotalAnnualCost,
		AverageInventory:   p.AverageInventory,
		NumberOfOrders:     p.NumberOfOrders,
		ServiceLevelFactor: p.ServiceLevelFactor,
	}
}

func (s *Server) toOptRequest(in model.RoutingRequest) opt.Request {
	cons := s.Cfg.Constraints()
	if in.VehicleCapacity != nil {
		cons.VehicleCapacity = *in.VehicleCapacity
	}
	if in.MaxStops != nil {
		cons.MaxStops = *in.MaxStops
	}
	algo := in.Algorithm
	if algo == "" {
		algo = s.Cfg.Engine.DefaultAlgorithm
	}
	customers := make([]opt.Customer, len(in.Customers))
	for i, c := range in.Customers {
		customers[i] = opt.Customer{ID: c.ID, Loc: geo.Location{Lat: c.Lat, Lon: c.Lon}, Demand: c.Demand}
	}
	var depot geo.Location
	if in.Depot != nil {
		depot = geo.Location{Lat: in.Depot.Lat, Lon: in.Depot.Lon}
	}
	return opt.Request{Depot: depot, Customers: customers, Algorithm: opt.Algorithm(algo), Constraints: cons}
}

func fromPlan(p *opt.Plan) model.RoutingResult {
	routes := make([]model.RouteOut, len(p.Routes))
	for i, rt := range p.Routes {
		routes[i] = model.RouteOut{Stops: rt.Stops, StopCount: len(rt.Stops), Distance: rt.Distance}
	}
	return model.RoutingResult{
		Algorithm:     string(p.Algorithm),
		TotalDistance: p.TotalDistance,
		CustomerCount: p.CustomerCount,
		Routes:        routes,
	}
}
