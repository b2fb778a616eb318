package api

import (
	"encoding/json"
	"net/http"
)

// Problem type URIs identifying each engine error category, so clients can
// branch on the category without parsing detail strings.
const (
	problemTypeInvalidInput         = "/problems/invalid-input"
	problemTypeInvalidCoordinate    = "/problems/invalid-coordinate"
	problemTypeInvalidParameter     = "/problems/invalid-parameter"
	problemTypeInfeasibleConstraint = "/problems/infeasible-constraint"
)

// Problem represents an RFC7807 problem details response body.
type Problem struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeProblem(w http.ResponseWriter, status int, title, detail, instance string) {
	writeTypedProblem(w, status, "about:blank", title, detail, instance)
}

func writeTypedProblem(w http.ResponseWriter, status int, ptype, title, detail, instance string) {
	writeJSON(w, status, Problem{
		Type:     ptype,
		Title:    title,
		Status:   status,
		Detail:   detail,
		Instance: instance,
	})
}
