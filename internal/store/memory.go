package store

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"chainopt/internal/model"
)

// Memory keeps a bounded history of recent optimization runs, newest first.
// The engine is stateless between requests; durable persistence belongs to
// the calling application, so this history is deliberately ephemeral.
type Memory struct {
	mu   sync.Mutex
	cap  int
	runs []model.Run
}

func NewMemory(capacity int) *Memory {
	if capacity <= 0 {
		capacity = 200
	}
	return &Memory{cap: capacity}
}

// RecordRun appends a run record and returns it with its assigned ID.
func (m *Memory) RecordRun(kind, algorithm string, summary map[string]any) model.Run {
	run := model.Run{
		ID:        uuid.NewString(),
		Kind:      kind,
		Algorithm: algorithm,
		CreatedAt: time.Now().UTC(),
		Summary:   summary,
	}
	m.mu.Lock()
	m.runs = append([]model.Run{run}, m.runs...)
	if len(m.runs) > m.cap {
		m.runs = m.runs[:m.cap]
	}
	m.mu.Unlock()
	return run
}

// ListRuns returns up to limit recent runs, optionally filtered by kind.
func (m *Memory) ListRuns(kind string, limit int) []model.Run {
	if limit <= 0 || limit > m.cap {
		limit = m.cap
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.Run, 0, limit)
	for _, r := range m.runs {
		if kind != "" && r.Kind != kind {
			continue
		}
		out = append(out, r)
		if len(out) == limit {
			break
		}
	}
	return out
}

// Stats returns run counts per kind.
func (m *Memory) Stats() map[string]int {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := map[string]int{}
	for _, r := range m.runs {
		out[r.Kind]++
	}
	return out
}
