package store

import "testing"

func TestRecordAndListRuns(t *testing.T) {
	m := NewMemory(10)
	first := m.RecordRun("inventory", "", map[string]any{"eoq": 244.9})
	second := m.RecordRun("routing", "clarke-wright", map[string]any{"routes": 2})

	if first.ID == "" || second.ID == "" || first.ID == second.ID {
		t.Fatalf("ids: %q, %q", first.ID, second.ID)
	}
	if first.CreatedAt.IsZero() {
		t.Fatal("CreatedAt not set")
	}

	runs := m.ListRuns("", 0)
	if len(runs) != 2 {
		t.Fatalf("got %d runs, want 2", len(runs))
	}
	if runs[0].ID != second.ID {
		t.Fatalf("newest first: got %q, want %q", runs[0].ID, second.ID)
	}

	routing := m.ListRuns("routing", 0)
	if len(routing) != 1 || routing[0].Kind != "routing" {
		t.Fatalf("kind filter: %+v", routing)
	}

	limited := m.ListRuns("", 1)
	if len(limited) != 1 {
		t.Fatalf("limit: got %d runs", len(limited))
	}
}

func TestHistoryCapped(t *testing.T) {
	m := NewMemory(3)
	var last string
	for i := 0; i < 5; i++ {
		last = m.RecordRun("inventory", "", nil).ID
	}
	runs := m.ListRuns("", 0)
	if len(runs) != 3 {
		t.Fatalf("got %d runs, want 3", len(runs))
	}
	if runs[0].ID != last {
		t.Fatal("newest run evicted instead of oldest")
	}
}

func TestStats(t *testing.T) {
	m := NewMemory(10)
	m.RecordRun("inventory", "", nil)
	m.RecordRun("inventory", "", nil)
	m.RecordRun("routing", "nearest-neighbor", nil)
	stats := m.Stats()
	if stats["inventory"] != 2 || stats["routing"] != 1 {
		t.Fatalf("stats = %v", stats)
	}
}
