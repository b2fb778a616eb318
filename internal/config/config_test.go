package config

import (
	"os"
	"path/filepath"
	"testing"

	"chainopt/internal/batch"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Server.Addr != ":8080" {
		t.Fatalf("addr = %q", cfg.Server.Addr)
	}
	if cfg.Engine.WorkingPeriodDays != 365 {
		t.Fatalf("working period = %v", cfg.Engine.WorkingPeriodDays)
	}
	if cfg.Engine.DefaultServiceLevelFactor != 1.65 {
		t.Fatalf("service level factor = %v", cfg.Engine.DefaultServiceLevelFactor)
	}
	if cfg.Engine.DefaultAlgorithm != "clarke-wright" {
		t.Fatalf("default algorithm = %q", cfg.Engine.DefaultAlgorithm)
	}
	if cfg.Batch.Parallelism != "bounded" {
		t.Fatalf("parallelism = %q", cfg.Batch.Parallelism)
	}
	if cfg.HistorySize != 200 {
		t.Fatalf("history size = %d", cfg.HistorySize)
	}
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := `
server:
  addr: ":9090"
  rate_limit_rps: 10
engine:
  working_period_days: 250
  default_algorithm: nearest-neighbor
  vehicle_capacity: 40
  max_stops: 6
batch:
  parallelism: sequential
history_size: 50
`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write temp config: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr != ":9090" || cfg.Server.RateLimitRPS != 10 {
		t.Fatalf("server = %+v", cfg.Server)
	}
	if cfg.Engine.WorkingPeriodDays != 250 || cfg.Engine.DefaultAlgorithm != "nearest-neighbor" {
		t.Fatalf("engine = %+v", cfg.Engine)
	}
	cons := cfg.Constraints()
	if cons.VehicleCapacity != 40 || cons.MaxStops != 6 {
		t.Fatalf("constraints = %+v", cons)
	}
	opts := cfg.BatchOptions()
	if opts.Mode != batch.Sequential {
		t.Fatalf("batch mode = %v", opts.Mode)
	}
	if cfg.HistorySize != 50 {
		t.Fatalf("history size = %d", cfg.HistorySize)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "7070")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr != ":7070" {
		t.Fatalf("addr = %q", cfg.Server.Addr)
	}
	if cfg.Events.RedisURL != "redis://localhost:6379/0" {
		t.Fatalf("redis url = %q", cfg.Events.RedisURL)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := []string{
		"batch:\n  parallelism: chaotic\n",
		"engine:\n  default_algorithm: magic\n",
		"engine:\n  working_period_days: -1\n",
	}
	for _, raw := range cases {
		path := filepath.Join(t.TempDir(), "config.yaml")
		if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
			t.Fatalf("write temp config: %v", err)
		}
		if _, err := Load(path); err == nil {
			t.Fatalf("config accepted: %q", raw)
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("missing file accepted")
	}
}
