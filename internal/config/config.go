// Package config loads service configuration from YAML with environment
// overrides. Every knob the engine consumes (working period, route
// constraints, batch parallelism, default algorithm) is pinned here rather
// than assumed implicitly.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"chainopt/internal/batch"
	"chainopt/internal/inventory"
	"chainopt/internal/opt"
)

type Server struct {
	Addr           string  `yaml:"addr"`
	RateLimitRPS   float64 `yaml:"rate_limit_rps"`
	RateLimitBurst int     `yaml:"rate_limit_burst"`
}

type Engine struct {
	// WorkingPeriodDays is the period annual demand is denominated in.
	WorkingPeriodDays float64 `yaml:"working_period_days"`
	// DefaultServiceLevelFactor is the Z quantile used when a request
	// omits one (1.65 ~ 95% service level).
	DefaultServiceLevelFactor float64 `yaml:"default_service_level_factor"`
	DefaultAlgorithm          string  `yaml:"default_algorithm"`
	VehicleCapacity           float64 `yaml:"vehicle_capacity"`
	MaxStops                  int     `yaml:"max_stops"`
}

type Batch struct {
	Parallelism string `yaml:"parallelism"` // sequential | bounded | unbounded
	Workers     int    `yaml:"workers"`
}

type Events struct {
	RedisURL string `yaml:"redis_url"`
}

type Config struct {
	Server Server `yaml:"server"`
	Engine Engine `yaml:"engine"`
	Batch  Batch  `yaml:"batch"`
	Events Events `yaml:"events"`
	// HistorySize bounds the in-memory run history.
	HistorySize int `yaml:"history_size"`
}

func Default() Config {
	return Config{
		Server: Server{Addr: ":8080", RateLimitRPS: 50, RateLimitBurst: 100},
		Engine: Engine{
			WorkingPeriodDays:         inventory.DefaultWorkingPeriodDays,
			DefaultServiceLevelFactor: 1.65,
			DefaultAlgorithm:          string(opt.ClarkeWright),
		},
		Batch:       Batch{Parallelism: string(batch.Bounded)},
		HistorySize: 200,
	}
}

// Load reads path (optional) over the defaults and applies environment
// overrides (PORT, REDIS_URL). Unknown parallelism modes and algorithms are
// rejected here so the engine never sees them.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	}
	if v := os.Getenv("PORT"); v != "" {
		cfg.Server.Addr = ":" + v
	}
	if v := os.Getenv("REDIS_URL"); v != "" {
		cfg.Events.RedisURL = v
	}
	if _, err := batch.ParseMode(cfg.Batch.Parallelism); err != nil {
		return Config{}, fmt.Errorf("batch.parallelism: %w", err)
	}
	if _, err := opt.ParseAlgorithm(cfg.Engine.DefaultAlgorithm); err != nil {
		return Config{}, fmt.Errorf("engine.default_algorithm: %w", err)
	}
	if cfg.Engine.WorkingPeriodDays <= 0 {
		return Config{}, fmt.Errorf("engine.working_period_days must be > 0, got %v", cfg.Engine.WorkingPeriodDays)
	}
	return cfg, nil
}

// BatchOptions converts the batch section into evaluator options.
func (c Config) BatchOptions() batch.Options {
	mode, _ := batch.ParseMode(c.Batch.Parallelism)
	return batch.Options{Mode: mode, Workers: c.Batch.Workers}
}

// Constraints converts the engine section into default route constraints.
func (c Config) Constraints() opt.Constraints {
	return opt.Constraints{VehicleCapacity: c.Engine.VehicleCapacity, MaxStops: c.Engine.MaxStops}
}
