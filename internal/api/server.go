package api

import (
	"go.uber.org/zap"

	"chainopt/internal/config"
	"chainopt/internal/inventory"
	"chainopt/internal/store"
)

type Server struct {
	Cfg    config.Config
	Store  *store.Memory
	Broker EventBroker
	Log    *zap.Logger
	Calc   *inventory.Calculator
}

// NewServer wires the engine's collaborators. If cfg.Events.RedisURL is
// unset, events stay on the in-process broker.
func NewServer(cfg config.Config, log *zap.Logger) (*Server, error) {
	if log == nil {
		log = zap.NewNop()
	}
	var broker EventBroker
	if cfg.Events.RedisURL != "" {
		rb, err := NewRedisBroker(cfg.Events.RedisURL)
		if err != nil {
			return nil, err
		}
		broker = rb
	} else {
		broker = NewBroker()
	}
	return &Server{
		Cfg:    cfg,
		Store:  store.NewMemory(cfg.HistorySize),
		Broker: broker,
		Log:    log,
		Calc:   inventory.NewCalculator(cfg.Engine.WorkingPeriodDays),
	}, nil
}

// publish sends an event to its own topic and the catch-all runs topic.
func (s *Server) publish(topic string, evt SSEEvent) {
	s.Broker.Publish(topic, evt)
	if topic != TopicRuns {
		s.Broker.Publish(TopicRuns, evt)
	}
}
