package relay

import (
	"context"
	"time"

	"gorelay/config"
	"gorelay/internal/metrics"
	"gorelay/util"
)

// Relay owns the registry and the listeners for one relay process.
type Relay struct {
	Config *config.Config
	Logger *util.Logger
	Stats  *metrics.Collector

	registry *Registry
}

// New builds a ready-to-run Relay around a fresh registry.
func New(cfg *config.Config, logger *util.Logger, stats *metrics.Collector) *Relay {
	return &Relay{
		Config:   cfg,
		Logger:   logger,
		Stats:    stats,
		registry: NewRegistry(logger, stats),
	}
}

// Registry exposes the shared registry, mainly for tests.
func (r *Relay) Registry() *Registry { return r.registry }

// Run starts the TCP acceptor (and the WebSocket gateway and stats
// reporter when configured) and blocks until ctx is cancelled or the
// listener fails fatally.  Remaining peers are closed on the way out
// so their sessions drain promptly.
func (r *Relay) Run(ctx context.Context) error {
	if r.Config.StatsInterval > 0 {
		go r.statsLoop(ctx)
	}

	if r.Config.WSPort > 0 {
		gw := &Gateway{
			Addr:         r.Config.WSAddr(),
			WriteTimeout: r.Config.WriteTimeout,
			Registry:     r.registry,
			Logger:       r.Logger,
			Stats:        r.Stats,
		}
		go func() {
			// The gateway is a secondary access point: its failure is
			// logged but never takes the TCP listener down.
			if err := gw.Run(ctx); err != nil {
				r.Logger.Error("websocket gateway: %v", err)
				r.Stats.RecordError(err.Error())
			}
		}()
	}

	srv := &Server{
		Addr:         r.Config.ListenAddr(),
		Poll:         r.Config.PollInterval,
		WriteTimeout: r.Config.WriteTimeout,
		Registry:     r.registry,
		Logger:       r.Logger,
		Stats:        r.Stats,
	}
	err := srv.Run(ctx)

	r.registry.CloseAll()
	return err
}

func (r *Relay) statsLoop(ctx context.Context) {
	ticker := time.NewTicker(r.Config.StatsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s := r.Stats.Snapshot()
			r.Logger.Info("stats: %d active / %d total conns, %d B in, %d B out, %d broadcasts, %d skips, %d errors",
				s.ConnectionsActive, s.ConnectionsTotal, s.BytesIn, s.BytesOut,
				s.Broadcasts, s.BusySkips, s.ErrorsTotal)
		}
	}
}
