package persistence

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ProbeConfig controls the background liveness probe
type ProbeConfig struct {
	Interval time.Duration
	Timeout  time.Duration
}

// DefaultProbeConfig returns probe settings suitable for most deployments
func DefaultProbeConfig() ProbeConfig {
	return ProbeConfig{
		Interval: 30 * time.Second,
		Timeout:  5 * time.Second,
	}
}

// LivenessProbe periodically pings the database in the background so
// connectivity loss shows up in the logs before a request hits it. The
// /system/health endpoint reports the current state.
type LivenessProbe struct {
	db     *Database
	cfg    ProbeConfig
	logger *zap.Logger

	mu      sync.RWMutex
	healthy bool

	stop chan struct{}
	done chan struct{}
}

// NewLivenessProbe creates a probe; Start begins probing
func NewLivenessProbe(db *Database, cfg ProbeConfig, logger *zap.Logger) *LivenessProbe {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultProbeConfig().Interval
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultProbeConfig().Timeout
	}
	return &LivenessProbe{
		db:      db,
		cfg:     cfg,
		logger:  logger,
		healthy: true,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// Start begins probing in a background goroutine
func (p *LivenessProbe) Start(ctx context.Context) error {
	p.probe(ctx)
	go p.loop(ctx)
	return nil
}

// Stop halts the probe and waits for the loop to exit
func (p *LivenessProbe) Stop(ctx context.Context) error {
	close(p.stop)
	select {
	case <-p.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Healthy reports the result of the most recent probe
func (p *LivenessProbe) Healthy() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.healthy
}

func (p *LivenessProbe) loop(ctx context.Context) {
	defer close(p.done)
	ticker := time.NewTicker(p.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			p.probe(ctx)
		case <-p.stop:
			return
		case <-ctx.Done():
			return
		}
	}
}

func (p *LivenessProbe) probe(ctx context.Context) {
	probeCtx, cancel := context.WithTimeout(ctx, p.cfg.Timeout)
	defer cancel()

	err := p.db.PingContext(probeCtx)

	p.mu.Lock()
	wasHealthy := p.healthy
	p.healthy = err == nil
	p.mu.Unlock()

	switch {
	case err != nil && wasHealthy:
		p.logger.Error("Database liveness probe failed", zap.Error(err))
	case err == nil && !wasHealthy:
		p.logger.Info("Database liveness probe recovered")
	}
}
