package dataset

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/medlux/wardgrid/internal/logging"
)

const (
	defaultPollInterval = 5 * time.Second
	maxBackoff          = 60 * time.Second
)

// Refresh loads src once and records the outcome in store.
func Refresh(ctx context.Context, store *Store, src Source, logger *zap.Logger) error {
	data, err := src.Load(ctx)
	store.Update(src.Name(), data, err)
	if err != nil {
		logging.OrNop(logger).Warn("dataset refresh failed",
			zap.String("source", src.Name()),
			zap.Error(err))
		return err
	}
	logging.OrNop(logger).Debug("dataset refreshed",
		zap.String("source", src.Name()),
		zap.Int("records", len(data)))
	return nil
}

// LoadAll refreshes every source concurrently. Failures are recorded in the
// store; the first one is also returned.
func LoadAll(ctx context.Context, store *Store, sources []Source, logger *zap.Logger) error {
	var g errgroup.Group
	for _, src := range sources {
		g.Go(func() error {
			return Refresh(ctx, store, src, logger)
		})
	}
	return g.Wait()
}

// Poller refreshes sources at a fixed cadence, backing off sources that keep
// failing.
type Poller struct {
	Store    *Store
	Sources  []Source
	Interval time.Duration // zero uses the default
	Logger   *zap.Logger
}

// Run blocks until ctx is cancelled. Sources are refreshed on every tick once
// their backoff has elapsed.
func (p *Poller) Run(ctx context.Context) error {
	if len(p.Sources) == 0 {
		return nil
	}
	interval := p.Interval
	if interval <= 0 {
		interval = defaultPollInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	due := make(map[string]time.Time, len(p.Sources))
	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			for _, src := range p.Sources {
				if now.Before(due[src.Name()]) {
					continue
				}
				_ = Refresh(ctx, p.Store, src, p.Logger)
				snap, _ := p.Store.Status(src.Name())
				due[src.Name()] = now.Add(calculateBackoff(snap.ConsecutiveFailures, interval) - interval/2)
			}
		}
	}
}

// calculateBackoff returns the wait before the next attempt after failures
// consecutive errors, doubling from base and capped at maxBackoff.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	backoff := base
	for range failures {
		backoff *= 2
		if backoff >= maxBackoff {
			return maxBackoff
		}
	}
	return backoff
}
