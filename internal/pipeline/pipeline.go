// Package pipeline runs the periodic fetch-evaluate-publish loop that keeps
// the latest decision snapshot fresh.
package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/errgroup"

	"github.com/couchcryptid/roofcast/internal/domain"
	"github.com/couchcryptid/roofcast/internal/forecast"
	"github.com/couchcryptid/roofcast/internal/observability"
)

// evalConcurrency bounds the per-assembly evaluation fan-out.
const evalConcurrency = 4

// Publisher delivers assembly decisions to downstream consumers.
type Publisher interface {
	PublishDecisions(ctx context.Context, results []domain.AssemblyResult) error
}

// Pipeline orchestrates the refresh loop and holds the latest snapshot.
type Pipeline struct {
	provider   forecast.Provider
	publisher  Publisher // nil disables publishing
	assemblies []domain.Assembly
	site       forecast.Site
	interval   time.Duration
	logger     *slog.Logger
	metrics    *observability.Metrics
	clock      clockwork.Clock

	snapshot atomic.Pointer[Snapshot]
	ready    atomic.Bool
}

// New creates a Pipeline. A nil publisher disables decision publishing; a
// nil clock uses real time.
func New(provider forecast.Provider, publisher Publisher, assemblies []domain.Assembly, site forecast.Site, interval time.Duration, logger *slog.Logger, metrics *observability.Metrics, clock clockwork.Clock) *Pipeline {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Pipeline{
		provider:   provider,
		publisher:  publisher,
		assemblies: assemblies,
		site:       site,
		interval:   interval,
		logger:     logger,
		metrics:    metrics,
		clock:      clock,
	}
}

// Latest returns the most recent snapshot, or nil before the first
// successful cycle.
func (p *Pipeline) Latest() *Snapshot {
	return p.snapshot.Load()
}

// CheckReadiness returns nil once at least one evaluation cycle has
// completed, or an error describing why the service is not yet ready.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("no evaluation cycle has completed yet")
	}
	return nil
}

// Run executes the refresh loop until the context is cancelled. A failed
// cycle retries with exponential backoff (200ms doubling to 5s) instead of
// waiting a full interval, so an outage at the provider recovers quickly.
func (p *Pipeline) Run(ctx context.Context) error {
	p.logger.Info("pipeline started", "site", p.site.Name, "interval", p.interval, "assemblies", len(p.assemblies))
	p.metrics.PipelineRunning.Set(1)
	defer p.metrics.PipelineRunning.Set(0)

	backoff := 200 * time.Millisecond
	maxBackoff := 5 * time.Second

	for {
		wait := p.interval
		if err := p.Refresh(ctx); err != nil {
			if ctx.Err() != nil {
				p.logger.Info("pipeline stopping", "reason", ctx.Err())
				return nil
			}
			p.logger.Error("refresh failed", "error", err)
			p.metrics.RefreshErrors.Inc()
			wait = backoff
			backoff = nextBackoff(backoff, maxBackoff)
		} else {
			backoff = 200 * time.Millisecond
		}

		if !p.sleep(ctx, wait) {
			p.logger.Info("pipeline stopping", "reason", ctx.Err())
			return nil
		}
	}
}

// Refresh runs one fetch-evaluate-publish cycle and swaps in the snapshot.
func (p *Pipeline) Refresh(ctx context.Context) error {
	start := time.Now()

	fc, err := p.provider.Fetch(ctx, p.site)
	if err != nil {
		return err
	}

	current := domain.NormalizeCurrent(fc.Current, fc.Hourly)
	hourly := domain.NormalizeSeries(fc.Hourly)

	// Evaluate assemblies concurrently. Results land at fixed indexes, so
	// output order is catalog order no matter which goroutine finishes first.
	decisions := make([]domain.AssemblyResult, len(p.assemblies))
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(evalConcurrency)
	for i, a := range p.assemblies {
		g.Go(func() error {
			decisions[i] = domain.EvaluateAssembly(a, current, hourly)
			return nil
		})
	}
	// Evaluation is pure and never errors; Wait only synchronizes.
	_ = g.Wait()

	days := forecast.GroupDaily(fc.Hourly)
	risks := domain.GenerateRiskAssessments(days)
	recs := domain.RecommendSchedule(p.assemblies, days)
	insights := domain.GenerateInsights(current, decisions, risks, recs)

	snap := &Snapshot{
		GeneratedAt: p.clock.Now(),
		Site:        p.site,
		Current:     current,
		Decisions:   decisions,
		Risk:        risks,
		Schedule:    recs,
		Insights:    insights,
	}
	p.snapshot.Store(snap)
	p.ready.Store(true)

	green := 0
	for _, d := range decisions {
		if d.LaborGreenLight {
			green++
		}
	}
	p.metrics.GreenLights.Set(float64(green))
	p.metrics.RefreshCycles.Inc()
	p.metrics.CycleDuration.Observe(time.Since(start).Seconds())

	if p.publisher != nil {
		if err := p.publisher.PublishDecisions(ctx, decisions); err != nil {
			// The snapshot is already live for API consumers; publishing is
			// retried on the next cycle.
			p.logger.Warn("publish decisions failed", "error", err)
			p.metrics.PublishErrors.Inc()
		} else {
			p.metrics.DecisionsPublished.Add(float64(len(decisions)))
		}
	}

	p.logger.Debug("refresh complete",
		"green_lights", green,
		"decisions", len(decisions),
		"forecast_hours", len(fc.Hourly),
		"forecast_days", len(days),
	)
	return nil
}

// sleep waits for d or context cancellation. Returns false if the pipeline
// should stop.
func (p *Pipeline) sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}

	timer := p.clock.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.Chan():
		return true
	}
}

func nextBackoff(current, maxBackoff time.Duration) time.Duration {
	next := current * 2
	if next > maxBackoff {
		return maxBackoff
	}
	return next
}
