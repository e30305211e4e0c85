package forecast

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/roofcast/internal/domain"
	"github.com/couchcryptid/roofcast/internal/observability"
)

// countingProvider returns a forecast stamped with its call count so tests
// can tell cached responses from fresh fetches.
type countingProvider struct {
	calls int
	err   error
}

func (p *countingProvider) Fetch(_ context.Context, _ Site) (Forecast, error) {
	p.calls++
	if p.err != nil {
		return Forecast{}, p.err
	}
	return Forecast{Current: domain.ObservedSample{TempF: float64(p.calls)}}, nil
}

func TestCachedProvider(t *testing.T) {
	site := Site{Name: "Yard", Lat: 39.7392, Lon: -104.9903}
	otherSite := Site{Name: "Annex", Lat: 40.0150, Lon: -105.2705}

	t.Run("repeat fetch hits the cache", func(t *testing.T) {
		inner := &countingProvider{}
		clock := clockwork.NewFakeClock()
		cached := NewCachedProvider(inner, 10, 10*time.Minute, clock, observability.NewMetricsForTesting())

		first, err := cached.Fetch(context.Background(), site)
		require.NoError(t, err)
		second, err := cached.Fetch(context.Background(), site)
		require.NoError(t, err)

		assert.Equal(t, 1, inner.calls)
		assert.Equal(t, first, second)
	})

	t.Run("distinct sites fetch separately", func(t *testing.T) {
		inner := &countingProvider{}
		cached := NewCachedProvider(inner, 10, 10*time.Minute, clockwork.NewFakeClock(), observability.NewMetricsForTesting())

		_, err := cached.Fetch(context.Background(), site)
		require.NoError(t, err)
		_, err = cached.Fetch(context.Background(), otherSite)
		require.NoError(t, err)

		assert.Equal(t, 2, inner.calls)
	})

	t.Run("entries expire after the TTL", func(t *testing.T) {
		inner := &countingProvider{}
		clock := clockwork.NewFakeClock()
		cached := NewCachedProvider(inner, 10, 10*time.Minute, clock, observability.NewMetricsForTesting())

		_, err := cached.Fetch(context.Background(), site)
		require.NoError(t, err)

		clock.Advance(10*time.Minute + time.Second)

		refreshed, err := cached.Fetch(context.Background(), site)
		require.NoError(t, err)
		assert.Equal(t, 2, inner.calls)
		assert.Equal(t, 2.0, refreshed.Current.TempF)
	})

	t.Run("entry within the TTL survives", func(t *testing.T) {
		inner := &countingProvider{}
		clock := clockwork.NewFakeClock()
		cached := NewCachedProvider(inner, 10, 10*time.Minute, clock, observability.NewMetricsForTesting())

		_, err := cached.Fetch(context.Background(), site)
		require.NoError(t, err)

		clock.Advance(9 * time.Minute)

		_, err = cached.Fetch(context.Background(), site)
		require.NoError(t, err)
		assert.Equal(t, 1, inner.calls)
	})

	t.Run("errors are not cached", func(t *testing.T) {
		inner := &countingProvider{err: assert.AnError}
		cached := NewCachedProvider(inner, 10, 10*time.Minute, clockwork.NewFakeClock(), observability.NewMetricsForTesting())

		_, err := cached.Fetch(context.Background(), site)
		require.Error(t, err)

		inner.err = nil
		fc, err := cached.Fetch(context.Background(), site)
		require.NoError(t, err)
		assert.Equal(t, 2, inner.calls)
		assert.Equal(t, 2.0, fc.Current.TempF)
	})

	t.Run("evicts least recently used at capacity", func(t *testing.T) {
		inner := &countingProvider{}
		cached := NewCachedProvider(inner, 1, 10*time.Minute, clockwork.NewFakeClock(), observability.NewMetricsForTesting())

		_, err := cached.Fetch(context.Background(), site)
		require.NoError(t, err)
		_, err = cached.Fetch(context.Background(), otherSite)
		require.NoError(t, err)
		// The first site was evicted, so this is a fresh fetch.
		_, err = cached.Fetch(context.Background(), site)
		require.NoError(t, err)

		assert.Equal(t, 3, inner.calls)
	})
}
