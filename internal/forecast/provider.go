// Package forecast retrieves and aggregates hourly weather data for the
// decision engine. The engine itself never performs I/O; this package is the
// weather collaborator it consumes.
package forecast

import (
	"context"
	"time"

	"github.com/couchcryptid/roofcast/internal/domain"
)

// Site is the job-site location a forecast is fetched for.
type Site struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

// Forecast bundles the current sample with the chronological hourly series.
type Forecast struct {
	Current domain.ObservedSample   `json:"current"`
	Hourly  []domain.ObservedSample `json:"hourly"`
}

// Provider fetches weather data for a site.
type Provider interface {
	Fetch(ctx context.Context, site Site) (Forecast, error)
}

// GroupDaily buckets an hourly series into per-calendar-day summaries (UTC
// days, in chronological order), aggregating the fields the risk scorer and
// scheduler consume and retaining the hourly samples for sub-day analysis.
func GroupDaily(hourly []domain.ObservedSample) []domain.DailySummary {
	var days []domain.DailySummary
	idx := make(map[string]int)

	for _, s := range hourly {
		date := s.Time.UTC().Truncate(24 * time.Hour)
		key := date.Format("2006-01-02")
		i, ok := idx[key]
		if !ok {
			i = len(days)
			idx[key] = i
			days = append(days, domain.DailySummary{
				Date:    date,
				DayName: date.Weekday().String(),
			})
		}
		days[i].Hourly = append(days[i].Hourly, s)
	}

	for i := range days {
		summarize(&days[i])
	}
	return days
}

// summarize fills the aggregate fields from the day's hourly samples.
func summarize(day *domain.DailySummary) {
	if len(day.Hourly) == 0 {
		return
	}

	high, low := day.Hourly[0].TempF, day.Hourly[0].TempF
	sumTemp, sumHumidity := 0.0, 0.0
	maxWind, maxPrecip := 0.0, 0.0
	counts := make(map[string]int)

	for _, s := range day.Hourly {
		if s.TempF > high {
			high = s.TempF
		}
		if s.TempF < low {
			low = s.TempF
		}
		sumTemp += s.TempF
		sumHumidity += s.Humidity
		if s.WindMph > maxWind {
			maxWind = s.WindMph
		}
		if s.PrecipProbability > maxPrecip {
			maxPrecip = s.PrecipProbability
		}
		counts[s.Condition]++
	}

	n := float64(len(day.Hourly))
	day.HighTempF = high
	day.LowTempF = low
	day.AvgTempF = sumTemp / n
	day.MaxWindMph = maxWind
	day.AvgHumidity = sumHumidity / n
	day.MaxPrecipProbability = maxPrecip * 100
	day.DominantCondition = dominantCondition(day.Hourly, counts)
}

// dominantCondition picks the most frequent condition text, breaking ties
// toward the earliest occurrence so grouping stays deterministic.
func dominantCondition(hourly []domain.ObservedSample, counts map[string]int) string {
	best, bestCount := "", 0
	seen := make(map[string]bool)
	for _, s := range hourly {
		if seen[s.Condition] {
			continue
		}
		seen[s.Condition] = true
		if counts[s.Condition] > bestCount {
			best = s.Condition
			bestCount = counts[s.Condition]
		}
	}
	return best
}
