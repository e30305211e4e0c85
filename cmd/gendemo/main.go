// Command gendemo synthesizes a deterministic multi-day forecast, runs it
// through the full decision engine, and writes the resulting snapshot as a
// JSON fixture. It uses the actual domain package so fixtures always match
// real engine behavior.
//
// Usage:
//
//	go run ./cmd/gendemo -out data/demo/snapshot.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/roofcast/internal/domain"
	"github.com/couchcryptid/roofcast/internal/forecast"
	"github.com/couchcryptid/roofcast/internal/pipeline"
)

var baseTime = time.Date(2026, time.April, 6, 6, 0, 0, 0, time.UTC)

const demoDays = 5

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", "", "output path for the snapshot JSON fixture")
	flag.Parse()

	if *out == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -out")
	}

	// Freeze time for reproducible EvaluatedAt timestamps and window starts.
	domain.SetClock(clockwork.NewFakeClockAt(baseTime))
	defer domain.SetClock(nil)

	samples := synthesizeForecast()
	current := domain.NormalizeCurrent(samples[0], samples[1:])
	hourly := domain.NormalizeSeries(samples)
	days := forecast.GroupDaily(samples)

	assemblies := domain.Catalog()
	decisions := domain.EvaluateAll(assemblies, current, hourly)
	risks := domain.GenerateRiskAssessments(days)
	recs := domain.RecommendSchedule(assemblies, days)
	insights := domain.GenerateInsights(current, decisions, risks, recs)

	snap := pipeline.Snapshot{
		GeneratedAt: baseTime,
		Site:        forecast.Site{Name: "Demo Job Site", Lat: 39.7392, Lon: -104.9903},
		Current:     current,
		Decisions:   decisions,
		Risk:        risks,
		Schedule:    recs,
		Insights:    insights,
	}

	if err := writeJSON(*out, snap); err != nil {
		return fmt.Errorf("writing snapshot fixture: %w", err)
	}
	log.Printf("wrote snapshot fixture: %s", *out)

	printSummary(snap)
	return nil
}

// synthesizeForecast builds a plausible spring forecast: a mild first day,
// a rainy cold front on day two, then a warming recovery. The mix exercises
// every decision path without any being degenerate.
func synthesizeForecast() []domain.ObservedSample {
	samples := make([]domain.ObservedSample, 0, demoDays*24)
	for d := 0; d < demoDays; d++ {
		for h := 0; h < 24; h++ {
			t := baseTime.Add(time.Duration(d*24+h) * time.Hour)
			// Diurnal swing around a per-day baseline, peaking mid-afternoon.
			baseline := []float64{52, 41, 46, 56, 62}[d]
			temp := baseline + 10*math.Sin(float64(h-8)*math.Pi/12)

			condition := "Partly cloudy"
			precipProb := 0.10
			wind := 8.0
			humidity := 55.0
			if d == 1 {
				condition = "Rain"
				precipProb = 0.75
				wind = 22.0
				humidity = 90.0
			}
			if d == 2 && h < 10 {
				condition = "Drizzle"
				precipProb = 0.45
				humidity = 80.0
			}

			samples = append(samples, domain.ObservedSample{
				Time:              t,
				TempF:             math.Round(temp*10) / 10,
				WindMph:           wind,
				Humidity:          humidity,
				PrecipProbability: precipProb,
				Condition:         condition,
			})
		}
	}
	return samples
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o600)
}

func printSummary(snap pipeline.Snapshot) {
	fmt.Println("\n=== Snapshot summary for updating test assertions ===")
	fmt.Printf("Current: %.1f°F %s wind=%.0fmph humidity=%.0f%% precip=%.0f%%\n",
		snap.Current.Temp, snap.Current.TempTrend, snap.Current.WindSpeed,
		snap.Current.Humidity, snap.Current.PrecipProbability)

	fmt.Println("\nDecisions:")
	for _, d := range snap.Decisions {
		light := "HOLD"
		if d.LaborGreenLight {
			light = "GO"
		}
		fmt.Printf("  %-18s %-4s window=%dh lead=%v  %s\n",
			d.Assembly.ID, light, d.WorkWindowHours, d.HasRequiredLeadTime, d.StatusMessage)
	}

	fmt.Println("\nRisk:")
	for _, r := range snap.Risk {
		fmt.Printf("  %s %-9s score=%d %s\n", r.Date.Format("2006-01-02"), r.OverallRisk, r.RiskScore, r.BestWorkWindow)
	}

	fmt.Println("\nSchedule:")
	for _, rec := range snap.Schedule {
		fmt.Printf("  %-18s day=%s confidence=%d%% alt=%s\n",
			rec.AssemblyID, rec.RecommendedDay, rec.Confidence, rec.AlternateDay)
	}

	fmt.Println("\nInsights:")
	for _, in := range snap.Insights {
		fmt.Printf("  [%s] %s\n", in.Category, in.Message)
	}
}
