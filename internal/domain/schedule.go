package domain

import (
	"fmt"
	"math"
	"sort"
)

// Day scoring weights for schedule recommendations.
const (
	scheduleBaseScore      = 50.0
	scheduleWarmthRefF     = 50.0
	scheduleWarmthPerDegF  = 2.0
	scheduleWarmthCap      = 20.0
	scheduleDrynessDivisor = 5.0
	scheduleCalmRefMph     = 25.0
	scheduleHumidityRefPct = 60.0
	scheduleHumidityDiv    = 2.0
	scheduleMaxConfidence  = 95
	scheduleHorizonDays    = 5
)

// ScheduleRecommendation names the best forecast day to install an assembly.
type ScheduleRecommendation struct {
	AssemblyID     string `json:"assembly_id"`
	AssemblyName   string `json:"assembly_name"`
	RecommendedDay string `json:"recommended_day"`
	Confidence     int    `json:"confidence"`
	Reason         string `json:"reason"`
	AlternateDay   string `json:"alternate_day,omitempty"`
	WorkWindow     string `json:"work_window,omitempty"`
}

// RecommendSchedule scans up to five forecast days per assembly, scores each
// compliant day, and returns one recommendation per assembly sorted by
// descending confidence. Assemblies with no compliant day still get a
// zero-confidence entry so the caller always has something to display.
// Ties sort by assembly name so the output is stable regardless of how the
// evaluation was parallelized.
func RecommendSchedule(assemblies []Assembly, days []DailySummary) []ScheduleRecommendation {
	if len(days) > scheduleHorizonDays {
		days = days[:scheduleHorizonDays]
	}

	recs := make([]ScheduleRecommendation, 0, len(assemblies))
	for _, a := range assemblies {
		recs = append(recs, recommendForAssembly(a, days))
	}

	sort.SliceStable(recs, func(i, j int) bool {
		if recs[i].Confidence != recs[j].Confidence {
			return recs[i].Confidence > recs[j].Confidence
		}
		return recs[i].AssemblyName < recs[j].AssemblyName
	})
	return recs
}

func recommendForAssembly(a Assembly, days []DailySummary) ScheduleRecommendation {
	bestIdx, runnerIdx := -1, -1
	bestScore, runnerScore := 0.0, 0.0

	for i, day := range days {
		if !assemblyCompliantAt(a, NormalizeDaily(day)) {
			continue
		}
		score := scoreDay(day)
		switch {
		case bestIdx == -1 || score > bestScore:
			runnerIdx, runnerScore = bestIdx, bestScore
			bestIdx, bestScore = i, score
		case runnerIdx == -1 || score > runnerScore:
			runnerIdx, runnerScore = i, score
		}
	}

	if bestIdx == -1 {
		return ScheduleRecommendation{
			AssemblyID:     a.ID,
			AssemblyName:   a.Name,
			RecommendedDay: "none",
			Confidence:     0,
			Reason:         "No suitable installation day in the forecast",
		}
	}

	best := days[bestIdx]
	rec := ScheduleRecommendation{
		AssemblyID:     a.ID,
		AssemblyName:   a.Name,
		RecommendedDay: dayName(best),
		Confidence:     confidenceFor(bestScore),
		Reason: fmt.Sprintf("High %.0f°F, %.0f%% precipitation chance, wind to %.0f mph",
			best.HighTempF, best.MaxPrecipProbability, best.MaxWindMph),
		WorkWindow: bestWorkWindow(best.Hourly),
	}
	if runnerIdx != -1 {
		rec.AlternateDay = dayName(days[runnerIdx])
	}
	return rec
}

// scoreDay rates a compliant day: base plus capped warmth and dryness and
// calm bonuses, minus a humidity penalty. Cold days can score below base
// because the warmth term is capped, not floored.
func scoreDay(day DailySummary) float64 {
	score := scheduleBaseScore

	warmth := (day.HighTempF - scheduleWarmthRefF) * scheduleWarmthPerDegF
	if warmth > scheduleWarmthCap {
		warmth = scheduleWarmthCap
	}
	score += warmth

	if dryness := (100 - day.MaxPrecipProbability) / scheduleDrynessDivisor; dryness > 0 {
		score += dryness
	}
	if calm := scheduleCalmRefMph - day.MaxWindMph; calm > 0 {
		score += calm
	}
	if humidity := (day.AvgHumidity - scheduleHumidityRefPct) / scheduleHumidityDiv; humidity > 0 {
		score -= humidity
	}

	return score
}

func confidenceFor(score float64) int {
	c := int(math.Round(score))
	if c > scheduleMaxConfidence {
		return scheduleMaxConfidence
	}
	if c < 0 {
		return 0
	}
	return c
}
