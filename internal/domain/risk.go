package domain

import (
	"fmt"
	"time"
)

// RiskLevel is the categorical operational risk for a forecast day.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskModerate RiskLevel = "moderate"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// Additive risk points and their firing thresholds. Each factor fires at
// most once per day.
const (
	riskColdSevereTempF  = 40.0
	riskColdCoolTempF    = 50.0
	riskColdSeverePoints = 30
	riskColdCoolPoints   = 15
	riskPrecipHighPct    = 70.0
	riskPrecipMidPct     = 40.0
	riskPrecipLowPct     = 20.0
	riskPrecipHighPoints = 35
	riskPrecipMidPoints  = 20
	riskPrecipLowPoints  = 10
	riskWindStrongMph    = 25.0
	riskWindBreezyMph    = 15.0
	riskWindStrongPoints = 25
	riskWindBreezyPoints = 10
	riskHumidityPct      = 85.0
	riskHumidityPoints   = 10
)

// Score thresholds mapping the additive score to a level.
const (
	riskCriticalScore = 60
	riskHighScore     = 40
	riskModerateScore = 20
)

// Qualifying-hour bounds for the best-work-window string.
const (
	workableHourMinTempF  = 50.0
	workableHourMaxPrecip = 0.30 // hourly probability, 0.0-1.0
)

// DailyRiskAssessment summarizes weather-driven operational risk for one
// forecast day.
type DailyRiskAssessment struct {
	Date           time.Time `json:"date"`
	DayName        string    `json:"day_name"`
	RiskScore      int       `json:"risk_score"`
	OverallRisk    RiskLevel `json:"overall_risk"`
	Factors        []string  `json:"factors"`
	BestWorkWindow string    `json:"best_work_window,omitempty"`
}

// ScoreDailyRisk computes the additive 0-100 risk score for one day. The
// factor thresholds are independent and each fires at most once; a day with
// no firing factor reports a single "favorable conditions" entry rather
// than an empty list.
func ScoreDailyRisk(day DailySummary) DailyRiskAssessment {
	score := 0
	var factors []string

	switch {
	case day.LowTempF < riskColdSevereTempF:
		score += riskColdSeverePoints
		factors = append(factors, fmt.Sprintf("Low temperature %.0f°F: adhesives and coatings out of range", day.LowTempF))
	case day.LowTempF < riskColdCoolTempF:
		score += riskColdCoolPoints
		factors = append(factors, fmt.Sprintf("Cool low of %.0f°F: slow adhesive flash-off", day.LowTempF))
	}

	switch {
	case day.MaxPrecipProbability > riskPrecipHighPct:
		score += riskPrecipHighPoints
		factors = append(factors, fmt.Sprintf("High precipitation probability %.0f%%", day.MaxPrecipProbability))
	case day.MaxPrecipProbability > riskPrecipMidPct:
		score += riskPrecipMidPoints
		factors = append(factors, fmt.Sprintf("Moderate precipitation probability %.0f%%", day.MaxPrecipProbability))
	case day.MaxPrecipProbability > riskPrecipLowPct:
		score += riskPrecipLowPoints
		factors = append(factors, fmt.Sprintf("Slight precipitation probability %.0f%%", day.MaxPrecipProbability))
	}

	switch {
	case day.MaxWindMph > riskWindStrongMph:
		score += riskWindStrongPoints
		factors = append(factors, fmt.Sprintf("Strong wind to %.0f mph: membrane and torch work unsafe", day.MaxWindMph))
	case day.MaxWindMph > riskWindBreezyMph:
		score += riskWindBreezyPoints
		factors = append(factors, fmt.Sprintf("Breezy conditions to %.0f mph", day.MaxWindMph))
	}

	if day.AvgHumidity > riskHumidityPct {
		score += riskHumidityPoints
		factors = append(factors, fmt.Sprintf("High average humidity %.0f%%: condensation risk", day.AvgHumidity))
	}

	if score > 100 {
		score = 100
	}

	if len(factors) == 0 {
		factors = []string{"Favorable conditions for roofing work"}
	}

	return DailyRiskAssessment{
		Date:           day.Date,
		DayName:        dayName(day),
		RiskScore:      score,
		OverallRisk:    riskLevelFor(score),
		Factors:        factors,
		BestWorkWindow: bestWorkWindow(day.Hourly),
	}
}

// GenerateRiskAssessments scores every forecast day in order.
func GenerateRiskAssessments(days []DailySummary) []DailyRiskAssessment {
	out := make([]DailyRiskAssessment, len(days))
	for i, d := range days {
		out[i] = ScoreDailyRisk(d)
	}
	return out
}

func riskLevelFor(score int) RiskLevel {
	switch {
	case score >= riskCriticalScore:
		return RiskCritical
	case score >= riskHighScore:
		return RiskHigh
	case score >= riskModerateScore:
		return RiskModerate
	default:
		return RiskLow
	}
}

// bestWorkWindow formats the clock span bounded by the first and last hour
// of the day satisfying the workable-hour thresholds. Hours inside the span
// need not qualify; any qualifying hours bound the window.
func bestWorkWindow(hourly []ObservedSample) string {
	first, last := -1, -1
	for i, s := range hourly {
		if s.TempF >= workableHourMinTempF && s.PrecipProbability < workableHourMaxPrecip {
			if first == -1 {
				first = i
			}
			last = i
		}
	}
	if first == -1 {
		return ""
	}
	return fmt.Sprintf("%s-%s",
		hourly[first].Time.Format("15:04"),
		hourly[last].Time.Format("15:04"))
}

func dayName(day DailySummary) string {
	if day.DayName != "" {
		return day.DayName
	}
	return day.Date.Weekday().String()
}
