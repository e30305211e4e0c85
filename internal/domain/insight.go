package domain

import "fmt"

// Insight trigger thresholds.
const (
	insightNearThresholdF = 5.0  // °F gap for "rising toward minimum" advisories
	insightPrecipWarnPct  = 50.0 // current precipitation probability advisory
	insightStrongRecConf  = 70   // confidence for calling out a best day
)

// Insight is a templated advisory derived from already-computed engine
// output. Insights format what the evaluators decided; they never introduce
// new decision logic or data.
type Insight struct {
	Category string `json:"category"` // temperature, precipitation, status, scheduling, risk
	Message  string `json:"message"`
}

// GenerateInsights builds the advisory list for one evaluation cycle.
func GenerateInsights(current WeatherConditions, results []AssemblyResult, risks []DailyRiskAssessment, recs []ScheduleRecommendation) []Insight {
	var insights []Insight

	insights = append(insights, risingNearThreshold(current, results)...)

	if current.PrecipProbability > insightPrecipWarnPct {
		insights = append(insights, Insight{
			Category: "precipitation",
			Message: fmt.Sprintf("Precipitation probability %.0f%%: keep moisture-sensitive materials staged under cover",
				current.PrecipProbability),
		})
	}

	green := 0
	for _, r := range results {
		if r.LaborGreenLight {
			green++
		}
	}
	if len(results) > 0 {
		insights = append(insights, Insight{
			Category: "status",
			Message:  fmt.Sprintf("%d of %d assemblies have a labor green light", green, len(results)),
		})
	}

	for _, risk := range risks {
		if risk.OverallRisk == RiskCritical {
			insights = append(insights, Insight{
				Category: "risk",
				Message:  fmt.Sprintf("Critical risk on %s (score %d): avoid committing crews", risk.DayName, risk.RiskScore),
			})
		}
	}

	if len(recs) > 0 && recs[0].Confidence >= insightStrongRecConf {
		insights = append(insights, Insight{
			Category: "scheduling",
			Message: fmt.Sprintf("Best installation day: %s for %s (confidence %d%%)",
				recs[0].RecommendedDay, recs[0].AssemblyName, recs[0].Confidence),
		})
	}

	return insights
}

// risingNearThreshold flags assemblies held only a few degrees below an
// application minimum while the temperature is rising: a re-check is likely
// to clear them soon.
func risingNearThreshold(current WeatherConditions, results []AssemblyResult) []Insight {
	if current.TempTrend != TrendRising {
		return nil
	}

	var out []Insight
	for _, r := range results {
		if r.Compliant {
			continue
		}
		for _, c := range r.FailingComponents {
			min := c.Constraint.MinTemp
			if min == nil || current.Temp >= *min || *min-current.Temp > insightNearThresholdF {
				continue
			}
			out = append(out, Insight{
				Category: "temperature",
				Message: fmt.Sprintf("%s: temperature rising at %.0f°F, %.0f°F minimum for %s may clear within hours",
					r.Assembly.Name, current.Temp, *min, c.Name),
			})
			break
		}
	}
	return out
}
