package domain

import (
	"strings"
	"time"
)

// TempTrend describes where the temperature is heading.
type TempTrend string

const (
	TrendRising  TempTrend = "rising"
	TrendFalling TempTrend = "falling"
	TrendStable  TempTrend = "stable"
)

// Trend comparison thresholds. The hourly and daily rules intentionally use
// different absolute thresholds; reporting output is pinned to these exact
// values, so do not unify or smooth them.
const (
	// TrendThresholdHourlyF compares the current sample against the
	// average of the next one or two hourly samples.
	TrendThresholdHourlyF = 2.0

	// TrendThresholdDailyF compares the first half of a day's hourly
	// samples against the second half.
	TrendThresholdDailyF = 3.0
)

// precipVocabulary is the fixed set of substrings that classify a condition
// description as precipitating. Case-insensitive match, exact vocabulary;
// widening it would drift the compliance output.
var precipVocabulary = []string{"rain", "snow", "drizzle", "sleet"}

// WeatherConditions is the canonical engine input. Every raw weather format
// is normalized into this shape before any evaluation runs.
type WeatherConditions struct {
	Temp              float64   `json:"temp"`               // °F
	TempTrend         TempTrend `json:"temp_trend"`
	WindSpeed         float64   `json:"wind_speed"`         // mph
	Humidity          float64   `json:"humidity"`           // percent, 0-100
	IsPrecipitating   bool      `json:"is_precipitating"`
	PrecipProbability float64   `json:"precip_probability"` // percent, 0-100
}

// ObservedSample is one raw weather sample as delivered by the forecast
// provider: °F, mph, humidity 0-100, precipitation probability 0.0-1.0.
type ObservedSample struct {
	Time              time.Time `json:"time"`
	TempF             float64   `json:"temp_f"`
	WindMph           float64   `json:"wind_mph"`
	Humidity          float64   `json:"humidity"`
	PrecipProbability float64   `json:"precip_probability"`
	Condition         string    `json:"condition"`
}

// DailySummary is one forecast day pre-aggregated by the provider layer.
// Probability is carried as 0-100 here, matching the daily feed semantics.
type DailySummary struct {
	Date                 time.Time        `json:"date"`
	DayName              string           `json:"day_name"`
	HighTempF            float64          `json:"high_temp_f"`
	LowTempF             float64          `json:"low_temp_f"`
	AvgTempF             float64          `json:"avg_temp_f"`
	MaxWindMph           float64          `json:"max_wind_mph"`
	AvgHumidity          float64          `json:"avg_humidity"`
	MaxPrecipProbability float64          `json:"max_precip_probability"`
	DominantCondition    string           `json:"dominant_condition"`
	Hourly               []ObservedSample `json:"hourly,omitempty"`
}

// NormalizeCurrent converts a current sample plus the upcoming hourly
// forecast into canonical conditions. The trend compares the current
// temperature against the average of the next one or two forecast samples.
func NormalizeCurrent(current ObservedSample, forecast []ObservedSample) WeatherConditions {
	return WeatherConditions{
		Temp:              current.TempF,
		TempTrend:         hourlyTrend(current.TempF, forecast),
		WindSpeed:         current.WindMph,
		Humidity:          current.Humidity,
		IsPrecipitating:   IsPrecipCondition(current.Condition),
		PrecipProbability: current.PrecipProbability * 100,
	}
}

// NormalizeSeries converts an hourly forecast into one canonical sample per
// hour, deriving each hour's trend from the samples that follow it.
func NormalizeSeries(samples []ObservedSample) []WeatherConditions {
	out := make([]WeatherConditions, len(samples))
	for i, s := range samples {
		out[i] = NormalizeCurrent(s, samples[i+1:])
	}
	return out
}

// NormalizeDaily converts a pre-aggregated day into canonical conditions.
// The trend splits the day's hourly samples into halves and compares the
// half averages; a day without hourly data reads as stable.
func NormalizeDaily(day DailySummary) WeatherConditions {
	return WeatherConditions{
		Temp:              day.AvgTempF,
		TempTrend:         dailyTrend(day.Hourly),
		WindSpeed:         day.MaxWindMph,
		Humidity:          day.AvgHumidity,
		IsPrecipitating:   IsPrecipCondition(day.DominantCondition),
		PrecipProbability: day.MaxPrecipProbability,
	}
}

// IsPrecipCondition reports whether a free-text condition description names
// active precipitation, by case-insensitive substring over the fixed
// vocabulary. Deliberately crude: "Hail" and "Thunderstorm" without rain
// wording do not match, matching historical behavior.
func IsPrecipCondition(condition string) bool {
	c := strings.ToLower(condition)
	for _, word := range precipVocabulary {
		if strings.Contains(c, word) {
			return true
		}
	}
	return false
}

// hourlyTrend averages the next one or two forecast samples and compares
// against the current temperature with the hourly threshold.
func hourlyTrend(currentTemp float64, forecast []ObservedSample) TempTrend {
	if len(forecast) == 0 {
		return TrendStable
	}

	n := 2
	if len(forecast) < n {
		n = len(forecast)
	}
	sum := 0.0
	for _, s := range forecast[:n] {
		sum += s.TempF
	}
	avg := sum / float64(n)

	switch {
	case avg > currentTemp+TrendThresholdHourlyF:
		return TrendRising
	case avg < currentTemp-TrendThresholdHourlyF:
		return TrendFalling
	default:
		return TrendStable
	}
}

// dailyTrend splits the day's samples into first and second halves and
// compares half averages with the daily threshold.
func dailyTrend(hourly []ObservedSample) TempTrend {
	if len(hourly) < 2 {
		return TrendStable
	}

	mid := len(hourly) / 2
	first := avgTemp(hourly[:mid])
	second := avgTemp(hourly[mid:])

	switch {
	case second > first+TrendThresholdDailyF:
		return TrendRising
	case second < first-TrendThresholdDailyF:
		return TrendFalling
	default:
		return TrendStable
	}
}

func avgTemp(samples []ObservedSample) float64 {
	if len(samples) == 0 {
		return 0
	}
	sum := 0.0
	for _, s := range samples {
		sum += s.TempF
	}
	return sum / float64(len(samples))
}
