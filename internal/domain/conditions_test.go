package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sample(temp float64) ObservedSample {
	return ObservedSample{TempF: temp}
}

func TestNormalizeCurrentTrend(t *testing.T) {
	tests := []struct {
		name     string
		current  float64
		forecast []ObservedSample
		want     TempTrend
	}{
		{"no forecast", 50, nil, TrendStable},
		{"single sample rising", 50, []ObservedSample{sample(53)}, TrendRising},
		{"single sample at boundary", 50, []ObservedSample{sample(52)}, TrendStable},
		{"single sample just over boundary", 50, []ObservedSample{sample(52.1)}, TrendRising},
		{"two samples averaged", 50, []ObservedSample{sample(51), sample(55)}, TrendRising},
		{"only first two samples count", 50, []ObservedSample{sample(50), sample(50), sample(90)}, TrendStable},
		{"falling", 50, []ObservedSample{sample(47), sample(47)}, TrendFalling},
		{"falling boundary is exclusive", 50, []ObservedSample{sample(48), sample(48)}, TrendStable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeCurrent(ObservedSample{TempF: tt.current}, tt.forecast)
			assert.Equal(t, tt.want, got.TempTrend)
		})
	}
}

func TestNormalizeCurrentScalesPrecipProbability(t *testing.T) {
	got := NormalizeCurrent(ObservedSample{
		TempF:             55,
		WindMph:           12,
		Humidity:          70,
		PrecipProbability: 0.45,
		Condition:         "Partly Cloudy",
	}, nil)

	assert.Equal(t, 55.0, got.Temp)
	assert.Equal(t, 12.0, got.WindSpeed)
	assert.Equal(t, 70.0, got.Humidity)
	assert.Equal(t, 45.0, got.PrecipProbability)
	assert.False(t, got.IsPrecipitating)
}

func TestNormalizeSeries(t *testing.T) {
	samples := []ObservedSample{
		{TempF: 40, PrecipProbability: 0.10},
		{TempF: 45, PrecipProbability: 0.20},
		{TempF: 50, PrecipProbability: 0.30},
	}

	got := NormalizeSeries(samples)

	assert.Len(t, got, 3)
	// First hour sees 45 and 50 ahead: avg 47.5 > 42.
	assert.Equal(t, TrendRising, got[0].TempTrend)
	// Second hour sees only 50 ahead: 50 > 47.
	assert.Equal(t, TrendRising, got[1].TempTrend)
	// Last hour has nothing ahead.
	assert.Equal(t, TrendStable, got[2].TempTrend)
	assert.Equal(t, 10.0, got[0].PrecipProbability)
	assert.Equal(t, 30.0, got[2].PrecipProbability)
}

func TestNormalizeDaily(t *testing.T) {
	day := DailySummary{
		AvgTempF:             55,
		MaxWindMph:           18,
		AvgHumidity:          65,
		MaxPrecipProbability: 40,
		DominantCondition:    "Rain Showers",
		Hourly: []ObservedSample{
			sample(48), sample(50), sample(54), sample(56),
		},
	}

	got := NormalizeDaily(day)

	assert.Equal(t, 55.0, got.Temp)
	assert.Equal(t, 18.0, got.WindSpeed)
	assert.Equal(t, 40.0, got.PrecipProbability)
	assert.True(t, got.IsPrecipitating)
	// First half avg 49, second half 55: beyond the daily threshold.
	assert.Equal(t, TrendRising, got.TempTrend)
}

func TestNormalizeDailyTrendBoundaries(t *testing.T) {
	tests := []struct {
		name   string
		hourly []ObservedSample
		want   TempTrend
	}{
		{"no hourly data", nil, TrendStable},
		{"single sample", []ObservedSample{sample(50)}, TrendStable},
		{"within threshold", []ObservedSample{sample(50), sample(50), sample(52), sample(52)}, TrendStable},
		{"rising past threshold", []ObservedSample{sample(50), sample(50), sample(54), sample(54)}, TrendRising},
		{"falling past threshold", []ObservedSample{sample(54), sample(54), sample(50), sample(50)}, TrendFalling},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeDaily(DailySummary{Hourly: tt.hourly})
			assert.Equal(t, tt.want, got.TempTrend)
		})
	}
}

func TestIsPrecipCondition(t *testing.T) {
	tests := []struct {
		condition string
		want      bool
	}{
		{"Rain", true},
		{"Light rain showers", true},
		{"SNOW", true},
		{"Freezing Drizzle", true},
		{"Sleet", true},
		{"Clear", false},
		{"Overcast", false},
		{"Fog", false},
		// Hail and dry thunderstorms are deliberately outside the vocabulary.
		{"Hail", false},
		{"Thunderstorm", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.condition, func(t *testing.T) {
			assert.Equal(t, tt.want, IsPrecipCondition(tt.condition))
		})
	}
}
