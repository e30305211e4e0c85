package domain

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var evalBaseTime = time.Date(2026, 4, 6, 6, 0, 0, 0, time.UTC)

func goodConditions() WeatherConditions {
	return WeatherConditions{
		Temp:              60,
		TempTrend:         TrendRising,
		WindSpeed:         5,
		Humidity:          50,
		IsPrecipitating:   false,
		PrecipProbability: 10,
	}
}

// testAssembly has a single fully constrained component so window scans are
// driven purely by the hourly series handed to the test.
func testAssembly(minWindowHours, leadDays int) Assembly {
	return Assembly{
		ID:                 "test-assembly",
		Name:               "Test Assembly",
		MinLeadTimeDays:    leadDays,
		MinWorkWindowHours: minWindowHours,
		Components: []Component{
			{
				ID:   "test-adhesive",
				Name: "Test Adhesive",
				Constraint: WeatherConstraint{
					MinTemp:         limit(40),
					NoPrecipitation: true,
					MaxWindSpeed:    limit(25),
					MaxHumidity:     limit(85),
				},
			},
		},
	}
}

// hours builds an hourly series that is compliant everywhere except the
// given bad offsets, for the testAssembly constraints.
func hours(total int, good WeatherConditions, badOffsets ...int) []WeatherConditions {
	bad := make(map[int]bool, len(badOffsets))
	for _, i := range badOffsets {
		bad[i] = true
	}
	out := make([]WeatherConditions, total)
	for i := range out {
		out[i] = good
		if bad[i] {
			out[i].Temp = 30
		}
	}
	return out
}

// goodRange marks every hour bad except [from, to).
func goodRange(total, from, to int, good WeatherConditions) []WeatherConditions {
	out := make([]WeatherConditions, total)
	for i := range out {
		out[i] = good
		if i < from || i >= to {
			out[i].Temp = 30
		}
	}
	return out
}

func TestEvaluateComponent(t *testing.T) {
	component := Component{
		ID:   "torch-cap",
		Name: "Torch Cap",
		Constraint: WeatherConstraint{
			MinTemp:         limit(40),
			MustBeRising:    true,
			NoPrecipitation: true,
			MaxWindSpeed:    limit(20),
			MaxHumidity:     limit(85),
		},
	}

	t.Run("compliant", func(t *testing.T) {
		got := EvaluateComponent(component, goodConditions())
		assert.True(t, got.Compliant)
		assert.Empty(t, got.Reasons)
	})

	t.Run("cold and not rising reports both", func(t *testing.T) {
		w := goodConditions()
		w.Temp = 38
		w.TempTrend = TrendStable

		got := EvaluateComponent(component, w)

		require.False(t, got.Compliant)
		require.Len(t, got.Reasons, 2)
		assert.Equal(t, "temperature 38.0°F below minimum 40.0°F", got.Reasons[0])
		assert.Equal(t, "temperature must be rising, currently stable", got.Reasons[1])
	})

	t.Run("all violations in fixed order", func(t *testing.T) {
		w := WeatherConditions{
			Temp:              35,
			TempTrend:         TrendFalling,
			WindSpeed:         28,
			Humidity:          92,
			IsPrecipitating:   true,
			PrecipProbability: 80,
		}

		got := EvaluateComponent(component, w)

		require.Len(t, got.Reasons, 6)
		assert.Contains(t, got.Reasons[0], "below minimum")
		assert.Contains(t, got.Reasons[1], "must be rising")
		assert.Contains(t, got.Reasons[2], "wind")
		assert.Contains(t, got.Reasons[3], "humidity")
		assert.Equal(t, "precipitation in progress", got.Reasons[4])
		assert.Contains(t, got.Reasons[5], "precipitation probability 80%")
	})

	t.Run("probability gate fires without active precipitation", func(t *testing.T) {
		w := goodConditions()
		w.PrecipProbability = 51

		got := EvaluateComponent(component, w)

		require.Len(t, got.Reasons, 1)
		assert.Contains(t, got.Reasons[0], "precipitation probability 51%")
	})

	t.Run("probability at the gate passes", func(t *testing.T) {
		w := goodConditions()
		w.PrecipProbability = 50

		got := EvaluateComponent(component, w)
		assert.True(t, got.Compliant)
	})

	t.Run("max temperature bound", func(t *testing.T) {
		hot := Component{
			Name:       "Heat Sensitive",
			Constraint: WeatherConstraint{MaxTemp: limit(95)},
		}
		w := goodConditions()
		w.Temp = 101

		got := EvaluateComponent(hot, w)

		require.Len(t, got.Reasons, 1)
		assert.Contains(t, got.Reasons[0], "above maximum 95.0°F")
	})

	t.Run("unconstrained component always passes", func(t *testing.T) {
		got := EvaluateComponent(Component{Name: "Ballast"}, WeatherConditions{
			Temp: -10, WindSpeed: 60, Humidity: 100, IsPrecipitating: true, PrecipProbability: 100,
		})
		assert.True(t, got.Compliant)
	})
}

func TestEvaluateAssemblyGreenLight(t *testing.T) {
	SetClock(clockwork.NewFakeClockAt(evalBaseTime))
	defer SetClock(nil)

	a := testAssembly(8, 1)
	// A 10-hour compliant run starting 30 hours out, past the 24h lead.
	hourly := goodRange(48, 30, 40, goodConditions())

	got := EvaluateAssembly(a, goodConditions(), hourly)

	assert.True(t, got.Compliant)
	assert.True(t, got.HasFullWorkWindow)
	assert.True(t, got.HasRequiredLeadTime)
	assert.True(t, got.LaborGreenLight)
	assert.Equal(t, 10, got.WorkWindowHours)
	require.NotNil(t, got.NextWorkWindow)
	assert.Equal(t, evalBaseTime.Add(30*time.Hour), got.NextWorkWindow.Start)
	assert.Equal(t, 10, got.NextWorkWindow.Hours)
	assert.Equal(t, evalBaseTime, got.EvaluatedAt)
	assert.Equal(t, "Green light: all components compliant, 10h work window confirmed with lead time", got.StatusMessage)
}

func TestEvaluateAssemblyWorkWindow(t *testing.T) {
	good := goodConditions()

	t.Run("no compliant hours", func(t *testing.T) {
		a := testAssembly(4, 1)
		hourly := goodRange(48, 0, 0, good)

		got := EvaluateAssembly(a, good, hourly)

		assert.Equal(t, 0, got.WorkWindowHours)
		assert.Nil(t, got.NextWorkWindow)
		assert.False(t, got.HasFullWorkWindow)
		assert.False(t, got.LaborGreenLight)
	})

	t.Run("run one hour short of minimum", func(t *testing.T) {
		a := testAssembly(4, 1)
		hourly := goodRange(48, 10, 13, good)

		got := EvaluateAssembly(a, good, hourly)

		assert.Equal(t, 3, got.WorkWindowHours)
		assert.Nil(t, got.NextWorkWindow)
		assert.False(t, got.HasFullWorkWindow)
		assert.Equal(t, "Conditions compliant but work window too short: 3h available, 4h required", got.StatusMessage)
	})

	t.Run("run exactly at minimum", func(t *testing.T) {
		a := testAssembly(4, 1)
		hourly := goodRange(48, 24, 28, good)

		got := EvaluateAssembly(a, good, hourly)

		assert.Equal(t, 4, got.WorkWindowHours)
		assert.True(t, got.HasFullWorkWindow)
		require.NotNil(t, got.NextWorkWindow)
		assert.Equal(t, 4, got.NextWorkWindow.Hours)
	})

	t.Run("an interrupted run does not accumulate", func(t *testing.T) {
		a := testAssembly(4, 1)
		// 3 good, 1 bad, 3 good: longest run stays 3.
		hourly := hours(8, good, 0, 4)
		hourly[0].Temp = 30

		got := EvaluateAssembly(a, good, hourly)

		assert.Equal(t, 3, got.WorkWindowHours)
		assert.False(t, got.HasFullWorkWindow)
	})
}

func TestEvaluateAssemblyLeadTime(t *testing.T) {
	good := goodConditions()

	t.Run("window entirely before the lead boundary", func(t *testing.T) {
		a := testAssembly(4, 1)
		hourly := goodRange(48, 10, 16, good)

		got := EvaluateAssembly(a, good, hourly)

		assert.True(t, got.HasFullWorkWindow)
		assert.False(t, got.HasRequiredLeadTime)
		assert.False(t, got.LaborGreenLight)
		assert.Equal(t, "Conditions compliant but no valid window beyond the 1-day lead time", got.StatusMessage)
	})

	t.Run("run starting exactly at the boundary qualifies", func(t *testing.T) {
		a := testAssembly(4, 1)
		hourly := goodRange(48, 24, 28, good)

		got := EvaluateAssembly(a, good, hourly)
		assert.True(t, got.HasRequiredLeadTime)
	})

	t.Run("run straddling the boundary counts only hours past it", func(t *testing.T) {
		a := testAssembly(4, 1)
		// Hours 21-26 compliant: only 24, 25, 26 are past the boundary.
		hourly := goodRange(48, 21, 27, good)

		got := EvaluateAssembly(a, good, hourly)
		assert.False(t, got.HasRequiredLeadTime)
	})

	t.Run("forecast shorter than the lead time", func(t *testing.T) {
		a := testAssembly(4, 2)
		hourly := goodRange(24, 0, 24, good)

		got := EvaluateAssembly(a, good, hourly)
		assert.False(t, got.HasRequiredLeadTime)
	})
}

func TestEvaluateAssemblyNoForecast(t *testing.T) {
	t.Run("compliant current conditions", func(t *testing.T) {
		a := testAssembly(4, 1)
		got := EvaluateAssembly(a, goodConditions(), nil)

		assert.True(t, got.Compliant)
		assert.Equal(t, 1, got.WorkWindowHours)
		assert.False(t, got.HasFullWorkWindow)
		assert.False(t, got.HasRequiredLeadTime)
		assert.False(t, got.LaborGreenLight)
	})

	t.Run("non-compliant current conditions", func(t *testing.T) {
		a := testAssembly(4, 1)
		w := goodConditions()
		w.Temp = 30

		got := EvaluateAssembly(a, w, nil)

		assert.False(t, got.Compliant)
		assert.Equal(t, 0, got.WorkWindowHours)
		assert.False(t, got.LaborGreenLight)
	})
}

func TestEvaluateAssemblyIsDeterministic(t *testing.T) {
	SetClock(clockwork.NewFakeClockAt(evalBaseTime))
	defer SetClock(nil)

	a := testAssembly(4, 1)
	hourly := goodRange(48, 24, 40, goodConditions())

	first := EvaluateAssembly(a, goodConditions(), hourly)
	second := EvaluateAssembly(a, goodConditions(), hourly)
	assert.Equal(t, first, second)
}

func TestStatusMessageHold(t *testing.T) {
	w := WeatherConditions{Temp: 30, TempTrend: TrendFalling, IsPrecipitating: true, PrecipProbability: 90}

	t.Run("names failing components", func(t *testing.T) {
		a := testAssembly(4, 1)
		got := EvaluateAssembly(a, w, nil)
		assert.Equal(t, "Hold: Test Adhesive out of tolerance", got.StatusMessage)
	})

	t.Run("truncates past two components", func(t *testing.T) {
		catalog := Catalog()
		a, ok := FindAssembly(catalog, "tpo-adhered")
		require.True(t, ok)

		got := EvaluateAssembly(a, w, nil)

		assert.False(t, got.Compliant)
		assert.Len(t, got.FailingComponents, 3)
		assert.Equal(t, "Hold: Bonding Adhesive, TPO Membrane Sheet, ... out of tolerance", got.StatusMessage)
	})
}

func TestEvaluateAll(t *testing.T) {
	catalog := Catalog()
	hourly := goodRange(96, 24, 60, goodConditions())

	got := EvaluateAll(catalog, goodConditions(), hourly)

	require.Len(t, got, len(catalog))
	for i, res := range got {
		assert.Equal(t, catalog[i].ID, res.Assembly.ID)
	}
}

func TestEvaluateAssemblyByID(t *testing.T) {
	catalog := Catalog()

	t.Run("known assembly", func(t *testing.T) {
		got := EvaluateAssemblyByID(catalog, "epdm-ballasted", goodConditions(), nil)
		assert.Equal(t, "epdm-ballasted", got.Assembly.ID)
		assert.True(t, got.Compliant)
	})

	t.Run("unknown assembly is a fail-safe hold", func(t *testing.T) {
		got := EvaluateAssemblyByID(catalog, "gravel-only", goodConditions(), nil)

		assert.False(t, got.Compliant)
		assert.False(t, got.LaborGreenLight)
		assert.Equal(t, `Hold: unknown assembly "gravel-only"`, got.StatusMessage)
	})
}
