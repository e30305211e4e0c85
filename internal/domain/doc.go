// Package domain implements the weather-compliance decision engine for
// commercial roofing work.
//
// # Units and Canonical Input
//
// All evaluation logic consumes exactly one shape, [WeatherConditions]:
//
//	Temperature:  °F
//	Wind:         mph
//	Humidity:     percent, 0-100
//	Precip prob:  percent, 0-100
//
// Raw provider feeds carry hourly precipitation probability as 0.0-1.0 and
// daily maxima as 0-100; the normalizers scale at the boundary so the engine
// never sees mixed units.
//
// # Temperature Trend
//
// The trend is a threshold rule, not a regression:
//
//	Hourly: average the next 1-2 forecast samples; more than 2°F above the
//	current reading is rising, more than 2°F below is falling, else stable.
//	Daily:  split the day's hourly samples in half and compare half
//	averages with a 3°F threshold using the same rule.
//
// # Precipitation Classification
//
// A condition description counts as precipitating when it contains one of
// "rain", "snow", "drizzle", "sleet" (case-insensitive substring). The
// vocabulary is fixed; "Hail" and dry thunderstorms intentionally do not
// match.
//
// # The Labor Decision
//
// An assembly gets a labor green light only when all three hold:
//
//	Compliant:        every component passes against current conditions.
//	Full work window: the hourly forecast contains a contiguous run of
//	                  all-components-compliant hours at least
//	                  MinWorkWindowHours long.
//	Lead time:        such a run also exists starting at or beyond
//	                  MinLeadTimeDays*24 hours out.
//
// With no forecast available the engine degrades conservatively: the window
// cannot be confirmed, so the decision is hold. No evaluation path returns
// an error; every input produces a displayable result.
//
// # Risk Scale
//
// Daily risk is an additive 0-100 score (cold, precipitation, wind,
// humidity factors) mapped to a level at fixed thresholds: 60 critical,
// 40 high, 20 moderate, else low. Thresholds are operational policy and
// live as named constants in risk.go.
package domain
