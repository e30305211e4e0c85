package domain

import (
	"fmt"
	"strings"
	"time"
)

// ComponentResult is the outcome of checking one component against one
// conditions sample. Reasons lists every violated rule in the fixed check
// order; it is empty exactly when the component is compliant.
type ComponentResult struct {
	Component Component `json:"component"`
	Compliant bool      `json:"compliant"`
	Reasons   []string  `json:"reasons,omitempty"`
}

// WorkWindow is a contiguous compliant span starting at a wall-clock time.
type WorkWindow struct {
	Start time.Time `json:"start"`
	Hours int       `json:"hours"`
}

// AssemblyResult is the combined go/no-go decision for one assembly.
type AssemblyResult struct {
	Assembly            Assembly          `json:"assembly"`
	Compliant           bool              `json:"compliant"`
	ComponentResults    []ComponentResult `json:"component_results,omitempty"`
	FailingComponents   []Component       `json:"failing_components,omitempty"`
	HasFullWorkWindow   bool              `json:"has_full_work_window"`
	HasRequiredLeadTime bool              `json:"has_required_lead_time"`
	WorkWindowHours     int               `json:"work_window_hours"`
	NextWorkWindow      *WorkWindow       `json:"next_work_window,omitempty"`
	LaborGreenLight     bool              `json:"labor_green_light"`
	StatusMessage       string            `json:"status_message"`
	EvaluatedAt         time.Time         `json:"evaluated_at"`
}

// EvaluateComponent checks one component's constraints against one
// conditions sample. Checks run in a fixed order and never short-circuit,
// so the caller sees every violated rule at once.
func EvaluateComponent(c Component, w WeatherConditions) ComponentResult {
	var reasons []string
	con := c.Constraint

	if con.MinTemp != nil && w.Temp < *con.MinTemp {
		reasons = append(reasons, fmt.Sprintf("temperature %.1f°F below minimum %.1f°F", w.Temp, *con.MinTemp))
	}
	if con.MaxTemp != nil && w.Temp > *con.MaxTemp {
		reasons = append(reasons, fmt.Sprintf("temperature %.1f°F above maximum %.1f°F", w.Temp, *con.MaxTemp))
	}
	if con.MustBeRising && w.TempTrend != TrendRising {
		reasons = append(reasons, fmt.Sprintf("temperature must be rising, currently %s", w.TempTrend))
	}
	if con.MaxWindSpeed != nil && w.WindSpeed > *con.MaxWindSpeed {
		reasons = append(reasons, fmt.Sprintf("wind %.1f mph exceeds maximum %.1f mph", w.WindSpeed, *con.MaxWindSpeed))
	}
	if con.MaxHumidity != nil && w.Humidity > *con.MaxHumidity {
		reasons = append(reasons, fmt.Sprintf("humidity %.0f%% exceeds maximum %.0f%%", w.Humidity, *con.MaxHumidity))
	}
	if con.NoPrecipitation && w.IsPrecipitating {
		reasons = append(reasons, "precipitation in progress")
	}
	if con.NoPrecipitation && w.PrecipProbability > PrecipCommitProbPct {
		reasons = append(reasons, fmt.Sprintf("precipitation probability %.0f%% exceeds %.0f%%", w.PrecipProbability, PrecipCommitProbPct))
	}

	return ComponentResult{
		Component: c,
		Compliant: len(reasons) == 0,
		Reasons:   reasons,
	}
}

// EvaluateAssembly combines the current-moment component checks with a scan
// of the hourly forecast into a single labor decision. A missing or empty
// forecast degrades to the conservative fallback: the window cannot be
// confirmed, so both window booleans are false and the window length is one
// hour at most.
func EvaluateAssembly(a Assembly, current WeatherConditions, hourly []WeatherConditions) AssemblyResult {
	results := make([]ComponentResult, 0, len(a.Components))
	var failing []Component
	compliant := true
	for _, c := range a.Components {
		r := EvaluateComponent(c, current)
		results = append(results, r)
		if !r.Compliant {
			compliant = false
			failing = append(failing, c)
		}
	}

	res := AssemblyResult{
		Assembly:          a,
		Compliant:         compliant,
		ComponentResults:  results,
		FailingComponents: failing,
		EvaluatedAt:       clock.Now(),
	}

	if len(hourly) == 0 {
		if compliant {
			res.WorkWindowHours = 1
		}
		res.StatusMessage = statusMessage(res)
		return res
	}

	hourOK := make([]bool, len(hourly))
	for i, w := range hourly {
		hourOK[i] = assemblyCompliantAt(a, w)
	}

	res.WorkWindowHours, res.NextWorkWindow = scanWorkWindow(a, hourOK)
	res.HasFullWorkWindow = res.WorkWindowHours >= a.MinWorkWindowHours
	res.HasRequiredLeadTime = scanLeadTime(a, hourOK)
	res.LaborGreenLight = res.Compliant && res.HasFullWorkWindow && res.HasRequiredLeadTime
	res.StatusMessage = statusMessage(res)
	return res
}

// EvaluateAll evaluates every assembly in catalog order.
func EvaluateAll(assemblies []Assembly, current WeatherConditions, hourly []WeatherConditions) []AssemblyResult {
	out := make([]AssemblyResult, len(assemblies))
	for i, a := range assemblies {
		out[i] = EvaluateAssembly(a, current, hourly)
	}
	return out
}

// EvaluateAssemblyByID evaluates the named assembly, or returns the
// conservative not-found decision when the ID is unknown.
func EvaluateAssemblyByID(assemblies []Assembly, id string, current WeatherConditions, hourly []WeatherConditions) AssemblyResult {
	a, ok := FindAssembly(assemblies, id)
	if !ok {
		return NotFoundResult(id)
	}
	return EvaluateAssembly(a, current, hourly)
}

// NotFoundResult is the fail-safe decision for an unknown assembly ID: never
// compliant, never a green light, with the reason in the status message.
func NotFoundResult(id string) AssemblyResult {
	return AssemblyResult{
		Assembly:      Assembly{ID: id},
		Compliant:     false,
		StatusMessage: fmt.Sprintf("Hold: unknown assembly %q", id),
		EvaluatedAt:   clock.Now(),
	}
}

// assemblyCompliantAt reports whether every component of the assembly is
// compliant for the given sample.
func assemblyCompliantAt(a Assembly, w WeatherConditions) bool {
	for _, c := range a.Components {
		if !EvaluateComponent(c, w).Compliant {
			return false
		}
	}
	return true
}

// scanWorkWindow walks the hourly compliance series once, tracking the
// longest run of consecutive compliant hours and the start of the first run
// that reaches the assembly's minimum window. Offsets convert to wall-clock
// times relative to now.
func scanWorkWindow(a Assembly, hourOK []bool) (int, *WorkWindow) {
	maxRun := 0
	run := 0
	firstStart := -1

	for i, ok := range hourOK {
		if !ok {
			run = 0
			continue
		}
		run++
		if run > maxRun {
			maxRun = run
		}
		if firstStart == -1 && run >= a.MinWorkWindowHours {
			firstStart = i - run + 1
		}
	}

	if firstStart == -1 {
		return maxRun, nil
	}

	length := 0
	for i := firstStart; i < len(hourOK) && hourOK[i]; i++ {
		length++
	}

	return maxRun, &WorkWindow{
		Start: clock.Now().Add(time.Duration(firstStart) * time.Hour),
		Hours: length,
	}
}

// scanLeadTime reports whether a run of MinWorkWindowHours consecutive
// compliant hours exists starting at or beyond the lead-time boundary.
// Only existence matters, so the scan stops at the first match.
func scanLeadTime(a Assembly, hourOK []bool) bool {
	leadHours := a.MinLeadTimeDays * 24
	if len(hourOK) < leadHours {
		return false
	}

	run := 0
	for i := leadHours; i < len(hourOK); i++ {
		if !hourOK[i] {
			run = 0
			continue
		}
		run++
		if run >= a.MinWorkWindowHours {
			return true
		}
	}
	return false
}

// statusMessage selects exactly one message by priority: green light, then
// window too short, then lead time unmet, then component failures.
func statusMessage(res AssemblyResult) string {
	switch {
	case res.LaborGreenLight:
		return fmt.Sprintf("Green light: all components compliant, %dh work window confirmed with lead time", res.WorkWindowHours)
	case res.Compliant && !res.HasFullWorkWindow:
		return fmt.Sprintf("Conditions compliant but work window too short: %dh available, %dh required", res.WorkWindowHours, res.Assembly.MinWorkWindowHours)
	case res.Compliant:
		return fmt.Sprintf("Conditions compliant but no valid window beyond the %d-day lead time", res.Assembly.MinLeadTimeDays)
	default:
		return fmt.Sprintf("Hold: %s out of tolerance", failingSummary(res.FailingComponents))
	}
}

// failingSummary names up to two failing components, with an ellipsis when
// more fail.
func failingSummary(failing []Component) string {
	names := make([]string, 0, 2)
	for _, c := range failing {
		if len(names) == 2 {
			names = append(names, "...")
			break
		}
		names = append(names, c.Name)
	}
	return strings.Join(names, ", ")
}
