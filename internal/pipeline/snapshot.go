package pipeline

import (
	"time"

	"github.com/couchcryptid/roofcast/internal/domain"
	"github.com/couchcryptid/roofcast/internal/forecast"
)

// Snapshot is the complete output of one evaluation cycle. Snapshots are
// immutable once built; the pipeline swaps in a fresh one atomically and
// readers never see a partial update.
type Snapshot struct {
	GeneratedAt time.Time                       `json:"generated_at"`
	Site        forecast.Site                   `json:"site"`
	Current     domain.WeatherConditions        `json:"current"`
	Decisions   []domain.AssemblyResult         `json:"decisions"`
	Risk        []domain.DailyRiskAssessment    `json:"risk"`
	Schedule    []domain.ScheduleRecommendation `json:"schedule"`
	Insights    []domain.Insight                `json:"insights"`
}

// Decision returns the assembly decision with the given ID.
func (s *Snapshot) Decision(assemblyID string) (domain.AssemblyResult, bool) {
	for _, d := range s.Decisions {
		if d.Assembly.ID == assemblyID {
			return d, true
		}
	}
	return domain.AssemblyResult{}, false
}
