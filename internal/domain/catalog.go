package domain

// Policy thresholds shared across the built-in catalog. These are roofing
// domain policy (manufacturer install specs and crew safety practice), not
// incidental tuning values; assemblies may override them per component.
const (
	// AdhesiveMinTempF is the minimum application temperature for most
	// water- and solvent-based bonding adhesives.
	AdhesiveMinTempF = 40.0

	// CoatingMinTempF is the minimum application temperature for liquid
	// restoration coatings.
	CoatingMinTempF = 50.0

	// MembraneLiftWindMph is the wind speed above which loose membrane
	// sheets become unmanageable on a deck.
	MembraneLiftWindMph = 25.0

	// TorchWorkWindMph is the wind speed limit for open-flame torch work.
	TorchWorkWindMph = 20.0

	// CondensationHumidityPct is the relative humidity above which
	// adhesives and coatings risk trapping condensation.
	CondensationHumidityPct = 85.0

	// PrecipCommitProbPct is the forecast precipitation probability above
	// which moisture-sensitive work is not committed.
	PrecipCommitProbPct = 50.0
)

// WeatherConstraint is the declarative weather tolerance for one component.
// Every field is independently optional; a nil bound or false flag means no
// constraint of that kind.
type WeatherConstraint struct {
	MinTemp         *float64 `json:"min_temp,omitempty"`          // °F
	MaxTemp         *float64 `json:"max_temp,omitempty"`          // °F
	MustBeRising    bool     `json:"must_be_rising,omitempty"`    // temperature trend gate
	NoPrecipitation bool     `json:"no_precipitation,omitempty"`  // active precip and >50% probability gate
	MaxWindSpeed    *float64 `json:"max_wind_speed,omitempty"`    // mph
	MaxHumidity     *float64 `json:"max_humidity,omitempty"`      // percent
	CureTimeHours   int      `json:"cure_time_hours,omitempty"`   // informational, not evaluated
}

// Component is one material or installation step within an assembly.
type Component struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Description  string            `json:"description,omitempty"`
	Constraint   WeatherConstraint `json:"constraint"`
	CriticalNote string            `json:"critical_note,omitempty"`
}

// Assembly is a complete roofing material system whose components must all
// be installable together.
type Assembly struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	ScopeType   string      `json:"scope_type"`
	Components  []Component `json:"components"`

	// MinLeadTimeDays is how many forecast days out a valid work window
	// must still exist before crews are committed.
	MinLeadTimeDays int `json:"min_lead_time_days"`

	// MinWorkWindowHours is the shortest contiguous compliant span that
	// justifies mobilizing labor.
	MinWorkWindowHours int `json:"min_work_window_hours"`
}

// FindAssembly returns the assembly with the given ID.
func FindAssembly(assemblies []Assembly, id string) (Assembly, bool) {
	for _, a := range assemblies {
		if a.ID == id {
			return a, true
		}
	}
	return Assembly{}, false
}

// limit is a constructor helper for optional constraint bounds.
func limit(v float64) *float64 { return &v }

// Catalog returns the built-in commercial roofing assembly catalog. Each
// call returns a fresh slice; the engine holds no package-level tables.
func Catalog() []Assembly {
	return []Assembly{
		{
			ID:                 "tpo-adhered",
			Name:               "Adhered TPO Membrane System",
			Description:        "Fully adhered thermoplastic single-ply over cover board.",
			ScopeType:          "single-ply",
			MinLeadTimeDays:    1,
			MinWorkWindowHours: 6,
			Components: []Component{
				{
					ID:          "tpo-bonding-adhesive",
					Name:        "Bonding Adhesive",
					Description: "Solvent-based adhesive bonding membrane to substrate.",
					Constraint: WeatherConstraint{
						MinTemp:         limit(AdhesiveMinTempF),
						NoPrecipitation: true,
						MaxWindSpeed:    limit(MembraneLiftWindMph),
						MaxHumidity:     limit(CondensationHumidityPct),
						CureTimeHours:   2,
					},
					CriticalNote: "Flash-off time roughly doubles below 50°F.",
				},
				{
					ID:          "tpo-membrane",
					Name:        "TPO Membrane Sheet",
					Description: "60-mil reinforced membrane, hot-air welded seams.",
					Constraint: WeatherConstraint{
						MinTemp:         limit(AdhesiveMinTempF),
						NoPrecipitation: true,
						MaxWindSpeed:    limit(MembraneLiftWindMph),
					},
				},
				{
					ID:          "tpo-seam-weld",
					Name:        "Hot-Air Seam Weld",
					Description: "Robotic welder seam runs and hand detail welds.",
					Constraint: WeatherConstraint{
						NoPrecipitation: true,
						MaxHumidity:     limit(CondensationHumidityPct),
					},
					CriticalNote: "Weld a test strip whenever ambient drops 10°F between runs.",
				},
			},
		},
		{
			ID:                 "mod-bit-torch",
			Name:               "Modified Bitumen Torch-Applied System",
			Description:        "Two-ply SBS modified bitumen, torch-applied cap sheet.",
			ScopeType:          "low-slope",
			MinLeadTimeDays:    1,
			MinWorkWindowHours: 4,
			Components: []Component{
				{
					ID:         "mb-base-sheet",
					Name:       "Mechanically Fastened Base Sheet",
					Constraint: WeatherConstraint{
						NoPrecipitation: true,
						MaxWindSpeed:    limit(MembraneLiftWindMph),
					},
				},
				{
					ID:          "mb-torch-cap",
					Name:        "Torch-Applied Cap Sheet",
					Description: "Open-flame application of granulated cap sheet.",
					Constraint: WeatherConstraint{
						MinTemp:         limit(AdhesiveMinTempF),
						MustBeRising:    true,
						NoPrecipitation: true,
						MaxWindSpeed:    limit(TorchWorkWindMph),
					},
					CriticalNote: "Fire watch required one hour after the last torch is shut down.",
				},
			},
		},
		{
			ID:                 "bur-asphalt",
			Name:               "Built-Up Asphalt (BUR) System",
			Description:        "Four-ply fiberglass felt in hot asphalt with gravel surfacing.",
			ScopeType:          "low-slope",
			MinLeadTimeDays:    2,
			MinWorkWindowHours: 8,
			Components: []Component{
				{
					ID:          "bur-hot-asphalt",
					Name:        "Hot Asphalt Moppings",
					Description: "Type III asphalt at kettle temperature.",
					Constraint: WeatherConstraint{
						MinTemp:         limit(AdhesiveMinTempF),
						MustBeRising:    true,
						NoPrecipitation: true,
						MaxWindSpeed:    limit(TorchWorkWindMph),
					},
					CriticalNote: "Mopping temperature falls below the equiviscous range fast in cold wind.",
				},
				{
					ID:         "bur-felt-plies",
					Name:       "Fiberglass Felt Plies",
					Constraint: WeatherConstraint{
						NoPrecipitation: true,
						MaxWindSpeed:    limit(MembraneLiftWindMph),
						MaxHumidity:     limit(CondensationHumidityPct),
					},
				},
				{
					ID:         "bur-flood-gravel",
					Name:       "Flood Coat and Gravel",
					Constraint: WeatherConstraint{
						NoPrecipitation: true,
					},
				},
			},
		},
		{
			ID:                 "epdm-ballasted",
			Name:               "Ballasted EPDM System",
			Description:        "Loose-laid EPDM membrane under river-rock ballast.",
			ScopeType:          "single-ply",
			MinLeadTimeDays:    1,
			MinWorkWindowHours: 4,
			Components: []Component{
				{
					ID:          "epdm-membrane",
					Name:        "EPDM Membrane Sheet",
					Description: "Loose-laid 90-mil sheet, tolerant of cold handling.",
					Constraint: WeatherConstraint{
						NoPrecipitation: true,
						MaxWindSpeed:    limit(MembraneLiftWindMph),
					},
				},
				{
					ID:         "epdm-seam-tape",
					Name:       "Seam Tape and Primer",
					Constraint: WeatherConstraint{
						MinTemp:         limit(AdhesiveMinTempF),
						NoPrecipitation: true,
						MaxHumidity:     limit(CondensationHumidityPct),
						CureTimeHours:   4,
					},
					CriticalNote: "Primer will not flash off on a damp sheet; dry-wipe every seam.",
				},
			},
		},
		{
			ID:                 "silicone-coating",
			Name:               "Silicone Restoration Coating",
			Description:        "Fluid-applied silicone over an existing prepared roof.",
			ScopeType:          "coating",
			MinLeadTimeDays:    2,
			MinWorkWindowHours: 8,
			Components: []Component{
				{
					ID:         "sil-base-coat",
					Name:       "Silicone Base Coat",
					Constraint: WeatherConstraint{
						MinTemp:         limit(CoatingMinTempF),
						NoPrecipitation: true,
						MaxWindSpeed:    limit(15),
						MaxHumidity:     limit(CondensationHumidityPct),
						CureTimeHours:   8,
					},
					CriticalNote: "Rain within the cure window washes uncured silicone off the roof.",
				},
				{
					ID:         "sil-top-coat",
					Name:       "Silicone Top Coat",
					Constraint: WeatherConstraint{
						MinTemp:         limit(CoatingMinTempF),
						MustBeRising:    true,
						NoPrecipitation: true,
						MaxWindSpeed:    limit(15),
						MaxHumidity:     limit(CondensationHumidityPct),
						CureTimeHours:   8,
					},
				},
			},
		},
	}
}
