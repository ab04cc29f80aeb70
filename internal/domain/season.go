package domain

// Season represents a calendar season. Values match the season enum in the
// PostgreSQL schema.
type Season string

const (
	SeasonSpring Season = "Spring"
	SeasonSummer Season = "Summer"
	SeasonAutumn Season = "Autumn"
	SeasonWinter Season = "Winter"
)

// String returns the string representation of Season.
func (s Season) String() string {
	return string(s)
}

// IsValid checks if the season is a known value.
func (s Season) IsValid() bool {
	switch s {
	case SeasonSpring, SeasonSummer, SeasonAutumn, SeasonWinter:
		return true
	}
	return false
}

// LunarPhase represents one of the eight lunar phases. Values match the
// lunar_phase enum in the PostgreSQL schema.
type LunarPhase string

const (
	PhaseNewMoon        LunarPhase = "New Moon"
	PhaseWaxingCrescent LunarPhase = "Waxing Crescent"
	PhaseFirstQuarter   LunarPhase = "First Quarter"
	PhaseWaxingGibbous  LunarPhase = "Waxing Gibbous"
	PhaseFullMoon       LunarPhase = "Full Moon"
	PhaseWaningGibbous  LunarPhase = "Waning Gibbous"
	PhaseLastQuarter    LunarPhase = "Last Quarter"
	PhaseWaningCrescent LunarPhase = "Waning Crescent"
)

// String returns the string representation of LunarPhase.
func (p LunarPhase) String() string {
	return string(p)
}

// IsValid checks if the phase is a known value.
func (p LunarPhase) IsValid() bool {
	switch p {
	case PhaseNewMoon, PhaseWaxingCrescent, PhaseFirstQuarter, PhaseWaxingGibbous,
		PhaseFullMoon, PhaseWaningGibbous, PhaseLastQuarter, PhaseWaningCrescent:
		return true
	}
	return false
}
