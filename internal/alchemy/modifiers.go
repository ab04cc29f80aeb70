package alchemy

import "alchm-engine/internal/domain"

// Seasonal and lunar weighting. Both transforms are pure, composable and
// order-insensitive within floating tolerance: each multiplies every axis
// by 1 + modifier(axis) * influence with fixed per-season / per-phase
// modifier tables.

// Influence factors scaling the modifier tables.
const (
	SeasonalInfluence = 0.5
	LunarInfluence    = 0.5
)

type axisModifiers struct {
	Fire  float64
	Water float64
	Earth float64
	Air   float64
}

// seasonalModifiers favors each season's element and damps its opposite.
var seasonalModifiers = map[domain.Season]axisModifiers{
	domain.SeasonSpring: {Air: 0.2, Earth: 0.05, Water: -0.1},
	domain.SeasonSummer: {Fire: 0.2, Air: 0.05, Water: -0.1},
	domain.SeasonAutumn: {Earth: 0.2, Water: 0.05, Fire: -0.1},
	domain.SeasonWinter: {Water: 0.2, Earth: 0.05, Fire: -0.1},
}

// lunarModifiers follows the original affinity rules: the new moon grounds
// (Earth), the full moon cools (Water), waning phases favor clearing (Air).
var lunarModifiers = map[domain.LunarPhase]axisModifiers{
	domain.PhaseNewMoon:        {Earth: 0.2, Fire: -0.1},
	domain.PhaseWaxingCrescent: {Earth: 0.1, Air: 0.05},
	domain.PhaseFirstQuarter:   {Fire: 0.1, Air: 0.05},
	domain.PhaseWaxingGibbous:  {Fire: 0.15, Air: 0.05},
	domain.PhaseFullMoon:       {Water: 0.2, Earth: -0.05},
	domain.PhaseWaningGibbous:  {Water: 0.1, Air: 0.1},
	domain.PhaseLastQuarter:    {Air: 0.1, Water: 0.05},
	domain.PhaseWaningCrescent: {Air: 0.1, Earth: 0.05},
}

// ApplySeasonal scales a raw elemental profile by the season's modifier
// table. Unknown seasons return the input unchanged.
func ApplySeasonal(raw domain.ElementalProperties, season domain.Season) domain.ElementalProperties {
	mods, ok := seasonalModifiers[season]
	if !ok {
		return raw
	}
	return applyModifiers(raw, mods, SeasonalInfluence)
}

// ApplyLunarPhase scales a raw elemental profile by the phase's modifier
// table. Unknown phases return the input unchanged.
func ApplyLunarPhase(raw domain.ElementalProperties, phase domain.LunarPhase) domain.ElementalProperties {
	mods, ok := lunarModifiers[phase]
	if !ok {
		return raw
	}
	return applyModifiers(raw, mods, LunarInfluence)
}

func applyModifiers(raw domain.ElementalProperties, mods axisModifiers, influence float64) domain.ElementalProperties {
	return domain.ElementalProperties{
		Fire:  raw.Fire * (1 + mods.Fire*influence),
		Water: raw.Water * (1 + mods.Water*influence),
		Earth: raw.Earth * (1 + mods.Earth*influence),
		Air:   raw.Air * (1 + mods.Air*influence),
	}
}
