// Package alchemy implements the pure calculation core: raw elemental
// aggregation, alchemical (ESMS) derivation and thermodynamic metrics.
// Every function in this package is pure and safe for concurrent use.
package alchemy

import (
	"alchm-engine/internal/domain"
)

// Dignity strength multipliers applied to a body's weight based on the
// sign it occupies.
const (
	DignityRulership  = 1.5
	DignityExaltation = 1.3
	DignityNeutral    = 1.0
	DignityDetriment  = 0.7
	DignityFall       = 0.5
)

// Body weight tiers. Luminaries contribute the most, personal planets less,
// outer planets the least. The Sun outweighs the Moon so that solar sign
// placement dominates the daily profile.
const (
	weightSun      = 1.2
	weightMoon     = 1.0
	weightPersonal = 0.6
	weightOuter    = 0.35
)

// bodyWeights maps each scoring body to its fixed weight multiplier.
// Lunar nodes do not contribute to elemental totals.
var bodyWeights = map[domain.Body]float64{
	domain.BodySun:     weightSun,
	domain.BodyMoon:    weightMoon,
	domain.BodyMercury: weightPersonal,
	domain.BodyVenus:   weightPersonal,
	domain.BodyMars:    weightPersonal,
	domain.BodyJupiter: weightOuter,
	domain.BodySaturn:  weightOuter,
	domain.BodyUranus:  weightOuter,
	domain.BodyNeptune: weightOuter,
	domain.BodyPluto:   weightOuter,
}

// dignities holds classical sign associations per body. Rulership takes
// precedence over exaltation, exaltation over detriment, detriment over
// fall; unlisted signs are neutral. Modern rulers are used for the outers.
type dignityTable struct {
	rulership  []domain.ZodiacSign
	exaltation []domain.ZodiacSign
	detriment  []domain.ZodiacSign
	fall       []domain.ZodiacSign
}

var dignities = map[domain.Body]dignityTable{
	domain.BodySun: {
		rulership:  []domain.ZodiacSign{domain.Leo},
		exaltation: []domain.ZodiacSign{domain.Aries},
		detriment:  []domain.ZodiacSign{domain.Aquarius},
		fall:       []domain.ZodiacSign{domain.Libra},
	},
	domain.BodyMoon: {
		rulership:  []domain.ZodiacSign{domain.Cancer},
		exaltation: []domain.ZodiacSign{domain.Taurus},
		detriment:  []domain.ZodiacSign{domain.Capricorn},
		fall:       []domain.ZodiacSign{domain.Scorpio},
	},
	domain.BodyMercury: {
		rulership:  []domain.ZodiacSign{domain.Gemini, domain.Virgo},
		exaltation: []domain.ZodiacSign{domain.Virgo},
		detriment:  []domain.ZodiacSign{domain.Sagittarius, domain.Pisces},
		fall:       []domain.ZodiacSign{domain.Pisces},
	},
	domain.BodyVenus: {
		rulership:  []domain.ZodiacSign{domain.Taurus, domain.Libra},
		exaltation: []domain.ZodiacSign{domain.Pisces},
		detriment:  []domain.ZodiacSign{domain.Scorpio, domain.Aries},
		fall:       []domain.ZodiacSign{domain.Virgo},
	},
	domain.BodyMars: {
		rulership:  []domain.ZodiacSign{domain.Aries, domain.Scorpio},
		exaltation: []domain.ZodiacSign{domain.Capricorn},
		detriment:  []domain.ZodiacSign{domain.Libra, domain.Taurus},
		fall:       []domain.ZodiacSign{domain.Cancer},
	},
	domain.BodyJupiter: {
		rulership:  []domain.ZodiacSign{domain.Sagittarius, domain.Pisces},
		exaltation: []domain.ZodiacSign{domain.Cancer},
		detriment:  []domain.ZodiacSign{domain.Gemini, domain.Virgo},
		fall:       []domain.ZodiacSign{domain.Capricorn},
	},
	domain.BodySaturn: {
		rulership:  []domain.ZodiacSign{domain.Capricorn, domain.Aquarius},
		exaltation: []domain.ZodiacSign{domain.Libra},
		detriment:  []domain.ZodiacSign{domain.Cancer, domain.Leo},
		fall:       []domain.ZodiacSign{domain.Aries},
	},
	domain.BodyUranus: {
		rulership:  []domain.ZodiacSign{domain.Aquarius},
		exaltation: []domain.ZodiacSign{domain.Scorpio},
		detriment:  []domain.ZodiacSign{domain.Leo},
		fall:       []domain.ZodiacSign{domain.Taurus},
	},
	domain.BodyNeptune: {
		rulership:  []domain.ZodiacSign{domain.Pisces},
		exaltation: []domain.ZodiacSign{domain.Cancer},
		detriment:  []domain.ZodiacSign{domain.Virgo},
		fall:       []domain.ZodiacSign{domain.Capricorn},
	},
	domain.BodyPluto: {
		rulership:  []domain.ZodiacSign{domain.Scorpio},
		exaltation: []domain.ZodiacSign{domain.Aries},
		detriment:  []domain.ZodiacSign{domain.Taurus},
		fall:       []domain.ZodiacSign{domain.Libra},
	},
}

// Dignity returns the strength multiplier for a body occupying a sign.
func Dignity(body domain.Body, sign domain.ZodiacSign) float64 {
	table, ok := dignities[body]
	if !ok {
		return DignityNeutral
	}
	if containsSign(table.rulership, sign) {
		return DignityRulership
	}
	if containsSign(table.exaltation, sign) {
		return DignityExaltation
	}
	if containsSign(table.detriment, sign) {
		return DignityDetriment
	}
	if containsSign(table.fall, sign) {
		return DignityFall
	}
	return DignityNeutral
}

// BodyWeight returns the fixed weight multiplier for a body. Bodies outside
// the scoring set (the lunar nodes) weigh zero.
func BodyWeight(body domain.Body) float64 {
	return bodyWeights[body]
}

// BaseElemental converts a position snapshot into raw elemental totals.
// For each body with a known sign it accumulates weight(body) x
// dignity(body, sign) into the sign's element. Totals are raw intensities,
// never normalized.
func BaseElemental(snapshot *domain.PositionSnapshot) domain.ElementalProperties {
	var raw domain.ElementalProperties
	if snapshot == nil {
		return raw
	}
	for body, pos := range snapshot.Positions {
		weight := BodyWeight(body)
		if weight == 0 || !pos.Sign.IsValid() {
			continue
		}
		contribution := weight * Dignity(body, pos.Sign)
		switch pos.Sign.Element() {
		case domain.ElementFire:
			raw.Fire += contribution
		case domain.ElementWater:
			raw.Water += contribution
		case domain.ElementEarth:
			raw.Earth += contribution
		case domain.ElementAir:
			raw.Air += contribution
		}
	}
	return raw
}

func containsSign(signs []domain.ZodiacSign, sign domain.ZodiacSign) bool {
	for _, s := range signs {
		if s == sign {
			return true
		}
	}
	return false
}
