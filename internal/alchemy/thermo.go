package alchemy

import (
	"math"

	"alchm-engine/internal/domain"
)

// Epsilon is the floor substituted for a denominator whose literal sum is
// exactly zero. Substitution is an explicit policy for degenerate inputs,
// not a silent catch: heat, entropy and reactivity stay finite on all-zero
// profiles while monica is allowed to be NaN.
const Epsilon = 1e-6

// ComputeThermodynamics combines alchemical and elemental values into the
// derived metrics via the fixed formulas:
//
//	heat       = (Spirit² + Fire²) / (Substance+Essence+Matter+Water+Air+Earth)²
//	entropy    = (Spirit²+Substance²+Fire²+Air²) / (Essence+Matter+Earth+Water)²
//	reactivity = (Spirit²+Substance²+Essence²+Fire²+Air²+Water²) / (Matter+Earth)²
//	gregsEnergy = heat − entropy×reactivity
//	kalchm     = Spirit^Spirit × Essence^Essence / (Matter^Matter × Substance^Substance)
//	monica     = −gregsEnergy / (reactivity × ln(kalchm))
//
// Kalchm uses the 0^0 := 1 convention and is therefore defined on all-zero
// input. Monica may legitimately be NaN; callers check MonicaDefined.
func ComputeThermodynamics(esms domain.AlchemicalProperties, elemental domain.ElementalProperties) domain.ThermodynamicMetrics {
	heat := safeRatio(
		esms.Spirit*esms.Spirit+elemental.Fire*elemental.Fire,
		esms.Substance+esms.Essence+esms.Matter+elemental.Water+elemental.Air+elemental.Earth,
	)
	entropy := safeRatio(
		esms.Spirit*esms.Spirit+esms.Substance*esms.Substance+
			elemental.Fire*elemental.Fire+elemental.Air*elemental.Air,
		esms.Essence+esms.Matter+elemental.Earth+elemental.Water,
	)
	reactivity := safeRatio(
		esms.Spirit*esms.Spirit+esms.Substance*esms.Substance+esms.Essence*esms.Essence+
			elemental.Fire*elemental.Fire+elemental.Air*elemental.Air+elemental.Water*elemental.Water,
		esms.Matter+elemental.Earth,
	)
	gregsEnergy := heat - entropy*reactivity
	kalchm := computeKalchm(esms)

	return domain.ThermodynamicMetrics{
		Heat:        heat,
		Entropy:     entropy,
		Reactivity:  reactivity,
		GregsEnergy: gregsEnergy,
		Kalchm:      kalchm,
		Monica:      computeMonica(kalchm, gregsEnergy, reactivity),
	}
}

// safeRatio divides numerator by denominator squared, substituting Epsilon
// when the denominator sum is exactly zero.
func safeRatio(numerator, denominator float64) float64 {
	if denominator == 0 {
		denominator = Epsilon
	}
	return numerator / (denominator * denominator)
}

// computeKalchm evaluates the self-exponentiated ESMS ratio under the
// 0^0 := 1 convention.
func computeKalchm(esms domain.AlchemicalProperties) float64 {
	numerator := powSelf(esms.Spirit) * powSelf(esms.Essence)
	denominator := powSelf(esms.Matter) * powSelf(esms.Substance)
	if denominator == 0 {
		denominator = Epsilon
	}
	return numerator / denominator
}

// powSelf returns x^x with 0^0 := 1. Axes are non-negative so the result
// is always a defined non-negative number.
func powSelf(x float64) float64 {
	if x == 0 {
		return 1
	}
	return math.Pow(x, x)
}

// computeMonica returns NaN for degenerate inputs: non-positive kalchm,
// ln(kalchm) = 0, or zero reactivity. NaN is the explicit undefined-metric
// marker, never coerced to zero.
func computeMonica(kalchm, gregsEnergy, reactivity float64) float64 {
	if kalchm <= 0 || reactivity == 0 {
		return math.NaN()
	}
	lnK := math.Log(kalchm)
	if lnK == 0 {
		return math.NaN()
	}
	return -gregsEnergy / (reactivity * lnK)
}
