package domain

import "math"

// AlchemicalProperties holds the four alchemical axes (ESMS). The axes are
// derived only from planetary positions, never from elemental values.
type AlchemicalProperties struct {
	Spirit    float64
	Essence   float64
	Matter    float64
	Substance float64
}

// Add returns the axis-wise sum of two alchemical profiles.
func (a AlchemicalProperties) Add(o AlchemicalProperties) AlchemicalProperties {
	return AlchemicalProperties{
		Spirit:    a.Spirit + o.Spirit,
		Essence:   a.Essence + o.Essence,
		Matter:    a.Matter + o.Matter,
		Substance: a.Substance + o.Substance,
	}
}

// Scale returns the profile with every axis multiplied by k.
func (a AlchemicalProperties) Scale(k float64) AlchemicalProperties {
	return AlchemicalProperties{
		Spirit:    a.Spirit * k,
		Essence:   a.Essence * k,
		Matter:    a.Matter * k,
		Substance: a.Substance * k,
	}
}

// Total returns the sum of all four axes.
func (a AlchemicalProperties) Total() float64 {
	return a.Spirit + a.Essence + a.Matter + a.Substance
}

// ThermodynamicMetrics holds derived thermodynamic values.
// Kalchm is always >= 0. Monica may legitimately be NaN for degenerate
// inputs; callers must check MonicaDefined rather than assume a number.
type ThermodynamicMetrics struct {
	Heat        float64
	Entropy     float64
	Reactivity  float64
	GregsEnergy float64
	Kalchm      float64
	Monica      float64
}

// MonicaDefined reports whether the monica constant is a defined number.
func (m ThermodynamicMetrics) MonicaDefined() bool {
	return !math.IsNaN(m.Monica) && !math.IsInf(m.Monica, 0)
}
