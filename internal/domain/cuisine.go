package domain

// SignatureElement marks an elemental axis whose cuisine-level mean sits
// more than the signature threshold away from the global baseline.
type SignatureElement struct {
	Element Element
	ZScore  float64 // signed z-score against the global baseline
}

// CuisineProfile holds per-axis statistics across a cuisine's member
// recipes. Variances are population variances. Profiles are recomputed on
// demand and hold no independent mutable state.
// Corresponds to cuisine_profiles table in ClickHouse.
type CuisineProfile struct {
	Cuisine     string
	RecipeCount int

	ElementalMean     ElementalProperties
	ElementalVariance ElementalProperties

	AlchemicalMean     AlchemicalProperties
	AlchemicalVariance AlchemicalProperties

	// Signatures holds axes with |z| > SignatureZThreshold vs. the global
	// baseline, in Fire > Water > Earth > Air order.
	Signatures []SignatureElement
}

// SignatureZThreshold is the |z-score| above which an elemental axis counts
// as a cuisine signature.
const SignatureZThreshold = 1.5
