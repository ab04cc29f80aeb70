package reporting

import "time"

// Report represents the cuisine analytics report structure.
type Report struct {
	// Metadata
	GeneratedAt  time.Time
	CuisineCount int
	RecipeCount  int
	SnapshotDate string

	// Cuisine Metrics (sorted by cuisine)
	CuisineMetrics []CuisineMetricRow

	// Signatures (sorted by cuisine, then Fire > Water > Earth > Air)
	Signatures []SignatureRow

	// Pairwise compatibility between cuisine mean profiles
	// (sorted by cuisine A, then cuisine B)
	Compatibility []CompatibilityRow
}

// CuisineMetricRow represents one row in the cuisine metrics table.
type CuisineMetricRow struct {
	Cuisine     string
	RecipeCount int

	FireMean  float64
	WaterMean float64
	EarthMean float64
	AirMean   float64

	FireVariance  float64
	WaterVariance float64
	EarthVariance float64
	AirVariance   float64

	SpiritMean    float64
	EssenceMean   float64
	MatterMean    float64
	SubstanceMean float64
}

// SignatureRow represents one signature element for a cuisine.
type SignatureRow struct {
	Cuisine string
	Element string
	ZScore  float64
}

// CompatibilityRow represents the compatibility score between two cuisines.
type CompatibilityRow struct {
	CuisineA string
	CuisineB string
	Score    float64
}
