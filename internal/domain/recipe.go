package domain

// Recipe represents one computed recipe profile. The elemental profile is
// the raw blend 0.7*ingredient-aggregate + 0.3*zodiac-aggregate; ESMS and
// thermodynamics come from the same snapshot. Recipes are recomputed on
// demand from their inputs and hold no mutable state.
// Corresponds to recipe_profiles table in PostgreSQL.
type Recipe struct {
	RecipeID      string // PRIMARY KEY, deterministic hash
	Name          string
	Cuisine       string
	Elemental     ElementalProperties
	Alchemical    AlchemicalProperties
	Thermodynamic ThermodynamicMetrics
	SnapshotDate  string // date key of the snapshot used
	Season        Season
	LunarPhase    LunarPhase
}
