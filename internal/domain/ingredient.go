package domain

// Ingredient represents one recipe component with raw elemental intensities.
// Ingredients carry no alchemical axes; ESMS exists only from the recipe
// tier upward. Corresponds to ingredients table in PostgreSQL.
type Ingredient struct {
	IngredientID   string // PRIMARY KEY, deterministic hash
	Name           string
	Category       string // e.g. "vegetable", "spice", "grain"
	Elemental      ElementalProperties
	QuantityWeight float64 // relative quantity multiplier within a recipe
}
