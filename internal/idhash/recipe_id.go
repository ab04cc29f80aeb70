package idhash

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
)

// ComputeRecipeID computes a deterministic recipe_id using SHA256.
// Formula: SHA256(name|cuisine|snapshot_date|sorted ingredient_ids)
// Returns hex-encoded hash (64 characters). Ingredient order does not
// affect the ID.
func ComputeRecipeID(name, cuisine, snapshotDate string, ingredientIDs []string) string {
	sorted := make([]string, len(ingredientIDs))
	copy(sorted, ingredientIDs)
	sort.Strings(sorted)

	data := fmt.Sprintf("%s|%s|%s|%s",
		name,
		cuisine,
		snapshotDate,
		strings.Join(sorted, ","),
	)

	hash := sha256.Sum256([]byte(data))
	return hex.EncodeToString(hash[:])
}

// ComputeIngredientID computes a deterministic ingredient_id using SHA256.
// Formula: SHA256(name|category)
// Returns hex-encoded hash (64 characters).
func ComputeIngredientID(name, category string) string {
	data := fmt.Sprintf("%s|%s", name, category)
	hash := sha256.Sum256([]byte(data))
	return hex.EncodeToString(hash[:])
}
