package idhash

import "testing"

func TestComputeRecipeID(t *testing.T) {
	ids := []string{"ing-b", "ing-a", "ing-c"}

	id := ComputeRecipeID("lamb curry", "indian", "2025-06-01", ids)
	if len(id) != 64 {
		t.Errorf("expected 64-char hash, got %d", len(id))
	}

	same := ComputeRecipeID("lamb curry", "indian", "2025-06-01", []string{"ing-c", "ing-a", "ing-b"})
	if id != same {
		t.Error("ingredient order must not affect the ID")
	}

	// Sorting must not mutate the caller's slice.
	if ids[0] != "ing-b" || ids[1] != "ing-a" || ids[2] != "ing-c" {
		t.Errorf("input slice mutated: %v", ids)
	}
}

func TestComputeRecipeID_Uniqueness(t *testing.T) {
	base := ComputeRecipeID("stew", "french", "2025-06-01", []string{"a"})

	variants := []string{
		ComputeRecipeID("stew2", "french", "2025-06-01", []string{"a"}),
		ComputeRecipeID("stew", "spanish", "2025-06-01", []string{"a"}),
		ComputeRecipeID("stew", "french", "2025-06-02", []string{"a"}),
		ComputeRecipeID("stew", "french", "2025-06-01", []string{"b"}),
		ComputeRecipeID("stew", "french", "2025-06-01", []string{"a", "b"}),
	}
	for i, v := range variants {
		if v == base {
			t.Errorf("variant %d collided with base ID", i)
		}
	}
}

func TestComputeIngredientID(t *testing.T) {
	id := ComputeIngredientID("chili", "spice")
	if len(id) != 64 {
		t.Errorf("expected 64-char hash, got %d", len(id))
	}
	if id != ComputeIngredientID("chili", "spice") {
		t.Error("ingredient ID must be deterministic")
	}
	if id == ComputeIngredientID("chili", "vegetable") {
		t.Error("category must affect the ID")
	}
	if id == ComputeIngredientID("ginger", "spice") {
		t.Error("name must affect the ID")
	}
}
