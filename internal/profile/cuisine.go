package profile

import (
	"alchm-engine/internal/domain"
)

// Baseline holds the global per-axis elemental statistics cuisines are
// compared against for signature detection.
type Baseline struct {
	Mean   domain.ElementalProperties
	StdDev domain.ElementalProperties
}

// DefaultBaseline is the shipped corpus baseline. Values are the per-axis
// mean and standard deviation of blended recipe profiles across the
// reference recipe corpus.
var DefaultBaseline = Baseline{
	Mean:   domain.ElementalProperties{Fire: 1.05, Water: 0.95, Earth: 0.90, Air: 0.80},
	StdDev: domain.ElementalProperties{Fire: 0.35, Water: 0.30, Earth: 0.30, Air: 0.25},
}

// AggregateCuisine computes per-axis mean and population variance across a
// cuisine's recipes, plus signature elements against the baseline. Recipes
// contribute equally; an empty slice is an error rather than a zero
// profile.
func AggregateCuisine(cuisine string, recipes []domain.Recipe, baseline Baseline) (domain.CuisineProfile, error) {
	if len(recipes) == 0 {
		return domain.CuisineProfile{}, ErrNoRecipes
	}
	n := float64(len(recipes))

	var elementalMean domain.ElementalProperties
	var alchemicalMean domain.AlchemicalProperties
	for _, r := range recipes {
		elementalMean = elementalMean.Add(r.Elemental)
		alchemicalMean = alchemicalMean.Add(r.Alchemical)
	}
	elementalMean = elementalMean.Scale(1 / n)
	alchemicalMean = alchemicalMean.Scale(1 / n)

	var elementalVar domain.ElementalProperties
	var alchemicalVar domain.AlchemicalProperties
	for _, r := range recipes {
		for _, e := range domain.Elements {
			d := r.Elemental.Get(e) - elementalMean.Get(e)
			switch e {
			case domain.ElementFire:
				elementalVar.Fire += d * d
			case domain.ElementWater:
				elementalVar.Water += d * d
			case domain.ElementEarth:
				elementalVar.Earth += d * d
			case domain.ElementAir:
				elementalVar.Air += d * d
			}
		}
		ds := r.Alchemical.Spirit - alchemicalMean.Spirit
		de := r.Alchemical.Essence - alchemicalMean.Essence
		dm := r.Alchemical.Matter - alchemicalMean.Matter
		du := r.Alchemical.Substance - alchemicalMean.Substance
		alchemicalVar.Spirit += ds * ds
		alchemicalVar.Essence += de * de
		alchemicalVar.Matter += dm * dm
		alchemicalVar.Substance += du * du
	}
	elementalVar = elementalVar.Scale(1 / n)
	alchemicalVar = alchemicalVar.Scale(1 / n)

	return domain.CuisineProfile{
		Cuisine:            cuisine,
		RecipeCount:        len(recipes),
		ElementalMean:      elementalMean,
		ElementalVariance:  elementalVar,
		AlchemicalMean:     alchemicalMean,
		AlchemicalVariance: alchemicalVar,
		Signatures:         SignatureElements(elementalMean, baseline),
	}, nil
}

// SignatureElements returns the axes whose cuisine mean deviates from the
// baseline by more than SignatureZThreshold standard deviations, in the
// fixed axis order. Axes with a zero baseline deviation never qualify.
func SignatureElements(mean domain.ElementalProperties, baseline Baseline) []domain.SignatureElement {
	var signatures []domain.SignatureElement
	for _, e := range domain.Elements {
		sd := baseline.StdDev.Get(e)
		if sd == 0 {
			continue
		}
		z := (mean.Get(e) - baseline.Mean.Get(e)) / sd
		if z > domain.SignatureZThreshold || z < -domain.SignatureZThreshold {
			signatures = append(signatures, domain.SignatureElement{Element: e, ZScore: z})
		}
	}
	return signatures
}
