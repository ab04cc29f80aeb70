package reporting

import (
	"fmt"
	"strings"
	"time"
)

// RenderMarkdown renders report as Markdown string.
func RenderMarkdown(r *Report) string {
	var sb strings.Builder

	// Header
	sb.WriteString("# Cuisine Analytics Report\n\n")
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", r.GeneratedAt.Format(time.RFC3339)))
	sb.WriteString(fmt.Sprintf("Cuisines: %d | Recipes: %d\n\n", r.CuisineCount, r.RecipeCount))
	if r.SnapshotDate != "" {
		sb.WriteString(fmt.Sprintf("Snapshot date: %s\n\n", r.SnapshotDate))
	}

	// Cuisine Metrics
	sb.WriteString("## Cuisine Metrics\n\n")
	if len(r.CuisineMetrics) > 0 {
		sb.WriteString("| Cuisine | Recipes | Fire | Water | Earth | Air | Fire Var | Water Var | Earth Var | Air Var | Spirit | Essence | Matter | Substance |\n")
		sb.WriteString("|---------|---------|------|-------|-------|-----|----------|-----------|-----------|---------|--------|---------|--------|----------|\n")
		for _, m := range r.CuisineMetrics {
			sb.WriteString(fmt.Sprintf("| %s | %d | %.4f | %.4f | %.4f | %.4f | %.4f | %.4f | %.4f | %.4f | %.4f | %.4f | %.4f | %.4f |\n",
				m.Cuisine, m.RecipeCount,
				m.FireMean, m.WaterMean, m.EarthMean, m.AirMean,
				m.FireVariance, m.WaterVariance, m.EarthVariance, m.AirVariance,
				m.SpiritMean, m.EssenceMean, m.MatterMean, m.SubstanceMean))
		}
	} else {
		sb.WriteString("No cuisine metrics available.\n")
	}
	sb.WriteString("\n")

	// Signatures
	sb.WriteString("## Signature Elements\n\n")
	if len(r.Signatures) > 0 {
		sb.WriteString("| Cuisine | Element | Z-Score |\n")
		sb.WriteString("|---------|---------|--------|\n")
		for _, s := range r.Signatures {
			sb.WriteString(fmt.Sprintf("| %s | %s | %+.2f |\n", s.Cuisine, s.Element, s.ZScore))
		}
	} else {
		sb.WriteString("No signature elements above threshold.\n")
	}
	sb.WriteString("\n")

	// Compatibility
	sb.WriteString("## Cuisine Compatibility\n\n")
	if len(r.Compatibility) > 0 {
		sb.WriteString("| Cuisine A | Cuisine B | Score |\n")
		sb.WriteString("|-----------|-----------|-------|\n")
		for _, c := range r.Compatibility {
			sb.WriteString(fmt.Sprintf("| %s | %s | %.2f |\n", c.CuisineA, c.CuisineB, c.Score))
		}
	} else {
		sb.WriteString("Not enough cuisines for pairwise comparison.\n")
	}
	sb.WriteString("\n")

	return sb.String()
}
