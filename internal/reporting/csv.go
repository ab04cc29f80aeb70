package reporting

import (
	"fmt"
	"strings"
)

// RenderCSV renders cuisine metrics as CSV string.
func RenderCSV(metrics []CuisineMetricRow) string {
	var sb strings.Builder

	// Header
	sb.WriteString("cuisine,recipe_count,fire_mean,water_mean,earth_mean,air_mean,")
	sb.WriteString("fire_variance,water_variance,earth_variance,air_variance,")
	sb.WriteString("spirit_mean,essence_mean,matter_mean,substance_mean\n")

	// Rows
	for _, m := range metrics {
		sb.WriteString(fmt.Sprintf("%s,%d,%.6f,%.6f,%.6f,%.6f,%.6f,%.6f,%.6f,%.6f,%.6f,%.6f,%.6f,%.6f\n",
			m.Cuisine,
			m.RecipeCount,
			m.FireMean,
			m.WaterMean,
			m.EarthMean,
			m.AirMean,
			m.FireVariance,
			m.WaterVariance,
			m.EarthVariance,
			m.AirVariance,
			m.SpiritMean,
			m.EssenceMean,
			m.MatterMean,
			m.SubstanceMean,
		))
	}

	return sb.String()
}
