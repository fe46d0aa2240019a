// Package insight interprets an impact report for people: a qualitative
// rating of the circularity score, improvement recommendations and a one
// paragraph executive summary.
package insight

import (
	"fmt"

	"github.com/rshade/metalca/internal/greenops"
	"github.com/rshade/metalca/internal/impact"
)

// Rating is the qualitative band of a circularity score.
type Rating string

// Ratings, best first.
const (
	RatingExcellent Rating = "Excellent"
	RatingGood      Rating = "Good"
	RatingModerate  Rating = "Moderate"
)

// Rating thresholds and recommendation triggers.
const (
	excellentScore = 80
	goodScore      = 60

	recycledTarget     = 50.0
	co2ReductionTarget = 30
)

// Rate maps a circularity score to its band.
func Rate(score int) Rating {
	switch {
	case score >= excellentScore:
		return RatingExcellent
	case score >= goodScore:
		return RatingGood
	default:
		return RatingModerate
	}
}

// Recommendation is one improvement suggestion.
type Recommendation struct {
	Title       string `json:"title"       yaml:"title"`
	Description string `json:"description" yaml:"description"`
}

// Recommend returns the suggestions that apply to r. It never returns an
// empty slice.
func Recommend(r impact.ImpactReport) []Recommendation {
	var recs []Recommendation

	if r.RecycledPercent < recycledTarget {
		recs = append(recs, Recommendation{
			Title: "Boost Recycled Content",
			Description: "Increasing recycled content above 50% can dramatically reduce " +
				"virgin material extraction impacts.",
		})
	}

	if r.Reductions.CO2 < co2ReductionTarget {
		recs = append(recs, Recommendation{
			Title: "Optimize Carbon Footprint",
			Description: "Consider renewable energy sources and improved process efficiency " +
				"to enhance CO2 reductions.",
		})
	}

	if r.CircularityScore >= excellentScore {
		recs = append(recs, Recommendation{
			Title: "Outstanding Performance",
			Description: "Your process demonstrates excellent circular economy principles. " +
				"Consider sharing best practices.",
		})
	}

	if len(recs) == 0 {
		recs = append(recs, Recommendation{
			Title:       "Well Optimized Process",
			Description: "Your current configuration shows good environmental performance across key metrics.",
		})
	}
	return recs
}

// Summarize renders the executive summary of r.
func Summarize(r impact.ImpactReport) string {
	return fmt.Sprintf(
		"This assessment for processing %s kg of %s shows the effect of circular economy principles. "+
			"With %s%% recycled content, the circular route achieves a %d%% reduction in CO2 emissions, "+
			"a %d%% decrease in energy consumption and a %d%% saving in water use compared to the linear route. "+
			"The resulting Circularity Score is %d/100 (%s).",
		greenops.FormatMass(r.Mass), r.Material,
		formatPercent(r.RecycledPercent),
		r.Reductions.CO2, r.Reductions.Energy, r.Reductions.Water,
		r.CircularityScore, Rate(r.CircularityScore),
	)
}

// formatPercent drops the decimals of whole percentages.
func formatPercent(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.1f", v)
}
