package gap

import (
	"fmt"
	"math"
	"strings"
)

// maxRecommendations caps the advice list per year.
const maxRecommendations = 6

func contextNames(ctx Context) (category, region string) {
	category = "healthcare workers"
	if ctx.Category != nil && ctx.Category.NameEN != "" {
		category = strings.ToLower(ctx.Category.NameEN)
	}
	region = "the region"
	if ctx.Region != nil && ctx.Region.NameEN != "" {
		region = ctx.Region.NameEN
	}
	return category, region
}

// recommendations selects the template set for the severity, appends
// situational annotations, and truncates to maxRecommendations.
func recommendations(sev Severity, gapPct float64, year int, ctx Context) []string {
	category, region := contextNames(ctx)

	var recs []string
	switch sev {
	case CriticalShortage:
		recs = []string{
			fmt.Sprintf("Urgent: implement emergency %s recruitment in %s", category, region),
			"Fast-track training programs with a 25% capacity increase",
			"Establish international recruitment partnerships for immediate deployment",
			"Activate crisis staffing protocols and temporary assignments",
			"Redistribute workforce from surplus regions where available",
			"Introduce retention bonuses and improved compensation packages",
		}
	case Shortage:
		recs = []string{
			fmt.Sprintf("Increase %s recruitment by %.0f%% in %s", category, math.Abs(gapPct), region),
			"Expand training program capacity by 15-20%",
			"Explore international recruitment opportunities",
			"Optimize current workforce deployment and productivity",
			"Implement retention strategies to reduce attrition",
			"Develop public-private partnerships for workforce sharing",
		}
	case Balanced:
		recs = []string{
			fmt.Sprintf("Monitor %s supply trends closely in %s", category, region),
			"Maintain current recruitment and training levels",
			"Focus on productivity improvements and workflow optimization",
			"Prepare contingency plans for future demand increases",
			"Invest in technology to improve service delivery efficiency",
		}
	default:
		recs = []string{
			fmt.Sprintf("Current %s capacity is adequate in %s", category, region),
			"Consider redistribution to shortage areas",
			"Focus on advanced training and specialization",
			"Explore expansion of services or quality improvements",
			"Optimize resource allocation for maximum impact",
		}
	}

	if year > ctx.BaseYear+7 {
		recs = append(recs, fmt.Sprintf("Long-term planning: review and adjust strategies by %d", year-3))
	}
	if ctx.Region != nil {
		if ctx.Region.AreaKM2 > 0 && ctx.Region.Density() < 10 {
			recs = append(recs, "Consider telemedicine and mobile health services for remote access")
		}
		if ctx.Region.PopulationTotal > 5_000_000 {
			recs = append(recs, "Implement large-scale workforce management systems")
		}
	}

	if len(recs) > maxRecommendations {
		recs = recs[:maxRecommendations]
	}
	return recs
}
