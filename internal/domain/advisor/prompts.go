package advisor

import (
	"fmt"
	"strings"
)

// defaultEstimatedDays is assumed when the caller has no estimate yet.
const defaultEstimatedDays = 90

func timelineText(days int) string {
	if days <= 0 {
		return "Not specified"
	}
	return fmt.Sprintf("%d", days)
}

func estimatedDays(p Project) int {
	if p.EstimatedDays <= 0 {
		return defaultEstimatedDays
	}
	return p.EstimatedDays
}

func insightPrompt(p Project) string {
	var b strings.Builder
	b.WriteString("Analyze the following construction project parameters and provide professional advice:\n")
	fmt.Fprintf(&b, "- Built-up Area: %g sq yards\n", p.AreaSqYards)
	fmt.Fprintf(&b, "- Number of Floors: %d\n", p.Floors)
	fmt.Fprintf(&b, "- Target Timeline: %s days\n", timelineText(p.TimelineDays))
	fmt.Fprintf(&b, "- Estimated Duration: %d days\n\n", estimatedDays(p))
	b.WriteString("Provide a concise analysis including:\n")
	b.WriteString("1. Potential construction challenges for this scale.\n")
	b.WriteString("2. Recommendations for material quality.\n")
	b.WriteString("3. Tips for optimizing the construction schedule.\n")
	b.WriteString("4. Resource intensity assessment.\n\n")
	b.WriteString("Keep the response professional and structured, one point per line.\n")
	return b.String()
}

func schedulePrompt(p Project) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Create a week-by-week construction schedule for a %g sq yard, %d-floor building.\n",
		p.AreaSqYards, p.Floors)
	fmt.Fprintf(&b, "Target timeline: %s days. Total estimated duration: %d days.\n\n",
		timelineText(p.TimelineDays), estimatedDays(p))
	b.WriteString("List key activities for each week from site preparation to final finishing.\n")
	b.WriteString("Format every line as: Week N: Phase - activity, activity\n")
	return b.String()
}
