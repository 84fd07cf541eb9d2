package advisor

import (
	"fmt"
	"strings"
)

// phase is a slice of the offline schedule. Share is the fraction of the
// total weeks it occupies.
type phase struct {
	name       string
	share      float64
	activities []string
}

var offlinePhases = []phase{
	{"Site Preparation", 0.10, []string{"Site survey", "Clearing and levelling", "Layout marking"}},
	{"Foundation", 0.15, []string{"Excavation", "Footing and PCC", "Plinth beam"}},
	{"Superstructure", 0.30, []string{"Column and beam casting", "Slab casting", "Curing"}},
	{"Masonry", 0.15, []string{"Brickwork", "Lintels", "Door and window frames"}},
	{"Services", 0.10, []string{"Electrical conduits", "Plumbing lines", "Drainage"}},
	{"Finishing", 0.20, []string{"Plastering", "Flooring", "Painting", "Fixtures and handover"}},
}

// OfflineInsight builds rule-based insights from the project figures.
func OfflineInsight(p Project) Insight {
	days := estimatedDays(p)
	built := p.AreaSqYards * float64(max(p.Floors, 1))

	insights := make([]string, 0, 5)

	switch {
	case p.AreaSqYards < 100:
		insights = append(insights, "Compact plot: a small crew can work efficiently, but plan material storage carefully as site space is limited.")
	case p.AreaSqYards < 300:
		insights = append(insights, "Mid-sized plot: stage deliveries of cement and steel to match each construction phase.")
	default:
		insights = append(insights, "Large plot: split the site into work zones so trades can proceed in parallel.")
	}

	if p.Floors > 1 {
		insights = append(insights, fmt.Sprintf("%d floors: cast and cure each slab before loading the next floor, and size columns for the full height.", p.Floors))
	} else {
		insights = append(insights, "Single floor: leave starter bars on the roof slab if a future floor is likely.")
	}

	insights = append(insights, "Material quality: buy cement and steel from one certified supplier and test concrete cubes for every pour.")

	switch {
	case p.TimelineDays <= 0:
		insights = append(insights, fmt.Sprintf("No target timeline given: the default crew needs about %d days.", days))
	case p.TimelineDays < days:
		insights = append(insights, fmt.Sprintf("The %d day target is shorter than the %d day baseline: expect a larger crew and overlapping phases.", p.TimelineDays, days))
	default:
		insights = append(insights, fmt.Sprintf("The %d day target leaves room over the %d day baseline: use the slack for curing time.", p.TimelineDays, days))
	}

	intensity := "low"
	switch {
	case built >= 600:
		intensity = "high"
	case built >= 200:
		intensity = "moderate"
	}
	insights = append(insights, fmt.Sprintf("Resource intensity: %s for %g sq yards of built-up area.", intensity, built))

	return Insight{
		OK:       true,
		Offline:  true,
		Insights: insights,
		Raw:      OfflinePrefix + ": rule-based guidance.\n" + strings.Join(insights, "\n"),
	}
}

// OfflineSchedule spreads fixed construction phases over the estimated
// number of weeks.
func OfflineSchedule(p Project) Schedule {
	days := estimatedDays(p)
	if p.TimelineDays > 0 {
		days = p.TimelineDays
	}
	total := max((days+6)/7, 1)

	weeks := make([]Week, 0, total)
	for w := 1; w <= total; w++ {
		ph := phaseAt((float64(w) - 0.5) / float64(total))
		activities := make([]string, len(ph.activities))
		copy(activities, ph.activities)

		n := w
		weeks = append(weeks, Week{Number: &n, Phase: ph.name, Activities: activities})
	}

	var raw strings.Builder
	fmt.Fprintf(&raw, "%s: rule-based schedule over %d weeks.\n", OfflinePrefix, total)
	for _, w := range weeks {
		fmt.Fprintf(&raw, "Week %d: %s - %s\n", *w.Number, w.Phase, strings.Join(w.Activities, ", "))
	}

	return Schedule{
		OK:      true,
		Offline: true,
		Weeks:   weeks,
		Raw:     raw.String(),
	}
}

// phaseAt returns the phase covering position, a fraction of the schedule.
func phaseAt(position float64) phase {
	cum := 0.0
	for _, ph := range offlinePhases {
		cum += ph.share
		if position < cum {
			return ph
		}
	}
	return offlinePhases[len(offlinePhases)-1]
}
