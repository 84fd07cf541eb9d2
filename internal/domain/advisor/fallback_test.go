package advisor

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOfflineInsight(t *testing.T) {
	got := OfflineInsight(Project{AreaSqYards: 100, Floors: 1, EstimatedDays: 68})

	assert.True(t, got.OK)
	assert.True(t, got.Offline)
	assert.True(t, strings.HasPrefix(got.Raw, OfflinePrefix))
	require.Len(t, got.Insights, 5)
	assert.Contains(t, got.Insights[0], "Mid-sized plot")
	assert.Contains(t, got.Insights[3], "about 68 days")
	assert.Contains(t, got.Insights[4], "Resource intensity: low")
}

func TestOfflineInsightTimeline(t *testing.T) {
	tight := OfflineInsight(Project{AreaSqYards: 500, Floors: 3, TimelineDays: 60, EstimatedDays: 200})
	assert.Contains(t, tight.Insights[0], "Large plot")
	assert.Contains(t, tight.Insights[1], "3 floors")
	assert.Contains(t, tight.Insights[3], "shorter than the 200 day baseline")
	assert.Contains(t, tight.Insights[4], "high")

	loose := OfflineInsight(Project{AreaSqYards: 50, Floors: 1, TimelineDays: 300, EstimatedDays: 40})
	assert.Contains(t, loose.Insights[0], "Compact plot")
	assert.Contains(t, loose.Insights[3], "leaves room")
}

func TestOfflineSchedule(t *testing.T) {
	got := OfflineSchedule(Project{AreaSqYards: 100, Floors: 1, EstimatedDays: 68})

	assert.True(t, got.OK)
	assert.True(t, got.Offline)
	assert.True(t, strings.HasPrefix(got.Raw, OfflinePrefix))

	// 68 days round up to 10 weeks.
	require.Len(t, got.Weeks, 10)
	for i, w := range got.Weeks {
		require.NotNil(t, w.Number)
		assert.Equal(t, i+1, *w.Number)
		assert.NotEmpty(t, w.Activities)
	}
	assert.Equal(t, "Site Preparation", got.Weeks[0].Phase)
	assert.Equal(t, "Foundation", got.Weeks[1].Phase)
	assert.Equal(t, "Finishing", got.Weeks[9].Phase)
	assert.Contains(t, got.Raw, "Week 10: Finishing - Plastering")
}

func TestOfflineScheduleUsesTimeline(t *testing.T) {
	got := OfflineSchedule(Project{AreaSqYards: 100, Floors: 1, TimelineDays: 14, EstimatedDays: 68})
	assert.Len(t, got.Weeks, 2)

	got = OfflineSchedule(Project{AreaSqYards: 100, Floors: 1})
	// Without an estimate 90 days are assumed.
	assert.Len(t, got.Weeks, 13)
}

func TestOfflineScheduleIsDeterministic(t *testing.T) {
	p := Project{AreaSqYards: 300, Floors: 2, EstimatedDays: 120}
	assert.Equal(t, OfflineSchedule(p), OfflineSchedule(p))
}
