package advisor

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/BuildPlanner/backend/internal/infrastructure/cache"
	"github.com/GriffinCanCode/BuildPlanner/backend/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/BuildPlanner/backend/internal/infrastructure/resilience"
)

type mockGenerator struct {
	mock.Mock
}

func (m *mockGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

var testProject = Project{AreaSqYards: 200, Floors: 2, TimelineDays: 120, EstimatedDays: 90}

func TestAnalyzeProject(t *testing.T) {
	gen := new(mockGenerator)
	gen.On("Generate", mock.Anything, mock.MatchedBy(func(p string) bool {
		return strings.Contains(p, "200 sq yards") && strings.Contains(p, "Number of Floors: 2") &&
			strings.Contains(p, "Target Timeline: 120 days")
	})).Return("## Analysis:\n**Challenges**: tight site\n• Use M25 concrete\n", nil).Once()

	svc := NewService(DefaultConfig(), WithGenerator(gen))
	got := svc.AnalyzeProject(context.Background(), testProject)

	assert.True(t, got.OK)
	assert.False(t, got.Offline)
	assert.Equal(t, []string{"Challenges: tight site", "Use M25 concrete"}, got.Insights)
	assert.Contains(t, got.Raw, "Use M25 concrete")
	gen.AssertExpectations(t)
}

func TestWeeklySchedule(t *testing.T) {
	gen := new(mockGenerator)
	gen.On("Generate", mock.Anything, mock.MatchedBy(func(p string) bool {
		return strings.Contains(p, "200 sq yard, 2-floor") && strings.Contains(p, "90 days")
	})).Return("Week 1: Site Preparation - survey, levelling\nWeek 2: Foundation\n", nil).Once()

	svc := NewService(DefaultConfig(), WithGenerator(gen))
	got := svc.WeeklySchedule(context.Background(), testProject)

	assert.True(t, got.OK)
	assert.False(t, got.Offline)
	require.Len(t, got.Weeks, 2)
	assert.Equal(t, "Site Preparation", got.Weeks[0].Phase)
	assert.Equal(t, []string{"survey", "levelling"}, got.Weeks[0].Activities)
	assert.Equal(t, 2, *got.Weeks[1].Number)
	assert.Empty(t, got.Weeks[1].Activities)
	gen.AssertExpectations(t)
}

func TestServiceCachesAnswers(t *testing.T) {
	gen := new(mockGenerator)
	gen.On("Generate", mock.Anything, mock.Anything).Return("Point one\nPoint two", nil).Once()
	metrics := monitoring.NewMetrics()

	svc := NewService(DefaultConfig(),
		WithGenerator(gen),
		WithCache(cache.NewMemoryCache(16)),
		WithMetrics(metrics),
	)

	first := svc.AnalyzeProject(context.Background(), testProject)
	second := svc.AnalyzeProject(context.Background(), testProject)

	assert.Equal(t, first, second)
	gen.AssertNumberOfCalls(t, "Generate", 1)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.AdvisorCache.WithLabelValues("hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.AdvisorCache.WithLabelValues("miss")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.AdvisorCalls.WithLabelValues(opInsights, "success")))
}

func TestServiceFallsBack(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		err        error
		wantReason string
	}{
		{name: "unreachable", err: ErrUnavailable, wantReason: "unreachable"},
		{name: "bad status", err: ErrStatus, wantReason: "bad_status"},
		{name: "breaker open", err: resilience.ErrCircuitOpen, wantReason: "breaker_open"},
		{name: "timeout", err: context.DeadlineExceeded, wantReason: "timeout"},
		{name: "empty answer", raw: "  \n ", wantReason: "empty"},
		{name: "other", err: errors.New("boom"), wantReason: "unreachable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := new(mockGenerator)
			gen.On("Generate", mock.Anything, mock.Anything).Return(tt.raw, tt.err)
			metrics := monitoring.NewMetrics()
			c := cache.NewMemoryCache(16)

			svc := NewService(DefaultConfig(), WithGenerator(gen), WithMetrics(metrics), WithCache(c))

			insight := svc.AnalyzeProject(context.Background(), testProject)
			assert.Equal(t, OfflineInsight(testProject), insight)

			schedule := svc.WeeklySchedule(context.Background(), testProject)
			assert.Equal(t, OfflineSchedule(testProject), schedule)

			assert.Equal(t, 1.0, testutil.ToFloat64(metrics.AdvisorFallbacks.WithLabelValues(opInsights, tt.wantReason)))
			assert.Equal(t, 1.0, testutil.ToFloat64(metrics.AdvisorFallbacks.WithLabelValues(opSchedule, tt.wantReason)))
			assert.Equal(t, 0, c.Len(), "failures are not cached")
		})
	}
}

func TestServiceDisabled(t *testing.T) {
	gen := new(mockGenerator)
	cfg := DefaultConfig()
	cfg.Enabled = false

	svc := NewService(cfg, WithGenerator(gen))
	insight := svc.AnalyzeProject(context.Background(), testProject)

	assert.True(t, insight.OK)
	assert.True(t, insight.Offline)
	assert.True(t, strings.HasPrefix(insight.Raw, OfflinePrefix))
	gen.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
}

func TestServiceImplementsAdvisor(t *testing.T) {
	var _ Advisor = NewService(DefaultConfig(), WithGenerator(new(mockGenerator)))
}
