package planner

import (
	"context"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/BuildPlanner/backend/internal/domain/advisor"
	"github.com/GriffinCanCode/BuildPlanner/backend/internal/domain/estimate"
	"github.com/GriffinCanCode/BuildPlanner/backend/internal/domain/layout"
	"github.com/GriffinCanCode/BuildPlanner/backend/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/BuildPlanner/backend/internal/shared/id"
)

type mockAdvisor struct {
	mock.Mock
}

func (m *mockAdvisor) AnalyzeProject(ctx context.Context, p advisor.Project) advisor.Insight {
	return m.Called(ctx, p).Get(0).(advisor.Insight)
}

func (m *mockAdvisor) WeeklySchedule(ctx context.Context, p advisor.Project) advisor.Schedule {
	return m.Called(ctx, p).Get(0).(advisor.Schedule)
}

func newTestService(adv advisor.Advisor, metrics *monitoring.Metrics) *Service {
	return NewService(estimate.NewCalculator(estimate.DefaultRates(), ""), adv, nil, metrics)
}

func intPtr(v int) *int { return &v }

func TestPlan(t *testing.T) {
	want := advisor.Project{AreaSqYards: 200, Floors: 2, TimelineDays: 0, EstimatedDays: 180}
	insight := advisor.Insight{OK: true, Insights: []string{"keep it dry"}, Raw: "keep it dry"}
	week := 1
	schedule := advisor.Schedule{OK: true, Weeks: []advisor.Week{{Number: &week, Phase: "Site", Activities: []string{}}}}

	adv := new(mockAdvisor)
	adv.On("AnalyzeProject", mock.Anything, want).Return(insight).Once()
	adv.On("WeeklySchedule", mock.Anything, want).Return(schedule).Once()
	metrics := monitoring.NewMetrics()

	svc := newTestService(adv, metrics)
	result, err := svc.Plan(context.Background(), Request{AreaSqYards: 200, Floors: 2, SingleImage: false})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(result.ID.String(), id.EstimatePrefix+"_"))
	assert.Equal(t, insight, result.Insight)
	assert.Equal(t, schedule, result.Schedule)
	assert.False(t, result.GeneratedAt.IsZero())

	// 200 sq yd = 1800 sq ft over two floors: 900 per floor, the compact band.
	require.Len(t, result.Blueprint, 2)
	assert.Len(t, result.Blueprint[0].Rooms, 4)
	assert.Equal(t, 2, result.Estimate.Floors)
	assert.Equal(t, 1800.0, result.Estimate.AreaSqFt)

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.PlansTotal.WithLabelValues("full")))
	adv.AssertExpectations(t)
}

func TestPlanPassesTimeline(t *testing.T) {
	adv := new(mockAdvisor)
	adv.On("AnalyzeProject", mock.Anything, mock.MatchedBy(func(p advisor.Project) bool {
		return p.TimelineDays == 30 && p.EstimatedDays == 30
	})).Return(advisor.Insight{OK: true}).Once()
	adv.On("WeeklySchedule", mock.Anything, mock.Anything).Return(advisor.Schedule{OK: true}).Once()

	result, err := newTestService(adv, nil).Plan(context.Background(), Request{AreaSqYards: 100, Floors: 1, TimelineDays: 30, SingleImage: true})
	require.NoError(t, err)
	assert.Equal(t, 9, result.Estimate.Labor.WorkersNeeded)
	assert.Len(t, result.Blueprint, 1)
	adv.AssertExpectations(t)
}

func TestPlanRejectsInvalidRequests(t *testing.T) {
	tests := []struct {
		name string
		req  Request
	}{
		{name: "zero area", req: Request{AreaSqYards: 0, Floors: 1}},
		{name: "negative area", req: Request{AreaSqYards: -5, Floors: 1}},
		{name: "zero floors", req: Request{AreaSqYards: 100, Floors: 0}},
		{name: "negative timeline", req: Request{AreaSqYards: 100, Floors: 1, TimelineDays: -1}},
		{name: "bad room option", req: Request{AreaSqYards: 100, Floors: 1, RoomOptions: layout.RoomOptions{
			{Key: "kitchen", Option: layout.RoomOption{Doors: intPtr(5)}},
		}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			adv := new(mockAdvisor)
			svc := newTestService(adv, nil)

			_, err := svc.Plan(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidRequest)

			_, err = svc.Blueprint(tt.req)
			assert.ErrorIs(t, err, ErrInvalidRequest)

			adv.AssertNotCalled(t, "AnalyzeProject", mock.Anything, mock.Anything)
		})
	}
}

func TestBlueprint(t *testing.T) {
	metrics := monitoring.NewMetrics()
	svc := newTestService(new(mockAdvisor), metrics)

	opts := layout.RoomOptions{{Key: "bathroom", Option: layout.RoomOption{Windows: intPtr(2)}}}
	floors, err := svc.Blueprint(Request{AreaSqYards: 300, Floors: 3, RoomOptions: opts})
	require.NoError(t, err)

	require.Len(t, floors, 3)
	assert.Equal(t, layout.Pack(2700, 3, false, opts), floors)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.PlansTotal.WithLabelValues("blueprint")))
}

func TestEstimate(t *testing.T) {
	svc := newTestService(new(mockAdvisor), nil)

	est, err := svc.Estimate(Request{AreaSqYards: 100, Floors: 1})
	require.NoError(t, err)
	assert.Equal(t, 811800.0, est.Costs.TotalCost)

	_, err = svc.Estimate(Request{AreaSqYards: 100, Floors: 0})
	assert.ErrorIs(t, err, ErrInvalidRequest)
	assert.ErrorIs(t, err, estimate.ErrInvalidFloors)
}
