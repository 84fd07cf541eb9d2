package planner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/GriffinCanCode/BuildPlanner/backend/internal/domain/advisor"
	"github.com/GriffinCanCode/BuildPlanner/backend/internal/domain/estimate"
	"github.com/GriffinCanCode/BuildPlanner/backend/internal/domain/layout"
	"github.com/GriffinCanCode/BuildPlanner/backend/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/BuildPlanner/backend/internal/shared/id"
)

// ErrInvalidRequest wraps every validation failure.
var ErrInvalidRequest = errors.New("invalid plan request")

// Request describes the building to plan.
type Request struct {
	AreaSqYards  float64
	Floors       int
	TimelineDays int
	RoomOptions  layout.RoomOptions
	// SingleImage limits the blueprint to the ground floor.
	SingleImage bool
}

// Validate checks the request before any work is done.
func (r Request) Validate() error {
	in := estimate.Input{AreaSqYards: r.AreaSqYards, Floors: r.Floors, TimelineDays: r.TimelineDays}
	if err := in.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	if err := r.RoomOptions.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	return nil
}

// AreaSqFt is the built-up area in square feet.
func (r Request) AreaSqFt() float64 {
	return r.AreaSqYards * estimate.SqFtPerSqYard
}

// Result is a complete plan.
type Result struct {
	ID          id.EstimateID
	Estimate    *estimate.Estimate
	Blueprint   []layout.FloorPlan
	Insight     advisor.Insight
	Schedule    advisor.Schedule
	GeneratedAt time.Time
}

// Service produces plans. It is safe for concurrent use.
type Service struct {
	calc    *estimate.Calculator
	advisor advisor.Advisor
	logger  *zap.Logger
	metrics *monitoring.Metrics
	ids     *id.Generator
	now     func() time.Time
}

// NewService creates a planner. logger and metrics may be nil.
func NewService(calc *estimate.Calculator, adv advisor.Advisor, logger *zap.Logger, metrics *monitoring.Metrics) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		calc:    calc,
		advisor: adv,
		logger:  logger,
		metrics: metrics,
		ids:     id.Default(),
		now:     time.Now,
	}
}

// Calculator returns the calculator the service estimates with.
func (s *Service) Calculator() *estimate.Calculator {
	return s.calc
}

// Plan runs the estimate and the layout, then asks the advisor for insights
// and a schedule concurrently.
func (s *Service) Plan(ctx context.Context, req Request) (*Result, error) {
	start := s.now()

	est, err := s.Estimate(req)
	if err != nil {
		return nil, err
	}
	floors := layout.Pack(req.AreaSqFt(), req.Floors, req.SingleImage, req.RoomOptions)

	project := advisor.Project{
		AreaSqYards:   req.AreaSqYards,
		Floors:        req.Floors,
		TimelineDays:  req.TimelineDays,
		EstimatedDays: est.Labor.EstimatedDays,
	}

	result := &Result{
		ID:        id.EstimateID(s.ids.GenerateWithPrefix(id.EstimatePrefix)),
		Estimate:  est,
		Blueprint: floors,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		result.Insight = s.advisor.AnalyzeProject(gctx, project)
		return nil
	})
	g.Go(func() error {
		result.Schedule = s.advisor.WeeklySchedule(gctx, project)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result.GeneratedAt = s.now()
	if s.metrics != nil {
		s.metrics.RecordPlan("full", roomCounts(floors)...)
		s.metrics.RecordEstimate(est.Costs.TotalCost)
		s.metrics.RecordPlanDuration(result.GeneratedAt.Sub(start))
	}

	s.logger.Info("plan generated",
		zap.String("estimate_id", result.ID.String()),
		zap.Float64("area_sq_yards", req.AreaSqYards),
		zap.Int("floors", req.Floors),
		zap.Float64("total_cost", est.Costs.TotalCost),
		zap.Bool("ai_offline", result.Insight.Offline || result.Schedule.Offline),
	)
	return result, nil
}

// Estimate validates req and computes its estimate only.
func (s *Service) Estimate(req Request) (*estimate.Estimate, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	est, err := s.calc.Estimate(estimate.Input{
		AreaSqYards:  req.AreaSqYards,
		Floors:       req.Floors,
		TimelineDays: req.TimelineDays,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	return est, nil
}

// Blueprint validates req and packs its floors without consulting the
// advisor.
func (s *Service) Blueprint(req Request) ([]layout.FloorPlan, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	floors := layout.Pack(req.AreaSqFt(), req.Floors, req.SingleImage, req.RoomOptions)
	if s.metrics != nil {
		s.metrics.RecordPlan("blueprint", roomCounts(floors)...)
	}
	return floors, nil
}

func roomCounts(floors []layout.FloorPlan) []int {
	counts := make([]int, len(floors))
	for i, f := range floors {
		counts[i] = len(f.Rooms)
	}
	return counts
}
