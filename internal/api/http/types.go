package http

import (
	"time"

	"github.com/GriffinCanCode/BuildPlanner/backend/internal/domain/advisor"
	"github.com/GriffinCanCode/BuildPlanner/backend/internal/domain/estimate"
	"github.com/GriffinCanCode/BuildPlanner/backend/internal/domain/layout"
	"github.com/GriffinCanCode/BuildPlanner/backend/internal/domain/planner"
)

// CalculateRequest is the body of /api/calculate and the blueprint and
// export endpoints. Floors defaults to 1 and SingleImage to true.
type CalculateRequest struct {
	BuiltUpArea    float64            `json:"built_up_area"`
	Floors         *int               `json:"floors,omitempty"`
	TargetTimeline *int               `json:"target_timeline,omitempty"`
	RoomOptions    layout.RoomOptions `json:"room_options,omitempty"`
	SingleImage    *bool              `json:"single_image,omitempty"`
}

func (r CalculateRequest) toPlan() planner.Request {
	req := planner.Request{
		AreaSqYards: r.BuiltUpArea,
		Floors:      1,
		RoomOptions: r.RoomOptions,
		SingleImage: true,
	}
	if r.Floors != nil {
		req.Floors = *r.Floors
	}
	if r.TargetTimeline != nil {
		req.TimelineDays = *r.TargetTimeline
	}
	if r.SingleImage != nil {
		req.SingleImage = *r.SingleImage
	}
	return req
}

// LegacyPlanRequest is the body of /api/plan.
type LegacyPlanRequest struct {
	Area     float64 `json:"area"`
	Floors   *int    `json:"floors,omitempty"`
	Timeline *int    `json:"timeline,omitempty"`
}

func (r LegacyPlanRequest) toPlan() planner.Request {
	return CalculateRequest{
		BuiltUpArea:    r.Area,
		Floors:         r.Floors,
		TargetTimeline: r.Timeline,
	}.toPlan()
}

// PlanResponse is the JSON form of a full plan.
type PlanResponse struct {
	EstimateID   string               `json:"estimate_id"`
	GeneratedAt  time.Time            `json:"generated_at"`
	AreaSqYards  float64              `json:"area_sq_yards"`
	AreaSqFt     float64              `json:"area_sq_ft"`
	Floors       int                  `json:"floors"`
	Materials    estimate.Materials   `json:"materials"`
	Labor        estimate.Labor       `json:"labor"`
	Workers      map[string]int       `json:"workers"`
	TotalWorkers int                  `json:"total_workers"`
	Costs        estimate.Costs       `json:"costs"`
	Blueprint    []layout.FloorPlan   `json:"blueprint"`
	AIInsight    advisor.Insight      `json:"ai_insight"`
	Schedule     []advisor.Week       `json:"schedule"`
	AISchedule   advisor.Schedule     `json:"ai_schedule"`
	Assumptions  estimate.Assumptions `json:"assumptions"`
}

func newPlanResponse(r *planner.Result) PlanResponse {
	est := r.Estimate
	crew := est.Labor.Crew
	return PlanResponse{
		EstimateID:  r.ID.String(),
		GeneratedAt: r.GeneratedAt,
		AreaSqYards: est.AreaSqYards,
		AreaSqFt:    est.AreaSqFt,
		Floors:      est.Floors,
		Materials:   est.Materials,
		Labor:       est.Labor,
		Workers: map[string]int{
			"masons":        crew.Masons,
			"helpers":       crew.Helpers,
			"steel_workers": crew.SteelWorkers,
			"carpenters":    crew.Carpenters,
			"supervisors":   crew.Supervisors,
		},
		TotalWorkers: crew.Total(),
		Costs:        est.Costs,
		Blueprint:    r.Blueprint,
		AIInsight:    r.Insight,
		Schedule:     r.Schedule.Weeks,
		AISchedule:   r.Schedule,
		Assumptions:  est.Assumptions,
	}
}
