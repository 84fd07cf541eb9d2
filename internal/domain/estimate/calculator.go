package estimate

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

var (
	ErrInvalidArea     = errors.New("built-up area must be greater than zero")
	ErrInvalidFloors   = errors.New("floors must be at least 1")
	ErrInvalidTimeline = errors.New("target timeline must not be negative")
)

// SqFtPerSqYard converts built-up area from square yards to square feet.
const SqFtPerSqYard = 9

// Per square foot per floor.
const (
	cementBagsPerSqFt    = 0.4
	steelKgPerSqFt       = 4
	sandCuFtPerSqFt      = 1.2
	aggregateCuFtPerSqFt = 1.5
	bricksPerSqFt        = 8
	manDaysPerSqFt       = 0.3
)

const (
	sqFtPerCrewMember = 500
	baseCrew          = 2
	overheadRate      = 0.10

	// Crews of this size or larger get a second supervisor.
	largeCrew = 15
)

// Input describes the building to estimate.
type Input struct {
	AreaSqYards float64
	Floors      int
	// TimelineDays is the target duration. Zero means unconstrained.
	TimelineDays int
}

// Validate checks the input ranges.
func (in Input) Validate() error {
	if !(in.AreaSqYards > 0) || math.IsInf(in.AreaSqYards, 0) {
		return ErrInvalidArea
	}
	if in.Floors < 1 {
		return ErrInvalidFloors
	}
	if in.TimelineDays < 0 {
		return ErrInvalidTimeline
	}
	return nil
}

// Materials are total quantities across all floors.
type Materials struct {
	Cement    float64 `json:"cement"`
	Steel     float64 `json:"steel"`
	Sand      float64 `json:"sand"`
	Aggregate float64 `json:"aggregate"`
	Bricks    int64   `json:"bricks"`
}

func (m Materials) vector() []float64 {
	return []float64{m.Cement, m.Steel, m.Sand, m.Aggregate, float64(m.Bricks)}
}

// Crew is the split of the workforce by trade.
type Crew struct {
	Masons       int `json:"masons"`
	Helpers      int `json:"helpers"`
	SteelWorkers int `json:"steel_workers"`
	Carpenters   int `json:"carpenters"`
	Supervisors  int `json:"supervisors"`
}

// Total is the head count across trades. Rounding each trade up means it can
// exceed the number of workers the crew was derived from.
func (c Crew) Total() int {
	return c.Masons + c.Helpers + c.SteelWorkers + c.Carpenters + c.Supervisors
}

// Labor is the effort and crew needed to build within EstimatedDays.
type Labor struct {
	TotalManDays  int64 `json:"total_man_days"`
	EstimatedDays int   `json:"estimated_days"`
	WorkersNeeded int   `json:"workers_needed"`
	Crew
}

// Costs are in the currency of the rate table.
type Costs struct {
	MaterialCost  float64 `json:"material_cost"`
	LaborCost     float64 `json:"labor_cost"`
	Overhead      float64 `json:"overhead"`
	TotalCost     float64 `json:"total_cost"`
	CostPerSqYard float64 `json:"cost_per_sq_yard"`
}

// Assumptions record the basis the costs were computed on.
type Assumptions struct {
	Location      string  `json:"location"`
	CostPerSqYard float64 `json:"cost_per_sq_yard"`
	Rates         Rates   `json:"rates"`
}

// Estimate is the full result for one building.
type Estimate struct {
	AreaSqYards float64     `json:"area_sq_yards"`
	AreaSqFt    float64     `json:"area_sq_ft"`
	Floors      int         `json:"floors"`
	Materials   Materials   `json:"materials"`
	Labor       Labor       `json:"labor"`
	Costs       Costs       `json:"costs"`
	Assumptions Assumptions `json:"assumptions"`
}

// Calculator evaluates estimates against a fixed rate table. It holds no
// mutable state and is safe for concurrent use.
type Calculator struct {
	rates    Rates
	location string
}

// NewCalculator creates a calculator for the given rates and location label.
func NewCalculator(rates Rates, location string) *Calculator {
	if location == "" {
		location = "Generic"
	}
	return &Calculator{rates: rates, location: location}
}

// Rates returns the rate table in use.
func (c *Calculator) Rates() Rates {
	return c.rates
}

// Estimate computes materials, labor and costs for in.
func (c *Calculator) Estimate(in Input) (*Estimate, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	sqFt := in.AreaSqYards * SqFtPerSqYard
	materials := CalculateMaterials(sqFt, in.Floors)
	labor := CalculateLabor(sqFt, in.Floors, in.TimelineDays)
	costs := c.costs(in.AreaSqYards, materials, CalculateLabor(sqFt, in.Floors, 0))

	return &Estimate{
		AreaSqYards: in.AreaSqYards,
		AreaSqFt:    sqFt,
		Floors:      in.Floors,
		Materials:   materials,
		Labor:       labor,
		Costs:       costs,
		Assumptions: Assumptions{
			Location:      c.location,
			CostPerSqYard: costs.CostPerSqYard,
			Rates:         c.rates,
		},
	}, nil
}

// CalculateMaterials returns quantities for sqFt square feet per floor.
func CalculateMaterials(sqFt float64, floors int) Materials {
	f := float64(floors)
	return Materials{
		Cement:    round2(sqFt * cementBagsPerSqFt * f),
		Steel:     round2(sqFt * steelKgPerSqFt * f),
		Sand:      round2(sqFt * sandCuFtPerSqFt * f),
		Aggregate: round2(sqFt * aggregateCuFtPerSqFt * f),
		Bricks:    int64(math.RoundToEven(sqFt * bricksPerSqFt * f)),
	}
}

// CalculateLabor sizes the crew. With a timeline the crew is whatever is
// needed to finish on time; without one a standard crew is assumed and the
// duration follows from it.
func CalculateLabor(sqFt float64, floors, timelineDays int) Labor {
	manDays := sqFt * manDaysPerSqFt * float64(floors)

	var workers, days int
	if timelineDays > 0 {
		workers = int(math.Ceil(manDays / float64(timelineDays)))
		days = timelineDays
	} else {
		workers = int(math.Ceil(sqFt/sqFtPerCrewMember)) + baseCrew
		days = int(math.Ceil(manDays / float64(workers)))
	}

	return Labor{
		TotalManDays:  int64(math.RoundToEven(manDays)),
		EstimatedDays: days,
		WorkersNeeded: workers,
		Crew:          SplitCrew(workers),
	}
}

// SplitCrew divides workers across trades, rounding each trade up.
func SplitCrew(workers int) Crew {
	w := float64(workers)
	supervisors := 1
	if workers >= largeCrew {
		supervisors = 2
	}
	return Crew{
		Masons:       int(math.Ceil(w * 0.2)),
		Helpers:      int(math.Ceil(w * 0.4)),
		SteelWorkers: int(math.Ceil(w * 0.15)),
		Carpenters:   int(math.Ceil(w * 0.15)),
		Supervisors:  supervisors,
	}
}

func (c *Calculator) costs(areaSqYards float64, m Materials, l Labor) Costs {
	material := floats.Dot(m.vector(), c.rates.material())
	labor := float64(l.TotalManDays) * c.rates.Labor
	overhead := (material + labor) * overheadRate
	total := material + labor + overhead

	return Costs{
		MaterialCost:  round2(material),
		LaborCost:     round2(labor),
		Overhead:      round2(overhead),
		TotalCost:     round2(total),
		CostPerSqYard: round2(total / areaSqYards),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// String summarises the estimate on one line for logs and the CLI.
func (e *Estimate) String() string {
	return fmt.Sprintf("%.0f sq yd x %d floors: total %.2f (%.2f per sq yd), %d workers for %d days",
		e.AreaSqYards, e.Floors, e.Costs.TotalCost, e.Costs.CostPerSqYard,
		e.Labor.Total(), e.Labor.EstimatedDays)
}
