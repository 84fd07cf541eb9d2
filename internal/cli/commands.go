package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/GriffinCanCode/BuildPlanner/backend/internal/domain/advisor"
	"github.com/GriffinCanCode/BuildPlanner/backend/internal/domain/estimate"
	"github.com/GriffinCanCode/BuildPlanner/backend/internal/domain/layout"
	"github.com/GriffinCanCode/BuildPlanner/backend/internal/render/svg"
	"github.com/GriffinCanCode/BuildPlanner/backend/internal/report"
)

func newEstimateCmd() *cobra.Command {
	var format string
	opts := buildOpts{}

	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Compute materials, labour and cost for a building",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat("estimate", format); err != nil {
				return err
			}
			return runEstimate(cmd, &opts, format)
		},
	}

	opts.register(cmd)
	opts.registerCost(cmd)
	cmd.Flags().StringVar(&format, "format", "text", "output format: text, json, xlsx")
	return cmd
}

func runEstimate(cmd *cobra.Command, opts *buildOpts, format string) error {
	svc, err := opts.service()
	if err != nil {
		return err
	}
	req := opts.request()
	est, err := svc.Estimate(req)
	if err != nil {
		return err
	}

	var data []byte
	switch format {
	case "json":
		data, err = marshalJSON(est)
	case "xlsx":
		var floors []layout.FloorPlan
		req.SingleImage = false
		if floors, err = svc.Blueprint(req); err != nil {
			return err
		}
		data, err = report.Workbook(est, floors)
	default:
		data = []byte(formatEstimate(est))
	}
	if err != nil {
		return err
	}
	return writeOutput(cmd, opts.output, data)
}

func formatEstimate(est *estimate.Estimate) string {
	m, l, c := est.Materials, est.Labor, est.Costs
	return fmt.Sprintf(`%s

Materials
  Cement     %10.2f bags
  Steel      %10.2f kg
  Sand       %10.2f cu ft
  Aggregate  %10.2f cu ft
  Bricks     %10d

Labour
  Masons %d, Helpers %d, Steel workers %d, Carpenters %d, Supervisors %d
  Estimated days %d

Costs
  Material   %12.2f
  Labour     %12.2f
  Overhead   %12.2f
  Total      %12.2f
`,
		est, m.Cement, m.Steel, m.Sand, m.Aggregate, m.Bricks,
		l.Masons, l.Helpers, l.SteelWorkers, l.Carpenters, l.Supervisors, l.EstimatedDays,
		c.MaterialCost, c.LaborCost, c.Overhead, c.TotalCost)
}

func newBlueprintCmd() *cobra.Command {
	var (
		format    string
		floor     int
		allFloors bool
	)
	opts := buildOpts{}

	cmd := &cobra.Command{
		Use:   "blueprint",
		Short: "Lay out rooms, doors and windows for each floor",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat("blueprint", format); err != nil {
				return err
			}
			svc, err := opts.service()
			if err != nil {
				return err
			}

			req := opts.request()
			req.SingleImage = !allFloors && format == "json"
			floors, err := svc.Blueprint(req)
			if err != nil {
				return err
			}

			if format == "json" {
				data, err := marshalJSON(floors)
				if err != nil {
					return err
				}
				return writeOutput(cmd, opts.output, data)
			}

			if floor < 0 || floor >= len(floors) {
				return fmt.Errorf("floor %d out of range (0-%d)", floor, len(floors)-1)
			}
			return writeOutput(cmd, opts.output, svg.Render(floors[floor]))
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVar(&format, "format", "json", "output format: json, svg")
	cmd.Flags().IntVar(&floor, "floor", 0, "floor to draw with --format svg (0 is the ground floor)")
	cmd.Flags().BoolVar(&allFloors, "all-floors", false, "lay out every floor instead of the ground floor only")
	return cmd
}

// planOutput is the full plan as printed by the plan command.
type planOutput struct {
	ID        string             `json:"estimate_id"`
	Estimate  *estimate.Estimate `json:"estimate"`
	Blueprint []layout.FloorPlan `json:"blueprint"`
	Insight   advisor.Insight    `json:"ai_insight"`
	Schedule  advisor.Schedule   `json:"ai_schedule"`
}

func newPlanCmd() *cobra.Command {
	opts := buildOpts{}

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Produce an estimate, blueprint and rule-based schedule as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := opts.service()
			if err != nil {
				return err
			}
			result, err := svc.Plan(cmd.Context(), opts.request())
			if err != nil {
				return err
			}

			data, err := marshalJSON(planOutput{
				ID:        result.ID.String(),
				Estimate:  result.Estimate,
				Blueprint: result.Blueprint,
				Insight:   result.Insight,
				Schedule:  result.Schedule,
			})
			if err != nil {
				return err
			}
			return writeOutput(cmd, opts.output, data)
		},
	}

	opts.register(cmd)
	opts.registerCost(cmd)
	return cmd
}
