// Package cli implements the planner command-line tool. It drives the same
// planner service as the HTTP server without starting one.
package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"

	"github.com/GriffinCanCode/BuildPlanner/backend/internal/domain/advisor"
	"github.com/GriffinCanCode/BuildPlanner/backend/internal/domain/estimate"
	"github.com/GriffinCanCode/BuildPlanner/backend/internal/domain/planner"
	"github.com/GriffinCanCode/BuildPlanner/backend/internal/infrastructure/logging"
)

var version = "dev"

// SetVersion sets the version printed by --version.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// buildOpts are the flags shared by every command that describes a building.
type buildOpts struct {
	area     float64 // built-up area in square yards
	floors   int
	timeline int    // target days, 0 for none
	rates    string // rate file overriding the defaults
	location string
	output   string // file path, stdout when empty
}

func (o *buildOpts) register(cmd *cobra.Command) {
	cmd.Flags().Float64VarP(&o.area, "area", "a", 0, "built-up area in square yards (required)")
	cmd.Flags().IntVarP(&o.floors, "floors", "f", 1, "number of floors")
	cmd.Flags().StringVarP(&o.output, "output", "o", "", "output file (default: stdout)")
	_ = cmd.MarkFlagRequired("area")
}

func (o *buildOpts) registerCost(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&o.timeline, "timeline", "t", 0, "target timeline in days")
	cmd.Flags().StringVar(&o.rates, "rates", "", "unit rate file (yaml or toml)")
	cmd.Flags().StringVar(&o.location, "location", "Generic", "location reported with the estimate")
}

func (o *buildOpts) request() planner.Request {
	return planner.Request{
		AreaSqYards:  o.area,
		Floors:       o.floors,
		TimelineDays: o.timeline,
		SingleImage:  true,
	}
}

// service builds a planner whose advisor only gives rule-based answers, so
// no command ever reaches the network.
func (o *buildOpts) service() (*planner.Service, error) {
	rates := estimate.DefaultRates()
	if o.rates != "" {
		loaded, err := estimate.LoadRates(o.rates)
		if err != nil {
			return nil, err
		}
		rates = loaded
	}

	cfg := advisor.DefaultConfig()
	cfg.Enabled = false
	adv := advisor.NewService(cfg)

	return planner.NewService(estimate.NewCalculator(rates, o.location), adv, logging.NewNop().Logger, nil), nil
}

// NewRootCommand assembles the planner command tree. Results go to out
// unless a command is given -o.
func NewRootCommand(out io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:           "planner",
		Short:         "Estimate materials, labour and floor plans for a building",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)

	root.AddCommand(newEstimateCmd(), newBlueprintCmd(), newPlanCmd())
	return root
}

// writeOutput writes data to path, or to the command's output when path is
// empty.
func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", path, err)
	}
	return nil
}

func marshalJSON(v any) ([]byte, error) {
	data, err := sonic.ConfigStd.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

var validFormats = map[string][]string{
	"estimate":  {"text", "json", "xlsx"},
	"blueprint": {"json", "svg"},
}

func validateFormat(cmd, format string) error {
	for _, f := range validFormats[cmd] {
		if f == format {
			return nil
		}
	}
	return fmt.Errorf("invalid format: %s (must be one of %s)", format, strings.Join(validFormats[cmd], ", "))
}
