// Package estimate computes material quantities, crew sizes and costs for a
// building from its built-up area and floor count.
//
// Quantities scale linearly with square footage and floors. Costs are the
// dot product of quantities and unit rates plus labor and a flat overhead.
// Rates default to DefaultRates and can be overridden from a YAML or TOML
// file with LoadRates.
//
// Example Usage:
//
//	calc := estimate.NewCalculator(estimate.DefaultRates(), "Generic")
//	est, err := calc.Estimate(estimate.Input{AreaSqYards: 200, Floors: 2})
package estimate
