package estimate

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"
)

// ErrInvalidRates is returned when a rate table holds a negative price.
var ErrInvalidRates = errors.New("invalid rates")

// Rates are unit prices in the local currency: cement per bag, steel per kg,
// sand and aggregate per cubic foot, bricks per brick and labor per man-day.
type Rates struct {
	Cement    float64 `json:"cement" yaml:"cement" toml:"cement"`
	Steel     float64 `json:"steel" yaml:"steel" toml:"steel"`
	Sand      float64 `json:"sand" yaml:"sand" toml:"sand"`
	Aggregate float64 `json:"aggregate" yaml:"aggregate" toml:"aggregate"`
	Bricks    float64 `json:"bricks" yaml:"bricks" toml:"bricks"`
	Labor     float64 `json:"labor" yaml:"labor" toml:"labor"`
}

// DefaultRates returns the built-in market rates. Aggregate is not priced
// by default.
func DefaultRates() Rates {
	return Rates{
		Cement: 400,
		Steel:  70,
		Sand:   50,
		Bricks: 10,
		Labor:  800,
	}
}

// Validate rejects negative prices.
func (r Rates) Validate() error {
	prices := []struct {
		name  string
		price float64
	}{
		{"cement", r.Cement},
		{"steel", r.Steel},
		{"sand", r.Sand},
		{"aggregate", r.Aggregate},
		{"bricks", r.Bricks},
		{"labor", r.Labor},
	}
	for _, p := range prices {
		if p.price < 0 {
			return fmt.Errorf("%w: %s rate is negative", ErrInvalidRates, p.name)
		}
	}
	return nil
}

// material returns the material prices in the same order as
// Materials.vector.
func (r Rates) material() []float64 {
	return []float64{r.Cement, r.Steel, r.Sand, r.Aggregate, r.Bricks}
}

// ParseRates decodes a rate table in the given format ("yaml" or "toml").
// Keys missing from data keep their default values.
func ParseRates(data []byte, format string) (Rates, error) {
	rates := DefaultRates()

	var err error
	switch strings.ToLower(format) {
	case "yaml", "yml":
		err = yaml.Unmarshal(data, &rates)
	case "toml":
		err = toml.Unmarshal(data, &rates)
	default:
		return Rates{}, fmt.Errorf("unsupported rates format %q", format)
	}
	if err != nil {
		return Rates{}, fmt.Errorf("failed to parse %s rates: %w", format, err)
	}

	if err := rates.Validate(); err != nil {
		return Rates{}, err
	}
	return rates, nil
}

// LoadRates reads a rate table from path, choosing the decoder by extension.
func LoadRates(path string) (Rates, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Rates{}, fmt.Errorf("failed to read rates file: %w", err)
	}
	return ParseRates(data, strings.TrimPrefix(filepath.Ext(path), "."))
}
