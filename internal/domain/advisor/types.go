package advisor

import (
	"context"
	"time"
)

// OfflinePrefix starts the Raw text of every rule-based answer.
const OfflinePrefix = "AI Model Offline"

// Project is what the advisor knows about a building.
type Project struct {
	AreaSqYards   float64
	Floors        int
	TimelineDays  int // 0 when no target was given
	EstimatedDays int
}

// Insight is the result of AnalyzeProject.
type Insight struct {
	OK       bool     `json:"ok"`
	Offline  bool     `json:"offline"`
	Insights []string `json:"insights"`
	Raw      string   `json:"raw"`
}

// Week is one line of a schedule. Number is nil when the model labelled a
// week without a digit.
type Week struct {
	Number     *int     `json:"week"`
	Phase      string   `json:"phase"`
	Activities []string `json:"activities"`
}

// Schedule is the result of WeeklySchedule.
type Schedule struct {
	OK      bool   `json:"ok"`
	Offline bool   `json:"offline"`
	Weeks   []Week `json:"weeks"`
	Raw     string `json:"raw"`
}

// Advisor answers project questions. Implementations never fail; they fall
// back to offline answers instead.
type Advisor interface {
	AnalyzeProject(ctx context.Context, p Project) Insight
	WeeklySchedule(ctx context.Context, p Project) Schedule
}

// Generator sends a prompt to a model and returns its text.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Config configures the model client and the service around it.
type Config struct {
	Enabled  bool
	URL      string
	Model    string
	Timeout  time.Duration
	Retries  int
	CacheTTL time.Duration
}

// DefaultConfig targets a local Ollama server.
func DefaultConfig() Config {
	return Config{
		Enabled:  true,
		URL:      "http://localhost:11434",
		Model:    "granite:3.3-2b",
		Timeout:  30 * time.Second,
		Retries:  2,
		CacheTTL: 6 * time.Hour,
	}
}
