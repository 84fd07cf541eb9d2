package advisor

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/BuildPlanner/backend/internal/infrastructure/cache"
	"github.com/GriffinCanCode/BuildPlanner/backend/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/BuildPlanner/backend/internal/infrastructure/resilience"
	"github.com/GriffinCanCode/BuildPlanner/backend/internal/infrastructure/tracing"
)

const (
	opInsights = "insights"
	opSchedule = "schedule"

	cachePrefix = "advisor"
)

// Service answers project questions through a Generator, falling back to
// offline answers on any failure.
type Service struct {
	cfg       Config
	generator Generator
	cache     cache.Cache
	logger    *zap.Logger
	metrics   *monitoring.Metrics
	tracer    *tracing.Tracer
}

// Option customises a Service.
type Option func(*Service)

// WithGenerator replaces the HTTP client built from the config.
func WithGenerator(g Generator) Option {
	return func(s *Service) { s.generator = g }
}

// WithCache stores model answers in c.
func WithCache(c cache.Cache) Option {
	return func(s *Service) { s.cache = c }
}

func WithLogger(l *zap.Logger) Option {
	return func(s *Service) { s.logger = l }
}

func WithMetrics(m *monitoring.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func WithTracer(t *tracing.Tracer) Option {
	return func(s *Service) { s.tracer = t }
}

// NewService builds a service for cfg. Without WithGenerator an HTTP Client
// with a default breaker is used.
func NewService(cfg Config, opts ...Option) *Service {
	s := &Service{
		cfg:    cfg,
		cache:  cache.NewNullCache(),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.generator == nil {
		s.generator = NewClient(cfg, nil)
	}
	return s
}

// AnalyzeProject asks the model for insights on p.
func (s *Service) AnalyzeProject(ctx context.Context, p Project) Insight {
	raw, err := s.generate(ctx, opInsights, insightPrompt(p))
	if err != nil {
		s.fallback(opInsights, err)
		return OfflineInsight(p)
	}

	return Insight{
		OK:       true,
		Insights: parseInsights(raw),
		Raw:      stripHTML(raw),
	}
}

// WeeklySchedule asks the model for a week-by-week plan for p.
func (s *Service) WeeklySchedule(ctx context.Context, p Project) Schedule {
	raw, err := s.generate(ctx, opSchedule, schedulePrompt(p))
	if err != nil {
		s.fallback(opSchedule, err)
		return OfflineSchedule(p)
	}

	return Schedule{
		OK:    true,
		Weeks: parseSchedule(raw),
		Raw:   stripHTML(raw),
	}
}

func (s *Service) generate(ctx context.Context, op, prompt string) (string, error) {
	if !s.cfg.Enabled {
		return "", ErrDisabled
	}

	key := cache.Key(cachePrefix, s.cfg.Model, prompt)
	data, hit, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Warn("advisor cache read failed", zap.String("operation", op), zap.Error(err))
	}
	if s.metrics != nil && err == nil {
		s.metrics.RecordAdvisorCache(hit)
	}
	if hit {
		return string(data), nil
	}

	var span *tracing.Span
	if s.tracer != nil {
		span, ctx = s.tracer.StartSpan(ctx, "advisor."+op)
		span.SetTag("model", s.cfg.Model)
		defer func() {
			span.Finish()
			s.tracer.Submit(span)
		}()
	}

	timer := monitoring.NewTimer(s.metrics, op)
	raw, err := s.generator.Generate(ctx, prompt)
	if err == nil && strings.TrimSpace(raw) == "" {
		err = ErrEmptyResponse
	}
	if err != nil {
		timer.Stop("error")
		if span != nil {
			span.SetError(err)
		}
		return "", err
	}
	elapsed := timer.Stop("success")

	s.logger.Debug("advisor answered",
		zap.String("operation", op),
		zap.Duration("elapsed", elapsed),
		zap.Int("bytes", len(raw)),
	)

	if err := s.cache.Set(ctx, key, []byte(raw), s.cfg.CacheTTL); err != nil {
		s.logger.Warn("advisor cache write failed", zap.String("operation", op), zap.Error(err))
	}
	return raw, nil
}

func (s *Service) fallback(op string, err error) {
	reason := fallbackReason(err)
	if s.metrics != nil {
		s.metrics.RecordAdvisorFallback(op, reason)
	}
	if errors.Is(err, ErrDisabled) {
		return
	}
	s.logger.Warn("advisor offline, using rule-based answer",
		zap.String("operation", op),
		zap.String("reason", reason),
		zap.Error(err),
	)
}

func fallbackReason(err error) string {
	switch {
	case errors.Is(err, ErrDisabled):
		return "disabled"
	case errors.Is(err, resilience.ErrCircuitOpen), errors.Is(err, resilience.ErrTooManyRequests):
		return "breaker_open"
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return "timeout"
	case errors.Is(err, ErrStatus):
		return "bad_status"
	case errors.Is(err, ErrMalformed):
		return "malformed"
	case errors.Is(err, ErrEmptyResponse):
		return "empty"
	default:
		return "unreachable"
	}
}
