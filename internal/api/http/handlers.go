package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/BuildPlanner/backend/internal/api/middleware"
	"github.com/GriffinCanCode/BuildPlanner/backend/internal/domain/planner"
	"github.com/GriffinCanCode/BuildPlanner/backend/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/BuildPlanner/backend/internal/infrastructure/resilience"
	"github.com/GriffinCanCode/BuildPlanner/backend/internal/render/svg"
	"github.com/GriffinCanCode/BuildPlanner/backend/internal/report"
	"github.com/GriffinCanCode/BuildPlanner/backend/internal/shared/id"
)

const (
	serviceName = "BuildPlanner"
	version     = "1.0.0"
)

// Options carries the optional collaborators of Handlers.
type Options struct {
	Logger    *zap.Logger
	Metrics   *monitoring.Metrics
	Breaker   *resilience.Breaker
	AIEnabled bool
	AIModel   string
	Cache     string
}

// Handlers contains all HTTP handlers
type Handlers struct {
	planner *planner.Service
	opts    Options
	logger  *zap.Logger
}

// NewHandlers creates a new handler set
func NewHandlers(svc *planner.Service, opts Options) *Handlers {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handlers{planner: svc, opts: opts, logger: logger}
}

// Root reports the service banner.
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "online",
		"service": serviceName,
		"version": version,
	})
}

// Health handles detailed health check
func (h *Handlers) Health(c *gin.Context) {
	ai := gin.H{
		"enabled": h.opts.AIEnabled,
		"model":   h.opts.AIModel,
	}
	if h.opts.Breaker != nil {
		ai["breaker"] = h.opts.Breaker.State().String()
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"ai":     ai,
		"cache":  h.opts.Cache,
		"rates":  h.planner.Calculator().Rates(),
	})
}

// Calculate produces a full plan with advisory text.
func (h *Handlers) Calculate(c *gin.Context) {
	var req CalculateRequest
	if !h.bind(c, "calculate", &req) {
		return
	}
	h.plan(c, "calculate", req.toPlan())
}

// LegacyPlan accepts the original {area, floors, timeline} body.
func (h *Handlers) LegacyPlan(c *gin.Context) {
	var req LegacyPlanRequest
	if !h.bind(c, "plan", &req) {
		return
	}
	if !(req.Area > 0) {
		h.rejectf(c, "plan", "Invalid area provided")
		return
	}
	h.plan(c, "plan", req.toPlan())
}

func (h *Handlers) plan(c *gin.Context, endpoint string, req planner.Request) {
	result, err := h.planner.Plan(c.Request.Context(), req)
	if err != nil {
		h.fail(c, endpoint, err)
		return
	}
	c.JSON(http.StatusOK, newPlanResponse(result))
}

// Blueprint packs the floors without consulting the advisor.
func (h *Handlers) Blueprint(c *gin.Context) {
	var req CalculateRequest
	if !h.bind(c, "blueprint", &req) {
		return
	}

	floors, err := h.planner.Blueprint(req.toPlan())
	if err != nil {
		h.fail(c, "blueprint", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"blueprint": floors})
}

// BlueprintSVG renders one floor, selected by the zero-based floor query
// parameter, as an SVG download.
func (h *Handlers) BlueprintSVG(c *gin.Context) {
	index, err := strconv.Atoi(c.DefaultQuery("floor", "0"))
	if err != nil || index < 0 {
		h.rejectf(c, "blueprint_svg", "floor must be a non-negative integer")
		return
	}

	var req CalculateRequest
	if !h.bind(c, "blueprint_svg", &req) {
		return
	}
	plan := req.toPlan()
	plan.SingleImage = false

	floors, err := h.planner.Blueprint(plan)
	if err != nil {
		h.fail(c, "blueprint_svg", err)
		return
	}
	if index >= len(floors) {
		h.rejectf(c, "blueprint_svg", "floor %d out of range: building has %d floors", index, len(floors))
		return
	}

	floor := floors[index]
	if h.opts.Metrics != nil {
		h.opts.Metrics.RecordExport("svg")
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, svg.Filename(floor.Floor)))
	c.Data(http.StatusOK, svg.ContentType, svg.Render(floor))
}

// ExportEstimate renders the estimate and blueprint as an Excel workbook.
func (h *Handlers) ExportEstimate(c *gin.Context) {
	var req CalculateRequest
	if !h.bind(c, "export", &req) {
		return
	}
	plan := req.toPlan()

	est, err := h.planner.Estimate(plan)
	if err != nil {
		h.fail(c, "export", err)
		return
	}
	floors, err := h.planner.Blueprint(plan)
	if err != nil {
		h.fail(c, "export", err)
		return
	}

	data, err := report.Workbook(est, floors)
	if err != nil {
		h.fail(c, "export", err)
		return
	}

	if h.opts.Metrics != nil {
		h.opts.Metrics.RecordExport("xlsx")
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.xlsx"`, id.NewEstimateID()))
	c.Data(http.StatusOK, report.ContentType, data)
}

// bind decodes the JSON body into v, answering 400 or 413 on failure.
func (h *Handlers) bind(c *gin.Context, endpoint string, v any) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		if middleware.IsBodyTooLarge(err) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "request body too large"})
			return false
		}
		h.rejectf(c, endpoint, "Invalid request: %s", err.Error())
		return false
	}
	return true
}

func (h *Handlers) rejectf(c *gin.Context, endpoint, format string, args ...any) {
	if h.opts.Metrics != nil {
		h.opts.Metrics.RecordValidationFailure(endpoint)
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf(format, args...)})
}

func (h *Handlers) fail(c *gin.Context, endpoint string, err error) {
	if errors.Is(err, planner.ErrInvalidRequest) {
		h.rejectf(c, endpoint, "%s", err.Error())
		return
	}
	_ = c.Error(err)
	h.logger.Error("request failed", zap.String("endpoint", endpoint), zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}
