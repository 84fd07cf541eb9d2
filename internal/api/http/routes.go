package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the planner API on r.
func RegisterRoutes(r gin.IRouter, h *Handlers) {
	r.GET("/", h.Root)
	r.GET("/health", h.Health)

	api := r.Group("/api")
	api.POST("/calculate", h.Calculate)
	api.POST("/plan", h.LegacyPlan)
	api.POST("/blueprint", h.Blueprint)
	api.POST("/blueprint/svg", h.BlueprintSVG)
	api.POST("/estimate/export", h.ExportEstimate)

	if h.opts.Metrics != nil {
		r.GET("/metrics", gin.WrapH(h.opts.Metrics.Handler()))
	}
}
