/*
Package monitoring exposes Prometheus metrics for the planner.

HTTP traffic is measured by a gin middleware. Domain code records plans,
estimates, exports and language model calls, including cache hits, offline
fallbacks and the circuit breaker position.

	metrics := monitoring.NewMetrics()
	router.Use(monitoring.Middleware(metrics))
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	timer := monitoring.NewTimer(metrics, "insights")
	// ... call the model ...
	timer.Stop("success")
*/
package monitoring
