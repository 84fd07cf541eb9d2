/*
Package http exposes the planner over a JSON API.

Routes:

	GET  /                     service banner
	GET  /health               AI, cache and rate table status
	POST /api/calculate        full plan: estimate, blueprint, insights, schedule
	POST /api/plan             same, for {area, floors, timeline} bodies
	POST /api/blueprint        blueprint only
	POST /api/blueprint/svg    one floor as SVG (?floor=N, zero-based)
	POST /api/estimate/export  estimate and rooms as an .xlsx workbook
	GET  /metrics              Prometheus exposition

Validation failures answer 400 with {"error": "..."}; oversized bodies 413.
*/
package http
