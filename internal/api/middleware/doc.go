// Package middleware holds the gin middleware shared by the HTTP API:
// request IDs, access logging, CORS, per-client rate limiting and request
// body limits.
package middleware
