// Package config loads planner configuration from environment variables.
//
// Every setting has a default, so the server starts with no environment at
// all. Command-line flags on cmd/server override the loaded values.
//
//	PORT, HOST, SHUTDOWN_TIMEOUT, MAX_BODY_BYTES
//	AI_ENABLED, AI_URL, AI_MODEL, AI_TIMEOUT
//	CACHE_REDIS_ADDR, CACHE_REDIS_PASSWORD, CACHE_REDIS_DB, CACHE_TTL
//	ESTIMATE_LOCATION, ESTIMATE_RATES_FILE
//	LOG_LEVEL, LOG_DEV
//	RATE_LIMIT_RPS, RATE_LIMIT_BURST, RATE_LIMIT_ENABLED
package config
