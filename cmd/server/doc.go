// Package main is the entry point for the BuildPlanner HTTP server.
//
// The server turns a plot size and floor count into a material and labour
// estimate, a room-level floor plan and optional language-model advice.
//
// Configuration:
//   - Environment variables (see internal/infrastructure/config)
//   - CLI flags (override env vars)
//
// Usage:
//
//	# Production mode
//	./server -port 8000 -ai-url http://localhost:11434
//
//	# Offline advice, debug logging
//	./server -no-ai -dev
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown
package main
