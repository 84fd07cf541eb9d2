// Package logging builds the zap loggers used across the planner.
//
// Production mode writes JSON for log shippers; development mode writes
// coloured console lines. Components take a *zap.Logger and attach
// structured fields rather than formatting messages.
//
//	logger := logging.NewFromSettings(cfg.Logging.Level, cfg.Logging.Development)
//	logger.Info("server starting", zap.String("addr", addr))
package logging
