// Package logger provides structured logging for meetverdict using zerolog.
//
// Loggers are created from a Config (level, json or console format, output
// stream) and scoped with WithComponent / WithFields. A process-wide logger
// is installed by Init and backs the package-level helpers.
//
//	logger:
//	  level: "debug"
//	  format: "json"
//
//	log := logger.WithComponent("poller")
//	log.Info("tick", logger.Fields(logger.FieldBotID, id, logger.FieldState, st))
package logger
