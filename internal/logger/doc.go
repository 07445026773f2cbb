// Package logger provides structured logging functionality for the qualitube project.
//
// Features:
//   - Multiple log levels (TRACE, DEBUG, INFO, WARN, ERROR)
//   - Component-based filtering
//   - Multiple output formats (text, JSON, color)
//   - Thread-safe operations
//   - Configuration from JSON/YAML files and QUALITUBE_LOG_* variables
//
// Usage:
//
//	// Get a component logger
//	log := logger.WithComponent(logger.ComponentDataAPI)
//
//	// Log messages with different levels
//	log.Debug("Batch done", map[string]interface{}{
//		"batch": 1,
//		"items": 50,
//	})
//
//	// Configure global logger
//	config := logger.DefaultConfig()
//	config.Level = logger.DEBUG
//	config.Format = logger.FormatJSON
//	logger.SetGlobalLogger(logger.New(config))
//
// Components:
//   - ComponentApp: command line tool logs
//   - ComponentClient: HTTP client logs
//   - ComponentDataAPI: videos.list requests and batching
//   - ComponentFilter: row filter evaluation
package logger
