// Package logging provides structured logging for the CCU sync service.
//
// This package wraps Go's standard log/slog package so every component logs
// with the same handler, level filter and default fields (service, version).
//
// # Configuration
//
//	logging:
//	  level: "info"      # debug, info, warn, error
//	  format: "json"     # json, text
//	  output: "stdout"   # stdout, stderr
//
// # Usage
//
//	logger := logging.New(cfg.Logging, "1.0.0")
//	logger.Info("central started", "name", "ccu")
//	logger.Error("cache load failed", "error", err)
//
// # Security
//
// Never log the CCU password or a session id. The jsonrpc package logs
// method names and endpoints only.
package logging
