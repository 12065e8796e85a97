// Package logging provides structured logging for the CDU bridge.
//
// This package wraps a global zap logger with convenience functions used
// throughout the bridge, plus a few domain helpers for frames, buttons and
// connection events.
//
// # Log Levels
//
//   - Debug: every frame sent, every button pressed, telemetry read failures
//   - Info: connections, loaded flight plans, error overlay changes
//   - Warn: display dial retries, unparseable plan files
//   - Error: transport failures that end a session
//
// # Configuration
//
// Logging is silent unless a level is passed to Initialize or set in
// CDUBRIDGE_LOG_LEVEL:
//
//	if err := logging.Initialize("debug"); err != nil {
//	    return err
//	}
//	defer logging.Sync()
//
// The terminal preview uses InitializeTo with a file path so log output
// does not interleave with the rendered screen.
package logging
