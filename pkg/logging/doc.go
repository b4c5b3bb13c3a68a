// Package logging provides structured logging configuration for restapi.
//
// It wraps log/slog so the adapter, the mock resource server and the CLI
// share one way of building loggers:
//
//	logger := logging.New(logging.Config{
//	    Level:     logging.LevelDebug,
//	    Format:    logging.FormatJSON,
//	    Component: "mockapi",
//	})
//
//	logger.Info("listening", "addr", ":3000")
//
// Components accept a *slog.Logger in their constructor or through an
// option. A nil logger means logging is disabled; use OrNop to normalise it.
package logging
