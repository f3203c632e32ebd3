// Package extensions provides ready-made extensions for reactive graphs:
// structured logging of root operations and dependency-tree rendering on
// errors.
package extensions

import (
	"context"
	"log/slog"
	"time"

	reactive "github.com/reactive-fn/reactive-go"
)

// LoggingExtension logs every root operation with its wave id and duration.
//
// Usage:
//
//	handler := slog.NewJSONHandler(os.Stdout, nil)
//	g := reactive.New(reactive.WithExtension(extensions.NewLoggingExtension(handler)))
//
// Completed operations log at DEBUG, failures at ERROR.
type LoggingExtension struct {
	reactive.BaseExtension
	logger *slog.Logger
}

// NewLoggingExtension creates a logging extension writing through handler.
// A nil handler falls back to slog.Default().
func NewLoggingExtension(handler slog.Handler) *LoggingExtension {
	logger := slog.Default()
	if handler != nil {
		logger = slog.New(handler)
	}
	return &LoggingExtension{
		BaseExtension: reactive.NewBaseExtension("logging"),
		logger:        logger,
	}
}

func (e *LoggingExtension) Wrap(next func() (any, error), op *reactive.Operation) (any, error) {
	start := time.Now()
	result, err := next()

	attrs := []any{
		"op", string(op.Kind),
		"node", op.Node.Name(),
		"wave", op.Wave,
		"duration", time.Since(start),
	}
	if err != nil {
		e.logger.Error("operation failed", append(attrs, "error", err.Error())...)
	} else {
		e.logger.Debug("operation completed", attrs...)
	}
	return result, err
}

// SilentHandler returns a handler that discards everything, for tests.
func SilentHandler() slog.Handler {
	return silentHandler{}
}

type silentHandler struct{}

func (silentHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (silentHandler) Handle(context.Context, slog.Record) error { return nil }
func (h silentHandler) WithAttrs([]slog.Attr) slog.Handler      { return h }
func (h silentHandler) WithGroup(string) slog.Handler           { return h }
