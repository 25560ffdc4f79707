// Package logger builds configured slog.Logger instances and provides
// attribute helpers for consistent structured log keys across services.
package logger
