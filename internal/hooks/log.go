package hooks

import (
	"context"
	"log/slog"
	"time"
)

// LoggingHook writes an audit line for every confirm/unconfirm event.
type LoggingHook struct {
	logger *slog.Logger
}

func NewLoggingHook() *LoggingHook {
	return &LoggingHook{logger: slog.With("component", "hooks")}
}

func (h *LoggingHook) Name() string { return "logging" }

func (h *LoggingHook) OnConfirm(_ context.Context, date time.Time, description string, confirmedBy string) error {
	h.logger.Info("Date confirmed", "date", date.Format("2006-01-02"), "description", description, "confirmed_by", confirmedBy)
	return nil
}

func (h *LoggingHook) OnUnconfirm(_ context.Context, date time.Time) error {
	h.logger.Info("Date unconfirmed", "date", date.Format("2006-01-02"))
	return nil
}
