package hooks

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/Binaergewitter/datefinder/internal/ical"
	"github.com/Binaergewitter/datefinder/internal/model"
)

// ConfirmationLister is the slice of the storage provider the export hook
// needs.
type ConfirmationLister interface {
	ListConfirmationsFrom(ctx context.Context, date time.Time) ([]model.ConfirmedDate, error)
}

// ICalExportHook rewrites the calendar feed file whenever the confirmed
// date set changes. Export covers all confirmed dates, past ones included.
type ICalExportHook struct {
	store    ConfirmationLister
	renderer *ical.Renderer
	path     string
	logger   *slog.Logger
}

func NewICalExportHook(store ConfirmationLister, renderer *ical.Renderer, path string) *ICalExportHook {
	return &ICalExportHook{
		store:    store,
		renderer: renderer,
		path:     path,
		logger:   slog.With("component", "ical-export"),
	}
}

func (h *ICalExportHook) Name() string { return "ical-export" }

func (h *ICalExportHook) OnConfirm(ctx context.Context, _ time.Time, _ string, _ string) error {
	return h.Export(ctx)
}

func (h *ICalExportHook) OnUnconfirm(ctx context.Context, _ time.Time) error {
	return h.Export(ctx)
}

// Export regenerates and writes the feed file. Also called once at startup
// so the file exists before the first confirmation.
func (h *ICalExportHook) Export(ctx context.Context) error {
	confirmed, err := h.store.ListConfirmationsFrom(ctx, time.Time{})
	if err != nil {
		return fmt.Errorf("failed to load confirmed dates: %w", err)
	}

	content, err := h.renderer.Render(confirmed)
	if err != nil {
		return fmt.Errorf("failed to render feed: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(h.path), 0o755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}

	if err := os.WriteFile(h.path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write feed file: %w", err)
	}

	h.logger.Debug("Calendar feed written", "path", h.path, "events", len(confirmed))
	return nil
}
