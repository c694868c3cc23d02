// Package hooks runs post-action notifications after a date is confirmed or
// unconfirmed. Hooks are fire-and-forget: a failing or panicking hook is
// logged and never rolls back the confirmation or fails the request.
package hooks

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Hook is the capability invoked after each successful confirm/unconfirm.
type Hook interface {
	Name() string
	OnConfirm(ctx context.Context, date time.Time, description string, confirmedBy string) error
	OnUnconfirm(ctx context.Context, date time.Time) error
}

// Registry holds an ordered list of hooks and runs them with per-hook error
// isolation.
type Registry struct {
	hooks  []Hook
	logger *slog.Logger
}

func NewRegistry(hooks ...Hook) *Registry {
	return &Registry{
		hooks:  hooks,
		logger: slog.With("component", "hooks"),
	}
}

func (r *Registry) Register(h Hook) {
	r.hooks = append(r.hooks, h)
}

// RunConfirm invokes every hook in registration order.
func (r *Registry) RunConfirm(ctx context.Context, date time.Time, description string, confirmedBy string) {
	for _, h := range r.hooks {
		if err := r.run(h, func() error {
			return h.OnConfirm(ctx, date, description, confirmedBy)
		}); err != nil {
			r.logger.Error("Confirm hook failed", "hook", h.Name(), "date", date.Format("2006-01-02"), "error", err)
		}
	}
}

// RunUnconfirm invokes every hook in registration order.
func (r *Registry) RunUnconfirm(ctx context.Context, date time.Time) {
	for _, h := range r.hooks {
		if err := r.run(h, func() error {
			return h.OnUnconfirm(ctx, date)
		}); err != nil {
			r.logger.Error("Unconfirm hook failed", "hook", h.Name(), "date", date.Format("2006-01-02"), "error", err)
		}
	}
}

// run converts a hook panic into an error so one misbehaving hook cannot
// take down the request or skip the hooks after it.
func (r *Registry) run(h Hook, fn func() error) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("hook %s panicked: %v", h.Name(), p)
		}
	}()
	return fn()
}
