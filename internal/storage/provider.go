package storage

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/Binaergewitter/datefinder/internal/config"
	"github.com/Binaergewitter/datefinder/internal/model"
)

// ErrDateOutOfRange is returned for date values the store cannot represent.
// Date parsing happens at the HTTP boundary; this is the store's own guard.
var ErrDateOutOfRange = errors.New("date out of range")

type Provider interface {
	Close() error
	SchemaVersion(ctx context.Context) (int, error)

	// Availability methods. Toggle owns the three-state cycle
	// Absent -> Available -> Tentative -> Absent and is atomic per
	// (user, date) key. It returns nil when the entry was removed.
	ToggleAvailability(ctx context.Context, userID int64, date time.Time) (*model.Status, error)
	CountForDate(ctx context.Context, date time.Time) (int, error)
	ListForDate(ctx context.Context, date time.Time) ([]model.Participant, error)
	ListParticipantsInRange(ctx context.Context, from, to time.Time) ([]model.Participant, error)

	// Confirmation methods. Confirm upserts by date and preserves the
	// original created_at across re-confirms. Unconfirm is idempotent.
	Confirm(ctx context.Context, date time.Time, description string, confirmedBy int64) (created bool, err error)
	Unconfirm(ctx context.Context, date time.Time) (removed bool, err error)
	GetConfirmation(ctx context.Context, date time.Time) (*model.ConfirmedDate, error)
	ListConfirmationsFrom(ctx context.Context, date time.Time) ([]model.ConfirmedDate, error)

	// User methods for the identity boundary.
	CreateUser(ctx context.Context, user model.User) (int64, error)
	GetUser(ctx context.Context, id int64) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
}

func NewProvider(config *config.Storage) Provider {
	switch {
	case config.SQLite != nil:
		provider := NewSQLiteProvider(config)
		if provider == nil {
			return nil
		}
		if err := provider.runMigrations("sqlite3"); err != nil {
			slog.Error("Failed to run migrations", "error", err)
			return nil
		}
		return provider

	default:
		slog.Error("Unsupported storage configuration", "config", config)
	}

	return nil
}
