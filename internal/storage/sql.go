package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
)

// isoDate is the canonical storage format for calendar dates. Dates carry no
// time component; the text form sorts and compares correctly in SQL.
const isoDate = "2006-01-02"

type SQLProvider struct {
	db *sqlx.DB

	// Serializes read-modify-write sequences per availability or
	// confirmation key. Operations on distinct keys never contend.
	keys *keyedMutex

	logger *slog.Logger
}

func NewSQLProvider(driverName string, dataSource string) (provider *SQLProvider) {
	db, err := sqlx.Open(driverName, dataSource)
	if err != nil {
		return nil
	}

	logger := slog.With("component", "storage")

	return &SQLProvider{
		db:     db,
		keys:   newKeyedMutex(),
		logger: logger,
	}
}

func (p *SQLProvider) Close() error {
	if p.db != nil {
		return p.db.Close()
	}
	return nil
}

func (p *SQLProvider) SchemaVersion(ctx context.Context) (int, error) {
	var version int
	if err := p.db.GetContext(ctx, &version, "PRAGMA user_version"); err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return version, nil
}

// checkDate guards against date values outside the representable range.
func checkDate(d time.Time) error {
	if d.Year() < 1 || d.Year() > 9999 {
		return ErrDateOutOfRange
	}
	return nil
}
