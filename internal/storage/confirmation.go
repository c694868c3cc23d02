package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Binaergewitter/datefinder/internal/model"
)

type confirmationRow struct {
	Date        string         `db:"date"`
	Description string         `db:"description"`
	ConfirmedBy sql.NullInt64  `db:"confirmed_by"`
	Confirmer   sql.NullString `db:"confirmer"`
	CreatedAt   time.Time      `db:"created_at"`
}

func (r confirmationRow) toModel() model.ConfirmedDate {
	return model.ConfirmedDate{
		Date:        r.Date,
		Description: r.Description,
		ConfirmedBy: r.Confirmer.String,
		CreatedAt:   r.CreatedAt,
	}
}

const selectConfirmation = `
	SELECT c.date, c.description, c.confirmed_by,
	       COALESCE(NULLIF(u.display_name, ''), u.username) AS confirmer,
	       c.created_at
	FROM confirmed_dates c
	LEFT JOIN users u ON u.id = c.confirmed_by`

// Confirm upserts the confirmation record for a date. The first confirm sets
// created_at; re-confirming overwrites description and confirmed_by but
// keeps created_at untouched. Returns whether a new record was created.
//
// Precondition checks (past date, quorum) are the service's job so that no
// partial writes can happen here.
func (p *SQLProvider) Confirm(ctx context.Context, date time.Time, description string, confirmedBy int64) (bool, error) {
	if err := checkDate(date); err != nil {
		return false, err
	}

	day := date.Format(isoDate)
	unlock := p.keys.Lock("confirm/" + day)
	defer unlock()

	var exists bool
	err := p.db.GetContext(ctx, &exists,
		"SELECT EXISTS(SELECT 1 FROM confirmed_dates WHERE date = ?)", day)
	if err != nil {
		return false, fmt.Errorf("failed to check confirmation: %w", err)
	}

	if exists {
		_, err = p.db.ExecContext(ctx,
			"UPDATE confirmed_dates SET description = ?, confirmed_by = ? WHERE date = ?",
			description, confirmedBy, day)
	} else {
		_, err = p.db.ExecContext(ctx,
			"INSERT INTO confirmed_dates (date, description, confirmed_by, created_at) VALUES (?, ?, ?, ?)",
			day, description, confirmedBy, time.Now().UTC())
	}
	if err != nil {
		return false, fmt.Errorf("failed to confirm date: %w", err)
	}

	return !exists, nil
}

// Unconfirm removes the confirmation record for a date. Removing a date that
// was never confirmed is not an error; removed is false in that case.
func (p *SQLProvider) Unconfirm(ctx context.Context, date time.Time) (bool, error) {
	if err := checkDate(date); err != nil {
		return false, err
	}

	day := date.Format(isoDate)
	unlock := p.keys.Lock("confirm/" + day)
	defer unlock()

	res, err := p.db.ExecContext(ctx, "DELETE FROM confirmed_dates WHERE date = ?", day)
	if err != nil {
		return false, fmt.Errorf("failed to unconfirm date: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read unconfirm result: %w", err)
	}
	return affected > 0, nil
}

// GetConfirmation returns the confirmation for a date, or nil when the date
// is not confirmed.
func (p *SQLProvider) GetConfirmation(ctx context.Context, date time.Time) (*model.ConfirmedDate, error) {
	if err := checkDate(date); err != nil {
		return nil, err
	}

	var row confirmationRow
	err := p.db.GetContext(ctx, &row, selectConfirmation+" WHERE c.date = ?", date.Format(isoDate))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get confirmation: %w", err)
	}

	confirmed := row.toModel()
	return &confirmed, nil
}

// ListConfirmationsFrom returns confirmations with date >= the given date,
// ascending by date.
func (p *SQLProvider) ListConfirmationsFrom(ctx context.Context, date time.Time) ([]model.ConfirmedDate, error) {
	if err := checkDate(date); err != nil {
		return nil, err
	}

	rows := []confirmationRow{}
	err := p.db.SelectContext(ctx, &rows, selectConfirmation+" WHERE c.date >= ? ORDER BY c.date", date.Format(isoDate))
	if err != nil {
		return nil, fmt.Errorf("failed to list confirmations: %w", err)
	}

	confirmed := make([]model.ConfirmedDate, 0, len(rows))
	for _, row := range rows {
		confirmed = append(confirmed, row.toModel())
	}
	return confirmed, nil
}
