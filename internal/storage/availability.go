package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Binaergewitter/datefinder/internal/model"
)

// ToggleAvailability advances the user's entry for a date through the cycle
// Absent -> Available -> Tentative -> Absent. The returned status is nil when
// the entry was removed.
//
// The keyed mutex makes the read-modify-write atomic per (user, date): two
// racing toggles can never both observe "no entry", and the unique index on
// (user_id, date) backs the same invariant in the schema.
func (p *SQLProvider) ToggleAvailability(ctx context.Context, userID int64, date time.Time) (*model.Status, error) {
	if err := checkDate(date); err != nil {
		return nil, err
	}

	day := date.Format(isoDate)
	unlock := p.keys.Lock(fmt.Sprintf("avail/%d/%s", userID, day))
	defer unlock()

	tx, err := p.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin toggle transaction: %w", err)
	}
	defer tx.Rollback()

	var current model.Status
	err = tx.GetContext(ctx, &current,
		"SELECT status FROM availability WHERE user_id = ? AND date = ?", userID, day)

	now := time.Now().UTC()
	var next *model.Status

	switch {
	case errors.Is(err, sql.ErrNoRows):
		_, err = tx.ExecContext(ctx,
			"INSERT INTO availability (user_id, date, status, created_at, updated_at) VALUES (?, ?, ?, ?, ?)",
			userID, day, model.StatusAvailable, now, now)
		status := model.StatusAvailable
		next = &status

	case err != nil:
		return nil, fmt.Errorf("failed to read availability: %w", err)

	case current == model.StatusAvailable:
		_, err = tx.ExecContext(ctx,
			"UPDATE availability SET status = ?, updated_at = ? WHERE user_id = ? AND date = ?",
			model.StatusTentative, now, userID, day)
		status := model.StatusTentative
		next = &status

	default:
		_, err = tx.ExecContext(ctx,
			"DELETE FROM availability WHERE user_id = ? AND date = ?", userID, day)
		next = nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to toggle availability: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit toggle: %w", err)
	}

	return next, nil
}

// CountForDate counts entries of any status for a date.
func (p *SQLProvider) CountForDate(ctx context.Context, date time.Time) (int, error) {
	if err := checkDate(date); err != nil {
		return 0, err
	}

	var count int
	err := p.db.GetContext(ctx, &count,
		"SELECT COUNT(*) FROM availability WHERE date = ?", date.Format(isoDate))
	if err != nil {
		return 0, fmt.Errorf("failed to count availability: %w", err)
	}
	return count, nil
}

// ListForDate returns the entries for a date joined with display names, in
// insertion order.
func (p *SQLProvider) ListForDate(ctx context.Context, date time.Time) ([]model.Participant, error) {
	if err := checkDate(date); err != nil {
		return nil, err
	}

	participants := []model.Participant{}
	err := p.db.SelectContext(ctx, &participants, `
		SELECT a.date, a.user_id, COALESCE(NULLIF(u.display_name, ''), u.username) AS username, a.status
		FROM availability a
		JOIN users u ON u.id = a.user_id
		WHERE a.date = ?
		ORDER BY a.id`, date.Format(isoDate))
	if err != nil {
		return nil, fmt.Errorf("failed to list availability: %w", err)
	}
	return participants, nil
}

// ListParticipantsInRange returns all entries with from <= date <= to,
// ordered by date then insertion order. Dates with no entries simply do not
// appear.
func (p *SQLProvider) ListParticipantsInRange(ctx context.Context, from, to time.Time) ([]model.Participant, error) {
	if err := checkDate(from); err != nil {
		return nil, err
	}
	if err := checkDate(to); err != nil {
		return nil, err
	}

	participants := []model.Participant{}
	err := p.db.SelectContext(ctx, &participants, `
		SELECT a.date, a.user_id, COALESCE(NULLIF(u.display_name, ''), u.username) AS username, a.status
		FROM availability a
		JOIN users u ON u.id = a.user_id
		WHERE a.date >= ? AND a.date <= ?
		ORDER BY a.date, a.id`, from.Format(isoDate), to.Format(isoDate))
	if err != nil {
		return nil, fmt.Errorf("failed to list availability range: %w", err)
	}
	return participants, nil
}
