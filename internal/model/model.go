// Package model holds the shared domain types passed between storage,
// aggregation, broadcast and the HTTP layer.
package model

import "time"

// Status of a single availability entry. An absent entry means the user has
// expressed no opinion for that date; there is no explicit "unavailable".
type Status string

const (
	StatusAvailable Status = "available"
	StatusTentative Status = "tentative"
)

// User is the identity the core consumes. Credentials are handled at the
// auth boundary only.
type User struct {
	ID           int64     `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	DisplayName  string    `db:"display_name" json:"display_name"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"-"`
}

// Name returns the display name, falling back to the username.
func (u User) Name() string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return u.Username
}

// Participant is one user's availability entry for one date, joined with the
// user's display name.
type Participant struct {
	Date     string `db:"date" json:"-"`
	UserID   int64  `db:"user_id" json:"user_id"`
	Username string `db:"username" json:"username"`
	Status   Status `db:"status" json:"status"`
}

// DateView is the derived per-date aggregate. It is recomputed fresh on
// every read and never stored.
type DateView struct {
	Availability []Participant `json:"availability"`
	HasStar      bool          `json:"has_star"`
}

// ConfirmedDate is the per-date confirmation record. At most one exists per
// date. CreatedAt is set on first confirmation and survives re-confirms.
type ConfirmedDate struct {
	Date        string    `json:"date"`
	Description string    `json:"description"`
	ConfirmedBy string    `json:"confirmed_by,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
