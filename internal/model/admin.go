package model

import (
	"time"
)

type Admin struct {
	ID            string     `db:"id" json:"id"`
	Username      string     `db:"username" json:"username"`
	Email         string     `db:"email" json:"email"`
	PasswordHash  string     `db:"password_hash" json:"-"`
	IsSuperAdmin  bool       `db:"is_super_admin" json:"isSuperAdmin"`
	IsApproved    bool       `db:"is_approved" json:"isApproved"`
	ApprovedBy    *string    `db:"approved_by" json:"approvedBy,omitempty"`
	SessionID     *string    `db:"session_id" json:"-"`
	SessionExpiry *time.Time `db:"session_expiry" json:"-"`
	CreatedAt     time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time  `db:"updated_at" json:"updatedAt"`
}

// State derives the authorization tier from the stored role flags.
func (a *Admin) State() AuthState {
	switch {
	case a.IsSuperAdmin:
		return AuthStateSuperAdmin
	case a.IsApproved:
		return AuthStateApproved
	default:
		return AuthStateUnapproved
	}
}

// SessionExpired reports whether the admin's session expiry is set and
// lies before now.
func (a *Admin) SessionExpired(now time.Time) bool {
	return a.SessionExpiry != nil && now.After(*a.SessionExpiry)
}

// HoldsSession reports whether tokenID names the admin's current session.
// A logged-out admin holds none.
func (a *Admin) HoldsSession(tokenID string) bool {
	return a.SessionID != nil && tokenID != "" && *a.SessionID == tokenID
}

type CreateAdminParams struct {
	Username     string
	Email        string
	PasswordHash string
	IsSuperAdmin bool
	IsApproved   bool
}
