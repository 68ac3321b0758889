package model

import "time"

// AuthState is the ordered authorization tier of an admin.
type AuthState int

const (
	AuthStateUnapproved AuthState = iota
	AuthStateApproved
	AuthStateSuperAdmin
)

func (s AuthState) String() string {
	switch s {
	case AuthStateApproved:
		return "approved"
	case AuthStateSuperAdmin:
		return "superadmin"
	default:
		return "unapproved"
	}
}

// Decision is the outcome of Authorize.
type Decision string

const (
	DecisionAllow                Decision = "allow"
	DecisionDenyMissing          Decision = "deny_missing"
	DecisionDenyUnapproved       Decision = "deny_unapproved"
	DecisionDenyInsufficientRole Decision = "deny_insufficient_role"
	DecisionDenySessionExpired   Decision = "deny_session_expired"
	DecisionDenySessionEnded     Decision = "deny_session_ended"
)

// Authorize checks, in order: presence, tier, session expiry.
// An admin below Approved is reported as unapproved; an approved admin
// below the required tier is reported as lacking the role.
func Authorize(admin *Admin, required AuthState, now time.Time) Decision {
	if admin == nil {
		return DecisionDenyMissing
	}

	state := admin.State()
	if state < required {
		if state == AuthStateUnapproved {
			return DecisionDenyUnapproved
		}
		return DecisionDenyInsufficientRole
	}

	if admin.SessionExpired(now) {
		return DecisionDenySessionExpired
	}

	return DecisionAllow
}
