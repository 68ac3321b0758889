package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/examcell/exam-portal-server/internal/audit"
	"github.com/examcell/exam-portal-server/internal/auth"
	apperrors "github.com/examcell/exam-portal-server/internal/errors"
	"github.com/examcell/exam-portal-server/internal/metrics"
	"github.com/examcell/exam-portal-server/internal/model"
	"github.com/examcell/exam-portal-server/internal/util"
)

type contextKey string

const AdminContextKey contextKey = "admin"

const (
	gateAdmin      = "admin"
	gateSuperAdmin = "superadmin"
)

// GetAdmin returns the admin attached by AdminAuth or SuperAdminAuth.
func GetAdmin(ctx context.Context) *model.Admin {
	if admin, ok := ctx.Value(AdminContextKey).(*model.Admin); ok {
		return admin
	}
	return nil
}

type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

type AdminFinder interface {
	FindByID(ctx context.Context, id string) (*model.Admin, error)
}

// AuthMiddleware holds the two admin gates. Neither gate writes to the store,
// so repeating a request with the same token yields the same outcome.
type AuthMiddleware struct {
	tokens  TokenVerifier
	admins  AdminFinder
	metrics *metrics.Metrics
	now     func() time.Time
}

func NewAuthMiddleware(tokens TokenVerifier, admins AdminFinder, m *metrics.Metrics) *AuthMiddleware {
	return &AuthMiddleware{
		tokens:  tokens,
		admins:  admins,
		metrics: m,
		now:     time.Now,
	}
}

// AdminAuth admits approved admins and superadmins with a live session.
func (m *AuthMiddleware) AdminAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			m.deny(w, r, gateAdmin, "missing_token", apperrors.Unauthorized("Unauthorized"))
			return
		}

		claims, admin, err := m.resolve(r.Context(), token)
		if err != nil {
			if appErr, ok := apperrors.AsAppError(err); ok {
				m.deny(w, r, gateAdmin, "invalid_token", appErr)
				return
			}
			log.Error().Err(err).Msg("admin auth: store lookup failed")
			m.metrics.ObserveGate(gateAdmin, "error")
			writeError(w, apperrors.Internal("Server error during authentication"))
			return
		}

		decision := m.decide(claims, admin, model.AuthStateApproved)
		switch decision {
		case model.DecisionAllow:
			m.allow(w, r, next, gateAdmin, admin)
		case model.DecisionDenySessionExpired, model.DecisionDenySessionEnded:
			m.deny(w, r, gateAdmin, string(decision), apperrors.SessionExpired())
		default:
			m.deny(w, r, gateAdmin, string(decision), apperrors.Forbidden("You do not have admin access"))
		}
	})
}

// SuperAdminAuth admits superadmins with a live session. Every refusal is
// the same opaque 401.
func (m *AuthMiddleware) SuperAdminAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		unauthorized := apperrors.Unauthorized("Unauthorized")

		token := bearerToken(r)
		if token == "" {
			m.deny(w, r, gateSuperAdmin, "missing_token", unauthorized)
			return
		}

		claims, admin, err := m.resolve(r.Context(), token)
		if err != nil {
			if apperrors.IsAppError(err) {
				m.deny(w, r, gateSuperAdmin, "invalid_token", unauthorized)
				return
			}
			log.Error().Err(err).Msg("superadmin auth: store lookup failed")
			m.metrics.ObserveGate(gateSuperAdmin, "error")
			writeError(w, apperrors.Internal("Server error during authentication"))
			return
		}

		decision := m.decide(claims, admin, model.AuthStateSuperAdmin)
		if decision != model.DecisionAllow {
			m.deny(w, r, gateSuperAdmin, string(decision), unauthorized)
			return
		}
		m.allow(w, r, next, gateSuperAdmin, admin)
	})
}

// resolve verifies the token and loads its admin. A token failure comes
// back as an AppError; anything else is a store failure. A nil admin
// means the token named nobody.
func (m *AuthMiddleware) resolve(ctx context.Context, token string) (*auth.Claims, *model.Admin, error) {
	claims, err := m.tokens.Verify(token)
	if err != nil {
		return nil, nil, apperrors.InvalidToken("Invalid token").WithCause(err)
	}

	if !util.IsValidUUID(claims.AdminID) {
		return claims, nil, nil
	}

	admin, err := m.admins.FindByID(ctx, claims.AdminID)
	if err != nil {
		return nil, nil, err
	}
	return claims, admin, nil
}

// decide applies the tier and expiry rules, then requires the token to
// belong to the admin's current session.
func (m *AuthMiddleware) decide(claims *auth.Claims, admin *model.Admin, required model.AuthState) model.Decision {
	decision := model.Authorize(admin, required, m.now())
	if decision == model.DecisionAllow && !admin.HoldsSession(claims.ID) {
		return model.DecisionDenySessionEnded
	}
	return decision
}

func (m *AuthMiddleware) allow(w http.ResponseWriter, r *http.Request, next http.Handler, gate string, admin *model.Admin) {
	m.metrics.ObserveGate(gate, string(model.DecisionAllow))
	ctx := context.WithValue(r.Context(), AdminContextKey, admin)
	next.ServeHTTP(w, r.WithContext(ctx))
}

func (m *AuthMiddleware) deny(w http.ResponseWriter, r *http.Request, gate, reason string, err *apperrors.AppError) {
	m.metrics.ObserveGate(gate, reason)
	audit.LogFromRequest(r, audit.Event{
		Type: audit.EventAuthFailure,
		Details: map[string]interface{}{
			"gate":   gate,
			"reason": reason,
			"path":   r.URL.Path,
		},
	})
	writeError(w, err)
}

func bearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
}
