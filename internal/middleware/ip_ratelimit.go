package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/examcell/exam-portal-server/internal/audit"
	apperrors "github.com/examcell/exam-portal-server/internal/errors"
	"github.com/examcell/exam-portal-server/internal/metrics"
)

type Limiter interface {
	Scope() string
	Allow(ctx context.Context, subject string) (bool, time.Time)
}

// IPRateLimitMiddleware limits requests per client address.
type IPRateLimitMiddleware struct {
	limiter Limiter
	metrics *metrics.Metrics
}

func NewIPRateLimitMiddleware(limiter Limiter, m *metrics.Metrics) *IPRateLimitMiddleware {
	return &IPRateLimitMiddleware{limiter: limiter, metrics: m}
}

func (m *IPRateLimitMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := audit.ClientIP(r)

		allowed, resetAt := m.limiter.Allow(r.Context(), ip)
		if !allowed {
			m.metrics.ObserveRateLimited(m.limiter.Scope())
			audit.LogFromRequest(r, audit.Event{
				Type:    audit.EventRateLimitExceed,
				Details: map[string]interface{}{"scope": m.limiter.Scope()},
			})

			secondsLeft := int(time.Until(resetAt).Seconds()) + 1
			if secondsLeft < 1 {
				secondsLeft = 1
			}
			w.Header().Set("Retry-After", fmt.Sprintf("%d", secondsLeft))
			writeError(w, apperrors.RateLimitExceeded())
			return
		}

		next.ServeHTTP(w, r)
	})
}
