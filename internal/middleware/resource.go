package middleware

import (
	"context"
	"net/http"

	"github.com/rs/zerolog/log"

	apperrors "github.com/examcell/exam-portal-server/internal/errors"
	"github.com/examcell/exam-portal-server/internal/model"
	"github.com/examcell/exam-portal-server/internal/service"
	"github.com/examcell/exam-portal-server/internal/validation"
)

type CityFinder interface {
	FindByName(ctx context.Context, cityName string) (*model.City, error)
}

type CollegeFinder interface {
	FindByNameAndCity(ctx context.Context, name, city string) (*model.College, error)
}

// ResourceCheckMiddleware rejects creates that would duplicate an existing
// city or college. The unique constraints still back this up when two
// creates race.
type ResourceCheckMiddleware struct {
	validator *validation.Validator
	cities    CityFinder
	colleges  CollegeFinder
}

func NewResourceCheckMiddleware(v *validation.Validator, cities CityFinder, colleges CollegeFinder) *ResourceCheckMiddleware {
	return &ResourceCheckMiddleware{
		validator: v,
		cities:    cities,
		colleges:  colleges,
	}
}

func (m *ResourceCheckMiddleware) CityCheck(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		payload, r, err := decodePayload[validation.CityRequest](m.validator, r)
		if err != nil {
			writeError(w, err)
			return
		}

		existing, err := m.cities.FindByName(r.Context(), payload.CityName)
		if err != nil {
			log.Error().Err(err).Msg("city check: lookup failed")
			writeError(w, apperrors.Internal("Server error"))
			return
		}
		if existing != nil {
			writeError(w, apperrors.AlreadyExists(service.CityExistsMessage))
			return
		}

		ctx := context.WithValue(r.Context(), PayloadContextKey, payload)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *ResourceCheckMiddleware) CollegeCheck(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		payload, r, err := decodePayload[validation.CollegeRequest](m.validator, r)
		if err != nil {
			writeError(w, err)
			return
		}

		existing, err := m.colleges.FindByNameAndCity(r.Context(), payload.Name, payload.City)
		if err != nil {
			log.Error().Err(err).Msg("college check: lookup failed")
			writeError(w, apperrors.Internal("Server error"))
			return
		}
		if existing != nil {
			writeError(w, apperrors.AlreadyExists(service.CollegeExistsMessage(existing.Name, existing.City)))
			return
		}

		ctx := context.WithValue(r.Context(), PayloadContextKey, payload)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
