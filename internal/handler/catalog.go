package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/examcell/exam-portal-server/internal/middleware"
	"github.com/examcell/exam-portal-server/internal/service"
	"github.com/examcell/exam-portal-server/internal/validation"
)

type CatalogHandler struct {
	catalog *service.CatalogService
	auth    *middleware.AuthMiddleware
	checks  *middleware.ResourceCheckMiddleware
}

func NewCatalogHandler(
	catalog *service.CatalogService,
	auth *middleware.AuthMiddleware,
	checks *middleware.ResourceCheckMiddleware,
) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, auth: auth, checks: checks}
}

func (h *CatalogHandler) CityRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ListCities)
	r.With(h.auth.AdminAuth, h.checks.CityCheck).Post("/", h.CreateCity)
	return r
}

func (h *CatalogHandler) CollegeRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ListColleges)
	r.With(h.auth.AdminAuth, h.checks.CollegeCheck).Post("/", h.CreateCollege)
	return r
}

func (h *CatalogHandler) ListCities(w http.ResponseWriter, r *http.Request) {
	p := ParsePagination(r)

	cities, err := h.catalog.ListCities(r.Context(), p.Limit, p.Offset)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cities)
}

func (h *CatalogHandler) CreateCity(w http.ResponseWriter, r *http.Request) {
	req, _ := middleware.GetPayload[validation.CityRequest](r.Context())

	city, err := h.catalog.CreateCity(r.Context(), req.CityName)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, city)
}

// ListColleges lists colleges, optionally only those in ?city=.
func (h *CatalogHandler) ListColleges(w http.ResponseWriter, r *http.Request) {
	p := ParsePagination(r)
	city := r.URL.Query().Get("city")

	colleges, err := h.catalog.ListColleges(r.Context(), city, p.Limit, p.Offset)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, colleges)
}

func (h *CatalogHandler) CreateCollege(w http.ResponseWriter, r *http.Request) {
	req, _ := middleware.GetPayload[validation.CollegeRequest](r.Context())

	college, err := h.catalog.CreateCollege(r.Context(), req.Name, req.City)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, college)
}
