package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/examcell/exam-portal-server/internal/middleware"
	"github.com/examcell/exam-portal-server/internal/model"
	"github.com/examcell/exam-portal-server/internal/service"
	"github.com/examcell/exam-portal-server/internal/validation"
)

type AnnouncementHandler struct {
	announcements *service.AnnouncementService
	auth          *middleware.AuthMiddleware
	validator     *validation.Validator
}

func NewAnnouncementHandler(
	announcements *service.AnnouncementService,
	auth *middleware.AuthMiddleware,
	v *validation.Validator,
) *AnnouncementHandler {
	return &AnnouncementHandler{announcements: announcements, auth: auth, validator: v}
}

func (h *AnnouncementHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.List)

	r.Group(func(r chi.Router) {
		r.Use(h.auth.AdminAuth)
		r.With(middleware.ValidateBody[validation.AnnouncementRequest](h.validator)).Post("/", h.Create)
		r.Delete("/{id}", h.Delete)
	})

	return r
}

func (h *AnnouncementHandler) List(w http.ResponseWriter, r *http.Request) {
	p := ParsePagination(r)

	items, total, err := h.announcements.List(r.Context(), p.Limit, p.Offset)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, listResponse[model.Announcement]{
		Items:  items,
		Total:  total,
		Limit:  p.Limit,
		Offset: p.Offset,
	})
}

func (h *AnnouncementHandler) Create(w http.ResponseWriter, r *http.Request) {
	admin := middleware.GetAdmin(r.Context())
	req, _ := middleware.GetPayload[validation.AnnouncementRequest](r.Context())

	item, err := h.announcements.Create(r.Context(), req.Title, req.Content, req.ExamDate, admin.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (h *AnnouncementHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.announcements.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Announcement deleted"})
}
