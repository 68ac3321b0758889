package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/examcell/exam-portal-server/internal/middleware"
	"github.com/examcell/exam-portal-server/internal/service"
	"github.com/examcell/exam-portal-server/internal/validation"
)

type ExamConfigHandler struct {
	exam      *service.ExamConfigService
	auth      *middleware.AuthMiddleware
	validator *validation.Validator
}

func NewExamConfigHandler(
	exam *service.ExamConfigService,
	auth *middleware.AuthMiddleware,
	v *validation.Validator,
) *ExamConfigHandler {
	return &ExamConfigHandler{exam: exam, auth: auth, validator: v}
}

func (h *ExamConfigHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.Get)
	r.With(h.auth.AdminAuth, middleware.ValidateBody[validation.ExamConfigRequest](h.validator)).Put("/", h.Update)
	return r
}

func (h *ExamConfigHandler) Get(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.exam.Get(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cfg)
}

func (h *ExamConfigHandler) Update(w http.ResponseWriter, r *http.Request) {
	admin := middleware.GetAdmin(r.Context())
	req, _ := middleware.GetPayload[validation.ExamConfigRequest](r.Context())

	cfg, err := h.exam.Update(r.Context(), req.ExamTitle, req.ExamDate, req.Description, admin.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cfg)
}
