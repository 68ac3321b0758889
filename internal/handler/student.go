package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/examcell/exam-portal-server/internal/audit"
	apperrors "github.com/examcell/exam-portal-server/internal/errors"
	"github.com/examcell/exam-portal-server/internal/metrics"
	"github.com/examcell/exam-portal-server/internal/middleware"
	"github.com/examcell/exam-portal-server/internal/service"
	"github.com/examcell/exam-portal-server/internal/util"
	"github.com/examcell/exam-portal-server/internal/validation"
)

type StudentHandler struct {
	hallTickets *service.HallTicketService
	auth        *middleware.AuthMiddleware
	lookupLimit func(http.Handler) http.Handler
	validator   *validation.Validator
	metrics     *metrics.Metrics
}

func NewStudentHandler(
	hallTickets *service.HallTicketService,
	auth *middleware.AuthMiddleware,
	lookupLimit func(http.Handler) http.Handler,
	v *validation.Validator,
	m *metrics.Metrics,
) *StudentHandler {
	return &StudentHandler{
		hallTickets: hallTickets,
		auth:        auth,
		lookupLimit: lookupLimit,
		validator:   v,
		metrics:     m,
	}
}

// AdminRoutes serves student record management.
func (h *StudentHandler) AdminRoutes() chi.Router {
	r := chi.NewRouter()
	r.With(h.auth.AdminAuth, middleware.ValidateBody[validation.StudentRequest](h.validator)).Post("/", h.Create)
	return r
}

// PublicRoutes serves the unauthenticated hall ticket lookup.
func (h *StudentHandler) PublicRoutes() chi.Router {
	r := chi.NewRouter()
	r.With(h.lookupLimit, middleware.ValidateBody[validation.HallTicketRequest](h.validator)).
		Post("/getHallTicketInfo", h.HallTicket)
	return r
}

func (h *StudentHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, _ := middleware.GetPayload[validation.StudentRequest](r.Context())

	ticket, err := h.hallTickets.Register(r.Context(), service.StudentInput{
		Email:       req.Email,
		DOB:         req.DOB,
		SeatNumber:  req.SeatNumber,
		StudentName: req.StudentName,
		Course:      req.Course,
		TestCenter:  req.TestCenter,
		ExamDate:    req.ExamDate,
		ExamTime:    req.ExamTime,
		SerialNo:    req.SerialNo,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, ticket)
}

func (h *StudentHandler) HallTicket(w http.ResponseWriter, r *http.Request) {
	req, _ := middleware.GetPayload[validation.HallTicketRequest](r.Context())

	ticket, err := h.hallTickets.Lookup(r.Context(), req.Email, req.DOB)

	result := "found"
	switch {
	case err == nil:
	case apperrors.GetCode(err) == apperrors.ErrCodeNotFound:
		result = "not_found"
	default:
		result = "error"
	}
	h.metrics.ObserveHallTicket(result)
	audit.LogFromRequest(r, audit.Event{
		Type:    audit.EventHallTicketLookup,
		Email:   util.MaskEmail(req.Email),
		Details: map[string]interface{}{"result": result},
	})

	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ticket)
}
