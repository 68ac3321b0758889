package handler

import (
	"bytes"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/examcell/exam-portal-server/internal/audit"
	apperrors "github.com/examcell/exam-portal-server/internal/errors"
	"github.com/examcell/exam-portal-server/internal/middleware"
	"github.com/examcell/exam-portal-server/internal/model"
	"github.com/examcell/exam-portal-server/internal/service"
	"github.com/examcell/exam-portal-server/internal/util"
	"github.com/examcell/exam-portal-server/internal/validation"
)

type AdminHandler struct {
	adminService *service.AdminService
	auth         *middleware.AuthMiddleware
	loginLimit   func(http.Handler) http.Handler
	validator    *validation.Validator
}

func NewAdminHandler(
	adminService *service.AdminService,
	auth *middleware.AuthMiddleware,
	loginLimit func(http.Handler) http.Handler,
	v *validation.Validator,
) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
		auth:         auth,
		loginLimit:   loginLimit,
		validator:    v,
	}
}

func (h *AdminHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.With(middleware.ValidateBody[validation.RegisterRequest](h.validator)).Post("/register", h.Register)
	r.With(h.loginLimit, middleware.ValidateBody[validation.LoginRequest](h.validator)).Post("/login", h.Login)

	r.Group(func(r chi.Router) {
		r.Use(h.auth.AdminAuth)
		r.Post("/logout", h.Logout)
		r.Get("/me", h.Me)
	})

	r.Group(func(r chi.Router) {
		r.Use(h.auth.SuperAdminAuth)
		r.Get("/pending", h.ListPending)
		r.Patch("/{id}/approve", h.Approve)
	})

	return r
}

func (h *AdminHandler) Register(w http.ResponseWriter, r *http.Request) {
	req, _ := middleware.GetPayload[validation.RegisterRequest](r.Context())

	admin, err := h.adminService.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	audit.LogFromRequest(r, audit.Event{
		Type:    audit.EventAdminRegister,
		AdminID: admin.ID,
		Email:   util.MaskEmail(admin.Email),
	})

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Registration successful. Awaiting approval.",
		"admin":   admin,
	})
}

func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	req, _ := middleware.GetPayload[validation.LoginRequest](r.Context())

	result, err := h.adminService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if code := apperrors.GetCode(err); code == apperrors.ErrCodeUnauthorized || code == apperrors.ErrCodeForbidden {
			audit.LogFromRequest(r, audit.Event{
				Type:    audit.EventLoginFailure,
				Email:   util.MaskEmail(req.Email),
				Details: map[string]interface{}{"reason": string(code)},
			})
		}
		writeError(w, r, err)
		return
	}

	audit.LogFromRequest(r, audit.Event{
		Type:    audit.EventLoginSuccess,
		AdminID: result.Admin.ID,
		Email:   util.MaskEmail(result.Admin.Email),
	})

	writeJSON(w, http.StatusOK, result)
}

func (h *AdminHandler) Logout(w http.ResponseWriter, r *http.Request) {
	admin := middleware.GetAdmin(r.Context())

	if err := h.adminService.Logout(r.Context(), admin.ID); err != nil {
		writeError(w, r, err)
		return
	}

	audit.LogFromRequest(r, audit.Event{Type: audit.EventLogout, AdminID: admin.ID})
	writeJSON(w, http.StatusOK, messageResponse{Message: "Logged out"})
}

func (h *AdminHandler) Me(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, middleware.GetAdmin(r.Context()))
}

func (h *AdminHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	p := ParsePagination(r)

	admins, total, err := h.adminService.ListPending(r.Context(), p.Limit, p.Offset)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, listResponse[model.Admin]{
		Items:  admins,
		Total:  total,
		Limit:  p.Limit,
		Offset: p.Offset,
	})
}

// Approve sets the approval flag of an admin. An empty body approves.
func (h *AdminHandler) Approve(w http.ResponseWriter, r *http.Request) {
	approver := middleware.GetAdmin(r.Context())
	targetID := chi.URLParam(r, "id")

	approved := true
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, r, apperrors.ValidationError("Invalid request body"))
		return
	}
	if len(bytes.TrimSpace(body)) > 0 {
		var req validation.ApproveRequest
		if err := h.validator.Decode(body, &req); err != nil {
			writeError(w, r, err)
			return
		}
		if req.IsApproved != nil {
			approved = *req.IsApproved
		}
	}

	admin, err := h.adminService.SetApproval(r.Context(), approver, targetID, approved)
	if err != nil {
		writeError(w, r, err)
		return
	}

	audit.LogFromRequest(r, audit.Event{
		Type:    audit.EventAdminApprove,
		AdminID: approver.ID,
		Details: map[string]interface{}{"target_id": admin.ID, "approved": approved},
	})

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Admin approval updated",
		"admin":   admin,
	})
}

