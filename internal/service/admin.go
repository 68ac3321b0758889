package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	apperrors "github.com/examcell/exam-portal-server/internal/errors"
	"github.com/examcell/exam-portal-server/internal/model"
	"github.com/examcell/exam-portal-server/internal/repository"
	"github.com/examcell/exam-portal-server/internal/util"
)

const (
	msgInvalidCredentials = "Invalid email or password"
	msgPendingApproval    = "Your account is pending approval"
	msgEmailRegistered    = "Admin with this email already exists"
)

// TokenIssuer mints session tokens for admins.
type TokenIssuer interface {
	Issue(adminID, sessionID string) (string, time.Time, error)
}

type LoginResult struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	Admin     *model.Admin `json:"admin"`
}

type AdminService struct {
	adminRepo  repository.AdminRepository
	tokens     TokenIssuer
	bcryptCost int
	now        func() time.Time
	newSession func() string
}

func NewAdminService(adminRepo repository.AdminRepository, tokens TokenIssuer, bcryptCost int) *AdminService {
	return &AdminService{
		adminRepo:  adminRepo,
		tokens:     tokens,
		bcryptCost: bcryptCost,
		now:        time.Now,
		newSession: uuid.NewString,
	}
}

// Register creates an unapproved admin.
func (s *AdminService) Register(ctx context.Context, username, email, password string) (*model.Admin, error) {
	return s.create(ctx, username, email, password, false)
}

// CreateSuperAdmin creates an approved superadmin. Used to bootstrap the
// first account from the command line.
func (s *AdminService) CreateSuperAdmin(ctx context.Context, username, email, password string) (*model.Admin, error) {
	return s.create(ctx, username, email, password, true)
}

func (s *AdminService) create(ctx context.Context, username, email, password string, super bool) (*model.Admin, error) {
	existing, err := s.adminRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if existing != nil {
		return nil, apperrors.AlreadyExists(msgEmailRegistered)
	}

	hash, err := util.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, "Failed to hash password", err)
	}

	admin, err := s.adminRepo.Create(ctx, model.CreateAdminParams{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		IsSuperAdmin: super,
		IsApproved:   super,
	})
	if err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, apperrors.AlreadyExists(msgEmailRegistered)
		}
		return nil, apperrors.Database(err)
	}
	return admin, nil
}

// Login checks credentials and starts a new session. The token carries the
// session id; any session started earlier stops passing the gates.
func (s *AdminService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	admin, err := s.adminRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if admin == nil || !util.CheckPasswordHash(password, admin.PasswordHash) {
		return nil, apperrors.Unauthorized(msgInvalidCredentials)
	}
	if admin.State() < model.AuthStateApproved {
		return nil, apperrors.Forbidden(msgPendingApproval)
	}

	sessionID := s.newSession()
	token, expiresAt, err := s.tokens.Issue(admin.ID, sessionID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, "Failed to issue token", err)
	}

	if err := s.adminRepo.StartSession(ctx, admin.ID, sessionID, expiresAt); err != nil {
		return nil, apperrors.Database(err)
	}
	admin.SessionID = &sessionID
	admin.SessionExpiry = &expiresAt

	log.Debug().Str("admin_id", admin.ID).Time("expires_at", expiresAt).Msg("admin session started")

	return &LoginResult{Token: token, ExpiresAt: expiresAt, Admin: admin}, nil
}

// Logout ends the admin's session. Every token issued before it stays
// refused, including after a later login.
func (s *AdminService) Logout(ctx context.Context, adminID string) error {
	if err := s.adminRepo.EndSession(ctx, adminID, s.now()); err != nil {
		return apperrors.Database(err)
	}
	return nil
}

func (s *AdminService) ListPending(ctx context.Context, limit, offset int) ([]model.Admin, int, error) {
	admins, err := s.adminRepo.FindPending(ctx, limit, offset)
	if err != nil {
		return nil, 0, apperrors.Database(err)
	}
	total, err := s.adminRepo.CountPending(ctx)
	if err != nil {
		return nil, 0, apperrors.Database(err)
	}
	if admins == nil {
		admins = []model.Admin{}
	}
	return admins, total, nil
}

// SetApproval approves or revokes an admin on behalf of a superadmin.
func (s *AdminService) SetApproval(ctx context.Context, approver *model.Admin, targetID string, approved bool) (*model.Admin, error) {
	if approver.ID == targetID {
		return nil, apperrors.ValidationError("You cannot change your own approval")
	}

	if !util.IsValidUUID(targetID) {
		return nil, apperrors.NotFound("Admin")
	}

	target, err := s.adminRepo.FindByID(ctx, targetID)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if target == nil {
		return nil, apperrors.NotFound("Admin")
	}
	if target.IsSuperAdmin {
		return nil, apperrors.Forbidden("Superadmin approval cannot be changed")
	}

	updated, err := s.adminRepo.SetApproval(ctx, targetID, approved, approver.ID)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if updated == nil {
		return nil, apperrors.NotFound("Admin")
	}
	return updated, nil
}
