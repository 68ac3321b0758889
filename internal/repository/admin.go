package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/examcell/exam-portal-server/internal/model"
)

// AdminRepository is the credential store. It owns admin records exclusively.
type AdminRepository interface {
	FindByID(ctx context.Context, id string) (*model.Admin, error)
	FindByEmail(ctx context.Context, email string) (*model.Admin, error)
	FindPending(ctx context.Context, limit, offset int) ([]model.Admin, error)
	Create(ctx context.Context, params model.CreateAdminParams) (*model.Admin, error)
	SetApproval(ctx context.Context, id string, approved bool, approvedBy string) (*model.Admin, error)
	StartSession(ctx context.Context, id, sessionID string, expiry time.Time) error
	EndSession(ctx context.Context, id string, at time.Time) error
	CountPending(ctx context.Context) (int, error)
	// WithTx returns a new repository that uses the given transaction
	WithTx(tx *sqlx.Tx) AdminRepository
}

type adminRepo struct {
	db sqlxDB
}

func NewAdminRepository(db *sqlx.DB) AdminRepository {
	return &adminRepo{db: db}
}

func (r *adminRepo) WithTx(tx *sqlx.Tx) AdminRepository {
	return &adminRepo{db: tx}
}

func (r *adminRepo) FindByID(ctx context.Context, id string) (*model.Admin, error) {
	var admin model.Admin
	err := r.db.GetContext(ctx, &admin, `
		SELECT * FROM admins WHERE id = $1
	`, id)
	return HandleNotFound(&admin, err)
}

func (r *adminRepo) FindByEmail(ctx context.Context, email string) (*model.Admin, error) {
	var admin model.Admin
	err := r.db.GetContext(ctx, &admin, `
		SELECT * FROM admins WHERE lower(email) = lower($1)
	`, email)
	return HandleNotFound(&admin, err)
}

func (r *adminRepo) FindPending(ctx context.Context, limit, offset int) ([]model.Admin, error) {
	var admins []model.Admin
	err := r.db.SelectContext(ctx, &admins, `
		SELECT * FROM admins
		WHERE is_approved = FALSE AND is_super_admin = FALSE
		ORDER BY created_at ASC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	return admins, nil
}

func (r *adminRepo) Create(ctx context.Context, params model.CreateAdminParams) (*model.Admin, error) {
	var admin model.Admin
	err := r.db.GetContext(ctx, &admin, `
		INSERT INTO admins (username, email, password_hash, is_super_admin, is_approved)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING *
	`, params.Username, params.Email, params.PasswordHash, params.IsSuperAdmin, params.IsApproved)
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *adminRepo) SetApproval(ctx context.Context, id string, approved bool, approvedBy string) (*model.Admin, error) {
	var approver *string
	if approved {
		approver = &approvedBy
	}

	var admin model.Admin
	err := r.db.GetContext(ctx, &admin, `
		UPDATE admins SET
			is_approved = $2,
			approved_by = $3,
			updated_at = $4
		WHERE id = $1
		RETURNING *
	`, id, approved, approver, time.Now())
	return HandleNotFound(&admin, err)
}

// StartSession makes sessionID the admin's only live session.
func (r *adminRepo) StartSession(ctx context.Context, id, sessionID string, expiry time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE admins SET session_id = $2, session_expiry = $3, updated_at = $4 WHERE id = $1
	`, id, sessionID, expiry, time.Now())
	return err
}

func (r *adminRepo) EndSession(ctx context.Context, id string, at time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE admins SET session_id = NULL, session_expiry = $2, updated_at = $3 WHERE id = $1
	`, id, at, time.Now())
	return err
}

func (r *adminRepo) CountPending(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `
		SELECT COUNT(*) FROM admins WHERE is_approved = FALSE AND is_super_admin = FALSE
	`)
	return count, err
}
