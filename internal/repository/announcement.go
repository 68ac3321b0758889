package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/examcell/exam-portal-server/internal/model"
)

type AnnouncementRepository interface {
	FindAll(ctx context.Context, limit, offset int) ([]model.Announcement, error)
	Create(ctx context.Context, params model.CreateAnnouncementParams) (*model.Announcement, error)
	Delete(ctx context.Context, id string) (bool, error)
	Count(ctx context.Context) (int, error)
}

type announcementRepo struct {
	db sqlxDB
}

func NewAnnouncementRepository(db *sqlx.DB) AnnouncementRepository {
	return &announcementRepo{db: db}
}

func (r *announcementRepo) FindAll(ctx context.Context, limit, offset int) ([]model.Announcement, error) {
	announcements := []model.Announcement{}
	err := r.db.SelectContext(ctx, &announcements, `
		SELECT * FROM announcements
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	return announcements, nil
}

func (r *announcementRepo) Create(ctx context.Context, params model.CreateAnnouncementParams) (*model.Announcement, error) {
	var announcement model.Announcement
	err := r.db.GetContext(ctx, &announcement, `
		INSERT INTO announcements (title, content, exam_date, created_by)
		VALUES ($1, $2, $3, $4)
		RETURNING *
	`, params.Title, params.Content, params.ExamDate, params.CreatedBy)
	if err != nil {
		return nil, err
	}
	return &announcement, nil
}

func (r *announcementRepo) Delete(ctx context.Context, id string) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM announcements WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	n, err := result.RowsAffected()
	return n > 0, err
}

func (r *announcementRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM announcements`)
	return count, err
}
