package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/examcell/exam-portal-server/internal/model"
)

type ExamConfigRepository interface {
	Get(ctx context.Context) (*model.ExamConfig, error)
	Upsert(ctx context.Context, params model.UpsertExamConfigParams) (*model.ExamConfig, error)
}

type examConfigRepo struct {
	db sqlxDB
}

func NewExamConfigRepository(db *sqlx.DB) ExamConfigRepository {
	return &examConfigRepo{db: db}
}

func (r *examConfigRepo) Get(ctx context.Context) (*model.ExamConfig, error) {
	var cfg model.ExamConfig
	err := r.db.GetContext(ctx, &cfg, `
		SELECT exam_title, exam_date, description, updated_by, created_at, updated_at
		FROM exam_configs WHERE id = 1
	`)
	return HandleNotFound(&cfg, err)
}

func (r *examConfigRepo) Upsert(ctx context.Context, params model.UpsertExamConfigParams) (*model.ExamConfig, error) {
	var cfg model.ExamConfig
	err := r.db.GetContext(ctx, &cfg, `
		INSERT INTO exam_configs (id, exam_title, exam_date, description, updated_by)
		VALUES (1, $1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET
			exam_title = EXCLUDED.exam_title,
			exam_date = EXCLUDED.exam_date,
			description = EXCLUDED.description,
			updated_by = EXCLUDED.updated_by,
			updated_at = NOW()
		RETURNING exam_title, exam_date, description, updated_by, created_at, updated_at
	`, params.ExamTitle, params.ExamDate, params.Description, params.UpdatedBy)
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}
