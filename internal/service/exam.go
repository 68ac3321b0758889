package service

import (
	"context"

	apperrors "github.com/examcell/exam-portal-server/internal/errors"
	"github.com/examcell/exam-portal-server/internal/model"
	"github.com/examcell/exam-portal-server/internal/repository"
	"github.com/examcell/exam-portal-server/internal/util"
)

type ExamConfigService struct {
	repo repository.ExamConfigRepository
}

func NewExamConfigService(repo repository.ExamConfigRepository) *ExamConfigService {
	return &ExamConfigService{repo: repo}
}

func (s *ExamConfigService) Get(ctx context.Context) (*model.ExamConfig, error) {
	cfg, err := s.repo.Get(ctx)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if cfg == nil {
		return nil, apperrors.NotFound("Exam configuration")
	}
	return cfg, nil
}

// Update replaces the singleton exam configuration.
func (s *ExamConfigService) Update(ctx context.Context, title, examDate string, description *string, updatedBy string) (*model.ExamConfig, error) {
	date, err := util.ParseDate(examDate)
	if err != nil {
		return nil, apperrors.ValidationError(`"examDate" must be a valid date`)
	}

	cfg, err := s.repo.Upsert(ctx, model.UpsertExamConfigParams{
		ExamTitle:   title,
		ExamDate:    date,
		Description: description,
		UpdatedBy:   updatedBy,
	})
	if err != nil {
		return nil, apperrors.Database(err)
	}
	return cfg, nil
}
