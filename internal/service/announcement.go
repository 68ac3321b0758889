package service

import (
	"context"
	"time"

	apperrors "github.com/examcell/exam-portal-server/internal/errors"
	"github.com/examcell/exam-portal-server/internal/model"
	"github.com/examcell/exam-portal-server/internal/repository"
	"github.com/examcell/exam-portal-server/internal/util"
)

type AnnouncementService struct {
	repo repository.AnnouncementRepository
}

func NewAnnouncementService(repo repository.AnnouncementRepository) *AnnouncementService {
	return &AnnouncementService{repo: repo}
}

func (s *AnnouncementService) List(ctx context.Context, limit, offset int) ([]model.Announcement, int, error) {
	items, err := s.repo.FindAll(ctx, limit, offset)
	if err != nil {
		return nil, 0, apperrors.Database(err)
	}
	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, 0, apperrors.Database(err)
	}
	if items == nil {
		items = []model.Announcement{}
	}
	return items, total, nil
}

// Create stores an announcement. examDate is normalized to YYYY-MM-DD.
func (s *AnnouncementService) Create(ctx context.Context, title, content, examDate, createdBy string) (*model.Announcement, error) {
	date, err := util.ParseDate(examDate)
	if err != nil {
		return nil, apperrors.ValidationError(`"examDate" must be a valid date`)
	}

	item, err := s.repo.Create(ctx, model.CreateAnnouncementParams{
		Title:     title,
		Content:   content,
		ExamDate:  date.Format(time.DateOnly),
		CreatedBy: createdBy,
	})
	if err != nil {
		return nil, apperrors.Database(err)
	}
	return item, nil
}

func (s *AnnouncementService) Delete(ctx context.Context, id string) error {
	if !util.IsValidUUID(id) {
		return apperrors.NotFound("Announcement")
	}
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return apperrors.Database(err)
	}
	if !deleted {
		return apperrors.NotFound("Announcement")
	}
	return nil
}
