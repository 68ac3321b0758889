package service

import (
	"context"
	"fmt"

	apperrors "github.com/examcell/exam-portal-server/internal/errors"
	"github.com/examcell/exam-portal-server/internal/model"
	"github.com/examcell/exam-portal-server/internal/repository"
)

// CityExistsMessage is returned when a city name is already taken.
const CityExistsMessage = "City already exists"

// CollegeExistsMessage formats the conflict message for a duplicate college.
func CollegeExistsMessage(name, city string) string {
	return fmt.Sprintf("%s already exists at %s", name, city)
}

type CatalogService struct {
	cityRepo    repository.CityRepository
	collegeRepo repository.CollegeRepository
}

func NewCatalogService(cityRepo repository.CityRepository, collegeRepo repository.CollegeRepository) *CatalogService {
	return &CatalogService{cityRepo: cityRepo, collegeRepo: collegeRepo}
}

func (s *CatalogService) ListCities(ctx context.Context, limit, offset int) ([]model.City, error) {
	cities, err := s.cityRepo.FindAll(ctx, limit, offset)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if cities == nil {
		cities = []model.City{}
	}
	return cities, nil
}

// CreateCity inserts a city. A concurrent insert that slipped past the
// existence check surfaces as the same conflict.
func (s *CatalogService) CreateCity(ctx context.Context, cityName string) (*model.City, error) {
	city, err := s.cityRepo.Create(ctx, cityName)
	if err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, apperrors.AlreadyExists(CityExistsMessage)
		}
		return nil, apperrors.Database(err)
	}
	return city, nil
}

func (s *CatalogService) ListColleges(ctx context.Context, city string, limit, offset int) ([]model.College, error) {
	colleges, err := s.collegeRepo.FindAll(ctx, city, limit, offset)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if colleges == nil {
		colleges = []model.College{}
	}
	return colleges, nil
}

func (s *CatalogService) CreateCollege(ctx context.Context, name, city string) (*model.College, error) {
	college, err := s.collegeRepo.Create(ctx, name, city)
	if err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, apperrors.AlreadyExists(CollegeExistsMessage(name, city))
		}
		return nil, apperrors.Database(err)
	}
	return college, nil
}
