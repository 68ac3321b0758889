package service

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/mock"

	"github.com/examcell/exam-portal-server/internal/model"
	"github.com/examcell/exam-portal-server/internal/repository"
)

type mockAdminRepo struct {
	mock.Mock
}

func (m *mockAdminRepo) FindByID(ctx context.Context, id string) (*model.Admin, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Admin), args.Error(1)
}

func (m *mockAdminRepo) FindByEmail(ctx context.Context, email string) (*model.Admin, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Admin), args.Error(1)
}

func (m *mockAdminRepo) FindPending(ctx context.Context, limit, offset int) ([]model.Admin, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Admin), args.Error(1)
}

func (m *mockAdminRepo) Create(ctx context.Context, params model.CreateAdminParams) (*model.Admin, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Admin), args.Error(1)
}

func (m *mockAdminRepo) SetApproval(ctx context.Context, id string, approved bool, approvedBy string) (*model.Admin, error) {
	args := m.Called(ctx, id, approved, approvedBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Admin), args.Error(1)
}

func (m *mockAdminRepo) StartSession(ctx context.Context, id, sessionID string, expiry time.Time) error {
	args := m.Called(ctx, id, sessionID, expiry)
	return args.Error(0)
}

func (m *mockAdminRepo) EndSession(ctx context.Context, id string, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

func (m *mockAdminRepo) CountPending(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *mockAdminRepo) WithTx(tx *sqlx.Tx) repository.AdminRepository {
	return m
}

type mockTokenIssuer struct {
	mock.Mock
}

func (m *mockTokenIssuer) Issue(adminID, sessionID string) (string, time.Time, error) {
	args := m.Called(adminID, sessionID)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

type mockCityRepo struct {
	mock.Mock
}

func (m *mockCityRepo) FindByName(ctx context.Context, cityName string) (*model.City, error) {
	args := m.Called(ctx, cityName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.City), args.Error(1)
}

func (m *mockCityRepo) FindAll(ctx context.Context, limit, offset int) ([]model.City, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.City), args.Error(1)
}

func (m *mockCityRepo) Create(ctx context.Context, cityName string) (*model.City, error) {
	args := m.Called(ctx, cityName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.City), args.Error(1)
}

type mockCollegeRepo struct {
	mock.Mock
}

func (m *mockCollegeRepo) FindByNameAndCity(ctx context.Context, name, city string) (*model.College, error) {
	args := m.Called(ctx, name, city)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.College), args.Error(1)
}

func (m *mockCollegeRepo) FindAll(ctx context.Context, city string, limit, offset int) ([]model.College, error) {
	args := m.Called(ctx, city, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.College), args.Error(1)
}

func (m *mockCollegeRepo) Create(ctx context.Context, name, city string) (*model.College, error) {
	args := m.Called(ctx, name, city)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.College), args.Error(1)
}

type mockAnnouncementRepo struct {
	mock.Mock
}

func (m *mockAnnouncementRepo) FindAll(ctx context.Context, limit, offset int) ([]model.Announcement, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Announcement), args.Error(1)
}

func (m *mockAnnouncementRepo) Create(ctx context.Context, params model.CreateAnnouncementParams) (*model.Announcement, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Announcement), args.Error(1)
}

func (m *mockAnnouncementRepo) Delete(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockAnnouncementRepo) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

type mockExamConfigRepo struct {
	mock.Mock
}

func (m *mockExamConfigRepo) Get(ctx context.Context) (*model.ExamConfig, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ExamConfig), args.Error(1)
}

func (m *mockExamConfigRepo) Upsert(ctx context.Context, params model.UpsertExamConfigParams) (*model.ExamConfig, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ExamConfig), args.Error(1)
}

type mockStudentRepo struct {
	mock.Mock
}

func (m *mockStudentRepo) FindByEmailAndDOB(ctx context.Context, email string, dob time.Time) (*model.Student, error) {
	args := m.Called(ctx, email, dob)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Student), args.Error(1)
}

func (m *mockStudentRepo) Create(ctx context.Context, params model.CreateStudentParams) (*model.Student, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Student), args.Error(1)
}
