package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/examcell/exam-portal-server/internal/auth"
	"github.com/examcell/exam-portal-server/internal/metrics"
	"github.com/examcell/exam-portal-server/internal/middleware"
	"github.com/examcell/exam-portal-server/internal/model"
	"github.com/examcell/exam-portal-server/internal/repository"
	"github.com/examcell/exam-portal-server/internal/service"
	"github.com/examcell/exam-portal-server/internal/util"
	"github.com/examcell/exam-portal-server/internal/validation"
)

const (
	testSecret   = "handler-test-secret-0123456789abcdef"
	superID      = "7a9b0c1d-2e3f-4a5b-8c6d-7e8f9a0b1c2d"
	pendingID    = "3f1c2a4e-8d2b-4f6a-9c1e-2b7d5e8f0a11"
	approvedID   = "b2c3d4e5-f6a7-4b8c-9d0e-1f2a3b4c5d6e"
	testPassword = "correct horse"
	testSession  = "c4d5e6f7-0a1b-4c2d-8e3f-5a6b7c8d9e0f"
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

type testEnv struct {
	router   chi.Router
	admins   *mockAdminRepo
	cities   *mockCityRepo
	colleges *mockCollegeRepo
	students *mockStudentRepo
	codec    *auth.TokenCodec
}

func passthrough(next http.Handler) http.Handler { return next }

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		admins:   new(mockAdminRepo),
		cities:   new(mockCityRepo),
		colleges: new(mockCollegeRepo),
		students: new(mockStudentRepo),
		codec:    auth.NewTokenCodec(testSecret, time.Hour),
	}

	v := validation.New()
	m := metrics.New()
	authMW := middleware.NewAuthMiddleware(env.codec, env.admins, m)
	checks := middleware.NewResourceCheckMiddleware(v, env.cities, env.colleges)

	adminHandler := NewAdminHandler(service.NewAdminService(env.admins, env.codec, bcrypt.MinCost), authMW, passthrough, v)
	catalogHandler := NewCatalogHandler(service.NewCatalogService(env.cities, env.colleges), authMW, checks)
	studentHandler := NewStudentHandler(service.NewHallTicketService(env.students), authMW, passthrough, v, m)

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Mount("/admin", adminHandler.Routes())
		r.Mount("/cities", catalogHandler.CityRoutes())
		r.Mount("/colleges", catalogHandler.CollegeRoutes())
		r.Mount("/students", studentHandler.AdminRoutes())
	})
	r.Mount("/student", studentHandler.PublicRoutes())
	env.router = r
	return env
}

func (e *testEnv) token(t *testing.T, adminID string) string {
	t.Helper()
	token, _, err := e.codec.Issue(adminID, testSession)
	require.NoError(t, err)
	return token
}

// loginable registers an approved admin whose session columns follow the
// StartSession and EndSession calls made through the service.
func (e *testEnv) loginable(t *testing.T) *model.Admin {
	t.Helper()
	hash, err := util.HashPassword(testPassword, bcrypt.MinCost)
	require.NoError(t, err)
	admin := &model.Admin{ID: approvedID, Email: "a@b.com", IsApproved: true, PasswordHash: hash}

	e.admins.On("FindByEmail", mock.Anything, "a@b.com").Return(admin, nil)
	e.admins.On("StartSession", mock.Anything, approvedID, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			sessionID := args.String(2)
			expiry := args.Get(3).(time.Time)
			admin.SessionID = &sessionID
			admin.SessionExpiry = &expiry
		}).Return(nil)
	e.admins.On("EndSession", mock.Anything, approvedID, mock.Anything).
		Run(func(args mock.Arguments) {
			at := args.Get(2).(time.Time)
			admin.SessionID = nil
			admin.SessionExpiry = &at
		}).Return(nil)
	return admin
}

func (e *testEnv) login(t *testing.T) string {
	t.Helper()
	rec, body := e.do(t, http.MethodPost, "/api/admin/login",
		`{"email":"a@b.com","password":"`+testPassword+`"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func liveSession() *string {
	id := testSession
	return &id
}

func (e *testEnv) do(t *testing.T, method, path, body, token string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)

	var out map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &out)
	return rec, out
}

func TestAdminRoutes(t *testing.T) {
	t.Run("register missing email is 400", func(t *testing.T) {
		env := newTestEnv(t)
		rec, body := env.do(t, http.MethodPost, "/api/admin/register", `{"username":"asha","password":"pw"}`, "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, `"email" is required`, body["message"])
	})

	t.Run("register creates pending admin", func(t *testing.T) {
		env := newTestEnv(t)
		env.admins.On("FindByEmail", mock.Anything, "asha@example.com").Return(nil, nil)
		env.admins.On("Create", mock.Anything, mock.Anything).
			Return(&model.Admin{ID: pendingID, Username: "asha", Email: "asha@example.com"}, nil)

		rec, body := env.do(t, http.MethodPost, "/api/admin/register",
			`{"username":"asha","email":"asha@example.com","password":"pw"}`, "")

		assert.Equal(t, http.StatusCreated, rec.Code)
		admin := body["admin"].(map[string]any)
		assert.Equal(t, false, admin["isApproved"])
		assert.NotContains(t, admin, "passwordHash")
	})

	t.Run("login without password is 400", func(t *testing.T) {
		env := newTestEnv(t)
		rec, body := env.do(t, http.MethodPost, "/api/admin/login", `{"email":"a@b.com"}`, "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, body["message"], "password")
	})

	t.Run("login returns a token the gate accepts", func(t *testing.T) {
		env := newTestEnv(t)
		admin := env.loginable(t)
		env.admins.On("FindByID", mock.Anything, approvedID).Return(admin, nil)

		token := env.login(t)

		rec, body := env.do(t, http.MethodGet, "/api/admin/me", "", token)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, approvedID, body["id"])
	})

	t.Run("logout ends the session then gate refuses", func(t *testing.T) {
		env := newTestEnv(t)
		admin := env.loginable(t)
		env.admins.On("FindByID", mock.Anything, approvedID).Return(admin, nil)

		token := env.login(t)

		rec, _ := env.do(t, http.MethodPost, "/api/admin/logout", "", token)
		require.Equal(t, http.StatusOK, rec.Code)

		rec, body := env.do(t, http.MethodGet, "/api/admin/me", "", token)
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, "Session has expired. Please log in again.", body["message"])
	})

	t.Run("logged-out token stays refused after a new login", func(t *testing.T) {
		env := newTestEnv(t)
		admin := env.loginable(t)
		env.admins.On("FindByID", mock.Anything, approvedID).Return(admin, nil)

		oldToken := env.login(t)
		rec, _ := env.do(t, http.MethodPost, "/api/admin/logout", "", oldToken)
		require.Equal(t, http.StatusOK, rec.Code)

		newToken := env.login(t)
		require.NotEqual(t, oldToken, newToken)

		rec, _ = env.do(t, http.MethodGet, "/api/admin/me", "", oldToken)
		assert.Equal(t, http.StatusForbidden, rec.Code)

		rec, _ = env.do(t, http.MethodGet, "/api/admin/me", "", newToken)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("a new login supersedes the previous token", func(t *testing.T) {
		env := newTestEnv(t)
		admin := env.loginable(t)
		env.admins.On("FindByID", mock.Anything, approvedID).Return(admin, nil)

		first := env.login(t)
		second := env.login(t)

		rec, _ := env.do(t, http.MethodGet, "/api/admin/me", "", first)
		assert.Equal(t, http.StatusForbidden, rec.Code)

		rec, _ = env.do(t, http.MethodGet, "/api/admin/me", "", second)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("pending list needs superadmin", func(t *testing.T) {
		env := newTestEnv(t)
		env.admins.On("FindByID", mock.Anything, approvedID).Return(&model.Admin{ID: approvedID, SessionID: liveSession(), IsApproved: true}, nil)

		rec, _ := env.do(t, http.MethodGet, "/api/admin/pending", "", env.token(t, approvedID))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("superadmin approves pending admin", func(t *testing.T) {
		env := newTestEnv(t)
		super := &model.Admin{ID: superID, SessionID: liveSession(), IsSuperAdmin: true, IsApproved: true}
		env.admins.On("FindByID", mock.Anything, superID).Return(super, nil)
		env.admins.On("FindByID", mock.Anything, pendingID).Return(&model.Admin{ID: pendingID}, nil)
		approver := superID
		env.admins.On("SetApproval", mock.Anything, pendingID, true, superID).
			Return(&model.Admin{ID: pendingID, IsApproved: true, ApprovedBy: &approver}, nil)

		rec, body := env.do(t, http.MethodPatch, "/api/admin/"+pendingID+"/approve", "", env.token(t, superID))

		require.Equal(t, http.StatusOK, rec.Code)
		admin := body["admin"].(map[string]any)
		assert.Equal(t, true, admin["isApproved"])
		assert.Equal(t, superID, admin["approvedBy"])
	})

	t.Run("approve unknown admin is 404", func(t *testing.T) {
		env := newTestEnv(t)
		env.admins.On("FindByID", mock.Anything, superID).Return(&model.Admin{ID: superID, SessionID: liveSession(), IsSuperAdmin: true}, nil)
		env.admins.On("FindByID", mock.Anything, pendingID).Return(nil, nil)

		rec, _ := env.do(t, http.MethodPatch, "/api/admin/"+pendingID+"/approve", `{"isApproved":true}`, env.token(t, superID))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestCatalogRoutes(t *testing.T) {
	t.Run("creating an existing city is 400", func(t *testing.T) {
		env := newTestEnv(t)
		env.admins.On("FindByID", mock.Anything, approvedID).Return(&model.Admin{ID: approvedID, SessionID: liveSession(), IsApproved: true}, nil)
		env.cities.On("FindByName", mock.Anything, "Pune").Return(&model.City{ID: "c1", CityName: "Pune"}, nil)

		rec, body := env.do(t, http.MethodPost, "/api/cities", `{"cityName":"Pune"}`, env.token(t, approvedID))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "City already exists", body["message"])
		env.cities.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("creating a city without a token is 401", func(t *testing.T) {
		env := newTestEnv(t)
		rec, _ := env.do(t, http.MethodPost, "/api/cities", `{"cityName":"Pune"}`, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("creates a new college", func(t *testing.T) {
		env := newTestEnv(t)
		env.admins.On("FindByID", mock.Anything, approvedID).Return(&model.Admin{ID: approvedID, SessionID: liveSession(), IsApproved: true}, nil)
		env.colleges.On("FindByNameAndCity", mock.Anything, "COEP", "Pune").Return(nil, nil)
		env.colleges.On("Create", mock.Anything, "COEP", "Pune").
			Return(&model.College{ID: "k1", Name: "COEP", City: "Pune"}, nil)

		rec, body := env.do(t, http.MethodPost, "/api/colleges", `{"name":"COEP","city":"Pune"}`, env.token(t, approvedID))

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, "COEP", body["name"])
	})

	t.Run("lists colleges filtered by city", func(t *testing.T) {
		env := newTestEnv(t)
		env.colleges.On("FindAll", mock.Anything, "Pune", DefaultLimit, 0).
			Return([]model.College{{ID: "k1", Name: "COEP", City: "Pune"}}, nil)

		rec := httptest.NewRecorder()
		env.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/colleges?city=Pune", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		var colleges []model.College
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &colleges))
		assert.Len(t, colleges, 1)
	})
}

func TestHallTicketRoute(t *testing.T) {
	dob := time.Date(2004, 3, 15, 0, 0, 0, 0, time.UTC)

	t.Run("returns ticket for matching student", func(t *testing.T) {
		env := newTestEnv(t)
		env.students.On("FindByEmailAndDOB", mock.Anything, "stu@example.com", dob).Return(&model.Student{
			Email: "stu@example.com", DOB: dob, SeatNumber: "S-101", StudentName: "Asha",
		}, nil)

		rec, body := env.do(t, http.MethodPost, "/student/getHallTicketInfo",
			`{"email":"stu@example.com","dob":"15-03-2004"}`, "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "S-101", body["seatNumber"])
		assert.Equal(t, "15-03-2004", body["dob"])
	})

	t.Run("unknown student is 404", func(t *testing.T) {
		env := newTestEnv(t)
		env.students.On("FindByEmailAndDOB", mock.Anything, "stu@example.com", dob).Return(nil, nil)

		rec, body := env.do(t, http.MethodPost, "/student/getHallTicketInfo",
			`{"email":"stu@example.com","dob":"2004-03-15"}`, "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "Invalid student details", body["message"])
	})

	t.Run("bad email is 400", func(t *testing.T) {
		env := newTestEnv(t)
		rec, body := env.do(t, http.MethodPost, "/student/getHallTicketInfo", `{"email":"nope","dob":"15-03-2004"}`, "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, `"email" must be a valid email`, body["message"])
	})
}
