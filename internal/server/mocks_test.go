package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"nextstep/internal/auth"
	"nextstep/internal/middleware"
	"nextstep/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-signing-secret"

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	var u *models.User
	if v := args.Get(0); v != nil {
		u = v.(*models.User)
	}
	return u, args.Error(1)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	var u *models.User
	if v := args.Get(0); v != nil {
		u = v.(*models.User)
	}
	return u, args.Error(1)
}

func (m *mockUserRepo) SaveIfAbsent(ctx context.Context, user *models.User) (*models.User, bool, error) {
	args := m.Called(ctx, user)
	var u *models.User
	if v := args.Get(0); v != nil {
		u = v.(*models.User)
	}
	return u, args.Bool(1), args.Error(2)
}

func (m *mockUserRepo) List(ctx context.Context, excludeEmail, role string) ([]models.User, error) {
	args := m.Called(ctx, excludeEmail, role)
	var users []models.User
	if v := args.Get(0); v != nil {
		users = v.([]models.User)
	}
	return users, args.Error(1)
}

func (m *mockUserRepo) UpdateProfile(ctx context.Context, email, name, image string) error {
	return m.Called(ctx, email, name, image).Error(0)
}

func (m *mockUserRepo) UpdateRole(ctx context.Context, email, role string) error {
	return m.Called(ctx, email, role).Error(0)
}

func (m *mockUserRepo) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

type mockScholarshipRepo struct{ mock.Mock }

func (m *mockScholarshipRepo) Create(ctx context.Context, s *models.Scholarship) error {
	return m.Called(ctx, s).Error(0)
}

func (m *mockScholarshipRepo) GetByID(ctx context.Context, id uint) (*models.Scholarship, error) {
	args := m.Called(ctx, id)
	var s *models.Scholarship
	if v := args.Get(0); v != nil {
		s = v.(*models.Scholarship)
	}
	return s, args.Error(1)
}

func (m *mockScholarshipRepo) List(ctx context.Context, search string, page, limit int) ([]models.Scholarship, error) {
	args := m.Called(ctx, search, page, limit)
	var out []models.Scholarship
	if v := args.Get(0); v != nil {
		out = v.([]models.Scholarship)
	}
	return out, args.Error(1)
}

func (m *mockScholarshipRepo) ListAll(ctx context.Context) ([]models.Scholarship, error) {
	args := m.Called(ctx)
	var out []models.Scholarship
	if v := args.Get(0); v != nil {
		out = v.([]models.Scholarship)
	}
	return out, args.Error(1)
}

func (m *mockScholarshipRepo) Top(ctx context.Context) ([]models.Scholarship, error) {
	args := m.Called(ctx)
	var out []models.Scholarship
	if v := args.Get(0); v != nil {
		out = v.([]models.Scholarship)
	}
	return out, args.Error(1)
}

func (m *mockScholarshipRepo) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockScholarshipRepo) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	return m.Called(ctx, id, fields).Error(0)
}

func (m *mockScholarshipRepo) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

type mockApplicationRepo struct{ mock.Mock }

func (m *mockApplicationRepo) Create(ctx context.Context, a *models.Application) error {
	return m.Called(ctx, a).Error(0)
}

func (m *mockApplicationRepo) GetByID(ctx context.Context, id uint) (*models.Application, error) {
	args := m.Called(ctx, id)
	var a *models.Application
	if v := args.Get(0); v != nil {
		a = v.(*models.Application)
	}
	return a, args.Error(1)
}

func (m *mockApplicationRepo) ListByEmail(ctx context.Context, email string) ([]models.Application, error) {
	args := m.Called(ctx, email)
	var out []models.Application
	if v := args.Get(0); v != nil {
		out = v.([]models.Application)
	}
	return out, args.Error(1)
}

func (m *mockApplicationRepo) ListAll(ctx context.Context, sortBy string) ([]models.Application, error) {
	args := m.Called(ctx, sortBy)
	var out []models.Application
	if v := args.Get(0); v != nil {
		out = v.([]models.Application)
	}
	return out, args.Error(1)
}

func (m *mockApplicationRepo) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	return m.Called(ctx, id, fields).Error(0)
}

func (m *mockApplicationRepo) UpdateStatus(ctx context.Context, id uint, status string) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *mockApplicationRepo) SetFeedback(ctx context.Context, id uint, feedback string) error {
	return m.Called(ctx, id, feedback).Error(0)
}

func (m *mockApplicationRepo) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

type mockReviewRepo struct{ mock.Mock }

func (m *mockReviewRepo) Create(ctx context.Context, rev *models.Review) error {
	return m.Called(ctx, rev).Error(0)
}

func (m *mockReviewRepo) ExistsFor(ctx context.Context, scholarshipID, reviewerEmail string) (bool, error) {
	args := m.Called(ctx, scholarshipID, reviewerEmail)
	return args.Bool(0), args.Error(1)
}

func (m *mockReviewRepo) GetByID(ctx context.Context, id uint) (*models.Review, error) {
	args := m.Called(ctx, id)
	var rev *models.Review
	if v := args.Get(0); v != nil {
		rev = v.(*models.Review)
	}
	return rev, args.Error(1)
}

func (m *mockReviewRepo) ListAll(ctx context.Context) ([]models.Review, error) {
	args := m.Called(ctx)
	var out []models.Review
	if v := args.Get(0); v != nil {
		out = v.([]models.Review)
	}
	return out, args.Error(1)
}

func (m *mockReviewRepo) ListByScholarship(ctx context.Context, scholarshipID string) ([]models.Review, error) {
	args := m.Called(ctx, scholarshipID)
	var out []models.Review
	if v := args.Get(0); v != nil {
		out = v.([]models.Review)
	}
	return out, args.Error(1)
}

func (m *mockReviewRepo) ListByReviewer(ctx context.Context, email string) ([]models.Review, error) {
	args := m.Called(ctx, email)
	var out []models.Review
	if v := args.Get(0); v != nil {
		out = v.([]models.Review)
	}
	return out, args.Error(1)
}

func (m *mockReviewRepo) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	return m.Called(ctx, id, fields).Error(0)
}

func (m *mockReviewRepo) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

type mockPaymentProvider struct{ mock.Mock }

func (m *mockPaymentProvider) CreateIntent(ctx context.Context, amount int64, currency string) (string, error) {
	args := m.Called(ctx, amount, currency)
	return args.String(0), args.Error(1)
}

type testMocks struct {
	users        *mockUserRepo
	scholarships *mockScholarshipRepo
	applications *mockApplicationRepo
	reviews      *mockReviewRepo
	payments     *mockPaymentProvider
}

// newTestApp builds a Fiber app with the full route table wired to mocks.
// The global rate limiter and Prometheus middleware are skipped; handlers
// and the auth middleware are what these tests exercise.
func newTestApp(t *testing.T) (*fiber.App, *testMocks) {
	t.Helper()

	tokens := auth.NewTokenService(testSecret)
	middleware.InitMiddleware(tokens)

	m := &testMocks{
		users:        &mockUserRepo{},
		scholarships: &mockScholarshipRepo{},
		applications: &mockApplicationRepo{},
		reviews:      &mockReviewRepo{},
		payments:     &mockPaymentProvider{},
	}

	s := &Server{
		tokens:          tokens,
		payments:        m.payments,
		userRepo:        m.users,
		scholarshipRepo: m.scholarships,
		applicationRepo: m.applications,
		reviewRepo:      m.reviews,
	}

	app := fiber.New()
	s.SetupRoutes(app)
	return app, m
}

// bearerToken issues a token for email signed with the test secret.
func bearerToken(t *testing.T, email string) string {
	t.Helper()
	token, err := auth.NewTokenService(testSecret).Issue(map[string]any{"email": email})
	require.NoError(t, err)
	return "Bearer " + token
}

// doRequest runs a request against the app and returns the response with
// its decoded body.
func doRequest(t *testing.T, app *fiber.App, method, path string, body any, authHeader string) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}
