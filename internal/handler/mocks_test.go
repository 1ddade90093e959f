package handler

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"

	"spark/internal/model"
	"spark/internal/service"
)

type testValidator struct {
	validator *validator.Validate
}

func (v *testValidator) Validate(i interface{}) error {
	return v.validator.Struct(i)
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = &testValidator{validator: validator.New()}
	return e
}

// newContext builds a request context. A non-empty body is sent as JSON.
func newContext(e *echo.Echo, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}


// MockAuthService is a mock implementation of AuthService.
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, in service.RegisterInput) (string, error) {
	args := m.Called(ctx, in)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (string, error) {
	args := m.Called(ctx, email, password)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) Logout(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

// MockResetService is a mock implementation of ResetService.
type MockResetService struct {
	mock.Mock
}

func (m *MockResetService) RequestReset(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func (m *MockResetService) UseReset(ctx context.Context, code, password string) error {
	args := m.Called(ctx, code, password)
	return args.Error(0)
}

// MockPermService is a mock implementation of PermService.
type MockPermService struct {
	mock.Mock
}

func (m *MockPermService) AllocateSite(ctx context.Context, token string, userID uint, level int) error {
	args := m.Called(ctx, token, userID, level)
	return args.Error(0)
}

func (m *MockPermService) AllocateSociety(ctx context.Context, token string, userID, societyID uint, level int) error {
	args := m.Called(ctx, token, userID, societyID, level)
	return args.Error(0)
}

// MockAdminService is a mock implementation of AdminService.
type MockAdminService struct {
	mock.Mock
}

func (m *MockAdminService) ListUsers(ctx context.Context, token string) ([]model.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockAdminService) UserByZID(ctx context.Context, zID string) (*model.User, error) {
	args := m.Called(ctx, zID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockAdminService) ListApplications(ctx context.Context, token string) ([]model.Application, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Application), args.Error(1)
}

func (m *MockAdminService) Approve(ctx context.Context, token string, applicationID uint) (uint, error) {
	args := m.Called(ctx, token, applicationID)
	return args.Get(0).(uint), args.Error(1)
}

func (m *MockAdminService) Deny(ctx context.Context, token string, applicationID uint) error {
	args := m.Called(ctx, token, applicationID)
	return args.Error(0)
}

func (m *MockAdminService) RemoveUser(ctx context.Context, token string, userID uint) error {
	args := m.Called(ctx, token, userID)
	return args.Error(0)
}

// MockSocietyService is a mock implementation of SocietyService.
type MockSocietyService struct {
	mock.Mock
}

func (m *MockSocietyService) Apply(ctx context.Context, token, name, description string) (uint, error) {
	args := m.Called(ctx, token, name, description)
	return args.Get(0).(uint), args.Error(1)
}

func (m *MockSocietyService) Join(ctx context.Context, token string, societyID uint) error {
	args := m.Called(ctx, token, societyID)
	return args.Error(0)
}

func (m *MockSocietyService) View(ctx context.Context, societyID uint) (*model.Society, error) {
	args := m.Called(ctx, societyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Society), args.Error(1)
}

func (m *MockSocietyService) Members(ctx context.Context, societyID uint) ([]model.SocietyMember, error) {
	args := m.Called(ctx, societyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.SocietyMember), args.Error(1)
}

func (m *MockSocietyService) Edit(ctx context.Context, token string, societyID uint, name, description string) error {
	args := m.Called(ctx, token, societyID, name, description)
	return args.Error(0)
}

func (m *MockSocietyService) Events(ctx context.Context, societyID uint) ([]model.Event, error) {
	args := m.Called(ctx, societyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Event), args.Error(1)
}

func (m *MockSocietyService) List(ctx context.Context, search string, start, end int) ([]model.Society, error) {
	args := m.Called(ctx, search, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Society), args.Error(1)
}

func (m *MockSocietyService) Delete(ctx context.Context, token string, societyID uint) error {
	args := m.Called(ctx, token, societyID)
	return args.Error(0)
}

// MockProfileService is a mock implementation of ProfileService.
type MockProfileService struct {
	mock.Mock
}

func (m *MockProfileService) View(ctx context.Context, token string) (*service.Profile, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Profile), args.Error(1)
}

func (m *MockProfileService) Edit(ctx context.Context, token, nameFirst, nameLast, email string) (*service.Profile, error) {
	args := m.Called(ctx, token, nameFirst, nameLast, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Profile), args.Error(1)
}

func (m *MockProfileService) Societies(ctx context.Context, token string) ([]model.Society, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Society), args.Error(1)
}

func (m *MockProfileService) Events(ctx context.Context, token string) (*service.ProfileEvents, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ProfileEvents), args.Error(1)
}

// MockEventService is a mock implementation of EventService.
type MockEventService struct {
	mock.Mock
}

func (m *MockEventService) Create(ctx context.Context, token string, societyID uint, in service.EventInput) (uint, error) {
	args := m.Called(ctx, token, societyID, in)
	return args.Get(0).(uint), args.Error(1)
}

func (m *MockEventService) Edit(ctx context.Context, token string, eventID uint, in service.EventInput) error {
	args := m.Called(ctx, token, eventID, in)
	return args.Error(0)
}

func (m *MockEventService) Delete(ctx context.Context, token string, eventID uint) error {
	args := m.Called(ctx, token, eventID)
	return args.Error(0)
}

func (m *MockEventService) Get(ctx context.Context, eventID uint) (*model.Event, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Event), args.Error(1)
}

func (m *MockEventService) Attend(ctx context.Context, token string, eventID uint) error {
	args := m.Called(ctx, token, eventID)
	return args.Error(0)
}

func (m *MockEventService) Unattend(ctx context.Context, token string, eventID uint) error {
	args := m.Called(ctx, token, eventID)
	return args.Error(0)
}

func (m *MockEventService) Status(ctx context.Context, token string, eventID uint) (bool, error) {
	args := m.Called(ctx, token, eventID)
	return args.Bool(0), args.Error(1)
}

func (m *MockEventService) List(ctx context.Context, q service.EventQuery) ([]model.Event, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Event), args.Error(1)
}

func (m *MockEventService) FillForm(ctx context.Context, in service.FormInput) error {
	args := m.Called(ctx, in)
	return args.Error(0)
}
