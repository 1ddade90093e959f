package service

import (
	"context"
	"errors"

	"github.com/stretchr/testify/mock"

	"spark/internal/auth"
	apperr "spark/internal/errors"
	"spark/internal/model"
	"spark/internal/repository"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByZID(ctx context.Context, zID string) (*model.User, error) {
	args := m.Called(ctx, zID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserRepository) UpdateProfile(ctx context.Context, id uint, nameFirst, nameLast, email string) error {
	args := m.Called(ctx, id, nameFirst, nameLast, email)
	return args.Error(0)
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, id uint, passwordHash string) error {
	args := m.Called(ctx, id, passwordHash)
	return args.Error(0)
}

func (m *MockUserRepository) SetAdmin(ctx context.Context, id uint, isAdmin bool) error {
	args := m.Called(ctx, id, isAdmin)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockSessionRepository is a mock implementation of SessionRepository.
type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) Create(ctx context.Context, session *model.Session) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockSessionRepository) FindByID(ctx context.Context, id string) (*model.Session, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Session), args.Error(1)
}

func (m *MockSessionRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSessionRepository) ListIDsByUser(ctx context.Context, userID uint) ([]string, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockSessionRepository) DeleteByUser(ctx context.Context, userID uint) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// MockSocietyRepository is a mock implementation of SocietyRepository.
type MockSocietyRepository struct {
	mock.Mock
}

func (m *MockSocietyRepository) Create(ctx context.Context, society *model.Society) error {
	args := m.Called(ctx, society)
	return args.Error(0)
}

func (m *MockSocietyRepository) FindByID(ctx context.Context, id uint) (*model.Society, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Society), args.Error(1)
}

func (m *MockSocietyRepository) FindByName(ctx context.Context, name string) (*model.Society, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Society), args.Error(1)
}

func (m *MockSocietyRepository) Update(ctx context.Context, id uint, name, description string) error {
	args := m.Called(ctx, id, name, description)
	return args.Error(0)
}

func (m *MockSocietyRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSocietyRepository) Search(ctx context.Context, search string) ([]model.Society, error) {
	args := m.Called(ctx, search)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Society), args.Error(1)
}

func (m *MockSocietyRepository) ListByMember(ctx context.Context, userID uint) ([]model.Society, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Society), args.Error(1)
}

// MockMemberRepository is a mock implementation of MemberRepository.
type MockMemberRepository struct {
	mock.Mock
}

func (m *MockMemberRepository) Find(ctx context.Context, userID, societyID uint) (*model.SocietyMember, error) {
	args := m.Called(ctx, userID, societyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SocietyMember), args.Error(1)
}

func (m *MockMemberRepository) Join(ctx context.Context, userID, societyID uint) error {
	args := m.Called(ctx, userID, societyID)
	return args.Error(0)
}

func (m *MockMemberRepository) UpdateRole(ctx context.Context, userID, societyID uint, role model.Role) error {
	args := m.Called(ctx, userID, societyID, role)
	return args.Error(0)
}

func (m *MockMemberRepository) ListBySociety(ctx context.Context, societyID uint) ([]model.SocietyMember, error) {
	args := m.Called(ctx, societyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.SocietyMember), args.Error(1)
}

func (m *MockMemberRepository) SocietyIDsByRole(ctx context.Context, userID uint, role model.Role) ([]uint, error) {
	args := m.Called(ctx, userID, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uint), args.Error(1)
}

func (m *MockMemberRepository) DeleteByUser(ctx context.Context, userID uint) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockMemberRepository) DeleteBySociety(ctx context.Context, societyID uint) error {
	args := m.Called(ctx, societyID)
	return args.Error(0)
}

// MockApplicationRepository is a mock implementation of ApplicationRepository.
type MockApplicationRepository struct {
	mock.Mock
}

func (m *MockApplicationRepository) Create(ctx context.Context, application *model.Application) error {
	args := m.Called(ctx, application)
	return args.Error(0)
}

func (m *MockApplicationRepository) FindByID(ctx context.Context, id uint) (*model.Application, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Application), args.Error(1)
}

func (m *MockApplicationRepository) List(ctx context.Context) ([]model.Application, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Application), args.Error(1)
}

func (m *MockApplicationRepository) Decide(ctx context.Context, id uint, status model.ApplicationStatus) (bool, error) {
	args := m.Called(ctx, id, status)
	return args.Bool(0), args.Error(1)
}

func (m *MockApplicationRepository) DeleteByApplicant(ctx context.Context, userID uint) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// MockEventRepository is a mock implementation of EventRepository.
type MockEventRepository struct {
	mock.Mock
}

func (m *MockEventRepository) Create(ctx context.Context, event *model.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockEventRepository) FindByID(ctx context.Context, id uint) (*model.Event, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Event), args.Error(1)
}

func (m *MockEventRepository) Update(ctx context.Context, event *model.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockEventRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockEventRepository) Search(ctx context.Context, filter repository.EventFilter) ([]model.Event, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Event), args.Error(1)
}

func (m *MockEventRepository) IDsBySociety(ctx context.Context, societyID uint) ([]uint, error) {
	args := m.Called(ctx, societyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uint), args.Error(1)
}

func (m *MockEventRepository) DeleteBySociety(ctx context.Context, societyID uint) error {
	args := m.Called(ctx, societyID)
	return args.Error(0)
}

// MockAttendanceRepository is a mock implementation of AttendanceRepository.
type MockAttendanceRepository struct {
	mock.Mock
}

func (m *MockAttendanceRepository) Attend(ctx context.Context, userID, eventID uint) error {
	args := m.Called(ctx, userID, eventID)
	return args.Error(0)
}

func (m *MockAttendanceRepository) Unattend(ctx context.Context, userID, eventID uint) (bool, error) {
	args := m.Called(ctx, userID, eventID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAttendanceRepository) IsAttending(ctx context.Context, userID, eventID uint) (bool, error) {
	args := m.Called(ctx, userID, eventID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAttendanceRepository) AttendingEvents(ctx context.Context, userID uint) ([]model.Event, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Event), args.Error(1)
}

func (m *MockAttendanceRepository) AttendedEvents(ctx context.Context, userID uint) ([]model.Event, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Event), args.Error(1)
}

func (m *MockAttendanceRepository) RecordForm(ctx context.Context, form *model.AttendanceForm) error {
	args := m.Called(ctx, form)
	return args.Error(0)
}

func (m *MockAttendanceRepository) MarkAttended(ctx context.Context, userID, eventID uint) error {
	args := m.Called(ctx, userID, eventID)
	return args.Error(0)
}

func (m *MockAttendanceRepository) DeleteByUser(ctx context.Context, userID uint) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockAttendanceRepository) DeleteByEvents(ctx context.Context, eventIDs []uint) error {
	args := m.Called(ctx, eventIDs)
	return args.Error(0)
}

// MockResetCodeRepository is a mock implementation of ResetCodeRepository.
type MockResetCodeRepository struct {
	mock.Mock
}

func (m *MockResetCodeRepository) Create(ctx context.Context, code *model.ResetCode) error {
	args := m.Called(ctx, code)
	return args.Error(0)
}

func (m *MockResetCodeRepository) FindByCode(ctx context.Context, code string) (*model.ResetCode, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ResetCode), args.Error(1)
}

func (m *MockResetCodeRepository) Delete(ctx context.Context, code string) error {
	args := m.Called(ctx, code)
	return args.Error(0)
}

func (m *MockResetCodeRepository) DeleteByUser(ctx context.Context, userID uint) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// MockSessionCache is a mock implementation of SessionCacheInterface.
type MockSessionCache struct {
	mock.Mock
}

func (m *MockSessionCache) Get(ctx context.Context, sessionID string) (*auth.CachedSession, bool) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}
	return args.Get(0).(*auth.CachedSession), args.Bool(1)
}

func (m *MockSessionCache) Store(ctx context.Context, sessionID string, session auth.CachedSession) error {
	args := m.Called(ctx, sessionID, session)
	return args.Error(0)
}

func (m *MockSessionCache) Revoke(ctx context.Context, sessionIDs ...string) error {
	args := m.Called(ctx, sessionIDs)
	return args.Error(0)
}

// MockSessionService is a mock implementation of SessionService.
type MockSessionService struct {
	mock.Mock
}

func (m *MockSessionService) Create(ctx context.Context, userID uint) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

func (m *MockSessionService) Token(session *model.Session) (string, error) {
	args := m.Called(session)
	return args.String(0), args.Error(1)
}

func (m *MockSessionService) Validate(ctx context.Context, token string) (*model.Session, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Session), args.Error(1)
}

func (m *MockSessionService) Destroy(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockSessionService) Forget(ctx context.Context, sessionIDs []string) error {
	args := m.Called(ctx, sessionIDs)
	return args.Error(0)
}

// MockMailer is a mock implementation of mail.Mailer.
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) Send(ctx context.Context, to, subject, body string) error {
	args := m.Called(ctx, to, subject, body)
	return args.Error(0)
}

// mockRepos bundles one mock per repository.
type mockRepos struct {
	users        *MockUserRepository
	sessions     *MockSessionRepository
	societies    *MockSocietyRepository
	members      *MockMemberRepository
	applications *MockApplicationRepository
	events       *MockEventRepository
	attendance   *MockAttendanceRepository
	resetCodes   *MockResetCodeRepository
}

func newMockRepos() *mockRepos {
	return &mockRepos{
		users:        new(MockUserRepository),
		sessions:     new(MockSessionRepository),
		societies:    new(MockSocietyRepository),
		members:      new(MockMemberRepository),
		applications: new(MockApplicationRepository),
		events:       new(MockEventRepository),
		attendance:   new(MockAttendanceRepository),
		resetCodes:   new(MockResetCodeRepository),
	}
}

func (m *mockRepos) repositories() repository.Repositories {
	return repository.Repositories{
		Users:        m.users,
		Sessions:     m.sessions,
		Societies:    m.societies,
		Members:      m.members,
		Applications: m.applications,
		Events:       m.events,
		Attendance:   m.attendance,
		ResetCodes:   m.resetCodes,
	}
}

// fakeTransactor runs the unit of work against the mocks directly.
type fakeTransactor struct {
	repos repository.Repositories
	calls int
}

func (f *fakeTransactor) WithTransaction(ctx context.Context, fn func(ctx context.Context, repos repository.Repositories) error) error {
	f.calls++
	return fn(ctx, f.repos)
}

// sessionFor returns a live session for user, as Validate would.
func sessionFor(user model.User) *model.Session {
	return &model.Session{ID: "session-" + user.ZID, UserID: user.ID, User: user}
}

// kindOf returns the business kind carried by err, or zero for other errors.
func kindOf(err error) apperr.Kind {
	var e *apperr.Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
