package service

import (
	"context"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperr "spark/internal/errors"
	"spark/internal/model"
)

func newTestAuthService(repos *mockRepos, sessions *MockSessionService) (AuthService, *fakeTransactor) {
	tx := &fakeTransactor{repos: repos.repositories()}
	return NewAuthService(repos.users, tx, sessions, validator.New(), bcrypt.MinCost), tx
}

func validRegistration() RegisterInput {
	return RegisterInput{
		Email:     "Ana@Example.com",
		Password:  "hunter22",
		NameFirst: "Ana",
		NameLast:  "Lee",
		ZID:       "z1234567",
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*RegisterInput)
		setupMock func(*mockRepos)
		message   string
	}{
		{
			name:    "first name with digits",
			mutate:  func(in *RegisterInput) { in.NameFirst = "An4" },
			message: "Invalid first name",
		},
		{
			name: "first name checked before last name",
			mutate: func(in *RegisterInput) {
				in.NameFirst = ""
				in.NameLast = ""
			},
			message: "Invalid first name",
		},
		{
			name:    "last name with punctuation",
			mutate:  func(in *RegisterInput) { in.NameLast = "O'Neil" },
			message: "Invalid last name",
		},
		{
			name:    "zId format",
			mutate:  func(in *RegisterInput) { in.ZID = "x123" },
			message: "zId format is incorrect x123",
		},
		{
			name:   "zId taken",
			mutate: func(in *RegisterInput) {},
			setupMock: func(r *mockRepos) {
				r.users.On("FindByZID", mock.Anything, "z1234567").Return(&model.User{ID: 1}, nil)
			},
			message: "Invalid zId",
		},
		{
			name:   "email malformed",
			mutate: func(in *RegisterInput) { in.Email = "not-an-email" },
			setupMock: func(r *mockRepos) {
				r.users.On("FindByZID", mock.Anything, "z1234567").Return(nil, gorm.ErrRecordNotFound)
			},
			message: "Invalid Email",
		},
		{
			name:   "email taken in another case",
			mutate: func(in *RegisterInput) {},
			setupMock: func(r *mockRepos) {
				r.users.On("FindByZID", mock.Anything, "z1234567").Return(nil, gorm.ErrRecordNotFound)
				r.users.On("FindByEmail", mock.Anything, "ana@example.com").Return(&model.User{ID: 1}, nil)
			},
			message: "Invalid Email",
		},
		{
			name:   "password over bcrypt limit",
			mutate: func(in *RegisterInput) { in.Password = strings.Repeat("p", 73) },
			setupMock: func(r *mockRepos) {
				r.users.On("FindByZID", mock.Anything, "z1234567").Return(nil, gorm.ErrRecordNotFound)
				r.users.On("FindByEmail", mock.Anything, "ana@example.com").Return(nil, gorm.ErrRecordNotFound)
			},
			message: "Invalid password",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repos := newMockRepos()
			if tt.setupMock != nil {
				tt.setupMock(repos)
			}
			svc, tx := newTestAuthService(repos, new(MockSessionService))

			in := validRegistration()
			tt.mutate(&in)
			_, err := svc.Register(context.Background(), in)

			require.Error(t, err)
			assert.Equal(t, apperr.KindBadRequest, kindOf(err))
			assert.Equal(t, tt.message, err.Error())
			assert.Zero(t, tx.calls)
		})
	}
}

func TestAuthService_Register_FirstUserIsAdmin(t *testing.T) {
	tests := []struct {
		name      string
		existing  int64
		wantAdmin bool
	}{
		{name: "first user", existing: 0, wantAdmin: true},
		{name: "second user", existing: 1, wantAdmin: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repos := newMockRepos()
			sessions := new(MockSessionService)
			svc, tx := newTestAuthService(repos, sessions)

			var created *model.User
			repos.users.On("FindByZID", mock.Anything, "z1234567").Return(nil, gorm.ErrRecordNotFound)
			repos.users.On("FindByEmail", mock.Anything, "ana@example.com").Return(nil, gorm.ErrRecordNotFound)
			repos.users.On("Count", mock.Anything).Return(tt.existing, nil)
			repos.users.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).
				Run(func(args mock.Arguments) {
					created = args.Get(1).(*model.User)
					created.ID = 11
				}).Return(nil)
			repos.sessions.On("Create", mock.Anything, mock.MatchedBy(func(s *model.Session) bool {
				return s.UserID == 11
			})).Return(nil)
			sessions.On("Token", mock.AnythingOfType("*model.Session")).Return("tok", nil)

			token, err := svc.Register(context.Background(), validRegistration())
			require.NoError(t, err)
			assert.Equal(t, "tok", token)
			assert.Equal(t, 1, tx.calls)

			require.NotNil(t, created)
			assert.Equal(t, tt.wantAdmin, created.IsAdmin)
			assert.Equal(t, "ana@example.com", created.Email)
			assert.Equal(t, "ana", created.NameFirst)
			assert.Equal(t, "lee", created.NameLast)
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("hunter22")))
		})
	}
}

func TestAuthService_Register_RaceOnUniqueKey(t *testing.T) {
	repos := newMockRepos()
	svc, _ := newTestAuthService(repos, new(MockSessionService))

	repos.users.On("FindByZID", mock.Anything, "z1234567").Return(nil, gorm.ErrRecordNotFound)
	repos.users.On("FindByEmail", mock.Anything, "ana@example.com").Return(nil, gorm.ErrRecordNotFound)
	repos.users.On("Count", mock.Anything).Return(int64(4), nil)
	repos.users.On("Create", mock.Anything, mock.Anything).Return(gorm.ErrDuplicatedKey)

	_, err := svc.Register(context.Background(), validRegistration())
	assert.ErrorIs(t, err, ErrInvalidEmail)
}

func TestAuthService_Login_SameErrorForUnknownEmailAndWrongPassword(t *testing.T) {
	repos := newMockRepos()
	sessions := new(MockSessionService)
	svc, _ := newTestAuthService(repos, sessions)
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("right"), bcrypt.MinCost)
	require.NoError(t, err)
	repos.users.On("FindByEmail", mock.Anything, "ghost@nowhere.com").Return(nil, gorm.ErrRecordNotFound)
	repos.users.On("FindByEmail", mock.Anything, "real@example.com").
		Return(&model.User{ID: 2, PasswordHash: string(hash)}, nil)

	_, errGhost := svc.Login(ctx, "ghost@nowhere.com", "x")
	_, errWrong := svc.Login(ctx, "real@example.com", "wrongpass")

	require.Error(t, errGhost)
	require.Error(t, errWrong)
	assert.Equal(t, errGhost, errWrong)
	assert.Equal(t, "Invalid Credentials", errGhost.Error())
	sessions.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuthService_Login_CreatesFreshSession(t *testing.T) {
	repos := newMockRepos()
	sessions := new(MockSessionService)
	svc, _ := newTestAuthService(repos, sessions)

	hash, err := bcrypt.GenerateFromPassword([]byte("right"), bcrypt.MinCost)
	require.NoError(t, err)
	repos.users.On("FindByEmail", mock.Anything, "real@example.com").
		Return(&model.User{ID: 2, PasswordHash: string(hash)}, nil)
	sessions.On("Create", mock.Anything, uint(2)).Return("tok-2", nil)

	token, err := svc.Login(context.Background(), "REAL@example.com", "right")
	require.NoError(t, err)
	assert.Equal(t, "tok-2", token)
}

func TestAuthService_Logout(t *testing.T) {
	sessions := new(MockSessionService)
	svc, _ := newTestAuthService(newMockRepos(), sessions)

	sessions.On("Destroy", mock.Anything, "tok").Return(apperr.ErrInvalidToken)

	err := svc.Logout(context.Background(), "tok")
	assert.ErrorIs(t, err, apperr.ErrInvalidToken)
}
