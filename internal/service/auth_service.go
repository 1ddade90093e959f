package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"

	apperr "spark/internal/errors"
	"spark/internal/model"
	"spark/internal/repository"
)

var (
	// ErrInvalidCredentials is returned when email or password is incorrect.
	ErrInvalidCredentials = apperr.BadRequest("Invalid Credentials")
	// ErrInvalidEmail is returned when a registration email is malformed or taken.
	ErrInvalidEmail = apperr.BadRequest("Invalid Email")
	// ErrInvalidPassword is returned for passwords bcrypt cannot hash.
	ErrInvalidPassword = apperr.BadRequest("Invalid password")
)

// RegisterInput carries the fields of a registration request.
type RegisterInput struct {
	Email     string
	Password  string
	NameFirst string
	NameLast  string
	ZID       string
}

// AuthService handles registration, login and logout.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (string, error)
	Login(ctx context.Context, email, password string) (string, error)
	Logout(ctx context.Context, token string) error
}

type authService struct {
	users      repository.UserRepository
	tx         repository.Transactor
	sessions   SessionService
	validate   *validator.Validate
	bcryptCost int
}

// NewAuthService creates a new authentication service.
func NewAuthService(
	users repository.UserRepository,
	tx repository.Transactor,
	sessions SessionService,
	validate *validator.Validate,
	bcryptCost int,
) AuthService {
	return &authService{
		users:      users,
		tx:         tx,
		sessions:   sessions,
		validate:   validate,
		bcryptCost: bcryptCost,
	}
}

// Register creates a user and its first session. The first user ever
// registered becomes a site admin.
func (s *authService) Register(ctx context.Context, in RegisterInput) (string, error) {
	if !namePattern.MatchString(in.NameFirst) {
		return "", apperr.BadRequest("Invalid first name")
	}
	if !namePattern.MatchString(in.NameLast) {
		return "", apperr.BadRequest("Invalid last name")
	}
	if !zIDPattern.MatchString(in.ZID) {
		return "", apperr.BadRequest("zId format is incorrect " + in.ZID)
	}
	nameFirst := strings.ToLower(in.NameFirst)
	nameLast := strings.ToLower(in.NameLast)

	if _, err := s.users.FindByZID(ctx, in.ZID); err == nil {
		return "", apperr.BadRequest("Invalid zId")
	} else if !isNotFound(err) {
		return "", fmt.Errorf("check zId: %w", err)
	}

	email := strings.ToLower(in.Email)
	if err := s.validate.Var(email, "required,email"); err != nil {
		return "", ErrInvalidEmail
	}
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return "", ErrInvalidEmail
	} else if !isNotFound(err) {
		return "", fmt.Errorf("check email: %w", err)
	}

	if len(in.Password) > maxPasswordBytes {
		return "", ErrInvalidPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	var session *model.Session
	err = s.tx.WithTransaction(ctx, func(ctx context.Context, repos repository.Repositories) error {
		count, err := repos.Users.Count(ctx)
		if err != nil {
			return fmt.Errorf("count users: %w", err)
		}

		user := &model.User{
			Email:        email,
			NameFirst:    nameFirst,
			NameLast:     nameLast,
			ZID:          in.ZID,
			PasswordHash: string(hash),
			IsAdmin:      count == 0,
		}
		if err := repos.Users.Create(ctx, user); err != nil {
			if isDuplicate(err) {
				return ErrInvalidEmail
			}
			return fmt.Errorf("create user: %w", err)
		}

		session = &model.Session{UserID: user.ID}
		if err := repos.Sessions.Create(ctx, session); err != nil {
			return fmt.Errorf("create session: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	return s.sessions.Token(session)
}

// Login authenticates a user and opens a new session.
func (s *authService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.FindByEmail(ctx, strings.ToLower(email))
	if err != nil {
		if isNotFound(err) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	return s.sessions.Create(ctx, user.ID)
}

// Logout destroys the session behind token.
func (s *authService) Logout(ctx context.Context, token string) error {
	return s.sessions.Destroy(ctx, token)
}
