package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"

	apperr "spark/internal/errors"
	"spark/internal/logger"
	"spark/internal/mail"
	"spark/internal/model"
	"spark/internal/repository"
)

const (
	resetCodeAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	resetCodeLength   = 6
	resetCodeAttempts = 5
	resetSubject      = "Reset Code"
)

// ResetService handles password reset codes.
type ResetService interface {
	// RequestReset mails a reset code if a user owns email. It succeeds
	// whether or not such a user exists.
	RequestReset(ctx context.Context, email string) error
	// UseReset replaces the password bound to code and consumes the code.
	UseReset(ctx context.Context, code, password string) error
}

type resetService struct {
	users      repository.UserRepository
	codes      repository.ResetCodeRepository
	tx         repository.Transactor
	mailer     mail.Mailer
	validate   *validator.Validate
	from       string
	bcryptCost int
	log        *logger.Logger
	newCode    func() (string, error)
}

// NewResetService creates a new password reset service.
func NewResetService(
	users repository.UserRepository,
	codes repository.ResetCodeRepository,
	tx repository.Transactor,
	mailer mail.Mailer,
	validate *validator.Validate,
	from string,
	bcryptCost int,
	log *logger.Logger,
) ResetService {
	return &resetService{
		users:      users,
		codes:      codes,
		tx:         tx,
		mailer:     mailer,
		validate:   validate,
		from:       from,
		bcryptCost: bcryptCost,
		log:        log,
		newCode:    generateResetCode,
	}
}

func (s *resetService) RequestReset(ctx context.Context, email string) error {
	email = strings.ToLower(email)
	if err := s.validate.Var(email, "required,email"); err != nil {
		return apperr.BadRequest("Invalid email format")
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if !isNotFound(err) {
			s.log.Error("reset lookup", "error", err)
		}
		return nil
	}

	code, err := s.storeCode(ctx, user.ID)
	if err != nil {
		s.log.Error("store reset code", "user_id", user.ID, "error", err)
		return nil
	}

	if err := s.mailer.Send(ctx, user.Email, resetSubject, code); err != nil {
		s.log.Error("send reset code", "user_id", user.ID, "error", err)
	}
	return nil
}

// storeCode persists a fresh code for userID, retrying on collisions.
func (s *resetService) storeCode(ctx context.Context, userID uint) (string, error) {
	for i := 0; i < resetCodeAttempts; i++ {
		code, err := s.newCode()
		if err != nil {
			return "", fmt.Errorf("generate reset code: %w", err)
		}
		err = s.codes.Create(ctx, &model.ResetCode{ID: code, UserID: userID})
		if err == nil {
			return code, nil
		}
		if !isDuplicate(err) {
			return "", fmt.Errorf("create reset code: %w", err)
		}
	}
	return "", fmt.Errorf("no free reset code after %d attempts", resetCodeAttempts)
}

func (s *resetService) UseReset(ctx context.Context, code, password string) error {
	rc, err := s.codes.FindByCode(ctx, code)
	if err != nil {
		if isNotFound(err) {
			return apperr.BadRequest("Invalid code")
		}
		return fmt.Errorf("find reset code: %w", err)
	}

	if len(password) > maxPasswordBytes {
		return ErrInvalidPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	return s.tx.WithTransaction(ctx, func(ctx context.Context, repos repository.Repositories) error {
		if err := repos.Users.UpdatePassword(ctx, rc.UserID, string(hash)); err != nil {
			if isNotFound(err) {
				return apperr.BadRequest("Invalid code")
			}
			return fmt.Errorf("update password: %w", err)
		}
		if err := repos.ResetCodes.Delete(ctx, rc.ID); err != nil {
			if isNotFound(err) {
				return apperr.BadRequest("Invalid code")
			}
			return fmt.Errorf("consume reset code: %w", err)
		}
		return nil
	})
}

func generateResetCode() (string, error) {
	var b strings.Builder
	limit := big.NewInt(int64(len(resetCodeAlphabet)))
	for i := 0; i < resetCodeLength; i++ {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", err
		}
		b.WriteByte(resetCodeAlphabet[n.Int64()])
	}
	return b.String(), nil
}
