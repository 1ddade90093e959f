package service

import (
	"context"
	"fmt"

	"spark/internal/auth"
	apperr "spark/internal/errors"
	"spark/internal/logger"
	"spark/internal/model"
	"spark/internal/repository"
)

// SessionService issues, resolves and destroys session tokens.
type SessionService interface {
	Create(ctx context.Context, userID uint) (string, error)
	Token(session *model.Session) (string, error)
	// Validate resolves token to its live session with User loaded.
	Validate(ctx context.Context, token string) (*model.Session, error)
	Destroy(ctx context.Context, token string) error
	// Forget revokes cached entries for sessions about to be removed in bulk.
	Forget(ctx context.Context, sessionIDs []string) error
}

type sessionService struct {
	sessions repository.SessionRepository
	users    repository.UserRepository
	tokens   *auth.TokenService
	cache    auth.SessionCacheInterface
	log      *logger.Logger
}

// NewSessionService creates a new session service.
func NewSessionService(
	sessions repository.SessionRepository,
	users repository.UserRepository,
	tokens *auth.TokenService,
	cache auth.SessionCacheInterface,
	log *logger.Logger,
) SessionService {
	return &sessionService{
		sessions: sessions,
		users:    users,
		tokens:   tokens,
		cache:    cache,
		log:      log,
	}
}

func (s *sessionService) Create(ctx context.Context, userID uint) (string, error) {
	session := &model.Session{UserID: userID}
	if err := s.sessions.Create(ctx, session); err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}
	return s.Token(session)
}

func (s *sessionService) Token(session *model.Session) (string, error) {
	token, err := s.tokens.Sign(session.ID, session.UserID)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return token, nil
}

func (s *sessionService) Validate(ctx context.Context, token string) (*model.Session, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return nil, apperr.ErrInvalidToken
	}

	if cached, ok := s.cache.Get(ctx, claims.ID); ok {
		if cached.Revoked || cached.UserID != claims.UserID {
			return nil, apperr.ErrInvalidToken
		}
		user, err := s.users.FindByID(ctx, cached.UserID)
		if err != nil {
			if isNotFound(err) {
				return nil, apperr.ErrInvalidToken
			}
			return nil, fmt.Errorf("load session user: %w", err)
		}
		return &model.Session{
			ID:        claims.ID,
			UserID:    cached.UserID,
			CreatedAt: cached.CreatedAt,
			User:      *user,
		}, nil
	}

	session, err := s.sessions.FindByID(ctx, claims.ID)
	if err != nil {
		if isNotFound(err) {
			return nil, apperr.ErrInvalidToken
		}
		return nil, fmt.Errorf("find session: %w", err)
	}
	if session.UserID != claims.UserID {
		return nil, apperr.ErrInvalidToken
	}

	entry := auth.CachedSession{UserID: session.UserID, CreatedAt: session.CreatedAt}
	if err := s.cache.Store(ctx, session.ID, entry); err != nil {
		s.log.Warn("cache session", "session_id", session.ID, "error", err)
	}
	return session, nil
}

func (s *sessionService) Destroy(ctx context.Context, token string) error {
	session, err := s.Validate(ctx, token)
	if err != nil {
		return err
	}

	if err := s.cache.Revoke(ctx, session.ID); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	if err := s.sessions.Delete(ctx, session.ID); err != nil {
		if isNotFound(err) {
			return apperr.ErrInvalidToken
		}
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (s *sessionService) Forget(ctx context.Context, sessionIDs []string) error {
	if err := s.cache.Revoke(ctx, sessionIDs...); err != nil {
		return fmt.Errorf("revoke sessions: %w", err)
	}
	return nil
}
