package service

import (
	"context"
	"fmt"
	"time"

	"spark/internal/cache"
	apperr "spark/internal/errors"
	"spark/internal/logger"
	"spark/internal/model"
	"spark/internal/repository"
)

const maxSocietyNameLength = 100

// ErrInvalidSocietyName is returned for malformed or taken society names.
var ErrInvalidSocietyName = apperr.BadRequest("Invalid society name")

// SocietyService exposes society operations.
type SocietyService interface {
	Apply(ctx context.Context, token, name, description string) (uint, error)
	Join(ctx context.Context, token string, societyID uint) error
	View(ctx context.Context, societyID uint) (*model.Society, error)
	Members(ctx context.Context, societyID uint) ([]model.SocietyMember, error)
	Edit(ctx context.Context, token string, societyID uint, name, description string) error
	// Events lists the society's upcoming events.
	Events(ctx context.Context, societyID uint) ([]model.Event, error)
	List(ctx context.Context, search string, start, end int) ([]model.Society, error)
	Delete(ctx context.Context, token string, societyID uint) error
}

type societyService struct {
	sessions SessionService
	repos    repository.Repositories
	tx       repository.Transactor
	cache    *cache.Client
	cacheTTL time.Duration
	log      *logger.Logger
	now      func() time.Time
}

// NewSocietyService builds a SocietyService with repositories and cache.
func NewSocietyService(
	sessions SessionService,
	repos repository.Repositories,
	tx repository.Transactor,
	cache *cache.Client,
	cacheTTL time.Duration,
	log *logger.Logger,
) SocietyService {
	return &societyService{
		sessions: sessions,
		repos:    repos,
		tx:       tx,
		cache:    cache,
		cacheTTL: cacheTTL,
		log:      log,
		now:      time.Now,
	}
}

func (s *societyService) cacheKey(id uint) string {
	return fmt.Sprintf("society:%d", id)
}

// validateName checks format and that no society already uses name.
func (s *societyService) validateName(ctx context.Context, name string) error {
	if len(name) == 0 || len(name) > maxSocietyNameLength || !societyNamePattern.MatchString(name) {
		return ErrInvalidSocietyName
	}
	if _, err := s.repos.Societies.FindByName(ctx, name); err == nil {
		return ErrInvalidSocietyName
	} else if !isNotFound(err) {
		return fmt.Errorf("check society name: %w", err)
	}
	return nil
}

func (s *societyService) findSociety(ctx context.Context, id uint, notFound error) (*model.Society, error) {
	society, err := s.repos.Societies.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, notFound
		}
		return nil, fmt.Errorf("find society: %w", err)
	}
	return society, nil
}

// membership returns the user's membership in a society, or nil if none.
func membership(ctx context.Context, members repository.MemberRepository, userID, societyID uint) (*model.SocietyMember, error) {
	member, err := members.Find(ctx, userID, societyID)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("find membership: %w", err)
	}
	return member, nil
}

func (s *societyService) Apply(ctx context.Context, token, name, description string) (uint, error) {
	session, err := s.sessions.Validate(ctx, token)
	if err != nil {
		return 0, err
	}
	if err := s.validateName(ctx, name); err != nil {
		return 0, err
	}

	application := &model.Application{
		Name:        name,
		Description: description,
		ApplicantID: session.UserID,
		Status:      model.ApplicationStatusPending,
	}
	if err := s.repos.Applications.Create(ctx, application); err != nil {
		return 0, fmt.Errorf("create application: %w", err)
	}
	return application.ID, nil
}

func (s *societyService) Join(ctx context.Context, token string, societyID uint) error {
	session, err := s.sessions.Validate(ctx, token)
	if err != nil {
		return err
	}
	if _, err := s.findSociety(ctx, societyID, apperr.BadRequest("Invalid societyId")); err != nil {
		return err
	}
	if err := s.repos.Members.Join(ctx, session.UserID, societyID); err != nil {
		return fmt.Errorf("join society: %w", err)
	}
	return nil
}

func (s *societyService) View(ctx context.Context, societyID uint) (*model.Society, error) {
	var cached model.Society
	if s.cache.GetJSON(ctx, s.cacheKey(societyID), &cached) && cached.ID == societyID {
		return &cached, nil
	}

	society, err := s.findSociety(ctx, societyID, apperr.BadRequest("Invalid societyId"))
	if err != nil {
		return nil, err
	}

	if err := s.cache.SetJSON(ctx, s.cacheKey(societyID), society, s.cacheTTL); err != nil {
		s.log.Warn("cache society", "society_id", societyID, "error", err)
	}
	return society, nil
}

func (s *societyService) Members(ctx context.Context, societyID uint) ([]model.SocietyMember, error) {
	if _, err := s.findSociety(ctx, societyID, apperr.BadRequest("Invalid societyId")); err != nil {
		return nil, err
	}
	members, err := s.repos.Members.ListBySociety(ctx, societyID)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	return members, nil
}

func (s *societyService) Edit(ctx context.Context, token string, societyID uint, name, description string) error {
	session, err := s.sessions.Validate(ctx, token)
	if err != nil {
		return err
	}

	society, err := s.findSociety(ctx, societyID, apperr.BadRequest("Society does not exist"))
	if err != nil {
		return err
	}

	member, err := membership(ctx, s.repos.Members, session.UserID, societyID)
	if err != nil {
		return err
	}
	if !canEditSociety(&session.User, member) {
		return apperr.Forbidden("Insufficient permissions")
	}

	if name != society.Name {
		if err := s.validateName(ctx, name); err != nil {
			return err
		}
	}

	if err := s.repos.Societies.Update(ctx, societyID, name, description); err != nil {
		if isDuplicate(err) {
			return ErrInvalidSocietyName
		}
		return fmt.Errorf("update society: %w", err)
	}
	s.evict(ctx, societyID)
	return nil
}

func (s *societyService) Events(ctx context.Context, societyID uint) ([]model.Event, error) {
	if _, err := s.findSociety(ctx, societyID, apperr.BadRequest("Invalid SocietyId")); err != nil {
		return nil, err
	}

	now := s.now()
	events, err := s.repos.Events.Search(ctx, repository.EventFilter{SocietyID: societyID, From: &now})
	if err != nil {
		return nil, fmt.Errorf("list society events: %w", err)
	}
	return events, nil
}

func (s *societyService) List(ctx context.Context, search string, start, end int) ([]model.Society, error) {
	societies, err := s.repos.Societies.Search(ctx, search)
	if err != nil {
		return nil, fmt.Errorf("search societies: %w", err)
	}
	return paginate(societies, start, end), nil
}

// Delete removes a society with its events, their attendance and forms, and
// its memberships.
func (s *societyService) Delete(ctx context.Context, token string, societyID uint) error {
	session, err := s.sessions.Validate(ctx, token)
	if err != nil {
		return err
	}
	if _, err := s.findSociety(ctx, societyID, apperr.BadRequest("Invalid societyId")); err != nil {
		return err
	}
	if !canDeleteSociety(&session.User) {
		return apperr.Forbidden("Insufficient permissions")
	}

	err = s.tx.WithTransaction(ctx, func(ctx context.Context, repos repository.Repositories) error {
		eventIDs, err := repos.Events.IDsBySociety(ctx, societyID)
		if err != nil {
			return fmt.Errorf("list society events: %w", err)
		}
		if err := repos.Attendance.DeleteByEvents(ctx, eventIDs); err != nil {
			return fmt.Errorf("delete attendance: %w", err)
		}
		if err := repos.Events.DeleteBySociety(ctx, societyID); err != nil {
			return fmt.Errorf("delete events: %w", err)
		}
		if err := repos.Members.DeleteBySociety(ctx, societyID); err != nil {
			return fmt.Errorf("delete memberships: %w", err)
		}
		if err := repos.Societies.Delete(ctx, societyID); err != nil {
			return fmt.Errorf("delete society: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.evict(ctx, societyID)
	return nil
}

func (s *societyService) evict(ctx context.Context, societyID uint) {
	if err := s.cache.Delete(ctx, s.cacheKey(societyID)); err != nil {
		s.log.Warn("evict society", "society_id", societyID, "error", err)
	}
}
