package service

import (
	"context"
	"fmt"

	apperr "spark/internal/errors"
	"spark/internal/model"
	"spark/internal/repository"
)

// Site permission levels as they travel on the wire.
const (
	SiteLevelPromote = 1
	SiteLevelDemote  = 2
)

// PermService allocates site-wide and per-society permissions. The two
// operations follow different rules and are kept separate.
type PermService interface {
	AllocateSite(ctx context.Context, token string, userID uint, level int) error
	AllocateSociety(ctx context.Context, token string, userID, societyID uint, level int) error
}

type permService struct {
	sessions  SessionService
	users     repository.UserRepository
	societies repository.SocietyRepository
	members   repository.MemberRepository
}

// NewPermService creates a new permission service.
func NewPermService(
	sessions SessionService,
	users repository.UserRepository,
	societies repository.SocietyRepository,
	members repository.MemberRepository,
) PermService {
	return &permService{
		sessions:  sessions,
		users:     users,
		societies: societies,
		members:   members,
	}
}

// AllocateSite sets or clears the target's site admin flag. Any site admin
// may change any user's flag, their own included.
func (s *permService) AllocateSite(ctx context.Context, token string, userID uint, level int) error {
	session, err := s.sessions.Validate(ctx, token)
	if err != nil {
		return err
	}

	if _, err := s.users.FindByID(ctx, userID); err != nil {
		if isNotFound(err) {
			return apperr.BadRequest("Invalid userId")
		}
		return fmt.Errorf("find target user: %w", err)
	}

	if level != SiteLevelPromote && level != SiteLevelDemote {
		return apperr.BadRequest("Invalid permLevel")
	}

	actor, err := s.users.FindByID(ctx, session.UserID)
	if err != nil {
		if isNotFound(err) {
			return apperr.ErrInvalidToken
		}
		return fmt.Errorf("find acting user: %w", err)
	}
	if !actor.IsAdmin {
		return apperr.Forbidden("User is not a site admin")
	}

	if err := s.users.SetAdmin(ctx, userID, level == SiteLevelPromote); err != nil {
		return fmt.Errorf("set admin flag: %w", err)
	}
	return nil
}

// AllocateSociety overwrites the target's role in a society. Unless the actor
// is a site admin, they must outrank or match both the target's current role
// and the requested one.
func (s *permService) AllocateSociety(ctx context.Context, token string, userID, societyID uint, level int) error {
	session, err := s.sessions.Validate(ctx, token)
	if err != nil {
		return err
	}

	if _, err := s.users.FindByID(ctx, userID); err != nil {
		if isNotFound(err) {
			return apperr.BadRequest("Invalid userId")
		}
		return fmt.Errorf("find target user: %w", err)
	}

	if _, err := s.societies.FindByID(ctx, societyID); err != nil {
		if isNotFound(err) {
			return apperr.BadRequest("Invalid societyId")
		}
		return fmt.Errorf("find society: %w", err)
	}

	role, ok := model.RoleFromLevel(level)
	if !ok {
		return apperr.BadRequest("Invalid permLevel")
	}

	target, err := s.members.Find(ctx, userID, societyID)
	if err != nil {
		if isNotFound(err) {
			return apperr.BadRequest("User is not a member of the society")
		}
		return fmt.Errorf("find target membership: %w", err)
	}

	if !session.User.IsAdmin {
		actor, err := s.members.Find(ctx, session.UserID, societyID)
		if err != nil {
			if isNotFound(err) {
				return apperr.Forbidden("Token user is not a member of the society")
			}
			return fmt.Errorf("find acting membership: %w", err)
		}
		if actor.Role.Rank() > target.Role.Rank() {
			return apperr.Forbidden("Token user does not have permission to manage this user")
		}
		if actor.Role.Rank() > level {
			return apperr.Forbidden("Token user does not have permission to manage this permLevel")
		}
	}

	if err := s.members.UpdateRole(ctx, userID, societyID, role); err != nil {
		return fmt.Errorf("update role: %w", err)
	}
	return nil
}
