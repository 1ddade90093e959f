package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	apperr "spark/internal/errors"
	"spark/internal/model"
	"spark/internal/repository"
)

// Profile is the signed-in user's own view of their account.
type Profile struct {
	UserID         uint
	Email          string
	NameFirst      string
	NameLast       string
	ZID            string
	Webcal         string
	AdminSocieties []uint
	ModSocieties   []uint
	IsSiteAdmin    bool
}

// ProfileEvents splits a user's events into declared and recorded attendance.
type ProfileEvents struct {
	Attending []model.Event
	Attended  []model.Event
}

// ProfileService exposes the signed-in user's profile.
type ProfileService interface {
	View(ctx context.Context, token string) (*Profile, error)
	Edit(ctx context.Context, token, nameFirst, nameLast, email string) (*Profile, error)
	Societies(ctx context.Context, token string) ([]model.Society, error)
	Events(ctx context.Context, token string) (*ProfileEvents, error)
}

type profileService struct {
	sessions SessionService
	repos    repository.Repositories
	validate *validator.Validate
}

// NewProfileService creates a new profile service.
func NewProfileService(sessions SessionService, repos repository.Repositories, validate *validator.Validate) ProfileService {
	return &profileService{sessions: sessions, repos: repos, validate: validate}
}

// webcalPath is where a user's calendar feed is published.
func webcalPath(zID string) string {
	return "/calendar/" + zID + ".ics"
}

func (s *profileService) View(ctx context.Context, token string) (*Profile, error) {
	session, err := s.sessions.Validate(ctx, token)
	if err != nil {
		return nil, err
	}
	return s.profile(ctx, &session.User)
}

func (s *profileService) profile(ctx context.Context, user *model.User) (*Profile, error) {
	adminOf, err := s.repos.Members.SocietyIDsByRole(ctx, user.ID, model.RoleAdmin)
	if err != nil {
		return nil, fmt.Errorf("list admin societies: %w", err)
	}
	modOf, err := s.repos.Members.SocietyIDsByRole(ctx, user.ID, model.RoleModerator)
	if err != nil {
		return nil, fmt.Errorf("list moderator societies: %w", err)
	}

	return &Profile{
		UserID:         user.ID,
		Email:          user.Email,
		NameFirst:      user.NameFirst,
		NameLast:       user.NameLast,
		ZID:            user.ZID,
		Webcal:         webcalPath(user.ZID),
		AdminSocieties: adminOf,
		ModSocieties:   modOf,
		IsSiteAdmin:    user.IsAdmin,
	}, nil
}

func (s *profileService) Edit(ctx context.Context, token, nameFirst, nameLast, email string) (*Profile, error) {
	session, err := s.sessions.Validate(ctx, token)
	if err != nil {
		return nil, err
	}

	if !namePattern.MatchString(nameFirst) {
		return nil, apperr.BadRequest("Invalid first name")
	}
	if !namePattern.MatchString(nameLast) {
		return nil, apperr.BadRequest("Invalid last name")
	}

	invalidEmail := apperr.BadRequest("Invalid email address")
	email = strings.ToLower(email)
	if err := s.validate.Var(email, "required,email"); err != nil {
		return nil, invalidEmail
	}
	if other, err := s.repos.Users.FindByEmail(ctx, email); err == nil {
		if other.ID != session.UserID {
			return nil, invalidEmail
		}
	} else if !isNotFound(err) {
		return nil, fmt.Errorf("check email: %w", err)
	}

	user := session.User
	user.NameFirst = strings.ToLower(nameFirst)
	user.NameLast = strings.ToLower(nameLast)
	user.Email = email
	if err := s.repos.Users.UpdateProfile(ctx, user.ID, user.NameFirst, user.NameLast, user.Email); err != nil {
		if isDuplicate(err) {
			return nil, invalidEmail
		}
		if isNotFound(err) {
			return nil, apperr.ErrInvalidToken
		}
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return s.profile(ctx, &user)
}

func (s *profileService) Societies(ctx context.Context, token string) ([]model.Society, error) {
	session, err := s.sessions.Validate(ctx, token)
	if err != nil {
		return nil, err
	}
	societies, err := s.repos.Societies.ListByMember(ctx, session.UserID)
	if err != nil {
		return nil, fmt.Errorf("list joined societies: %w", err)
	}
	return societies, nil
}

func (s *profileService) Events(ctx context.Context, token string) (*ProfileEvents, error) {
	session, err := s.sessions.Validate(ctx, token)
	if err != nil {
		return nil, err
	}

	attending, err := s.repos.Attendance.AttendingEvents(ctx, session.UserID)
	if err != nil {
		return nil, fmt.Errorf("list attending events: %w", err)
	}
	attended, err := s.repos.Attendance.AttendedEvents(ctx, session.UserID)
	if err != nil {
		return nil, fmt.Errorf("list attended events: %w", err)
	}
	return &ProfileEvents{Attending: attending, Attended: attended}, nil
}
