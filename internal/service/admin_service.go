package service

import (
	"context"
	"fmt"

	apperr "spark/internal/errors"
	"spark/internal/model"
	"spark/internal/repository"
)

// ErrNotSiteAdmin is returned when a site-admin-only action is attempted by
// anyone else.
var ErrNotSiteAdmin = apperr.Forbidden("User is not a site admin")

// AdminService covers site administration: users and society applications.
type AdminService interface {
	ListUsers(ctx context.Context, token string) ([]model.User, error)
	UserByZID(ctx context.Context, zID string) (*model.User, error)
	ListApplications(ctx context.Context, token string) ([]model.Application, error)
	// Approve founds the society described by a pending application and
	// returns its id.
	Approve(ctx context.Context, token string, applicationID uint) (uint, error)
	Deny(ctx context.Context, token string, applicationID uint) error
	RemoveUser(ctx context.Context, token string, userID uint) error
}

type adminService struct {
	sessions SessionService
	repos    repository.Repositories
	tx       repository.Transactor
}

// NewAdminService creates a new admin service.
func NewAdminService(sessions SessionService, repos repository.Repositories, tx repository.Transactor) AdminService {
	return &adminService{sessions: sessions, repos: repos, tx: tx}
}

func (s *adminService) requireSiteAdmin(ctx context.Context, token string) (*model.Session, error) {
	session, err := s.sessions.Validate(ctx, token)
	if err != nil {
		return nil, err
	}
	if !session.User.IsAdmin {
		return nil, ErrNotSiteAdmin
	}
	return session, nil
}

func (s *adminService) ListUsers(ctx context.Context, token string) ([]model.User, error) {
	if _, err := s.requireSiteAdmin(ctx, token); err != nil {
		return nil, err
	}
	users, err := s.repos.Users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (s *adminService) UserByZID(ctx context.Context, zID string) (*model.User, error) {
	user, err := s.repos.Users.FindByZID(ctx, zID)
	if err != nil {
		if isNotFound(err) {
			return nil, apperr.BadRequest("Invalid zId")
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

func (s *adminService) ListApplications(ctx context.Context, token string) ([]model.Application, error) {
	if _, err := s.requireSiteAdmin(ctx, token); err != nil {
		return nil, err
	}
	applications, err := s.repos.Applications.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	return applications, nil
}

func (s *adminService) Approve(ctx context.Context, token string, applicationID uint) (uint, error) {
	if _, err := s.requireSiteAdmin(ctx, token); err != nil {
		return 0, err
	}

	invalid := apperr.BadRequest("Invalid applicationId")
	application, err := s.repos.Applications.FindByID(ctx, applicationID)
	if err != nil {
		if isNotFound(err) {
			return 0, invalid
		}
		return 0, fmt.Errorf("find application: %w", err)
	}
	if application.Status != model.ApplicationStatusPending {
		return 0, invalid
	}

	var societyID uint
	err = s.tx.WithTransaction(ctx, func(ctx context.Context, repos repository.Repositories) error {
		society := &model.Society{
			Name:        application.Name,
			Description: application.Description,
			PhotoURL:    application.PhotoURL,
			Members: []model.SocietyMember{
				{UserID: application.ApplicantID, Role: model.RoleAdmin},
			},
		}
		if err := repos.Societies.Create(ctx, society); err != nil {
			if isDuplicate(err) {
				return ErrInvalidSocietyName
			}
			return fmt.Errorf("create society: %w", err)
		}

		// A concurrent decision may have landed since the read above.
		decided, err := repos.Applications.Decide(ctx, application.ID, model.ApplicationStatusApproved)
		if err != nil {
			return fmt.Errorf("approve application: %w", err)
		}
		if !decided {
			return invalid
		}
		societyID = society.ID
		return nil
	})
	if err != nil {
		return 0, err
	}
	return societyID, nil
}

func (s *adminService) Deny(ctx context.Context, token string, applicationID uint) error {
	if _, err := s.requireSiteAdmin(ctx, token); err != nil {
		return err
	}

	decided, err := s.repos.Applications.Decide(ctx, applicationID, model.ApplicationStatusDenied)
	if err != nil {
		return fmt.Errorf("deny application: %w", err)
	}
	if !decided {
		return apperr.BadRequest("Invalid Application ID")
	}
	return nil
}

// RemoveUser deletes a user and everything that references them. Cached
// sessions are evicted before any row is removed.
func (s *adminService) RemoveUser(ctx context.Context, token string, userID uint) error {
	session, err := s.sessions.Validate(ctx, token)
	if err != nil {
		return err
	}

	if _, err := s.repos.Users.FindByID(ctx, userID); err != nil {
		if isNotFound(err) {
			return apperr.BadRequest("Invalid userId")
		}
		return fmt.Errorf("find user: %w", err)
	}

	if !session.User.IsAdmin {
		return apperr.Forbidden("Insufficient permissions")
	}

	sessionIDs, err := s.repos.Sessions.ListIDsByUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("list sessions: %w", err)
	}
	if err := s.sessions.Forget(ctx, sessionIDs); err != nil {
		return err
	}

	return s.tx.WithTransaction(ctx, func(ctx context.Context, repos repository.Repositories) error {
		if err := repos.Attendance.DeleteByUser(ctx, userID); err != nil {
			return fmt.Errorf("delete attendance: %w", err)
		}
		if err := repos.Members.DeleteByUser(ctx, userID); err != nil {
			return fmt.Errorf("delete memberships: %w", err)
		}
		if err := repos.ResetCodes.DeleteByUser(ctx, userID); err != nil {
			return fmt.Errorf("delete reset codes: %w", err)
		}
		if err := repos.Applications.DeleteByApplicant(ctx, userID); err != nil {
			return fmt.Errorf("delete applications: %w", err)
		}
		if err := repos.Sessions.DeleteByUser(ctx, userID); err != nil {
			return fmt.Errorf("delete sessions: %w", err)
		}
		if err := repos.Users.Delete(ctx, userID); err != nil {
			if isNotFound(err) {
				return apperr.BadRequest("Invalid userId")
			}
			return fmt.Errorf("delete user: %w", err)
		}
		return nil
	})
}
