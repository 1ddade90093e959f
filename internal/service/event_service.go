package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	apperr "spark/internal/errors"
	"spark/internal/model"
	"spark/internal/repository"
)

var (
	// ErrEventNotFound is returned by the read and attendance operations.
	ErrEventNotFound = apperr.BadRequest("eventId is invalid")
	errInvalidEvent  = apperr.BadRequest("Invalid eventId")
)

// EventInput carries the editable fields of an event. Time is RFC 3339.
type EventInput struct {
	Name        string
	Description string
	Time        string
	Location    string
}

// EventQuery filters an event listing. Empty times disable that bound;
// negative pagination bounds disable slicing.
type EventQuery struct {
	Search          string
	TimeStart       string
	TimeEnd         string
	PaginationStart int
	PaginationEnd   int
}

// FormInput is one attendance form submission.
type FormInput struct {
	EventID   uint
	NameFirst string
	NameLast  string
	ZID       string
	Email     string
}

// EventService exposes event operations.
type EventService interface {
	Create(ctx context.Context, token string, societyID uint, in EventInput) (uint, error)
	Edit(ctx context.Context, token string, eventID uint, in EventInput) error
	Delete(ctx context.Context, token string, eventID uint) error
	Get(ctx context.Context, eventID uint) (*model.Event, error)
	Attend(ctx context.Context, token string, eventID uint) error
	Unattend(ctx context.Context, token string, eventID uint) error
	// Status reports whether the caller is attending the event.
	Status(ctx context.Context, token string, eventID uint) (bool, error)
	List(ctx context.Context, q EventQuery) ([]model.Event, error)
	// FillForm records a form entry and, when the zId belongs to a user,
	// their attendance. Repeated submissions are no-ops.
	FillForm(ctx context.Context, in FormInput) error
}

type eventService struct {
	sessions SessionService
	repos    repository.Repositories
	tx       repository.Transactor
	validate *validator.Validate
}

// NewEventService creates a new event service.
func NewEventService(
	sessions SessionService,
	repos repository.Repositories,
	tx repository.Transactor,
	validate *validator.Validate,
) EventService {
	return &eventService{sessions: sessions, repos: repos, tx: tx, validate: validate}
}

func (s *eventService) findEvent(ctx context.Context, id uint, notFound error) (*model.Event, error) {
	event, err := s.repos.Events.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, notFound
		}
		return nil, fmt.Errorf("find event: %w", err)
	}
	return event, nil
}

func parseEventTime(value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, apperr.BadRequest("Invalid time")
	}
	return t.UTC(), nil
}

func (s *eventService) Create(ctx context.Context, token string, societyID uint, in EventInput) (uint, error) {
	session, err := s.sessions.Validate(ctx, token)
	if err != nil {
		return 0, err
	}

	if _, err := s.repos.Societies.FindByID(ctx, societyID); err != nil {
		if isNotFound(err) {
			return 0, apperr.BadRequest("Society does not exist")
		}
		return 0, fmt.Errorf("find society: %w", err)
	}

	member, err := membership(ctx, s.repos.Members, session.UserID, societyID)
	if err != nil {
		return 0, err
	}
	if !canManageEvents(&session.User, member) {
		return 0, apperr.Forbidden("Insufficient permissions")
	}

	at, err := parseEventTime(in.Time)
	if err != nil {
		return 0, err
	}

	event := &model.Event{
		SocietyID:   societyID,
		Name:        in.Name,
		Description: in.Description,
		Time:        at,
		Location:    in.Location,
	}
	if err := s.repos.Events.Create(ctx, event); err != nil {
		return 0, fmt.Errorf("create event: %w", err)
	}
	return event.ID, nil
}

func (s *eventService) Edit(ctx context.Context, token string, eventID uint, in EventInput) error {
	session, err := s.sessions.Validate(ctx, token)
	if err != nil {
		return err
	}

	event, err := s.findEvent(ctx, eventID, errInvalidEvent)
	if err != nil {
		return err
	}

	member, err := membership(ctx, s.repos.Members, session.UserID, event.SocietyID)
	if err != nil {
		return err
	}
	if !canManageEvents(&session.User, member) {
		return apperr.Forbidden("Insufficient permissions")
	}

	at, err := parseEventTime(in.Time)
	if err != nil {
		return err
	}

	event.Name = in.Name
	event.Description = in.Description
	event.Time = at
	event.Location = in.Location
	if err := s.repos.Events.Update(ctx, event); err != nil {
		return fmt.Errorf("update event: %w", err)
	}
	return nil
}

func (s *eventService) Delete(ctx context.Context, token string, eventID uint) error {
	session, err := s.sessions.Validate(ctx, token)
	if err != nil {
		return err
	}

	event, err := s.findEvent(ctx, eventID, errInvalidEvent)
	if err != nil {
		return err
	}

	member, err := membership(ctx, s.repos.Members, session.UserID, event.SocietyID)
	if err != nil {
		return err
	}
	if !canDeleteEvents(&session.User, member) {
		return apperr.Forbidden("Insufficient permissions")
	}

	return s.tx.WithTransaction(ctx, func(ctx context.Context, repos repository.Repositories) error {
		if err := repos.Attendance.DeleteByEvents(ctx, []uint{eventID}); err != nil {
			return fmt.Errorf("delete attendance: %w", err)
		}
		if err := repos.Events.Delete(ctx, eventID); err != nil {
			return fmt.Errorf("delete event: %w", err)
		}
		return nil
	})
}

func (s *eventService) Get(ctx context.Context, eventID uint) (*model.Event, error) {
	return s.findEvent(ctx, eventID, ErrEventNotFound)
}

func (s *eventService) Attend(ctx context.Context, token string, eventID uint) error {
	session, err := s.sessions.Validate(ctx, token)
	if err != nil {
		return err
	}
	if _, err := s.findEvent(ctx, eventID, ErrEventNotFound); err != nil {
		return err
	}
	if err := s.repos.Attendance.Attend(ctx, session.UserID, eventID); err != nil {
		return fmt.Errorf("attend event: %w", err)
	}
	return nil
}

func (s *eventService) Unattend(ctx context.Context, token string, eventID uint) error {
	session, err := s.sessions.Validate(ctx, token)
	if err != nil {
		return err
	}
	if _, err := s.findEvent(ctx, eventID, ErrEventNotFound); err != nil {
		return err
	}

	removed, err := s.repos.Attendance.Unattend(ctx, session.UserID, eventID)
	if err != nil {
		return fmt.Errorf("unattend event: %w", err)
	}
	if !removed {
		return apperr.BadRequest("User is not attending")
	}
	return nil
}

func (s *eventService) Status(ctx context.Context, token string, eventID uint) (bool, error) {
	session, err := s.sessions.Validate(ctx, token)
	if err != nil {
		return false, err
	}
	if _, err := s.findEvent(ctx, eventID, ErrEventNotFound); err != nil {
		return false, err
	}

	attending, err := s.repos.Attendance.IsAttending(ctx, session.UserID, eventID)
	if err != nil {
		return false, fmt.Errorf("attendance status: %w", err)
	}
	return attending, nil
}

func (s *eventService) List(ctx context.Context, q EventQuery) ([]model.Event, error) {
	filter := repository.EventFilter{Search: q.Search}
	if q.TimeStart != "" {
		from, err := parseEventTime(q.TimeStart)
		if err != nil {
			return nil, err
		}
		filter.From = &from
	}
	if q.TimeEnd != "" {
		to, err := parseEventTime(q.TimeEnd)
		if err != nil {
			return nil, err
		}
		filter.To = &to
	}

	events, err := s.repos.Events.Search(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("search events: %w", err)
	}
	return paginate(events, q.PaginationStart, q.PaginationEnd), nil
}

func (s *eventService) FillForm(ctx context.Context, in FormInput) error {
	if err := s.validate.Var(in.Email, "required,email"); err != nil {
		return apperr.BadRequest("Invalid email")
	}
	if _, err := s.findEvent(ctx, in.EventID, ErrEventNotFound); err != nil {
		return err
	}

	form := &model.AttendanceForm{
		EventID:   in.EventID,
		ZID:       in.ZID,
		Email:     in.Email,
		NameFirst: in.NameFirst,
		NameLast:  in.NameLast,
	}
	if err := s.repos.Attendance.RecordForm(ctx, form); err != nil {
		return fmt.Errorf("record form: %w", err)
	}

	user, err := s.repos.Users.FindByZID(ctx, in.ZID)
	if err != nil {
		if isNotFound(err) {
			return nil
		}
		return fmt.Errorf("find form user: %w", err)
	}
	if err := s.repos.Attendance.MarkAttended(ctx, user.ID, in.EventID); err != nil {
		return fmt.Errorf("mark attended: %w", err)
	}
	return nil
}
