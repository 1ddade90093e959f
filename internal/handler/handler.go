// Package handler adapts HTTP requests to service calls and shapes their
// JSON responses.
package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"spark/internal/errors"
	"spark/internal/model"
	"spark/internal/service"
)

// EmptyResponse is returned by operations that produce no data.
type EmptyResponse struct{}

// respond maps a service error onto the error response body.
func respond(c echo.Context, err error) error {
	httpErr := errors.MapErrorToHTTP(err)
	if httpErr.StatusCode >= http.StatusInternalServerError {
		slog.Default().ErrorContext(c.Request().Context(), "request failed",
			"method", c.Request().Method,
			"path", c.Path(),
			"error", err,
		)
	}
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}

func invalidBody() error {
	return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
		Error: "invalid request body",
		Code:  "BAD_REQUEST",
	})
}

// bindTokenRequest binds a body that carries a session token. Fields of the
// wrong type keep their zero value, so the token check still decides the
// response.
func bindTokenRequest(c echo.Context, req any) {
	if err := c.Bind(req); err != nil {
		slog.Default().DebugContext(c.Request().Context(), "partial request body",
			"path", c.Path(),
			"error", err,
		)
	}
}

// queryID parses an id query parameter. Unparsable ids become 0, which never
// names a stored row.
func queryID(c echo.Context, name string) uint {
	id, err := strconv.ParseUint(c.QueryParam(name), 10, 64)
	if err != nil {
		return 0
	}
	return uint(id)
}

// queryBound parses a pagination bound. Missing or unparsable bounds become
// -1, which disables pagination.
func queryBound(c echo.Context, name string) int {
	n, err := strconv.Atoi(c.QueryParam(name))
	if err != nil {
		return -1
	}
	return n
}

// TokenResponse carries a session token.
type TokenResponse struct {
	Token string `json:"token"`
}

// UserResponse is the admin view of a user.
type UserResponse struct {
	ID        uint   `json:"id"`
	Email     string `json:"email"`
	NameFirst string `json:"nameFirst"`
	NameLast  string `json:"nameLast"`
	ZID       string `json:"zId"`
	IsAdmin   bool   `json:"isAdmin"`
}

func toUserResponse(u *model.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		NameFirst: u.NameFirst,
		NameLast:  u.NameLast,
		ZID:       u.ZID,
		IsAdmin:   u.IsAdmin,
	}
}

// SocietyResponse is the public view of a society.
type SocietyResponse struct {
	SocietyID   uint   `json:"societyId"`
	SocietyName string `json:"societyName"`
	Description string `json:"description"`
	PhotoURL    string `json:"photoURL"`
}

func toSocietyResponse(s *model.Society) SocietyResponse {
	return SocietyResponse{
		SocietyID:   s.ID,
		SocietyName: s.Name,
		Description: s.Description,
		PhotoURL:    s.PhotoURL,
	}
}

func toSocietyResponses(societies []model.Society) []SocietyResponse {
	out := make([]SocietyResponse, 0, len(societies))
	for i := range societies {
		out = append(out, toSocietyResponse(&societies[i]))
	}
	return out
}

// SocietiesResponse wraps a list of societies.
type SocietiesResponse struct {
	Societies []SocietyResponse `json:"societies"`
}

// EventResponse is the public view of an event.
type EventResponse struct {
	EventID     uint      `json:"eventId"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Time        time.Time `json:"time"`
	Location    string    `json:"location"`
	SocietyID   uint      `json:"societyId"`
}

func toEventResponse(e *model.Event) EventResponse {
	return EventResponse{
		EventID:     e.ID,
		Name:        e.Name,
		Description: e.Description,
		Time:        e.Time,
		Location:    e.Location,
		SocietyID:   e.SocietyID,
	}
}

func toEventResponses(events []model.Event) []EventResponse {
	out := make([]EventResponse, 0, len(events))
	for i := range events {
		out = append(out, toEventResponse(&events[i]))
	}
	return out
}

// EventsResponse wraps a list of events.
type EventsResponse struct {
	Events []EventResponse `json:"events"`
}

// ProfileResponse is the signed-in user's profile.
type ProfileResponse struct {
	UserID         uint   `json:"userId"`
	Email          string `json:"email"`
	NameFirst      string `json:"nameFirst"`
	NameLast       string `json:"nameLast"`
	ZID            string `json:"zId"`
	Webcal         string `json:"webcal"`
	AdminSocieties []uint `json:"adminSocieties"`
	ModSocieties   []uint `json:"modSocieties"`
	IsSiteAdmin    bool   `json:"isSiteAdmin"`
}

func toProfileResponse(p *service.Profile) ProfileResponse {
	return ProfileResponse{
		UserID:         p.UserID,
		Email:          p.Email,
		NameFirst:      p.NameFirst,
		NameLast:       p.NameLast,
		ZID:            p.ZID,
		Webcal:         p.Webcal,
		AdminSocieties: nonNil(p.AdminSocieties),
		ModSocieties:   nonNil(p.ModSocieties),
		IsSiteAdmin:    p.IsSiteAdmin,
	}
}

func nonNil(ids []uint) []uint {
	if ids == nil {
		return []uint{}
	}
	return ids
}
