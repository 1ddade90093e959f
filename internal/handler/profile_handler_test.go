package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"spark/internal/errors"
	"spark/internal/model"
	"spark/internal/service"
)

func TestProfileHandler_View(t *testing.T) {
	profiles := new(MockProfileService)
	h := NewProfileHandler(profiles)
	e := newEcho()

	profiles.On("View", mock.Anything, "tok").Return(&service.Profile{
		UserID:         2,
		Email:          "ada@example.com",
		NameFirst:      "Ada",
		NameLast:       "Lovelace",
		ZID:            "z1234567",
		Webcal:         "/calendar/z1234567.ics",
		AdminSocieties: []uint{3},
	}, nil)

	c, rec := newContext(e, http.MethodGet, "/profile/view?token=tok", "")

	require.NoError(t, h.View(c))
	assert.JSONEq(t, `{
		"userId":2,"email":"ada@example.com","nameFirst":"Ada","nameLast":"Lovelace","zId":"z1234567",
		"webcal":"/calendar/z1234567.ics","adminSocieties":[3],"modSocieties":[],"isSiteAdmin":false
	}`, rec.Body.String())
}

func TestProfileHandler_Edit_InvalidToken(t *testing.T) {
	profiles := new(MockProfileService)
	h := NewProfileHandler(profiles)
	e := newEcho()

	profiles.On("Edit", mock.Anything, "bad", "Ada", "Byron", "ada@example.com").Return(nil, errors.ErrInvalidToken)

	c, _ := newContext(e, http.MethodPut, "/profile/edit",
		`{"token":"bad","nameFirst":"Ada","nameLast":"Byron","email":"ada@example.com"}`)

	assertHTTPError(t, h.Edit(c), http.StatusUnauthorized, "Invalid token")
}

func TestProfileHandler_Events(t *testing.T) {
	profiles := new(MockProfileService)
	h := NewProfileHandler(profiles)
	e := newEcho()

	profiles.On("Events", mock.Anything, "tok").Return(&service.ProfileEvents{
		Attending: []model.Event{{ID: 5, SocietyID: 3, Name: "Blitz"}},
	}, nil)

	c, rec := newContext(e, http.MethodGet, "/profile/events?token=tok", "")

	require.NoError(t, h.Events(c))
	assert.Contains(t, rec.Body.String(), `"attending":[{"eventId":5`)
	assert.Contains(t, rec.Body.String(), `"attended":[]`)
}
