package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"spark/internal/errors"
)

func TestPermHandler_AllocateSite(t *testing.T) {
	perms := new(MockPermService)
	h := NewPermHandler(perms)
	e := newEcho()

	perms.On("AllocateSite", mock.Anything, "tok", uint(7), 1).Return(nil)

	c, rec := newContext(e, http.MethodPost, "/perm/site/allocate", `{"token":"tok","userId":7,"permLevel":1}`)

	require.NoError(t, h.AllocateSite(c))
	assert.JSONEq(t, `{}`, rec.Body.String())
	perms.AssertExpectations(t)
}

func TestPermHandler_AllocateSociety_Forbidden(t *testing.T) {
	perms := new(MockPermService)
	h := NewPermHandler(perms)
	e := newEcho()

	perms.On("AllocateSociety", mock.Anything, "tok", uint(7), uint(3), 1).
		Return(errors.Forbidden("Insufficient permissions"))

	c, _ := newContext(e, http.MethodPost, "/perm/society/allocate",
		`{"token":"tok","userId":7,"societyId":3,"permLevel":1}`)

	assertHTTPError(t, h.AllocateSociety(c), http.StatusForbidden, "Insufficient permissions")
}

func TestPermHandler_AllocateSite_MistypedFieldStillChecksToken(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		token  string
		userID uint
		level  int
		err    error
		status int
	}{
		{
			name:   "bad token",
			body:   `{"token":"bad","userId":7,"permLevel":"1"}`,
			token:  "bad",
			userID: 7,
			level:  0,
			err:    errors.ErrInvalidToken,
			status: http.StatusUnauthorized,
		},
		{
			name:   "valid token",
			body:   `{"token":"tok","userId":"7","permLevel":1}`,
			token:  "tok",
			userID: 0,
			level:  1,
			err:    errors.BadRequest("userId is invalid"),
			status: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			perms := new(MockPermService)
			h := NewPermHandler(perms)
			e := newEcho()

			perms.On("AllocateSite", mock.Anything, tt.token, tt.userID, tt.level).Return(tt.err)

			c, _ := newContext(e, http.MethodPost, "/perm/site/allocate", tt.body)

			assertHTTPError(t, h.AllocateSite(c), tt.status, tt.err.Error())
			perms.AssertExpectations(t)
		})
	}
}
