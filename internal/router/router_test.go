package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spark/internal/auth"
	"spark/internal/config"
	"spark/internal/handler"
	"spark/internal/model"
	"spark/internal/service"
	"spark/internal/testutil"
)

func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()
	return newTestServerWithProfile(t, nil)
}

func newTestServerWithProfile(t *testing.T, profiles service.ProfileService) *echo.Echo {
	t.Helper()
	e := echo.New()
	Register(e, config.Default(), validator.New(), testutil.MakeNoopLogger().Logger, Handlers{
		Auth:    handler.NewAuthHandler(nil, nil),
		Perm:    handler.NewPermHandler(nil),
		Admin:   handler.NewAdminHandler(nil),
		Society: handler.NewSocietyHandler(nil),
		Profile: handler.NewProfileHandler(profiles),
		Event:   handler.NewEventHandler(nil),
	})
	return e
}

// profileStub answers View with a fixed profile and records the token.
type profileStub struct {
	token string
}

func (p *profileStub) View(_ context.Context, token string) (*service.Profile, error) {
	p.token = token
	return &service.Profile{UserID: 3, Email: "ada@example.com"}, nil
}

func (p *profileStub) Edit(context.Context, string, string, string, string) (*service.Profile, error) {
	return nil, nil
}

func (p *profileStub) Societies(context.Context, string) ([]model.Society, error) {
	return nil, nil
}

func (p *profileStub) Events(context.Context, string) (*service.ProfileEvents, error) {
	return nil, nil
}

func TestRegister_Routes(t *testing.T) {
	e := newTestServer(t)

	registered := map[string]bool{}
	for _, r := range e.Routes() {
		registered[r.Method+" "+r.Path] = true
	}

	for _, route := range []string{
		"GET /healthz",
		"GET /swagger/*",
		"POST /auth/register",
		"POST /auth/login",
		"PUT /auth/logout",
		"GET /auth/reset",
		"POST /auth/reset",
		"POST /perm/site/allocate",
		"POST /perm/society/allocate",
		"GET /admin/user/get",
		"GET /admin/users",
		"GET /admin/application/list",
		"PUT /admin/application/approve",
		"PUT /admin/application/deny",
		"DELETE /admin/user/remove",
		"POST /society/apply",
		"POST /society/join",
		"GET /society/view",
		"GET /society/members",
		"PUT /society/edit",
		"GET /society/events",
		"GET /society/list",
		"DELETE /society",
		"GET /profile/view",
		"PUT /profile/edit",
		"GET /profile/societies",
		"GET /profile/events",
		"GET /event",
		"POST /event",
		"DELETE /event",
		"PUT /event/edit",
		"PUT /event/attend",
		"DELETE /event/attend",
		"GET /event/status",
		"GET /event/list",
		"POST /event/form",
	} {
		assert.True(t, registered[route], "missing route %s", route)
	}
}

func TestRegister_Healthz(t *testing.T) {
	e := newTestServer(t)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
}

func TestRegister_ErrorBody(t *testing.T) {
	e := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/event/form", strings.NewReader(`{"email":"ada@example.com"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"eventId is invalid","code":"BAD_REQUEST"}`, rec.Body.String())
}

func TestRegister_SwaggerDoc(t *testing.T) {
	e := newTestServer(t)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"/society/list"`)
}

func TestRegister_QueryTokenGuard_RejectsBadTokens(t *testing.T) {
	e := newTestServer(t)

	for _, target := range []string{
		"/profile/view",
		"/profile/view?token=garbage",
		"/profile/events?token=" + signToken(t, "other-secret"),
		"/admin/users?token=",
		"/event/status?token=garbage&eventId=1",
		"/society?token=garbage&societyId=1",
	} {
		method := http.MethodGet
		if strings.HasPrefix(target, "/society?") {
			method = http.MethodDelete
		}
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(method, target, nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code, target)
		assert.JSONEq(t, `{"error":"Invalid token","code":"UNAUTHORIZED"}`, rec.Body.String(), target)
	}
}

func TestRegister_QueryTokenGuard_PassesSignedToken(t *testing.T) {
	profiles := &profileStub{}
	e := newTestServerWithProfile(t, profiles)
	token := signToken(t, config.Default().Auth.TokenSecret)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/profile/view?token="+token, nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, token, profiles.token)
	assert.Contains(t, rec.Body.String(), `"ada@example.com"`)
}

func signToken(t *testing.T, secret string) string {
	t.Helper()
	token, err := auth.NewTokenService(secret).Sign("sid-1", 3)
	require.NoError(t, err)
	return token
}
