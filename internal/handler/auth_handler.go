package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"spark/internal/service"
)

// AuthHandler handles authentication and password reset endpoints.
type AuthHandler struct {
	authService  service.AuthService
	resetService service.ResetService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService, resetService service.ResetService) *AuthHandler {
	return &AuthHandler{authService: authService, resetService: resetService}
}

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	NameFirst string `json:"nameFirst"`
	NameLast  string `json:"nameLast"`
	ZID       string `json:"zId"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenRequest carries only a session token.
type TokenRequest struct {
	Token string `json:"token"`
}

// ResetRequest represents a password reset request.
type ResetRequest struct {
	Code     string `json:"code"`
	Password string `json:"password"`
}

// Register godoc
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 200 {object} TokenResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody()
	}

	token, err := h.authService.Register(c.Request().Context(), service.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		NameFirst: req.NameFirst,
		NameLast:  req.NameLast,
		ZID:       req.ZID,
	})
	if err != nil {
		return respond(c, err)
	}

	return c.JSON(http.StatusOK, TokenResponse{Token: token})
}

// Login godoc
// @Summary Login user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} TokenResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody()
	}

	token, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return respond(c, err)
	}

	return c.JSON(http.StatusOK, TokenResponse{Token: token})
}

// Logout godoc
// @Summary Logout user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body TokenRequest true "Session token"
// @Success 200 {object} EmptyResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/logout [put]
func (h *AuthHandler) Logout(c echo.Context) error {
	var req TokenRequest
	bindTokenRequest(c, &req)

	if err := h.authService.Logout(c.Request().Context(), req.Token); err != nil {
		return respond(c, err)
	}

	return c.JSON(http.StatusOK, EmptyResponse{})
}

// RequestReset godoc
// @Summary Email a password reset code
// @Tags auth
// @Produce json
// @Param email query string true "Account email"
// @Success 200 {object} EmptyResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /auth/reset [get]
func (h *AuthHandler) RequestReset(c echo.Context) error {
	if err := h.resetService.RequestReset(c.Request().Context(), c.QueryParam("email")); err != nil {
		return respond(c, err)
	}
	return c.JSON(http.StatusOK, EmptyResponse{})
}

// UseReset godoc
// @Summary Replace a password with a reset code
// @Tags auth
// @Accept json
// @Produce json
// @Param request body ResetRequest true "Reset code and new password"
// @Success 200 {object} EmptyResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/reset [post]
func (h *AuthHandler) UseReset(c echo.Context) error {
	var req ResetRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody()
	}

	if err := h.resetService.UseReset(c.Request().Context(), req.Code, req.Password); err != nil {
		return respond(c, err)
	}
	return c.JSON(http.StatusOK, EmptyResponse{})
}
