package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"spark/internal/service"
)

// ProfileHandler handles the signed-in user's profile endpoints.
type ProfileHandler struct {
	profileService service.ProfileService
}

// NewProfileHandler creates a new profile handler.
func NewProfileHandler(profileService service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// EditProfileRequest changes the signed-in user's names and email.
type EditProfileRequest struct {
	Token     string `json:"token"`
	NameFirst string `json:"nameFirst"`
	NameLast  string `json:"nameLast"`
	Email     string `json:"email"`
}

// ProfileEventsResponse splits events into declared and recorded attendance.
type ProfileEventsResponse struct {
	Attending []EventResponse `json:"attending"`
	Attended  []EventResponse `json:"attended"`
}

// View godoc
// @Summary View own profile
// @Tags profile
// @Produce json
// @Param token query string true "Session token"
// @Success 200 {object} ProfileResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /profile/view [get]
func (h *ProfileHandler) View(c echo.Context) error {
	profile, err := h.profileService.View(c.Request().Context(), c.QueryParam("token"))
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(http.StatusOK, toProfileResponse(profile))
}

// Edit godoc
// @Summary Edit own profile
// @Tags profile
// @Accept json
// @Produce json
// @Param request body EditProfileRequest true "New details"
// @Success 200 {object} ProfileResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /profile/edit [put]
func (h *ProfileHandler) Edit(c echo.Context) error {
	var req EditProfileRequest
	bindTokenRequest(c, &req)

	profile, err := h.profileService.Edit(c.Request().Context(), req.Token, req.NameFirst, req.NameLast, req.Email)
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(http.StatusOK, toProfileResponse(profile))
}

// Societies godoc
// @Summary List societies the user belongs to
// @Tags profile
// @Produce json
// @Param token query string true "Session token"
// @Success 200 {object} SocietiesResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /profile/societies [get]
func (h *ProfileHandler) Societies(c echo.Context) error {
	societies, err := h.profileService.Societies(c.Request().Context(), c.QueryParam("token"))
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(http.StatusOK, SocietiesResponse{Societies: toSocietyResponses(societies)})
}

// Events godoc
// @Summary List events the user is attending or attended
// @Tags profile
// @Produce json
// @Param token query string true "Session token"
// @Success 200 {object} ProfileEventsResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /profile/events [get]
func (h *ProfileHandler) Events(c echo.Context) error {
	events, err := h.profileService.Events(c.Request().Context(), c.QueryParam("token"))
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(http.StatusOK, ProfileEventsResponse{
		Attending: toEventResponses(events.Attending),
		Attended:  toEventResponses(events.Attended),
	})
}
