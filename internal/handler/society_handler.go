package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"spark/internal/service"
)

// SocietyHandler handles society endpoints.
type SocietyHandler struct {
	societyService service.SocietyService
}

// NewSocietyHandler creates a new society handler.
func NewSocietyHandler(societyService service.SocietyService) *SocietyHandler {
	return &SocietyHandler{societyService: societyService}
}

// ApplyRequest asks for a new society.
type ApplyRequest struct {
	Token       string `json:"token"`
	SocietyName string `json:"societyName"`
	Description string `json:"description"`
}

// ApplicationIDResponse carries the id of a filed application.
type ApplicationIDResponse struct {
	ApplicationID uint `json:"applicationId"`
}

// JoinRequest joins a society as a member.
type JoinRequest struct {
	Token     string `json:"token"`
	SocietyID uint   `json:"societyId"`
}

// EditSocietyRequest changes a society's name and description.
type EditSocietyRequest struct {
	Token       string `json:"token"`
	SocietyID   uint   `json:"societyId"`
	SocietyName string `json:"societyName"`
	Description string `json:"description"`
}

// MemberResponse is one society member.
type MemberResponse struct {
	UserID    uint   `json:"userId"`
	ZID       string `json:"zId"`
	NameFirst string `json:"nameFirst"`
	NameLast  string `json:"nameLast"`
	Role      string `json:"role"`
}

// MembersResponse wraps a society's member list.
type MembersResponse struct {
	Members []MemberResponse `json:"members"`
}

// Apply godoc
// @Summary Apply to create a society
// @Tags society
// @Accept json
// @Produce json
// @Param request body ApplyRequest true "Application"
// @Success 200 {object} ApplicationIDResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /society/apply [post]
func (h *SocietyHandler) Apply(c echo.Context) error {
	var req ApplyRequest
	bindTokenRequest(c, &req)

	id, err := h.societyService.Apply(c.Request().Context(), req.Token, req.SocietyName, req.Description)
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(http.StatusOK, ApplicationIDResponse{ApplicationID: id})
}

// Join godoc
// @Summary Join a society
// @Tags society
// @Accept json
// @Produce json
// @Param request body JoinRequest true "Society to join"
// @Success 200 {object} EmptyResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /society/join [post]
func (h *SocietyHandler) Join(c echo.Context) error {
	var req JoinRequest
	bindTokenRequest(c, &req)

	if err := h.societyService.Join(c.Request().Context(), req.Token, req.SocietyID); err != nil {
		return respond(c, err)
	}
	return c.JSON(http.StatusOK, EmptyResponse{})
}

// View godoc
// @Summary View a society
// @Tags society
// @Produce json
// @Param societyId query int true "Society ID"
// @Success 200 {object} SocietyResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /society/view [get]
func (h *SocietyHandler) View(c echo.Context) error {
	society, err := h.societyService.View(c.Request().Context(), queryID(c, "societyId"))
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(http.StatusOK, toSocietyResponse(society))
}

// Members godoc
// @Summary List a society's members
// @Tags society
// @Produce json
// @Param societyId query int true "Society ID"
// @Success 200 {object} MembersResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /society/members [get]
func (h *SocietyHandler) Members(c echo.Context) error {
	members, err := h.societyService.Members(c.Request().Context(), queryID(c, "societyId"))
	if err != nil {
		return respond(c, err)
	}

	resp := MembersResponse{Members: make([]MemberResponse, 0, len(members))}
	for _, m := range members {
		resp.Members = append(resp.Members, MemberResponse{
			UserID:    m.UserID,
			ZID:       m.User.ZID,
			NameFirst: m.User.NameFirst,
			NameLast:  m.User.NameLast,
			Role:      string(m.Role),
		})
	}
	return c.JSON(http.StatusOK, resp)
}

// Edit godoc
// @Summary Edit a society
// @Tags society
// @Accept json
// @Produce json
// @Param request body EditSocietyRequest true "New details"
// @Success 200 {object} EmptyResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /society/edit [put]
func (h *SocietyHandler) Edit(c echo.Context) error {
	var req EditSocietyRequest
	bindTokenRequest(c, &req)

	err := h.societyService.Edit(c.Request().Context(), req.Token, req.SocietyID, req.SocietyName, req.Description)
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(http.StatusOK, EmptyResponse{})
}

// Events godoc
// @Summary List a society's upcoming events
// @Tags society
// @Produce json
// @Param societyId query int true "Society ID"
// @Success 200 {object} EventsResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /society/events [get]
func (h *SocietyHandler) Events(c echo.Context) error {
	events, err := h.societyService.Events(c.Request().Context(), queryID(c, "societyId"))
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(http.StatusOK, EventsResponse{Events: toEventResponses(events)})
}

// List godoc
// @Summary Search societies
// @Tags society
// @Produce json
// @Param searchString query string false "Substring of name or description"
// @Param paginationStart query int false "First index"
// @Param paginationEnd query int false "Index past the last"
// @Success 200 {object} SocietiesResponse
// @Router /society/list [get]
func (h *SocietyHandler) List(c echo.Context) error {
	societies, err := h.societyService.List(c.Request().Context(),
		c.QueryParam("searchString"),
		queryBound(c, "paginationStart"),
		queryBound(c, "paginationEnd"),
	)
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(http.StatusOK, SocietiesResponse{Societies: toSocietyResponses(societies)})
}

// Delete godoc
// @Summary Delete a society with its events
// @Tags society
// @Produce json
// @Param token query string true "Session token"
// @Param societyId query int true "Society ID"
// @Success 200 {object} EmptyResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /society [delete]
func (h *SocietyHandler) Delete(c echo.Context) error {
	err := h.societyService.Delete(c.Request().Context(), c.QueryParam("token"), queryID(c, "societyId"))
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(http.StatusOK, EmptyResponse{})
}
