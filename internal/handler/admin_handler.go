package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"spark/internal/model"
	"spark/internal/service"
)

// AdminHandler handles site administration endpoints.
type AdminHandler struct {
	adminService service.AdminService
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(adminService service.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// UsersResponse wraps a list of users.
type UsersResponse struct {
	Users []UserResponse `json:"users"`
}

// ApplicationResponse is one society application.
type ApplicationResponse struct {
	ApplicationID uint   `json:"applicationId"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	ApplicantID   uint   `json:"applicantId"`
	Status        string `json:"status"`
}

// ApplicationsResponse wraps a list of applications.
type ApplicationsResponse struct {
	Applications []ApplicationResponse `json:"applications"`
}

// DecisionRequest approves or denies an application.
type DecisionRequest struct {
	Token         string `json:"token"`
	ApplicationID uint   `json:"applicationId"`
}

// SocietyIDResponse carries the id of a created society.
type SocietyIDResponse struct {
	SocietyID uint `json:"societyId"`
}

// ListUsers godoc
// @Summary List all users
// @Tags admin
// @Produce json
// @Param token query string true "Session token"
// @Success 200 {object} UsersResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	users, err := h.adminService.ListUsers(c.Request().Context(), c.QueryParam("token"))
	if err != nil {
		return respond(c, err)
	}

	resp := UsersResponse{Users: make([]UserResponse, 0, len(users))}
	for i := range users {
		resp.Users = append(resp.Users, toUserResponse(&users[i]))
	}
	return c.JSON(http.StatusOK, resp)
}

// GetUser godoc
// @Summary Look up a user by zId
// @Tags admin
// @Produce json
// @Param zId query string true "Student zId"
// @Success 200 {object} UserResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /admin/user/get [get]
func (h *AdminHandler) GetUser(c echo.Context) error {
	user, err := h.adminService.UserByZID(c.Request().Context(), c.QueryParam("zId"))
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// ListApplications godoc
// @Summary List society applications
// @Tags admin
// @Produce json
// @Param token query string true "Session token"
// @Success 200 {object} ApplicationsResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/application/list [get]
func (h *AdminHandler) ListApplications(c echo.Context) error {
	apps, err := h.adminService.ListApplications(c.Request().Context(), c.QueryParam("token"))
	if err != nil {
		return respond(c, err)
	}

	resp := ApplicationsResponse{Applications: make([]ApplicationResponse, 0, len(apps))}
	for _, a := range apps {
		resp.Applications = append(resp.Applications, toApplicationResponse(a))
	}
	return c.JSON(http.StatusOK, resp)
}

// Approve godoc
// @Summary Approve an application and create its society
// @Tags admin
// @Accept json
// @Produce json
// @Param request body DecisionRequest true "Decision"
// @Success 200 {object} SocietyIDResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/application/approve [put]
func (h *AdminHandler) Approve(c echo.Context) error {
	var req DecisionRequest
	bindTokenRequest(c, &req)

	societyID, err := h.adminService.Approve(c.Request().Context(), req.Token, req.ApplicationID)
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(http.StatusOK, SocietyIDResponse{SocietyID: societyID})
}

// Deny godoc
// @Summary Deny an application
// @Tags admin
// @Accept json
// @Produce json
// @Param request body DecisionRequest true "Decision"
// @Success 200 {object} EmptyResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/application/deny [put]
func (h *AdminHandler) Deny(c echo.Context) error {
	var req DecisionRequest
	bindTokenRequest(c, &req)

	if err := h.adminService.Deny(c.Request().Context(), req.Token, req.ApplicationID); err != nil {
		return respond(c, err)
	}
	return c.JSON(http.StatusOK, EmptyResponse{})
}

// RemoveUser godoc
// @Summary Delete a user and everything they own
// @Tags admin
// @Produce json
// @Param token query string true "Session token"
// @Param userId query int true "User to remove"
// @Success 200 {object} EmptyResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/user/remove [delete]
func (h *AdminHandler) RemoveUser(c echo.Context) error {
	err := h.adminService.RemoveUser(c.Request().Context(), c.QueryParam("token"), queryID(c, "userId"))
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(http.StatusOK, EmptyResponse{})
}

func toApplicationResponse(a model.Application) ApplicationResponse {
	return ApplicationResponse{
		ApplicationID: a.ID,
		Name:          a.Name,
		Description:   a.Description,
		ApplicantID:   a.ApplicantID,
		Status:        string(a.Status),
	}
}
