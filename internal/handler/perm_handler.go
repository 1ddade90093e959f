package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"spark/internal/service"
)

// PermHandler handles permission allocation endpoints.
type PermHandler struct {
	permService service.PermService
}

// NewPermHandler creates a new permission handler.
func NewPermHandler(permService service.PermService) *PermHandler {
	return &PermHandler{permService: permService}
}

// SiteAllocateRequest sets a user's site permission. permLevel 1 promotes,
// 2 demotes.
type SiteAllocateRequest struct {
	Token     string `json:"token"`
	UserID    uint   `json:"userId"`
	PermLevel int    `json:"permLevel"`
}

// SocietyAllocateRequest sets a member's society role. permLevel 1 is
// admin, 2 moderator, 3 member.
type SocietyAllocateRequest struct {
	Token     string `json:"token"`
	UserID    uint   `json:"userId"`
	SocietyID uint   `json:"societyId"`
	PermLevel int    `json:"permLevel"`
}

// AllocateSite godoc
// @Summary Promote or demote a site admin
// @Tags perm
// @Accept json
// @Produce json
// @Param request body SiteAllocateRequest true "Allocation"
// @Success 200 {object} EmptyResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /perm/site/allocate [post]
func (h *PermHandler) AllocateSite(c echo.Context) error {
	var req SiteAllocateRequest
	bindTokenRequest(c, &req)

	if err := h.permService.AllocateSite(c.Request().Context(), req.Token, req.UserID, req.PermLevel); err != nil {
		return respond(c, err)
	}
	return c.JSON(http.StatusOK, EmptyResponse{})
}

// AllocateSociety godoc
// @Summary Set a member's society role
// @Tags perm
// @Accept json
// @Produce json
// @Param request body SocietyAllocateRequest true "Allocation"
// @Success 200 {object} EmptyResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /perm/society/allocate [post]
func (h *PermHandler) AllocateSociety(c echo.Context) error {
	var req SocietyAllocateRequest
	bindTokenRequest(c, &req)

	err := h.permService.AllocateSociety(c.Request().Context(), req.Token, req.UserID, req.SocietyID, req.PermLevel)
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(http.StatusOK, EmptyResponse{})
}
