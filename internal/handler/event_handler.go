package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"spark/internal/service"
)

// EventHandler handles event endpoints.
type EventHandler struct {
	eventService service.EventService
}

// NewEventHandler creates a new event handler.
func NewEventHandler(eventService service.EventService) *EventHandler {
	return &EventHandler{eventService: eventService}
}

// CreateEventRequest creates an event for a society. Time is RFC 3339.
type CreateEventRequest struct {
	Token       string `json:"token"`
	SocietyID   uint   `json:"societyId"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Time        string `json:"time"`
	Location    string `json:"location"`
}

// EditEventRequest replaces an event's details.
type EditEventRequest struct {
	Token       string `json:"token"`
	EventID     uint   `json:"eventId"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Time        string `json:"time"`
	Location    string `json:"location"`
}

// AttendRequest declares attendance at an event.
type AttendRequest struct {
	Token   string `json:"token"`
	EventID uint   `json:"eventId"`
}

// FormRequest is an attendance form submission.
type FormRequest struct {
	EventID   uint   `json:"eventId" validate:"required"`
	NameFirst string `json:"nameFirst"`
	NameLast  string `json:"nameLast"`
	ZID       string `json:"zId"`
	Email     string `json:"email"`
}

// EventIDResponse carries the id of a created event.
type EventIDResponse struct {
	EventID uint `json:"eventId"`
}

// StatusResponse reports whether the user is attending.
type StatusResponse struct {
	Attending bool `json:"attending"`
}

// Get godoc
// @Summary Get an event
// @Tags event
// @Produce json
// @Param eventId query int true "Event ID"
// @Success 200 {object} EventResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /event [get]
func (h *EventHandler) Get(c echo.Context) error {
	event, err := h.eventService.Get(c.Request().Context(), queryID(c, "eventId"))
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(http.StatusOK, toEventResponse(event))
}

// Create godoc
// @Summary Create an event
// @Tags event
// @Accept json
// @Produce json
// @Param request body CreateEventRequest true "Event"
// @Success 200 {object} EventIDResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /event [post]
func (h *EventHandler) Create(c echo.Context) error {
	var req CreateEventRequest
	bindTokenRequest(c, &req)

	id, err := h.eventService.Create(c.Request().Context(), req.Token, req.SocietyID, service.EventInput{
		Name:        req.Name,
		Description: req.Description,
		Time:        req.Time,
		Location:    req.Location,
	})
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(http.StatusOK, EventIDResponse{EventID: id})
}

// Edit godoc
// @Summary Edit an event
// @Tags event
// @Accept json
// @Produce json
// @Param request body EditEventRequest true "Event"
// @Success 200 {object} EmptyResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /event/edit [put]
func (h *EventHandler) Edit(c echo.Context) error {
	var req EditEventRequest
	bindTokenRequest(c, &req)

	err := h.eventService.Edit(c.Request().Context(), req.Token, req.EventID, service.EventInput{
		Name:        req.Name,
		Description: req.Description,
		Time:        req.Time,
		Location:    req.Location,
	})
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(http.StatusOK, EmptyResponse{})
}

// Delete godoc
// @Summary Delete an event
// @Tags event
// @Produce json
// @Param token query string true "Session token"
// @Param eventId query int true "Event ID"
// @Success 200 {object} EmptyResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /event [delete]
func (h *EventHandler) Delete(c echo.Context) error {
	err := h.eventService.Delete(c.Request().Context(), c.QueryParam("token"), queryID(c, "eventId"))
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(http.StatusOK, EmptyResponse{})
}

// Attend godoc
// @Summary Declare attendance
// @Tags event
// @Accept json
// @Produce json
// @Param request body AttendRequest true "Event to attend"
// @Success 200 {object} EmptyResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /event/attend [put]
func (h *EventHandler) Attend(c echo.Context) error {
	var req AttendRequest
	bindTokenRequest(c, &req)

	if err := h.eventService.Attend(c.Request().Context(), req.Token, req.EventID); err != nil {
		return respond(c, err)
	}
	return c.JSON(http.StatusOK, EmptyResponse{})
}

// Unattend godoc
// @Summary Withdraw attendance
// @Tags event
// @Produce json
// @Param token query string true "Session token"
// @Param eventId query int true "Event ID"
// @Success 200 {object} EmptyResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /event/attend [delete]
func (h *EventHandler) Unattend(c echo.Context) error {
	err := h.eventService.Unattend(c.Request().Context(), c.QueryParam("token"), queryID(c, "eventId"))
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(http.StatusOK, EmptyResponse{})
}

// Status godoc
// @Summary Report whether the user is attending
// @Tags event
// @Produce json
// @Param token query string true "Session token"
// @Param eventId query int true "Event ID"
// @Success 200 {object} StatusResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /event/status [get]
func (h *EventHandler) Status(c echo.Context) error {
	attending, err := h.eventService.Status(c.Request().Context(), c.QueryParam("token"), queryID(c, "eventId"))
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(http.StatusOK, StatusResponse{Attending: attending})
}

// List godoc
// @Summary Search events
// @Tags event
// @Produce json
// @Param searchString query string false "Substring of name or description"
// @Param timeStart query string false "RFC 3339 lower bound"
// @Param timeEnd query string false "RFC 3339 upper bound"
// @Param paginationStart query int false "First index"
// @Param paginationEnd query int false "Index past the last"
// @Success 200 {object} EventsResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /event/list [get]
func (h *EventHandler) List(c echo.Context) error {
	events, err := h.eventService.List(c.Request().Context(), service.EventQuery{
		Search:          c.QueryParam("searchString"),
		TimeStart:       c.QueryParam("timeStart"),
		TimeEnd:         c.QueryParam("timeEnd"),
		PaginationStart: queryBound(c, "paginationStart"),
		PaginationEnd:   queryBound(c, "paginationEnd"),
	})
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(http.StatusOK, EventsResponse{Events: toEventResponses(events)})
}

// FillForm godoc
// @Summary Submit an attendance form
// @Tags event
// @Accept json
// @Produce json
// @Param request body FormRequest true "Form"
// @Success 200 {object} EmptyResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /event/form [post]
func (h *EventHandler) FillForm(c echo.Context) error {
	var req FormRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody()
	}
	if err := c.Validate(&req); err != nil {
		return respond(c, service.ErrEventNotFound)
	}

	err := h.eventService.FillForm(c.Request().Context(), service.FormInput{
		EventID:   req.EventID,
		NameFirst: req.NameFirst,
		NameLast:  req.NameLast,
		ZID:       req.ZID,
		Email:     req.Email,
	})
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(http.StatusOK, EmptyResponse{})
}
