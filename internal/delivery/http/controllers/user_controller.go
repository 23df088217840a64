package controllers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/eventhub/eventhub/internal/app"
	h "github.com/eventhub/eventhub/internal/delivery/http/helpers"
	"github.com/eventhub/eventhub/internal/domain"
)

// CreateEventRequest is the request body for POST /user/create-event.
// Status and owner are never accepted from the submitter.
type CreateEventRequest struct {
	Name        string    `json:"name"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	Datetime    time.Time `json:"datetime"`
}

func (c CreateEventRequest) draft() domain.EventDraft {
	return domain.EventDraft{
		Name:        c.Name,
		Type:        c.Type,
		Description: c.Description,
		Datetime:    c.Datetime,
	}
}

// UserDashboardSuccessResponse is the success response envelope for GET /user/dashboard (200).
type UserDashboardSuccessResponse struct {
	Data          *app.UserDashboard    `json:"data"`
	Error         *h.APIError           `json:"error"`
	Notifications []domain.Notification `json:"notifications"`
}

// CreateEventFormSuccessResponse is the success response envelope for GET /user/create-event (200).
type CreateEventFormSuccessResponse struct {
	Data          *app.CreateEventForm  `json:"data"`
	Error         *h.APIError           `json:"error"`
	Notifications []domain.Notification `json:"notifications"`
}

// UpcomingEventsSuccessResponse is the success response envelope for GET /user/upcoming-events (200).
type UpcomingEventsSuccessResponse struct {
	Data          []*app.UpcomingEvent  `json:"data"`
	Error         *h.APIError           `json:"error"`
	Notifications []domain.Notification `json:"notifications"`
}

// JoinEventSuccessResponse is the success response envelope for POST /user/upcoming-events/{eventID}/join (201).
type JoinEventSuccessResponse struct {
	Data          *domain.EventParticipant `json:"data"`
	Error         *h.APIError              `json:"error"`
	Notifications []domain.Notification    `json:"notifications"`
}

type UserController struct {
	Logger *slog.Logger
}

func NewUserController(logger *slog.Logger) *UserController {
	return &UserController{Logger: logger}
}

// Dashboard godoc
// @Summary User dashboard
// @Description Counts of approved events and of the events the caller joined.
// @Tags user
// @Produce json
// @Success 200 {object} controllers.UserDashboardSuccessResponse
// @Success 303 "redirect to /login when signed out"
// @Failure 502 {object} helpers.APIResponse "error.code: remote_failure"
// @Router /user/dashboard [get]
func (u *UserController) Dashboard(w http.ResponseWriter, r *http.Request) {
	c, ok := clientOf(w, r)
	if !ok {
		return
	}
	view, err := c.ShowUserDashboard(r.Context())
	if err != nil {
		fail(u.Logger, w, r, c, err)
		return
	}
	respond(w, c, http.StatusOK, view)
}

// CreateEventForm godoc
// @Summary Event submission form
// @Description The event types a submission may use.
// @Tags user
// @Produce json
// @Success 200 {object} controllers.CreateEventFormSuccessResponse
// @Router /user/create-event [get]
func (u *UserController) CreateEventForm(w http.ResponseWriter, r *http.Request) {
	c, ok := clientOf(w, r)
	if !ok {
		return
	}
	respond(w, c, http.StatusOK, c.ShowCreateEvent())
}

// CreateEvent godoc
// @Summary Submit an event for approval
// @Description The event is stored as pending and owned by the caller. On success the client is redirected to its dashboard.
// @Tags user
// @Accept json
// @Produce json
// @Param event body CreateEventRequest true "Event data"
// @Success 303 "redirect to /user/dashboard"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 502 {object} helpers.APIResponse "error.code: remote_failure"
// @Router /user/create-event [post]
func (u *UserController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	c, ok := clientOf(w, r)
	if !ok {
		return
	}
	var req CreateEventRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	if _, err := c.Events.Create.Mutate(r.Context(), req.draft()); err != nil {
		fail(u.Logger, w, r, c, err)
		return
	}
	h.Redirect(w, r, domain.RouteUserDashboard)
}

// UpcomingEvents godoc
// @Summary Approved events
// @Description Approved events ordered by datetime, each flagged with whether the caller joined it.
// @Tags user
// @Produce json
// @Success 200 {object} controllers.UpcomingEventsSuccessResponse
// @Failure 502 {object} helpers.APIResponse "error.code: remote_failure"
// @Router /user/upcoming-events [get]
func (u *UserController) UpcomingEvents(w http.ResponseWriter, r *http.Request) {
	c, ok := clientOf(w, r)
	if !ok {
		return
	}
	events, err := c.ShowUpcomingEvents(r.Context())
	if err != nil {
		fail(u.Logger, w, r, c, err)
		return
	}
	respond(w, c, http.StatusOK, events)
}

// JoinEvent godoc
// @Summary Join an event
// @Description Registers the caller as a participant. Joining twice fails with conflict.
// @Tags user
// @Produce json
// @Param eventID path string true "Event ID"
// @Success 201 {object} controllers.JoinEventSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Router /user/upcoming-events/{eventID}/join [post]
func (u *UserController) JoinEvent(w http.ResponseWriter, r *http.Request) {
	c, ok := clientOf(w, r)
	if !ok {
		return
	}
	eventID := r.PathValue("eventID")
	if eventID == "" {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "missing eventID")
		return
	}
	p, err := c.Events.Join.Mutate(r.Context(), eventID)
	if err != nil {
		fail(u.Logger, w, r, c, err)
		return
	}
	respond(w, c, http.StatusCreated, p)
}
