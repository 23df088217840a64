package controllers

import (
	"log/slog"
	"net/http"

	"github.com/eventhub/eventhub/internal/app"
	h "github.com/eventhub/eventhub/internal/delivery/http/helpers"
	"github.com/eventhub/eventhub/internal/domain"
	"github.com/eventhub/eventhub/internal/services"
)

// AdminDashboardSuccessResponse is the success response envelope for GET /admin/dashboard (200).
type AdminDashboardSuccessResponse struct {
	Data          *app.AdminDashboard   `json:"data"`
	Error         *h.APIError           `json:"error"`
	Notifications []domain.Notification `json:"notifications"`
}

// EventListSuccessResponse is the success response envelope for event lists (200).
type EventListSuccessResponse struct {
	Data          []*domain.Event       `json:"data"`
	Error         *h.APIError           `json:"error"`
	Notifications []domain.Notification `json:"notifications"`
}

// AllEventsSuccessResponse is the success response envelope for GET /admin/all-events (200).
type AllEventsSuccessResponse struct {
	Data          []*domain.EventWithParticipants `json:"data"`
	Error         *h.APIError                     `json:"error"`
	Notifications []domain.Notification           `json:"notifications"`
}

// EventSuccessResponse is the success response envelope for a single event (200).
type EventSuccessResponse struct {
	Data          *domain.Event         `json:"data"`
	Error         *h.APIError           `json:"error"`
	Notifications []domain.Notification `json:"notifications"`
}

type AdminController struct {
	Logger *slog.Logger
}

func NewAdminController(logger *slog.Logger) *AdminController {
	return &AdminController{Logger: logger}
}

// Dashboard godoc
// @Summary Admin dashboard
// @Description Pending count (refetched on every visit) and approved count.
// @Tags admin
// @Produce json
// @Success 200 {object} controllers.AdminDashboardSuccessResponse
// @Success 303 "redirect to /login or /user/dashboard when not an admin"
// @Failure 502 {object} helpers.APIResponse "error.code: remote_failure"
// @Router /admin/dashboard [get]
func (a *AdminController) Dashboard(w http.ResponseWriter, r *http.Request) {
	c, ok := clientOf(w, r)
	if !ok {
		return
	}
	view, err := c.ShowAdminDashboard(r.Context())
	if err != nil {
		fail(a.Logger, w, r, c, err)
		return
	}
	respond(w, c, http.StatusOK, view)
}

// PendingEvents godoc
// @Summary Events awaiting review
// @Tags admin
// @Produce json
// @Success 200 {object} controllers.EventListSuccessResponse
// @Failure 502 {object} helpers.APIResponse "error.code: remote_failure"
// @Router /admin/pending-events [get]
func (a *AdminController) PendingEvents(w http.ResponseWriter, r *http.Request) {
	c, ok := clientOf(w, r)
	if !ok {
		return
	}
	events, err := c.ShowPendingEvents(r.Context())
	if err != nil {
		fail(a.Logger, w, r, c, err)
		return
	}
	respond(w, c, http.StatusOK, events)
}

// ApproveEvent godoc
// @Summary Approve a pending event
// @Tags admin
// @Produce json
// @Param eventID path string true "Event ID"
// @Success 200 {object} controllers.EventSuccessResponse
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Router /admin/pending-events/{eventID}/approve [post]
func (a *AdminController) ApproveEvent(w http.ResponseWriter, r *http.Request) {
	a.review(w, r, domain.StatusApproved)
}

// RejectEvent godoc
// @Summary Reject a pending event
// @Tags admin
// @Produce json
// @Param eventID path string true "Event ID"
// @Success 200 {object} controllers.EventSuccessResponse
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Router /admin/pending-events/{eventID}/reject [post]
func (a *AdminController) RejectEvent(w http.ResponseWriter, r *http.Request) {
	a.review(w, r, domain.StatusRejected)
}

func (a *AdminController) review(w http.ResponseWriter, r *http.Request, status domain.EventStatus) {
	c, ok := clientOf(w, r)
	if !ok {
		return
	}
	eventID := r.PathValue("eventID")
	if eventID == "" {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "missing eventID")
		return
	}
	ev, err := c.Events.UpdateStatus.Mutate(r.Context(), services.StatusChange{EventID: eventID, Status: status})
	if err != nil {
		fail(a.Logger, w, r, c, err)
		return
	}
	respond(w, c, http.StatusOK, ev)
}

// AllEvents godoc
// @Summary Approved events with their participants
// @Tags admin
// @Produce json
// @Success 200 {object} controllers.AllEventsSuccessResponse
// @Failure 502 {object} helpers.APIResponse "error.code: remote_failure"
// @Router /admin/all-events [get]
func (a *AdminController) AllEvents(w http.ResponseWriter, r *http.Request) {
	c, ok := clientOf(w, r)
	if !ok {
		return
	}
	events, err := c.ShowAllEvents(r.Context())
	if err != nil {
		fail(a.Logger, w, r, c, err)
		return
	}
	respond(w, c, http.StatusOK, events)
}
