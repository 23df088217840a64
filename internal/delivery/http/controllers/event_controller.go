package controllers

import (
	"log/slog"
	"net/http"

	h "github.com/eventhub/eventhub/internal/delivery/http/helpers"
)

type EventController struct {
	Logger *slog.Logger
}

func NewEventController(logger *slog.Logger) *EventController {
	return &EventController{Logger: logger}
}

// Landing godoc
// @Summary Landing redirect
// @Description Redirects to the admin or user dashboard, or to /login when signed out.
// @Tags events
// @Success 303 "redirect to the landing route"
// @Failure 503 {object} helpers.APIResponse "error.code: backend_uninitialized"
// @Router / [get]
func (e *EventController) Landing(w http.ResponseWriter, r *http.Request) {
	c, ok := clientOf(w, r)
	if !ok {
		return
	}
	route, err := c.Gate.Landing(r.Context())
	if err != nil {
		h.WriteJSONError(w, http.StatusServiceUnavailable, h.ErrCodeUninitialized, "session still loading")
		return
	}
	h.Redirect(w, r, route)
}

// GetEventByID godoc
// @Summary Get an event by ID
// @Description Direct lookup of one event in any status. Requires a signed-in client.
// @Tags events
// @Produce json
// @Param eventID path string true "Event ID"
// @Success 200 {object} controllers.EventSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 502 {object} helpers.APIResponse "error.code: remote_failure"
// @Router /events/{eventID} [get]
func (e *EventController) GetEventByID(w http.ResponseWriter, r *http.Request) {
	c, ok := clientOf(w, r)
	if !ok {
		return
	}
	eventID := r.PathValue("eventID")
	if eventID == "" {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "missing eventID")
		return
	}
	ev, err := c.Service.GetByID(r.Context(), eventID)
	if err != nil {
		fail(e.Logger, w, r, c, err)
		return
	}
	respond(w, c, http.StatusOK, ev)
}
