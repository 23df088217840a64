package domain

import (
	"context"
	"time"
)

// EventStatus is the review state of a submitted event.
type EventStatus string

const (
	StatusPending  EventStatus = "pending"
	StatusApproved EventStatus = "approved"
	StatusRejected EventStatus = "rejected"
)

// Valid reports whether s is one of the known statuses.
func (s EventStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// IsReview reports whether s is a status an admin may set (approved or rejected).
func (s EventStatus) IsReview() bool {
	return s == StatusApproved || s == StatusRejected
}

// EventTypes lists the event types offered when submitting an event.
var EventTypes = []string{
	"Workshop",
	"Conference",
	"Meetup",
	"Training",
	"Webinar",
	"Social",
	"Other",
}

// Event represents a user-submitted event
// swagger:model Event
type Event struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Type        string      `json:"type"`
	Description string      `json:"description"`
	Datetime    time.Time   `json:"datetime"`
	Status      EventStatus `json:"status"`
	CreatedBy   string      `json:"created_by"`
	CreatedAt   time.Time   `json:"created_at"`
}

// EventDraft is the user-supplied part of a new event. Status and owner are
// always stamped by the service, never taken from the submitter.
type EventDraft struct {
	Name        string    `json:"name" validate:"required,min=3"`
	Type        string    `json:"type" validate:"required"`
	Description string    `json:"description" validate:"required,min=10"`
	Datetime    time.Time `json:"datetime" validate:"required,future"`
}

// NewPendingEvent returns a pending Event built from draft and owned by createdBy.
func NewPendingEvent(draft EventDraft, createdBy string) *Event {
	return &Event{
		Name:        draft.Name,
		Type:        draft.Type,
		Description: draft.Description,
		Datetime:    draft.Datetime,
		Status:      StatusPending,
		CreatedBy:   createdBy,
	}
}

// Participant is one joined identity as shown next to an event.
type Participant struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

// EventWithParticipants bundles an event with the identities that joined it.
// swagger:model EventWithParticipants
type EventWithParticipants struct {
	*Event
	Participants []Participant `json:"participants"`
}

// EventStore defines row-level access to the events collection of the remote store.
type EventStore interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	// ListByStatus returns events with the given status ordered by datetime ascending.
	ListByStatus(ctx context.Context, status EventStatus) ([]*Event, error)
	// ListByIDs returns the events among ids that have the given status, ordered by datetime ascending.
	ListByIDs(ctx context.Context, ids []string, status EventStatus) ([]*Event, error)
	// UpdateStatus sets the status of one event and returns the updated row.
	UpdateStatus(ctx context.Context, id string, status EventStatus) (*Event, error)
}

// EventService is the event repository façade consumed by the UI layer.
// Every operation is one request/response round trip against the remote store.
type EventService interface {
	ListApproved(ctx context.Context) ([]*Event, error)
	ListPending(ctx context.Context) ([]*Event, error)
	ListApprovedWithParticipants(ctx context.Context) ([]*EventWithParticipants, error)
	GetByID(ctx context.Context, id string) (*Event, error)
	Create(ctx context.Context, draft EventDraft) (*Event, error)
	UpdateStatus(ctx context.Context, id string, status EventStatus) (*Event, error)
	Join(ctx context.Context, eventID string) (*EventParticipant, error)
	ListJoinedByCurrentUser(ctx context.Context) ([]*Event, error)
}
