package domain

import (
	"context"
	"time"
)

// EventParticipant represents an identity's sign-up for an event.
// The pair (EventID, UserID) is unique.
// swagger:model EventParticipant
type EventParticipant struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// NewEventParticipant creates a new EventParticipant. ID is typically set by the store on create.
func NewEventParticipant(eventID, userID string) *EventParticipant {
	return &EventParticipant{
		EventID: eventID,
		UserID:  userID,
	}
}

// EventParticipantWithEmail is a participation row joined with the participant's email.
type EventParticipantWithEmail struct {
	EventID string
	UserID  string
	Email   string
}

// ParticipantStore defines row-level access to the event_participants collection.
type ParticipantStore interface {
	// Create inserts a participation row. It returns ErrAlreadyJoined when the
	// (event, user) pair already exists.
	Create(ctx context.Context, p *EventParticipant) error
	ListByUserID(ctx context.Context, userID string) ([]*EventParticipant, error)
	// ListWithEmailsByEventIDs returns the participants of all given events in one
	// round trip. Rows whose identity has no email on record are omitted.
	ListWithEmailsByEventIDs(ctx context.Context, eventIDs []string) ([]*EventParticipantWithEmail, error)
}
