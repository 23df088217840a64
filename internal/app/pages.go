package app

import (
	"context"

	"github.com/eventhub/eventhub/internal/domain"
)

// UserDashboard is the data of /user/dashboard.
// swagger:model UserDashboard
type UserDashboard struct {
	Identity      *domain.Identity `json:"identity"`
	ApprovedCount int              `json:"approved_count"`
	JoinedCount   int              `json:"joined_count"`
}

// AdminDashboard is the data of /admin/dashboard.
// swagger:model AdminDashboard
type AdminDashboard struct {
	Identity      *domain.Identity `json:"identity"`
	PendingCount  int              `json:"pending_count"`
	ApprovedCount int              `json:"approved_count"`
}

// UpcomingEvent is an approved event annotated with whether the client joined it.
// swagger:model UpcomingEvent
type UpcomingEvent struct {
	*domain.Event
	Joined bool `json:"joined"`
}

// CreateEventForm is the data of /user/create-event.
// swagger:model CreateEventForm
type CreateEventForm struct {
	EventTypes []string `json:"event_types"`
}

// ShowUserDashboard mounts the approved and joined queries and returns their counts.
func (c *Client) ShowUserDashboard(ctx context.Context) (*UserDashboard, error) {
	c.mount(c.Events.Approved.Watch(nil), c.Events.Joined.Watch(nil))
	approved, err := c.Events.Approved.Get(ctx)
	if err != nil {
		return nil, err
	}
	joined, err := c.Events.Joined.Get(ctx)
	if err != nil {
		return nil, err
	}
	return &UserDashboard{
		Identity:      c.Session.Identity(),
		ApprovedCount: len(approved),
		JoinedCount:   len(joined),
	}, nil
}

// ShowCreateEvent returns the form options. The page has no queries.
func (c *Client) ShowCreateEvent() *CreateEventForm {
	c.mount()
	return &CreateEventForm{EventTypes: domain.EventTypes}
}

// ShowUpcomingEvents mounts the approved and joined queries and flags the joined events.
func (c *Client) ShowUpcomingEvents(ctx context.Context) ([]*UpcomingEvent, error) {
	c.mount(c.Events.Approved.Watch(nil), c.Events.Joined.Watch(nil))
	approved, err := c.Events.Approved.Get(ctx)
	if err != nil {
		return nil, err
	}
	joined, err := c.Events.Joined.Get(ctx)
	if err != nil {
		return nil, err
	}
	joinedIDs := make(map[string]struct{}, len(joined))
	for _, e := range joined {
		joinedIDs[e.ID] = struct{}{}
	}
	out := make([]*UpcomingEvent, len(approved))
	for i, e := range approved {
		_, ok := joinedIDs[e.ID]
		out[i] = &UpcomingEvent{Event: e, Joined: ok}
	}
	return out, nil
}

// ShowAdminDashboard refetches the pending list on every visit and returns both counts.
func (c *Client) ShowAdminDashboard(ctx context.Context) (*AdminDashboard, error) {
	c.mount(c.Events.Pending.Watch(nil), c.Events.Approved.Watch(nil))
	pending, err := c.Events.Pending.Refetch(ctx)
	if err != nil {
		return nil, err
	}
	approved, err := c.Events.Approved.Get(ctx)
	if err != nil {
		return nil, err
	}
	return &AdminDashboard{
		Identity:      c.Session.Identity(),
		PendingCount:  len(pending),
		ApprovedCount: len(approved),
	}, nil
}

// ShowPendingEvents mounts and returns the pending list.
func (c *Client) ShowPendingEvents(ctx context.Context) ([]*domain.Event, error) {
	c.mount(c.Events.Pending.Watch(nil))
	return c.Events.Pending.Get(ctx)
}

// ShowAllEvents mounts and returns the approved events with their participants.
func (c *Client) ShowAllEvents(ctx context.Context) ([]*domain.EventWithParticipants, error) {
	c.mount(c.Events.WithParticipants.Watch(nil))
	return c.Events.WithParticipants.Get(ctx)
}
