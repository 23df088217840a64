package services

import (
	"context"

	"github.com/eventhub/eventhub/internal/domain"
	"github.com/eventhub/eventhub/internal/querycache"
)

// Cache keys of the event queries.
const (
	KeyApprovedEvents         querycache.Key = "approvedEvents"
	KeyPendingEvents          querycache.Key = "pendingEvents"
	KeyEventsWithParticipants querycache.Key = "eventsWithParticipants"
	KeyUserJoinedEvents       querycache.Key = "userJoinedEvents"
)

// StatusChange is the input of the UpdateStatus mutation.
type StatusChange struct {
	EventID string
	Status  domain.EventStatus
}

// EventHooks binds the event service of one client to its query cache and notifier.
type EventHooks struct {
	Approved         *querycache.Query[[]*domain.Event]
	Pending          *querycache.Query[[]*domain.Event]
	WithParticipants *querycache.Query[[]*domain.EventWithParticipants]
	Joined           *querycache.Query[[]*domain.Event]

	Create       *querycache.Mutation[domain.EventDraft, *domain.Event]
	UpdateStatus *querycache.Mutation[StatusChange, *domain.Event]
	Join         *querycache.Mutation[string, *domain.EventParticipant]
}

// NewEventHooks wires svc into cache. Successful mutations notify and then
// invalidate the keys whose membership they change; failed ones only notify.
func NewEventHooks(svc domain.EventService, cache *querycache.Cache, notifier domain.Notifier) *EventHooks {
	return &EventHooks{
		Approved:         querycache.NewQuery(cache, KeyApprovedEvents, svc.ListApproved),
		Pending:          querycache.NewQuery(cache, KeyPendingEvents, svc.ListPending),
		WithParticipants: querycache.NewQuery(cache, KeyEventsWithParticipants, svc.ListApprovedWithParticipants),
		Joined:           querycache.NewQuery(cache, KeyUserJoinedEvents, svc.ListJoinedByCurrentUser),

		Create: querycache.NewMutation(cache, "create_event", svc.Create,
			querycache.MutationOptions[domain.EventDraft, *domain.Event]{
				Invalidates: []querycache.Key{KeyPendingEvents},
				OnSuccess: func(domain.EventDraft, *domain.Event) {
					notifier.Success("Event submitted for approval", "")
				},
				OnError: func(_ domain.EventDraft, err error) {
					notifier.Error("Failed to create event", err.Error())
				},
			}),

		UpdateStatus: querycache.NewMutation(cache, "update_event_status",
			func(ctx context.Context, in StatusChange) (*domain.Event, error) {
				return svc.UpdateStatus(ctx, in.EventID, in.Status)
			},
			querycache.MutationOptions[StatusChange, *domain.Event]{
				Invalidates: []querycache.Key{KeyPendingEvents, KeyApprovedEvents, KeyEventsWithParticipants},
				OnSuccess: func(in StatusChange, _ *domain.Event) {
					notifier.Success("Event "+string(in.Status)+" successfully", "")
				},
				OnError: func(_ StatusChange, err error) {
					notifier.Error("Failed to update event status", err.Error())
				},
			}),

		Join: querycache.NewMutation(cache, "join_event", svc.Join,
			querycache.MutationOptions[string, *domain.EventParticipant]{
				Invalidates: []querycache.Key{KeyEventsWithParticipants, KeyUserJoinedEvents},
				OnSuccess: func(string, *domain.EventParticipant) {
					notifier.Success("You have joined the event", "")
				},
				OnError: func(_ string, err error) {
					notifier.Error("Failed to join event", err.Error())
				},
			}),
	}
}
