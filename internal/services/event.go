package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/eventhub/eventhub/internal/domain"
)

type eventService struct {
	events       domain.EventStore
	participants domain.ParticipantStore
	directory    domain.IdentityDirectory
	identity     domain.IdentitySource
	emailService domain.EmailService
	validate     *validator.Validate
	logger       *slog.Logger
}

// NewEventService returns the EventService of one client. identity supplies
// the acting identity for writes and identity-scoped reads. emailService may
// be nil, in which case no status-change emails are sent.
func NewEventService(
	events domain.EventStore,
	participants domain.ParticipantStore,
	directory domain.IdentityDirectory,
	identity domain.IdentitySource,
	emailService domain.EmailService,
	logger *slog.Logger,
) domain.EventService {
	if logger == nil {
		logger = slog.Default()
	}
	return &eventService{
		events:       events,
		participants: participants,
		directory:    directory,
		identity:     identity,
		emailService: emailService,
		validate:     newDraftValidator(time.Now),
		logger:       logger,
	}
}

func (s *eventService) ListApproved(ctx context.Context) ([]*domain.Event, error) {
	events, err := s.events.ListByStatus(ctx, domain.StatusApproved)
	if err != nil {
		return nil, domain.Remote("list approved events", err)
	}
	return events, nil
}

func (s *eventService) ListPending(ctx context.Context) ([]*domain.Event, error) {
	events, err := s.events.ListByStatus(ctx, domain.StatusPending)
	if err != nil {
		return nil, domain.Remote("list pending events", err)
	}
	return events, nil
}

// ListApprovedWithParticipants loads approved events and the participants of
// all of them in one batch, then groups the participants per event.
func (s *eventService) ListApprovedWithParticipants(ctx context.Context) ([]*domain.EventWithParticipants, error) {
	events, err := s.events.ListByStatus(ctx, domain.StatusApproved)
	if err != nil {
		return nil, domain.Remote("list approved events", err)
	}
	out := make([]*domain.EventWithParticipants, 0, len(events))
	if len(events) == 0 {
		return out, nil
	}

	ids := make([]string, len(events))
	for i, e := range events {
		ids[i] = e.ID
	}
	rows, err := s.participants.ListWithEmailsByEventIDs(ctx, ids)
	if err != nil {
		return nil, domain.Remote("list event participants", err)
	}
	byEvent := make(map[string][]domain.Participant, len(events))
	for _, r := range rows {
		if r.Email == "" {
			continue
		}
		byEvent[r.EventID] = append(byEvent[r.EventID], domain.Participant{UserID: r.UserID, Email: r.Email})
	}

	for _, e := range events {
		participants := byEvent[e.ID]
		if participants == nil {
			participants = []domain.Participant{}
		}
		out = append(out, &domain.EventWithParticipants{Event: e, Participants: participants})
	}
	return out, nil
}

func (s *eventService) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	ev, err := s.events.GetByID(ctx, id)
	if err != nil {
		return nil, domain.Remote("get event", err)
	}
	return ev, nil
}

// Create validates draft and inserts it as a pending event owned by the current identity.
func (s *eventService) Create(ctx context.Context, draft domain.EventDraft) (*domain.Event, error) {
	identity := s.identity.Identity()
	if identity == nil {
		return nil, domain.ErrNotAuthenticated
	}
	if err := s.validate.Struct(draft); err != nil {
		return nil, invalidInput(err)
	}

	ev := domain.NewPendingEvent(draft, identity.ID)
	if err := s.events.Create(ctx, ev); err != nil {
		return nil, domain.Remote("create event", err)
	}
	return ev, nil
}

// UpdateStatus moves an event to approved or rejected and emails its submitter.
func (s *eventService) UpdateStatus(ctx context.Context, id string, status domain.EventStatus) (*domain.Event, error) {
	if !status.IsReview() {
		return nil, fmt.Errorf("%w: status must be approved or rejected, got %q", domain.ErrInvalidInput, status)
	}
	ev, err := s.events.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, domain.Remote("update event status", err)
	}
	s.notifySubmitter(ctx, ev)
	return ev, nil
}

// notifySubmitter emails the creator of ev about its new status. Failures are logged only.
func (s *eventService) notifySubmitter(ctx context.Context, ev *domain.Event) {
	if s.emailService == nil || s.directory == nil {
		return
	}
	email, err := s.directory.EmailByID(ctx, ev.CreatedBy)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.logger.Warn("lookup submitter email failed", "event_id", ev.ID, "err", err)
		}
		return
	}
	err = s.emailService.SendEventStatusChanged(ctx, &domain.EventStatusEmailData{
		Email:     email,
		EventName: ev.Name,
		Status:    ev.Status,
	})
	if err != nil {
		s.logger.Warn("send event status email failed", "event_id", ev.ID, "err", err)
	}
}

// Join records the current identity as a participant of eventID. A second
// join of the same pair is rejected by the store with ErrAlreadyJoined.
func (s *eventService) Join(ctx context.Context, eventID string) (*domain.EventParticipant, error) {
	identity := s.identity.Identity()
	if identity == nil {
		return nil, domain.ErrNotAuthenticated
	}
	p := domain.NewEventParticipant(eventID, identity.ID)
	if err := s.participants.Create(ctx, p); err != nil {
		return nil, domain.Remote("join event", err)
	}
	return p, nil
}

// ListJoinedByCurrentUser returns the approved events the current identity has joined.
func (s *eventService) ListJoinedByCurrentUser(ctx context.Context) ([]*domain.Event, error) {
	identity := s.identity.Identity()
	if identity == nil {
		return nil, domain.ErrNotAuthenticated
	}
	rows, err := s.participants.ListByUserID(ctx, identity.ID)
	if err != nil {
		return nil, domain.Remote("list participations", err)
	}
	if len(rows) == 0 {
		return []*domain.Event{}, nil
	}

	seen := make(map[string]struct{}, len(rows))
	ids := make([]string, 0, len(rows))
	for _, r := range rows {
		if _, ok := seen[r.EventID]; ok {
			continue
		}
		seen[r.EventID] = struct{}{}
		ids = append(ids, r.EventID)
	}
	events, err := s.events.ListByIDs(ctx, ids, domain.StatusApproved)
	if err != nil {
		return nil, domain.Remote("list joined events", err)
	}
	return events, nil
}
