package backend

import (
	"context"

	"github.com/eventhub/eventhub/internal/domain"
)

// The unavailable* types implement the remote ports of a backend that was never configured.

type unavailableEvents struct{}

func (unavailableEvents) Create(context.Context, *domain.Event) error { return domain.ErrUninitialized }

func (unavailableEvents) GetByID(context.Context, string) (*domain.Event, error) {
	return nil, domain.ErrUninitialized
}

func (unavailableEvents) ListByStatus(context.Context, domain.EventStatus) ([]*domain.Event, error) {
	return nil, domain.ErrUninitialized
}

func (unavailableEvents) ListByIDs(context.Context, []string, domain.EventStatus) ([]*domain.Event, error) {
	return nil, domain.ErrUninitialized
}

func (unavailableEvents) UpdateStatus(context.Context, string, domain.EventStatus) (*domain.Event, error) {
	return nil, domain.ErrUninitialized
}

type unavailableParticipants struct{}

func (unavailableParticipants) Create(context.Context, *domain.EventParticipant) error {
	return domain.ErrUninitialized
}

func (unavailableParticipants) ListByUserID(context.Context, string) ([]*domain.EventParticipant, error) {
	return nil, domain.ErrUninitialized
}

func (unavailableParticipants) ListWithEmailsByEventIDs(context.Context, []string) ([]*domain.EventParticipantWithEmail, error) {
	return nil, domain.ErrUninitialized
}

type unavailableDirectory struct{}

func (unavailableDirectory) EmailByID(context.Context, string) (string, error) {
	return "", domain.ErrUninitialized
}

type unavailableAuth struct{}

func (unavailableAuth) SignUp(context.Context, string, string) (*domain.User, error) {
	return nil, domain.ErrUninitialized
}

func (unavailableAuth) SignInWithPassword(context.Context, string, string) (*domain.Session, error) {
	return nil, domain.ErrUninitialized
}

func (unavailableAuth) Session(context.Context, string) (*domain.Session, error) {
	return nil, domain.ErrUninitialized
}

func (unavailableAuth) SignOut(context.Context, string) error { return domain.ErrUninitialized }
