package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/eventhub/eventhub/internal/domain"
)

const eventColumns = `id, name, type, description, datetime, status, created_by, created_at`

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventStore {
	return &eventRepository{
		DB: db,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (*domain.Event, error) {
	e := &domain.Event{}
	var status string
	if err := row.Scan(&e.ID, &e.Name, &e.Type, &e.Description, &e.Datetime, &status, &e.CreatedBy, &e.CreatedAt); err != nil {
		return nil, err
	}
	e.Status = domain.EventStatus(status)
	return e, nil
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (name, type, description, datetime, status, created_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`
	err := r.DB.QueryRowContext(ctx, query, e.Name, e.Type, e.Description, e.Datetime, string(e.Status), e.CreatedBy).
		Scan(&e.ID, &e.CreatedAt)
	if isMissingRef(err) {
		return domain.ErrNotFound
	}
	return err
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || isMissingRef(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) ListByStatus(ctx context.Context, status domain.EventStatus) ([]*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE status = $1 ORDER BY datetime ASC`
	return r.list(ctx, query, string(status))
}

func (r *eventRepository) ListByIDs(ctx context.Context, ids []string, status domain.EventStatus) ([]*domain.Event, error) {
	if len(ids) == 0 {
		return []*domain.Event{}, nil
	}
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = ANY($1::uuid[]) AND status = $2 ORDER BY datetime ASC`
	return r.list(ctx, query, pq.Array(ids), string(status))
}

func (r *eventRepository) list(ctx context.Context, query string, args ...any) ([]*domain.Event, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]*domain.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// UpdateStatus reviews a pending event. An event that is no longer pending
// yields domain.ErrAlreadyReviewed.
func (r *eventRepository) UpdateStatus(ctx context.Context, id string, status domain.EventStatus) (*domain.Event, error) {
	query := `UPDATE events SET status = $1 WHERE id = $2 AND status = $3 RETURNING ` + eventColumns
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, string(status), id, string(domain.StatusPending)))
	if err == nil {
		return e, nil
	}
	if !errors.Is(err, sql.ErrNoRows) && !isMissingRef(err) {
		return nil, err
	}
	var current string
	err = r.DB.QueryRowContext(ctx, `SELECT status FROM events WHERE id = $1`, id).Scan(&current)
	switch {
	case errors.Is(err, sql.ErrNoRows) || isMissingRef(err):
		return nil, domain.ErrNotFound
	case err != nil:
		return nil, err
	}
	return nil, fmt.Errorf("%w: status is %s", domain.ErrAlreadyReviewed, current)
}
