package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/eventhub/eventhub/internal/domain"
)

const eventColumns = `id, name, type, description, datetime, status, created_by, created_at`

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventStore {
	return &eventRepository{DB: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (*domain.Event, error) {
	e := &domain.Event{}
	var status string
	var datetime, createdAt int64
	if err := row.Scan(&e.ID, &e.Name, &e.Type, &e.Description, &datetime, &status, &e.CreatedBy, &createdAt); err != nil {
		return nil, err
	}
	e.Datetime = fromMillis(datetime)
	e.CreatedAt = fromMillis(createdAt)
	e.Status = domain.EventStatus(status)
	return e, nil
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	id := uuid.NewString()
	now := fromMillis(toMillis(timeNow()))
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO events (id, name, type, description, datetime, status, created_by, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, id, e.Name, e.Type, e.Description, toMillis(e.Datetime), string(e.Status), e.CreatedBy, toMillis(now))
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return err
	}
	e.ID = id
	e.CreatedAt = now
	return nil
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	e, err := scanEvent(r.DB.QueryRowContext(ctx, `SELECT `+eventColumns+` FROM events WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) ListByStatus(ctx context.Context, status domain.EventStatus) ([]*domain.Event, error) {
	return r.list(ctx, `SELECT `+eventColumns+` FROM events WHERE status = ? ORDER BY datetime ASC, rowid ASC`, string(status))
}

func (r *eventRepository) ListByIDs(ctx context.Context, ids []string, status domain.EventStatus) ([]*domain.Event, error) {
	if len(ids) == 0 {
		return []*domain.Event{}, nil
	}
	marks, args := placeholders(ids)
	args = append(args, string(status))
	query := `SELECT ` + eventColumns + ` FROM events WHERE id IN (` + marks + `) AND status = ? ORDER BY datetime ASC, rowid ASC`
	return r.list(ctx, query, args...)
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
	e, err := scanEvent(r.DB.QueryRowContext(ctx,
		`UPDATE events SET status = ? WHERE id = ? AND status = ? RETURNING `+eventColumns,
		string(status), id, string(domain.StatusPending)))
	if err == nil {
		return e, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	var current string
	err = r.DB.QueryRowContext(ctx, `SELECT status FROM events WHERE id = ?`, id).Scan(&current)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, domain.ErrNotFound
	case err != nil:
		return nil, err
	}
	return nil, fmt.Errorf("%w: status is %s", domain.ErrAlreadyReviewed, current)
}
