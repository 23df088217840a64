package postgres

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"github.com/eventhub/eventhub/internal/domain"
)

type participantRepository struct {
	DB *sql.DB
}

func NewParticipantRepository(db *sql.DB) domain.ParticipantStore {
	return &participantRepository{
		DB: db,
	}
}

// Create inserts the participation. The UNIQUE (event_id, user_id) constraint
// is the only duplicate check.
func (r *participantRepository) Create(ctx context.Context, p *domain.EventParticipant) error {
	query := `
		INSERT INTO event_participants (event_id, user_id)
		VALUES ($1, $2)
		RETURNING id, created_at
	`
	err := r.DB.QueryRowContext(ctx, query, p.EventID, p.UserID).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		if pqCode(err) == codeUniqueViolation {
			return domain.ErrAlreadyJoined
		}
		if isMissingRef(err) {
			return domain.ErrNotFound
		}
		return err
	}
	return nil
}

func (r *participantRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.EventParticipant, error) {
	query := `
		SELECT id, event_id, user_id, created_at
		FROM event_participants
		WHERE user_id = $1
		ORDER BY created_at ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		if isMissingRef(err) {
			return []*domain.EventParticipant{}, nil
		}
		return nil, err
	}
	defer rows.Close()

	out := make([]*domain.EventParticipant, 0)
	for rows.Next() {
		p := &domain.EventParticipant{}
		if err := rows.Scan(&p.ID, &p.EventID, &p.UserID, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// ListWithEmailsByEventIDs joins participants with users for all ids in one query.
func (r *participantRepository) ListWithEmailsByEventIDs(ctx context.Context, eventIDs []string) ([]*domain.EventParticipantWithEmail, error) {
	if len(eventIDs) == 0 {
		return []*domain.EventParticipantWithEmail{}, nil
	}
	query := `
		SELECT p.event_id, p.user_id, u.email
		FROM event_participants p
		JOIN users u ON u.id = p.user_id
		WHERE p.event_id = ANY($1::uuid[])
		ORDER BY p.created_at ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, pq.Array(eventIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*domain.EventParticipantWithEmail, 0)
	for rows.Next() {
		p := &domain.EventParticipantWithEmail{}
		if err := rows.Scan(&p.EventID, &p.UserID, &p.Email); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
