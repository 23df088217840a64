package sqlite

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/eventhub/eventhub/internal/domain"
)

type participantRepository struct {
	DB *sql.DB
}

func NewParticipantRepository(db *sql.DB) domain.ParticipantStore {
	return &participantRepository{DB: db}
}

func (r *participantRepository) Create(ctx context.Context, p *domain.EventParticipant) error {
	id := uuid.NewString()
	now := fromMillis(toMillis(timeNow()))
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO event_participants (id, event_id, user_id, created_at)
		VALUES (?, ?, ?, ?)
	`, id, p.EventID, p.UserID, toMillis(now))
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyJoined
		}
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return err
	}
	p.ID = id
	p.CreatedAt = now
	return nil
}

func (r *participantRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.EventParticipant, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, event_id, user_id, created_at
		FROM event_participants
		WHERE user_id = ?
		ORDER BY created_at ASC, rowid ASC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*domain.EventParticipant, 0)
	for rows.Next() {
		p := &domain.EventParticipant{}
		var createdAt int64
		if err := rows.Scan(&p.ID, &p.EventID, &p.UserID, &createdAt); err != nil {
			return nil, err
		}
		p.CreatedAt = fromMillis(createdAt)
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *participantRepository) ListWithEmailsByEventIDs(ctx context.Context, eventIDs []string) ([]*domain.EventParticipantWithEmail, error) {
	if len(eventIDs) == 0 {
		return []*domain.EventParticipantWithEmail{}, nil
	}
	marks, args := placeholders(eventIDs)
	rows, err := r.DB.QueryContext(ctx, `
		SELECT p.event_id, p.user_id, u.email
		FROM event_participants p
		JOIN users u ON u.id = p.user_id
		WHERE p.event_id IN (`+marks+`)
		ORDER BY p.created_at ASC, p.rowid ASC
	`, args...)
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
