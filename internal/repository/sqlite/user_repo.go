package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/eventhub/eventhub/internal/domain"
)

var timeNow = time.Now

type userRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) domain.UserRepository {
	return &userRepository{DB: db}
}

// NewIdentityDirectory returns the read-only email lookup over the users table.
func NewIdentityDirectory(db *sql.DB) domain.IdentityDirectory {
	return &userRepository{DB: db}
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	id := uuid.NewString()
	createdAt := u.CreatedAt
	if createdAt.IsZero() {
		createdAt = timeNow()
	}
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO users (id, email, password_hash, created_at)
		VALUES (?, ?, ?, ?)
	`, id, u.Email, u.PasswordHash, toMillis(createdAt))
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateEmail
		}
		return err
	}
	u.ID = id
	u.CreatedAt = fromMillis(toMillis(createdAt))
	return nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	u := &domain.User{}
	var createdAt int64
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, email, password_hash, created_at
		FROM users
		WHERE email = ?
	`, email).Scan(&u.ID, &u.Email, &u.PasswordHash, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	u.CreatedAt = fromMillis(createdAt)
	return u, nil
}

func (r *userRepository) AssignRole(ctx context.Context, userID, roleID string) error {
	_, err := r.DB.ExecContext(ctx, `INSERT OR IGNORE INTO user_roles (user_id, role_id) VALUES (?, ?)`, userID, roleID)
	if isForeignKeyViolation(err) {
		return domain.ErrNotFound
	}
	return err
}

func (r *userRepository) EmailByID(ctx context.Context, userID string) (string, error) {
	var email string
	err := r.DB.QueryRowContext(ctx, `SELECT email FROM users WHERE id = ?`, userID).Scan(&email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", domain.ErrNotFound
		}
		return "", err
	}
	return email, nil
}
