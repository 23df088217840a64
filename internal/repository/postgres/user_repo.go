package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/eventhub/eventhub/internal/domain"
)

type userRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) domain.UserRepository {
	return &userRepository{DB: db}
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	query := `
		INSERT INTO users (email, password_hash, created_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query, u.Email, u.PasswordHash, u.CreatedAt).Scan(&u.ID)
	if pqCode(err) == codeUniqueViolation {
		return domain.ErrDuplicateEmail
	}
	return err
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `
		SELECT id, email, password_hash, created_at
		FROM users
		WHERE email = $1
	`
	u := &domain.User{}
	err := r.DB.QueryRowContext(ctx, query, email).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func (r *userRepository) AssignRole(ctx context.Context, userID, roleID string) error {
	query := `
		INSERT INTO user_roles (user_id, role_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, role_id) DO NOTHING
	`
	_, err := r.DB.ExecContext(ctx, query, userID, roleID)
	return err
}

// EmailByID implements domain.IdentityDirectory.
func (r *userRepository) EmailByID(ctx context.Context, userID string) (string, error) {
	var email string
	err := r.DB.QueryRowContext(ctx, `SELECT email FROM users WHERE id = $1`, userID).Scan(&email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || isMissingRef(err) {
			return "", domain.ErrNotFound
		}
		return "", err
	}
	return email, nil
}

// NewIdentityDirectory returns the read-only email lookup over the users table.
func NewIdentityDirectory(db *sql.DB) domain.IdentityDirectory {
	return &userRepository{DB: db}
}
