package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/eventhub/eventhub/internal/domain"
)

type roleRepository struct {
	DB *sql.DB
}

func NewRoleRepository(db *sql.DB) domain.RoleRepository {
	return &roleRepository{DB: db}
}

func (r *roleRepository) GetByCode(ctx context.Context, code string) (*domain.Role, error) {
	role := &domain.Role{}
	err := r.DB.QueryRowContext(ctx, `SELECT id, code FROM roles WHERE code = ?`, code).Scan(&role.ID, &role.Code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return role, nil
}

func (r *roleRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Role, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT r.id, r.code
		FROM roles r
		INNER JOIN user_roles ur ON ur.role_id = r.id
		WHERE ur.user_id = ?
		ORDER BY r.code DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roles []*domain.Role
	for rows.Next() {
		role := &domain.Role{}
		if err := rows.Scan(&role.ID, &role.Code); err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}
