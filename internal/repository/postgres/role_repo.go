package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/eventhub/eventhub/internal/domain"
)

// roleRepository reads the seeded roles table. Role rows never change after
// the initial migration, so a resolved code is remembered for the life of the
// repository.
type roleRepository struct {
	DB *sql.DB

	mu     sync.RWMutex
	byCode map[string]*domain.Role
}

func NewRoleRepository(db *sql.DB) domain.RoleRepository {
	return &roleRepository{DB: db, byCode: make(map[string]*domain.Role)}
}

func (r *roleRepository) GetByCode(ctx context.Context, code string) (*domain.Role, error) {
	r.mu.RLock()
	cached, ok := r.byCode[code]
	r.mu.RUnlock()
	if ok {
		role := *cached
		return &role, nil
	}

	role := &domain.Role{}
	err := r.DB.QueryRowContext(ctx, `SELECT id, code FROM roles WHERE code = $1`, code).Scan(&role.ID, &role.Code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get role %q: %w", code, err)
	}

	r.mu.Lock()
	stored := *role
	r.byCode[code] = &stored
	r.mu.Unlock()
	return role, nil
}

// ListByUserID returns the roles assigned to userID, "user" before "admin".
func (r *roleRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Role, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT r.id, r.code
		FROM roles r
		INNER JOIN user_roles ur ON ur.role_id = r.id
		WHERE ur.user_id = $1
		ORDER BY r.code DESC
	`, userID)
	if err != nil {
		if isMissingRef(err) {
			return []*domain.Role{}, nil
		}
		return nil, fmt.Errorf("list roles: %w", err)
	}
	defer rows.Close()

	roles := []*domain.Role{}
	for rows.Next() {
		role := &domain.Role{}
		if err := rows.Scan(&role.ID, &role.Code); err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}
