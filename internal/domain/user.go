package domain

import (
	"context"
	"slices"
	"time"
)

// RoleAdmin is the role code that grants access to the admin routes.
const RoleAdmin = "admin"

// RoleUser is the role code assigned to every registered identity.
const RoleUser = "user"

// User represents a registered account in the remote store.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewUser returns a new User with the given fields. ID is typically set by the store on create.
func NewUser(email, passwordHash string, createdAt time.Time) *User {
	return &User{
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    createdAt,
	}
}

// Role represents an application role (e.g. admin, user)
type Role struct {
	ID   string `json:"id"`
	Code string `json:"code"`
}

// Identity is the authenticated principal carried by a session.
// swagger:model Identity
type Identity struct {
	ID    string   `json:"id"`
	Email string   `json:"email"`
	Roles []string `json:"roles"`
}

// IsAdmin reports whether the identity holds the admin role. A nil identity is not an admin.
func (i *Identity) IsAdmin() bool {
	return i != nil && slices.Contains(i.Roles, RoleAdmin)
}

// Session is an authenticated session as handed out by the auth provider.
type Session struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
	Identity    *Identity `json:"identity"`
}

// PasswordHasher handles password hashing and verification.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// TokenIssuer issues access tokens for an authenticated identity.
type TokenIssuer interface {
	Issue(identity *Identity, expiry time.Duration) (token string, expiresAt time.Time, err error)
}

// TokenVerifier verifies an access token and returns the identity it was issued for.
type TokenVerifier interface {
	Verify(token string) (*Identity, time.Time, error)
}

// UserRepository defines the interface for user storage
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	AssignRole(ctx context.Context, userID, roleID string) error
}

// RoleRepository defines the interface for role storage
type RoleRepository interface {
	GetByCode(ctx context.Context, code string) (*Role, error)
	ListByUserID(ctx context.Context, userID string) ([]*Role, error)
}

// IdentityDirectory is the read-only identity-email lookup of the remote store.
type IdentityDirectory interface {
	EmailByID(ctx context.Context, userID string) (string, error)
}
