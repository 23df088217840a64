package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/eventhub/eventhub/internal/domain"
)

const minPasswordLen = 6

var emailRegexp = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

type authService struct {
	userRepo    domain.UserRepository
	roleRepo    domain.RoleRepository
	hasher      domain.PasswordHasher
	tokenIssuer domain.TokenIssuer
	verifier    domain.TokenVerifier
	tokenExpiry time.Duration
	adminEmails []string
	logger      *slog.Logger
	now         func() time.Time
}

// NewAuthService returns the backend auth API. Identities whose email is in
// adminEmails are granted the admin role at sign-up and sign-in.
func NewAuthService(
	userRepo domain.UserRepository,
	roleRepo domain.RoleRepository,
	hasher domain.PasswordHasher,
	tokenIssuer domain.TokenIssuer,
	verifier domain.TokenVerifier,
	tokenExpiry time.Duration,
	adminEmails []string,
	logger *slog.Logger,
) domain.AuthProvider {
	if logger == nil {
		logger = slog.Default()
	}
	admins := make([]string, 0, len(adminEmails))
	for _, e := range adminEmails {
		if e = normalizeEmail(e); e != "" {
			admins = append(admins, e)
		}
	}
	return &authService{
		userRepo:    userRepo,
		roleRepo:    roleRepo,
		hasher:      hasher,
		tokenIssuer: tokenIssuer,
		verifier:    verifier,
		tokenExpiry: tokenExpiry,
		adminEmails: admins,
		logger:      logger,
		now:         time.Now,
	}
}

func normalizeEmail(email string) string {
	return strings.TrimSpace(strings.ToLower(email))
}

func (s *authService) SignUp(ctx context.Context, email, password string) (*domain.User, error) {
	email = normalizeEmail(email)
	if !emailRegexp.MatchString(email) {
		return nil, fmt.Errorf("%w: invalid email format", domain.ErrInvalidInput)
	}
	if len(password) < minPasswordLen {
		return nil, fmt.Errorf("%w: password must be at least %d characters", domain.ErrInvalidInput, minPasswordLen)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}
	user := domain.NewUser(email, hash, s.now())
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	codes := []string{domain.RoleUser}
	if s.isAdminEmail(email) {
		codes = append(codes, domain.RoleAdmin)
	}
	for _, code := range codes {
		if err := s.assignRole(ctx, user.ID, code); err != nil {
			return nil, err
		}
	}
	s.logger.Info("user signed up", "user_id", user.ID, "admin", s.isAdminEmail(email))
	return user, nil
}

func (s *authService) SignInWithPassword(ctx context.Context, email, password string) (*domain.Session, error) {
	email = normalizeEmail(email)
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to check password: %w", err)
	}

	roleCodes, err := s.roleCodes(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if s.isAdminEmail(email) && !slices.Contains(roleCodes, domain.RoleAdmin) {
		if err := s.assignRole(ctx, user.ID, domain.RoleAdmin); err != nil {
			return nil, err
		}
		roleCodes = append(roleCodes, domain.RoleAdmin)
	}

	identity := &domain.Identity{ID: user.ID, Email: user.Email, Roles: roleCodes}
	token, expiresAt, err := s.tokenIssuer.Issue(identity, s.tokenExpiry)
	if err != nil {
		return nil, err
	}
	return &domain.Session{AccessToken: token, ExpiresAt: expiresAt, Identity: identity}, nil
}

func (s *authService) Session(ctx context.Context, accessToken string) (*domain.Session, error) {
	identity, expiresAt, err := s.verifier.Verify(accessToken)
	if err != nil {
		return nil, err
	}
	return &domain.Session{AccessToken: accessToken, ExpiresAt: expiresAt, Identity: identity}, nil
}

// SignOut has nothing to revoke: access tokens are stateless and expire on their own.
func (s *authService) SignOut(ctx context.Context, accessToken string) error {
	return nil
}

func (s *authService) isAdminEmail(email string) bool {
	return slices.Contains(s.adminEmails, email)
}

func (s *authService) assignRole(ctx context.Context, userID, code string) error {
	role, err := s.roleRepo.GetByCode(ctx, code)
	if err != nil {
		return fmt.Errorf("failed to get role %q: %w", code, err)
	}
	if err := s.userRepo.AssignRole(ctx, userID, role.ID); err != nil {
		return fmt.Errorf("failed to assign role: %w", err)
	}
	return nil
}

func (s *authService) roleCodes(ctx context.Context, userID string) ([]string, error) {
	roles, err := s.roleRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load roles: %w", err)
	}
	codes := make([]string, len(roles))
	for i, r := range roles {
		codes[i] = r.Code
	}
	return codes, nil
}
