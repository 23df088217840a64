package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/eventhub/eventhub/internal/domain"
)

type jwtClaims struct {
	jwt.RegisteredClaims
	Email string   `json:"email"`
	Roles []string `json:"roles"`
}

type jwtIssuer struct {
	secret []byte
	now    func() time.Time
}

// NewJWTIssuer returns a TokenIssuer that signs JWTs with HS256 using the given secret.
func NewJWTIssuer(secret string) domain.TokenIssuer {
	return &jwtIssuer{secret: []byte(secret), now: time.Now}
}

func (i *jwtIssuer) Issue(identity *domain.Identity, expiry time.Duration) (string, time.Time, error) {
	if identity == nil {
		return "", time.Time{}, errors.New("cannot issue token for nil identity")
	}
	now := i.now()
	expiresAt := now.Add(expiry)
	claims := jwtClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		Email: identity.Email,
		Roles: identity.Roles,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, expiresAt, nil
}

type jwtVerifier struct {
	secret []byte
}

// NewJWTVerifier returns a TokenVerifier for tokens signed by NewJWTIssuer with the same secret.
func NewJWTVerifier(secret string) domain.TokenVerifier {
	return &jwtVerifier{secret: []byte(secret)}
}

func (v *jwtVerifier) Verify(tokenString string) (*domain.Identity, time.Time, error) {
	claims := &jwtClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("%w: %v", domain.ErrInvalidCredentials, err)
	}
	if claims.Subject == "" {
		return nil, time.Time{}, fmt.Errorf("%w: token has no subject", domain.ErrInvalidCredentials)
	}
	return &domain.Identity{
		ID:    claims.Subject,
		Email: claims.Email,
		Roles: claims.Roles,
	}, claims.ExpiresAt.Time, nil
}
