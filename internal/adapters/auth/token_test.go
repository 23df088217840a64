package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventhub/eventhub/internal/domain"
)

func TestJWTIssuer_Issue(t *testing.T) {
	secret := "test-secret"
	issuer := NewJWTIssuer(secret)
	identity := &domain.Identity{ID: "user-123", Email: "u@example.com", Roles: []string{"user", "admin"}}

	token, expiresAt, err := issuer.Issue(identity, 24*time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), expiresAt, time.Minute)

	// Parse and verify claims
	parsed, err := jwt.ParseWithClaims(token, &jwtClaims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)
	claims, ok := parsed.Claims.(*jwtClaims)
	require.True(t, ok)
	assert.Equal(t, "user-123", claims.Subject)
	assert.Equal(t, "u@example.com", claims.Email)
	assert.Equal(t, []string{"user", "admin"}, claims.Roles)
}

func TestJWTVerifier_Verify(t *testing.T) {
	identity := &domain.Identity{ID: "user-123", Email: "u@example.com", Roles: []string{"user"}}
	valid, _, err := NewJWTIssuer("secret").Issue(identity, time.Hour)
	require.NoError(t, err)
	expired, _, err := NewJWTIssuer("secret").Issue(identity, -time.Hour)
	require.NoError(t, err)
	forged, _, err := NewJWTIssuer("other-secret").Issue(identity, time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   string
		wantErr bool
	}{
		{name: "valid token", token: valid},
		{name: "expired token", token: expired, wantErr: true},
		{name: "wrong secret", token: forged, wantErr: true},
		{name: "garbage", token: "not-a-jwt", wantErr: true},
	}

	verifier := NewJWTVerifier("secret")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, expiresAt, err := verifier.Verify(tt.token)
			if tt.wantErr {
				require.ErrorIs(t, err, domain.ErrInvalidCredentials)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, identity, got)
			assert.True(t, expiresAt.After(time.Now()))
		})
	}
}
