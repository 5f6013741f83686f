package auth

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"io"
	"log/slog"
	"testing"
	"time"

	"broadsheet/internal/domain"
	"broadsheet/internal/domain/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestVerifier(t *testing.T) (*SupabaseJWTVerifier, *ecdsa.PrivateKey) {
	t.Helper()
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	kf := func(*jwt.Token) (any, error) { return &key.PublicKey, nil }
	return newVerifier(kf, slog.New(slog.NewTextHandler(io.Discard, nil))), key
}

func editorClaims(sub, role, editorialRole string, expires time.Time) *models.EditorClaims {
	c := &models.EditorClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sub,
			ExpiresAt: jwt.NewNumericDate(expires),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
		Email: "desk@example.com",
		Role:  role,
	}
	if editorialRole != "" {
		c.AppMetadata = map[string]any{"editorial_role": editorialRole}
	}
	return c
}

func TestVerifyToken(t *testing.T) {
	v, key := newTestVerifier(t)
	later := time.Now().Add(time.Hour)

	sign := func(c *models.EditorClaims) string {
		s, err := jwt.NewWithClaims(jwt.SigningMethodES256, c).SignedString(key)
		require.NoError(t, err)
		return s
	}

	hmacToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256,
		editorClaims("user-1", "authenticated", "editor", later)).SignedString([]byte("secret"))
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   string
		wantErr error
	}{
		{"editor", sign(editorClaims("user-1", "authenticated", models.RoleEditor, later)), nil},
		{"admin", sign(editorClaims("user-2", "authenticated", models.RoleAdmin, later)), nil},
		{"no editorial role", sign(editorClaims("user-3", "authenticated", "", later)), domain.ErrForbidden},
		{"reader role", sign(editorClaims("user-3", "authenticated", "reader", later)), domain.ErrForbidden},
		{"anonymous", sign(editorClaims("user-4", "anon", models.RoleEditor, later)), domain.ErrUnauthorized},
		{"expired", sign(editorClaims("user-5", "authenticated", models.RoleEditor, time.Now().Add(-time.Hour))), domain.ErrUnauthorized},
		{"missing subject", sign(editorClaims("", "authenticated", models.RoleEditor, later)), domain.ErrUnauthorized},
		{"hmac algorithm", hmacToken, domain.ErrUnauthorized},
		{"garbage", "not-a-token", domain.ErrUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := v.VerifyToken(tt.token)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, claims)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, claims.GetUserID())
			assert.True(t, claims.IsStaff())
		})
	}
}
