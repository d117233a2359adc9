package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkoss/relay/internal/domain"
	"github.com/dkoss/relay/internal/transport/http/middleware"
)

const secret = "test-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func callProtected(t *testing.T, authHeader string) (*httptest.ResponseRecorder, *domain.Identity) {
	t.Helper()

	var captured *domain.Identity
	handler := middleware.Auth(secret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity := middleware.GetIdentity(r.Context())
		captured = &identity
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec, captured
}

func TestAuthAcceptsValidToken(t *testing.T) {
	userID := uuid.New()
	token := signToken(t, secret, jwt.MapClaims{
		"sub":  userID.String(),
		"name": "alice",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})

	rec, identity := callProtected(t, "Bearer "+token)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, identity)
	assert.Equal(t, userID, identity.UserID)
	assert.Equal(t, "alice", identity.UserName)
}

func TestAuthMissingHeader(t *testing.T) {
	rec, identity := callProtected(t, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, identity)
}

func TestAuthRejectsWrongSignature(t *testing.T) {
	token := signToken(t, "other-secret", jwt.MapClaims{
		"sub":  uuid.New().String(),
		"name": "alice",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})

	rec, _ := callProtected(t, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthRejectsExpiredToken(t *testing.T) {
	token := signToken(t, secret, jwt.MapClaims{
		"sub":  uuid.New().String(),
		"name": "alice",
		"exp":  time.Now().Add(-time.Hour).Unix(),
	})

	rec, _ := callProtected(t, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// A token that verifies but does not carry the {user_id, user_name} claim
// shape is malformed, not merely unauthorized.
func TestAuthRejectsMalformedClaimShape(t *testing.T) {
	cases := map[string]jwt.MapClaims{
		"missing name": {
			"sub": uuid.New().String(),
			"exp": time.Now().Add(time.Hour).Unix(),
		},
		"non-uuid subject": {
			"sub":  "alice",
			"name": "alice",
			"exp":  time.Now().Add(time.Hour).Unix(),
		},
		"numeric name": {
			"sub":  uuid.New().String(),
			"name": 42,
			"exp":  time.Now().Add(time.Hour).Unix(),
		},
	}

	for name, claims := range cases {
		t.Run(name, func(t *testing.T) {
			rec, _ := callProtected(t, "Bearer "+signToken(t, secret, claims))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}
