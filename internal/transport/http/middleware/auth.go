package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/dkoss/relay/internal/domain"
)

type contextKey string

const identityKey contextKey = "identity"

// Auth validates the bearer token and binds the identity claim to the
// request context. A token that fails signature or expiry checks is 401;
// a token that verifies but does not carry the {user_id, user_name} claim
// shape is 400, it was issued by something else entirely.
func Auth(jwtSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" || !strings.HasPrefix(header, "Bearer ") {
				http.Error(w, `{"msg":"Missing or invalid token"}`, http.StatusUnauthorized)
				return
			}

			tokenStr := strings.TrimPrefix(header, "Bearer ")

			token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
				return []byte(jwtSecret), nil
			})
			if err != nil || !token.Valid {
				http.Error(w, `{"msg":"Invalid or expired token"}`, http.StatusUnauthorized)
				return
			}

			identity, ok := identityFromClaims(token.Claims)
			if !ok {
				http.Error(w, `{"msg":"Invalid user identity format"}`, http.StatusBadRequest)
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func identityFromClaims(claims jwt.Claims) (domain.Identity, bool) {
	mapClaims, ok := claims.(jwt.MapClaims)
	if !ok {
		return domain.Identity{}, false
	}

	sub, err := mapClaims.GetSubject()
	if err != nil || sub == "" {
		return domain.Identity{}, false
	}
	userID, err := uuid.Parse(sub)
	if err != nil {
		return domain.Identity{}, false
	}

	name, ok := mapClaims["name"].(string)
	if !ok || name == "" {
		return domain.Identity{}, false
	}

	return domain.Identity{UserID: userID, UserName: name}, true
}

// GetIdentity extracts the authenticated identity from request context.
func GetIdentity(ctx context.Context) domain.Identity {
	return ctx.Value(identityKey).(domain.Identity)
}
