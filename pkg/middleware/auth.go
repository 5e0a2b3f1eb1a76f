package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"

	"staybook/pkg/logger"
)

const identityKey contextKey = "identity"

// Identity is what the identity provider's bearer token asserts about
// the caller. Role lives in the user store, not in the token.
type Identity struct {
	Subject  string
	Email    string
	Username string
}

type identityClaims struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok
}

// RequireAuth verifies the bearer token and stores the caller's Identity in
// the request context. Missing or invalid tokens are rejected with 401
// before the handler runs.
func RequireAuth(secret string, log *logger.Logger) func(httprouter.Handle) httprouter.Handle {
	return func(next httprouter.Handle) httprouter.Handle {
		return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
			tokenStr := extractBearerToken(r)
			if tokenStr == "" {
				rejectUnauthorized(w, log, r, "Missing bearer token")
				return
			}

			claims := &identityClaims{}
			token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return []byte(secret), nil
			})
			if err != nil || !token.Valid || claims.Subject == "" {
				rejectUnauthorized(w, log, r, "Invalid bearer token")
				return
			}

			identity := Identity{
				Subject:  claims.Subject,
				Email:    claims.Email,
				Username: claims.Username,
			}
			ctx := context.WithValue(r.Context(), identityKey, identity)
			next(w, r.WithContext(ctx), ps)
		}
	}
}

func extractBearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found {
		return ""
	}
	return strings.TrimSpace(token)
}

func rejectUnauthorized(w http.ResponseWriter, log *logger.Logger, r *http.Request, reason string) {
	log.Warn("Authentication failed",
		"request_id", RequestID(r.Context()),
		"reason", reason,
		"path", r.URL.Path,
	)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"success":false,"message":"Unauthorized"}`))
}
