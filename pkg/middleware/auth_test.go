package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"

	"staybook/pkg/logger"
)

const testSecret = "test-signing-secret"

func mintToken(t *testing.T, secret, subject string, expiresIn time.Duration) string {
	t.Helper()
	claims := identityClaims{
		Email:    "guest@example.com",
		Username: "guest",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return token
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Output: io.Discard})
}

func TestRequireAuthPassesIdentityToHandler(t *testing.T) {
	auth := RequireAuth(testSecret, testLogger())

	var got Identity
	handler := auth(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		id, ok := IdentityFromContext(r.Context())
		if !ok {
			t.Fatal("expected identity in request context")
		}
		got = id
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/user", nil)
	req.Header.Set("Authorization", "Bearer "+mintToken(t, testSecret, "user_2x7f9", time.Hour))
	rec := httptest.NewRecorder()

	handler(rec, req, nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got.Subject != "user_2x7f9" {
		t.Errorf("expected subject user_2x7f9, got %q", got.Subject)
	}
	if got.Email != "guest@example.com" || got.Username != "guest" {
		t.Errorf("unexpected identity %+v", got)
	}
}

func TestRequireAuthRejectsBadTokens(t *testing.T) {
	auth := RequireAuth(testSecret, testLogger())

	handler := auth(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		t.Fatal("handler must not run for rejected requests")
	})

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic dXNlcjpwYXNz"},
		{"garbage token", "Bearer not.a.jwt"},
		{"wrong secret", "Bearer " + mintToken(t, "some-other-secret", "user_2x7f9", time.Hour)},
		{"expired", "Bearer " + mintToken(t, testSecret, "user_2x7f9", -time.Hour)},
		{"no subject", "Bearer " + mintToken(t, testSecret, "", time.Hour)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/user", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			handler(rec, req, nil)

			if rec.Code != http.StatusUnauthorized {
				t.Errorf("expected 401, got %d", rec.Code)
			}
		})
	}
}
