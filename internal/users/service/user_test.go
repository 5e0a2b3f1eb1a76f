package service

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	userserrors "staybook/internal/users/errors"
	"staybook/pkg/client"
	"staybook/pkg/config"
	apperrors "staybook/pkg/errors"
	"staybook/pkg/logger"
	"staybook/pkg/model"
)

const testUserID = "user_2x7f9"

type mockUserRepo struct {
	upsertFn        func(ctx context.Context, user *model.User) error
	findByIDFn      func(ctx context.Context, id string) (*model.User, error)
	addRecentCityFn func(ctx context.Context, id string, city string) error
}

func (m *mockUserRepo) Upsert(ctx context.Context, user *model.User) error {
	return m.upsertFn(ctx, user)
}

func (m *mockUserRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	return m.findByIDFn(ctx, id)
}

func (m *mockUserRepo) UpdateRole(ctx context.Context, id string, role string) error { return nil }

func (m *mockUserRepo) AddRecentSearchedCity(ctx context.Context, id string, city string) error {
	return m.addRecentCityFn(ctx, id, city)
}

func testConfig() *config.Config {
	return &config.Config{Log: logger.New(logger.Config{Output: io.Discard})}
}

func TestGetProfileReturnsLocalUser(t *testing.T) {
	repo := &mockUserRepo{findByIDFn: func(ctx context.Context, id string) (*model.User, error) {
		return &model.User{ID: testUserID, Role: config.RoleOwner}, nil
	}}

	svc := NewUserService(repo, nil, testConfig())

	user, err := svc.GetProfile(context.Background(), testUserID)
	if err != nil {
		t.Fatalf("GetProfile returned error: %v", err)
	}
	if user.Role != config.RoleOwner {
		t.Errorf("expected stored role, got %q", user.Role)
	}
}

func TestGetProfileSeedsUnknownUserFromIdentityProvider(t *testing.T) {
	identity := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/users/"+testUserID {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"user_2x7f9","username":"guest","email":"guest@example.com"}`))
	}))
	defer identity.Close()

	var seeded *model.User
	repo := &mockUserRepo{
		findByIDFn: func(ctx context.Context, id string) (*model.User, error) {
			if seeded == nil {
				return nil, userserrors.ErrNotFound
			}
			return seeded, nil
		},
		upsertFn: func(ctx context.Context, user *model.User) error {
			seeded = user
			return nil
		},
	}

	svc := NewUserService(repo, client.NewIdentityClient(identity.URL, 10*time.Millisecond), testConfig())

	user, err := svc.GetProfile(context.Background(), testUserID)
	if err != nil {
		t.Fatalf("GetProfile returned error: %v", err)
	}
	if user.Role != config.RoleGuest {
		t.Errorf("synced users start as guests, got role %q", user.Role)
	}
	if user.Email != "guest@example.com" || user.Username != "guest" {
		t.Errorf("expected identity profile fields, got %+v", user)
	}
}

func TestGetProfileFailsWhenIdentityProviderIsDown(t *testing.T) {
	identity := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer identity.Close()

	repo := &mockUserRepo{
		findByIDFn: func(ctx context.Context, id string) (*model.User, error) {
			return nil, userserrors.ErrNotFound
		},
		upsertFn: func(ctx context.Context, user *model.User) error {
			t.Fatal("no user should be stored without an identity profile")
			return nil
		},
	}

	svc := NewUserService(repo, client.NewIdentityClient(identity.URL, time.Millisecond), testConfig())

	_, err := svc.GetProfile(context.Background(), testUserID)
	if err == nil {
		t.Fatal("expected upstream error")
	}
	if apperrors.AsAppError(err).Code != apperrors.CodeUpstream {
		t.Errorf("expected upstream error, got %v", err)
	}
}

func TestStoreRecentSearchNormalizesCity(t *testing.T) {
	var storedCity string
	repo := &mockUserRepo{addRecentCityFn: func(ctx context.Context, id string, city string) error {
		storedCity = city
		return nil
	}}

	svc := NewUserService(repo, nil, testConfig())

	if err := svc.StoreRecentSearch(context.Background(), testUserID, "  New   York "); err != nil {
		t.Fatalf("StoreRecentSearch returned error: %v", err)
	}
	if storedCity != "new york" {
		t.Errorf("expected normalized city, got %q", storedCity)
	}
}

func TestStoreRecentSearchRejectsEmptyCity(t *testing.T) {
	repo := &mockUserRepo{addRecentCityFn: func(ctx context.Context, id string, city string) error {
		t.Fatal("empty searches must not reach the repository")
		return nil
	}}

	svc := NewUserService(repo, nil, testConfig())

	err := svc.StoreRecentSearch(context.Background(), testUserID, "   ")
	if err == nil {
		t.Fatal("expected invalid-input error")
	}
	if apperrors.AsAppError(err).Code != apperrors.CodeInvalidInput {
		t.Errorf("expected invalid input, got %v", err)
	}
}
