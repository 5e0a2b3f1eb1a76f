package service

import (
	"context"
	"io"
	"testing"

	hotelserrors "staybook/internal/hotels/errors"
	"staybook/internal/hotels/validator"
	"staybook/pkg/config"
	apperrors "staybook/pkg/errors"
	"staybook/pkg/logger"
	"staybook/pkg/model"
)

const testOwnerID = "user_2x7f9"

type mockHotelRepo struct {
	createFn func(ctx context.Context, hotel *model.Hotel) error
}

func (m *mockHotelRepo) Create(ctx context.Context, hotel *model.Hotel) error {
	return m.createFn(ctx, hotel)
}

func (m *mockHotelRepo) FindByID(ctx context.Context, id string) (*model.Hotel, error) {
	return nil, hotelserrors.ErrNotFound
}

func (m *mockHotelRepo) FindByOwner(ctx context.Context, ownerID string) (*model.Hotel, error) {
	return nil, hotelserrors.ErrNotFound
}

type mockUserRepo struct {
	updateRoleFn func(ctx context.Context, id string, role string) error
}

func (m *mockUserRepo) Upsert(ctx context.Context, user *model.User) error { return nil }

func (m *mockUserRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	return nil, nil
}

func (m *mockUserRepo) UpdateRole(ctx context.Context, id string, role string) error {
	return m.updateRoleFn(ctx, id, role)
}

func (m *mockUserRepo) AddRecentSearchedCity(ctx context.Context, id string, city string) error {
	return nil
}

func testConfig() *config.Config {
	return &config.Config{Log: logger.New(logger.Config{Output: io.Discard})}
}

func validRequest() *RegisterHotelRequest {
	return &RegisterHotelRequest{
		Name:    "  Grand   Plaza ",
		Address: "1 Main Street",
		Contact: "+14155552671",
		City:    "New York",
	}
}

func TestRegisterNormalizesAndPromotesOwner(t *testing.T) {
	var created *model.Hotel
	repo := &mockHotelRepo{createFn: func(ctx context.Context, hotel *model.Hotel) error {
		created = hotel
		return nil
	}}

	var promotedID, promotedRole string
	userRepo := &mockUserRepo{updateRoleFn: func(ctx context.Context, id string, role string) error {
		promotedID = id
		promotedRole = role
		return nil
	}}

	svc := NewHotelService(repo, userRepo, validator.NewHotelValidator(), testConfig())

	hotel, err := svc.Register(context.Background(), testOwnerID, validRequest())
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if hotel.Name != "Grand Plaza" {
		t.Errorf("expected normalized name, got %q", hotel.Name)
	}
	if hotel.City != "new york" {
		t.Errorf("expected lowercased city, got %q", hotel.City)
	}
	if created == nil || created.Owner != testOwnerID {
		t.Error("expected hotel created for the caller")
	}
	if promotedID != testOwnerID || promotedRole != config.RoleOwner {
		t.Errorf("expected caller promoted to %q, got role %q for %q", config.RoleOwner, promotedRole, promotedID)
	}
}

func TestRegisterSecondHotelConflicts(t *testing.T) {
	repo := &mockHotelRepo{createFn: func(ctx context.Context, hotel *model.Hotel) error {
		return hotelserrors.ErrAlreadyRegistered
	}}
	userRepo := &mockUserRepo{updateRoleFn: func(ctx context.Context, id string, role string) error {
		t.Fatal("role must not change when registration fails")
		return nil
	}}

	svc := NewHotelService(repo, userRepo, validator.NewHotelValidator(), testConfig())

	_, err := svc.Register(context.Background(), testOwnerID, validRequest())
	if err == nil {
		t.Fatal("expected conflict error")
	}
	if apperrors.AsAppError(err).Code != apperrors.CodeConflict {
		t.Errorf("expected conflict, got %v", err)
	}
}

func TestRegisterRejectsBadPhone(t *testing.T) {
	repo := &mockHotelRepo{createFn: func(ctx context.Context, hotel *model.Hotel) error {
		t.Fatal("hotel with an invalid contact must not be stored")
		return nil
	}}
	userRepo := &mockUserRepo{updateRoleFn: func(ctx context.Context, id string, role string) error {
		return nil
	}}

	svc := NewHotelService(repo, userRepo, validator.NewHotelValidator(), testConfig())

	req := validRequest()
	req.Contact = "not-a-number"
	_, err := svc.Register(context.Background(), testOwnerID, req)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if apperrors.AsAppError(err).Code != apperrors.CodeValidation {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestRegisterSucceedsWhenPromotionFails(t *testing.T) {
	repo := &mockHotelRepo{createFn: func(ctx context.Context, hotel *model.Hotel) error {
		return nil
	}}
	userRepo := &mockUserRepo{updateRoleFn: func(ctx context.Context, id string, role string) error {
		return context.DeadlineExceeded
	}}

	svc := NewHotelService(repo, userRepo, validator.NewHotelValidator(), testConfig())

	if _, err := svc.Register(context.Background(), testOwnerID, validRequest()); err != nil {
		t.Fatalf("registration should survive a failed role update, got: %v", err)
	}
}
