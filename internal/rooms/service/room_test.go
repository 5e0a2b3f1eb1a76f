package service

import (
	"context"
	"io"
	"testing"

	hotelserrors "staybook/internal/hotels/errors"
	roomserrors "staybook/internal/rooms/errors"
	"staybook/internal/rooms/validator"
	"staybook/pkg/config"
	apperrors "staybook/pkg/errors"
	"staybook/pkg/logger"
	"staybook/pkg/model"
)

const (
	testOwnerID = "user_2x7f9"
	testHotelID = "aabbccddeeff001122334455"
	testRoomID  = "6543210987abcdef01234567"
)

type mockRoomRepo struct {
	createFn   func(ctx context.Context, room *model.Room) error
	findByIDFn func(ctx context.Context, id string) (*model.Room, error)
	toggleFn   func(ctx context.Context, id string) (bool, error)
}

func (m *mockRoomRepo) Create(ctx context.Context, room *model.Room) error {
	return m.createFn(ctx, room)
}

func (m *mockRoomRepo) FindByID(ctx context.Context, id string) (*model.Room, error) {
	return m.findByIDFn(ctx, id)
}

func (m *mockRoomRepo) FindAvailable(ctx context.Context) ([]*model.Room, error) {
	return nil, nil
}

func (m *mockRoomRepo) FindByHotel(ctx context.Context, hotelID string) ([]*model.Room, error) {
	return nil, nil
}

func (m *mockRoomRepo) ToggleAvailability(ctx context.Context, id string) (bool, error) {
	return m.toggleFn(ctx, id)
}

type mockHotelRepo struct {
	findByOwnerFn func(ctx context.Context, ownerID string) (*model.Hotel, error)
}

func (m *mockHotelRepo) Create(ctx context.Context, hotel *model.Hotel) error { return nil }

func (m *mockHotelRepo) FindByID(ctx context.Context, id string) (*model.Hotel, error) {
	return nil, hotelserrors.ErrNotFound
}

func (m *mockHotelRepo) FindByOwner(ctx context.Context, ownerID string) (*model.Hotel, error) {
	return m.findByOwnerFn(ctx, ownerID)
}

func ownedHotel() *model.Hotel {
	return &model.Hotel{ID: testHotelID, Owner: testOwnerID, Name: "Grand Plaza"}
}

func testConfig() *config.Config {
	return &config.Config{Log: logger.New(logger.Config{Output: io.Discard})}
}

func TestCreateAttachesRoomToOwnersHotel(t *testing.T) {
	var created *model.Room
	repo := &mockRoomRepo{createFn: func(ctx context.Context, room *model.Room) error {
		created = room
		return nil
	}}
	hotelRepo := &mockHotelRepo{findByOwnerFn: func(ctx context.Context, ownerID string) (*model.Hotel, error) {
		return ownedHotel(), nil
	}}

	svc := NewRoomService(repo, hotelRepo, validator.NewRoomValidator(), testConfig())

	room, err := svc.Create(context.Background(), testOwnerID, &CreateRoomRequest{
		RoomType:      "  Deluxe   Suite ",
		PricePerNight: 150,
		Amenities:     []string{" WiFi ", "wifi", "Pool", ""},
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created == nil {
		t.Fatal("expected room persisted")
	}
	if room.Hotel != testHotelID {
		t.Errorf("expected room attached to hotel %q, got %q", testHotelID, room.Hotel)
	}
	if room.RoomType != "Deluxe Suite" {
		t.Errorf("expected normalized room type, got %q", room.RoomType)
	}
	if len(room.Amenities) != 2 || room.Amenities[0] != "wifi" || room.Amenities[1] != "pool" {
		t.Errorf("expected deduped lowercase amenities, got %v", room.Amenities)
	}
	if !room.IsAvailable {
		t.Error("new rooms should start available")
	}
}

func TestCreateRequiresHotel(t *testing.T) {
	repo := &mockRoomRepo{createFn: func(ctx context.Context, room *model.Room) error {
		t.Fatal("room must not be created without a hotel")
		return nil
	}}
	hotelRepo := &mockHotelRepo{findByOwnerFn: func(ctx context.Context, ownerID string) (*model.Hotel, error) {
		return nil, hotelserrors.ErrNotFound
	}}

	svc := NewRoomService(repo, hotelRepo, validator.NewRoomValidator(), testConfig())

	_, err := svc.Create(context.Background(), testOwnerID, &CreateRoomRequest{RoomType: "Standard", PricePerNight: 80})
	if err == nil {
		t.Fatal("expected not-found error")
	}
	if apperrors.AsAppError(err).Code != apperrors.CodeNotFound {
		t.Errorf("expected not-found, got %v", err)
	}
}

func TestToggleAvailabilityChecksOwnership(t *testing.T) {
	repo := &mockRoomRepo{
		findByIDFn: func(ctx context.Context, id string) (*model.Room, error) {
			return &model.Room{ID: testRoomID, Hotel: "000000000000000000000001"}, nil
		},
		toggleFn: func(ctx context.Context, id string) (bool, error) {
			t.Fatal("toggle must not run for a foreign room")
			return false, nil
		},
	}
	hotelRepo := &mockHotelRepo{findByOwnerFn: func(ctx context.Context, ownerID string) (*model.Hotel, error) {
		return ownedHotel(), nil
	}}

	svc := NewRoomService(repo, hotelRepo, validator.NewRoomValidator(), testConfig())

	_, err := svc.ToggleAvailability(context.Background(), testOwnerID, testRoomID)
	if err == nil {
		t.Fatal("expected forbidden error")
	}
	if apperrors.AsAppError(err).Code != apperrors.CodeForbidden {
		t.Errorf("expected forbidden, got %v", err)
	}
}

func TestToggleAvailabilityFlipsOwnRoom(t *testing.T) {
	repo := &mockRoomRepo{
		findByIDFn: func(ctx context.Context, id string) (*model.Room, error) {
			return &model.Room{ID: testRoomID, Hotel: testHotelID, IsAvailable: true}, nil
		},
		toggleFn: func(ctx context.Context, id string) (bool, error) {
			return false, nil
		},
	}
	hotelRepo := &mockHotelRepo{findByOwnerFn: func(ctx context.Context, ownerID string) (*model.Hotel, error) {
		return ownedHotel(), nil
	}}

	svc := NewRoomService(repo, hotelRepo, validator.NewRoomValidator(), testConfig())

	isAvailable, err := svc.ToggleAvailability(context.Background(), testOwnerID, testRoomID)
	if err != nil {
		t.Fatalf("ToggleAvailability returned error: %v", err)
	}
	if isAvailable {
		t.Error("expected the toggled state from the repository")
	}
}

func TestToggleAvailabilityUnknownRoom(t *testing.T) {
	repo := &mockRoomRepo{
		findByIDFn: func(ctx context.Context, id string) (*model.Room, error) {
			return nil, roomserrors.ErrNotFound
		},
	}
	hotelRepo := &mockHotelRepo{findByOwnerFn: func(ctx context.Context, ownerID string) (*model.Hotel, error) {
		return ownedHotel(), nil
	}}

	svc := NewRoomService(repo, hotelRepo, validator.NewRoomValidator(), testConfig())

	_, err := svc.ToggleAvailability(context.Background(), testOwnerID, testRoomID)
	if err == nil {
		t.Fatal("expected not-found error")
	}
	if apperrors.AsAppError(err).Code != apperrors.CodeNotFound {
		t.Errorf("expected not-found, got %v", err)
	}
}
