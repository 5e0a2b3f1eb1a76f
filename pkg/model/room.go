package model

import "time"

type Room struct {
	ID            string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Hotel         string    `json:"hotel" bson:"hotel" validate:"required,mongodb"`
	RoomType      string    `json:"roomType" bson:"room_type" validate:"required,min=2,max=100"`
	PricePerNight int64     `json:"pricePerNight" bson:"price_per_night" validate:"required,min=1"`
	Amenities     []string  `json:"amenities" bson:"amenities" validate:"omitempty,dive,min=1,max=100"`
	IsAvailable   bool      `json:"isAvailable" bson:"is_available"`
	CreatedAt     time.Time `json:"createdAt" bson:"created_at" validate:"omitempty"`
}
