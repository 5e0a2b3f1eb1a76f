package model

import "time"

// User mirrors the identity provider's record plus booking-side state.
// The _id is the provider's subject string, not an ObjectID.
type User struct {
	ID                   string    `json:"id" bson:"_id" validate:"required"`
	Username             string    `json:"username" bson:"username" validate:"required,min=1,max=100"`
	Email                string    `json:"email" bson:"email" validate:"required,email"`
	Role                 string    `json:"role" bson:"role" validate:"required,oneof=guest owner"`
	RecentSearchedCities []string  `json:"recentSearchedCities" bson:"recent_searched_cities" validate:"omitempty,max=3"`
	CreatedAt            time.Time `json:"createdAt" bson:"created_at" validate:"omitempty"`
}
