package model

import "time"

type Hotel struct {
	ID        string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Owner     string    `json:"owner" bson:"owner" validate:"required"`
	Name      string    `json:"name" bson:"name" validate:"required,min=2,max=200"`
	Address   string    `json:"address" bson:"address" validate:"required,min=2,max=500"`
	Contact   string    `json:"contact" bson:"contact" validate:"required,e164"`
	City      string    `json:"city" bson:"city" validate:"required,min=2,max=100"`
	CreatedAt time.Time `json:"createdAt" bson:"created_at" validate:"omitempty"`
}
