package models

import (
	"encoding/json"
	"time"
)

type Room struct {
	ID               int64           `json:"id"`
	PropertyID       int64           `json:"propertyId"`
	Name             string          `json:"name"`
	Floor            *int64          `json:"floor"`
	Area             *float64        `json:"area"`
	Price            float64         `json:"price"`
	Status           RoomStatus      `json:"status"`
	Amenities        *string         `json:"amenities"`
	MaxOccupants     int64           `json:"maxOccupants"`
	CurrentOccupants int64           `json:"currentOccupants"`
	Note             *string         `json:"note"`
	Tenants          json.RawMessage `json:"tenants,omitempty" gorm:"-"`
	CreatedAt        time.Time       `json:"createdAt"`
	UpdatedAt        time.Time       `json:"updatedAt"`
}

func (r Room) GetID() int64 { return r.ID }

type CreateRoomInput struct {
	PropertyID   int64       `json:"propertyId" validate:"gte=0"`
	Name         string      `json:"name" validate:"required,min=1"`
	Floor        *int64      `json:"floor,omitempty"`
	Area         *Amount     `json:"area,omitempty" validate:"omitempty,gte=0"`
	Price        Amount      `json:"price" validate:"gte=0"`
	Status       *RoomStatus `json:"status,omitempty" validate:"omitempty,oneof=available occupied maintenance"`
	Amenities    *string     `json:"amenities,omitempty"`
	MaxOccupants *int64      `json:"maxOccupants,omitempty" validate:"omitempty,min=1"`
	Note         *string     `json:"note,omitempty"`
}

type UpdateRoomInput struct {
	Name             *string           `json:"name,omitempty" validate:"omitempty,min=1"`
	Floor            Optional[int64]   `json:"floor"`
	Area             Optional[float64] `json:"area" validate:"omitempty,gte=0"`
	Price            Optional[float64] `json:"price" validate:"omitempty,gte=0"`
	Status           *RoomStatus       `json:"status,omitempty" validate:"omitempty,oneof=available occupied maintenance"`
	Amenities        Optional[string]  `json:"amenities"`
	MaxOccupants     Optional[int64]   `json:"maxOccupants" validate:"omitempty,min=1"`
	CurrentOccupants Optional[int64]   `json:"currentOccupants" validate:"omitempty,gte=0"`
	Note             Optional[string]  `json:"note"`
}
