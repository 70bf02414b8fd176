package models

import "time"

type Property struct {
	ID                     int64          `json:"id"`
	UserID                 int64          `json:"userId"`
	Name                   string         `json:"name"`
	Address                *string        `json:"address"`
	Type                   *string        `json:"type"`
	Floors                 *int64         `json:"floors"`
	Image                  *string        `json:"image"`
	Status                 PropertyStatus `json:"status"`
	Code                   string         `json:"code"`
	Note                   *string        `json:"note"`
	ContactName            *string        `json:"contactName"`
	ContactPhone           *string        `json:"contactPhone"`
	ContactMail            *string        `json:"contactMail"`
	ElectricityPricePerKwh *float64       `json:"electricityPricePerKwh"`
	WaterPricePerM3        *float64       `json:"waterPricePerM3"`
	CreatedAt              time.Time      `json:"createdAt"`
	UpdatedAt              time.Time      `json:"updatedAt"`
}

func (p Property) GetID() int64 { return p.ID }

type CreatePropertyInput struct {
	UserID                 int64           `json:"userId" validate:"gte=0"`
	Name                   string          `json:"name" validate:"required,min=1"`
	Address                *string         `json:"address,omitempty"`
	Type                   *string         `json:"type,omitempty"`
	Floors                 *int64          `json:"floors,omitempty" validate:"omitempty,gte=0"`
	Image                  *string         `json:"image,omitempty"`
	Status                 *PropertyStatus `json:"status,omitempty" validate:"omitempty,oneof=inactive active maintenance"`
	Code                   *string         `json:"code,omitempty"`
	Note                   *string         `json:"note,omitempty"`
	ContactName            *string         `json:"contactName,omitempty"`
	ContactPhone           *string         `json:"contactPhone,omitempty"`
	ContactMail            *string         `json:"contactMail,omitempty" validate:"omitempty,email"`
	ElectricityPricePerKwh *Amount         `json:"electricityPricePerKwh,omitempty" validate:"omitempty,gte=0"`
	WaterPricePerM3        *Amount         `json:"waterPricePerM3,omitempty" validate:"omitempty,gte=0"`
}

type UpdatePropertyInput struct {
	Name                   *string         `json:"name,omitempty" validate:"omitempty,min=1"`
	Address                *string         `json:"address,omitempty"`
	Type                   *string         `json:"type,omitempty"`
	Floors                 *int64          `json:"floors,omitempty" validate:"omitempty,gte=0"`
	Image                  *string         `json:"image,omitempty"`
	Status                 *PropertyStatus `json:"status,omitempty" validate:"omitempty,oneof=inactive active maintenance"`
	Code                   *string         `json:"code,omitempty"`
	Note                   *string         `json:"note,omitempty"`
	ContactName            *string         `json:"contactName,omitempty"`
	ContactPhone           *string         `json:"contactPhone,omitempty"`
	ContactMail            *string         `json:"contactMail,omitempty" validate:"omitempty,email"`
	ElectricityPricePerKwh *Amount         `json:"electricityPricePerKwh,omitempty" validate:"omitempty,gte=0"`
	WaterPricePerM3        *Amount         `json:"waterPricePerM3,omitempty" validate:"omitempty,gte=0"`
}
