package models

import "time"

// DefaultMeterUnit is the unit assumed when a meter is created without one.
const DefaultMeterUnit = "kWh"

type UtilityMeter struct {
	ID         int64     `json:"id"`
	PropertyID int64     `json:"propertyId"`
	MeterType  MeterType `json:"meterType"`
	RoomID     *int64    `json:"roomId"`
	Active     bool      `json:"active"`
	Unit       string    `json:"unit"`
	Notes      *string   `json:"notes"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (m UtilityMeter) GetID() int64 { return m.ID }

type CreateUtilityMeterInput struct {
	PropertyID int64     `json:"propertyId" validate:"gte=0"`
	MeterType  MeterType `json:"meterType" validate:"required,oneof=electricity water"`
	RoomID     *int64    `json:"roomId,omitempty"`
	Active     *bool     `json:"active,omitempty"`
	Unit       *string   `json:"unit,omitempty"`
	Notes      *string   `json:"notes,omitempty"`
}

type UpdateUtilityMeterInput struct {
	MeterType *MeterType       `json:"meterType,omitempty" validate:"omitempty,oneof=electricity water"`
	RoomID    Optional[int64]  `json:"roomId"`
	Active    *bool            `json:"active,omitempty"`
	Unit      *string          `json:"unit,omitempty"`
	Notes     Optional[string] `json:"notes"`
}

type UtilityMeterReading struct {
	ID             int64     `json:"id"`
	UtilityMeterID int64     `json:"utilityMeterId"`
	PropertyID     *int64    `json:"propertyId"`
	RoomID         *int64    `json:"roomId"`
	ReadingDate    time.Time `json:"readingDate"`
	Value          *float64  `json:"value"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func (r UtilityMeterReading) GetID() int64 { return r.ID }

type CreateUtilityMeterReadingInput struct {
	UtilityMeterID int64     `json:"utilityMeterId" validate:"required"`
	PropertyID     *int64    `json:"propertyId,omitempty"`
	RoomID         *int64    `json:"roomId,omitempty"`
	ReadingDate    time.Time `json:"readingDate" validate:"required"`
	Value          *Amount   `json:"value,omitempty" validate:"omitempty,gte=0"`
}

type UpdateUtilityMeterReadingInput struct {
	ReadingDate *time.Time        `json:"readingDate,omitempty"`
	Value       Optional[float64] `json:"value" validate:"omitempty,gte=0"`
}
