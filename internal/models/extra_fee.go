package models

import "time"

type ExtraFee struct {
	ID          int64      `json:"id"`
	PropertyID  int64      `json:"propertyId"`
	Name        string     `json:"name"`
	Description *string    `json:"description"`
	Amount      float64    `json:"amount"`
	ChargeType  ChargeType `json:"chargeType"`
	IsActive    bool       `json:"isActive"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func (f ExtraFee) GetID() int64 { return f.ID }

type CreateExtraFeeInput struct {
	PropertyID  int64       `json:"propertyId" validate:"gte=0"`
	Name        string      `json:"name" validate:"required,min=1"`
	Description *string     `json:"description,omitempty"`
	Amount      Amount      `json:"amount" validate:"gte=0"`
	ChargeType  *ChargeType `json:"chargeType,omitempty" validate:"omitempty,oneof=monthly one_time"`
	IsActive    *bool       `json:"isActive,omitempty"`
}

type UpdateExtraFeeInput struct {
	Name        *string          `json:"name,omitempty" validate:"omitempty,min=1"`
	Description Optional[string] `json:"description"`
	Amount      *Amount          `json:"amount,omitempty" validate:"omitempty,gte=0"`
	ChargeType  *ChargeType      `json:"chargeType,omitempty" validate:"omitempty,oneof=monthly one_time"`
	IsActive    *bool            `json:"isActive,omitempty"`
}
