package models

import (
	"encoding/json"
	"time"
)

type Contract struct {
	ID            int64           `json:"id"`
	RoomID        int64           `json:"roomId"`
	TenantID      int64           `json:"tenantId"`
	Room          json.RawMessage `json:"room,omitempty" gorm:"-"`
	Tenant        json.RawMessage `json:"tenant,omitempty" gorm:"-"`
	StartDate     time.Time       `json:"startDate"`
	EndDate       *time.Time      `json:"endDate"`
	DepositAmount float64         `json:"depositAmount"`
	Status        ContractStatus  `json:"status"`
	PaymentCycle  PaymentCycle    `json:"paymentCycle"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

func (c Contract) GetID() int64 { return c.ID }

type CreateContractInput struct {
	RoomID        int64           `json:"roomId" validate:"required"`
	TenantID      int64           `json:"tenantId" validate:"required"`
	StartDate     time.Time       `json:"startDate" validate:"required"`
	EndDate       *time.Time      `json:"endDate,omitempty"`
	DepositAmount *Amount         `json:"depositAmount,omitempty" validate:"omitempty,gte=0"`
	Status        *ContractStatus `json:"status,omitempty" validate:"omitempty,oneof=active ended cancelled"`
	PaymentCycle  *PaymentCycle   `json:"paymentCycle,omitempty" validate:"omitempty,oneof=monthly quarterly yearly"`
}

type UpdateContractInput struct {
	RoomID        *int64              `json:"roomId,omitempty"`
	TenantID      *int64              `json:"tenantId,omitempty"`
	StartDate     *time.Time          `json:"startDate,omitempty"`
	EndDate       Optional[time.Time] `json:"endDate"`
	DepositAmount *Amount             `json:"depositAmount,omitempty" validate:"omitempty,gte=0"`
	Status        *ContractStatus     `json:"status,omitempty" validate:"omitempty,oneof=active ended cancelled"`
	PaymentCycle  *PaymentCycle       `json:"paymentCycle,omitempty" validate:"omitempty,oneof=monthly quarterly yearly"`
}
