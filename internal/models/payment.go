package models

import "time"

type Payment struct {
	ID              int64         `json:"id"`
	InvoiceID       int64         `json:"invoiceId"`
	Amount          float64       `json:"amount"`
	Method          PaymentMethod `json:"method"`
	TransactionCode *string       `json:"transactionCode"`
	PaidAt          time.Time     `json:"paidAt"`
	CreatedAt       time.Time     `json:"createdAt"`
	UpdatedAt       time.Time     `json:"updatedAt"`
}

func (p Payment) GetID() int64 { return p.ID }

type CreatePaymentInput struct {
	InvoiceID       int64          `json:"invoiceId" validate:"required"`
	Amount          Amount         `json:"amount" validate:"gt=0"`
	Method          *PaymentMethod `json:"method,omitempty" validate:"omitempty,oneof=cash bank_transfer online"`
	TransactionCode *string        `json:"transactionCode,omitempty"`
	PaidAt          time.Time      `json:"paidAt" validate:"required"`
}

type UpdatePaymentInput struct {
	Amount          *Amount          `json:"amount,omitempty" validate:"omitempty,gt=0"`
	Method          *PaymentMethod   `json:"method,omitempty" validate:"omitempty,oneof=cash bank_transfer online"`
	TransactionCode Optional[string] `json:"transactionCode"`
	PaidAt          *time.Time       `json:"paidAt,omitempty"`
}
