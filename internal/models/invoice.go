package models

import "time"

type Invoice struct {
	ID                 int64         `json:"id"`
	ContractID         int64         `json:"contractId"`
	Month              int64         `json:"month"`
	Year               int64         `json:"year"`
	RentAmount         float64       `json:"rentAmount"`
	Status             InvoiceStatus `json:"status"`
	InvoiceDate        time.Time     `json:"invoiceDate"`
	PeriodStart        time.Time     `json:"periodStart"`
	PeriodEnd          time.Time     `json:"periodEnd"`
	UtilitiesAmount    float64       `json:"utilitiesAmount"`
	UtilitiesBreakdown *string       `json:"utilitiesBreakdown"`
	ExtraFeesAmount    float64       `json:"extraFeesAmount"`
	ExtraFeesBreakdown *string       `json:"extraFeesBreakdown"`
	Notes              *string       `json:"notes"`
	TotalAmount        float64       `json:"totalAmount"`
	CreatedAt          time.Time     `json:"createdAt"`
	UpdatedAt          time.Time     `json:"updatedAt"`
}

func (i Invoice) GetID() int64 { return i.ID }

// Overdue reports whether an open invoice has passed the end of its period.
func (i Invoice) Overdue(now time.Time) bool {
	if i.Status != InvoiceUnpaid && i.Status != InvoicePartiallyPaid {
		return false
	}
	return now.After(i.PeriodEnd)
}

type CreateInvoiceInput struct {
	ContractID      int64          `json:"contractId" validate:"required"`
	Month           int64          `json:"month" validate:"min=1,max=12"`
	Year            int64          `json:"year" validate:"min=1900"`
	RentAmount      *Amount        `json:"rentAmount,omitempty" validate:"omitempty,gte=0"`
	Status          *InvoiceStatus `json:"status,omitempty" validate:"omitempty,oneof=unpaid partially_paid paid overdue"`
	InvoiceDate     *time.Time     `json:"invoiceDate,omitempty"`
	PeriodStart     time.Time      `json:"periodStart" validate:"required"`
	PeriodEnd       time.Time      `json:"periodEnd" validate:"required"`
	UtilitiesAmount *Amount        `json:"utilitiesAmount,omitempty" validate:"omitempty,gte=0"`
	ExtraFeesAmount *Amount        `json:"extraFeesAmount,omitempty" validate:"omitempty,gte=0"`
	TotalAmount     *Amount        `json:"totalAmount,omitempty" validate:"omitempty,gte=0"`
	Notes           *string        `json:"notes,omitempty"`
}

type UpdateInvoiceInput struct {
	Month           *int64           `json:"month,omitempty" validate:"omitempty,min=1,max=12"`
	Year            *int64           `json:"year,omitempty" validate:"omitempty,min=1900"`
	RentAmount      *Amount          `json:"rentAmount,omitempty" validate:"omitempty,gte=0"`
	Status          *InvoiceStatus   `json:"status,omitempty" validate:"omitempty,oneof=unpaid partially_paid paid overdue"`
	InvoiceDate     *time.Time       `json:"invoiceDate,omitempty"`
	PeriodStart     *time.Time       `json:"periodStart,omitempty"`
	PeriodEnd       *time.Time       `json:"periodEnd,omitempty"`
	UtilitiesAmount *Amount          `json:"utilitiesAmount,omitempty" validate:"omitempty,gte=0"`
	ExtraFeesAmount *Amount          `json:"extraFeesAmount,omitempty" validate:"omitempty,gte=0"`
	TotalAmount     *Amount          `json:"totalAmount,omitempty" validate:"omitempty,gte=0"`
	Notes           Optional[string] `json:"notes"`
}
