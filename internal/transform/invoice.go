package transform

import (
	"time"

	"rentalmanager/internal/models"
	"rentalmanager/internal/schema"
)

var invoiceDecoder = schema.New("invoice",
	schema.Int("id", func(i *models.Invoice, v int64) { i.ID = v }),
	schema.Int("contractId", func(i *models.Invoice, v int64) { i.ContractID = v }),
	schema.Int("month", func(i *models.Invoice, v int64) { i.Month = v }),
	schema.Int("year", func(i *models.Invoice, v int64) { i.Year = v }),
	schema.Float("rentAmount", func(i *models.Invoice, v float64) { i.RentAmount = v }, schema.Default(0.0)),
	schema.Enum("status", models.InvoiceStatuses, func(i *models.Invoice, v models.InvoiceStatus) { i.Status = v }, schema.Default(models.InvoiceUnpaid)),
	schema.Time("invoiceDate", func(i *models.Invoice, v time.Time) { i.InvoiceDate = v }),
	schema.Time("periodStart", func(i *models.Invoice, v time.Time) { i.PeriodStart = v }),
	schema.Time("periodEnd", func(i *models.Invoice, v time.Time) { i.PeriodEnd = v }),
	schema.Float("utilitiesAmount", func(i *models.Invoice, v float64) { i.UtilitiesAmount = v }, schema.Default(0.0)),
	schema.OptString("utilitiesBreakdown", func(i *models.Invoice, v *string) { i.UtilitiesBreakdown = v }),
	schema.Float("extraFeesAmount", func(i *models.Invoice, v float64) { i.ExtraFeesAmount = v }, schema.Default(0.0)),
	schema.OptString("extraFeesBreakdown", func(i *models.Invoice, v *string) { i.ExtraFeesBreakdown = v }),
	schema.OptString("notes", func(i *models.Invoice, v *string) { i.Notes = v }),
	schema.Float("totalAmount", func(i *models.Invoice, v float64) { i.TotalAmount = v }, schema.Default(0.0)),
	createdAt(func(i *models.Invoice, v time.Time) { i.CreatedAt = v }),
	updatedAt(func(i *models.Invoice, v time.Time) { i.UpdatedAt = v }),
)

var Invoices = newEntity("invoice", "invoices", invoiceDecoder,
	func(in models.CreateInvoiceInput) schema.Body {
		b := schema.Body{}
		b.Set("contractId", in.ContractID)
		b.Set("month", in.Month)
		b.Set("year", in.Year)
		schema.SetOr(b, "rentAmount", in.RentAmount, 0)
		schema.SetOr(b, "status", in.Status, models.InvoiceUnpaid)
		schema.SetPtr(b, "invoiceDate", in.InvoiceDate)
		b.Set("periodStart", in.PeriodStart)
		b.Set("periodEnd", in.PeriodEnd)
		schema.SetOr(b, "utilitiesAmount", in.UtilitiesAmount, 0)
		schema.SetOr(b, "extraFeesAmount", in.ExtraFeesAmount, 0)
		schema.SetPtr(b, "totalAmount", in.TotalAmount)
		schema.SetNullable(b, "notes", in.Notes)
		return b
	},
	func(in models.UpdateInvoiceInput) schema.Body {
		b := schema.Body{}
		schema.SetPtr(b, "month", in.Month)
		schema.SetPtr(b, "year", in.Year)
		schema.SetPtr(b, "rentAmount", in.RentAmount)
		schema.SetPtr(b, "status", in.Status)
		schema.SetPtr(b, "invoiceDate", in.InvoiceDate)
		schema.SetPtr(b, "periodStart", in.PeriodStart)
		schema.SetPtr(b, "periodEnd", in.PeriodEnd)
		schema.SetPtr(b, "utilitiesAmount", in.UtilitiesAmount)
		schema.SetPtr(b, "extraFeesAmount", in.ExtraFeesAmount)
		schema.SetPtr(b, "totalAmount", in.TotalAmount)
		schema.SetOptional(b, "notes", in.Notes)
		return b
	},
)
