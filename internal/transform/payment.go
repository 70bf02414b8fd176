package transform

import (
	"time"

	"rentalmanager/internal/models"
	"rentalmanager/internal/schema"
)

var paymentDecoder = schema.New("payment",
	schema.Int("id", func(p *models.Payment, v int64) { p.ID = v }),
	schema.Int("invoiceId", func(p *models.Payment, v int64) { p.InvoiceID = v }),
	schema.Float("amount", func(p *models.Payment, v float64) { p.Amount = v }),
	schema.Enum("method", models.PaymentMethods, func(p *models.Payment, v models.PaymentMethod) { p.Method = v }, schema.Default(models.MethodCash)),
	schema.OptString("transactionCode", func(p *models.Payment, v *string) { p.TransactionCode = v }),
	schema.Time("paidAt", func(p *models.Payment, v time.Time) { p.PaidAt = v }),
	createdAt(func(p *models.Payment, v time.Time) { p.CreatedAt = v }),
	updatedAt(func(p *models.Payment, v time.Time) { p.UpdatedAt = v }),
)

var Payments = newEntity("payment", "payments", paymentDecoder,
	func(in models.CreatePaymentInput) schema.Body {
		b := schema.Body{}
		b.Set("invoiceId", in.InvoiceID)
		b.Set("amount", in.Amount)
		schema.SetOr(b, "method", in.Method, models.MethodCash)
		schema.SetNullable(b, "transactionCode", in.TransactionCode)
		b.Set("paidAt", in.PaidAt)
		return b
	},
	func(in models.UpdatePaymentInput) schema.Body {
		b := schema.Body{}
		schema.SetPtr(b, "amount", in.Amount)
		schema.SetPtr(b, "method", in.Method)
		schema.SetOptional(b, "transactionCode", in.TransactionCode)
		schema.SetPtr(b, "paidAt", in.PaidAt)
		return b
	},
)
