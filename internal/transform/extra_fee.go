package transform

import (
	"time"

	"rentalmanager/internal/models"
	"rentalmanager/internal/schema"
)

var extraFeeDecoder = schema.New("extra fee",
	schema.Int("id", func(f *models.ExtraFee, v int64) { f.ID = v }),
	schema.Int("propertyId", func(f *models.ExtraFee, v int64) { f.PropertyID = v }),
	schema.String("name", func(f *models.ExtraFee, v string) { f.Name = v }),
	schema.OptString("description", func(f *models.ExtraFee, v *string) { f.Description = v }),
	schema.Float("amount", func(f *models.ExtraFee, v float64) { f.Amount = v }),
	schema.Enum("chargeType", models.ChargeTypes, func(f *models.ExtraFee, v models.ChargeType) { f.ChargeType = v }, schema.Default(models.ChargeMonthly)),
	schema.Bool("isActive", func(f *models.ExtraFee, v bool) { f.IsActive = v }, schema.Default(true)),
	createdAt(func(f *models.ExtraFee, v time.Time) { f.CreatedAt = v }),
	updatedAt(func(f *models.ExtraFee, v time.Time) { f.UpdatedAt = v }),
)

var ExtraFees = newEntity("extra fee", "extra fees", extraFeeDecoder,
	func(in models.CreateExtraFeeInput) schema.Body {
		b := schema.Body{}
		b.Set("propertyId", in.PropertyID)
		b.Set("name", in.Name)
		schema.SetNullable(b, "description", in.Description)
		b.Set("amount", in.Amount)
		schema.SetOr(b, "chargeType", in.ChargeType, models.ChargeMonthly)
		schema.SetOr(b, "isActive", in.IsActive, true)
		return b
	},
	func(in models.UpdateExtraFeeInput) schema.Body {
		b := schema.Body{}
		schema.SetPtr(b, "name", in.Name)
		schema.SetOptional(b, "description", in.Description)
		schema.SetPtr(b, "amount", in.Amount)
		schema.SetPtr(b, "chargeType", in.ChargeType)
		schema.SetPtr(b, "isActive", in.IsActive)
		return b
	},
)
