package transform

import (
	"time"

	"rentalmanager/internal/models"
	"rentalmanager/internal/schema"
)

var utilityMeterDecoder = schema.New("utility meter",
	schema.Int("id", func(m *models.UtilityMeter, v int64) { m.ID = v }),
	schema.Int("propertyId", func(m *models.UtilityMeter, v int64) { m.PropertyID = v }),
	schema.Enum("meterType", models.MeterTypes, func(m *models.UtilityMeter, v models.MeterType) { m.MeterType = v }),
	schema.OptInt("roomId", func(m *models.UtilityMeter, v *int64) { m.RoomID = v }),
	schema.Bool("active", func(m *models.UtilityMeter, v bool) { m.Active = v }, schema.Default(true)),
	schema.String("unit", func(m *models.UtilityMeter, v string) { m.Unit = v }, schema.Default(models.DefaultMeterUnit)),
	schema.OptString("notes", func(m *models.UtilityMeter, v *string) { m.Notes = v }),
	createdAt(func(m *models.UtilityMeter, v time.Time) { m.CreatedAt = v }),
	updatedAt(func(m *models.UtilityMeter, v time.Time) { m.UpdatedAt = v }),
)

var UtilityMeters = newEntity("utility meter", "utility meters", utilityMeterDecoder,
	func(in models.CreateUtilityMeterInput) schema.Body {
		b := schema.Body{}
		b.Set("propertyId", in.PropertyID)
		b.Set("meterType", in.MeterType)
		schema.SetNullable(b, "roomId", in.RoomID)
		schema.SetOr(b, "active", in.Active, true)
		schema.SetOr(b, "unit", in.Unit, models.DefaultMeterUnit)
		schema.SetNullable(b, "notes", in.Notes)
		return b
	},
	func(in models.UpdateUtilityMeterInput) schema.Body {
		b := schema.Body{}
		schema.SetPtr(b, "meterType", in.MeterType)
		schema.SetOptional(b, "roomId", in.RoomID)
		schema.SetPtr(b, "active", in.Active)
		schema.SetPtr(b, "unit", in.Unit)
		schema.SetOptional(b, "notes", in.Notes)
		return b
	},
)

var utilityMeterReadingDecoder = schema.New("utility meter reading",
	schema.Int("id", func(r *models.UtilityMeterReading, v int64) { r.ID = v }),
	schema.Int("utilityMeterId", func(r *models.UtilityMeterReading, v int64) { r.UtilityMeterID = v }),
	schema.OptInt("propertyId", func(r *models.UtilityMeterReading, v *int64) { r.PropertyID = v }),
	schema.OptInt("roomId", func(r *models.UtilityMeterReading, v *int64) { r.RoomID = v }),
	schema.Time("readingDate", func(r *models.UtilityMeterReading, v time.Time) { r.ReadingDate = v }),
	schema.OptFloat("value", func(r *models.UtilityMeterReading, v *float64) { r.Value = v }),
	createdAt(func(r *models.UtilityMeterReading, v time.Time) { r.CreatedAt = v }),
	updatedAt(func(r *models.UtilityMeterReading, v time.Time) { r.UpdatedAt = v }),
)

var UtilityMeterReadings = newEntity("utility meter reading", "utility meter readings", utilityMeterReadingDecoder,
	func(in models.CreateUtilityMeterReadingInput) schema.Body {
		b := schema.Body{}
		b.Set("utilityMeterId", in.UtilityMeterID)
		b.Set("readingDate", in.ReadingDate)
		schema.SetNullable(b, "value", in.Value)
		schema.SetPtr(b, "propertyId", in.PropertyID)
		schema.SetPtr(b, "roomId", in.RoomID)
		return b
	},
	func(in models.UpdateUtilityMeterReadingInput) schema.Body {
		b := schema.Body{}
		schema.SetPtr(b, "readingDate", in.ReadingDate)
		schema.SetOptional(b, "value", in.Value)
		return b
	},
)
