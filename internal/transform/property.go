package transform

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"rentalmanager/internal/models"
	"rentalmanager/internal/schema"
)

// propertyStatus accepts the numeric status the API stores as well as the
// enumeration names. Absent or unknown numeric values read as inactive.
func propertyStatus(value gjson.Result, p *models.Property) error {
	switch value.Type {
	case gjson.Null:
		p.Status = models.PropertyInactive
	case gjson.Number:
		p.Status = models.PropertyStatusFromCode(int(value.Int()))
	case gjson.String:
		s := strings.TrimSpace(value.Str)
		if status := models.PropertyStatus(s); status.Valid() {
			p.Status = status
			return nil
		}
		n, err := strconv.Atoi(s)
		if err != nil && s != "" {
			return fmt.Errorf("expected status code or one of %s, got %q", strings.Join(models.PropertyStatuses, "|"), s)
		}
		p.Status = models.PropertyStatusFromCode(n)
	default:
		if value.Exists() {
			return fmt.Errorf("expected status code, got %s", value.Raw)
		}
		p.Status = models.PropertyInactive
	}
	return nil
}

var propertyDecoder = schema.New("property",
	schema.Int("id", func(p *models.Property, v int64) { p.ID = v }),
	schema.Int("userId", func(p *models.Property, v int64) { p.UserID = v }),
	schema.String("name", func(p *models.Property, v string) { p.Name = v }),
	schema.OptString("address", func(p *models.Property, v *string) { p.Address = v }),
	schema.OptString("type", func(p *models.Property, v *string) { p.Type = v }),
	schema.OptInt("floors", func(p *models.Property, v *int64) { p.Floors = v }),
	schema.OptString("image", func(p *models.Property, v *string) { p.Image = v }),
	schema.Custom("status", propertyStatus),
	schema.String("code", func(p *models.Property, v string) { p.Code = v }, schema.Default("")),
	schema.OptString("note", func(p *models.Property, v *string) { p.Note = v }),
	schema.OptString("contactName", func(p *models.Property, v *string) { p.ContactName = v }),
	schema.OptString("contactPhone", func(p *models.Property, v *string) { p.ContactPhone = v }),
	schema.OptString("contactMail", func(p *models.Property, v *string) { p.ContactMail = v }),
	schema.OptFloat("electricityPricePerKwh", func(p *models.Property, v *float64) { p.ElectricityPricePerKwh = v }),
	schema.OptFloat("waterPricePerM3", func(p *models.Property, v *float64) { p.WaterPricePerM3 = v }),
	createdAt(func(p *models.Property, v time.Time) { p.CreatedAt = v }),
	updatedAt(func(p *models.Property, v time.Time) { p.UpdatedAt = v }),
)

func statusCode(status *models.PropertyStatus) *int {
	if status == nil {
		return nil
	}
	code := status.Code()
	return &code
}

var Properties = newEntity("property", "properties", propertyDecoder,
	func(in models.CreatePropertyInput) schema.Body {
		b := schema.Body{}
		b.Set("userId", in.UserID)
		b.Set("name", in.Name)
		schema.SetNullable(b, "address", in.Address)
		schema.SetNullable(b, "type", in.Type)
		schema.SetNullable(b, "floors", in.Floors)
		schema.SetNullable(b, "image", in.Image)
		schema.SetOr(b, "status", statusCode(in.Status), models.PropertyActive.Code())
		schema.SetOr(b, "code", in.Code, "")
		schema.SetNullable(b, "note", in.Note)
		schema.SetNullable(b, "contactName", in.ContactName)
		schema.SetNullable(b, "contactPhone", in.ContactPhone)
		schema.SetNullable(b, "contactMail", in.ContactMail)
		schema.SetNullable(b, "electricityPricePerKwh", in.ElectricityPricePerKwh)
		schema.SetNullable(b, "waterPricePerM3", in.WaterPricePerM3)
		return b
	},
	func(in models.UpdatePropertyInput) schema.Body {
		b := schema.Body{}
		schema.SetPtr(b, "name", in.Name)
		schema.SetPtr(b, "address", in.Address)
		schema.SetPtr(b, "type", in.Type)
		schema.SetPtr(b, "floors", in.Floors)
		schema.SetPtr(b, "image", in.Image)
		schema.SetPtr(b, "status", statusCode(in.Status))
		schema.SetPtr(b, "code", in.Code)
		schema.SetPtr(b, "note", in.Note)
		schema.SetPtr(b, "contactName", in.ContactName)
		schema.SetPtr(b, "contactPhone", in.ContactPhone)
		schema.SetPtr(b, "contactMail", in.ContactMail)
		schema.SetPtr(b, "electricityPricePerKwh", in.ElectricityPricePerKwh)
		schema.SetPtr(b, "waterPricePerM3", in.WaterPricePerM3)
		return b
	},
)
