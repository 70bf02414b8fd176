package transform

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"rentalmanager/internal/models"
	"rentalmanager/internal/schema"
)

// amenities accepts a list of strings, a JSON encoded list of strings or a
// plain string. Lists are joined with ", ".
func amenities(value gjson.Result, r *models.Room) error {
	join := func(items []gjson.Result) (string, error) {
		parts := make([]string, 0, len(items))
		for _, item := range items {
			if item.Type != gjson.String {
				return "", fmt.Errorf("expected list of strings, got %s", item.Raw)
			}
			parts = append(parts, item.Str)
		}
		return strings.Join(parts, ", "), nil
	}

	switch {
	case !value.Exists() || value.Type == gjson.Null:
		r.Amenities = nil
	case value.IsArray():
		s, err := join(value.Array())
		if err != nil {
			return err
		}
		r.Amenities = &s
	case value.Type == gjson.String:
		s := value.Str
		if s == "" {
			r.Amenities = nil
			return nil
		}
		if nested := gjson.Parse(s); gjson.Valid(s) && nested.IsArray() {
			if joined, err := join(nested.Array()); err == nil {
				s = joined
			}
		}
		r.Amenities = &s
	default:
		return fmt.Errorf("expected string or list of strings, got %s", value.Raw)
	}
	return nil
}

var roomDecoder = schema.New("room",
	schema.Int("id", func(r *models.Room, v int64) { r.ID = v }),
	schema.Int("propertyId", func(r *models.Room, v int64) { r.PropertyID = v }),
	schema.String("name", func(r *models.Room, v string) { r.Name = v }),
	schema.OptInt("floor", func(r *models.Room, v *int64) { r.Floor = v }),
	schema.OptFloat("area", func(r *models.Room, v *float64) { r.Area = v }),
	schema.Float("price", func(r *models.Room, v float64) { r.Price = v }),
	schema.Enum("status", models.RoomStatuses, func(r *models.Room, v models.RoomStatus) { r.Status = v }, schema.Default(models.RoomAvailable)),
	schema.Custom("amenities", amenities),
	schema.Int("maxOccupants", func(r *models.Room, v int64) { r.MaxOccupants = v }, schema.Default[int64](1)),
	schema.Int("currentOccupants", func(r *models.Room, v int64) { r.CurrentOccupants = v }, schema.Default[int64](0)),
	schema.OptString("note", func(r *models.Room, v *string) { r.Note = v }),
	schema.Raw("tenants", func(r *models.Room, v json.RawMessage) { r.Tenants = v }),
	createdAt(func(r *models.Room, v time.Time) { r.CreatedAt = v }),
	updatedAt(func(r *models.Room, v time.Time) { r.UpdatedAt = v }),
)

var Rooms = newEntity("room", "rooms", roomDecoder,
	func(in models.CreateRoomInput) schema.Body {
		b := schema.Body{}
		b.Set("propertyId", in.PropertyID)
		b.Set("name", in.Name)
		schema.SetNullable(b, "floor", in.Floor)
		schema.SetNullable(b, "area", in.Area)
		b.Set("price", in.Price)
		schema.SetOr(b, "status", in.Status, models.RoomAvailable)
		schema.SetNullable(b, "amenities", in.Amenities)
		schema.SetOr(b, "maxOccupants", in.MaxOccupants, 1)
		schema.SetNullable(b, "note", in.Note)
		return b
	},
	func(in models.UpdateRoomInput) schema.Body {
		b := schema.Body{}
		schema.SetPtr(b, "name", in.Name)
		schema.SetOptional(b, "floor", in.Floor)
		schema.SetOptional(b, "area", in.Area)
		schema.SetOptional(b, "price", in.Price)
		schema.SetPtr(b, "status", in.Status)
		schema.SetOptional(b, "amenities", in.Amenities)
		schema.SetOptional(b, "maxOccupants", in.MaxOccupants)
		schema.SetOptional(b, "currentOccupants", in.CurrentOccupants)
		schema.SetOptional(b, "note", in.Note)
		return b
	},
)
