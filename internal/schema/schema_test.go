package schema

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"rentalmanager/internal/models"
)

type widget struct {
	ID      int64
	Name    string
	Price   float64
	Size    *float64
	Label   *string
	Active  bool
	Color   models.RoomStatus
	Since   time.Time
	Extra   json.RawMessage
	Contact string
}

func widgetDecoder() *Decoder[widget] {
	return New("widget",
		Int("id", func(w *widget, v int64) { w.ID = v }),
		String("name", func(w *widget, v string) { w.Name = v }),
		Float("price", func(w *widget, v float64) { w.Price = v }, Default(0.0)),
		OptFloat("size", func(w *widget, v *float64) { w.Size = v }),
		OptString("label", func(w *widget, v *string) { w.Label = v }),
		Bool("active", func(w *widget, v bool) { w.Active = v }, Default(true)),
		Enum("color", models.RoomStatuses, func(w *widget, v models.RoomStatus) { w.Color = v }, Default(models.RoomAvailable)),
		Time("since", func(w *widget, v time.Time) { w.Since = v }),
		Raw("extra", func(w *widget, v json.RawMessage) { w.Extra = v }),
		String("contact", func(w *widget, v string) { w.Contact = v }, Default(""), Check(func(s string) error {
			if s == "" {
				return nil
			}
			return IsEmail(s)
		})),
	)
}

func TestCoerceBool(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected bool
		ok       bool
	}{
		{name: "true literal", raw: `true`, expected: true, ok: true},
		{name: "false literal", raw: `false`, expected: false, ok: true},
		{name: "one", raw: `1`, expected: true, ok: true},
		{name: "zero", raw: `0`, expected: false, ok: true},
		{name: "two", raw: `2`, expected: false, ok: true},
		{name: "yes string", raw: `"YES"`, expected: true, ok: true},
		{name: "true string", raw: `"True"`, expected: true, ok: true},
		{name: "one string", raw: `"1"`, expected: true, ok: true},
		{name: "other string", raw: `"no"`, expected: false, ok: true},
		{name: "object", raw: `{}`, expected: false, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, ok := CoerceBool(gjson.Parse(tt.raw))
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, v)
		})
	}
}

func TestCoerceNumberAndTime(t *testing.T) {
	n, ok := CoerceNumber(gjson.Parse(`"1000"`))
	assert.True(t, ok)
	assert.Equal(t, 1000.0, n)

	_, ok = CoerceNumber(gjson.Parse(`"abc"`))
	assert.False(t, ok)

	_, ok = CoerceInt(gjson.Parse(`1.5`))
	assert.False(t, ok)

	_, ok = CoerceInt(gjson.Parse(`1e20`))
	assert.False(t, ok)

	i, ok := CoerceInt(gjson.Parse(`"-42"`))
	assert.True(t, ok)
	assert.Equal(t, int64(-42), i)

	ts, ok := CoerceTime(gjson.Parse(`"2024-01-01"`))
	assert.True(t, ok)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), ts)

	ts, ok = CoerceTime(gjson.Parse(`"2024-01-01T10:00:00.000Z"`))
	assert.True(t, ok)
	assert.Equal(t, 10, ts.Hour())

	ts, ok = CoerceTime(gjson.Parse(`1704067200000`))
	assert.True(t, ok)
	assert.True(t, ts.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))

	_, ok = CoerceTime(gjson.Parse(`"yesterday"`))
	assert.False(t, ok)
}

func TestDecoder_Decode(t *testing.T) {
	d := widgetDecoder()

	w, err := d.Decode([]byte(`{"id":"7","name":"w","size":"","label":"","since":"2024-01-01","extra":{"a":1}}`))
	require.NoError(t, err)
	assert.Equal(t, int64(7), w.ID)
	assert.Equal(t, 0.0, w.Price)
	assert.Nil(t, w.Size)
	assert.Nil(t, w.Label)
	assert.True(t, w.Active)
	assert.Equal(t, models.RoomAvailable, w.Color)
	assert.JSONEq(t, `{"a":1}`, string(w.Extra))

	w, err = d.Decode([]byte(`{"id":1,"name":"w","price":null,"active":"yes","color":"occupied","since":"2024-01-01","size":"12.5"}`))
	require.NoError(t, err)
	assert.Equal(t, 0.0, w.Price)
	assert.True(t, w.Active)
	assert.Equal(t, models.RoomOccupied, w.Color)
	require.NotNil(t, w.Size)
	assert.Equal(t, 12.5, *w.Size)
}

func TestDecoder_DecodeErrors(t *testing.T) {
	d := widgetDecoder()

	tests := []struct {
		name  string
		raw   string
		field string
	}{
		{name: "missing required", raw: `{"name":"w","since":"2024-01-01"}`, field: "id"},
		{name: "wrong type is not defaulted", raw: `{"id":1,"name":"w","price":"abc","since":"2024-01-01"}`, field: "price"},
		{name: "id overflows int64", raw: `{"id":1e20,"name":"w","since":"2024-01-01"}`, field: "id"},
		{name: "string id overflows int64", raw: `{"id":"99999999999999999999","name":"w","since":"2024-01-01"}`, field: "id"},
		{name: "enum out of range", raw: `{"id":1,"name":"w","color":"sold","since":"2024-01-01"}`, field: "color"},
		{name: "bad date", raw: `{"id":1,"name":"w","since":"soon"}`, field: "since"},
		{name: "check failure", raw: `{"id":1,"name":"w","since":"2024-01-01","contact":"nope"}`, field: "contact"},
		{name: "not an object", raw: `[1,2]`, field: ""},
		{name: "malformed", raw: `{"id":`, field: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := d.Decode([]byte(tt.raw))
			require.Error(t, err)
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, "widget", ve.Entity)
			assert.Equal(t, tt.field, ve.Field)
			assert.Equal(t, NoIndex, ve.Index)
		})
	}
}

func TestDecoder_DecodeList(t *testing.T) {
	d := widgetDecoder()

	list, err := d.DecodeList([]byte(`[{"id":1,"name":"a","since":"2024-01-01"},{"id":2,"name":"b","since":"2024-01-02"}]`))
	require.NoError(t, err)
	assert.Len(t, list, 2)

	list, err = d.DecodeList([]byte(`[{"id":1,"name":"a","since":"2024-01-01"},{"name":"b","since":"2024-01-02"}]`))
	assert.Nil(t, list)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, 1, ve.Index)
	assert.Equal(t, "id", ve.Field)
	assert.Contains(t, ve.Error(), "widget[1].id")

	_, err = d.DecodeList([]byte(`{"id":1}`))
	assert.True(t, IsValidationError(err))
}

func TestBody(t *testing.T) {
	b := Body{}
	name := "Room"
	SetPtr(b, "name", &name)
	SetPtr[string](b, "note", nil)
	SetOr(b, "status", nil, models.RoomAvailable)
	SetNullable[int64](b, "floor", nil)
	SetOptional(b, "area", models.Clear[float64]())
	SetOptional(b, "price", models.Some(12.0))
	SetOptional(b, "amenities", models.Optional[string]{})
	b.Set("deposit", models.Amount(5))
	b.Set("startDate", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	encoded, err := json.Marshal(b)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Room","status":"available","floor":null,"area":null,"price":12,"deposit":5,"startDate":"2024-01-01T00:00:00Z"}`, string(encoded))
}

func TestValidateInput(t *testing.T) {
	err := ValidateInput("room", models.CreateRoomInput{Name: "", Price: 10})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "name", ve.Field)

	err = ValidateInput("room", models.CreateRoomInput{Name: "A", Price: -1})
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "price", ve.Field)

	assert.NoError(t, ValidateInput("room", models.CreateRoomInput{Name: "A", Price: 10}))

	assert.NoError(t, ValidateInput("room", models.UpdateRoomInput{Area: models.Clear[float64]()}))
	err = ValidateInput("room", models.UpdateRoomInput{Area: models.Some(-2.0)})
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "area", ve.Field)

	err = ValidateInput("user", models.CreateUserInput{Name: "A", Email: "a@example.com", Password: "123"})
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "password", ve.Field)

	err = ValidateInput("user", models.UpdateUserInput{NewPassword: models.Ptr("secret1")})
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "currentPassword", ve.Field)
}
