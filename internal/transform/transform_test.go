package transform

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentalmanager/internal/models"
	"rentalmanager/internal/schema"
)

var (
	stamp    = time.Date(2024, 3, 1, 8, 30, 0, 0, time.UTC)
	janFirst = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
)

// echo plays the part of a server that stores a create payload and returns it
// with an id and timestamps.
func echo(t *testing.T, body schema.Body, id int64) []byte {
	t.Helper()
	record := map[string]any{}
	for k, v := range body {
		record[k] = v
	}
	record["id"] = id
	record["createdAt"] = stamp.Format(time.RFC3339)
	record["updatedAt"] = stamp.Format(time.RFC3339)
	raw, err := json.Marshal(record)
	require.NoError(t, err)
	return raw
}

func TestRoundTrip_Room(t *testing.T) {
	input := models.CreateRoomInput{
		PropertyID: 3,
		Name:       "Room 1",
		Floor:      models.Ptr[int64](2),
		Price:      1000,
		Amenities:  models.Ptr("wifi, fridge"),
	}
	body, err := Rooms.CreatePayload(input)
	require.NoError(t, err)

	room, err := Rooms.Decode(echo(t, body, 5))
	require.NoError(t, err)
	assert.Equal(t, int64(5), room.ID)
	assert.Equal(t, int64(3), room.PropertyID)
	assert.Equal(t, "Room 1", room.Name)
	assert.Equal(t, int64(2), *room.Floor)
	assert.Nil(t, room.Area)
	assert.Equal(t, 1000.0, room.Price)
	assert.Equal(t, models.RoomAvailable, room.Status)
	assert.Equal(t, "wifi, fridge", *room.Amenities)
	assert.Equal(t, int64(1), room.MaxOccupants)
	assert.Equal(t, int64(0), room.CurrentOccupants)
	assert.Nil(t, room.Note)
	assert.Equal(t, stamp, room.CreatedAt)
}

func TestRoundTrip_Property(t *testing.T) {
	input := models.CreatePropertyInput{
		UserID:      1,
		Name:        "Sunrise",
		Status:      models.Ptr(models.PropertyMaintenance),
		ContactMail: models.Ptr("owner@example.com"),
		Floors:      models.Ptr[int64](4),
	}
	body, err := Properties.CreatePayload(input)
	require.NoError(t, err)
	assert.Equal(t, 2, body["status"])

	property, err := Properties.Decode(echo(t, body, 9))
	require.NoError(t, err)
	assert.Equal(t, "Sunrise", property.Name)
	assert.Equal(t, models.PropertyMaintenance, property.Status)
	assert.Equal(t, "owner@example.com", *property.ContactMail)
	assert.Equal(t, int64(4), *property.Floors)
	assert.Equal(t, "", property.Code)
	assert.Nil(t, property.Address)

	body, err = Properties.CreatePayload(models.CreatePropertyInput{Name: "Default"})
	require.NoError(t, err)
	property, err = Properties.Decode(echo(t, body, 10))
	require.NoError(t, err)
	assert.Equal(t, models.PropertyActive, property.Status)
}

func TestRoundTrip_Contract(t *testing.T) {
	body, err := Contracts.CreatePayload(models.CreateContractInput{RoomID: 5, TenantID: 7, StartDate: janFirst})
	require.NoError(t, err)

	contract, err := Contracts.Decode(echo(t, body, 1))
	require.NoError(t, err)
	assert.Equal(t, int64(5), contract.RoomID)
	assert.Equal(t, int64(7), contract.TenantID)
	assert.Equal(t, janFirst, contract.StartDate)
	assert.Nil(t, contract.EndDate)
	assert.Equal(t, 0.0, contract.DepositAmount)
	assert.Equal(t, models.ContractActive, contract.Status)
	assert.Equal(t, models.CycleMonthly, contract.PaymentCycle)
}

func TestRoundTrip_Tenant(t *testing.T) {
	dob := time.Date(1990, 5, 17, 0, 0, 0, 0, time.UTC)
	body, err := Tenants.CreatePayload(models.CreateTenantInput{
		FullName:    "Nguyen Van A",
		Email:       models.Ptr("a@example.com"),
		Gender:      models.Ptr(models.GenderOther),
		DateOfBirth: &dob,
	})
	require.NoError(t, err)

	tenant, err := Tenants.Decode(echo(t, body, 2))
	require.NoError(t, err)
	assert.Equal(t, "Nguyen Van A", tenant.FullName)
	assert.Equal(t, models.GenderOther, *tenant.Gender)
	assert.Equal(t, dob, *tenant.DateOfBirth)
	assert.Nil(t, tenant.Phone)
}

func TestRoundTrip_InvoiceAndPayment(t *testing.T) {
	body, err := Invoices.CreatePayload(models.CreateInvoiceInput{
		ContractID:  1,
		Month:       2,
		Year:        2024,
		RentAmount:  models.AmountPtr(3500000),
		InvoiceDate: &janFirst,
		PeriodStart: janFirst,
		PeriodEnd:   janFirst.AddDate(0, 1, -1),
	})
	require.NoError(t, err)

	invoice, err := Invoices.Decode(echo(t, body, 4))
	require.NoError(t, err)
	assert.Equal(t, int64(2), invoice.Month)
	assert.Equal(t, 3500000.0, invoice.RentAmount)
	assert.Equal(t, models.InvoiceUnpaid, invoice.Status)
	assert.Equal(t, 0.0, invoice.UtilitiesAmount)

	body, err = Payments.CreatePayload(models.CreatePaymentInput{InvoiceID: 4, Amount: 100, PaidAt: janFirst})
	require.NoError(t, err)
	payment, err := Payments.Decode(echo(t, body, 8))
	require.NoError(t, err)
	assert.Equal(t, models.MethodCash, payment.Method)
	assert.Equal(t, 100.0, payment.Amount)
	assert.Nil(t, payment.TransactionCode)
}

func TestRoundTrip_FeesMetersUsers(t *testing.T) {
	body, err := ExtraFees.CreatePayload(models.CreateExtraFeeInput{PropertyID: 1, Name: "Parking", Amount: 150})
	require.NoError(t, err)
	fee, err := ExtraFees.Decode(echo(t, body, 1))
	require.NoError(t, err)
	assert.True(t, fee.IsActive)
	assert.Equal(t, models.ChargeMonthly, fee.ChargeType)

	body, err = UtilityMeters.CreatePayload(models.CreateUtilityMeterInput{PropertyID: 1, MeterType: models.MeterWater})
	require.NoError(t, err)
	meter, err := UtilityMeters.Decode(echo(t, body, 1))
	require.NoError(t, err)
	assert.Equal(t, models.MeterWater, meter.MeterType)
	assert.Equal(t, models.DefaultMeterUnit, meter.Unit)
	assert.True(t, meter.Active)
	assert.Nil(t, meter.RoomID)

	body, err = UtilityMeterReadings.CreatePayload(models.CreateUtilityMeterReadingInput{UtilityMeterID: 1, ReadingDate: janFirst, Value: models.AmountPtr(42.5)})
	require.NoError(t, err)
	reading, err := UtilityMeterReadings.Decode(echo(t, body, 1))
	require.NoError(t, err)
	assert.Equal(t, 42.5, *reading.Value)

	body, err = Users.CreatePayload(models.CreateUserInput{Name: "Admin", Email: "admin@example.com", Password: "secret1"})
	require.NoError(t, err)
	user, err := Users.Decode(echo(t, body, 1))
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.False(t, user.IsEmailVerified)
}

func TestDecode_Coercion(t *testing.T) {
	room, err := Rooms.Decode([]byte(`{"id":1,"propertyId":"2","name":"A","price":"1500.5","floor":"","maxOccupants":"3","amenities":["wifi","tv"]}`))
	require.NoError(t, err)
	assert.Equal(t, 1500.5, room.Price)
	assert.Nil(t, room.Floor)
	assert.Equal(t, int64(3), room.MaxOccupants)
	assert.Equal(t, "wifi, tv", *room.Amenities)

	room, err = Rooms.Decode([]byte(`{"id":1,"propertyId":2,"name":"A","price":1,"amenities":"[\"a\",\"b\"]"}`))
	require.NoError(t, err)
	assert.Equal(t, "a, b", *room.Amenities)

	fee, err := ExtraFees.Decode([]byte(`{"id":1,"propertyId":1,"name":"x","amount":"10","isActive":"Yes"}`))
	require.NoError(t, err)
	assert.True(t, fee.IsActive)

	fee, err = ExtraFees.Decode([]byte(`{"id":1,"propertyId":1,"name":"x","amount":10,"isActive":0}`))
	require.NoError(t, err)
	assert.False(t, fee.IsActive)

	invoice, err := Invoices.Decode([]byte(`{"id":1,"contractId":1,"month":"3","year":"2024","invoiceDate":"2024-03-01","periodStart":"2024-03-01","periodEnd":"2024-03-31T00:00:00.000Z"}`))
	require.NoError(t, err)
	assert.Equal(t, int64(2024), invoice.Year)
	assert.Equal(t, 0.0, invoice.TotalAmount)
}

func TestDecode_PropertyStatus(t *testing.T) {
	tests := []struct {
		name     string
		status   string
		expected models.PropertyStatus
	}{
		{name: "numeric active", status: `1`, expected: models.PropertyActive},
		{name: "numeric maintenance", status: `2`, expected: models.PropertyMaintenance},
		{name: "numeric zero", status: `0`, expected: models.PropertyInactive},
		{name: "numeric string", status: `"1"`, expected: models.PropertyActive},
		{name: "enum name", status: `"maintenance"`, expected: models.PropertyMaintenance},
		{name: "null", status: `null`, expected: models.PropertyInactive},
		{name: "unknown code", status: `9`, expected: models.PropertyInactive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			property, err := Properties.Decode([]byte(`{"id":1,"userId":1,"name":"P","status":` + tt.status + `}`))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, property.Status)
		})
	}

	_, err := Properties.Decode([]byte(`{"id":1,"userId":1,"name":"P","status":"closed"}`))
	assert.True(t, schema.IsValidationError(err))
}

func TestDecode_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		field string
	}{
		{name: "room without price", raw: `{"id":1,"propertyId":1,"name":"A"}`, field: "price"},
		{name: "room with bad status", raw: `{"id":1,"propertyId":1,"name":"A","price":1,"status":"sold"}`, field: "status"},
		{name: "room with string price", raw: `{"id":1,"propertyId":1,"name":"A","price":"cheap"}`, field: "price"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Rooms.Decode([]byte(tt.raw))
			var ve *schema.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
		})
	}

	_, err := Users.Decode([]byte(`{"id":1,"name":"A","email":"not-an-email"}`))
	var ve *schema.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "email", ve.Field)

	_, err = UtilityMeters.Decode([]byte(`{"id":1,"propertyId":1}`))
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "meterType", ve.Field)
}

func TestDecodeList_Atomic(t *testing.T) {
	raw := []byte(`[
		{"id":1,"propertyId":1,"name":"A","price":1},
		{"id":2,"propertyId":1,"name":"B","price":2},
		{"id":3,"propertyId":1,"name":"C"}
	]`)
	rooms, err := Rooms.DecodeList(raw)
	assert.Nil(t, rooms)
	var ve *schema.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, 2, ve.Index)
	assert.Equal(t, "room", ve.Entity)
}

func TestUpdatePayload(t *testing.T) {
	body, err := Rooms.UpdatePayload(models.UpdateRoomInput{
		Status: models.Ptr(models.RoomOccupied),
		Floor:  models.Clear[int64](),
	})
	require.NoError(t, err)
	assert.Equal(t, schema.Body{"status": models.RoomOccupied, "floor": nil}, body)

	body, err = Properties.UpdatePayload(models.UpdatePropertyInput{Status: models.Ptr(models.PropertyInactive)})
	require.NoError(t, err)
	assert.Equal(t, schema.Body{"status": 0}, body)

	_, err = Rooms.UpdatePayload(models.UpdateRoomInput{Name: models.Ptr("")})
	assert.True(t, schema.IsValidationError(err))
}

func TestUserUpdatePassword(t *testing.T) {
	tests := []struct {
		name     string
		input    models.UpdateUserInput
		expected schema.Body
	}{
		{
			name:     "password change pair",
			input:    models.UpdateUserInput{CurrentPassword: models.Ptr("old-secret"), NewPassword: models.Ptr("new-secret"), Password: models.Ptr("ignored")},
			expected: schema.Body{"currentPassword": "old-secret", "newPassword": "new-secret"},
		},
		{
			name:     "legacy password",
			input:    models.UpdateUserInput{Password: models.Ptr("secret1")},
			expected: schema.Body{"password": "secret1"},
		},
		{
			name:     "no password",
			input:    models.UpdateUserInput{Name: models.Ptr("Bob")},
			expected: schema.Body{"name": "Bob"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, err := Users.UpdatePayload(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, body)
		})
	}
}

func TestCreatePayload_Validation(t *testing.T) {
	_, err := Users.CreatePayload(models.CreateUserInput{Name: "A", Email: "a@example.com", Password: "123"})
	assert.True(t, schema.IsValidationError(err))

	_, err = Contracts.CreatePayload(models.CreateContractInput{RoomID: 1, TenantID: 1})
	var ve *schema.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "startDate", ve.Field)

	_, err = Invoices.CreatePayload(models.CreateInvoiceInput{ContractID: 1, Month: 13, Year: 2024, PeriodStart: janFirst, PeriodEnd: janFirst})
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "month", ve.Field)
}
