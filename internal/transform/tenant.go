package transform

import (
	"time"

	"rentalmanager/internal/models"
	"rentalmanager/internal/schema"
)

var tenantDecoder = schema.New("tenant",
	schema.Int("id", func(t *models.Tenant, v int64) { t.ID = v }),
	schema.String("fullName", func(t *models.Tenant, v string) { t.FullName = v }),
	schema.OptString("phone", func(t *models.Tenant, v *string) { t.Phone = v }),
	schema.OptString("email", func(t *models.Tenant, v *string) { t.Email = v }),
	schema.OptString("idNumber", func(t *models.Tenant, v *string) { t.IDNumber = v }),
	schema.OptString("permanentAddress", func(t *models.Tenant, v *string) { t.PermanentAddress = v }),
	schema.OptString("nationalIdNumber", func(t *models.Tenant, v *string) { t.NationalIDNumber = v }),
	schema.OptString("emergencyContactName", func(t *models.Tenant, v *string) { t.EmergencyContactName = v }),
	schema.OptString("emergencyContactPhone", func(t *models.Tenant, v *string) { t.EmergencyContactPhone = v }),
	schema.OptString("emergencyContactRelation", func(t *models.Tenant, v *string) { t.EmergencyContactRelation = v }),
	schema.OptString("occupation", func(t *models.Tenant, v *string) { t.Occupation = v }),
	schema.OptString("note", func(t *models.Tenant, v *string) { t.Note = v }),
	schema.OptEnum("gender", models.Genders, func(t *models.Tenant, v *models.Gender) { t.Gender = v }),
	schema.OptTime("dateOfBirth", func(t *models.Tenant, v *time.Time) { t.DateOfBirth = v }),
	createdAt(func(t *models.Tenant, v time.Time) { t.CreatedAt = v }),
	updatedAt(func(t *models.Tenant, v time.Time) { t.UpdatedAt = v }),
)

var Tenants = newEntity("tenant", "tenants", tenantDecoder,
	func(in models.CreateTenantInput) schema.Body {
		b := schema.Body{}
		b.Set("fullName", in.FullName)
		schema.SetNullable(b, "phone", in.Phone)
		schema.SetNullable(b, "email", in.Email)
		schema.SetNullable(b, "idNumber", in.IDNumber)
		schema.SetNullable(b, "permanentAddress", in.PermanentAddress)
		schema.SetNullable(b, "nationalIdNumber", in.NationalIDNumber)
		schema.SetNullable(b, "emergencyContactName", in.EmergencyContactName)
		schema.SetNullable(b, "emergencyContactPhone", in.EmergencyContactPhone)
		schema.SetNullable(b, "emergencyContactRelation", in.EmergencyContactRelation)
		schema.SetNullable(b, "occupation", in.Occupation)
		schema.SetNullable(b, "note", in.Note)
		schema.SetNullable(b, "gender", in.Gender)
		schema.SetNullable(b, "dateOfBirth", in.DateOfBirth)
		return b
	},
	func(in models.UpdateTenantInput) schema.Body {
		b := schema.Body{}
		schema.SetPtr(b, "fullName", in.FullName)
		schema.SetPtr(b, "phone", in.Phone)
		schema.SetPtr(b, "email", in.Email)
		schema.SetPtr(b, "idNumber", in.IDNumber)
		schema.SetPtr(b, "permanentAddress", in.PermanentAddress)
		schema.SetPtr(b, "nationalIdNumber", in.NationalIDNumber)
		schema.SetPtr(b, "emergencyContactName", in.EmergencyContactName)
		schema.SetPtr(b, "emergencyContactPhone", in.EmergencyContactPhone)
		schema.SetPtr(b, "emergencyContactRelation", in.EmergencyContactRelation)
		schema.SetPtr(b, "occupation", in.Occupation)
		schema.SetPtr(b, "note", in.Note)
		schema.SetOptional(b, "gender", in.Gender)
		schema.SetPtr(b, "dateOfBirth", in.DateOfBirth)
		return b
	},
)
