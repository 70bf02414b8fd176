package models

import "time"

type Tenant struct {
	ID                       int64      `json:"id"`
	FullName                 string     `json:"fullName"`
	Phone                    *string    `json:"phone"`
	Email                    *string    `json:"email"`
	IDNumber                 *string    `json:"idNumber"`
	PermanentAddress         *string    `json:"permanentAddress"`
	NationalIDNumber         *string    `json:"nationalIdNumber"`
	EmergencyContactName     *string    `json:"emergencyContactName"`
	EmergencyContactPhone    *string    `json:"emergencyContactPhone"`
	EmergencyContactRelation *string    `json:"emergencyContactRelation"`
	Occupation               *string    `json:"occupation"`
	Note                     *string    `json:"note"`
	Gender                   *Gender    `json:"gender"`
	DateOfBirth              *time.Time `json:"dateOfBirth"`
	CreatedAt                time.Time  `json:"createdAt"`
	UpdatedAt                time.Time  `json:"updatedAt"`
}

func (t Tenant) GetID() int64 { return t.ID }

type CreateTenantInput struct {
	FullName                 string     `json:"fullName" validate:"required,min=1"`
	Phone                    *string    `json:"phone,omitempty"`
	Email                    *string    `json:"email,omitempty" validate:"omitempty,email"`
	IDNumber                 *string    `json:"idNumber,omitempty"`
	PermanentAddress         *string    `json:"permanentAddress,omitempty"`
	NationalIDNumber         *string    `json:"nationalIdNumber,omitempty"`
	EmergencyContactName     *string    `json:"emergencyContactName,omitempty"`
	EmergencyContactPhone    *string    `json:"emergencyContactPhone,omitempty"`
	EmergencyContactRelation *string    `json:"emergencyContactRelation,omitempty"`
	Occupation               *string    `json:"occupation,omitempty"`
	Note                     *string    `json:"note,omitempty"`
	Gender                   *Gender    `json:"gender,omitempty" validate:"omitempty,oneof=male female other"`
	DateOfBirth              *time.Time `json:"dateOfBirth,omitempty"`
}

type UpdateTenantInput struct {
	FullName                 *string          `json:"fullName,omitempty" validate:"omitempty,min=1"`
	Phone                    *string          `json:"phone,omitempty"`
	Email                    *string          `json:"email,omitempty" validate:"omitempty,email"`
	IDNumber                 *string          `json:"idNumber,omitempty"`
	PermanentAddress         *string          `json:"permanentAddress,omitempty"`
	NationalIDNumber         *string          `json:"nationalIdNumber,omitempty"`
	EmergencyContactName     *string          `json:"emergencyContactName,omitempty"`
	EmergencyContactPhone    *string          `json:"emergencyContactPhone,omitempty"`
	EmergencyContactRelation *string          `json:"emergencyContactRelation,omitempty"`
	Occupation               *string          `json:"occupation,omitempty"`
	Note                     *string          `json:"note,omitempty"`
	Gender                   Optional[Gender] `json:"gender" validate:"omitempty,oneof=male female other"`
	DateOfBirth              *time.Time       `json:"dateOfBirth,omitempty"`
}
