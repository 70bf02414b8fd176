package models

import "time"

type User struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email" gorm:"uniqueIndex"`
	Role            UserRole  `json:"role"`
	IsEmailVerified bool      `json:"isEmailVerified"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func (u User) GetID() int64 { return u.ID }

type CreateUserInput struct {
	Name     string    `json:"name" validate:"required,min=1"`
	Email    string    `json:"email" validate:"required,email"`
	Password string    `json:"password" validate:"required,min=6"`
	Role     *UserRole `json:"role,omitempty" validate:"omitempty,oneof=user admin"`
}

// UpdateUserInput changes a user. A password change sends CurrentPassword and
// NewPassword together; Password alone is the legacy reset form.
type UpdateUserInput struct {
	Name            *string   `json:"name,omitempty" validate:"omitempty,min=1"`
	Email           *string   `json:"email,omitempty" validate:"omitempty,email"`
	Password        *string   `json:"password,omitempty" validate:"omitempty,min=6"`
	CurrentPassword *string   `json:"currentPassword,omitempty" validate:"required_with=NewPassword"`
	NewPassword     *string   `json:"newPassword,omitempty" validate:"omitempty,min=6"`
	Role            *UserRole `json:"role,omitempty" validate:"omitempty,oneof=user admin"`
	IsEmailVerified *bool     `json:"isEmailVerified,omitempty"`
}

// Credentials is the login request body.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}
