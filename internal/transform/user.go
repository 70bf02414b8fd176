package transform

import (
	"time"

	"rentalmanager/internal/models"
	"rentalmanager/internal/schema"
)

var userDecoder = schema.New("user",
	schema.Int("id", func(u *models.User, v int64) { u.ID = v }),
	schema.String("name", func(u *models.User, v string) { u.Name = v }),
	schema.String("email", func(u *models.User, v string) { u.Email = v }, schema.Check(schema.IsEmail)),
	schema.Enum("role", models.UserRoles, func(u *models.User, v models.UserRole) { u.Role = v }, schema.Default(models.RoleUser)),
	schema.Bool("isEmailVerified", func(u *models.User, v bool) { u.IsEmailVerified = v }, schema.Default(false)),
	createdAt(func(u *models.User, v time.Time) { u.CreatedAt = v }),
	updatedAt(func(u *models.User, v time.Time) { u.UpdatedAt = v }),
)

var Users = newEntity("user", "users", userDecoder,
	func(in models.CreateUserInput) schema.Body {
		b := schema.Body{}
		b.Set("name", in.Name)
		b.Set("email", in.Email)
		b.Set("password", in.Password)
		schema.SetOr(b, "role", in.Role, models.RoleUser)
		return b
	},
	func(in models.UpdateUserInput) schema.Body {
		b := schema.Body{}
		schema.SetPtr(b, "name", in.Name)
		schema.SetPtr(b, "email", in.Email)
		schema.SetPtr(b, "role", in.Role)
		schema.SetPtr(b, "isEmailVerified", in.IsEmailVerified)

		switch {
		case in.CurrentPassword != nil && *in.CurrentPassword != "" && in.NewPassword != nil && *in.NewPassword != "":
			b.Set("currentPassword", *in.CurrentPassword)
			b.Set("newPassword", *in.NewPassword)
		case in.Password != nil && *in.Password != "":
			b.Set("password", *in.Password)
		}
		return b
	},
)
