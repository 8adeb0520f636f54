package user

import (
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/edunexus/core"
	"github.com/trezcool/edunexus/core/record"
)

// NewUser contains information needed to create a new login account.
// When Permissions is omitted the role's default template is applied.
type NewUser struct {
	Username    string              `json:"username" validate:"required,min=4,alphanum_"`
	Password    string              `json:"password" validate:"required,min=6"`
	Name        string              `json:"name" validate:"required"`
	Role        string              `json:"role" validate:"required,oneof=ADMIN TEACHER STUDENT"`
	Permissions *record.Permissions `json:"permissions"`
	StudentID   string              `json:"studentId"`
	TeacherID   string              `json:"teacherId"`
}

func (nu *NewUser) Validate(validate *validator.Validate) error {
	nu.Username = core.CleanString(nu.Username, true /* lower */)
	nu.Name = core.CleanString(nu.Name)
	nu.Role = core.CleanString(nu.Role)
	return validate.Struct(nu)
}

// UpdateUser defines what may be modified on an existing account.
// ID and Role are immutable.
type UpdateUser struct {
	Username    string              `json:"username" validate:"omitempty,min=4,alphanum_"`
	Password    string              `json:"password" validate:"omitempty,min=6"`
	Name        string              `json:"name"`
	Permissions *record.Permissions `json:"permissions"`
	StudentID   *string             `json:"studentId"`
	TeacherID   *string             `json:"teacherId"`
}

func (uu *UpdateUser) Validate(validate *validator.Validate) error {
	uu.Username = core.CleanString(uu.Username, true /* lower */)
	uu.Name = core.CleanString(uu.Name)
	return validate.Struct(uu)
}

// Credentials is a login submission.
type Credentials struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (c *Credentials) Validate(validate *validator.Validate) error {
	c.Username = core.CleanString(c.Username, true /* lower */)
	return validate.Struct(c)
}

// RoleTemplate replaces the stored default permission template for a role.
type RoleTemplate struct {
	Role        string             `json:"role" validate:"required,oneof=TEACHER STUDENT"`
	Permissions record.Permissions `json:"permissions"`
}

func (rt *RoleTemplate) Validate(validate *validator.Validate) error {
	rt.Role = core.CleanString(rt.Role)
	return validate.Struct(rt)
}
