package student

import (
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/edunexus/core"
)

// NewStudent contains information needed to admit a new Student.
type NewStudent struct {
	Name         string  `json:"name" validate:"required"`
	Mobile       string  `json:"mobile" validate:"required,min=7,numeric"`
	Email        string  `json:"email" validate:"omitempty,email"`
	GuardianName string  `json:"guardianName"`
	Course       string  `json:"course" validate:"required"`
	BatchID      string  `json:"batchId"`
	TotalFees    float64 `json:"totalFees" validate:"gte=0"`
}

func (ns *NewStudent) Validate(validate *validator.Validate) error {
	ns.Name = core.CleanString(ns.Name)
	ns.Mobile = core.CleanString(ns.Mobile)
	ns.Email = core.CleanString(ns.Email, true /* lower */)
	ns.GuardianName = core.CleanString(ns.GuardianName)
	ns.Course = core.CleanString(ns.Course)
	return validate.Struct(ns)
}

// UpdateStudent defines what may be modified on an existing Student.
// ID and AdmissionDate are immutable and deliberately absent.
type UpdateStudent struct {
	Name         string   `json:"name"`
	Mobile       string   `json:"mobile" validate:"omitempty,min=7,numeric"`
	Email        string   `json:"email" validate:"omitempty,email"`
	GuardianName string   `json:"guardianName"`
	Course       string   `json:"course"`
	BatchID      *string  `json:"batchId"`
	TotalFees    *float64 `json:"totalFees" validate:"omitempty,gte=0"`
}

func (us *UpdateStudent) Validate(validate *validator.Validate) error {
	us.Name = core.CleanString(us.Name)
	us.Mobile = core.CleanString(us.Mobile)
	us.Email = core.CleanString(us.Email, true /* lower */)
	us.GuardianName = core.CleanString(us.GuardianName)
	us.Course = core.CleanString(us.Course)
	return validate.Struct(us)
}
