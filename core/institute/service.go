package institute

import (
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/edunexus/core"
	"github.com/trezcool/edunexus/core/record"
)

// UpdateProfile is the single mutation the Institute singleton accepts.
type UpdateProfile struct {
	Name    string `json:"name" validate:"required"`
	Tagline string `json:"tagline"`
	Address string `json:"address"`
	Phone   string `json:"phone" validate:"omitempty,min=7,numeric"`
	Email   string `json:"email" validate:"omitempty,email"`
	Logo    string `json:"logo"`
}

func (up *UpdateProfile) Validate(validate *validator.Validate) error {
	up.Name = core.CleanString(up.Name)
	up.Tagline = core.CleanString(up.Tagline)
	up.Address = core.CleanString(up.Address)
	up.Phone = core.CleanString(up.Phone)
	up.Email = core.CleanString(up.Email, true /* lower */)
	return validate.Struct(up)
}

type Service struct {
	store *record.Store
}

func NewService(store *record.Store) *Service {
	return &Service{store: store}
}

func (svc *Service) Get() record.Institute {
	return *svc.store.Load().Institute
}

// Update replaces the institute profile wholesale.
func (svc *Service) Update(up UpdateProfile) (record.Institute, error) {
	inst := record.Institute{
		Name:    up.Name,
		Tagline: up.Tagline,
		Address: up.Address,
		Phone:   up.Phone,
		Email:   up.Email,
		Logo:    up.Logo,
	}
	err := svc.store.Update(func(doc *record.Document) error {
		doc.Institute = &inst
		return nil
	})
	return inst, err
}
