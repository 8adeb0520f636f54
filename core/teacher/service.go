package teacher

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/trezcool/edunexus/core"
	"github.com/trezcool/edunexus/core/record"
)

var ErrNotFound = errors.New("teacher not found")

// NewTeacher contains information needed to register a new Teacher.
// Subjects arrive as one comma-separated field from the form.
type NewTeacher struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"omitempty,email"`
	Mobile   string `json:"mobile" validate:"required,min=7,numeric"`
	Subjects string `json:"subjects" validate:"required"`
}

func (nt *NewTeacher) Validate(validate *validator.Validate) error {
	nt.Name = core.CleanString(nt.Name)
	nt.Email = core.CleanString(nt.Email, true /* lower */)
	nt.Mobile = core.CleanString(nt.Mobile)
	nt.Subjects = core.CleanString(nt.Subjects)
	return validate.Struct(nt)
}

// UpdateTeacher defines what may be modified on an existing Teacher.
type UpdateTeacher struct {
	Name     string `json:"name"`
	Email    string `json:"email" validate:"omitempty,email"`
	Mobile   string `json:"mobile" validate:"omitempty,min=7,numeric"`
	Subjects string `json:"subjects"`
}

func (ut *UpdateTeacher) Validate(validate *validator.Validate) error {
	ut.Name = core.CleanString(ut.Name)
	ut.Email = core.CleanString(ut.Email, true /* lower */)
	ut.Mobile = core.CleanString(ut.Mobile)
	ut.Subjects = core.CleanString(ut.Subjects)
	return validate.Struct(ut)
}

// SplitSubjects turns the form's comma-separated subject list into names,
// dropping empties.
func SplitSubjects(s string) []string {
	parts := strings.Split(s, ",")
	subjects := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = core.CleanString(p); p != "" {
			subjects = append(subjects, p)
		}
	}
	return subjects
}

type Service struct {
	store *record.Store
}

func NewService(store *record.Store) *Service {
	return &Service{store: store}
}

// Add registers a new Teacher under a freshly generated short id.
func (svc *Service) Add(nt NewTeacher) (record.Teacher, error) {
	var tch record.Teacher
	err := svc.store.Update(func(doc *record.Document) error {
		tch = record.Teacher{
			ID:       record.NewTeacherID(doc),
			Name:     nt.Name,
			Email:    nt.Email,
			Mobile:   nt.Mobile,
			Subjects: SplitSubjects(nt.Subjects),
		}
		doc.Teachers = append(doc.Teachers, tch)
		return nil
	})
	return tch, err
}

// Update replaces the mutable fields of an existing Teacher, preserving its id.
func (svc *Service) Update(id string, ut UpdateTeacher) (record.Teacher, error) {
	var updated record.Teacher
	err := svc.store.Update(func(doc *record.Document) error {
		for i, tch := range doc.Teachers {
			if tch.ID != id {
				continue
			}
			if ut.Name != "" {
				tch.Name = ut.Name
			}
			if ut.Email != "" {
				tch.Email = ut.Email
			}
			if ut.Mobile != "" {
				tch.Mobile = ut.Mobile
			}
			if ut.Subjects != "" {
				tch.Subjects = SplitSubjects(ut.Subjects)
			}
			doc.Teachers[i] = tch
			updated = tch
			return nil
		}
		return ErrNotFound
	})
	return updated, err
}

func (svc *Service) Get(id string) (record.Teacher, error) {
	if tch, ok := svc.store.Load().TeacherByID(id); ok {
		return tch, nil
	}
	return record.Teacher{}, ErrNotFound
}

func (svc *Service) QueryAll() []record.Teacher {
	return svc.store.Load().Teachers
}
