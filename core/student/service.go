package student

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/trezcool/edunexus/core"
	"github.com/trezcool/edunexus/core/record"
)

var ErrNotFound = errors.New("student not found")

type Service struct {
	store *record.Store
}

func NewService(store *record.Store) *Service {
	return &Service{store: store}
}

// Admit creates a new Student: it stamps a freshly generated sequential id,
// today's admission date and the Active status, then appends and persists.
func (svc *Service) Admit(ns NewStudent) (record.Student, error) {
	id, err := svc.store.GenerateStudentID()
	if err != nil {
		return record.Student{}, errors.Wrap(err, "generating student id")
	}

	std := record.Student{
		ID:            id,
		Name:          ns.Name,
		Mobile:        ns.Mobile,
		Email:         ns.Email,
		GuardianName:  ns.GuardianName,
		Course:        ns.Course,
		BatchID:       ns.BatchID,
		AdmissionDate: record.DateStamp(record.NowFunc()),
		Status:        record.StatusActive,
		TotalFees:     ns.TotalFees,
	}

	err = svc.store.Update(func(doc *record.Document) error {
		doc.Students = append(doc.Students, std)
		return nil
	})
	return std, err
}

// Update replaces the mutable fields of an existing Student in place,
// preserving its id and admission date.
func (svc *Service) Update(id string, us UpdateStudent) (record.Student, error) {
	var updated record.Student
	err := svc.store.Update(func(doc *record.Document) error {
		for i, std := range doc.Students {
			if std.ID != id {
				continue
			}
			if us.Name != "" {
				std.Name = us.Name
			}
			if us.Mobile != "" {
				std.Mobile = us.Mobile
			}
			if us.Email != "" {
				std.Email = us.Email
			}
			if us.GuardianName != "" {
				std.GuardianName = us.GuardianName
			}
			if us.Course != "" {
				std.Course = us.Course
			}
			if us.BatchID != nil {
				std.BatchID = *us.BatchID
			}
			if us.TotalFees != nil {
				std.TotalFees = *us.TotalFees
			}
			doc.Students[i] = std
			updated = std
			return nil
		}
		return ErrNotFound
	})
	return updated, err
}

// ToggleStatus flips a Student between Active and Inactive. Students are
// never hard-deleted; this is the only retirement path.
func (svc *Service) ToggleStatus(id string) (record.Student, error) {
	var updated record.Student
	err := svc.store.Update(func(doc *record.Document) error {
		for i, std := range doc.Students {
			if std.ID != id {
				continue
			}
			if std.Status == record.StatusActive {
				std.Status = record.StatusInactive
			} else {
				std.Status = record.StatusActive
			}
			doc.Students[i] = std
			updated = std
			return nil
		}
		return ErrNotFound
	})
	return updated, err
}

func (svc *Service) Get(id string) (record.Student, error) {
	if std, ok := svc.store.Load().StudentByID(id); ok {
		return std, nil
	}
	return record.Student{}, ErrNotFound
}

func (svc *Service) QueryAll() []record.Student {
	return svc.store.Load().Students
}

// Search does a case-insensitive match on name or id, and a plain substring
// match on mobile. An empty query returns everything.
func (svc *Service) Search(query string) []record.Student {
	students := svc.store.Load().Students
	query = core.CleanString(query, true /* lower */)
	if query == "" {
		return students
	}

	matches := make([]record.Student, 0, len(students))
	for _, std := range students {
		if strings.Contains(strings.ToLower(std.Name), query) ||
			strings.Contains(strings.ToLower(std.ID), query) ||
			strings.Contains(std.Mobile, query) {
			matches = append(matches, std)
		}
	}
	return matches
}
