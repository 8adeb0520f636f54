package batch

import (
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/trezcool/edunexus/core"
	"github.com/trezcool/edunexus/core/record"
)

var ErrNotFound = errors.New("batch not found")

// NewBatch contains information needed to create a new Batch.
// TeacherID is a soft reference; it is not checked against the teachers
// collection.
type NewBatch struct {
	Name      string `json:"name" validate:"required"`
	Course    string `json:"course" validate:"required"`
	TeacherID string `json:"teacherId" validate:"required"`
	Timing    string `json:"timing" validate:"required"`
}

func (nb *NewBatch) Validate(validate *validator.Validate) error {
	nb.Name = core.CleanString(nb.Name)
	nb.Course = core.CleanString(nb.Course)
	nb.TeacherID = core.CleanString(nb.TeacherID)
	nb.Timing = core.CleanString(nb.Timing)
	return validate.Struct(nb)
}

// UpdateBatch defines what may be modified on an existing Batch.
type UpdateBatch struct {
	Name      string `json:"name"`
	Course    string `json:"course"`
	TeacherID string `json:"teacherId"`
	Timing    string `json:"timing"`
}

func (ub *UpdateBatch) Validate(validate *validator.Validate) error {
	ub.Name = core.CleanString(ub.Name)
	ub.Course = core.CleanString(ub.Course)
	ub.TeacherID = core.CleanString(ub.TeacherID)
	ub.Timing = core.CleanString(ub.Timing)
	return validate.Struct(ub)
}

type Service struct {
	store *record.Store
}

func NewService(store *record.Store) *Service {
	return &Service{store: store}
}

// Add creates a new Batch under a freshly generated short id.
func (svc *Service) Add(nb NewBatch) (record.Batch, error) {
	var bch record.Batch
	err := svc.store.Update(func(doc *record.Document) error {
		bch = record.Batch{
			ID:        record.NewBatchID(doc),
			Name:      nb.Name,
			Course:    nb.Course,
			TeacherID: nb.TeacherID,
			Timing:    nb.Timing,
		}
		doc.Batches = append(doc.Batches, bch)
		return nil
	})
	return bch, err
}

// Update replaces the mutable fields of an existing Batch, preserving its id.
func (svc *Service) Update(id string, ub UpdateBatch) (record.Batch, error) {
	var updated record.Batch
	err := svc.store.Update(func(doc *record.Document) error {
		for i, bch := range doc.Batches {
			if bch.ID != id {
				continue
			}
			if ub.Name != "" {
				bch.Name = ub.Name
			}
			if ub.Course != "" {
				bch.Course = ub.Course
			}
			if ub.TeacherID != "" {
				bch.TeacherID = ub.TeacherID
			}
			if ub.Timing != "" {
				bch.Timing = ub.Timing
			}
			doc.Batches[i] = bch
			updated = bch
			return nil
		}
		return ErrNotFound
	})
	return updated, err
}

// Delete removes a Batch. Students referencing it keep their dangling
// batchId; lookups resolve it as unassigned.
func (svc *Service) Delete(id string) error {
	return svc.store.Update(func(doc *record.Document) error {
		for i, bch := range doc.Batches {
			if bch.ID == id {
				doc.Batches = append(doc.Batches[:i], doc.Batches[i+1:]...)
				return nil
			}
		}
		return ErrNotFound
	})
}

func (svc *Service) Get(id string) (record.Batch, error) {
	if bch, ok := svc.store.Load().BatchByID(id); ok {
		return bch, nil
	}
	return record.Batch{}, ErrNotFound
}

func (svc *Service) QueryAll() []record.Batch {
	return svc.store.Load().Batches
}

// Students returns the students assigned to a batch.
func (svc *Service) Students(id string) []record.Student {
	doc := svc.store.Load()
	students := make([]record.Student, 0)
	for _, std := range doc.Students {
		if std.BatchID == id {
			students = append(students, std)
		}
	}
	return students
}
