package attendance

import (
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/trezcool/edunexus/core"
	"github.com/trezcool/edunexus/core/record"
)

// Entry is one student's mark within a sheet.
type Entry struct {
	StudentID string `json:"studentId" validate:"required"`
	Status    string `json:"status" validate:"required,oneof=Present Absent"`
}

// Sheet is one batch's attendance submission for one date.
type Sheet struct {
	Date    string  `json:"date" validate:"required,datestamp"`
	BatchID string  `json:"batchId" validate:"required"`
	Entries []Entry `json:"entries" validate:"required,min=1,dive"`
}

func (sh *Sheet) Validate(validate *validator.Validate) error {
	sh.Date = core.CleanString(sh.Date)
	sh.BatchID = core.CleanString(sh.BatchID)
	return validate.Struct(sh)
}

type Service struct {
	store *record.Store
}

func NewService(store *record.Store) *Service {
	return &Service{store: store}
}

// Mark bulk-appends one Attendance record per entry. There is no natural
// key on (batch, date, student): re-marking the same sheet appends
// duplicate records rather than replacing them.
func (svc *Service) Mark(sh Sheet) ([]record.Attendance, error) {
	marks := make([]record.Attendance, 0, len(sh.Entries))
	for _, e := range sh.Entries {
		marks = append(marks, record.Attendance{
			ID:        uuid.New().String(),
			Date:      sh.Date,
			BatchID:   sh.BatchID,
			StudentID: e.StudentID,
			Status:    e.Status,
		})
	}

	err := svc.store.Update(func(doc *record.Document) error {
		doc.Attendance = append(doc.Attendance, marks...)
		return nil
	})
	return marks, err
}

func (svc *Service) QueryAll() []record.Attendance {
	return svc.store.Load().Attendance
}

// QueryByBatchAndDate returns the marks recorded for a batch on a date,
// duplicates included.
func (svc *Service) QueryByBatchAndDate(batchID, date string) []record.Attendance {
	marks := make([]record.Attendance, 0)
	for _, a := range svc.store.Load().Attendance {
		if a.BatchID == batchID && a.Date == date {
			marks = append(marks, a)
		}
	}
	return marks
}

// QueryByStudent returns a student's attendance history.
func (svc *Service) QueryByStudent(studentID string) []record.Attendance {
	marks := make([]record.Attendance, 0)
	for _, a := range svc.store.Load().Attendance {
		if a.StudentID == studentID {
			marks = append(marks, a)
		}
	}
	return marks
}
