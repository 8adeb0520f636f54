package payment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/trezcool/edunexus/core"
	"github.com/trezcool/edunexus/core/record"
)

type fakeMailService struct {
	sent []*core.EmailMessage
}

func (svc *fakeMailService) SendMessages(messages ...*core.EmailMessage) {
	svc.sent = append(svc.sent, messages...)
}

func setup(t *testing.T, mailSvc core.EmailService) *Service {
	t.Helper()
	return NewService(record.NewStore(record.NewMemSlot()), mailSvc)
}

func mockNow(t *testing.T, stamp string) {
	t.Helper()
	now, err := time.Parse(record.DateLayout, stamp)
	if err != nil {
		t.Fatalf("time.Parse() failed: %v", err)
	}
	orig := record.NowFunc
	record.NowFunc = func() time.Time { return now }
	t.Cleanup(func() { record.NowFunc = orig })
}

func addStudent(t *testing.T, svc *Service, std record.Student) {
	t.Helper()
	err := svc.store.Update(func(doc *record.Document) error {
		doc.Students = append(doc.Students, std)
		return nil
	})
	if err != nil {
		t.Fatalf("store.Update() failed: %v", err)
	}
}

func TestService_Record(t *testing.T) {
	mailSvc := &fakeMailService{}
	svc := setup(t, mailSvc)
	mockNow(t, "2024-06-10")
	addStudent(t, svc, record.Student{ID: "STU-101", Name: "Amit Kumar", Email: "amit@example.com", Course: "IIT Foundation"})

	pmt, err := svc.Record(NewPayment{
		StudentID:  "STU-101",
		Amount:     2500,
		Mode:       record.ModeCash,
		PeriodFrom: "2024-06-01",
		PeriodTo:   "2024-06-30",
	})
	if err != nil {
		t.Fatalf("Record() failed: %v", err)
	}
	assert.NotEmpty(t, pmt.ID)
	assert.Equal(t, "REC-1001", pmt.ReceiptNo)
	assert.Equal(t, "2024-06-10", pmt.Date)

	got, err := svc.Get(pmt.ID)
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	assert.Equal(t, pmt, got)

	if assert.Len(t, mailSvc.sent, 1) {
		msg := mailSvc.sent[0]
		assert.Equal(t, "amit@example.com", msg.To[0].Address)
		assert.Equal(t, "Payment Receipt REC-1001", msg.Subject)
		assert.Contains(t, msg.BodyStr, "₹2,500.00")
	}

	t.Run("receipt numbers stay sequential", func(t *testing.T) {
		next, err := svc.Record(NewPayment{
			StudentID: "STU-101", Amount: 1000, Mode: record.ModeUPI,
			PeriodFrom: "2024-07-01", PeriodTo: "2024-07-31",
		})
		if err != nil {
			t.Fatalf("Record() failed: %v", err)
		}
		assert.Equal(t, "REC-1002", next.ReceiptNo)
	})
}

func TestService_Record_noEmailOnFile(t *testing.T) {
	mailSvc := &fakeMailService{}
	svc := setup(t, mailSvc)
	addStudent(t, svc, record.Student{ID: "STU-101", Name: "No Mail"})

	if _, err := svc.Record(NewPayment{
		StudentID: "STU-101", Amount: 500, Mode: record.ModeCheque,
		PeriodFrom: "2024-06-01", PeriodTo: "2024-06-30",
	}); err != nil {
		t.Fatalf("Record() failed: %v", err)
	}
	assert.Empty(t, mailSvc.sent)
}

func TestService_QueryByStudent(t *testing.T) {
	svc := setup(t, nil)
	addStudent(t, svc, record.Student{ID: "STU-101", Name: "A"})
	addStudent(t, svc, record.Student{ID: "STU-102", Name: "B"})

	for _, sid := range []string{"STU-101", "STU-102", "STU-101"} {
		if _, err := svc.Record(NewPayment{
			StudentID: sid, Amount: 100, Mode: record.ModeCash,
			PeriodFrom: "2024-06-01", PeriodTo: "2024-06-30",
		}); err != nil {
			t.Fatalf("Record() failed: %v", err)
		}
	}
	assert.Len(t, svc.QueryByStudent("STU-101"), 2)
	assert.Len(t, svc.QueryByStudent("STU-102"), 1)
	assert.Empty(t, svc.QueryByStudent("STU-999"))
}

func TestService_BuildReceipt(t *testing.T) {
	svc := setup(t, nil)
	mockNow(t, "2024-06-10")
	addStudent(t, svc, record.Student{ID: "STU-101", Name: "Amit Kumar", Course: "IIT Foundation"})

	pmt, err := svc.Record(NewPayment{
		StudentID: "STU-101", Amount: 125000, Mode: record.ModeCash,
		PeriodFrom: "2024-06-01", PeriodTo: "2025-05-31",
	})
	if err != nil {
		t.Fatalf("Record() failed: %v", err)
	}

	rcpt, err := svc.BuildReceipt(pmt.ID)
	if err != nil {
		t.Fatalf("BuildReceipt() failed: %v", err)
	}
	assert.Equal(t, pmt, rcpt.Payment)
	assert.Equal(t, "Amit Kumar", rcpt.Student.Name)
	assert.Equal(t, "EduNexus Institute", rcpt.Institute.Name)
	assert.Equal(t, "₹1,25,000.00", rcpt.AmountFormatted)
	assert.Equal(t, "125000Only", rcpt.AmountInWords) // words stop at five digits

	t.Run("dangling student renders empty", func(t *testing.T) {
		orphan, err := svc.Record(NewPayment{
			StudentID: "STU-999", Amount: 100, Mode: record.ModeCash,
			PeriodFrom: "2024-06-01", PeriodTo: "2024-06-30",
		})
		if err != nil {
			t.Fatalf("Record() failed: %v", err)
		}
		rcpt, err := svc.BuildReceipt(orphan.ID)
		if err != nil {
			t.Fatalf("BuildReceipt() failed: %v", err)
		}
		assert.Equal(t, record.Student{}, rcpt.Student)
	})

	t.Run("unknown payment", func(t *testing.T) {
		_, err := svc.BuildReceipt("nope")
		assert.Equal(t, ErrNotFound, err)
	})
}
