package payment

import (
	"fmt"
	"net/mail"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/trezcool/edunexus/core"
	"github.com/trezcool/edunexus/core/record"
)

var ErrNotFound = errors.New("payment not found")

// NewPayment contains information needed to record a fee payment.
// The receipt number and date are stamped by the store, never submitted.
type NewPayment struct {
	StudentID  string  `json:"studentId" validate:"required"`
	Amount     float64 `json:"amount" validate:"required,gt=0"`
	Mode       string  `json:"mode" validate:"required,oneof=CASH UPI/ONLINE CHEQUE"`
	PeriodFrom string  `json:"periodFrom" validate:"required"`
	PeriodTo   string  `json:"periodTo" validate:"required"`
	Remarks    string  `json:"remarks"`
}

func (np *NewPayment) Validate(validate *validator.Validate) error {
	np.StudentID = core.CleanString(np.StudentID)
	np.Mode = core.CleanString(np.Mode)
	np.PeriodFrom = core.CleanString(np.PeriodFrom)
	np.PeriodTo = core.CleanString(np.PeriodTo)
	np.Remarks = core.CleanString(np.Remarks)
	return validate.Struct(np)
}

type Service struct {
	store   *record.Store
	mailSvc core.EmailService
}

// NewService wires the payment service; mailSvc may be nil when receipt
// emailing is not configured.
func NewService(store *record.Store, mailSvc core.EmailService) *Service {
	return &Service{store: store, mailSvc: mailSvc}
}

// Record creates one immutable Payment: a random internal id, a freshly
// generated sequential receipt number and today's date. When the student
// has an email address on file, the receipt is mailed out.
func (svc *Service) Record(np NewPayment) (record.Payment, error) {
	receiptNo, err := svc.store.GenerateReceiptNo()
	if err != nil {
		return record.Payment{}, errors.Wrap(err, "generating receipt number")
	}

	pmt := record.Payment{
		ID:         uuid.New().String(),
		ReceiptNo:  receiptNo,
		StudentID:  np.StudentID,
		Amount:     np.Amount,
		Date:       record.DateStamp(record.NowFunc()),
		Mode:       np.Mode,
		PeriodFrom: np.PeriodFrom,
		PeriodTo:   np.PeriodTo,
		Remarks:    np.Remarks,
	}

	err = svc.store.Update(func(doc *record.Document) error {
		doc.Payments = append(doc.Payments, pmt)
		return nil
	})
	if err != nil {
		return record.Payment{}, err
	}

	svc.emailReceipt(pmt)
	return pmt, nil
}

func (svc *Service) Get(id string) (record.Payment, error) {
	if pmt, ok := svc.store.Load().PaymentByID(id); ok {
		return pmt, nil
	}
	return record.Payment{}, ErrNotFound
}

func (svc *Service) QueryAll() []record.Payment {
	return svc.store.Load().Payments
}

// QueryByStudent returns a student's payment history.
func (svc *Service) QueryByStudent(studentID string) []record.Payment {
	payments := make([]record.Payment, 0)
	for _, pmt := range svc.store.Load().Payments {
		if pmt.StudentID == studentID {
			payments = append(payments, pmt)
		}
	}
	return payments
}

// Receipt is the printable rendering of one Payment joined with its
// Student and the Institute profile. Purely presentational.
type Receipt struct {
	Payment         record.Payment   `json:"payment"`
	Student         record.Student   `json:"student"`
	Institute       record.Institute `json:"institute"`
	AmountFormatted string           `json:"amountFormatted"`
	AmountInWords   string           `json:"amountInWords"`
}

// BuildReceipt assembles the receipt for one payment. A dangling student
// reference renders as an empty student, not an error.
func (svc *Service) BuildReceipt(paymentID string) (Receipt, error) {
	doc := svc.store.Load()
	pmt, ok := doc.PaymentByID(paymentID)
	if !ok {
		return Receipt{}, ErrNotFound
	}
	std, _ := doc.StudentByID(pmt.StudentID)
	return Receipt{
		Payment:         pmt,
		Student:         std,
		Institute:       *doc.Institute,
		AmountFormatted: core.FormatCurrency(pmt.Amount),
		AmountInWords:   core.AmountInWords(int(pmt.Amount)),
	}, nil
}

func (svc *Service) emailReceipt(pmt record.Payment) {
	if svc.mailSvc == nil {
		return
	}
	doc := svc.store.Load()
	std, ok := doc.StudentByID(pmt.StudentID)
	if !ok || std.Email == "" {
		return
	}

	body := fmt.Sprintf(
		"Dear %s,\n\nWe have received your payment of %s (%s) towards %s.\n"+
			"Receipt No: %s\nPeriod: %s to %s\nDate: %s\n\nRegards,\n%s",
		std.Name, core.FormatCurrency(pmt.Amount), pmt.Mode, std.Course,
		pmt.ReceiptNo, pmt.PeriodFrom, pmt.PeriodTo, pmt.Date, doc.Institute.Name,
	)
	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:      []mail.Address{{Name: std.Name, Address: std.Email}},
		Subject: fmt.Sprintf("Payment Receipt %s", pmt.ReceiptNo),
		BodyStr: body,
	})
}
