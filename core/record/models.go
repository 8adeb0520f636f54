package record

import "time"

// Roles
const (
	RoleAdmin   = "ADMIN"
	RoleTeacher = "TEACHER"
	RoleStudent = "STUDENT"
)

// Payment modes
const (
	ModeCash   = "CASH"
	ModeUPI    = "UPI/ONLINE"
	ModeCheque = "CHEQUE"
)

// Student statuses
const (
	StatusActive   = "Active"
	StatusInactive = "Inactive"
)

// Attendance statuses
const (
	Present = "Present"
	Absent  = "Absent"
)

// RootAdminID is the reserved id of the seed admin account; it can never be deleted.
const RootAdminID = "U1"

// DateLayout is the wire format of all dates in the document.
const DateLayout = "2006-01-02"

var (
	AllRoles = []string{RoleAdmin, RoleTeacher, RoleStudent}
	AllModes = []string{ModeCash, ModeUPI, ModeCheque}

	// NowFunc stamps admission/payment/backup dates. Mockable.
	NowFunc = time.Now
)

// DateStamp renders t in the document's date format.
func DateStamp(t time.Time) string {
	return t.Format(DateLayout)
}

type (
	// Student is one admitted student. Identity (ID) and AdmissionDate are
	// immutable after admission; students are only ever status-toggled,
	// never deleted.
	Student struct {
		ID            string  `json:"id"`
		Name          string  `json:"name"`
		Mobile        string  `json:"mobile"`
		Email         string  `json:"email,omitempty"`
		GuardianName  string  `json:"guardianName,omitempty"`
		Course        string  `json:"course"`
		BatchID       string  `json:"batchId"`
		AdmissionDate string  `json:"admissionDate"`
		Status        string  `json:"status"`
		TotalFees     float64 `json:"totalFees"`
	}

	Teacher struct {
		ID       string   `json:"id"`
		Name     string   `json:"name"`
		Email    string   `json:"email"`
		Mobile   string   `json:"mobile"`
		Subjects []string `json:"subjects"`
	}

	// Batch is a recurring scheduled class group. TeacherID is a soft
	// reference; Timing is either free text or the structured
	// "Day, Day | HH:MM - HH:MM" encoding (see batch.ParseTiming).
	Batch struct {
		ID        string `json:"id"`
		Name      string `json:"name"`
		Course    string `json:"course"`
		TeacherID string `json:"teacherId"`
		Timing    string `json:"timing"`
	}

	// Payment is one fee receipt. Immutable once recorded.
	Payment struct {
		ID         string  `json:"id"`
		ReceiptNo  string  `json:"receiptNo"`
		StudentID  string  `json:"studentId"`
		Amount     float64 `json:"amount"`
		Date       string  `json:"date"`
		Mode       string  `json:"mode"`
		PeriodFrom string  `json:"periodFrom"`
		PeriodTo   string  `json:"periodTo"`
		Remarks    string  `json:"remarks,omitempty"`
	}

	Attendance struct {
		ID        string `json:"id"`
		Date      string `json:"date"`
		BatchID   string `json:"batchId"`
		StudentID string `json:"studentId"`
		Status    string `json:"status"`
	}

	// Permissions holds one visibility flag per screen. The flags gate
	// navigation only; they are not an authorization boundary.
	Permissions struct {
		Dashboard  bool `json:"dashboard"`
		Students   bool `json:"students"`
		Teachers   bool `json:"teachers"`
		Batches    bool `json:"batches"`
		Attendance bool `json:"attendance"`
		Fees       bool `json:"fees"`
		Reports    bool `json:"reports"`
		Settings   bool `json:"settings"`
	}

	// User is a login account. Password is stored and compared in plain
	// text unless hashing is enabled (see user.Verifier).
	User struct {
		ID          string       `json:"id"`
		Username    string       `json:"username"`
		Password    string       `json:"password,omitempty"`
		Role        string       `json:"role"`
		Name        string       `json:"name"`
		Permissions *Permissions `json:"permissions,omitempty"`
		StudentID   string       `json:"studentId,omitempty"`
		TeacherID   string       `json:"teacherId,omitempty"`
	}

	Institute struct {
		Name    string `json:"name"`
		Tagline string `json:"tagline"`
		Address string `json:"address"`
		Phone   string `json:"phone"`
		Email   string `json:"email"`
		Logo    string `json:"logo,omitempty"`
	}

	Meta struct {
		LastReceiptNo int `json:"lastReceiptNo"`
		LastStudentID int `json:"lastStudentId"`
	}

	// Document is the whole persisted dataset. Field names and nesting are
	// frozen for backup/restore compatibility.
	Document struct {
		Students     []Student               `json:"students"`
		Teachers     []Teacher               `json:"teachers"`
		Batches      []Batch                 `json:"batches"`
		Payments     []Payment               `json:"payments"`
		Attendance   []Attendance            `json:"attendance"`
		Users        []User                  `json:"users"`
		Institute    *Institute              `json:"institute"`
		RoleDefaults map[string]*Permissions `json:"roleDefaults"`
		Meta         Meta                    `json:"meta"`
	}
)

// FullAccess is the fixed template always applied to ADMIN accounts.
func FullAccess() *Permissions {
	return &Permissions{
		Dashboard:  true,
		Students:   true,
		Teachers:   true,
		Batches:    true,
		Attendance: true,
		Fees:       true,
		Reports:    true,
		Settings:   true,
	}
}

// Lookup helpers. Soft references are never validated at write time; a
// dangling id resolves to ok=false, never an error.

func (d *Document) StudentByID(id string) (Student, bool) {
	for _, s := range d.Students {
		if s.ID == id {
			return s, true
		}
	}
	return Student{}, false
}

func (d *Document) TeacherByID(id string) (Teacher, bool) {
	for _, t := range d.Teachers {
		if t.ID == id {
			return t, true
		}
	}
	return Teacher{}, false
}

func (d *Document) BatchByID(id string) (Batch, bool) {
	for _, b := range d.Batches {
		if b.ID == id {
			return b, true
		}
	}
	return Batch{}, false
}

func (d *Document) PaymentByID(id string) (Payment, bool) {
	for _, p := range d.Payments {
		if p.ID == id {
			return p, true
		}
	}
	return Payment{}, false
}

func (d *Document) UserByID(id string) (User, bool) {
	for _, u := range d.Users {
		if u.ID == id {
			return u, true
		}
	}
	return User{}, false
}

func (d *Document) UserByUsername(uname string) (User, bool) {
	for _, u := range d.Users {
		if u.Username == uname {
			return u, true
		}
	}
	return User{}, false
}
