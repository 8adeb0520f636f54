package record

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"sync"

	"github.com/pkg/errors"
)

// Key is the fixed storage slot key the whole dataset lives under.
const Key = "EDUNEXUS_ERP_DB"

// ID prefixes
const (
	studentIDPrefix = "STU-"
	receiptNoPrefix = "REC-"
	teacherIDPrefix = "TCH-"
	batchIDPrefix   = "BCH-"
)

// Store is the single source of truth for the whole dataset: it loads the
// document (defaulting and backfilling as needed), funnels every mutation,
// and re-persists the document in full, synchronously, after each one.
//
// The runtime model is single-user cooperative; the mutex only guards
// against accidental concurrent use, it is not a multi-user facility.
type Store struct {
	mutex sync.Mutex
	slot  Slot
}

func NewStore(slot Slot) *Store {
	return &Store{slot: slot}
}

// Load returns the persisted document, the seed document when nothing has
// been persisted yet, and a field-by-field backfilled document when the
// persisted one predates newer fields. It never fails: an unreadable or
// corrupted slot degrades to the seed document.
func (s *Store) Load() *Document {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.load()
}

func (s *Store) load() *Document {
	data, err := s.slot.Read(Key)
	if err != nil {
		return Seed()
	}

	doc := new(Document)
	if err := json.Unmarshal(data, doc); err != nil {
		return Seed()
	}
	backfill(doc)
	return doc
}

// backfill merges current defaults into a document persisted by an older
// version, without discarding anything it already holds.
func backfill(doc *Document) {
	if doc.Students == nil {
		doc.Students = []Student{}
	}
	if doc.Teachers == nil {
		doc.Teachers = []Teacher{}
	}
	if doc.Batches == nil {
		doc.Batches = []Batch{}
	}
	if doc.Payments == nil {
		doc.Payments = []Payment{}
	}
	if doc.Attendance == nil {
		doc.Attendance = []Attendance{}
	}
	if doc.Institute == nil {
		doc.Institute = defaultInstitute()
	}
	if doc.RoleDefaults == nil {
		doc.RoleDefaults = defaultRoleTemplates()
	}
	if doc.Users == nil {
		doc.Users = Seed().Users
	}
	for i, usr := range doc.Users {
		if usr.Permissions == nil {
			doc.Users[i].Permissions = TemplateFor(doc, usr.Role)
		}
	}
}

// Persist serializes the full document and overwrites the single storage
// slot. There is no partial persistence and no batching.
func (s *Store) Persist(doc *Document) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.persist(doc)
}

func (s *Store) persist(doc *Document) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return errors.Wrap(err, "serializing document")
	}
	if err := s.slot.Write(Key, data); err != nil {
		return errors.Wrap(err, "persisting document")
	}
	return nil
}

// Update loads the document, applies fn and re-persists. All entity
// mutations funnel through here.
func (s *Store) Update(fn func(doc *Document) error) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	doc := s.load()
	if err := fn(doc); err != nil {
		return err
	}
	return s.persist(doc)
}

// GenerateStudentID increments the student counter, persists and returns
// the next sequential id, eg. "STU-101". Issued values are never reused,
// even when the submission they were generated for is abandoned.
func (s *Store) GenerateStudentID() (string, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	doc := s.load()
	doc.Meta.LastStudentID++
	if err := s.persist(doc); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%d", studentIDPrefix, doc.Meta.LastStudentID), nil
}

// GenerateReceiptNo increments the receipt counter, persists and returns
// the next sequential receipt number, eg. "REC-1001".
func (s *Store) GenerateReceiptNo() (string, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	doc := s.load()
	doc.Meta.LastReceiptNo++
	if err := s.persist(doc); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%d", receiptNoPrefix, doc.Meta.LastReceiptNo), nil
}

// NewTeacherID returns a short prefixed id, eg. "TCH-347", re-rolling the
// random draw until it is unique among the existing teachers.
func NewTeacherID(doc *Document) string {
	for {
		id := fmt.Sprintf("%s%d", teacherIDPrefix, 100+rand.Intn(900))
		if _, ok := doc.TeacherByID(id); !ok {
			return id
		}
	}
}

// NewBatchID returns a short prefixed id, eg. "BCH-512", unique among the
// existing batches.
func NewBatchID(doc *Document) string {
	for {
		id := fmt.Sprintf("%s%d", batchIDPrefix, 100+rand.Intn(900))
		if _, ok := doc.BatchByID(id); !ok {
			return id
		}
	}
}

// ExportSnapshot returns the raw persisted JSON and a dated backup file
// name. Pure read; when nothing has been persisted yet it serializes the
// seed document.
func (s *Store) ExportSnapshot() ([]byte, string, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	filename := fmt.Sprintf("backup_%s.json", DateStamp(NowFunc()))

	data, err := s.slot.Read(Key)
	if err != nil {
		if err != ErrSlotEmpty {
			return nil, "", errors.Wrap(err, "reading slot")
		}
		if data, err = json.Marshal(Seed()); err != nil {
			return nil, "", errors.Wrap(err, "serializing seed document")
		}
	}
	return data, filename, nil
}

// SetRoleDefaults replaces the stored permission template for a role.
// Existing users keep the permissions they were created with.
func (s *Store) SetRoleDefaults(role string, perms Permissions) error {
	if role == RoleAdmin {
		return errors.New("the ADMIN template is fixed")
	}
	return s.Update(func(doc *Document) error {
		doc.RoleDefaults[role] = &perms
		return nil
	})
}

// ApplyTemplate returns a fresh permission set for a draft account of the
// given role: the fixed full-access template for ADMIN, the stored role
// template otherwise. Pure helper; nothing is persisted.
func (s *Store) ApplyTemplate(role string) *Permissions {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return TemplateFor(s.load(), role)
}

// TemplateFor is ApplyTemplate against an already-loaded document.
func TemplateFor(doc *Document, role string) *Permissions {
	if role == RoleAdmin {
		return FullAccess()
	}
	if tmpl, ok := doc.RoleDefaults[role]; ok && tmpl != nil {
		perms := *tmpl
		return &perms
	}
	// unknown or unset role template: fall back to the built-in defaults
	if tmpl, ok := defaultRoleTemplates()[role]; ok {
		return tmpl
	}
	return &Permissions{}
}
