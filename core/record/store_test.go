package record

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestStore(t *testing.T) (*Store, *MemSlot) {
	t.Helper()
	slot := NewMemSlot()
	return NewStore(slot), slot
}

func TestStore_Load_seedsWhenEmpty(t *testing.T) {
	store, _ := newTestStore(t)

	doc := store.Load()

	assert.Equal(t, Seed(), doc)
	assert.Equal(t, 1000, doc.Meta.LastReceiptNo)
	assert.Equal(t, 100, doc.Meta.LastStudentID)
	if _, ok := doc.UserByUsername("admin"); !ok {
		t.Error("seed document is missing the admin user")
	}
	if _, ok := doc.TeacherByID("T1"); !ok {
		t.Error("seed document is missing the sample teacher")
	}
	if _, ok := doc.BatchByID("B1"); !ok {
		t.Error("seed document is missing the sample batch")
	}
}

func TestStore_Load_seedsOnCorruptSlot(t *testing.T) {
	store, slot := newTestStore(t)
	if err := slot.Write(Key, []byte("{not json!")); err != nil {
		t.Fatalf("slot.Write() failed: %v", err)
	}

	assert.Equal(t, Seed(), store.Load())
}

func TestStore_Load_backfillsMissingFields(t *testing.T) {
	// a document persisted by an older version: no institute, no users,
	// no roleDefaults
	old := map[string]interface{}{
		"students": []map[string]interface{}{
			{"id": "STU-101", "name": "Asha Rao", "mobile": "9000000001", "course": "JEE", "batchId": "B1",
				"admissionDate": "2023-06-01", "status": "Active", "totalFees": 50000},
		},
		"teachers":   []interface{}{},
		"batches":    []interface{}{},
		"payments":   []interface{}{},
		"attendance": []interface{}{},
		"meta":       map[string]int{"lastReceiptNo": 1042, "lastStudentId": 101},
	}
	data, err := json.Marshal(old)
	if err != nil {
		t.Fatalf("json.Marshal() failed: %v", err)
	}

	store, slot := newTestStore(t)
	if err := slot.Write(Key, data); err != nil {
		t.Fatalf("slot.Write() failed: %v", err)
	}

	doc := store.Load()

	// backfilled
	assert.Equal(t, defaultInstitute(), doc.Institute)
	assert.Equal(t, defaultRoleTemplates(), doc.RoleDefaults)
	assert.Equal(t, Seed().Users, doc.Users)

	// the rest preserved
	assert.Len(t, doc.Students, 1)
	assert.Equal(t, "STU-101", doc.Students[0].ID)
	assert.Equal(t, "2023-06-01", doc.Students[0].AdmissionDate)
	assert.Equal(t, Meta{LastReceiptNo: 1042, LastStudentID: 101}, doc.Meta)
}

func TestStore_Load_backfillsUserPermissions(t *testing.T) {
	doc := Seed()
	doc.Users = append(doc.Users, User{ID: "U3", Username: "newbie", Role: RoleStudent, Name: "New Student"})
	doc.Users[0].Permissions = nil // admin persisted without permissions
	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("json.Marshal() failed: %v", err)
	}

	store, slot := newTestStore(t)
	if err := slot.Write(Key, data); err != nil {
		t.Fatalf("slot.Write() failed: %v", err)
	}

	loaded := store.Load()

	admin, _ := loaded.UserByID(RootAdminID)
	assert.Equal(t, FullAccess(), admin.Permissions)

	newbie, _ := loaded.UserByID("U3")
	assert.Equal(t, defaultStudentTemplate(), newbie.Permissions)

	// users persisted with permissions keep them untouched
	teacher, _ := loaded.UserByID("U2")
	assert.Equal(t, defaultTeacherTemplate(), teacher.Permissions)
}

func TestStore_persistLoadRoundTrip(t *testing.T) {
	store, _ := newTestStore(t)

	doc := store.Load()
	doc.Students = append(doc.Students, Student{
		ID: "STU-101", Name: "Asha Rao", Mobile: "9000000001", Course: "JEE",
		BatchID: "B1", AdmissionDate: "2023-06-01", Status: StatusActive, TotalFees: 50000,
	})
	if err := store.Persist(doc); err != nil {
		t.Fatalf("Persist() failed: %v", err)
	}

	assert.Equal(t, doc, store.Load())
}

func TestStore_GenerateStudentID(t *testing.T) {
	store, _ := newTestStore(t)

	// seed: lastStudentId=100
	id, err := store.GenerateStudentID()
	if err != nil {
		t.Fatalf("GenerateStudentID() failed: %v", err)
	}
	assert.Equal(t, "STU-101", id)

	id, err = store.GenerateStudentID()
	if err != nil {
		t.Fatalf("GenerateStudentID() failed: %v", err)
	}
	assert.Equal(t, "STU-102", id)
}

func TestStore_GenerateReceiptNo(t *testing.T) {
	store, _ := newTestStore(t)

	// seed: lastReceiptNo=1000
	no, err := store.GenerateReceiptNo()
	if err != nil {
		t.Fatalf("GenerateReceiptNo() failed: %v", err)
	}
	assert.Equal(t, "REC-1001", no)
}

func TestStore_countersAreMonotonicAndGapFree(t *testing.T) {
	store, _ := newTestStore(t)
	n := 25

	before := store.Load().Meta

	prevStudent, prevReceipt := "", ""
	for i := 0; i < n; i++ {
		sid, err := store.GenerateStudentID()
		if err != nil {
			t.Fatalf("GenerateStudentID() failed: %v", err)
		}
		rno, err := store.GenerateReceiptNo()
		if err != nil {
			t.Fatalf("GenerateReceiptNo() failed: %v", err)
		}
		if sid <= prevStudent {
			t.Errorf("student ids not strictly increasing: %s after %s", sid, prevStudent)
		}
		if rno <= prevReceipt {
			t.Errorf("receipt numbers not strictly increasing: %s after %s", rno, prevReceipt)
		}
		prevStudent, prevReceipt = sid, rno
	}

	after := store.Load().Meta
	assert.Equal(t, before.LastStudentID+n, after.LastStudentID)
	assert.Equal(t, before.LastReceiptNo+n, after.LastReceiptNo)
	assert.Equal(t, fmt.Sprintf("STU-%d", after.LastStudentID), prevStudent)
	assert.Equal(t, fmt.Sprintf("REC-%d", after.LastReceiptNo), prevReceipt)
}

func TestStore_countersSurviveAbandonedSubmissions(t *testing.T) {
	store, _ := newTestStore(t)

	// an id is generated but the admission form is never submitted
	if _, err := store.GenerateStudentID(); err != nil {
		t.Fatalf("GenerateStudentID() failed: %v", err)
	}

	id, err := store.GenerateStudentID()
	if err != nil {
		t.Fatalf("GenerateStudentID() failed: %v", err)
	}
	assert.Equal(t, "STU-102", id) // 101 is burned, never reissued
}

func TestNewTeacherID_NewBatchID(t *testing.T) {
	doc := Seed()
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		tid := NewTeacherID(doc)
		assert.Regexp(t, `^TCH-\d{3}$`, tid)
		doc.Teachers = append(doc.Teachers, Teacher{ID: tid})
		if seen[tid] {
			t.Errorf("duplicate teacher id issued: %s", tid)
		}
		seen[tid] = true

		bid := NewBatchID(doc)
		assert.Regexp(t, `^BCH-\d{3}$`, bid)
		doc.Batches = append(doc.Batches, Batch{ID: bid})
		if seen[bid] {
			t.Errorf("duplicate batch id issued: %s", bid)
		}
		seen[bid] = true
	}
}

func TestStore_ExportSnapshot(t *testing.T) {
	origNow := NowFunc
	NowFunc = func() time.Time { return time.Date(2024, time.March, 5, 10, 0, 0, 0, time.UTC) }
	defer func() { NowFunc = origNow }()

	store, _ := newTestStore(t)

	// empty slot: snapshot of the seed
	data, filename, err := store.ExportSnapshot()
	if err != nil {
		t.Fatalf("ExportSnapshot() failed: %v", err)
	}
	assert.Equal(t, "backup_2024-03-05.json", filename)

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("snapshot is not valid JSON: %v", err)
	}

	// after a persist, the snapshot is the raw slot content
	if err := store.Persist(Seed()); err != nil {
		t.Fatalf("Persist() failed: %v", err)
	}
	data, _, err = store.ExportSnapshot()
	if err != nil {
		t.Fatalf("ExportSnapshot() failed: %v", err)
	}
	raw, _ := store.slot.Read(Key)
	assert.Equal(t, raw, data)
}

func TestStore_SetRoleDefaults(t *testing.T) {
	store, _ := newTestStore(t)
	store.Persist(Seed())

	perms := Permissions{Dashboard: true, Reports: true}
	if err := store.SetRoleDefaults(RoleTeacher, perms); err != nil {
		t.Fatalf("SetRoleDefaults() failed: %v", err)
	}

	assert.Equal(t, &perms, store.Load().RoleDefaults[RoleTeacher])

	// not retroactive: existing teacher account unchanged
	usr, _ := store.Load().UserByID("U2")
	assert.Equal(t, defaultTeacherTemplate(), usr.Permissions)

	// the ADMIN template is fixed
	if err := store.SetRoleDefaults(RoleAdmin, perms); err == nil {
		t.Error("SetRoleDefaults(ADMIN) should be rejected")
	}
}

func TestStore_ApplyTemplate(t *testing.T) {
	store, _ := newTestStore(t)

	tests := []struct {
		name string
		role string
		want *Permissions
	}{
		{"admin gets the fixed full-access template", RoleAdmin, FullAccess()},
		{"teacher gets the stored template", RoleTeacher, defaultTeacherTemplate()},
		{"student gets the stored template", RoleStudent, defaultStudentTemplate()},
		{"unknown role gets no access", "JANITOR", &Permissions{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, store.ApplyTemplate(tt.role))
		})
	}

	// the helper returns a copy; mutating it must not touch the template
	perms := store.ApplyTemplate(RoleTeacher)
	perms.Settings = true
	assert.Equal(t, defaultTeacherTemplate(), store.ApplyTemplate(RoleTeacher))
}

func TestStore_Update_persistsSynchronously(t *testing.T) {
	store, slot := newTestStore(t)

	err := store.Update(func(doc *Document) error {
		doc.Institute.Name = "Renamed Institute"
		return nil
	})
	if err != nil {
		t.Fatalf("Update() failed: %v", err)
	}

	raw, err := slot.Read(Key)
	if err != nil {
		t.Fatalf("slot.Read() failed: %v", err)
	}
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("json.Unmarshal() failed: %v", err)
	}
	assert.Equal(t, "Renamed Institute", doc.Institute.Name)
}

func TestStore_Update_failedMutationDoesNotPersist(t *testing.T) {
	store, slot := newTestStore(t)

	wantErr := assert.AnError
	err := store.Update(func(doc *Document) error {
		doc.Institute.Name = "Should Not Stick"
		return wantErr
	})
	assert.Equal(t, wantErr, err)

	if _, err := slot.Read(Key); err != ErrSlotEmpty {
		t.Errorf("slot should still be empty, got err = %v", err)
	}
}
