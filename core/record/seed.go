package record

// Seed returns the hard-coded starting document used when no document has
// been persisted yet (or when the persisted one cannot be read).
func Seed() *Document {
	return &Document{
		Students: []Student{},
		Teachers: []Teacher{
			{ID: "T1", Name: "John Doe", Email: "john@edu.com", Mobile: "9876543210", Subjects: []string{"Maths", "Physics"}},
		},
		Batches: []Batch{
			{ID: "B1", Name: "Morning Batch A", Course: "IIT Foundation", TeacherID: "T1", Timing: "08:00 AM - 10:00 AM"},
		},
		Payments:   []Payment{},
		Attendance: []Attendance{},
		Users: []User{
			{ID: RootAdminID, Username: "admin", Password: "admin123", Role: RoleAdmin, Name: "Main Admin", Permissions: FullAccess()},
			{ID: "U2", Username: "teacher", Password: "teacher123", Role: RoleTeacher, Name: "Prof. John", TeacherID: "T1", Permissions: defaultTeacherTemplate()},
		},
		Institute:    defaultInstitute(),
		RoleDefaults: defaultRoleTemplates(),
		Meta: Meta{
			LastReceiptNo: 1000,
			LastStudentID: 100,
		},
	}
}

func defaultInstitute() *Institute {
	return &Institute{
		Name:    "EduNexus Institute",
		Tagline: "Professional Institute Management",
		Address: "1st Floor, Knowledge Park, Main Road",
		Phone:   "9876500000",
		Email:   "contact@edunexus.local",
	}
}

func defaultTeacherTemplate() *Permissions {
	return &Permissions{
		Dashboard:  true,
		Students:   true,
		Batches:    true,
		Attendance: true,
	}
}

func defaultStudentTemplate() *Permissions {
	return &Permissions{
		Dashboard:  true,
		Attendance: true,
		Fees:       true,
	}
}

func defaultRoleTemplates() map[string]*Permissions {
	return map[string]*Permissions{
		RoleTeacher: defaultTeacherTemplate(),
		RoleStudent: defaultStudentTemplate(),
	}
}
