package user

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trezcool/edunexus/core/record"
)

func setup(t *testing.T) *Service {
	t.Helper()
	return NewService(record.NewStore(record.NewMemSlot()), PlainVerifier{})
}

func TestService_Create_permissions(t *testing.T) {
	svc := setup(t)

	t.Run("admin gets full access regardless of input", func(t *testing.T) {
		none := record.Permissions{}
		usr, err := svc.Create(NewUser{
			Username: "boss", Password: "secret1", Name: "Boss",
			Role: record.RoleAdmin, Permissions: &none,
		})
		if err != nil {
			t.Fatalf("Create() failed: %v", err)
		}
		assert.Equal(t, record.FullAccess(), usr.Permissions)
	})

	t.Run("submitted checklist wins over template", func(t *testing.T) {
		perms := record.Permissions{Dashboard: true, Reports: true}
		usr, err := svc.Create(NewUser{
			Username: "marker", Password: "secret1", Name: "Marker",
			Role: record.RoleTeacher, Permissions: &perms,
		})
		if err != nil {
			t.Fatalf("Create() failed: %v", err)
		}
		assert.Equal(t, &perms, usr.Permissions)
	})

	t.Run("omitted checklist falls back to the role template", func(t *testing.T) {
		usr, err := svc.Create(NewUser{
			Username: "newkid", Password: "secret1", Name: "New Kid",
			Role: record.RoleStudent,
		})
		if err != nil {
			t.Fatalf("Create() failed: %v", err)
		}
		want := svc.store.ApplyTemplate(record.RoleStudent)
		assert.Equal(t, want, usr.Permissions)
	})
}

func TestService_Delete(t *testing.T) {
	svc := setup(t)

	t.Run("root admin is protected", func(t *testing.T) {
		before := len(svc.QueryAll())
		err := svc.Delete(record.RootAdminID)
		assert.Equal(t, ErrRootAdminProtected, err)
		assert.Len(t, svc.QueryAll(), before)
	})

	t.Run("regular accounts are removed", func(t *testing.T) {
		usr, err := svc.Create(NewUser{
			Username: "victim", Password: "secret1", Name: "Victim", Role: record.RoleStudent,
		})
		if err != nil {
			t.Fatalf("Create() failed: %v", err)
		}
		if err = svc.Delete(usr.ID); err != nil {
			t.Fatalf("Delete() failed: %v", err)
		}
		_, err = svc.Get(usr.ID)
		assert.Equal(t, ErrNotFound, err)
	})

	t.Run("unknown id", func(t *testing.T) {
		assert.Equal(t, ErrNotFound, svc.Delete("U-nope"))
	})
}

func TestService_Authenticate(t *testing.T) {
	svc := setup(t)

	tests := []struct {
		name    string
		creds   Credentials
		wantErr error
	}{
		{"seeded admin", Credentials{Username: "admin", Password: "admin123"}, nil},
		{"seeded teacher", Credentials{Username: "teacher", Password: "teacher123"}, nil},
		{"wrong password", Credentials{Username: "admin", Password: "letmein"}, ErrAuthenticationFailed},
		{"unknown username", Credentials{Username: "ghost", Password: "admin123"}, ErrAuthenticationFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			usr, err := svc.Authenticate(tt.creds)
			assert.Equal(t, tt.wantErr, err)
			if tt.wantErr == nil {
				assert.Equal(t, tt.creds.Username, usr.Username)
			}
		})
	}
}

func TestService_Authenticate_bcrypt(t *testing.T) {
	svc := NewService(record.NewStore(record.NewMemSlot()), BcryptVerifier{})

	usr, err := svc.Create(NewUser{
		Username: "hashed", Password: "secret1", Name: "Hashed", Role: record.RoleStudent,
	})
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	assert.NotEqual(t, "secret1", usr.Password)

	_, err = svc.Authenticate(Credentials{Username: "hashed", Password: "secret1"})
	assert.NoError(t, err)
	_, err = svc.Authenticate(Credentials{Username: "hashed", Password: "wrong"})
	assert.Equal(t, ErrAuthenticationFailed, err)
}

func TestService_Update(t *testing.T) {
	svc := setup(t)

	usr, err := svc.Create(NewUser{
		Username: "mutable", Password: "secret1", Name: "Before", Role: record.RoleTeacher,
	})
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	tid := "T1"
	updated, err := svc.Update(usr.ID, UpdateUser{Name: "After", TeacherID: &tid})
	if err != nil {
		t.Fatalf("Update() failed: %v", err)
	}
	assert.Equal(t, usr.ID, updated.ID)
	assert.Equal(t, record.RoleTeacher, updated.Role)
	assert.Equal(t, "After", updated.Name)
	assert.Equal(t, "T1", updated.TeacherID)

	t.Run("admin permissions are immutable", func(t *testing.T) {
		none := record.Permissions{}
		adm, err := svc.Update(record.RootAdminID, UpdateUser{Permissions: &none})
		if err != nil {
			t.Fatalf("Update() failed: %v", err)
		}
		assert.Equal(t, record.FullAccess(), adm.Permissions)
	})
}
