package user

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/trezcool/edunexus/core/record"
)

var (
	ErrNotFound             = errors.New("user not found")
	ErrAuthenticationFailed = errors.New("invalid credentials")
	ErrRootAdminProtected   = errors.New("the root admin account cannot be deleted")
)

type Service struct {
	store    *record.Store
	verifier Verifier
}

func NewService(store *record.Store, verifier Verifier) *Service {
	return &Service{store: store, verifier: verifier}
}

// Create adds a new account. ADMIN accounts always get the fixed
// full-access template; other roles get the submitted checklist or, when
// none was submitted, their role's stored default template.
func (svc *Service) Create(nu NewUser) (record.User, error) {
	pwd, err := svc.verifier.Hash(nu.Password)
	if err != nil {
		return record.User{}, errors.Wrap(err, "hashing password")
	}

	usr := record.User{
		ID:        "U-" + uuid.New().String()[:8],
		Username:  nu.Username,
		Password:  pwd,
		Role:      nu.Role,
		Name:      nu.Name,
		StudentID: nu.StudentID,
		TeacherID: nu.TeacherID,
	}

	err = svc.store.Update(func(doc *record.Document) error {
		switch {
		case usr.Role == record.RoleAdmin:
			usr.Permissions = record.FullAccess()
		case nu.Permissions != nil:
			perms := *nu.Permissions
			usr.Permissions = &perms
		default:
			usr.Permissions = record.TemplateFor(doc, usr.Role)
		}
		doc.Users = append(doc.Users, usr)
		return nil
	})
	return usr, err
}

// Update modifies an existing account in place; id and role are preserved.
func (svc *Service) Update(id string, uu UpdateUser) (record.User, error) {
	var updated record.User
	err := svc.store.Update(func(doc *record.Document) error {
		for i, usr := range doc.Users {
			if usr.ID != id {
				continue
			}
			if uu.Username != "" {
				usr.Username = uu.Username
			}
			if uu.Password != "" {
				pwd, err := svc.verifier.Hash(uu.Password)
				if err != nil {
					return errors.Wrap(err, "hashing password")
				}
				usr.Password = pwd
			}
			if uu.Name != "" {
				usr.Name = uu.Name
			}
			if uu.Permissions != nil && usr.Role != record.RoleAdmin {
				perms := *uu.Permissions
				usr.Permissions = &perms
			}
			if uu.StudentID != nil {
				usr.StudentID = *uu.StudentID
			}
			if uu.TeacherID != nil {
				usr.TeacherID = *uu.TeacherID
			}
			doc.Users[i] = usr
			updated = usr
			return nil
		}
		return ErrNotFound
	})
	return updated, err
}

// Delete removes an account. The reserved root admin is rejected and the
// users collection left unchanged.
func (svc *Service) Delete(id string) error {
	if id == record.RootAdminID {
		return ErrRootAdminProtected
	}
	return svc.store.Update(func(doc *record.Document) error {
		for i, usr := range doc.Users {
			if usr.ID == id {
				doc.Users = append(doc.Users[:i], doc.Users[i+1:]...)
				return nil
			}
		}
		return ErrNotFound
	})
}

func (svc *Service) Get(id string) (record.User, error) {
	if usr, ok := svc.store.Load().UserByID(id); ok {
		return usr, nil
	}
	return record.User{}, ErrNotFound
}

func (svc *Service) GetByUsername(uname string) (record.User, error) {
	if usr, ok := svc.store.Load().UserByUsername(uname); ok {
		return usr, nil
	}
	return record.User{}, ErrNotFound
}

func (svc *Service) QueryAll() []record.User {
	return svc.store.Load().Users
}

// Authenticate checks credentials and returns the matching account.
// Unknown username and wrong password are indistinguishable: both yield
// the same generic ErrAuthenticationFailed.
func (svc *Service) Authenticate(creds Credentials) (record.User, error) {
	usr, ok := svc.store.Load().UserByUsername(creds.Username)
	if !ok {
		return record.User{}, ErrAuthenticationFailed
	}
	if err := svc.verifier.Verify(usr, creds.Password); err != nil {
		return record.User{}, ErrAuthenticationFailed
	}
	return usr, nil
}

// SetRoleDefaults replaces a role's default template. Existing accounts
// keep their current permissions.
func (svc *Service) SetRoleDefaults(rt RoleTemplate) error {
	return svc.store.SetRoleDefaults(rt.Role, rt.Permissions)
}

// ApplyTemplate pre-populates a creation form's permission checklist.
func (svc *Service) ApplyTemplate(role string) *record.Permissions {
	return svc.store.ApplyTemplate(role)
}
