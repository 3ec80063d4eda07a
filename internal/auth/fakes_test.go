package auth_test

import (
	"context"
	"sync"

	"feedback-service/internal/admin"
	"feedback-service/internal/apperrors"
	"feedback-service/internal/student"
)

type fakeStudents struct {
	mu      sync.Mutex
	byEmail map[string]*student.Student
	nextID  int64
	err     error
}

func newFakeStudents() *fakeStudents {
	return &fakeStudents{byEmail: map[string]*student.Student{}}
}

func (f *fakeStudents) Create(_ context.Context, s *student.Student) (*student.Student, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	s.Email = student.NormalizeEmail(s.Email)
	if _, ok := f.byEmail[s.Email]; ok {
		return nil, apperrors.New(apperrors.ErrDuplicateIdentity, "An account with this email already exists.")
	}
	f.nextID++
	s.ID = f.nextID
	f.byEmail[s.Email] = s
	return s, nil
}

func (f *fakeStudents) FindByEmail(_ context.Context, email string) (*student.Student, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, false, f.err
	}
	s, ok := f.byEmail[student.NormalizeEmail(email)]
	return s, ok, nil
}

func (f *fakeStudents) FindByID(_ context.Context, id int64) (*student.Student, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.byEmail {
		if s.ID == id {
			return s, true, nil
		}
	}
	return nil, false, nil
}

type fakeAdmins struct {
	mu     sync.Mutex
	byName map[string]*admin.Admin
	nextID int64
}

func newFakeAdmins() *fakeAdmins {
	return &fakeAdmins{byName: map[string]*admin.Admin{}}
}

func (f *fakeAdmins) FindByUsername(_ context.Context, username string) (*admin.Admin, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.byName[username]
	return a, ok, nil
}

func (f *fakeAdmins) Upsert(_ context.Context, a *admin.Admin) (*admin.Admin, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if existing, ok := f.byName[a.Username]; ok {
		existing.Password = a.Password
		return existing, nil
	}
	f.nextID++
	a.ID = f.nextID
	f.byName[a.Username] = a
	return a, nil
}
