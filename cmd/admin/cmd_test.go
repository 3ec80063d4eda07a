package main

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"feedback-service/internal/admin"
	"feedback-service/internal/apperrors"
	"feedback-service/internal/course"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAdmins struct {
	username, password string
}

func (f *fakeAdmins) ProvisionAdmin(_ context.Context, username, password string) (*admin.Admin, error) {
	if len(password) < 8 {
		return nil, apperrors.Validation("password too short")
	}
	f.username, f.password = username, password
	return &admin.Admin{ID: 1, Username: username}, nil
}

type fakeCourses struct {
	added []course.Course
}

func (f *fakeCourses) AddCourse(_ context.Context, name, faculty string) (*course.Course, error) {
	c := course.Course{ID: int64(len(f.added) + 1), Name: name, FacultyName: faculty}
	f.added = append(f.added, c)
	return &c, nil
}

type cliTest struct {
	name       string
	args       []string // without program name
	password   string
	wantErr    error
	wantErrStr string
	wantOut    string
}

func setup() (*commandLine, *fakeAdmins, *fakeCourses, *bool, *bytes.Buffer) {
	admins := &fakeAdmins{}
	courses := &fakeCourses{}
	migrated := false
	out := &bytes.Buffer{}
	return &commandLine{
		admins:  admins,
		courses: courses,
		migrate: func(context.Context) error {
			migrated = true
			return nil
		},
		out: out,
	}, admins, courses, &migrated, out
}

func Test_commandLine_run(t *testing.T) {
	tests := []cliTest{
		{name: "no command", args: nil, wantErr: errHelp},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp},
		{name: "create-admin: no username", args: []string{"create-admin"}, wantErr: errHelp},
		{name: "create-admin: empty prompt", args: []string{"create-admin", "-username", "root"}, wantErr: errHelp},
		{name: "create-admin: short password", args: []string{"create-admin", "-username", "root", "-password", "short"}, wantErrStr: "password too short"},
		{name: "create-admin: flag", args: []string{"create-admin", "-username", "root", "-password", "s3cret-pass"}, wantOut: `admin "root" ready (id 1)`},
		{name: "create-admin: prompt", args: []string{"create-admin", "-username", "root"}, password: "prompted-pass", wantOut: `admin "root" ready`},
		{name: "add-course: missing faculty", args: []string{"add-course", "-name", "Algorithms"}, wantErr: errHelp},
		{name: "add-course", args: []string{"add-course", "-name", "Algorithms", "-faculty", "Computing"}, wantOut: `course "Algorithms" added (course_id 1)`},
		{name: "migrate", args: []string{"migrate"}, wantOut: "migrations applied"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cli, _, _, _, out := setup()
			readPasswordFunc = func(int) ([]byte, error) { return []byte(tt.password), nil }

			err := cli.run(context.Background(), append([]string{"admin"}, tt.args...))
			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.wantErrStr != "":
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErrStr)
			default:
				require.NoError(t, err)
				assert.Contains(t, out.String(), tt.wantOut)
			}
		})
	}
}

func Test_commandLine_createAdminUsesPromptedPassword(t *testing.T) {
	cli, admins, _, _, _ := setup()
	readPasswordFunc = func(int) ([]byte, error) { return []byte("prompted-pass"), nil }

	require.NoError(t, cli.run(context.Background(), []string{"admin", "create-admin", "-username", "root"}))
	assert.Equal(t, "root", admins.username)
	assert.Equal(t, "prompted-pass", admins.password)
}

func Test_commandLine_promptError(t *testing.T) {
	cli, _, _, _, _ := setup()
	readPasswordFunc = func(int) ([]byte, error) { return nil, errors.New("not a terminal") }

	err := cli.run(context.Background(), []string{"admin", "create-admin", "-username", "root"})
	assert.EqualError(t, err, "not a terminal")
}

func Test_commandLine_addCourseAndMigrate(t *testing.T) {
	cli, _, courses, migrated, _ := setup()

	require.NoError(t, cli.run(context.Background(), []string{"admin", "migrate"}))
	assert.True(t, *migrated)

	require.NoError(t, cli.run(context.Background(), []string{"admin", "add-course", "-name", "Contract Law", "-faculty", "Law"}))
	require.Len(t, courses.added, 1)
	assert.Equal(t, "Law", courses.added[0].FacultyName)
}
