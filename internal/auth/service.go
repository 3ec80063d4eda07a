package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"feedback-service/internal/admin"
	"feedback-service/internal/apperrors"
	"feedback-service/internal/metrics"
	"feedback-service/internal/student"
	"feedback-service/internal/validation"

	"github.com/go-playground/validator/v10"
)

// maxPasswordBytes is the bcrypt input limit. The validator's max counts runes, not bytes.
const maxPasswordBytes = 72

const (
	msgStudentCredentials = "Invalid email or password."
	msgAdminCredentials   = "Invalid username or password."
	msgRegisterInvalid    = "A name, a valid email and a password of 4 to 72 characters are required."
)

type Service struct {
	students student.Repository
	admins   admin.Repository
	hasher   *PasswordHasher
	validate *validator.Validate
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

func NewService(students student.Repository, admins admin.Repository, hasher *PasswordHasher, m *metrics.Metrics, logger *slog.Logger) *Service {
	return &Service{
		students: students,
		admins:   admins,
		hasher:   hasher,
		validate: validation.New(),
		metrics:  m,
		logger:   logger,
	}
}

// RegisterStudent stores a new student with a hashed password.
func (s *Service) RegisterStudent(ctx context.Context, req RegisterRequest) (*student.Student, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = student.NormalizeEmail(req.Email)

	if err := s.validate.Struct(req); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrValidation, msgRegisterInvalid, err)
	}
	if len(req.Password) > maxPasswordBytes {
		return nil, apperrors.Validation(msgRegisterInvalid)
	}

	hashed, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	created, err := s.students.Create(ctx, &student.Student{
		Name:     req.Name,
		Email:    req.Email,
		Password: hashed,
	})
	if err != nil {
		return nil, err
	}

	s.metrics.RecordStudentRegistration(ctx)
	s.logger.InfoContext(ctx, "student registered", "student_id", created.ID, "email", created.Email)
	return created, nil
}

// AuthenticateStudent fails the same way for an unknown email and a wrong password.
func (s *Service) AuthenticateStudent(ctx context.Context, email, password string) (*Identity, error) {
	if !validation.IsStoredText(email) {
		s.hasher.VerifyMissing(password)
		return nil, s.loginFailed(ctx, RoleStudent, msgStudentCredentials, "email", "")
	}
	st, found, err := s.students.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if !found {
		s.hasher.VerifyMissing(password)
		return nil, s.loginFailed(ctx, RoleStudent, msgStudentCredentials, "email", student.NormalizeEmail(email))
	}
	if !s.hasher.Verify(st.Password, password) {
		return nil, s.loginFailed(ctx, RoleStudent, msgStudentCredentials, "email", st.Email)
	}

	s.metrics.RecordLogin(ctx, string(RoleStudent), true)
	return &Identity{
		Role:  RoleStudent,
		ID:    st.ID,
		Name:  st.Name,
		Email: st.Email,
	}, nil
}

func (s *Service) AuthenticateAdmin(ctx context.Context, username, password string) (*Identity, error) {
	if !validation.IsStoredText(username) {
		s.hasher.VerifyMissing(password)
		return nil, s.loginFailed(ctx, RoleAdmin, msgAdminCredentials, "username", "")
	}
	a, found, err := s.admins.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	if !found {
		s.hasher.VerifyMissing(password)
		return nil, s.loginFailed(ctx, RoleAdmin, msgAdminCredentials, "username", strings.TrimSpace(username))
	}
	if !s.hasher.Verify(a.Password, password) {
		return nil, s.loginFailed(ctx, RoleAdmin, msgAdminCredentials, "username", a.Username)
	}

	s.metrics.RecordLogin(ctx, string(RoleAdmin), true)
	return &Identity{
		Role:     RoleAdmin,
		ID:       a.ID,
		Username: a.Username,
	}, nil
}

// ProvisionAdmin creates an admin or resets its password. Only the CLI calls this.
func (s *Service) ProvisionAdmin(ctx context.Context, username, password string) (*admin.Admin, error) {
	username = strings.TrimSpace(username)
	if username == "" || !validation.IsStoredText(username) || len(password) < 8 || len(password) > maxPasswordBytes {
		return nil, apperrors.Validation("admin username is required and the password must be 8 to 72 characters")
	}

	hashed, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	a, err := s.admins.Upsert(ctx, &admin.Admin{Username: username, Password: hashed})
	if err != nil {
		return nil, fmt.Errorf("provision admin %q: %w", username, err)
	}

	s.logger.InfoContext(ctx, "admin provisioned", "admin_id", a.ID, "username", a.Username)
	return a, nil
}

// CurrentStudent loads the profile behind a student session.
func (s *Service) CurrentStudent(ctx context.Context, id *Identity) (*student.Student, error) {
	if id == nil || id.Role != RoleStudent {
		return nil, apperrors.New(apperrors.ErrUnauthorized, "Please log in to continue.")
	}
	st, found, err := s.students.FindByID(ctx, id.ID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, apperrors.New(apperrors.ErrUnauthorized, "Please log in to continue.")
	}
	return st, nil
}

func (s *Service) loginFailed(ctx context.Context, role Role, msg, key, value string) error {
	s.metrics.RecordLogin(ctx, string(role), false)
	s.logger.WarnContext(ctx, "login failed", "role", role, key, value)
	return apperrors.New(apperrors.ErrAuthentication, msg)
}
