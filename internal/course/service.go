package course

import (
	"context"
	"strings"

	"feedback-service/internal/apperrors"
	"feedback-service/internal/validation"

	"github.com/go-playground/validator/v10"
)

type Service interface {
	ListCourses(ctx context.Context) ([]Course, error)
	AddCourse(ctx context.Context, name, faculty string) (*Course, error)
}

type service struct {
	repo     Repository
	validate *validator.Validate
}

func NewService(repo Repository) Service {
	return &service{
		repo:     repo,
		validate: validation.New(),
	}
}

func (s *service) ListCourses(ctx context.Context) ([]Course, error) {
	return s.repo.List(ctx)
}

// AddCourse is used by out-of-band provisioning only.
func (s *service) AddCourse(ctx context.Context, name, faculty string) (*Course, error) {
	c := &Course{
		Name:        strings.TrimSpace(name),
		FacultyName: strings.TrimSpace(faculty),
	}
	if err := s.validate.Struct(c); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrValidation, "course name and faculty name are required", err)
	}
	return s.repo.Create(ctx, c)
}
