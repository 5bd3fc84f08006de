package service

import (
	"context"
	"fmt"

	"lyro/internal/model"
	"lyro/internal/repository"
)

// SchoolService handles registered schools
type SchoolService struct {
	schoolRepo repository.SchoolRepo
}

// NewSchoolService creates a new school service
func NewSchoolService(schoolRepo repository.SchoolRepo) *SchoolService {
	return &SchoolService{
		schoolRepo: schoolRepo,
	}
}

// Create stores a new school; name uniqueness is enforced by the store index
func (s *SchoolService) Create(ctx context.Context, school *model.School) (string, error) {
	id, err := s.schoolRepo.Create(ctx, school)
	if err != nil {
		return "", fmt.Errorf("failed to create school: %w", err)
	}
	return id, nil
}

// List returns all registered schools
func (s *SchoolService) List(ctx context.Context) ([]*model.School, error) {
	return s.schoolRepo.GetAll(ctx)
}

// Delete removes a school
func (s *SchoolService) Delete(ctx context.Context, id string) error {
	return s.schoolRepo.Delete(ctx, id)
}
