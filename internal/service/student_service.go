package service

import (
	"context"
	"fmt"
	"strings"

	"riskwatch/internal/model"
	"riskwatch/internal/repository"
)

// StudentService manages enrolled students
type StudentService struct {
	repo repository.StudentRepo
}

// NewStudentService creates a new student service
func NewStudentService(repo repository.StudentRepo) *StudentService {
	return &StudentService{repo: repo}
}

// Create enrolls a student, using default metrics for omitted features
func (s *StudentService) Create(ctx context.Context, req model.CreateStudentRequest) (*model.Student, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if req.Age < 0 {
		return nil, fmt.Errorf("%w: age must be >= 0", ErrValidation)
	}
	features := model.DefaultFeatures()
	if req.Features != nil {
		features = *req.Features
	}
	if err := features.Validate(); err != nil {
		return nil, err
	}

	student := &model.Student{Name: name, Age: req.Age, Features: features}
	if err := s.repo.Create(ctx, student); err != nil {
		return nil, err
	}
	return student, nil
}

// Get returns repository.ErrNotFound for unknown ids
func (s *StudentService) Get(ctx context.Context, id string) (*model.Student, error) {
	return s.repo.GetByID(ctx, id)
}

// List pages through students in enrollment order
func (s *StudentService) List(ctx context.Context, skip, limit int) ([]*model.Student, error) {
	return s.repo.List(ctx, skip, limit)
}

// UpdateFeatures replaces a student's metrics
func (s *StudentService) UpdateFeatures(ctx context.Context, id string, fv model.FeatureVector) (*model.Student, error) {
	if err := fv.Validate(); err != nil {
		return nil, err
	}
	return s.repo.UpdateFeatures(ctx, id, fv)
}
