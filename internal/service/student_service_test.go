package service

import (
	"context"
	"testing"

	"riskwatch/internal/model"
	"riskwatch/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStudentCreateDefaults(t *testing.T) {
	ctx := context.Background()
	svc := NewStudentService(openStore(t).Students)

	s, err := svc.Create(ctx, model.CreateStudentRequest{Name: "  Ada  ", Age: 19})
	require.NoError(t, err)
	assert.Equal(t, "Ada", s.Name)
	assert.Equal(t, model.DefaultFeatures(), s.Features)

	_, err = svc.Create(ctx, model.CreateStudentRequest{Name: ""})
	assert.ErrorIs(t, err, ErrValidation)

	bad := model.FeatureVector{GPA: -1}
	_, err = svc.Create(ctx, model.CreateStudentRequest{Name: "X", Features: &bad})
	assert.ErrorIs(t, err, model.ErrInvalidFeatures)
}

func TestStudentUpdateFeatures(t *testing.T) {
	ctx := context.Background()
	svc := NewStudentService(openStore(t).Students)
	s, err := svc.Create(ctx, model.CreateStudentRequest{Name: "Grace"})
	require.NoError(t, err)

	fv := model.FeatureVector{AttendanceRate: 70, GPA: 2.5, FinancialStressScore: 0.4, FamilySupportScore: 0.6}
	updated, err := svc.UpdateFeatures(ctx, s.ID, fv)
	require.NoError(t, err)
	assert.Equal(t, fv, updated.Features)

	_, err = svc.UpdateFeatures(ctx, "missing", fv)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
