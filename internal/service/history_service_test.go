package service

import (
	"context"
	"testing"
	"time"

	"riskwatch/internal/model"
	"riskwatch/internal/repository"
	"riskwatch/internal/risk"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedAssessments(t *testing.T, store *repository.Store, studentID string, probs ...float64) {
	t.Helper()
	base := time.Now().UTC().Add(-time.Hour)
	for i, p := range probs {
		a := &model.RiskAssessment{
			StudentID:   studentID,
			Probability: p,
			Tier:        risk.TierFor(p),
			Source:      model.SourceHeuristic,
			CreatedAt:   base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, store.Assessments.Save(context.Background(), a, &model.AuditLog{UserID: "seed", Action: model.ActionRiskAssessment}))
	}
}

func TestHistoryOldestFirstWithTrend(t *testing.T) {
	store := openStore(t)
	student := createStudent(t, store, "Ada", model.DefaultFeatures())
	seedAssessments(t, store, student.ID, 0.2, 0.3, 0.4, 0.5)

	report, err := NewHistoryService(store.Students, store.Assessments).History(context.Background(), student.ID)
	require.NoError(t, err)
	require.Len(t, report.History, 4)
	assert.InDelta(t, 0.2, report.History[0].Probability, 1e-12)
	assert.InDelta(t, 0.5, report.History[3].Probability, 1e-12)
	assert.Equal(t, model.TrendIncreasing, report.Trend)
}

func TestHistoryWindowAndEmpty(t *testing.T) {
	store := openStore(t)
	svc := NewHistoryService(store.Students, store.Assessments)
	student := createStudent(t, store, "Grace", model.DefaultFeatures())

	report, err := svc.History(context.Background(), student.ID)
	require.NoError(t, err)
	assert.Empty(t, report.History)
	assert.Equal(t, model.TrendStable, report.Trend)

	probs := make([]float64, 35)
	for i := range probs {
		probs[i] = 0.9 - float64(i)*0.02
	}
	seedAssessments(t, store, student.ID, probs...)

	report, err = svc.History(context.Background(), student.ID)
	require.NoError(t, err)
	assert.Len(t, report.History, risk.TrendWindow)
	assert.InDelta(t, probs[5], report.History[0].Probability, 1e-12)
	// slope of -0.02 per point stays inside the stable band
	assert.Equal(t, model.TrendStable, report.Trend)

	_, err = svc.History(context.Background(), "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
