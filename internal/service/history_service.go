package service

import (
	"context"

	"riskwatch/internal/model"
	"riskwatch/internal/repository"
	"riskwatch/internal/risk"
)

// HistoryService derives risk trends from stored assessments
type HistoryService struct {
	students    repository.StudentRepo
	assessments repository.AssessmentRepo
}

// NewHistoryService creates a new history service
func NewHistoryService(students repository.StudentRepo, assessments repository.AssessmentRepo) *HistoryService {
	return &HistoryService{students: students, assessments: assessments}
}

// History returns the last risk.TrendWindow assessments oldest first, with
// their trend direction
func (s *HistoryService) History(ctx context.Context, studentID string) (*model.HistoryReport, error) {
	if _, err := s.students.GetByID(ctx, studentID); err != nil {
		return nil, err
	}

	recent, err := s.assessments.QueryRecent(ctx, studentID, risk.TrendWindow)
	if err != nil {
		return nil, err
	}

	points := make([]model.HistoryPoint, len(recent))
	probs := make([]float64, len(recent))
	for i, a := range recent {
		// recent is newest first
		j := len(recent) - 1 - i
		points[j] = model.HistoryPoint{Probability: a.Probability, Tier: a.Tier, CreatedAt: a.CreatedAt}
		probs[j] = a.Probability
	}

	return &model.HistoryReport{
		StudentID: studentID,
		History:   points,
		Trend:     risk.ComputeTrend(probs),
	}, nil
}
