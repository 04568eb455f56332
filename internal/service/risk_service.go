package service

import (
	"context"
	"fmt"
	"log"

	"riskwatch/internal/cache"
	"riskwatch/internal/model"
	"riskwatch/internal/repository"
	"riskwatch/internal/risk"
)

// RiskService runs the risk pipeline and persists the results
type RiskService struct {
	engine      *risk.Engine
	students    repository.StudentRepo
	assessments repository.AssessmentRepo
	board       cache.RiskBoard
}

// NewRiskService creates a new risk service
func NewRiskService(engine *risk.Engine, students repository.StudentRepo, assessments repository.AssessmentRepo) *RiskService {
	return &RiskService{engine: engine, students: students, assessments: assessments}
}

// SetRiskBoard enables ranking of stored assessments
func (s *RiskService) SetRiskBoard(board cache.RiskBoard) {
	s.board = board
}

// Assess scores a feature vector without persisting anything
func (s *RiskService) Assess(ctx context.Context, fv model.FeatureVector, subjectName string) (*model.RiskAssessment, error) {
	if err := fv.Validate(); err != nil {
		return nil, err
	}
	if subjectName == "" {
		subjectName = "anonymous student"
	}
	return s.engine.Assess(ctx, fv, risk.Subject{Name: subjectName}), nil
}

// AssessStudent scores a stored student and saves the assessment with its
// audit row. A non-nil override replaces the stored metrics for this call.
func (s *RiskService) AssessStudent(ctx context.Context, actorID, studentID string, override *model.FeatureVector) (*model.RiskAssessment, error) {
	student, err := s.students.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	fv := student.Features
	if override != nil {
		fv = *override
	}
	if err := fv.Validate(); err != nil {
		return nil, err
	}

	a := s.engine.Assess(ctx, fv, risk.Subject{ID: student.ID, Name: student.Name})
	audit := &model.AuditLog{UserID: actorID, Action: model.ActionRiskAssessment, SubjectID: student.ID}
	if err := s.assessments.Save(ctx, a, audit); err != nil {
		return nil, fmt.Errorf("save assessment: %w", err)
	}

	if s.board != nil {
		if err := s.board.UpdateScore(ctx, student.ID, a.Probability); err != nil {
			log.Printf("[Risk] Risk board update failed for %s: %v", student.ID, err)
		}
	}
	return a, nil
}

// TopRisk returns the students with the highest latest probability
func (s *RiskService) TopRisk(ctx context.Context, limit int) ([]cache.RiskBoardEntry, error) {
	if s.board == nil {
		return []cache.RiskBoardEntry{}, nil
	}
	entries, err := s.board.GetTop(ctx, repository.ClampLimit(limit, 100))
	if err != nil {
		return nil, err
	}
	for i := range entries {
		entries[i].Tier = risk.TierFor(entries[i].Probability)
	}
	return entries, nil
}

// ModelBacked reports whether a trained artifact is in use
func (s *RiskService) ModelBacked() bool {
	return s.engine.ModelBacked()
}
